package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gobcrypt/internal/cli"
	"github.com/dmitrijs2005/gobcrypt/internal/config"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	args := os.Args[1:]
	cfg := config.LoadConfig(args)
	app, err := cli.New(cfg, os.Stdin, os.Stdout, os.Stderr)

	if err != nil {
		stop()
		log.Fatalf("%v", err)
		return
	}

	code := app.Run(ctx, args)
	stop()
	os.Exit(code)

}
