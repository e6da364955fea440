package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gobcrypt/internal/config"
	"github.com/dmitrijs2005/gobcrypt/internal/cryptox"
	"github.com/dmitrijs2005/gobcrypt/internal/entropy"
	"github.com/dmitrijs2005/gobcrypt/internal/flagx"
	"github.com/dmitrijs2005/gobcrypt/internal/hasher"
	"github.com/dmitrijs2005/gobcrypt/internal/logging"
)

var (
	// ErrMismatch is returned by check when the password does not match.
	ErrMismatch = errors.New("password does not match")

	// ErrUsage is returned for unknown commands and missing arguments.
	ErrUsage = errors.New("usage error")
)

// Exit statuses returned by Run.
const (
	ExitOK    = 0
	ExitFail  = 1
	ExitUsage = 2
)

type App struct {
	config *config.Config
	svc    hasher.Service
	logger logging.Logger
	reader *bufio.Reader
	fd     int
	out    io.Writer
}

// New builds an App wired to the real entropy source, with a logger
// writing to errOut and tagged with a fresh run_id.
func New(cfg *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := logging.New(errOut, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := base.With("run_id", uuid.NewString())

	svc := hasher.NewService(cfg, logger, entropy.System)
	return NewApp(cfg, svc, logger, in, out), nil
}

// NewApp builds an App around an existing service.
func NewApp(cfg *config.Config, svc hasher.Service, logger logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{config: cfg, svc: svc, logger: logger, reader: bufio.NewReader(in), fd: terminalFd(in), out: out}
}

// Run executes the command found among args, or the interactive loop if
// there is none, and returns the process exit status.
func (a *App) Run(ctx context.Context, args []string) int {
	pos := flagx.Positional(args, config.ValueFlags, config.BoolFlags)
	if len(pos) == 0 {
		a.Root(ctx)
		return ExitOK
	}

	err := a.Exec(ctx, pos[0], pos[1:])
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrMismatch):
		fmt.Fprintln(a.out, "mismatch")
		return ExitFail
	case errors.Is(err, ErrUsage):
		fmt.Fprintln(a.out, err)
		a.usage()
		return ExitUsage
	default:
		fmt.Fprintln(a.out, "error:", err)
		return ExitFail
	}
}

// Exec dispatches a single command.
func (a *App) Exec(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "gensalt":
		return a.GenSalt(ctx)
	case "hash":
		return a.Hash(ctx, args)
	case "check":
		return a.Check(ctx, args)
	case "kdf":
		return a.KDF(ctx, args)
	case "cost":
		return a.Cost(ctx, args)
	case "version":
		a.Version()
		return nil
	case "help":
		a.usage()
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
}

func (a *App) usage() {
	fmt.Fprintln(a.out, "Usage: bcrypt [flags] gensalt | hash [salt] | check <hash> | kdf <salt> | cost <hash> | version")
	config.Usage(a.out)
}

// password reads a password from the terminal when the App's input is
// one, or a line from the input stream otherwise.
func (a *App) password() ([]byte, error) {
	if a.fd >= 0 && isTerminal(a.fd) {
		return GetPassword(a.out, a.fd)
	}
	return ReadSecretLine(a.reader)
}

func oneArg(args []string, name string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected %s", ErrUsage, name)
	}
	return args[0], nil
}

// withPassword reads a password, passes it to fn and wipes it afterwards.
func (a *App) withPassword(fn func(pw []byte) error) error {
	pw, err := a.password()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer cryptox.Wipe(pw)
	return fn(pw)
}
