package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Exec(ctx context.Context, cmd string, args []string) error
}

// Root prints the build banner and runs the interactive loop on the App's
// input until EOF or "exit".
func (a *App) Root(ctx context.Context) {
	a.Version()
	fmt.Fprintln(a.out, "bcrypt interactive mode (type 'help' for commands)")
	runREPL(ctx, a, a.reader, a.out)
}

// runREPL starts a simple read–eval–print loop.
//
// It reads a line from reader, takes the first token as the command and
// the rest as its arguments, and dispatches to Exec. Commands that need a
// password read it from the same reader (or the terminal). The loop exits
// on EOF, when the user types "exit" or "quit", or when ctx is done.
//
// Errors are reported and the loop continues; a failed check prints
// "mismatch".
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprint(w, "bcrypt> ")
		line, err := GetSimpleText(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		err = a.Exec(ctx, cmd, parts[1:])
		switch {
		case err == nil:
		case errors.Is(err, ErrMismatch):
			fmt.Fprintln(w, "mismatch")
		default:
			fmt.Fprintln(w, "error:", err)
		}
	}
}
