package cli

import (
	"bufio"
	"context"
	"io"
)

// Root greets the user and runs the REPL over in until it ends.
func (a *App) Root(ctx context.Context, in io.Reader) {
	printlnFn("Welcome to DropVault (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(in))
}
