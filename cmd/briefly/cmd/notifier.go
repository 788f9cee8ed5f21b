package cmd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// terminalNotifier prints user-facing notices to the terminal. Success and
// info go to stdout, errors to stderr. Colors are used only when the stream
// is a terminal.
type terminalNotifier struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

func newTerminalNotifier() *terminalNotifier {
	return &terminalNotifier{
		out:    os.Stdout,
		errOut: os.Stderr,
		color:  term.IsTerminal(int(os.Stdout.Fd())),
	}
}

const (
	ansiReset = "\033[0m"
	ansiGreen = "\033[32m"
	ansiRed   = "\033[31m"
)

func (n *terminalNotifier) Success(msg string) {
	if n.color {
		fmt.Fprintf(n.out, "%s%s%s\n", ansiGreen, msg, ansiReset)
		return
	}
	fmt.Fprintln(n.out, msg)
}

func (n *terminalNotifier) Info(msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n *terminalNotifier) Error(msg string) {
	if n.color {
		fmt.Fprintf(n.errOut, "%s%s%s\n", ansiRed, msg, ansiReset)
		return
	}
	fmt.Fprintln(n.errOut, msg)
}
