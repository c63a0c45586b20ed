package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/opmlogin/internal/client/form"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a stub.
type execIface interface {
	currentRoute() string

	EnterEmail(ctx context.Context, text string) error
	EnterPassword(ctx context.Context) error
	ToggleVisibility(ctx context.Context) error
	Submit(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	ShowForm(ctx context.Context) error

	WhoAmI(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line and dispatches them according to the
// current view. It returns on EOF, on "exit"/"quit" or when ctx is done.
//
// Handler errors are not printed here: handlers report to the user
// themselves and the loop keeps going.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		route := a.currentRoute()
		fmt.Fprintf(out, "opm %s> ", strings.TrimPrefix(route, "/"))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			fmt.Fprintln(out)
			return
		}

		cmd, rest := splitCommand(line)
		if cmd == "" {
			continue
		}

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}

		if route == form.RouteDashboard {
			dispatchDashboard(ctx, a, cmd, out)
		} else {
			dispatchLogin(ctx, a, cmd, rest, out)
		}
	}
}

// splitCommand returns the first word of line and everything after the
// single separator that follows it, byte for byte. Only the line terminator
// is dropped.
func splitCommand(line string) (cmd, rest string) {
	line = strings.TrimLeft(strings.TrimRight(line, "\r\n"), " \t")
	cmd, rest, _ = strings.Cut(line, " ")
	return strings.TrimRight(cmd, "\t"), rest
}

func dispatchLogin(ctx context.Context, a execIface, cmd, rest string, out io.Writer) {
	switch cmd {
	case "help":
		fmt.Fprintln(out, "Available commands: email [address], password, toggle, login, forgot, show, exit")
	case "email":
		_ = a.EnterEmail(ctx, rest)
	case "password":
		_ = a.EnterPassword(ctx)
	case "toggle":
		_ = a.ToggleVisibility(ctx)
	case "login", "submit":
		_ = a.Submit(ctx)
	case "forgot":
		_ = a.ForgotPassword(ctx)
	case "show":
		_ = a.ShowForm(ctx)
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
	}
}

func dispatchDashboard(ctx context.Context, a execIface, cmd string, out io.Writer) {
	switch cmd {
	case "help":
		fmt.Fprintln(out, "Available commands: whoami, status, logout, exit")
	case "whoami":
		_ = a.WhoAmI(ctx)
	case "status":
		_ = a.Status(ctx)
	case "logout":
		_ = a.Logout(ctx)
	default:
		fmt.Fprintln(out, "Unknown command:", cmd)
	}
}
