package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/autokeeper/internal/client/client"
)

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests use a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Me(ctx context.Context, args []string) error
	Vehicles(ctx context.Context, args []string) error
	AddVehicle(ctx context.Context, args []string) error
	Fuel(ctx context.Context, args []string) error
	AddFuel(ctx context.Context, args []string) error
	Services(ctx context.Context, args []string) error
	AddService(ctx context.Context, args []string) error
	Receipt(ctx context.Context, args []string) error
	Reminders(ctx context.Context, args []string) error
	AddReminder(ctx context.Context, args []string) error
	Complete(ctx context.Context, args []string) error
}

// runREPL reads commands from in until EOF, "exit" or "quit". Command
// prompts read from the same reader, so the loop and the commands never
// compete for buffered input. Command errors are printed and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "ak %s> ", statusFn())

		line, err := in.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, "Available commands: me, vehicles, addvehicle, fuel, addfuel, services, addservice, receipt, reminders, addreminder, complete, logout, exit")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, exit")
			}
		case "register":
			cmdErr = a.Register(ctx, args)
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "me":
			cmdErr = a.Me(ctx, args)
		case "vehicles":
			cmdErr = a.Vehicles(ctx, args)
		case "addvehicle":
			cmdErr = a.AddVehicle(ctx, args)
		case "fuel":
			cmdErr = a.Fuel(ctx, args)
		case "addfuel":
			cmdErr = a.AddFuel(ctx, args)
		case "services":
			cmdErr = a.Services(ctx, args)
		case "addservice":
			cmdErr = a.AddService(ctx, args)
		case "receipt":
			cmdErr = a.Receipt(ctx, args)
		case "reminders":
			cmdErr = a.Reminders(ctx, args)
		case "addreminder":
			cmdErr = a.AddReminder(ctx, args)
		case "complete":
			cmdErr = a.Complete(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(out, "Error:", describe(cmdErr))
		}
		if err != nil {
			return
		}
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, client.ErrNotLoggedIn):
		return "you are not logged in (use 'login')"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable"
	default:
		return err.Error()
	}
}
