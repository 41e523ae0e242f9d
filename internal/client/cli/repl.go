package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) error
	Password(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Addresses(ctx context.Context) error
	AddAddress(ctx context.Context) error
	DeleteAddress(ctx context.Context, id string) error
	States(ctx context.Context) error
}

// runREPL reads commands from reader until EOF, "exit" or "quit". Commands
// prompt for their own input on the same reader.
//
//	Not logged in:
//	  signup, login, states, help, exit
//
//	Logged in:
//	  profile, password, addresses, addaddress, deladdress <id>,
//	  states, whoami, logout, help, exit
//
// A failing command is reported and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ak %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: profile, password, addresses, addaddress, deladdress <id>, states, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, states, exit")
			}

		case "signup":
			cmdErr = a.Signup(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "profile":
			cmdErr = a.Profile(ctx)
		case "password":
			cmdErr = a.Password(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "addresses", "l":
			cmdErr = a.Addresses(ctx)
		case "addaddress":
			cmdErr = a.AddAddress(ctx)
		case "deladdress":
			if len(args) == 0 {
				printlnFn("Usage: deladdress <id>")
				continue
			}
			cmdErr = a.DeleteAddress(ctx, args[0])
		case "states":
			cmdErr = a.States(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
