package cli

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	SSO(ctx context.Context) error
	Token(ctx context.Context) error
	Request(ctx context.Context, method string, args []string) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands line by line from reader and dispatches them to a.
// The loop exits on EOF or when the user types "exit" or "quit".
//
//	help                       show available commands
//	token                      obtain a token (page token or API code exchange)
//	login                      authenticate with username and password
//	sso                        open the SSO login page
//	get|delete <path> [k=v]    query string request
//	post|put <path> [json]     JSON body request (prompts when json is omitted)
//	status                     show the persisted session
//	logout                     forget the persisted session
//	exit | quit                leave the program
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("api %s> ", statusFn()))

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
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: get, post, put, delete, status, token, logout, exit")
			} else {
				printlnFn("Available commands: token, login, sso, get, status, exit")
			}

		case "token":
			cmdErr = a.Token(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "sso":
			cmdErr = a.SSO(ctx)

		case "get", "post", "put", "delete":
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <path> ...", cmd))
				continue
			}
			cmdErr = a.Request(ctx, strings.ToUpper(cmd), args)

		case "status":
			cmdErr = a.Status(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

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

// methodHasBody reports whether params travel as a JSON body.
func methodHasBody(method string) bool {
	return method == http.MethodPost || method == http.MethodPut
}
