package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failOn   string

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	if name == f.failOn {
		return errors.New(name + " failed")
	}
	return nil
}

func (f *fakeExec) isLoggedIn(context.Context) bool { return f.loggedIn }
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) SSO(context.Context) error   { return f.record("sso") }
func (f *fakeExec) Token(context.Context) error { return f.record("token") }
func (f *fakeExec) Request(_ context.Context, method string, args []string) error {
	return f.record(method + " " + strings.Join(args, " "))
}
func (f *fakeExec) Status(context.Context) error { return f.record("status") }
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	lines := capturePrintln(t)

	input := strings.Join([]string{
		"help",
		"token",
		"login",
		"",
		"help",
		"get widgets ids=1 ids=2",
		"post widgets {\"name\":\"w\"}",
		"put widgets/1 {}",
		"delete widgets/1",
		"status",
		"sso",
		"logout",
		"foobar",
		"exit",
		"status",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "(s)" }, rdr(input))

	assert.Equal(t, []string{
		"token",
		"login",
		"GET widgets ids=1 ids=2",
		`POST widgets {"name":"w"}`,
		"PUT widgets/1 {}",
		"DELETE widgets/1",
		"status",
		"sso",
		"logout",
	}, exec.calls)

	assert.Contains(t, *lines, "api (s)> ")
	assert.Contains(t, *lines, "Available commands: token, login, sso, get, status, exit")
	assert.Contains(t, *lines, "Available commands: get, post, put, delete, status, token, logout, exit")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_UsageAndEOF(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("get\npost\n"))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Usage: get <path> ...")
	assert.Contains(t, *lines, "Usage: post <path> ...")
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{failOn: "token"}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("token\nquit\n"))

	assert.Equal(t, []string{"token"}, exec.calls)
	assert.Contains(t, *lines, "Error: token failed")
}
