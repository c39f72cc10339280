// Package cli implements the interactive todoauth client: a small REPL that
// registers, logs in or starts a demo session against the server API.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/todoauth/internal/client/api"
	"github.com/dmitrijs2005/todoauth/internal/client/config"
	"github.com/dmitrijs2005/todoauth/internal/common"
)

// AuthClient is the subset of the API client the REPL needs.
type AuthClient interface {
	Login(ctx context.Context, email string, password []byte) (*api.Session, error)
	Register(ctx context.Context, email string, password []byte) (*api.Session, error)
	DemoLogin(ctx context.Context) (*api.Session, error)
}

type App struct {
	client  AuthClient
	in      *bufio.Reader
	out     io.Writer
	session *api.Session
}

func NewApp(cfg *config.Config) *App {
	return newApp(api.NewClient(cfg.ServerURL, cfg.RequestTimeout), os.Stdin, os.Stdout)
}

func newApp(c AuthClient, in io.Reader, out io.Writer) *App {
	return &App{client: c, in: bufio.NewReader(in), out: out}
}

// Run reads commands until exit or end of input.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "todoauth CLI (type 'help' for commands)")

	for {
		line, err := GetSimpleText(a.in, "todoauth "+a.showLogin(), a.out)
		if err != nil {
			return
		}

		switch line {
		case "":
			continue
		case "help":
			fmt.Fprintln(a.out, "Available commands: register, login, demo, whoami, token, logout, exit")
		case "register":
			a.authenticate(ctx, a.client.Register)
		case "login":
			a.authenticate(ctx, a.client.Login)
		case "demo":
			a.demo(ctx)
		case "whoami":
			a.whoami()
		case "token":
			if a.session == nil {
				fmt.Fprintln(a.out, "Not logged in")
				continue
			}
			fmt.Fprintln(a.out, a.session.Token)
		case "logout":
			a.session = nil
			fmt.Fprintln(a.out, "Logged out")
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintf(a.out, "Unknown command %q\n", line)
		}
	}
}

type credentialCall func(ctx context.Context, email string, password []byte) (*api.Session, error)

func (a *App) authenticate(ctx context.Context, call credentialCall) {
	email, err := GetSimpleText(a.in, "Enter email", a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer wipe(password)

	s, err := call(ctx, email, password)
	if err != nil {
		fmt.Fprintln(a.out, describe(err))
		return
	}
	a.signIn(s)
}

func (a *App) demo(ctx context.Context) {
	s, err := a.client.DemoLogin(ctx)
	if err != nil {
		fmt.Fprintln(a.out, describe(err))
		return
	}
	a.signIn(s)
	fmt.Fprintf(a.out, "Demo password: %s\n", demoPassword(s.User.Email))
}

func (a *App) signIn(s *api.Session) {
	a.session = s
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", s.User.Email, s.User.Role)
}

func (a *App) whoami() {
	if a.session == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	u := a.session.User
	fmt.Fprintf(a.out, "id=%s email=%s role=%s demo=%t\n", u.ID, u.Email, u.Role, u.IsDemo)
}

func (a *App) showLogin() string {
	if a.session == nil {
		return "(not logged in)"
	}
	return "(" + a.session.User.Email + ")"
}

// demoPassword recovers the password of a demo account, which is the
// generated part of its email's local name.
func demoPassword(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return strings.TrimPrefix(local, "demo-")
}

func describe(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingCredentials):
		return "Email and password are required"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, common.ErrEmailExists):
		return "An account with this email already exists"
	case errors.Is(err, common.ErrorInternal):
		return "Server error, try again later"
	default:
		return err.Error()
	}
}
