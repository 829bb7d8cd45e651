// Package cli implements tgctl, the operator tool for the Telegram login
// service. It signs and verifies widget payloads offline, checks a server
// configuration and talks to a running server over gRPC.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/client"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Client is the server API the remote commands use.
type Client interface {
	Ping(ctx context.Context) error
	Revoke(ctx context.Context) (string, error)
	Describe(ctx context.Context) (string, error)
	Close() error
}

var newClient = func(addr, accessToken string) (Client, error) {
	return client.NewGRPCClient(addr, accessToken)
}

type App struct {
	out    io.Writer
	errOut io.Writer
	now    func() time.Time
	getenv func(string) string
}

func NewApp(out, errOut io.Writer) *App {
	return &App{
		out:    out,
		errOut: errOut,
		now:    time.Now,
		getenv: os.Getenv,
	}
}

const usage = `Usage: tgctl <command> [flags] [key=value...]

Commands:
  sign      compute the widget hash of a payload
  verify    validate a signed payload
  doctor    check a server configuration
  ping      check that a server is reachable
  describe  show the Telegram account linked to an access token's user
  revoke    unlink the Telegram account of an access token's user
`

// Run executes the command in args (without the program name) and returns
// the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.errOut, usage)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]

	var err error
	switch cmd {
	case "sign":
		err = a.Sign(ctx, rest)
	case "verify":
		err = a.Verify(ctx, rest)
	case "doctor":
		err = a.Doctor(ctx, rest)
	case "ping":
		err = a.Ping(ctx, rest)
	case "describe":
		err = a.Describe(ctx, rest)
	case "revoke":
		err = a.Revoke(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return ExitOK
	default:
		fmt.Fprintf(a.errOut, "unknown command %q\n\n%s", cmd, usage)
		return ExitUsage
	}

	switch {
	case err == nil:
		return ExitOK
	case isUsage(err):
		fmt.Fprintln(a.errOut, err)
		return ExitUsage
	default:
		fmt.Fprintln(a.errOut, "error:", err)
		return ExitFailure
	}
}
