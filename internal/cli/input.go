package cli

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func isUsage(err error) bool {
	var u *usageError
	return errors.As(err, &u)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usageErrorf("%s: %v", fs.Name(), err)
	}
	return nil
}

// parseFields turns key=value arguments into a field map. Later keys win.
func parseFields(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, usageErrorf("expected key=value, got %q", arg)
		}
		fields[k] = v
	}
	return fields, nil
}

// botToken returns the bot token from the flag, TGAUTH_BOT_TOKEN or a
// prompt read without echo. The caller wipes the result.
func (a *App) botToken(flagValue string) ([]byte, error) {
	if flagValue != "" {
		return []byte(flagValue), nil
	}
	if v := a.getenv("TGAUTH_BOT_TOKEN"); v != "" {
		return []byte(v), nil
	}

	if _, err := fmt.Fprint(a.errOut, "Enter bot token: "); err != nil {
		return nil, err
	}
	token, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.errOut)
	if err != nil {
		return nil, err
	}
	token = bytes.TrimSpace(token)
	if len(token) == 0 {
		return nil, errors.New("empty bot token")
	}
	return token, nil
}
