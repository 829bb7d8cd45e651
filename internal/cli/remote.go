package cli

import (
	"context"
	"flag"
	"fmt"
)

type remoteFlags struct {
	addr        *string
	accessToken *string
}

func (a *App) remoteFlagSet(name string, withToken bool) (*flag.FlagSet, remoteFlags) {
	fs := newFlagSet(name)
	rf := remoteFlags{addr: fs.String("addr", "127.0.0.1:50051", "server gRPC address")}
	if withToken {
		rf.accessToken = fs.String("access-token", "", "access token (default $TGAUTH_ACCESS_TOKEN)")
	}
	return fs, rf
}

func (a *App) dial(rf remoteFlags) (Client, error) {
	token := ""
	if rf.accessToken != nil {
		token = *rf.accessToken
		if token == "" {
			token = a.getenv("TGAUTH_ACCESS_TOKEN")
		}
		if token == "" {
			return nil, usageErrorf("access token required")
		}
	}
	return newClient(*rf.addr, token)
}

func (a *App) Ping(ctx context.Context, args []string) error {
	fs, rf := a.remoteFlagSet("ping", false)
	if err := parse(fs, args); err != nil {
		return err
	}

	c, err := a.dial(rf)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Ping(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "OK")
	return nil
}

func (a *App) Describe(ctx context.Context, args []string) error {
	fs, rf := a.remoteFlagSet("describe", true)
	if err := parse(fs, args); err != nil {
		return err
	}

	c, err := a.dial(rf)
	if err != nil {
		return err
	}
	defer c.Close()

	name, err := c.Describe(ctx)
	if err != nil {
		return err
	}
	if name == "" {
		fmt.Fprintln(a.out, "no telegram account linked")
		return nil
	}
	fmt.Fprintln(a.out, name)
	return nil
}

func (a *App) Revoke(ctx context.Context, args []string) error {
	fs, rf := a.remoteFlagSet("revoke", true)
	if err := parse(fs, args); err != nil {
		return err
	}

	c, err := a.dial(rf)
	if err != nil {
		return err
	}
	defer c.Close()

	st, err := c.Revoke(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, st)
	return nil
}
