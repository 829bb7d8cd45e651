package cli

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/tgauth/internal/common"
	"github.com/dmitrijs2005/tgauth/internal/dbx"
	"github.com/dmitrijs2005/tgauth/internal/server/config"
	"github.com/dmitrijs2005/tgauth/internal/server/secrets"
)

var botTokenPattern = regexp.MustCompile(`^[0-9]+:[A-Za-z0-9_-]+$`)

// seams
var (
	lookupSecret = func(ctx context.Context, cfg *config.Config) ([]byte, error) {
		src, err := secrets.FromConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return src.Lookup(ctx)
	}
	pingDatabase = func(ctx context.Context, driver, dsn string) error {
		db, err := dbx.Open(ctx, driver, dsn)
		if err != nil {
			return err
		}
		return db.Close()
	}
)

// Doctor loads a server configuration the way the server does and reports
// what would keep Telegram login from working.
//
//	tgctl doctor [-db] [server flags, e.g. -c config.json]
func (a *App) Doctor(ctx context.Context, args []string) error {
	checkDB := false
	var serverArgs []string
	for _, arg := range args {
		if arg == "-db" || arg == "--db" {
			checkDB = true
			continue
		}
		serverArgs = append(serverArgs, arg)
	}

	cfg, err := loadServerConfig(serverArgs)
	if err != nil {
		return err
	}

	failed := false
	report := func(ok bool, msg string) {
		mark := "ok"
		if !ok {
			mark = "FAIL"
			failed = true
		}
		fmt.Fprintf(a.out, "[%s] %s\n", mark, msg)
	}

	if !cfg.Enabled {
		report(true, "telegram login is disabled")
		return nil
	}
	report(true, "telegram login is enabled")

	if err := cfg.Validate(); err != nil {
		for _, e := range unwrapAll(err) {
			report(false, e.Error())
		}
	} else {
		report(true, fmt.Sprintf("bot @%s, max auth age %s", cfg.BotName, cfg.MaxAuthAge))
	}

	secret, err := lookupSecret(ctx, cfg)
	switch {
	case err != nil:
		report(false, "bot token: "+err.Error())
	case !botTokenPattern.Match(secret):
		report(false, "bot token does not look like <id>:<secret>")
	default:
		report(true, "bot token found")
	}
	common.WipeByteArray(secret)

	if checkDB {
		if err := pingDatabase(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN); err != nil {
			report(false, "database: "+err.Error())
		} else {
			report(true, "database reachable ("+cfg.DatabaseDriver+")")
		}
	}

	if failed {
		return errors.New("configuration has problems")
	}
	return nil
}

// loadServerConfig turns config.Load panics into errors.
func loadServerConfig(args []string) (cfg *config.Config, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load config: %v", r)
		}
	}()
	return config.Load(args), nil
}

func unwrapAll(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
