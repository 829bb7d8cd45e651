package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	"github.com/dmitrijs2005/tgauth/internal/telegram"
)

// Sign prints the widget hash of the given fields.
//
//	tgctl sign [-token T] [-v] id=1 auth_date=1700000000 username=me
func (a *App) Sign(_ context.Context, args []string) error {
	fs := newFlagSet("sign")
	token := fs.String("token", "", "bot token (default $TGAUTH_BOT_TOKEN, else prompt)")
	verbose := fs.Bool("v", false, "also print the data-check string")
	if err := parse(fs, args); err != nil {
		return err
	}

	fields, err := parseFields(fs.Args())
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return usageErrorf("sign: no fields given")
	}

	secret, err := a.botToken(*token)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	if *verbose {
		fmt.Fprintf(a.out, "data-check-string:\n%s\n\n", telegram.Canonicalize(fields))
	}
	fmt.Fprintln(a.out, telegram.Sign(secret, fields))
	return nil
}

// Verify validates fields, hash included, the way the server does and
// prints the outcome. A rejected payload is an error.
//
//	tgctl verify [-token T] [-max-age 86400] [-skew 0] [-now unix] id=1 ... hash=H
func (a *App) Verify(_ context.Context, args []string) error {
	fs := newFlagSet("verify")
	token := fs.String("token", "", "bot token (default $TGAUTH_BOT_TOKEN, else prompt)")
	maxAge := fs.Int64("max-age", telegram.DefaultMaxAge, "maximum assertion age in seconds")
	skew := fs.Int64("skew", 0, "maximum future auth_date skew in seconds (0 = unbounded)")
	now := fs.Int64("now", 0, "current unix time (default: system clock)")
	if err := parse(fs, args); err != nil {
		return err
	}

	fields, err := parseFields(fs.Args())
	if err != nil {
		return err
	}

	secret, err := a.botToken(*token)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	at := a.now()
	if *now != 0 {
		at = time.Unix(*now, 0)
	}

	v := telegram.Validator{
		MaxAge:       time.Duration(*maxAge) * time.Second,
		MaxClockSkew: time.Duration(*skew) * time.Second,
	}
	o := v.Validate(telegram.NewAuthToken(fields), common.ProviderTelegram, secret, at)

	if o.OK() {
		id := o.Identity()
		fmt.Fprintf(a.out, "ok: %s (id %s, signed %s)\n", id.DisplayName(), id.ID, id.AuthDate.Format(time.RFC3339))
		return nil
	}

	f := o.Failure()
	fmt.Fprintf(a.out, "%s: %s\n", f.Kind, f.Error())
	fmt.Fprintf(a.out, "stage: %s\nsignature_valid: %t\n", f.Stage, o.SignatureValid())
	return fmt.Errorf("payload rejected: %s", f.Kind)
}
