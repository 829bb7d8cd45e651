// Package services holds the application services the transport layer
// calls into.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	"github.com/dmitrijs2005/tgauth/internal/logging"
	"github.com/dmitrijs2005/tgauth/internal/server/auth"
	"github.com/dmitrijs2005/tgauth/internal/server/config"
	"github.com/dmitrijs2005/tgauth/internal/server/linking"
	"github.com/dmitrijs2005/tgauth/internal/server/metrics"
	"github.com/dmitrijs2005/tgauth/internal/server/models"
	"github.com/dmitrijs2005/tgauth/internal/server/secrets"
	"github.com/dmitrijs2005/tgauth/internal/telegram"
)

// Linker is the part of linking.Service the auth service drives.
type Linker interface {
	Connect(ctx context.Context, userID string, o telegram.Outcome) (linking.Result, error)
	Reconnect(ctx context.Context, userID string, o telegram.Outcome) (linking.Result, error)
	Revoke(ctx context.Context, userID string) (linking.Result, error)
	Resolve(ctx context.Context, o telegram.Outcome) (*models.LinkedIdentity, error)
	Describe(ctx context.Context, userID string) (string, error)
}

// LoginResult is the result of Authenticate. UserID and AccessToken are
// only set when the Telegram account is linked to a local user.
type LoginResult struct {
	Outcome     telegram.Outcome
	UserID      string
	Linked      bool
	AccessToken string
}

type AuthService struct {
	enabled                     bool
	debug                       bool
	validator                   telegram.Validator
	secret                      secrets.Source
	linker                      Linker
	metrics                     metrics.Recorder
	logger                      logging.Logger
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	now                         func() time.Time
}

func NewAuthService(cfg *config.Config, src secrets.Source, lk Linker, m metrics.Recorder, l logging.Logger) *AuthService {
	if m == nil {
		m = metrics.Noop{}
	}
	return &AuthService{
		enabled:                     cfg.Enabled,
		debug:                       cfg.Debug,
		validator:                   telegram.Validator{MaxAge: cfg.MaxAuthAge, MaxClockSkew: cfg.MaxClockSkew},
		secret:                      src,
		linker:                      lk,
		metrics:                     m,
		logger:                      l.With("module", "auth_service"),
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
}

// Verify validates widget callback fields. A failed validation is not an
// error: it is reported in the Outcome. Errors mean the check could not
// run at all.
func (s *AuthService) Verify(ctx context.Context, fields map[string]string) (telegram.Outcome, error) {
	if !s.enabled {
		return telegram.Outcome{}, common.ErrorDisabled
	}

	token := telegram.NewAuthToken(fields)

	secret, err := s.secret.Lookup(ctx)
	if err != nil {
		s.logger.Error(ctx, "bot secret lookup failed", "error", err)
		return telegram.Outcome{}, fmt.Errorf("secret lookup: %w", err)
	}
	defer common.WipeByteArray(secret)

	if s.debug {
		s.logger.Debug(ctx, "validating assertion", "fields", fieldNames(fields))
	}

	o := s.validator.Validate(token, common.ProviderTelegram, secret, s.now())
	s.audit(ctx, token, o)
	return o, nil
}

// audit never logs the hash or any secret.
func (s *AuthService) audit(ctx context.Context, token telegram.AuthToken, o telegram.Outcome) {
	if o.OK() {
		s.metrics.AuthOutcome("success")
		s.logger.Info(ctx, "telegram assertion accepted", "uid", token.UID, "signature_valid", o.SignatureValid())
		return
	}

	f := o.Failure()
	s.metrics.AuthOutcome(string(f.Kind))
	args := []any{"kind", f.Kind, "stage", f.Stage.String(), "uid", token.UID, "signature_valid", o.SignatureValid()}
	if len(f.Fields) > 0 {
		args = append(args, "fields", f.Fields)
	}
	s.logger.Warn(ctx, "telegram assertion rejected", args...)
}

// Authenticate logs a user in with a widget assertion.
func (s *AuthService) Authenticate(ctx context.Context, fields map[string]string) (*LoginResult, error) {
	o, err := s.Verify(ctx, fields)
	if err != nil {
		return nil, err
	}

	res := &LoginResult{Outcome: o}
	if !o.OK() {
		return res, nil
	}

	li, err := s.linker.Resolve(ctx, o)
	if errors.Is(err, common.ErrorNotFound) {
		return res, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve link: %w", err)
	}

	token, err := auth.GenerateToken(li.UserID, li.ProviderUID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	res.UserID = li.UserID
	res.Linked = true
	res.AccessToken = token
	return res, nil
}

// Connect links the assertion's Telegram account to userID. An invalid
// assertion is returned as the *telegram.Failure error.
func (s *AuthService) Connect(ctx context.Context, userID string, fields map[string]string) (linking.Result, error) {
	return s.link(ctx, "connect", userID, fields, s.linker.Connect)
}

// Reconnect replaces the Telegram account linked to userID.
func (s *AuthService) Reconnect(ctx context.Context, userID string, fields map[string]string) (linking.Result, error) {
	return s.link(ctx, "reconnect", userID, fields, s.linker.Reconnect)
}

type linkFunc func(ctx context.Context, userID string, o telegram.Outcome) (linking.Result, error)

func (s *AuthService) link(ctx context.Context, op, userID string, fields map[string]string, fn linkFunc) (linking.Result, error) {
	o, err := s.Verify(ctx, fields)
	if err != nil {
		return linking.Result{}, err
	}
	if !o.OK() {
		s.metrics.Lifecycle(op, "rejected")
		return linking.Result{}, o.Err()
	}

	res, err := fn(ctx, userID, o)
	s.recordLifecycle(op, res, err)
	return res, err
}

func (s *AuthService) Revoke(ctx context.Context, userID string) (linking.Result, error) {
	if !s.enabled {
		return linking.Result{}, common.ErrorDisabled
	}
	res, err := s.linker.Revoke(ctx, userID)
	s.recordLifecycle("revoke", res, err)
	return res, err
}

// Describe returns the display name of the linked Telegram account. Like
// every other operation it is refused while Telegram login is disabled.
func (s *AuthService) Describe(ctx context.Context, userID string) (string, error) {
	if !s.enabled {
		return "", common.ErrorDisabled
	}
	return s.linker.Describe(ctx, userID)
}

func (s *AuthService) recordLifecycle(op string, res linking.Result, err error) {
	switch {
	case res.Status != "":
		s.metrics.Lifecycle(op, string(res.Status))
	case err != nil:
		s.metrics.Lifecycle(op, "error")
	}
}

func fieldNames(fields map[string]string) []string {
	names := make([]string, 0, len(fields))
	for _, k := range telegram.HashFields {
		if _, ok := fields[k]; ok {
			names = append(names, k)
		}
	}
	if _, ok := fields[telegram.FieldHash]; ok {
		names = append(names, telegram.FieldHash)
	}
	return names
}
