package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/tgauth/internal/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	pingErr  error
	revoke   string
	describe string
	closed   bool
}

func (f *fakeClient) Ping(context.Context) error               { return f.pingErr }
func (f *fakeClient) Revoke(context.Context) (string, error)   { return f.revoke, nil }
func (f *fakeClient) Describe(context.Context) (string, error) { return f.describe, nil }

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func stubClient(t *testing.T, fc *fakeClient) (gotAddr, gotToken *string) {
	t.Helper()
	orig := newClient
	t.Cleanup(func() { newClient = orig })

	var addr, token string
	newClient = func(a, tok string) (Client, error) {
		addr, token = a, tok
		return fc, nil
	}
	return &addr, &token
}

func TestPing(t *testing.T) {
	fc := &fakeClient{}
	addr, token := stubClient(t, fc)

	a, out, _ := newTestApp()
	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"ping", "-addr", "host:1"}))

	assert.Equal(t, "OK\n", out.String())
	assert.Equal(t, "host:1", *addr)
	assert.Empty(t, *token)
	assert.True(t, fc.closed)
}

func TestPing_Unavailable(t *testing.T) {
	stubClient(t, &fakeClient{pingErr: client.ErrUnavailable})

	a, _, errOut := newTestApp()
	assert.Equal(t, ExitFailure, a.Run(context.Background(), []string{"ping"}))
	assert.Contains(t, errOut.String(), "server unavailable")
}

func TestRevoke(t *testing.T) {
	_, token := stubClient(t, &fakeClient{revoke: "revoked"})

	a, out, _ := newTestApp()
	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"revoke", "-access-token", "jwt"}))

	assert.Equal(t, "revoked\n", out.String())
	assert.Equal(t, "jwt", *token)
}

func TestRevoke_TokenFromEnv(t *testing.T) {
	_, token := stubClient(t, &fakeClient{revoke: "not_found"})

	a, out, _ := newTestApp()
	a.getenv = func(k string) string {
		if k == "TGAUTH_ACCESS_TOKEN" {
			return "env-jwt"
		}
		return ""
	}
	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"revoke"}))

	assert.Equal(t, "not_found\n", out.String())
	assert.Equal(t, "env-jwt", *token)
}

func TestRevoke_RequiresToken(t *testing.T) {
	stubClient(t, &fakeClient{})

	a, _, errOut := newTestApp()
	assert.Equal(t, ExitUsage, a.Run(context.Background(), []string{"revoke"}))
	assert.Contains(t, errOut.String(), "access token required")
}

func TestDescribe(t *testing.T) {
	stubClient(t, &fakeClient{describe: "@johndoe"})

	a, out, _ := newTestApp()
	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"describe", "-access-token", "jwt"}))
	assert.Equal(t, "@johndoe\n", out.String())

	stubClient(t, &fakeClient{})
	a, out, _ = newTestApp()
	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"describe", "-access-token", "jwt"}))
	assert.Equal(t, "no telegram account linked\n", out.String())
}

func TestDial_Error(t *testing.T) {
	orig := newClient
	t.Cleanup(func() { newClient = orig })
	newClient = func(string, string) (Client, error) { return nil, errors.New("bad target") }

	a, _, errOut := newTestApp()
	assert.Equal(t, ExitFailure, a.Run(context.Background(), []string{"ping"}))
	assert.Contains(t, errOut.String(), "bad target")
}
