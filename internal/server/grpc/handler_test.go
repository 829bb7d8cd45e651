package grpc

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/tgauth/internal/common"
	pb "github.com/dmitrijs2005/tgauth/internal/proto"
	"github.com/dmitrijs2005/tgauth/internal/server/linking"
	"github.com/dmitrijs2005/tgauth/internal/server/models"
	"github.com/dmitrijs2005/tgauth/internal/server/services"
	"github.com/dmitrijs2005/tgauth/internal/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeAuth struct {
	loginResp *services.LoginResult
	loginErr  error

	linkResp linking.Result
	linkErr  error

	describeResp string

	lastUser   string
	lastFields map[string]string
}

func (f *fakeAuth) Authenticate(ctx context.Context, fields map[string]string) (*services.LoginResult, error) {
	f.lastFields = fields
	return f.loginResp, f.loginErr
}
func (f *fakeAuth) Connect(ctx context.Context, userID string, fields map[string]string) (linking.Result, error) {
	f.lastUser, f.lastFields = userID, fields
	return f.linkResp, f.linkErr
}
func (f *fakeAuth) Reconnect(ctx context.Context, userID string, fields map[string]string) (linking.Result, error) {
	f.lastUser, f.lastFields = userID, fields
	return f.linkResp, f.linkErr
}
func (f *fakeAuth) Revoke(ctx context.Context, userID string) (linking.Result, error) {
	f.lastUser = userID
	if f.linkResp.Status == "" && f.linkErr == nil {
		return linking.Result{Status: linking.StatusRevoked}, nil
	}
	return f.linkResp, f.linkErr
}
func (f *fakeAuth) Describe(ctx context.Context, userID string) (string, error) {
	f.lastUser = userID
	return f.describeResp, nil
}

const testSecret = "S"

var testNow = time.Unix(1_700_000_000, 0)

func signedFields() map[string]string {
	fields := map[string]string{
		"id":        "42",
		"auth_date": "1700000000",
		"username":  "johndoe",
	}
	fields["hash"] = telegram.Sign([]byte(testSecret), fields)
	return fields
}

func outcomeOf(fields map[string]string) telegram.Outcome {
	return telegram.Validate(telegram.NewAuthToken(fields), common.ProviderTelegram, []byte(testSecret), testNow)
}

func withUser(userID string) context.Context {
	return context.WithValue(context.Background(), userIDKey, userID)
}

func TestPing(t *testing.T) {
	s := newTestServer("secret")
	resp, err := s.Ping(context.Background(), pb.NewStruct(nil))
	require.NoError(t, err)
	assert.Equal(t, "OK", pb.Fields(resp)["status"])
}

func TestAuthenticate_Linked(t *testing.T) {
	fields := signedFields()
	s := newTestServer("secret")
	s.auth = &fakeAuth{loginResp: &services.LoginResult{
		Outcome:     outcomeOf(fields),
		Linked:      true,
		UserID:      "user-1",
		AccessToken: "jwt",
	}}

	resp, err := s.Authenticate(context.Background(), pb.NewStruct(fields))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"result":       "success",
		"uid":          "42",
		"display_name": "@johndoe",
		"linked":       "true",
		"user_id":      "user-1",
		"access_token": "jwt",
	}, pb.Fields(resp))
}

func TestAuthenticate_Unlinked(t *testing.T) {
	fields := signedFields()
	fa := &fakeAuth{loginResp: &services.LoginResult{Outcome: outcomeOf(fields)}}
	s := newTestServer("secret")
	s.auth = fa

	resp, err := s.Authenticate(context.Background(), pb.NewStruct(fields))
	require.NoError(t, err)

	out := pb.Fields(resp)
	assert.Equal(t, "false", out["linked"])
	assert.NotContains(t, out, "access_token")
	assert.Equal(t, fields, fa.lastFields)
}

func TestAuthenticate_Rejected(t *testing.T) {
	fields := signedFields()
	fields["hash"] = strings.Repeat("0", 64)
	s := newTestServer("secret")
	s.auth = &fakeAuth{loginResp: &services.LoginResult{Outcome: outcomeOf(fields)}}

	_, err := s.Authenticate(context.Background(), pb.NewStruct(fields))
	st := status.Convert(err)
	assert.Equal(t, codes.Unauthenticated, st.Code())
	assert.Equal(t, telegram.SignatureMismatch.Reason(), st.Message())
}

func TestConnect_RequiresUser(t *testing.T) {
	s := newTestServer("secret")
	_, err := s.Connect(context.Background(), pb.NewStruct(signedFields()))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestConnect_Created(t *testing.T) {
	fa := &fakeAuth{linkResp: linking.Result{
		Status:   linking.StatusCreated,
		Identity: &models.LinkedIdentity{ProviderUID: "42"},
	}}
	s := newTestServer("secret")
	s.auth = fa

	resp, err := s.Connect(withUser("user-1"), pb.NewStruct(signedFields()))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "created", "uid": "42"}, pb.Fields(resp))
	assert.Equal(t, "user-1", fa.lastUser)
}

func TestReconnect_Updated(t *testing.T) {
	s := newTestServer("secret")
	s.auth = &fakeAuth{linkResp: linking.Result{Status: linking.StatusUpdated}}

	resp, err := s.Reconnect(withUser("user-1"), pb.NewStruct(signedFields()))
	require.NoError(t, err)
	assert.Equal(t, "updated", pb.Fields(resp)["status"])
}

func TestRevoke_NotFound(t *testing.T) {
	s := newTestServer("secret")
	s.auth = &fakeAuth{linkResp: linking.Result{Status: linking.StatusNotFound}}

	resp, err := s.Revoke(withUser("user-1"), pb.NewStruct(nil))
	require.NoError(t, err)
	assert.Equal(t, "not_found", pb.Fields(resp)["status"])
}

func TestDescribe(t *testing.T) {
	s := newTestServer("secret")
	s.auth = &fakeAuth{describeResp: "@johndoe"}

	resp, err := s.Describe(withUser("user-1"), pb.NewStruct(nil))
	require.NoError(t, err)
	assert.Equal(t, "@johndoe", pb.Fields(resp)["display_name"])
}

func TestMapError(t *testing.T) {
	s := newTestServer("secret")
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"failure", outcomeOf(map[string]string{}).Err(), codes.Unauthenticated},
		{"conflict", linking.ErrConflict, codes.AlreadyExists},
		{"user linked", linking.ErrUserLinked, codes.AlreadyExists},
		{"no user", linking.ErrNoUser, codes.InvalidArgument},
		{"disabled", common.ErrorDisabled, codes.FailedPrecondition},
		{"secret", common.ErrorSecretUnavailable, codes.Unavailable},
		{"other", errors.New("db down"), codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, status.Code(s.mapError(ctx, tt.err)))
		})
	}
}

func TestMapError_HidesInternalDetail(t *testing.T) {
	s := newTestServer("secret")
	err := s.mapError(context.Background(), errors.New("pq: password authentication failed"))
	assert.Equal(t, "internal error", status.Convert(err).Message())
}
