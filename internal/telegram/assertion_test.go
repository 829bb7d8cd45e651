package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/tgauth/internal/common"
)

func TestNewAuthToken(t *testing.T) {
	params := map[string]string{
		"id": "42", "auth_date": "1", "hash": "h",
		"first_name": "John", "last_name": "Doe", "username": "jd", "photo_url": "https://p",
	}

	tok := NewAuthToken(params)

	assert.Equal(t, common.ProviderTelegram, tok.Provider)
	assert.Equal(t, "42", tok.UID)
	assert.Equal(t, map[string]string{
		"name": "John Doe", "nickname": "jd", "username": "jd",
		"first_name": "John", "last_name": "Doe", "image": "https://p",
	}, tok.Info)
	assert.Equal(t, params, tok.RawInfo)

	params["id"] = "changed"
	assert.Equal(t, "42", tok.RawInfo["id"], "raw info is copied")
}

func TestNewAuthToken_SparseProfile(t *testing.T) {
	tok := NewAuthToken(map[string]string{"id": "7", "auth_date": "1", "last_name": "Solo"})
	assert.Equal(t, map[string]string{"name": "Solo", "last_name": "Solo"}, tok.Info)
}

func TestPayload_MissingRequired(t *testing.T) {
	assert.Nil(t, NewPayload(map[string]string{"id": "1", "auth_date": "2"}).MissingRequired())
	assert.Equal(t, []string{"id"}, NewPayload(map[string]string{"auth_date": "2"}).MissingRequired())
	assert.Equal(t, []string{"auth_date", "id"}, NewPayload(nil).MissingRequired())
	assert.Equal(t, []string{"id"}, NewPayload(map[string]string{"id": "", "auth_date": "2"}).MissingRequired())
}

func TestPayload_PhotoFromInfoImage(t *testing.T) {
	assert.Equal(t, "https://img", NewPayload(map[string]string{"image": "https://img"}).PhotoURL)
	assert.Equal(t, "https://p", NewPayload(map[string]string{"image": "https://img", "photo_url": "https://p"}).PhotoURL)
}

func TestVerifiedIdentity_Info(t *testing.T) {
	v := VerifiedIdentity{ID: "42", Username: "jd", AuthDate: time.Unix(1700000000, 0)}
	assert.Equal(t, map[string]string{"id": "42", "auth_date": "1700000000", "username": "jd"}, v.Info())
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		v    VerifiedIdentity
		want string
	}{
		{"username", VerifiedIdentity{ID: "1", Username: "jd", FirstName: "John"}, "@jd"},
		{"full name", VerifiedIdentity{ID: "1", FirstName: "John", LastName: "Doe"}, "John Doe"},
		{"first name", VerifiedIdentity{ID: "1", FirstName: "John"}, "John"},
		{"last name", VerifiedIdentity{ID: "1", LastName: "Doe"}, "Doe"},
		{"id", VerifiedIdentity{ID: "1"}, "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.DisplayName())
		})
	}

	assert.Equal(t, "John", DisplayNameFromInfo(map[string]string{"first_name": "John"}, "9"))
	assert.Equal(t, "9", DisplayNameFromInfo(nil, "9"))
}

func TestFailure_Error(t *testing.T) {
	f := &Failure{Kind: MissingFields, Fields: []string{"auth_date", "id"}}
	assert.Equal(t, "Missing authentication fields: auth_date, id", f.Error())

	f = &Failure{Kind: InvalidStructure, Detail: "provider mismatch"}
	assert.Equal(t, "Invalid authentication data (provider mismatch)", f.Error())

	assert.Equal(t, "Authentication data expired", (&Failure{Kind: Expired}).Error())
	assert.Equal(t, "Authentication failed", FailureKind("other").Reason())
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "received", StageReceived.String())
	assert.Equal(t, "done", StageDone.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
