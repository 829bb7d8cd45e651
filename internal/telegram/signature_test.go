package telegram

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testBotToken = "123456789:ABCdefGHIjklMNOpqrsTUVwxyz"

// computed independently for the fields below
const knownHash = "bffdc1deb415b9c83455823abe7c877aa71311dcc935421e238c2159b07b2c7b"

func knownFields() map[string]string {
	return map[string]string{
		"id":         "123456789",
		"first_name": "John",
		"last_name":  "Doe",
		"username":   "johndoe",
		"auth_date":  "1700000000",
	}
}

func TestSigningKey(t *testing.T) {
	key := SigningKey([]byte(testBotToken))
	assert.Len(t, key, 32)
	assert.Equal(t, "a8f5e16a8fdedb8dae11c73aeafa07db9d20dbc55d16e47a61db2ee39e81c1cc", hex.EncodeToString(key))
}

func TestSign_KnownVector(t *testing.T) {
	assert.Equal(t, knownHash, Sign([]byte(testBotToken), knownFields()))
}

func TestVerify(t *testing.T) {
	secret := []byte(testBotToken)

	tests := []struct {
		name     string
		secret   []byte
		fields   map[string]string
		received string
		want     bool
	}{
		{name: "valid", secret: secret, fields: knownFields(), received: knownHash, want: true},
		{name: "extra unsigned keys ignored", secret: secret, fields: with(knownFields(), "hash", knownHash), received: knownHash, want: true},
		{name: "uppercase hex rejected", secret: secret, fields: knownFields(), received: strings.ToUpper(knownHash), want: false},
		{name: "tampered field", secret: secret, fields: with(knownFields(), "username", "mallory"), received: knownHash, want: false},
		{name: "added field", secret: secret, fields: with(knownFields(), "photo_url", "https://x"), received: knownHash, want: false},
		{name: "wrong secret", secret: []byte("other"), fields: knownFields(), received: knownHash, want: false},
		{name: "empty secret", secret: nil, fields: knownFields(), received: knownHash, want: false},
		{name: "empty hash", secret: secret, fields: knownFields(), received: "", want: false},
		{name: "empty fields", secret: secret, fields: map[string]string{}, received: knownHash, want: false},
		{name: "only unsigned fields", secret: secret, fields: map[string]string{"hash": knownHash}, received: knownHash, want: false},
		{name: "not hex", secret: secret, fields: knownFields(), received: "zz", want: false},
		{name: "truncated", secret: secret, fields: knownFields(), received: knownHash[:62], want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(tt.secret, tt.fields, tt.received))
		})
	}
}

func TestVerify_RoundTripAndTamper(t *testing.T) {
	secrets := []string{"s", testBotToken, strings.Repeat("k", 200)}
	payloads := []map[string]string{
		{"id": "1"},
		{"id": "42", "auth_date": "1", "username": "u"},
		knownFields(),
	}

	for _, s := range secrets {
		for _, p := range payloads {
			h := Sign([]byte(s), p)
			assert.True(t, Verify([]byte(s), p, h))

			for _, k := range HashFields {
				if p[k] == "" {
					continue
				}
				assert.False(t, Verify([]byte(s), with(p, k, p[k]+"x"), h), "field %s", k)
			}
		}
	}
}

func TestVerify_FlippedHexChar(t *testing.T) {
	flipped := []byte(knownHash)
	if flipped[0] == 'a' {
		flipped[0] = 'b'
	} else {
		flipped[0] = 'a'
	}
	assert.False(t, Verify([]byte(testBotToken), knownFields(), string(flipped)))
}

func with(m map[string]string, k, v string) map[string]string {
	out := make(map[string]string, len(m)+1)
	for key, val := range m {
		out[key] = val
	}
	out[k] = v
	return out
}
