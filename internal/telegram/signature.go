package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SigningKey derives the HMAC key from the bot token.
func SigningKey(secret []byte) []byte {
	sum := sha256.Sum256(secret)
	return sum[:]
}

// Sign returns the lowercase hex digest the widget would attach to fields.
func Sign(secret []byte, fields map[string]string) string {
	return hex.EncodeToString(digest(secret, Canonicalize(fields)))
}

// Verify reports whether received is the signature of fields under secret.
// It returns false when there is nothing to verify: an empty secret, an empty
// received hash or no whitelisted fields.
func Verify(secret []byte, fields map[string]string, received string) bool {
	if len(secret) == 0 || received == "" {
		return false
	}
	data := Canonicalize(fields)
	if data == "" {
		return false
	}
	got, err := hex.DecodeString(received)
	if err != nil || hex.EncodeToString(got) != received {
		return false
	}
	return hmac.Equal(digest(secret, data), got)
}

func digest(secret []byte, data string) []byte {
	mac := hmac.New(sha256.New, SigningKey(secret))
	mac.Write([]byte(data))
	return mac.Sum(nil)
}
