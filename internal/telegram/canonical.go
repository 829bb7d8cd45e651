package telegram

import (
	"fmt"
	"strings"
)

// Widget field names.
const (
	FieldAuthDate  = "auth_date"
	FieldFirstName = "first_name"
	FieldID        = "id"
	FieldLastName  = "last_name"
	FieldPhotoURL  = "photo_url"
	FieldUsername  = "username"
	FieldHash      = "hash"
)

// HashFields is the whitelist of fields covered by the widget signature, in
// data-check string order.
var HashFields = []string{
	FieldAuthDate,
	FieldFirstName,
	FieldID,
	FieldLastName,
	FieldPhotoURL,
	FieldUsername,
}

func init() {
	if err := checkWhitelist(HashFields); err != nil {
		panic(err)
	}
}

func checkWhitelist(fields []string) error {
	if len(fields) == 0 {
		return fmt.Errorf("telegram: empty hash field whitelist")
	}
	for i, f := range fields {
		if f == "" {
			return fmt.Errorf("telegram: empty field name at %d", i)
		}
		if i > 0 && fields[i-1] >= f {
			return fmt.Errorf("telegram: whitelist not strictly sorted at %q", f)
		}
	}
	return nil
}

// Canonicalize builds the data-check string for fields: whitelisted,
// non-empty entries rendered as key=value, sorted by key and joined with
// '\n'. Keys outside HashFields are ignored.
func Canonicalize(fields map[string]string) string {
	lines := make([]string, 0, len(HashFields))
	for _, k := range HashFields {
		if v := fields[k]; v != "" {
			lines = append(lines, k+"="+v)
		}
	}
	return strings.Join(lines, "\n")
}
