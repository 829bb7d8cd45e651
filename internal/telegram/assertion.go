package telegram

import (
	"strings"

	"github.com/dmitrijs2005/tgauth/internal/common"
)

// AuthToken is an authentication hash as produced by the login strategy:
// the provider name, the subject uid, the profile info map and the raw
// widget parameters.
type AuthToken struct {
	Provider string
	UID      string
	Info     map[string]string
	RawInfo  map[string]string
}

// NewAuthToken wraps the widget callback parameters the way the Telegram
// login strategy does: uid is the Telegram id, info carries the profile and
// raw_info keeps every parameter, hash included.
func NewAuthToken(params map[string]string) AuthToken {
	raw := make(map[string]string, len(params))
	for k, v := range params {
		raw[k] = v
	}

	info := map[string]string{}
	name := strings.TrimSpace(params[FieldFirstName] + " " + params[FieldLastName])
	for k, v := range map[string]string{
		"name":         name,
		"nickname":     params[FieldUsername],
		FieldUsername:  params[FieldUsername],
		FieldFirstName: params[FieldFirstName],
		FieldLastName:  params[FieldLastName],
		"image":        params[FieldPhotoURL],
	} {
		if v != "" {
			info[k] = v
		}
	}

	return AuthToken{
		Provider: common.ProviderTelegram,
		UID:      params[FieldID],
		Info:     info,
		RawInfo:  raw,
	}
}

// Payload is the identity data of an assertion with every field the
// validator looks at spelled out.
type Payload struct {
	ID        string
	AuthDate  string
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	Hash      string

	fields map[string]string
}

// PayloadOf picks the identity data of t: the raw widget parameters when
// present, the info map otherwise.
func PayloadOf(t AuthToken) Payload {
	src := t.RawInfo
	if len(src) == 0 {
		src = t.Info
	}
	return NewPayload(src)
}

// NewPayload decodes a field map.
func NewPayload(fields map[string]string) Payload {
	return Payload{
		ID:        fields[FieldID],
		AuthDate:  fields[FieldAuthDate],
		FirstName: fields[FieldFirstName],
		LastName:  fields[FieldLastName],
		Username:  fields[FieldUsername],
		PhotoURL:  photoURL(fields),
		Hash:      fields[FieldHash],
		fields:    fields,
	}
}

// photo_url in raw parameters, image in an info map.
func photoURL(fields map[string]string) string {
	if v := fields[FieldPhotoURL]; v != "" {
		return v
	}
	return fields["image"]
}

// MissingRequired lists the absent required fields in whitelist order.
func (p Payload) MissingRequired() []string {
	var missing []string
	if p.AuthDate == "" {
		missing = append(missing, FieldAuthDate)
	}
	if p.ID == "" {
		missing = append(missing, FieldID)
	}
	return missing
}

// Signed returns the map the hash is computed over.
func (p Payload) Signed() map[string]string {
	return p.fields
}
