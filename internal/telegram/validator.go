package telegram

import (
	"strconv"
	"time"
)

// Validator checks assertions against a freshness window. The zero value
// uses DefaultMaxAge and accepts any future auth_date.
type Validator struct {
	// MaxAge is the freshness window. Zero means DefaultMaxAge.
	MaxAge time.Duration
	// MaxClockSkew bounds how far auth_date may lie in the future.
	// Zero leaves it unbounded.
	MaxClockSkew time.Duration
}

// Validate checks t with the default Validator.
func Validate(t AuthToken, expectedProvider string, secret []byte, now time.Time) Outcome {
	return Validator{}.Validate(t, expectedProvider, secret, now)
}

// Validate runs the checks in order and stops at the first violation:
//
//	structure        provider matches and uid is set         InvalidStructure
//	required fields  id and auth_date present                MissingFields
//	freshness        auth_date within the window             Expired
//	signature        hash matches the data-check string      SignatureMismatch
//
// The signature is computed whenever the required fields are present, so an
// expired assertion still reports whether it was genuinely signed.
func (v Validator) Validate(t AuthToken, expectedProvider string, secret []byte, now time.Time) Outcome {
	stage := StageReceived

	if t.Provider == "" || t.Provider != expectedProvider {
		return failDetail(InvalidStructure, stage, "provider mismatch")
	}
	if t.UID == "" {
		return failDetail(InvalidStructure, stage, "missing uid")
	}
	stage = StageStructurallyChecked

	p := PayloadOf(t)
	if missing := p.MissingRequired(); len(missing) > 0 {
		return fail(MissingFields, stage, missing...)
	}
	authDate, err := strconv.ParseInt(p.AuthDate, 10, 64)
	if err != nil {
		return failDetail(InvalidStructure, stage, "auth_date is not a unix timestamp")
	}
	if _, err := strconv.ParseInt(p.ID, 10, 64); err != nil {
		return failDetail(InvalidStructure, stage, "id is not numeric")
	}
	if p.ID != t.UID {
		return failDetail(InvalidStructure, stage, "uid does not match id")
	}
	stage = StageRequiredFieldsChecked

	sigValid := Verify(secret, p.Signed(), p.Hash)

	if !IsFreshWithSkew(authDate, now.Unix(), v.maxAgeSeconds(), int64(v.MaxClockSkew/time.Second)) {
		o := fail(Expired, stage)
		o.sigValid = sigValid
		return o
	}
	stage = StageFreshnessChecked

	if !sigValid {
		return fail(SignatureMismatch, stage)
	}

	return success(VerifiedIdentity{
		ID:        p.ID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		PhotoURL:  p.PhotoURL,
		AuthDate:  time.Unix(authDate, 0).UTC(),
	})
}

func (v Validator) maxAgeSeconds() int64 {
	if v.MaxAge <= 0 {
		return DefaultMaxAge
	}
	return int64(v.MaxAge / time.Second)
}
