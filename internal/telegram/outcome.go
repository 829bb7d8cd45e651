package telegram

import (
	"fmt"
	"strings"
)

// FailureKind enumerates why an assertion or lifecycle operation failed.
type FailureKind string

const (
	InvalidStructure  FailureKind = "invalid_structure"
	MissingFields     FailureKind = "missing_fields"
	Expired           FailureKind = "expired"
	SignatureMismatch FailureKind = "signature_mismatch"

	// Lifecycle only.
	StoreConflict FailureKind = "store_conflict"
	StoreNotFound FailureKind = "store_not_found"
)

// Reason is the human-readable text shown to the end user.
func (k FailureKind) Reason() string {
	switch k {
	case InvalidStructure:
		return "Invalid authentication data"
	case MissingFields:
		return "Missing authentication fields"
	case Expired:
		return "Authentication data expired"
	case SignatureMismatch:
		return "Invalid authentication signature"
	case StoreConflict:
		return "Telegram account is linked to another user"
	case StoreNotFound:
		return "No linked Telegram account"
	default:
		return "Authentication failed"
	}
}

// Stage is a step of the validation state machine.
type Stage int

const (
	StageReceived Stage = iota
	StageStructurallyChecked
	StageRequiredFieldsChecked
	StageFreshnessChecked
	StageSignatureChecked
	StageDone
)

var stageNames = [...]string{
	"received",
	"structurally_checked",
	"required_fields_checked",
	"freshness_checked",
	"signature_checked",
	"done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Failure describes a rejected assertion. Stage is the last stage the
// assertion passed. Fields lists the missing names for MissingFields.
type Failure struct {
	Kind   FailureKind
	Stage  Stage
	Fields []string
	Detail string
}

func (f *Failure) Error() string {
	msg := f.Kind.Reason()
	if len(f.Fields) > 0 {
		msg += ": " + strings.Join(f.Fields, ", ")
	}
	if f.Detail != "" {
		msg += " (" + f.Detail + ")"
	}
	return msg
}

// Outcome is the result of Validate: exactly one of Identity or Failure is
// non-nil.
type Outcome struct {
	identity *VerifiedIdentity
	failure  *Failure
	sigValid bool
}

func success(id VerifiedIdentity) Outcome {
	return Outcome{identity: &id, sigValid: true}
}

func fail(kind FailureKind, stage Stage, fields ...string) Outcome {
	return Outcome{failure: &Failure{Kind: kind, Stage: stage, Fields: fields}}
}

func failDetail(kind FailureKind, stage Stage, detail string) Outcome {
	return Outcome{failure: &Failure{Kind: kind, Stage: stage, Detail: detail}}
}

// OK reports a successful validation.
func (o Outcome) OK() bool { return o.identity != nil }

// Identity returns the verified identity, or nil on failure.
func (o Outcome) Identity() *VerifiedIdentity {
	if o.identity == nil {
		return nil
	}
	id := *o.identity
	return &id
}

// Failure returns the failure, or nil on success.
func (o Outcome) Failure() *Failure { return o.failure }

// Kind returns the failure kind, or "" on success.
func (o Outcome) Kind() FailureKind {
	if o.failure == nil {
		return ""
	}
	return o.failure.Kind
}

// SignatureValid reports whether the signature was checked and matched.
// An Expired outcome may still carry a valid signature.
func (o Outcome) SignatureValid() bool { return o.sigValid }

// Err returns the failure as an error, or nil on success.
func (o Outcome) Err() error {
	if o.failure == nil {
		return nil
	}
	return o.failure
}
