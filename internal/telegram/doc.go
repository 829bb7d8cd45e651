// Package telegram verifies Telegram Login Widget assertions.
//
// The widget redirects the browser back with a set of identity fields and a
// hash. The hash is the lowercase hex HMAC-SHA256 of the data-check string
// (Canonicalize) keyed with SHA-256 of the bot token. Validate runs the
// structural, required-field, freshness and signature checks in one pass and
// returns an Outcome: either a VerifiedIdentity or a Failure of a known kind.
//
// Nothing in this package performs I/O or keeps state; every function is
// safe for concurrent use.
package telegram
