package telegram

// DefaultMaxAge is the widget freshness window in seconds.
const DefaultMaxAge int64 = 86400

// IsFresh reports whether an assertion issued at authDate is at most
// maxAgeSeconds old at now. Both timestamps are unix seconds. The bound is
// inclusive and an authDate in the future counts as fresh.
func IsFresh(authDate, now, maxAgeSeconds int64) bool {
	if authDate >= now {
		return true
	}
	if maxAgeSeconds < 0 {
		return false
	}
	return distance(authDate, now) <= uint64(maxAgeSeconds)
}

// IsFreshWithSkew is IsFresh with an upper bound on how far authDate may lie
// in the future. maxSkewSeconds <= 0 leaves future dates unbounded.
func IsFreshWithSkew(authDate, now, maxAgeSeconds, maxSkewSeconds int64) bool {
	if !IsFresh(authDate, now, maxAgeSeconds) {
		return false
	}
	if maxSkewSeconds > 0 && authDate > now && distance(now, authDate) > uint64(maxSkewSeconds) {
		return false
	}
	return true
}

// distance returns later-earlier for earlier <= later. The difference of
// two int64 values does not always fit an int64 but always fits a uint64.
func distance(earlier, later int64) uint64 {
	return uint64(later) - uint64(earlier)
}
