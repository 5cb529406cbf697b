// Package cartsession derives and validates the idempotency key tying a
// checkout attempt to at most one document per document kind.
package cartsession

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxAge is the window within which a session id may still be
// matched to an existing document. Older sessions are treated as stale and
// a new document is created instead.
const DefaultMaxAge = 30 * time.Minute

const (
	// DefaultPrefix matches the ids the checkout flow produces.
	DefaultPrefix = "cart"

	suffixBytes = 6
)

// Generate produces an opaque session id of the form
// <prefix>_<unix-milli>_<hex-suffix>. The embedded timestamp is used by
// IsFresh; callers must treat the id as opaque.
func Generate(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	suffix := make([]byte, suffixBytes)
	_, _ = rand.Read(suffix)
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(suffix))
}

// IsValid reports whether id is structurally well-formed.
func IsValid(id string) bool {
	_, err := timestampOf(id)
	return err == nil
}

// IsFresh reports whether the session was generated within maxAge of now.
// Malformed ids are never fresh.
func IsFresh(id string, maxAge time.Duration) bool {
	ts, err := timestampOf(id)
	if err != nil {
		return false
	}
	age := time.Since(ts)
	return age >= 0 && age <= maxAge
}

func timestampOf(id string) (time.Time, error) {
	parts := strings.Split(id, "_")
	if len(parts) < 3 {
		return time.Time{}, fmt.Errorf("malformed session id")
	}
	tsPart := parts[len(parts)-2]
	suffix := parts[len(parts)-1]
	if suffix == "" {
		return time.Time{}, fmt.Errorf("malformed session id")
	}
	if _, err := hex.DecodeString(suffix); err != nil {
		return time.Time{}, fmt.Errorf("malformed session suffix")
	}
	millis, err := strconv.ParseInt(tsPart, 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}, fmt.Errorf("malformed session timestamp")
	}
	return time.UnixMilli(millis), nil
}
