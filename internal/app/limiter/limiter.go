// Package limiter throttles login attempts to slow down credential stuffing.
package limiter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Limiter controls login attempts and temporary lockouts per (email, ip).
type Limiter interface {
	// Allow reports whether a login may proceed and, if blocked, for how long.
	Allow(ctx context.Context, email string, ipHash string) (bool, time.Duration, error)
	// Success resets counters after a successful login.
	Success(ctx context.Context, email string, ipHash string) error
	// Failure records a failed attempt; reports whether a block was placed.
	Failure(ctx context.Context, email string, ipHash string) (bool, time.Duration, error)
}

// HashIP returns a stable digest of an IP string so raw addresses are never
// used as storage keys.
func HashIP(ip string) string {
	h := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(h[:])
}
