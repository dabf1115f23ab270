// Package verify holds pending signup verifications in a short-TTL keyed
// store. Keeping these out of process memory lets a restart or a second
// instance pick up an in-flight signup.
package verify

import (
	"context"
	"os"
	"time"
)

// TTL is how long a signup verification code stays redeemable.
const TTL = 10 * time.Minute

// PendingSignup is the state held between the send-otp and signup calls.
type PendingSignup struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	OTPHash string `json:"otpHash"`
}

// Store is a TTL-keyed store of pending signups, keyed by email address.
type Store interface {
	Put(ctx context.Context, email string, pending PendingSignup) error
	Get(ctx context.Context, email string) (PendingSignup, bool, error)
	Delete(ctx context.Context, email string) error
}

// FromEnv returns a Redis-backed store when REDIS_ADDR is set, otherwise an
// in-process store for single-instance development setups.
func FromEnv() Store {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return NewRedisStore(addr, os.Getenv("REDIS_PASSWORD"))
	}
	return NewMemoryStore()
}
