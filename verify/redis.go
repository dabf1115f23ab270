package verify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps pending signups in Redis so verification survives process
// restarts and is shared across instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to the given Redis address.
func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func signupKey(email string) string {
	return "signup_otp:" + email
}

// Put stores a pending signup with the standard TTL.
func (s *RedisStore) Put(ctx context.Context, email string, pending PendingSignup) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("marshaling pending signup: %w", err)
	}
	if err := s.client.Set(ctx, signupKey(email), data, TTL).Err(); err != nil {
		return fmt.Errorf("storing pending signup: %w", err)
	}
	return nil
}

// Get retrieves a pending signup; the second return value is false when no
// entry exists or it has expired.
func (s *RedisStore) Get(ctx context.Context, email string) (PendingSignup, bool, error) {
	data, err := s.client.Get(ctx, signupKey(email)).Bytes()
	if err == redis.Nil {
		return PendingSignup{}, false, nil
	}
	if err != nil {
		return PendingSignup{}, false, fmt.Errorf("loading pending signup: %w", err)
	}
	var pending PendingSignup
	if err := json.Unmarshal(data, &pending); err != nil {
		return PendingSignup{}, false, fmt.Errorf("decoding pending signup: %w", err)
	}
	return pending, true, nil
}

// Delete removes a pending signup once it has been redeemed.
func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, signupKey(email)).Err()
}
