package auth_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-gate/internal/auth"
)

type testIdentity struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Groups   []string `json:"roles"`
}

func (t testIdentity) Roles() []string { return t.Groups }

type strictIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s strictIdentity) Roles() []string { return nil }

func (s strictIdentity) Validate() error {
	if s.Username == "" {
		return errors.New("username is required")
	}
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newManager(t *testing.T, secret string, clock *fakeClock) *auth.TokenManager {
	t.Helper()
	cfg := auth.SigningConfig{Secret: secret, Expiry: 5, ExpiryUnit: auth.UnitMinutes}
	opts := []auth.Option{}
	if clock != nil {
		opts = append(opts, auth.WithClock(clock.Now))
	}
	tm, err := auth.NewTokenManager(cfg, opts...)
	require.NoError(t, err)
	return tm
}

// signRaw builds a compact token from literal header and payload JSON,
// bypassing the codec.
func signRaw(secret, header, payload string) string {
	enc := base64.RawURLEncoding
	signing := enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString([]byte(payload))
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(signing))
	return signing + "." + enc.EncodeToString(mac.Sum(nil))
}
