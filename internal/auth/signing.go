package auth

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ExpiryUnit is a fixed-length unit used to express token lifetime.
type ExpiryUnit string

const (
	UnitNanos    ExpiryUnit = "nanos"
	UnitMicros   ExpiryUnit = "micros"
	UnitMillis   ExpiryUnit = "millis"
	UnitSeconds  ExpiryUnit = "seconds"
	UnitMinutes  ExpiryUnit = "minutes"
	UnitHours    ExpiryUnit = "hours"
	UnitHalfDays ExpiryUnit = "half_days"
	UnitDays     ExpiryUnit = "days"
)

var unitDurations = map[ExpiryUnit]time.Duration{
	UnitNanos:    time.Nanosecond,
	UnitMicros:   time.Microsecond,
	UnitMillis:   time.Millisecond,
	UnitSeconds:  time.Second,
	UnitMinutes:  time.Minute,
	UnitHours:    time.Hour,
	UnitHalfDays: 12 * time.Hour,
	UnitDays:     24 * time.Hour,
}

// ParseExpiryUnit accepts unit names case-insensitively, singular or plural.
func ParseExpiryUnit(raw string) (ExpiryUnit, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, "-", "_")
	if !strings.HasSuffix(name, "s") {
		name += "s"
	}
	unit := ExpiryUnit(name)
	if _, ok := unitDurations[unit]; !ok {
		return "", fmt.Errorf("%w: unknown expiry unit %q", ErrConfiguration, raw)
	}
	return unit, nil
}

// Duration returns the length of one unit, or 0 for unknown units.
func (u ExpiryUnit) Duration() time.Duration {
	return unitDurations[u]
}

// SigningConfig holds the shared secret and token lifetime policy. It is
// loaded once at startup and never mutated.
type SigningConfig struct {
	Secret     string
	Expiry     int
	ExpiryUnit ExpiryUnit
}

// NewSigningConfig parses unit and validates the result.
func NewSigningConfig(secret string, expiry int, unit string) (SigningConfig, error) {
	parsed, err := ParseExpiryUnit(unit)
	if err != nil {
		return SigningConfig{}, err
	}
	cfg := SigningConfig{Secret: secret, Expiry: expiry, ExpiryUnit: parsed}
	if err := cfg.Validate(); err != nil {
		return SigningConfig{}, err
	}
	return cfg, nil
}

// TTL is the token lifetime applied at issuance.
func (c SigningConfig) TTL() time.Duration {
	return time.Duration(c.Expiry) * c.ExpiryUnit.Duration()
}

// ExpiryInSeconds is the lifetime in whole seconds. Display only.
func (c SigningConfig) ExpiryInSeconds() int64 {
	return int64(c.TTL() / time.Second)
}

// Validate rejects configurations that would yield unsigned or already
// expired tokens. exp carries whole seconds, so the lifetime must be at
// least one second.
func (c SigningConfig) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("%w: empty secret", ErrConfiguration)
	}
	if c.Expiry <= 0 {
		return fmt.Errorf("%w: expiry must be positive, got %d", ErrConfiguration, c.Expiry)
	}
	if c.ExpiryUnit.Duration() == 0 {
		return fmt.Errorf("%w: unknown expiry unit %q", ErrConfiguration, c.ExpiryUnit)
	}
	if int64(c.Expiry) > math.MaxInt64/int64(c.ExpiryUnit.Duration()) {
		return fmt.Errorf("%w: expiry overflows", ErrConfiguration)
	}
	if ttl := c.TTL(); ttl < time.Second {
		return fmt.Errorf("%w: lifetime %s is below one second", ErrConfiguration, ttl)
	}
	return nil
}
