// Package cache holds the revoked access token blocklist. Redis backs it when
// configured; otherwise entries live in process memory.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// TokenBlocklist records access tokens that were logged out before they expired.
type TokenBlocklist interface {
	Block(ctx context.Context, token string, ttl time.Duration) error
	IsBlocked(ctx context.Context, token string) (bool, error)
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "blocklist:access:" + hex.EncodeToString(sum[:])
}
