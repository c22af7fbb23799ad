package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revocationKeyPrefix = "career-compass:revoked:"

// TokenRevoker invalidates credentials by token ID before their natural
// expiry. Logout revokes; the session middleware checks on every request.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAtUnix int64) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RevocationList tracks logged-out token IDs in Redis until their natural
// expiry. Without Redis the list degrades to a no-op: JWT expiry still
// bounds every session, revocation just loses immediacy.
type RevocationList struct {
	client *redis.Client
	logger *zap.Logger
}

var _ TokenRevoker = (*RevocationList)(nil)

// NewRevocationList wraps the shared Redis client. client may be nil.
func NewRevocationList(client *redis.Client, logger *zap.Logger) *RevocationList {
	return &RevocationList{client: client, logger: logger}
}

// Revoke marks a token ID as invalid until the token would have expired.
func (r *RevocationList) Revoke(ctx context.Context, tokenID string, expiresAtUnix int64) error {
	if r.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(time.Unix(expiresAtUnix, 0))
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationKeyPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token ID was revoked. Redis errors fail
// open on revocation only and are logged.
func (r *RevocationList) IsRevoked(ctx context.Context, tokenID string) bool {
	if r.client == nil || tokenID == "" {
		return false
	}
	n, err := r.client.Exists(ctx, revocationKeyPrefix+tokenID).Result()
	if err != nil {
		if r.logger != nil {
			r.logger.Warn("revocation lookup failed", zap.Error(err))
		}
		return false
	}
	return n > 0
}
