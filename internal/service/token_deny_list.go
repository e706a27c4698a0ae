package service

import (
	"context"
	"time"

	"beedical/internal/infrastructure/cache"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenDenyList remembers revoked access tokens until they expire on their own
type TokenDenyList interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type tokenDenyList struct {
	store cache.KVStore
	now   func() time.Time
}

func NewTokenDenyList(store cache.KVStore) TokenDenyList {
	return &tokenDenyList{store: store, now: time.Now}
}

func (d *tokenDenyList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		// already unusable
		return nil
	}
	return d.store.Set(ctx, revokedTokenKeyPrefix+tokenID, "1", ttl)
}

func (d *tokenDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return d.store.Exists(ctx, revokedTokenKeyPrefix+tokenID)
}
