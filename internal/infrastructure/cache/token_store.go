package cache

import (
	"context"
	"fmt"
	"time"

	"rehab-scheduling/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type tokenStore struct {
	client *redis.Client
}

// NewTokenStore keeps token ids under "<kind>:<user id>:<token id>" with the
// token's own expiry as TTL.
func NewTokenStore(client *redis.Client) repository.TokenRepository {
	return &tokenStore{client: client}
}

func tokenKey(kind repository.TokenKind, userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", kind, userID.String(), tokenID)
}

func (s *tokenStore) Save(ctx context.Context, kind repository.TokenKind, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(kind, userID, tokenID), "valid", ttl).Err()
}

func (s *tokenStore) Exists(ctx context.Context, kind repository.TokenKind, userID uuid.UUID, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(kind, userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *tokenStore) Delete(ctx context.Context, kind repository.TokenKind, userID uuid.UUID, tokenID string) error {
	return s.client.Del(ctx, tokenKey(kind, userID, tokenID)).Err()
}
