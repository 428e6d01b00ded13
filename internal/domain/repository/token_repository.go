package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes access from refresh tokens in the session store
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access_token"
	TokenKindRefresh TokenKind = "refresh_token"
)

// TokenRepository tracks issued token ids. A token id missing from the
// store is treated as revoked.
type TokenRepository interface {
	Save(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string) (bool, error)
	Delete(ctx context.Context, kind TokenKind, userID uuid.UUID, tokenID string) error
}
