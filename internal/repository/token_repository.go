package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"medtrack/reminder-service/pkg/helpers"
)

// TokenRepository issues and validates opaque bearer tokens backed by Redis.
// Tokens are stored hashed; the plaintext is only ever returned to the caller.
type TokenRepository interface {
	// CreatePair issues a new access/refresh token pair for the user.
	CreatePair(ctx context.Context, userID uint64) (access, refresh string, err error)

	// ValidateAccess resolves an access token to a user ID.
	// Returns (0, nil) for unknown or expired tokens.
	ValidateAccess(ctx context.Context, token string) (uint64, error)

	// ConsumeRefresh atomically retrieves and removes a refresh token
	// (pull semantics - a refresh token is single use).
	// Returns (0, nil) for unknown or expired tokens.
	ConsumeRefresh(ctx context.Context, token string) (uint64, error)

	// RevokeAccess removes an access token.
	RevokeAccess(ctx context.Context, token string) error
}

type tokenRepository struct {
	client     *redis.Client
	ids        *helpers.IDGenerator
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(client *redis.Client, accessTTL, refreshTTL time.Duration) TokenRepository {
	return &tokenRepository{
		client:     client,
		ids:        helpers.NewIDGenerator(),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (r *tokenRepository) CreatePair(ctx context.Context, userID uint64) (string, string, error) {
	access, err := r.ids.GenerateToken(32)
	if err != nil {
		return "", "", err
	}
	refresh, err := r.ids.GenerateToken(32)
	if err != nil {
		return "", "", err
	}

	value := strconv.FormatUint(userID, 10)
	if err := r.client.Set(ctx, accessKey(access), value, r.accessTTL).Err(); err != nil {
		return "", "", fmt.Errorf("failed to store access token: %w", err)
	}
	if err := r.client.Set(ctx, refreshKey(refresh), value, r.refreshTTL).Err(); err != nil {
		return "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return access, refresh, nil
}

func (r *tokenRepository) ValidateAccess(ctx context.Context, token string) (uint64, error) {
	val, err := r.client.Get(ctx, accessKey(token)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to validate access token: %w", err)
	}
	return parseUserID(val)
}

func (r *tokenRepository) ConsumeRefresh(ctx context.Context, token string) (uint64, error) {
	// GETDEL makes the refresh token single use
	val, err := r.client.GetDel(ctx, refreshKey(token)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to consume refresh token: %w", err)
	}
	return parseUserID(val)
}

func (r *tokenRepository) RevokeAccess(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, accessKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}
	return nil
}

func accessKey(token string) string {
	return fmt.Sprintf("auth:access:%s", hashToken(token))
}

func refreshKey(token string) string {
	return fmt.Sprintf("auth:refresh:%s", hashToken(token))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func parseUserID(val string) (uint64, error) {
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse stored user id: %w", err)
	}
	return id, nil
}
