package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/repo"
	"github.com/mvalodim/pet_shop/internal/session"
	"github.com/mvalodim/pet_shop/internal/tokens"
)

type UserService struct {
	Repo          *repo.GormRepo
	SessionSecret []byte
	Revoker       session.Revoker

	// OwnerID is promoted to admin on first sign-in.
	OwnerID string
}

// EstablishSession verifies a token minted by the external identity provider
// and upserts the matching user row. The caller turns the same token into the
// session cookie.
func (s *UserService) EstablishSession(ctx context.Context, token string) (*models.User, *tokens.SessionClaims, error) {
	claims, err := tokens.ParseSession(token, s.SessionSecret)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	revoked, err := s.Revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, fmt.Errorf("%w: session revoked", ErrUnauthorized)
	}

	now := time.Now().UTC()
	patch := repo.UserPatch{
		ID:           claims.Subject,
		LastSignedIn: &now,
	}
	if claims.Name != "" {
		patch.Name = &claims.Name
	}
	if claims.Email != "" {
		patch.Email = &claims.Email
	}
	if claims.LoginMethod != "" {
		patch.LoginMethod = &claims.LoginMethod
	}

	user, err := s.Repo.UpsertUser(ctx, patch, s.OwnerID)
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout denylists the session token's ID for its remaining lifetime. An
// already-invalid token is a no-op.
func (s *UserService) Logout(ctx context.Context, token string) error {
	claims, err := tokens.ParseSession(token, s.SessionSecret)
	if err != nil {
		return nil
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.Revoker.Revoke(ctx, claims.ID, ttl)
}
