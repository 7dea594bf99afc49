package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvalodim/pet_shop/internal/models"
	"github.com/mvalodim/pet_shop/internal/session"
	"github.com/mvalodim/pet_shop/internal/tokens"
)

var sessionSecret = []byte("session-test-secret")

func mintSession(t *testing.T, subject, jti string, expiry time.Time) string {
	t.Helper()

	claims := &tokens.SessionClaims{
		Name:        "Ana",
		Email:       "ana@example.com",
		LoginMethod: "google",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sessionSecret)
	require.NoError(t, err)
	return raw
}

func TestEstablishSession_UpsertsUser(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{
		Repo:          r,
		SessionSecret: sessionSecret,
		Revoker:       session.NewMemoryRevoker(),
		OwnerID:       "owner-1",
	}
	ctx := context.Background()

	raw := mintSession(t, "user-1", "jti-1", time.Now().Add(time.Hour))
	user, claims, err := svc.EstablishSession(ctx, raw)
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "jti-1", claims.ID)

	// The configured owner signs in as admin.
	raw = mintSession(t, "owner-1", "jti-2", time.Now().Add(time.Hour))
	owner, _, err := svc.EstablishSession(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, owner.Role)
}

func TestEstablishSession_RejectsBadToken(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{
		Repo:          r,
		SessionSecret: sessionSecret,
		Revoker:       session.NewMemoryRevoker(),
	}

	_, _, err := svc.EstablishSession(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout_RevokesSession(t *testing.T) {
	r := newTestRepo(t)
	revoker := session.NewMemoryRevoker()
	svc := &UserService{
		Repo:          r,
		SessionSecret: sessionSecret,
		Revoker:       revoker,
	}
	ctx := context.Background()

	raw := mintSession(t, "user-1", "jti-1", time.Now().Add(time.Hour))
	_, _, err := svc.EstablishSession(ctx, raw)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, raw))

	_, _, err = svc.EstablishSession(ctx, raw)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Logging out with junk is a silent no-op.
	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestMe_NotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r, SessionSecret: sessionSecret, Revoker: session.NewMemoryRevoker()}

	_, err := svc.Me(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
