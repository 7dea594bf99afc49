package repo

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mvalodim/pet_shop/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }

func TestUpsertUser_RequiresID(t *testing.T) {
	r := New(initTestDB(t))

	_, err := r.UpsertUser(context.Background(), UserPatch{}, "")
	require.ErrorIs(t, err, ErrUserIDRequired)
}

func TestUpsertUser_CreatesWithDefaults(t *testing.T) {
	r := New(initTestDB(t))

	user, err := r.UpsertUser(context.Background(), UserPatch{
		ID:    "user-1",
		Name:  strPtr("Ana"),
		Email: strPtr("ana@example.com"),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.False(t, user.LastSignedIn.IsZero())
}

func TestUpsertUser_OwnerPromotedToAdmin(t *testing.T) {
	r := New(initTestDB(t))

	user, err := r.UpsertUser(context.Background(), UserPatch{ID: "owner-1"}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// An explicit role wins over the owner promotion.
	role := models.RoleUser
	user, err = r.UpsertUser(context.Background(), UserPatch{ID: "owner-1", Role: &role}, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestUpsertUser_MergesOnlyProvidedFields(t *testing.T) {
	r := New(initTestDB(t))
	ctx := context.Background()

	_, err := r.UpsertUser(ctx, UserPatch{
		ID:    "user-1",
		Name:  strPtr("Ana"),
		Email: strPtr("ana@example.com"),
	}, "")
	require.NoError(t, err)

	user, err := r.UpsertUser(ctx, UserPatch{
		ID:   "user-1",
		Name: strPtr("Ana Maria"),
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "Ana Maria", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestUpsertUser_EmptyPatchRefreshesLastSeen(t *testing.T) {
	r := New(initTestDB(t))
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Hour)
	_, err := r.UpsertUser(ctx, UserPatch{ID: "user-1", LastSignedIn: &before}, "")
	require.NoError(t, err)

	user, err := r.UpsertUser(ctx, UserPatch{ID: "user-1"}, "")
	require.NoError(t, err)
	assert.True(t, user.LastSignedIn.After(before))
}
