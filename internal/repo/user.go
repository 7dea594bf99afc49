package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mvalodim/pet_shop/internal/models"
)

var ErrUserIDRequired = errors.New("user id is required")

// UserPatch carries only the fields the identity provider actually supplied;
// nil fields are left untouched on update.
type UserPatch struct {
	ID           string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *models.Role
	LastSignedIn *time.Time
}

func (p UserPatch) empty() bool {
	return p.Name == nil && p.Email == nil && p.LoginMethod == nil && p.Role == nil && p.LastSignedIn == nil
}

// UpsertUser creates or merges a user row. When no role is supplied and the
// identity matches ownerID, the row is forced to admin. An update carrying no
// fields at all still refreshes last_signed_in.
func (r *GormRepo) UpsertUser(ctx context.Context, patch UserPatch, ownerID string) (*models.User, error) {
	if patch.ID == "" {
		return nil, ErrUserIDRequired
	}

	if patch.Role == nil && ownerID != "" && patch.ID == ownerID {
		admin := models.RoleAdmin
		patch.Role = &admin
	}

	var user models.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("id = ?", patch.ID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				ID:           patch.ID,
				Role:         models.RoleUser,
				LastSignedIn: time.Now().UTC(),
			}
			applyPatch(&user, patch)
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}

		if patch.empty() {
			user.LastSignedIn = time.Now().UTC()
		} else {
			applyPatch(&user, patch)
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func applyPatch(user *models.User, patch UserPatch) {
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.LoginMethod != nil {
		user.LoginMethod = *patch.LoginMethod
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.LastSignedIn != nil {
		user.LastSignedIn = *patch.LastSignedIn
	}
}

func (r *GormRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
