// Package repositories declares the storage contracts shared by the MongoDB and
// Postgres backends. Implementations return utils.ErrNotFound for unknown or
// malformed ids and utils.ErrConflict for uniqueness violations.
package repositories

import (
	"context"

	"github.com/yoockh/devconnector/internal/models"
)

type UserRepository interface {
	// Create stores u and sets u.ID.
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	// GetByUserID returns the stored profile with only User.ID set.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	// GetWithUser returns the profile joined with its owner's name and avatar.
	GetWithUser(ctx context.Context, userID string) (*models.Profile, error)
	ListWithUser(ctx context.Context) ([]models.Profile, error)
	// Create stores p and sets p.ID.
	Create(ctx context.Context, p *models.Profile) error
	// Update writes only the supplied fields and returns the post-update profile.
	Update(ctx context.Context, userID string, f models.ProfileFields) (*models.Profile, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
