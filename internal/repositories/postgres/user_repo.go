package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/devconnector/internal/models"
	"github.com/yoockh/devconnector/internal/repositories"
	"github.com/yoockh/devconnector/internal/utils"
	"gorm.io/gorm"
)

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) repositories.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
	row := userRow{
		ID:       uuid.NewString(),
		Name:     u.Name,
		Email:    strings.ToLower(u.Email),
		Password: u.Password,
		Avatar:   u.Avatar,
		Date:     u.Date,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.ErrConflict
	}
	if err != nil {
		return err
	}
	u.ID = row.ID
	u.Email = row.Email
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.ErrNotFound
	}
	return r.take(ctx, "id = ?", id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.take(ctx, "email = ?", strings.ToLower(email))
}

func (r *userRepo) take(ctx context.Context, query string, arg any) (*models.User, error) {
	var row userRow
	err := r.db.WithContext(ctx).Where(query, arg).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.model(), nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrNotFound
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRow{}).Error
}
