package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yoockh/devconnector/internal/models"
	"github.com/yoockh/devconnector/internal/repositories"
	"github.com/yoockh/devconnector/internal/utils"
	"gorm.io/gorm"
)

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) repositories.ProfileRepository {
	return &profileRepo{db: db}
}

func withOwner(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "avatar")
	})
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return r.take(ctx, r.db.WithContext(ctx), userID)
}

func (r *profileRepo) GetWithUser(ctx context.Context, userID string) (*models.Profile, error) {
	return r.take(ctx, withOwner(r.db.WithContext(ctx)), userID)
}

func (r *profileRepo) take(ctx context.Context, db *gorm.DB, userID string) (*models.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, utils.ErrNotFound
	}

	var row profileRow
	err := db.Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.model()
}

func (r *profileRepo) ListWithUser(ctx context.Context) ([]models.Profile, error) {
	var rows []profileRow
	if err := withOwner(r.db.WithContext(ctx)).Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.Profile, 0, len(rows))
	for _, row := range rows {
		p, err := row.model()
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	if _, err := uuid.Parse(p.User.ID); err != nil {
		return utils.ErrNotFound
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	p.ID = uuid.NewString()

	row, err := newProfileRow(p)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		p.ID = ""
		return utils.ErrConflict
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		p.ID = ""
		return utils.ErrNotFound
	}
	if err != nil {
		p.ID = ""
		return err
	}
	return nil
}

// Update merges the supplied fields into the stored profile and writes back only
// the columns they touch. Read and write are separate statements; a concurrent
// update to the same column loses.
func (r *profileRepo) Update(ctx context.Context, userID string, f models.ProfileFields) (*models.Profile, error) {
	p, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !f.HasChanges() {
		return p, nil
	}
	f.Apply(p)

	row, err := newProfileRow(p)
	if err != nil {
		return nil, err
	}

	// scalar columns share their names with the JSON keys
	changes := map[string]any{}
	for k, v := range f.Scalars() {
		changes[k] = v
	}
	if models.Present(f.Skills) {
		changes["skills"] = row.Skills
	}
	if len(f.SocialLinks()) > 0 {
		changes["social"] = row.Social
	}

	res := r.db.WithContext(ctx).Model(&profileRow{}).Where("user_id = ?", userID).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (r *profileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return utils.ErrNotFound
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&profileRow{}).Error
}
