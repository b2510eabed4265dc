package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yoockh/devconnector/internal/cache"
	"github.com/yoockh/devconnector/internal/models"
	"github.com/yoockh/devconnector/internal/repositories"
	"github.com/yoockh/devconnector/internal/utils"
)

type ProfileService interface {
	GetMe(ctx context.Context, userID string) (*models.Profile, error)
	Upsert(ctx context.Context, userID string, f models.ProfileFields) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	DeleteMe(ctx context.Context, userID string) error
}

type profileService struct {
	profiles repositories.ProfileRepository
	users    repositories.UserRepository
	cache    cache.Cache
	ttl      time.Duration
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewProfileService wires the profile operations. A nil cache disables caching.
func NewProfileService(profiles repositories.ProfileRepository, users repositories.UserRepository, c cache.Cache, ttl time.Duration, log logrus.FieldLogger) ProfileService {
	if c == nil {
		c = cache.Nop{}
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	if log == nil {
		log = logrus.New()
	}
	return &profileService{
		profiles: profiles,
		users:    users,
		cache:    c,
		ttl:      ttl,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *profileService) GetMe(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	p, err := s.profiles.GetWithUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return p, nil
}

func (s *profileService) Upsert(ctx context.Context, userID string, f models.ProfileFields) (*models.Profile, error) {
	const op = "ProfileService.Upsert"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	existing, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		return s.update(ctx, op, userID, f, existing)
	case errors.Is(err, utils.ErrNotFound):
		return s.create(ctx, op, userID, f)
	default:
		return nil, utils.E(utils.CodeInternal, op, "failed to look up profile", err)
	}
}

// newProfileInput holds the fields a new profile cannot go without.
type newProfileInput struct {
	Status string `json:"status" validate:"required"`
	Skills string `json:"skills" validate:"required"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// create requires status and skills; nothing is written when they are missing.
// Updates skip this check so an existing profile can take a partial field set.
func (s *profileService) create(ctx context.Context, op, userID string, f models.ProfileFields) (*models.Profile, error) {
	in := newProfileInput{Status: deref(f.Status), Skills: deref(f.Skills)}
	if err := validateStruct(op, in); err != nil {
		return nil, err
	}

	// a token can outlive its account
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	p := &models.Profile{
		User:   models.UserRef{ID: userID},
		Skills: []string{},
		Date:   s.now(),
	}
	f.Apply(p)

	err := s.profiles.Create(ctx, p)
	if errors.Is(err, utils.ErrConflict) {
		// another request created it between our lookup and insert
		return s.update(ctx, op, userID, f, nil)
	}
	if errors.Is(err, utils.ErrNotFound) {
		return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create profile", err)
	}

	s.invalidate(ctx, userID)
	return p, nil
}

func (s *profileService) update(ctx context.Context, op, userID string, f models.ProfileFields, existing *models.Profile) (*models.Profile, error) {
	if existing != nil && !f.HasChanges() {
		return existing, nil
	}

	p, err := s.profiles.Update(ctx, userID, f)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "There is no profile for this user", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
	}

	s.invalidate(ctx, userID)
	return p, nil
}

func (s *profileService) List(ctx context.Context) ([]models.Profile, error) {
	const op = "ProfileService.List"

	var cached []models.Profile
	if s.fromCache(ctx, cache.ProfileListKey, &cached) {
		return cached, nil
	}

	out, err := s.profiles.ListWithUser(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list profiles", err)
	}
	if out == nil {
		out = []models.Profile{}
	}

	s.toCache(ctx, cache.ProfileListKey, out)
	return out, nil
}

func (s *profileService) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "ProfileService.GetByUserID"

	// unknown and malformed ids get the same answer
	notFound := func(err error) error {
		return utils.E(utils.CodeNotFound, op, "Profile not found", err)
	}
	if userID == "" {
		return nil, notFound(nil)
	}

	key := cache.ProfileKey(userID)
	var cached models.Profile
	if s.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	p, err := s.profiles.GetWithUser(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, notFound(err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}

	s.toCache(ctx, key, p)
	return p, nil
}

// DeleteMe removes the caller's profile and then the caller's account. The two
// deletes are independent; if the second fails the profile is already gone.
func (s *profileService) DeleteMe(ctx context.Context, userID string) error {
	const op = "ProfileService.DeleteMe"

	if userID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeInternal, op, "failed to delete profile", err)
	}
	s.invalidate(ctx, userID)

	if err := s.users.Delete(ctx, userID); err != nil && !errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeInternal, op, "failed to delete user", err)
	}
	return nil
}

func (s *profileService) fromCache(ctx context.Context, key string, dst any) bool {
	hit, err := s.cache.GetJSON(ctx, key, dst)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	return hit
}

func (s *profileService) toCache(ctx context.Context, key string, val any) {
	if err := s.cache.SetJSON(ctx, key, val, s.ttl); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

func (s *profileService) invalidate(ctx context.Context, userID string) {
	if err := s.cache.Del(ctx, cache.ProfileListKey, cache.ProfileKey(userID)); err != nil {
		s.log.WithError(err).WithField("user_id", userID).Warn("cache invalidation failed")
	}
}
