package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yoockh/devconnector/internal/models"
	"github.com/yoockh/devconnector/internal/repositories"
	"github.com/yoockh/devconnector/internal/utils"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (token string, err error)
	Login(ctx context.Context, in LoginInput) (token string, err error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type authService struct {
	users  repositories.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users repositories.UserRepository, secret string, ttl time.Duration) AuthService {
	return &authService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (string, error) {
	const op = "AuthService.Register"

	if err := validateStruct(op, in); err != nil {
		return "", err
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	if err == nil {
		return "", utils.E(utils.CodeConflict, op, "User already exists", nil)
	}
	if !errors.Is(err, utils.ErrNotFound) {
		return "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Avatar:   utils.GravatarURL(in.Email),
		Date:     s.now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return "", utils.E(utils.CodeConflict, op, "User already exists", err)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to create user", err)
	}

	return s.issue(op, u.ID)
}

func (s *authService) Login(ctx context.Context, in LoginInput) (string, error) {
	const op = "AuthService.Login"

	if err := validateStruct(op, in); err != nil {
		return "", err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", utils.E(utils.CodeInvalidArgument, op, "Invalid credentials", nil)
		}
		return "", utils.E(utils.CodeInternal, op, "failed to look up user", err)
	}
	if err := utils.CheckPassword(u.Password, in.Password); err != nil {
		return "", utils.E(utils.CodeInvalidArgument, op, "Invalid credentials", nil)
	}

	return s.issue(op, u.ID)
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.Me"

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "User not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return u, nil
}

// issue signs an HS256 token whose subject is the user id.
func (s *authService) issue(op, userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}
	return tok, nil
}
