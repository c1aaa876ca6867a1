package service

import (
	"context"
	"errors"
	"strings"

	"shareit/internal/database"
	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

type UserService struct {
	repo   domain.Repository
	logger *zerolog.Logger
}

func NewUserService(repo domain.Repository, logger *zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, Validationf("email is required")
	}
	if !strings.Contains(email, "@") {
		return nil, Validationf("invalid email: %s", email)
	}

	user := &models.User{Name: strings.TrimSpace(name), Email: email}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, Validationf("email %s already in use", email)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, NotFoundf("user with id %d not found", id)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, Validationf("invalid email: %s", *patch.Email)
		}
		patch.Email = &email
	}

	user, err := s.repo.UpdateUser(ctx, id, patch)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, NotFoundf("user with id %d not found", id)
		}
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, Validationf("email %s already in use", *patch.Email)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return NotFoundf("user with id %d not found", id)
		}
		return err
	}
	return nil
}
