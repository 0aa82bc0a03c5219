package user

import (
	"context"
	"errors"
	"strings"

	"chargesphere/database/repository"
	"chargesphere/models"
	"chargesphere/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, storeError("list users", err)
	}
	return users, nil
}

// EnsureAdmin creates the bootstrap admin account, or promotes an existing one.
// The password of an existing account is left unchanged.
func (s *DefaultUserService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err == nil {
		if existing.Role == models.RoleAdmin {
			return nil
		}
		if err := s.Repo.SetRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return storeError("promote admin", err)
		}
		s.forgetSession(ctx, existing.ID)
		utils.GetLogger().Info("Promoted existing account to admin", zap.String("email", email))
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return storeError("find admin", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return utils.NewServerError("hash password", err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Administrator"
	}
	admin := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
		Favorites:    []models.Favorite{},
	}
	if err := s.Repo.Create(ctx, admin); err != nil {
		return storeError("create admin", err)
	}
	utils.GetLogger().Info("Created admin account", zap.String("email", email))
	return nil
}
