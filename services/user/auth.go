package user

import (
	"context"
	"errors"
	"strings"

	"chargesphere/database/repository"
	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a customer account and opens its first session.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	_, err := s.Repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return nil, ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, storeError("find user by email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, utils.NewServerError("hash password", err)
	}

	u := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hashed),
		Role:         models.RoleCustomer,
		Favorites:    []models.Favorite{},
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, storeError("create user", err)
	}
	return s.issueSession(ctx, u)
}

// Login verifies credentials and replaces any previous session.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	u, err := s.Repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, storeError("find user by email", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, u)
}

// Logout revokes the current session.
func (s *DefaultUserService) Logout(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.Repo.SetTokenHash(ctx, userID, ""); err != nil {
		return storeError("clear token hash", err)
	}
	s.forgetSession(ctx, userID)
	return nil
}

func (s *DefaultUserService) issueSession(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	token, err := utils.GenerateToken(u.ID.Hex(), string(u.Role), ttl)
	if err != nil {
		utils.GetLogger().Error("failed to generate auth token", zap.Error(err))
		return nil, utils.NewServerError("generate token", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, u.ID, tokenHash); err != nil {
		return nil, storeError("save token hash", err)
	}
	s.forgetSession(ctx, u.ID)

	u.PasswordHash, u.TokenHash = "", ""
	return &models.AuthResponse{Token: token, User: u}, nil
}

// forgetSession drops the cached session so the next request re-reads the stored hash.
func (s *DefaultUserService) forgetSession(ctx context.Context, userID primitive.ObjectID) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Delete(ctx, userID.Hex()); err != nil {
		utils.GetLogger().Warn("failed to clear auth cache", zap.String("userID", userID.Hex()), zap.Error(err))
	}
}
