package user

import (
	"context"
	"strings"

	"chargesphere/models"
	"chargesphere/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError("get user", err)
	}
	u.PasswordHash, u.TokenHash = "", ""
	return u, nil
}

func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req models.UpdateProfileRequest) (*models.User, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		req.Email = &email
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}

	if req.Name == nil && req.Email == nil && req.Phone == nil {
		return s.GetProfile(ctx, userID)
	}
	u, err := s.Repo.UpdateProfile(ctx, userID, models.ProfileUpdate{Name: req.Name, Email: req.Email, Phone: req.Phone})
	if err != nil {
		return nil, storeError("update profile", err)
	}
	u.PasswordHash, u.TokenHash = "", ""
	return u, nil
}

// ChangePassword requires the current password. The session stays valid.
func (s *DefaultUserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, req models.ChangePasswordRequest) error {
	if err := utils.ValidateStruct(&req); err != nil {
		return err
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return storeError("get user", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("ChangePassword: failed to hash password", zap.Error(err))
		return utils.NewServerError("hash password", err)
	}
	if err := s.Repo.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return storeError("update password", err)
	}
	return nil
}
