package middleware

import (
	"strings"

	userRepo "chargesphere/database/repository/user"
	"chargesphere/models"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

var errNotAuthenticated = utils.NewUnauthenticatedError("Not authorized, no token")

// JWTAuthMiddleware accepts a Bearer token only if it is the user's current session.
// The session hash is looked up in the auth cache first, then in the user store.
func JWTAuthMiddleware(users userRepo.UserRepository, cache utils.AuthCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, errNotAuthenticated)
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			utils.RespondError(c, errNotAuthenticated)
			return
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.RespondError(c, utils.NewUnauthenticatedError("Not authorized, token failed"))
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.Subject)
		if err != nil {
			utils.RespondError(c, utils.NewUnauthenticatedError("Not authorized, token failed"))
			return
		}
		hash := utils.HashToken(tokenString)
		ctx := c.Request.Context()

		if cache != nil {
			entry, err := cache.Get(ctx, userID.Hex())
			if err != nil {
				utils.GetLogger().Warn("Auth cache lookup failed, using database", zap.Error(err))
			} else if entry != nil {
				if entry.TokenHash != hash {
					utils.RespondError(c, utils.NewUnauthenticatedError("Session expired"))
					return
				}
				setIdentity(c, userID, models.Role(entry.Role))
				c.Next()
				return
			}
		}

		u, err := users.GetByID(ctx, userID)
		if err != nil {
			utils.RespondError(c, utils.NewUnauthenticatedError("Not authorized, user not found"))
			return
		}
		if u.TokenHash == "" || u.TokenHash != hash {
			utils.RespondError(c, utils.NewUnauthenticatedError("Session expired"))
			return
		}

		if cache != nil {
			if err := cache.Set(ctx, userID.Hex(), utils.AuthEntry{TokenHash: hash, Role: string(u.Role)}); err != nil {
				utils.GetLogger().Warn("Auth cache write failed", zap.Error(err))
			}
		}
		setIdentity(c, userID, u.Role)
		c.Next()
	}
}

func setIdentity(c *gin.Context, userID primitive.ObjectID, role models.Role) {
	if role == "" {
		role = models.RoleCustomer
	}
	c.Set(ContextUserID, userID)
	c.Set(ContextRole, role)
}

// UserID returns the authenticated user id.
func UserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	return id, ok
}

// Role returns the authenticated user's role.
func Role(c *gin.Context) (models.Role, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	r, ok := v.(models.Role)
	return r, ok
}
