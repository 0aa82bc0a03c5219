package handlers

import (
	"net/http"

	"chargesphere/models"
	"chargesphere/services/user"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and session endpoints.
type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(us user.UserService) *AuthHandler {
	return &AuthHandler{UserService: us}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("User registered", zap.String("userID", resp.User.ID.Hex()))
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req)
	if err != nil {
		getLogger(c).Debug("Login rejected", zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	u, err := h.UserService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// LogoutHandler handles POST /api/auth/logout. The token stops working immediately.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.UserService.Logout(c.Request.Context(), userID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
