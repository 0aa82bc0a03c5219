package handlers

import (
	"net/http"

	"chargesphere/models"
	"chargesphere/services/user"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the caller's profile and favorites.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

// GetProfileHandler handles GET /api/users/profile.
func (h *UserHandler) GetProfileHandler(c *gin.Context) {
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

// UpdateProfileHandler handles PUT /api/users/profile.
func (h *UserHandler) UpdateProfileHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.UserService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// ChangePasswordHandler handles PUT /api/users/password.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.UserService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

// ListFavoritesHandler handles GET /api/users/favorites.
func (h *UserHandler) ListFavoritesHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	favs, err := h.UserService.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, favs)
}

// AddFavoriteHandler handles POST /api/users/favorites.
func (h *UserHandler) AddFavoriteHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.AddFavoriteRequest
	if !bindJSON(c, &req) {
		return
	}
	favs, err := h.UserService.AddFavorite(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to favorites", "favorites": favs})
}

// RemoveFavoriteHandler handles DELETE /api/users/favorites/:stationId.
func (h *UserHandler) RemoveFavoriteHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	favs, err := h.UserService.RemoveFavorite(c.Request.Context(), userID, c.Param("stationId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites", "favorites": favs})
}
