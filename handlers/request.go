package handlers

import (
	"strconv"

	"chargesphere/middleware"
	"chargesphere/models"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// bindJSON decodes the body; schema validation happens in the services.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, utils.NewValidationError("body", "invalid request body"))
		return false
	}
	return true
}

// currentUser returns the id set by the auth middleware, answering 401 if absent.
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		utils.RespondError(c, utils.NewUnauthenticatedError("Not authorized, no token"))
		return primitive.NilObjectID, false
	}
	return id, true
}

// pageFromQuery reads page and limit. Unparseable values fall back to the service defaults.
func pageFromQuery(c *gin.Context) models.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return models.Page{Page: page, Limit: limit}
}
