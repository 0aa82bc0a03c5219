package handlers

import (
	"net/http"

	"chargesphere/models"
	"chargesphere/services/review"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxPhotoBytes bounds a single review photo upload.
const maxPhotoBytes = 5 << 20

// ReviewHandler serves station reviews.
type ReviewHandler struct {
	ReviewService review.ReviewService
}

func NewReviewHandler(rs review.ReviewService) *ReviewHandler {
	return &ReviewHandler{ReviewService: rs}
}

// CreateReviewHandler handles POST /api/reviews.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.ReviewService.CreateReview(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Review created", zap.String("reviewID", r.ID.Hex()), zap.String("stationID", r.Station.ID))
	c.JSON(http.StatusCreated, r)
}

// StationReviewsHandler handles GET /api/reviews/station/:stationId?sort&page&limit.
func (h *ReviewHandler) StationReviewsHandler(c *gin.Context) {
	page, err := h.ReviewService.ListStationReviews(c.Request.Context(), c.Param("stationId"), c.Query("sort"), pageFromQuery(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UserReviewsHandler handles GET /api/reviews/user.
func (h *ReviewHandler) UserReviewsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	reviews, err := h.ReviewService.ListUserReviews(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// UpdateReviewHandler handles PUT /api/reviews/:id.
func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.UpdateReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	r, err := h.ReviewService.UpdateReview(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// DeleteReviewHandler handles DELETE /api/reviews/:id.
func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.ReviewService.DeleteReview(c.Request.Context(), userID, c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// MarkHelpfulHandler handles POST /api/reviews/:id/helpful.
func (h *ReviewHandler) MarkHelpfulHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	count, err := h.ReviewService.MarkHelpful(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Marked as helpful", "helpfulCount": count})
}

// UploadPhotoHandler handles POST /api/reviews/:id/photos with a multipart "photo" field.
func (h *ReviewHandler) UploadPhotoHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.RespondError(c, utils.NewValidationError("photo", "is required"))
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		utils.RespondError(c, utils.NewValidationError("photo", "must be at most 5MB"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.RespondError(c, utils.NewServerError("open uploaded photo", err))
		return
	}
	defer file.Close()

	r, err := h.ReviewService.AddPhoto(c.Request.Context(), userID, c.Param("id"), file, fileHeader.Filename)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}
