package handlers

import (
	"net/http"
	"strconv"

	"chargesphere/models"
	"chargesphere/services/recommend"
	"chargesphere/services/stations"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StationHandler serves station lookups, recommendations and charging plans.
type StationHandler struct {
	StationService stations.StationService
}

func NewStationHandler(ss stations.StationService) *StationHandler {
	return &StationHandler{StationService: ss}
}

func bindStationQuery(c *gin.Context) (models.StationQuery, bool) {
	var q models.StationQuery
	if c.Query("lat") == "" || c.Query("lng") == "" {
		utils.RespondError(c, &utils.ValidationError{Fields: []utils.FieldError{
			{Field: "lat", Message: "is required"},
			{Field: "lng", Message: "is required"},
		}})
		return q, false
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, utils.NewValidationError("query", "invalid query parameters"))
		return q, false
	}
	return q, true
}

// NearbyHandler handles GET /api/stations/nearby?lat&lng&radius&limit&hour&type.
func (h *StationHandler) NearbyHandler(c *gin.Context) {
	q, ok := bindStationQuery(c)
	if !ok {
		return
	}
	res, err := h.StationService.Nearby(c.Request.Context(), q)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if res.Fallback {
		getLogger(c).Warn("Serving fallback station catalog", zap.Float64("lat", q.Lat), zap.Float64("lng", q.Lng))
	}
	c.JSON(http.StatusOK, res)
}

// RecommendationsHandler handles GET /api/stations/recommendations?lat&lng&radius&timeAware.
func (h *StationHandler) RecommendationsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	q, ok := bindStationQuery(c)
	if !ok {
		return
	}
	timeAware, _ := strconv.ParseBool(c.Query("timeAware"))

	recs, err := h.StationService.Recommendations(c.Request.Context(), userID, q, timeAware)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

// ChargingPlanHandler handles POST /api/stations/charging-plan.
func (h *StationHandler) ChargingPlanHandler(c *gin.Context) {
	var req models.ChargingPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := recommend.OptimalChargingTime(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
