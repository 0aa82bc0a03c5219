package handlers

import (
	"net/http"
	"strconv"

	"chargesphere/services/stations"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
)

// GeocodeHandler resolves addresses and coordinates.
type GeocodeHandler struct {
	Geocoder stations.Geocoder
}

func NewGeocodeHandler(g stations.Geocoder) *GeocodeHandler {
	return &GeocodeHandler{Geocoder: g}
}

// GeocodeAddress handles GET /api/geocode?q.
func (h *GeocodeHandler) GeocodeAddress(c *gin.Context) {
	loc, err := h.Geocoder.Geocode(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}

// ReverseGeocode handles GET /api/geocode/reverse?lat&lng.
func (h *GeocodeHandler) ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)

	var fields []utils.FieldError
	if latErr != nil || lat < -90 || lat > 90 {
		fields = append(fields, utils.FieldError{Field: "lat", Message: "must be a valid latitude"})
	}
	if lngErr != nil || lng < -180 || lng > 180 {
		fields = append(fields, utils.FieldError{Field: "lng", Message: "must be a valid longitude"})
	}
	if len(fields) > 0 {
		utils.RespondError(c, &utils.ValidationError{Fields: fields})
		return
	}

	loc, err := h.Geocoder.Reverse(c.Request.Context(), lat, lng)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loc)
}
