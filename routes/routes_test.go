package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"chargesphere/database/repository/memory"
	"chargesphere/handlers"
	"chargesphere/models"
	"chargesphere/services/booking"
	"chargesphere/services/review"
	"chargesphere/services/stations"
	"chargesphere/services/user"
	"chargesphere/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type downDirectory struct{}

func (downDirectory) Nearby(context.Context, models.StationQuery) ([]models.Station, error) {
	return nil, errors.New("directory offline")
}

type stubGeocoder struct{}

func (stubGeocoder) Geocode(_ context.Context, q string) (*models.GeoLocation, error) {
	if q == "" {
		return nil, utils.NewValidationError("q", "is required")
	}
	return &models.GeoLocation{Lat: 40.7128, Lng: -74.006, DisplayName: q}, nil
}

func (stubGeocoder) Reverse(_ context.Context, lat, lng float64) (*models.GeoLocation, error) {
	return &models.GeoLocation{DisplayName: "New York, NY"}, nil
}

type stubStorage struct{}

func (stubStorage) Upload(_ context.Context, r io.Reader, publicID string) (string, error) {
	_, err := io.Copy(io.Discard, r)
	return "https://img.example.com/" + publicID + ".jpg", err
}

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	users := memory.NewUsers()
	userService := &user.DefaultUserService{Repo: users}
	require.NoError(t, userService.EnsureAdmin(context.Background(), "admin@chargesphere.io", "admin-secret", ""))

	bookingService := &booking.DefaultBookingService{Repo: memory.NewBookings(), Users: users}
	reviewService := &review.DefaultReviewService{Repo: memory.NewReviews(), Users: users, Photos: stubStorage{}}
	stationService := stations.NewStationService(stations.NewFallbackDirectory(downDirectory{}), bookingService)

	hb := &handlers.HandlerBundle{
		UserRepo: users,
		Auth:     handlers.NewAuthHandler(userService),
		User:     handlers.NewUserHandler(userService),
		Booking:  handlers.NewBookingHandler(bookingService),
		Admin:    handlers.NewAdminHandler(userService, bookingService),
		Review:   handlers.NewReviewHandler(reviewService),
		Station:  handlers.NewStationHandler(stationService),
		Geocode:  handlers.NewGeocodeHandler(stubGeocoder{}),
		Health:   &handlers.HealthHandler{Snapshot: func() utils.HealthStatus { return utils.HealthStatus{Mongo: true} }},
	}
	r := gin.New()
	r.Use(utils.ErrorHandler())
	RegisterRoutes(r, hb, nil)
	return &api{t: t, router: r}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *api) register(name, email string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": name, "email": email, "password": "secret123"})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.AuthResponse](a.t, w).Token
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[models.AuthResponse](a.t, w).Token
}

var bookingBody = gin.H{
	"station":     gin.H{"id": "1", "name": "ChargeSphere Downtown Hub"},
	"vehicle":     gin.H{"type": "Sedan", "model": "Model 3"},
	"bookingDate": "2030-06-01",
	"startTime":   "10:00",
	"duration":    60,
	"chargerType": "CCS",
}

func TestAuthFlow(t *testing.T) {
	a := newAPI(t)
	token := a.register("Robin", "Robin@Example.com")

	w := a.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, w)
	assert.Equal(t, "robin@example.com", me["email"])
	assert.Equal(t, "customer", me["role"])
	assert.NotContains(t, w.Body.String(), "password")

	w = a.do(http.MethodPost, "/api/auth/register", "", gin.H{"name": "Again", "email": "robin@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "robin@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	fresh := a.login("robin@example.com", "secret123")
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/auth/me", token, nil).Code, "login replaces the session")

	require.Equal(t, http.StatusOK, a.do(http.MethodPost, "/api/auth/logout", fresh, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/auth/me", fresh, nil).Code)
}

func TestRegisterReportsEveryInvalidField(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{"email": "nope", "password": "123"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[utils.ErrorResponse](t, w)
	fields := []string{}
	for _, f := range body.Errors {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingOwnershipAndAdminApproval(t *testing.T) {
	a := newAPI(t)
	owner := a.register("Owner", "owner@example.com")
	other := a.register("Other", "other@example.com")

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/api/bookings", "", bookingBody).Code)

	w := a.do(http.MethodPost, "/api/bookings", owner, bookingBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.Booking](t, w)
	assert.Equal(t, models.BookingPending, created.Status)
	path := "/api/bookings/" + created.ID.Hex()

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, path, owner, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, path, other, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPut, path, other, gin.H{"notes": "mine now"}).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, "/api/bookings/not-an-id", owner, nil).Code)

	w = a.do(http.MethodPut, path, owner, gin.H{"duration": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/api/bookings?page=1&limit=5", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.BookingPage](t, w).Bookings, 1)

	// Customers are kept out of the admin surface.
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/admin/stats", owner, nil).Code)

	admin := a.login("admin@chargesphere.io", "admin-secret")
	w = a.do(http.MethodPut, "/api/admin/bookings/"+created.ID.Hex()+"/approve", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	approved := decode[struct {
		Booking models.BookingWithOwner `json:"booking"`
	}](t, w)
	assert.Equal(t, models.BookingConfirmed, approved.Booking.Status)
	require.NotNil(t, approved.Booking.Owner)
	assert.Equal(t, "Owner", approved.Booking.Owner.Name)

	w = a.do(http.MethodGet, "/api/admin/stats", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.AdminStats](t, w)
	assert.Equal(t, int64(3), stats.Users)
	assert.Equal(t, int64(1), stats.Bookings.Confirmed)

	w = a.do(http.MethodGet, "/api/bookings/stats/summary", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode[models.BookingStats](t, w).Upcoming)

	require.Equal(t, http.StatusOK, a.do(http.MethodDelete, path, owner, nil).Code)
	w = a.do(http.MethodGet, path, owner, nil)
	assert.Equal(t, models.BookingCancelled, decode[models.Booking](t, w).Status, "cancel keeps the record")

	w = a.do(http.MethodGet, "/api/admin/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestReviewEndpoints(t *testing.T) {
	a := newAPI(t)
	author := a.register("Author", "author@example.com")
	reader := a.register("Reader", "reader@example.com")

	body := gin.H{"station": gin.H{"id": "7", "name": "Tesla Supercharger"}, "rating": 4, "reviewText": "Quick and clean"}
	w := a.do(http.MethodPost, "/api/reviews", author, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[models.ReviewWithAuthor](t, w)
	assert.Equal(t, http.StatusConflict, a.do(http.MethodPost, "/api/reviews", author, body).Code)

	w = a.do(http.MethodGet, "/api/reviews/station/7?sort=highest", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decode[models.StationReviewPage](t, w)
	assert.Equal(t, 4.0, page.Stats.AverageRating)
	assert.Equal(t, int64(1), page.Stats.TotalReviews)

	helpful := "/api/reviews/" + created.ID.Hex() + "/helpful"
	w = a.do(http.MethodPost, helpful, reader, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode[map[string]any](t, w)["helpfulCount"])
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, helpful, reader, nil).Code)

	path := "/api/reviews/" + created.ID.Hex()
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPut, path, reader, gin.H{"rating": 1}).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodPut, path, author, gin.H{"rating": 5}).Code)

	w = a.do(http.MethodGet, "/api/reviews/user", author, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Review](t, w), 1)

	// Photo upload.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "charger.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("fake-jpeg"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path+"/photos", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+author)
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Len(t, decode[models.Review](t, rec).Photos, 1)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodPost, path+"/photos", author, nil).Code, "photo field is required")

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, reader, nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodDelete, path, author, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodDelete, path, author, nil).Code)
}

func TestFavoritesAndProfile(t *testing.T) {
	a := newAPI(t)
	token := a.register("Fav", "fav@example.com")

	fav := gin.H{"stationId": "3", "stationName": "GreenCharge Plaza"}
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/api/users/favorites", token, fav).Code)
	assert.Equal(t, http.StatusConflict, a.do(http.MethodPost, "/api/users/favorites", token, fav).Code)

	w := a.do(http.MethodGet, "/api/users/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Favorite](t, w), 1)

	w = a.do(http.MethodDelete, "/api/users/favorites/3", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"favorites":[]`)

	w = a.do(http.MethodPut, "/api/users/profile", token, gin.H{"phone": "+1 555 0100"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "+1 555 0100", decode[models.User](t, w).Phone)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPut, "/api/users/password", token, gin.H{"currentPassword": "bad", "newPassword": "another1"}).Code)
	require.Equal(t, http.StatusOK, a.do(http.MethodPut, "/api/users/password", token, gin.H{"currentPassword": "secret123", "newPassword": "another1"}).Code)
	a.login("fav@example.com", "another1")
}

func TestStationEndpoints(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/api/stations/nearby?lat=40.7128&lng=-74.0060&radius=25&limit=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	nearby := decode[models.NearbyResult](t, w)
	assert.True(t, nearby.Fallback)
	assert.NotZero(t, nearby.Count)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/stations/nearby", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/stations/nearby?lat=abc&lng=1", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/stations/nearby?lat=40.7&lng=-74&hour=30", "", nil).Code)

	recPath := "/api/stations/recommendations?lat=40.7128&lng=-74.0060"
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, recPath, "", nil).Code)
	token := a.register("Driver", "driver@example.com")
	w = a.do(http.MethodGet, recPath, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recs := decode[struct {
		Recommendations []models.Recommendation `json:"recommendations"`
		Count           int                     `json:"count"`
	}](t, w)
	assert.Equal(t, 5, recs.Count)

	w = a.do(http.MethodPost, "/api/stations/charging-plan", "", gin.H{
		"currentBattery": 20, "destinationDistance": 150, "batteryCapacity": 50, "chargingPower": 60,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 30, decode[models.ChargingPlan](t, w).ChargingTime)

	w = a.do(http.MethodPost, "/api/stations/charging-plan", "", gin.H{"currentBattery": 20, "batteryCapacity": 0, "chargingPower": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGeocodeAndHealth(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodGet, "/api/geocode?q=Times+Square", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Times Square", decode[models.GeoLocation](t, w).DisplayName)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/geocode", "", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/geocode/reverse?lat=40.7&lng=-74", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/geocode/reverse?lat=91&lng=x", "", nil).Code)

	w = a.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])
}
