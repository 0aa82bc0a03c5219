package user

import (
	"context"
	"sync"
	"testing"

	"chargesphere/database/repository/memory"
	"chargesphere/models"
	"chargesphere/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type recordingCache struct {
	mu      sync.Mutex
	deleted []string
}

func (r *recordingCache) Get(context.Context, string) (*utils.AuthEntry, error) { return nil, nil }
func (r *recordingCache) Set(context.Context, string, utils.AuthEntry) error    { return nil }
func (r *recordingCache) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, userID)
	return nil
}

func newService() (*DefaultUserService, *memory.Users, *recordingCache) {
	repo := memory.NewUsers()
	cache := &recordingCache{}
	return &DefaultUserService{Repo: repo, Cache: cache}, repo, cache
}

func register(t *testing.T, svc *DefaultUserService, email string) *models.AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Dana",
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegisterIssuesSession(t *testing.T) {
	svc, repo, cache := newService()
	resp := register(t, svc, "  Dana@Example.COM ")

	assert.Equal(t, "dana@example.com", resp.User.Email)
	assert.Equal(t, models.RoleCustomer, resp.User.Role)
	assert.Empty(t, resp.User.PasswordHash)

	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.Hex(), claims.Subject)
	assert.Equal(t, "customer", claims.Role)

	stored, err := repo.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.Contains(t, cache.deleted, resp.User.ID.Hex())
}

func TestRegisterRejectsDuplicatesAndBadInput(t *testing.T) {
	svc, _, _ := newService()
	register(t, svc, "dana@example.com")

	_, err := svc.Register(context.Background(), models.RegisterRequest{Name: "D", Email: "DANA@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 409, utils.HTTPStatus(err))

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "D", Email: "new@example.com", Password: "short"})
	assert.Equal(t, 400, utils.HTTPStatus(err))

	_, err = svc.Register(context.Background(), models.RegisterRequest{Name: "D", Email: "not-an-email", Password: "secret123"})
	assert.Equal(t, 400, utils.HTTPStatus(err))
}

func TestLogin(t *testing.T) {
	svc, repo, _ := newService()
	registered := register(t, svc, "dana@example.com")
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "dana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 401, utils.HTTPStatus(err))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.Equal(t, 401, utils.HTTPStatus(err))

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "DANA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)

	stored, err := repo.GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(resp.Token), stored.TokenHash)
}

func TestLogoutClearsSession(t *testing.T) {
	svc, repo, cache := newService()
	resp := register(t, svc, "dana@example.com")
	cache.deleted = nil

	require.NoError(t, svc.Logout(context.Background(), resp.User.ID))

	stored, err := repo.GetByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.TokenHash)
	assert.Equal(t, []string{resp.User.ID.Hex()}, cache.deleted)

	assert.Equal(t, 404, utils.HTTPStatus(svc.Logout(context.Background(), primitive.NewObjectID())))
}

func TestWorksWithoutCache(t *testing.T) {
	svc := &DefaultUserService{Repo: memory.NewUsers()}
	resp := register(t, svc, "dana@example.com")
	assert.NoError(t, svc.Logout(context.Background(), resp.User.ID))
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	dana := register(t, svc, "dana@example.com")
	register(t, svc, "eli@example.com")

	name := "  Dana K "
	phone := "+254700000000"
	u, err := svc.UpdateProfile(ctx, dana.User.ID, models.UpdateProfileRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Dana K", u.Name)
	assert.Equal(t, phone, u.Phone)
	assert.Equal(t, "dana@example.com", u.Email)

	taken := "ELI@example.com"
	_, err = svc.UpdateProfile(ctx, dana.User.ID, models.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	bad := "nope"
	_, err = svc.UpdateProfile(ctx, dana.User.ID, models.UpdateProfileRequest{Email: &bad})
	assert.Equal(t, 400, utils.HTTPStatus(err))

	same, err := svc.UpdateProfile(ctx, dana.User.ID, models.UpdateProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Dana K", same.Name)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	dana := register(t, svc, "dana@example.com")

	err := svc.ChangePassword(ctx, dana.User.ID, models.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "another1"})
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.Equal(t, 401, utils.HTTPStatus(err))

	err = svc.ChangePassword(ctx, dana.User.ID, models.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "abc"})
	assert.Equal(t, 400, utils.HTTPStatus(err))

	require.NoError(t, svc.ChangePassword(ctx, dana.User.ID, models.ChangePasswordRequest{CurrentPassword: "secret123", NewPassword: "another1"}))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "dana@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, models.LoginRequest{Email: "dana@example.com", Password: "another1"})
	assert.NoError(t, err)
}

func TestFavorites(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	dana := register(t, svc, "dana@example.com")

	favs, err := svc.ListFavorites(ctx, dana.User.ID)
	require.NoError(t, err)
	assert.Empty(t, favs)

	favs, err = svc.AddFavorite(ctx, dana.User.ID, models.AddFavoriteRequest{StationID: "ocm-1", StationName: "Westlands Hub"})
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Westlands Hub", favs[0].StationName)
	assert.False(t, favs[0].AddedAt.IsZero())

	_, err = svc.AddFavorite(ctx, dana.User.ID, models.AddFavoriteRequest{StationID: "ocm-1"})
	assert.ErrorIs(t, err, ErrFavoriteExists)
	assert.Equal(t, 409, utils.HTTPStatus(err))

	_, err = svc.AddFavorite(ctx, dana.User.ID, models.AddFavoriteRequest{})
	assert.Equal(t, 400, utils.HTTPStatus(err))

	_, err = svc.AddFavorite(ctx, dana.User.ID, models.AddFavoriteRequest{StationID: "ocm-2"})
	require.NoError(t, err)

	favs, err = svc.RemoveFavorite(ctx, dana.User.ID, "ocm-1")
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "ocm-2", favs[0].StationID)

	favs, err = svc.RemoveFavorite(ctx, dana.User.ID, "ocm-1")
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestEnsureAdmin(t *testing.T) {
	svc, repo, cache := newService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "", "", ""))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin@Example.com", "rootpass", ""))
	admin, err := repo.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "Administrator", admin.Name)

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "admin@example.com", Password: "rootpass"})
	require.NoError(t, err)
	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	dana := register(t, svc, "dana@example.com")
	cache.deleted = nil
	require.NoError(t, svc.EnsureAdmin(ctx, "dana@example.com", "ignored", "Dana"))
	promoted, err := repo.GetByID(ctx, dana.User.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)
	assert.Equal(t, []string{dana.User.ID.Hex()}, cache.deleted, "cached customer role is dropped on promotion")

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}
