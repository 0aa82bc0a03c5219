// Package memory holds in-process repository implementations for tests and local runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"chargesphere/database/repository"
	"chargesphere/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Users struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewUsers() *Users {
	return &Users{users: map[primitive.ObjectID]models.User{}}
}

func (u *Users) Create(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, existing := range u.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	if user.MemberSince.IsZero() {
		user.MemberSince = now
	}
	if user.Favorites == nil {
		user.Favorites = []models.Favorite{}
	}
	u.users[user.ID] = cloneUser(*user)
	return nil
}

func (u *Users) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneUser(user)
	return &out, nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, user := range u.users {
		if user.Email == email {
			out := cloneUser(user)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *Users) GetAll(_ context.Context) ([]models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]models.User, 0, len(u.users))
	for _, user := range u.users {
		c := cloneUser(user)
		c.PasswordHash, c.TokenHash = "", ""
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (u *Users) GetSummaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	for _, id := range ids {
		if user, ok := u.users[id]; ok {
			out[id] = models.UserSummary{ID: id, Name: user.Name, Email: user.Email, Phone: user.Phone}
		}
	}
	return out, nil
}

func (u *Users) Count(_ context.Context) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return int64(len(u.users)), nil
}

func (u *Users) mutate(id primitive.ObjectID, fn func(*models.User) error) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	user, ok := u.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := fn(&user); err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now().UTC()
	u.users[id] = user
	out := cloneUser(user)
	return &out, nil
}

func (u *Users) UpdateProfile(_ context.Context, id primitive.ObjectID, changes models.ProfileUpdate) (*models.User, error) {
	return u.mutate(id, func(user *models.User) error {
		if changes.Email != nil {
			for otherID, other := range u.users {
				if otherID != id && other.Email == *changes.Email {
					return repository.ErrDuplicate
				}
			}
			user.Email = *changes.Email
		}
		if changes.Name != nil {
			user.Name = *changes.Name
		}
		if changes.Phone != nil {
			user.Phone = *changes.Phone
		}
		return nil
	})
}

func (u *Users) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := u.mutate(id, func(user *models.User) error {
		user.PasswordHash = passwordHash
		return nil
	})
	return err
}

func (u *Users) SetRole(_ context.Context, id primitive.ObjectID, role models.Role) error {
	_, err := u.mutate(id, func(user *models.User) error {
		user.Role = role
		return nil
	})
	return err
}

func (u *Users) SetTokenHash(_ context.Context, id primitive.ObjectID, tokenHash string) error {
	_, err := u.mutate(id, func(user *models.User) error {
		user.TokenHash = tokenHash
		return nil
	})
	return err
}

func (u *Users) AddFavorite(_ context.Context, id primitive.ObjectID, fav models.Favorite) ([]models.Favorite, error) {
	user, err := u.mutate(id, func(user *models.User) error {
		for _, f := range user.Favorites {
			if f.StationID == fav.StationID {
				return repository.ErrDuplicate
			}
		}
		user.Favorites = append(user.Favorites, fav)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}

func (u *Users) RemoveFavorite(_ context.Context, id primitive.ObjectID, stationID string) ([]models.Favorite, error) {
	user, err := u.mutate(id, func(user *models.User) error {
		kept := user.Favorites[:0:0]
		for _, f := range user.Favorites {
			if f.StationID != stationID {
				kept = append(kept, f)
			}
		}
		user.Favorites = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}

func cloneUser(u models.User) models.User {
	u.Favorites = append([]models.Favorite{}, u.Favorites...)
	return u
}
