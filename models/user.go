package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Favorite is a station bookmarked by a user.
type Favorite struct {
	StationID   string    `bson:"stationId" json:"stationId"`
	StationName string    `bson:"stationName,omitempty" json:"stationName,omitempty"`
	AddedAt     time.Time `bson:"addedAt" json:"addedAt"`
}

// User represents an account. Password and session hash never leave the server.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         Role               `bson:"role" json:"role"`
	Favorites    []Favorite         `bson:"favorites" json:"favorites"`
	TokenHash    string             `bson:"tokenHash,omitempty" json:"-"`
	MemberSince  time.Time          `bson:"memberSince" json:"memberSince"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// UserSummary is the owner view joined into bookings and reviews.
type UserSummary struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone string             `bson:"phone,omitempty" json:"phone,omitempty"`
}

// ProfileUpdate holds the optional profile fields; nil means unchanged.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=100"`
	Email *string `json:"email" validate:"omitnil,email"`
	Phone *string `json:"phone" validate:"omitnil,max=30"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type AddFavoriteRequest struct {
	StationID   string `json:"stationId" validate:"required"`
	StationName string `json:"stationName" validate:"max=200"`
}

// AuthResponse contains the session token and the user it belongs to.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
