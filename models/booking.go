package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const PaymentPending PaymentStatus = "pending"

// StationSnapshot is the station as it looked when the booking was made.
type StationSnapshot struct {
	ID      string  `bson:"id,omitempty" json:"id,omitempty" validate:"max=100"`
	Name    string  `bson:"name" json:"name" validate:"required,max=200"`
	Address string  `bson:"address,omitempty" json:"address,omitempty" validate:"max=300"`
	Lat     float64 `bson:"lat,omitempty" json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng     float64 `bson:"lng,omitempty" json:"lng,omitempty" validate:"omitempty,longitude"`
}

type VehicleSnapshot struct {
	Type  string `bson:"type" json:"type" validate:"required,max=100"`
	Model string `bson:"model,omitempty" json:"model,omitempty" validate:"max=100"`
}

// Booking is a reservation of a charging slot or rental vehicle.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Station       StationSnapshot    `bson:"station" json:"station"`
	Vehicle       VehicleSnapshot    `bson:"vehicle" json:"vehicle"`
	BookingDate   time.Time          `bson:"bookingDate" json:"bookingDate"`
	StartTime     string             `bson:"startTime" json:"startTime"`
	Duration      int                `bson:"duration" json:"duration"`
	ChargerType   string             `bson:"chargerType" json:"chargerType"`
	EstimatedCost float64            `bson:"estimatedCost" json:"estimatedCost"`
	Status        BookingStatus      `bson:"status" json:"status"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BookingWithOwner is the admin view of a booking.
type BookingWithOwner struct {
	Booking `bson:",inline"`
	Owner   *UserSummary `json:"owner,omitempty"`
}

// BookingFilter narrows list and count queries. Zero fields are ignored.
type BookingFilter struct {
	User     *primitive.ObjectID
	Status   BookingStatus
	DateFrom *time.Time
}

// BookingChanges is a partial update; nil fields are left untouched.
type BookingChanges struct {
	BookingDate *time.Time
	StartTime   *string
	Duration    *int
	Notes       *string
	Status      *BookingStatus
}

// EditsFields reports whether any non-status field is set.
func (c BookingChanges) EditsFields() bool {
	return c.BookingDate != nil || c.StartTime != nil || c.Duration != nil || c.Notes != nil
}

// IsEmpty reports whether no field is set.
func (c BookingChanges) IsEmpty() bool {
	return !c.EditsFields() && c.Status == nil
}

type BookingPage struct {
	Bookings []Booking `json:"bookings"`
	PageMeta
}

type AdminBookingPage struct {
	Bookings []BookingWithOwner `json:"bookings"`
	PageMeta
}

// BookingStats is the per-user dashboard summary.
type BookingStats struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Upcoming  int64 `json:"upcoming"`
}

type BookingCounts struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

type AdminStats struct {
	Users    int64         `json:"users"`
	Bookings BookingCounts `json:"bookings"`
}
