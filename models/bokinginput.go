package models

import "strings"

// CreateBookingRequest is the create payload.
type CreateBookingRequest struct {
	Station       StationSnapshot `json:"station"`
	Vehicle       VehicleSnapshot `json:"vehicle"`
	BookingDate   string          `json:"bookingDate" validate:"required,isodate"`
	StartTime     string          `json:"startTime" validate:"required,max=20"`
	Duration      int             `json:"duration" validate:"gte=15,lte=525600"`
	ChargerType   string          `json:"chargerType" validate:"required,max=100"`
	EstimatedCost float64         `json:"estimatedCost" validate:"gte=0"`
	Notes         string          `json:"notes" validate:"max=500"`
}

// UpdateBookingRequest is the owner edit payload; absent fields stay unchanged.
type UpdateBookingRequest struct {
	BookingDate *string `json:"bookingDate" validate:"omitnil,isodate"`
	StartTime   *string `json:"startTime" validate:"omitnil,min=1,max=20"`
	Duration    *int    `json:"duration" validate:"omitnil,gte=15,lte=525600"`
	Notes       *string `json:"notes" validate:"omitnil,max=500"`
	Status      *string `json:"status" validate:"omitnil,oneof=pending confirmed completed cancelled"`
}

// Normalize trims free-text fields so blank values fail the required checks.
func (r *CreateBookingRequest) Normalize() {
	r.Station.ID = strings.TrimSpace(r.Station.ID)
	r.Station.Name = strings.TrimSpace(r.Station.Name)
	r.Station.Address = strings.TrimSpace(r.Station.Address)
	r.Vehicle.Type = strings.TrimSpace(r.Vehicle.Type)
	r.Vehicle.Model = strings.TrimSpace(r.Vehicle.Model)
	r.BookingDate = strings.TrimSpace(r.BookingDate)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.ChargerType = strings.TrimSpace(r.ChargerType)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r *UpdateBookingRequest) Normalize() {
	for _, field := range []*string{r.BookingDate, r.StartTime, r.Notes, r.Status} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
}
