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

type Bookings struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]models.Booking
	// seq orders bookings created within the same clock tick.
	seq   int64
	order map[primitive.ObjectID]int64
}

func NewBookings() *Bookings {
	return &Bookings{
		bookings: map[primitive.ObjectID]models.Booking{},
		order:    map[primitive.ObjectID]int64{},
	}
}

func (b *Bookings) Create(_ context.Context, booking *models.Booking) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	booking.CreatedAt, booking.UpdatedAt = now, now
	b.seq++
	b.order[booking.ID] = b.seq
	b.bookings[booking.ID] = *booking
	return nil
}

func (b *Bookings) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	booking, ok := b.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &booking, nil
}

func matches(bk models.Booking, f models.BookingFilter) bool {
	if f.User != nil && bk.User != *f.User {
		return false
	}
	if f.Status != "" && bk.Status != f.Status {
		return false
	}
	if f.DateFrom != nil && bk.BookingDate.Before(*f.DateFrom) {
		return false
	}
	return true
}

func (b *Bookings) List(_ context.Context, f models.BookingFilter, page models.Page) ([]models.Booking, int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	all := []models.Booking{}
	for _, bk := range b.bookings {
		if matches(bk, f) {
			all = append(all, bk)
		}
	}
	sort.Slice(all, func(i, j int) bool { return b.order[all[i].ID] > b.order[all[j].ID] })

	total := int64(len(all))
	start := int(page.Skip())
	if start >= len(all) {
		return []models.Booking{}, total, nil
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (b *Bookings) Count(_ context.Context, f models.BookingFilter) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var n int64
	for _, bk := range b.bookings {
		if matches(bk, f) {
			n++
		}
	}
	return n, nil
}

func (b *Bookings) CountByStatus(_ context.Context) (map[models.BookingStatus]int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := map[models.BookingStatus]int64{}
	for _, bk := range b.bookings {
		out[bk.Status]++
	}
	return out, nil
}

func (b *Bookings) Update(_ context.Context, id primitive.ObjectID, expected models.BookingStatus, changes models.BookingChanges) (*models.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bk, ok := b.bookings[id]
	if !ok || bk.Status != expected {
		return nil, repository.ErrNotFound
	}
	if changes.BookingDate != nil {
		bk.BookingDate = *changes.BookingDate
	}
	if changes.StartTime != nil {
		bk.StartTime = *changes.StartTime
	}
	if changes.Duration != nil {
		bk.Duration = *changes.Duration
	}
	if changes.Notes != nil {
		bk.Notes = *changes.Notes
	}
	if changes.Status != nil {
		bk.Status = *changes.Status
	}
	bk.UpdatedAt = time.Now().UTC()
	b.bookings[id] = bk
	return &bk, nil
}

func (b *Bookings) TransitionStatus(_ context.Context, id primitive.ObjectID, from, to models.BookingStatus) (*models.Booking, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bk, ok := b.bookings[id]
	if !ok || bk.Status != from {
		return nil, repository.ErrNotFound
	}
	bk.Status = to
	bk.UpdatedAt = time.Now().UTC()
	b.bookings[id] = bk
	return &bk, nil
}

func (b *Bookings) CompleteFinished(_ context.Context, now time.Time) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var n int64
	for id, bk := range b.bookings {
		end := bk.BookingDate.Add(24*time.Hour + time.Duration(bk.Duration)*time.Minute)
		if bk.Status == models.BookingConfirmed && end.Before(now) {
			bk.Status = models.BookingCompleted
			bk.UpdatedAt = now
			b.bookings[id] = bk
			n++
		}
	}
	return n, nil
}

func (b *Bookings) StationVisits(_ context.Context, user primitive.ObjectID) (map[string]int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := map[string]int{}
	for _, bk := range b.bookings {
		if bk.User == user && bk.Status != models.BookingCancelled && bk.Station.ID != "" {
			out[bk.Station.ID]++
		}
	}
	return out, nil
}
