package booking

import (
	"context"
	"testing"
	"time"

	"chargesphere/database/repository/memory"
	"chargesphere/models"
	"chargesphere/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *DefaultBookingService
	users    *memory.Users
	bookings *memory.Bookings
	owner    *models.User
	other    *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUsers()
	bookings := memory.NewBookings()

	owner := &models.User{Name: "Ada", Email: "ada@example.com", Phone: "555-0100", Role: models.RoleCustomer}
	other := &models.User{Name: "Bob", Email: "bob@example.com", Role: models.RoleCustomer}
	require.NoError(t, users.Create(context.Background(), owner))
	require.NoError(t, users.Create(context.Background(), other))

	return &fixture{
		svc:      &DefaultBookingService{Repo: bookings, Users: users, Now: func() time.Time { return fixedNow }},
		users:    users,
		bookings: bookings,
		owner:    owner,
		other:    other,
	}
}

func validRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		Station:     models.StationSnapshot{ID: "1", Name: "ChargeSphere Downtown Hub", Lat: 40.7128, Lng: -74.0060},
		Vehicle:     models.VehicleSnapshot{Type: "Sedan", Model: "Model 3"},
		BookingDate: "2026-05-11",
		StartTime:   "10:00",
		Duration:    60,
		ChargerType: "Fast DC",
	}
}

func (f *fixture) create(t *testing.T) *models.Booking {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), f.owner.ID, validRequest())
	require.NoError(t, err)
	return b
}

func strPtr(s string) *string { return &s }

func TestCreateBookingStartsPending(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)

	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	assert.Equal(t, f.owner.ID, b.User)
	assert.Equal(t, 0.0, b.EstimatedCost)
	assert.Equal(t, time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC), b.BookingDate)
}

func TestCreateBookingListsEveryViolation(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Station.Name = ""
	req.Vehicle.Type = ""
	req.Duration = 10
	req.BookingDate = "tomorrow"

	_, err := f.svc.CreateBooking(context.Background(), f.owner.ID, req)
	require.Error(t, err)

	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, fe := range verr.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["station.name"])
	assert.True(t, fields["vehicle.type"])
	assert.True(t, fields["duration"])
	assert.True(t, fields["bookingDate"])

	n, _ := f.bookings.Count(context.Background(), models.BookingFilter{})
	assert.Zero(t, n)
}

func TestCreateBookingRejectsBlankText(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Station.Name = "   "
	req.Vehicle.Type = "\t"
	req.ChargerType = "  "
	req.StartTime = " "

	_, err := f.svc.CreateBooking(context.Background(), f.owner.ID, req)
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := map[string]bool{}
	for _, fe := range verr.Fields {
		fields[fe.Field] = true
	}
	assert.True(t, fields["station.name"])
	assert.True(t, fields["vehicle.type"])
	assert.True(t, fields["chargerType"])
	assert.True(t, fields["startTime"])

	n, _ := f.bookings.Count(context.Background(), models.BookingFilter{})
	assert.Zero(t, n)
}

func TestCreateBookingTrimsText(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Station.Name = "  Harbor Point  "
	req.ChargerType = " CCS "

	b, err := f.svc.CreateBooking(context.Background(), f.owner.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Harbor Point", b.Station.Name)
	assert.Equal(t, "CCS", b.ChargerType)
}

func TestCreateBookingDurationBounds(t *testing.T) {
	f := newFixture(t)
	for _, d := range []int{14, 525601} {
		req := validRequest()
		req.Duration = d
		_, err := f.svc.CreateBooking(context.Background(), f.owner.ID, req)
		assert.Error(t, err, "duration %d", d)
	}
	for _, d := range []int{15, 525600} {
		req := validRequest()
		req.Duration = d
		_, err := f.svc.CreateBooking(context.Background(), f.owner.ID, req)
		assert.NoError(t, err, "duration %d", d)
	}
}

func TestGetBookingChecksExistenceThenOwnership(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	_, err := f.svc.GetBooking(ctx, f.owner.ID, primitive.NewObjectID().Hex())
	assert.Equal(t, 404, utils.HTTPStatus(err))

	_, err = f.svc.GetBooking(ctx, f.owner.ID, "not-an-id")
	assert.Equal(t, 404, utils.HTTPStatus(err))

	_, err = f.svc.GetBooking(ctx, f.other.ID, b.ID.Hex())
	assert.Equal(t, 403, utils.HTTPStatus(err))

	got, err := f.svc.GetBooking(ctx, f.owner.ID, b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestUpdateBookingByNonOwnerLeavesItUnchanged(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)

	_, err := f.svc.UpdateBooking(context.Background(), f.other.ID, b.ID.Hex(), models.UpdateBookingRequest{Notes: strPtr("mine now")})
	assert.Equal(t, 403, utils.HTTPStatus(err))

	got, _ := f.bookings.GetByID(context.Background(), b.ID)
	assert.Empty(t, got.Notes)
}

func TestUpdateBookingFields(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	dur := 90

	got, err := f.svc.UpdateBooking(context.Background(), f.owner.ID, b.ID.Hex(), models.UpdateBookingRequest{
		Duration:  &dur,
		StartTime: strPtr("14:30"),
		Notes:     strPtr("bring adapter"),
	})
	require.NoError(t, err)
	assert.Equal(t, 90, got.Duration)
	assert.Equal(t, "14:30", got.StartTime)
	assert.Equal(t, "bring adapter", got.Notes)
	assert.Equal(t, models.BookingPending, got.Status)
}

func TestUpdateBookingRejectsInvalidDuration(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	dur := 5

	_, err := f.svc.UpdateBooking(context.Background(), f.owner.ID, b.ID.Hex(), models.UpdateBookingRequest{Duration: &dur})
	assert.Equal(t, 400, utils.HTTPStatus(err))
}

func TestUpdateBookingRejectsBlankStartTime(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)

	_, err := f.svc.UpdateBooking(context.Background(), f.owner.ID, b.ID.Hex(), models.UpdateBookingRequest{StartTime: strPtr("   ")})
	assert.Equal(t, 400, utils.HTTPStatus(err))

	got, _ := f.bookings.GetByID(context.Background(), b.ID)
	assert.Equal(t, "10:00", got.StartTime)
}

func TestUpdateBookingFieldsAndCancelTogether(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)

	got, err := f.svc.UpdateBooking(context.Background(), f.owner.ID, b.ID.Hex(), models.UpdateBookingRequest{
		Notes:  strPtr("plans changed"),
		Status: strPtr("cancelled"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
	assert.Equal(t, "plans changed", got.Notes)
}

// staleBookings hands out a booking snapshot, then moves the stored status
// behind the caller's back.
type staleBookings struct {
	*memory.Bookings
	moveTo models.BookingStatus
}

func (s *staleBookings) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.Bookings.TransitionStatus(ctx, id, b.Status, s.moveTo); err != nil {
		return nil, err
	}
	return b, nil
}

func TestUpdateBookingWritesNothingWhenStatusMoved(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	f.svc.Repo = &staleBookings{Bookings: f.bookings, moveTo: models.BookingConfirmed}

	_, err := f.svc.UpdateBooking(context.Background(), f.owner.ID, b.ID.Hex(), models.UpdateBookingRequest{
		Notes:  strPtr("late edit"),
		Status: strPtr("cancelled"),
	})
	assert.Equal(t, 409, utils.HTTPStatus(err))

	stored, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Notes)
	assert.Equal(t, models.BookingConfirmed, stored.Status)
}

func TestUpdateBookingStatusByOwner(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	_, err := f.svc.UpdateBooking(ctx, f.owner.ID, b.ID.Hex(), models.UpdateBookingRequest{Status: strPtr("confirmed")})
	assert.Equal(t, 403, utils.HTTPStatus(err))

	got, err := f.svc.UpdateBooking(ctx, f.owner.ID, b.ID.Hex(), models.UpdateBookingRequest{Status: strPtr("cancelled")})
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)
}

func TestCancelBookingIsSoftAndIdempotent(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	got, err := f.svc.CancelBooking(ctx, f.owner.ID, b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)

	got, err = f.svc.CancelBooking(ctx, f.owner.ID, b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, got.Status)

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, stored.Status)
}

func TestCancelBookingByOtherUserIsForbidden(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)

	_, err := f.svc.CancelBooking(context.Background(), f.other.ID, b.ID.Hex())
	assert.Equal(t, 403, utils.HTTPStatus(err))
}

func TestApproveThenRejectAndIllegalTransitions(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	approved, err := f.svc.ApproveBooking(ctx, b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, approved.Status)
	require.NotNil(t, approved.Owner)
	assert.Equal(t, "Ada", approved.Owner.Name)

	again, err := f.svc.ApproveBooking(ctx, b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, again.Status)

	rejected, err := f.svc.RejectBooking(ctx, b.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, rejected.Status)

	_, err = f.svc.ApproveBooking(ctx, b.ID.Hex())
	assert.Equal(t, 409, utils.HTTPStatus(err))

	_, err = f.svc.ApproveBooking(ctx, primitive.NewObjectID().Hex())
	assert.Equal(t, 404, utils.HTTPStatus(err))
}

func TestCancelCompletedBookingConflicts(t *testing.T) {
	f := newFixture(t)
	b := f.create(t)
	ctx := context.Background()

	_, err := f.svc.ApproveBooking(ctx, b.ID.Hex())
	require.NoError(t, err)
	n, err := f.svc.CompletePastBookings(ctx, fixedNow.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.svc.CancelBooking(ctx, f.owner.ID, b.ID.Hex())
	assert.Equal(t, 409, utils.HTTPStatus(err))
}

func TestStatsCountUpcomingAfterApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t)

	stats, err := f.svc.GetStats(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStats{Total: 1}, *stats)

	_, err = f.svc.ApproveBooking(ctx, b.ID.Hex())
	require.NoError(t, err)

	stats, err = f.svc.GetStats(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Total)
	assert.Equal(t, int64(1), stats.Upcoming)
	assert.Equal(t, int64(0), stats.Completed)

	other, err := f.svc.GetStats(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Zero(t, other.Total)
}

func TestListBookingsScopedAndPaginated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i := 0; i < 12; i++ {
		f.create(t)
	}
	_, err := f.svc.CreateBooking(ctx, f.other.ID, validRequest())
	require.NoError(t, err)

	page, err := f.svc.ListBookings(ctx, f.owner.ID, "", models.Page{})
	require.NoError(t, err)
	assert.Len(t, page.Bookings, 10)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.True(t, !page.Bookings[0].CreatedAt.Before(page.Bookings[9].CreatedAt))

	page, err = f.svc.ListBookings(ctx, f.owner.ID, "", models.Page{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page.Bookings, 2)

	_, err = f.svc.ListBookings(ctx, f.owner.ID, "archived", models.Page{})
	assert.Equal(t, 400, utils.HTTPStatus(err))

	page, err = f.svc.ListBookings(ctx, f.owner.ID, "cancelled", models.Page{})
	require.NoError(t, err)
	assert.Empty(t, page.Bookings)
}

func TestAdminListAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.create(t)
	_, err := f.svc.CreateBooking(ctx, f.other.ID, validRequest())
	require.NoError(t, err)
	_, err = f.svc.ApproveBooking(ctx, b.ID.Hex())
	require.NoError(t, err)

	page, err := f.svc.AdminListBookings(ctx, "", models.Page{})
	require.NoError(t, err)
	assert.Len(t, page.Bookings, 2)
	for _, entry := range page.Bookings {
		require.NotNil(t, entry.Owner)
	}

	confirmed, err := f.svc.AdminListBookings(ctx, "confirmed", models.Page{})
	require.NoError(t, err)
	require.Len(t, confirmed.Bookings, 1)
	assert.Equal(t, "555-0100", confirmed.Bookings[0].Owner.Phone)

	stats, err := f.svc.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, models.BookingCounts{Total: 2, Pending: 1, Confirmed: 1}, stats.Bookings)
}

func TestStationVisitsIgnoreCancelled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t)
	b := f.create(t)
	_, err := f.svc.CancelBooking(ctx, f.owner.ID, b.ID.Hex())
	require.NoError(t, err)

	visits, err := f.svc.StationVisits(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 1}, visits)
}
