package service

import (
	"context"
	"testing"
	"time"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/events"
	"hostel_booking/internal/repository"
	"hostel_booking/internal/testutil"
	"hostel_booking/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type bookingFixture struct {
	gdb       *gorm.DB
	svc       *BookingService
	locker    *utils.Locker
	mailer    *fakeMailer
	publisher *fakePublisher
	guest     *domain.User
	dorm      *domain.RoomType
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	gdb := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	store := repository.NewStore(gdb)
	f := &bookingFixture{
		gdb:       gdb,
		locker:    utils.NewLocker(rdb, 5*time.Second),
		mailer:    &fakeMailer{},
		publisher: &fakePublisher{},
	}
	notifier := NewNotifier(f.mailer, f.publisher, "desk@hostel.test")
	f.svc = NewBookingService(store.Bookings, store.RoomTypes, f.locker, utils.NewCache(rdb, time.Minute), notifier)
	f.guest = testutil.CreateUser(t, gdb, "guest", false)
	f.dorm = testutil.CreateRoomType(t, gdb, "Dorm", 20)
	return f
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	booking, err := f.svc.Create(ctx, f.guest, BookingInput{RoomTypeID: f.dorm.ID, CheckIn: "2024-03-01", CheckOut: "2024-03-04"})
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
	assert.Equal(t, domain.BookingPending, booking.Status)
	assert.Equal(t, "2024-03-01", booking.CheckIn.String())

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, events.TypeBookingCreated, f.publisher.events[0].Type)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, []string{"guest@example.com"}, f.mailer.sent[0].Recipients)
	assert.Contains(t, f.mailer.sent[0].TextBody, "3 nights")

	mine, err := f.svc.ListForUser(ctx, f.guest.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	testutil.CreateBooking(t, f.gdb, f.guest.ID, f.dorm.ID, "2024-03-01", "2024-03-05")

	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		conflict bool
	}{
		{name: "same day turnover", checkIn: "2024-03-05", checkOut: "2024-03-07", conflict: true},
		{name: "ends on check in", checkIn: "2024-02-27", checkOut: "2024-03-01", conflict: true},
		{name: "contained", checkIn: "2024-03-02", checkOut: "2024-03-03", conflict: true},
		{name: "after", checkIn: "2024-03-06", checkOut: "2024-03-07", conflict: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.guest, BookingInput{RoomTypeID: f.dorm.ID, CheckIn: tt.checkIn, CheckOut: tt.checkOut})
			if tt.conflict {
				assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.guest, BookingInput{RoomTypeID: f.dorm.ID, CheckIn: "2024-03-05", CheckOut: "2024-03-01"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = f.svc.Create(ctx, f.guest, BookingInput{RoomTypeID: f.dorm.ID, CheckIn: "2024-03-05", CheckOut: "2024-03-05"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = f.svc.Create(ctx, f.guest, BookingInput{RoomTypeID: f.dorm.ID, CheckIn: "03/05/2024", CheckOut: "2024-03-06"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = f.svc.Create(ctx, f.guest, BookingInput{RoomTypeID: 999, CheckIn: "2024-03-01", CheckOut: "2024-03-02"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	var count int64
	require.NoError(t, f.gdb.Model(&domain.Booking{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Empty(t, f.mailer.sent)
}

func TestCreateBookingWhileLocked(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	release, err := f.locker.Acquire(ctx, lockKey(f.dorm.ID))
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, f.guest, BookingInput{RoomTypeID: f.dorm.ID, CheckIn: "2024-03-01", CheckOut: "2024-03-02"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	release()
	_, err = f.svc.Create(ctx, f.guest, BookingInput{RoomTypeID: f.dorm.ID, CheckIn: "2024-03-01", CheckOut: "2024-03-02"})
	assert.NoError(t, err)
}

func TestCreateBookingNotificationFailureIsSwallowed(t *testing.T) {
	f := newBookingFixture(t)
	f.mailer.err = assert.AnError
	f.publisher.err = assert.AnError

	booking, err := f.svc.Create(context.Background(), f.guest, BookingInput{RoomTypeID: f.dorm.ID, CheckIn: "2024-03-01", CheckOut: "2024-03-02"})
	require.NoError(t, err)
	assert.NotZero(t, booking.ID)
}

func TestRoomTypesCached(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	rooms, err := f.svc.RoomTypes(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 1)

	// a row added behind the cache is not visible until invalidation
	testutil.CreateRoomType(t, f.gdb, "Private", 60)
	rooms, err = f.svc.RoomTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}
