package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/testutil"
	"hostel_booking/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*Registry, *gorm.DB, *utils.Cache) {
	t.Helper()
	gdb := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	cache := utils.NewCache(rdb, time.Minute)
	return NewRegistry(gdb, cache), gdb, cache
}

func mustLookup(t *testing.T, r *Registry, name string) *Resource {
	t.Helper()
	res, ok := r.Lookup(name)
	require.True(t, ok, "resource %s", name)
	return res
}

func TestRegistryNames(t *testing.T) {
	r, _, _ := setup(t)
	assert.Equal(t, []string{Users, RoomTypes, Bookings, Reviews, Photos}, r.Names())

	_, ok := r.Lookup("payments")
	assert.False(t, ok)
}

func TestPermission(t *testing.T) {
	r, _, _ := setup(t)
	for _, name := range r.Names() {
		res := mustLookup(t, r, name)
		assert.True(t, res.Allowed(&domain.User{IsAdmin: true}, ActionDelete), name)
		assert.False(t, res.Allowed(&domain.User{}, ActionList), name)
		assert.False(t, res.Allowed(nil, ActionList), name)
	}
}

func TestRoomTypeCRUD(t *testing.T) {
	r, _, cache := setup(t)
	ctx := context.Background()
	res := mustLookup(t, r, RoomTypes)
	require.NoError(t, cache.Set(ctx, utils.KeyRoomTypes, []string{"stale"}))

	created, err := res.Create(ctx, []byte(`{"name":"Dorm","price":20}`))
	require.NoError(t, err)
	rt := created.(*domain.RoomType)
	assert.NotZero(t, rt.ID)

	var stale []string
	found, err := cache.Get(ctx, utils.KeyRoomTypes, &stale)
	require.NoError(t, err)
	assert.False(t, found, "public room type listing is invalidated")

	updated, err := res.Update(ctx, rt.ID, []byte(`{"price":25.5}`))
	require.NoError(t, err)
	assert.Equal(t, "Dorm", updated.(*domain.RoomType).Name)
	assert.Equal(t, 25.5, updated.(*domain.RoomType).Price)

	got, err := res.Get(ctx, rt.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.5, got.(*domain.RoomType).Price)

	_, err = res.Create(ctx, []byte(`{"name":"","price":0}`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = res.Create(ctx, []byte(`{"name":"Suite","price":90,"id":7}`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "id is not writable")

	_, err = res.Create(ctx, []byte(`[1,2]`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	require.NoError(t, res.Delete(ctx, rt.ID))
	_, err = res.Get(ctx, rt.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.True(t, apperrors.HasCode(res.Delete(ctx, rt.ID), apperrors.CodeNotFound))
}

func TestListPagination(t *testing.T) {
	r, gdb, _ := setup(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		testutil.CreateRoomType(t, gdb, fmt.Sprintf("Room %d", i), 10)
	}
	res := mustLookup(t, r, RoomTypes)

	page, err := res.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.Cached)
	items := page.Items.([]domain.RoomType)
	require.Len(t, items, 2)
	assert.Equal(t, "Room 2", items[0].Name)

	page, err = res.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.True(t, page.Cached)

	// writes drop cached pages
	_, err = res.Create(ctx, []byte(`{"name":"Room 5","price":10}`))
	require.NoError(t, err)
	page, err = res.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.False(t, page.Cached)
	assert.EqualValues(t, 6, page.Total)

	page, err = res.List(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
}

func TestUserResource(t *testing.T) {
	r, gdb, _ := setup(t)
	ctx := context.Background()
	res := mustLookup(t, r, Users)

	created, err := res.Create(ctx, []byte(`{"username":"Grace","email":"Grace@Example.com","password":"supersecret","is_admin":true}`))
	require.NoError(t, err)
	u := created.(*domain.User)
	assert.Equal(t, "grace", u.Username)
	assert.Equal(t, "grace@example.com", u.Email)
	assert.True(t, u.IsAdmin)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("supersecret")))

	_, err = res.Create(ctx, []byte(`{"username":"heidi","email":"heidi@example.com"}`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "password required on create")

	_, err = res.Create(ctx, []byte(`{"username":"grace","email":"other@example.com","password":"supersecret"}`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	// updating without a password keeps the stored hash
	oldHash := u.Password
	updated, err := res.Update(ctx, u.ID, []byte(`{"is_admin":false}`))
	require.NoError(t, err)
	assert.False(t, updated.(*domain.User).IsAdmin)
	assert.Equal(t, oldHash, updated.(*domain.User).Password)

	room := testutil.CreateRoomType(t, gdb, "Dorm", 20)
	testutil.CreateBooking(t, gdb, u.ID, room.ID, "2024-01-01", "2024-01-03")
	assert.True(t, apperrors.HasCode(res.Delete(ctx, u.ID), apperrors.CodeConflict))
	assert.True(t, apperrors.HasCode(mustLookup(t, r, RoomTypes).Delete(ctx, room.ID), apperrors.CodeConflict))
}

func TestRoomTypeDeleteRefusedWhileBooked(t *testing.T) {
	r, gdb, _ := setup(t)
	ctx := context.Background()
	res := mustLookup(t, r, RoomTypes)
	guest := testutil.CreateUser(t, gdb, "guest", false)
	booked := testutil.CreateRoomType(t, gdb, "Dorm", 20)
	empty := testutil.CreateRoomType(t, gdb, "Suite", 90)
	testutil.CreateBooking(t, gdb, guest.ID, booked.ID, "2024-01-01", "2024-01-03")

	assert.True(t, apperrors.HasCode(res.Delete(ctx, booked.ID), apperrors.CodeConflict))
	_, err := res.Get(ctx, booked.ID)
	assert.NoError(t, err, "refused delete leaves the row")

	require.NoError(t, res.Delete(ctx, empty.ID))
	_, err = res.Get(ctx, empty.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestBookingResource(t *testing.T) {
	r, gdb, _ := setup(t)
	ctx := context.Background()
	guest := testutil.CreateUser(t, gdb, "guest", false)
	dorm := testutil.CreateRoomType(t, gdb, "Dorm", 20)
	res := mustLookup(t, r, Bookings)

	body := func(in, out string) []byte {
		return []byte(fmt.Sprintf(`{"user_id":%d,"room_type_id":%d,"check_in":%q,"check_out":%q}`, guest.ID, dorm.ID, in, out))
	}

	created, err := res.Create(ctx, body("2024-01-01", "2024-01-05"))
	require.NoError(t, err)
	b := created.(*domain.Booking)
	assert.Equal(t, domain.BookingPending, b.Status)

	_, err = res.Create(ctx, body("2024-01-05", "2024-01-07"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict), "turnover day conflicts")

	_, err = res.Create(ctx, body("2024-01-09", "2024-01-07"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = res.Create(ctx, body("01/09/2024", "2024-01-10"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = res.Create(ctx, []byte(fmt.Sprintf(`{"user_id":%d,"room_type_id":999,"check_in":"2024-02-01","check_out":"2024-02-02"}`, guest.ID)))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	// moving a booking inside its own window does not conflict with itself
	updated, err := res.Update(ctx, b.ID, []byte(`{"check_out":"2024-01-04","status":"paid"}`))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-04", updated.(*domain.Booking).CheckOut.String())
	assert.Equal(t, domain.BookingPaid, updated.(*domain.Booking).Status)

	_, err = res.Update(ctx, b.ID, []byte(`{"status":"cancelled"}`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestReviewResource(t *testing.T) {
	r, gdb, _ := setup(t)
	ctx := context.Background()
	guest := testutil.CreateUser(t, gdb, "guest", false)
	res := mustLookup(t, r, Reviews)

	_, err := res.Create(ctx, []byte(fmt.Sprintf(`{"user_id":%d,"rating":6}`, guest.ID)))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = res.Create(ctx, []byte(`{"user_id":999,"rating":4}`))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	created, err := res.Create(ctx, []byte(fmt.Sprintf(`{"user_id":%d,"rating":4,"comment":"Quiet"}`, guest.ID)))
	require.NoError(t, err)
	assert.Equal(t, "Quiet", *created.(*domain.Review).Comment)
}

func TestPhotoResourceInvalidatesGallery(t *testing.T) {
	r, _, cache := setup(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, utils.KeyPhotos, []string{"stale"}))

	_, err := mustLookup(t, r, Photos).Create(ctx, []byte(`{"filename":"lobby.jpg","description":"Lobby"}`))
	require.NoError(t, err)

	var stale []string
	found, err := cache.Get(ctx, utils.KeyPhotos, &stale)
	require.NoError(t, err)
	assert.False(t, found)
}
