// Package testutil builds throwaway databases, redis servers and fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"hostel_booking/internal/db"
	"hostel_booking/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// NewDB returns a migrated SQLite database living in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenSQLite(filepath.Join(t.TempDir(), "hostel.db"), nil)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

// NewRedis starts an in-process redis and returns a client bound to it.
func NewRedis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb, mr
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t testing.TB, gdb *gorm.DB, username string, isAdmin bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &domain.User{Username: username, Email: username + "@example.com", Password: string(hash), IsAdmin: isAdmin}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func CreateRoomType(t testing.TB, gdb *gorm.DB, name string, price float64) *domain.RoomType {
	t.Helper()
	rt := &domain.RoomType{Name: name, Price: price}
	require.NoError(t, gdb.Create(rt).Error)
	return rt
}

// CreateBooking inserts a booking directly, bypassing the overlap check.
func CreateBooking(t testing.TB, gdb *gorm.DB, userID, roomTypeID uint, checkIn, checkOut string) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		UserID:     userID,
		RoomTypeID: roomTypeID,
		CheckIn:    domain.MustDate(checkIn),
		CheckOut:   domain.MustDate(checkOut),
		Status:     domain.BookingPending,
	}
	require.NoError(t, gdb.Create(b).Error)
	return b
}

// Stay builds a window from two YYYY-MM-DD literals.
func Stay(checkIn, checkOut string) domain.Stay {
	return domain.Stay{CheckIn: domain.MustDate(checkIn).Time, CheckOut: domain.MustDate(checkOut).Time}
}
