package admin

import (
	"encoding/json"
	"errors"
	"strings"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/repository"
	"hostel_booking/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Resource names as they appear in /admin/:resource.
const (
	Users     = "users"
	RoomTypes = "room_types"
	Bookings  = "bookings"
	Reviews   = "reviews"
	Photos    = "photos"
)

// NewRegistry builds the admin console's resources over db.
func NewRegistry(db *gorm.DB, cache *utils.Cache) *Registry {
	return newRegistry(
		(&crud[domain.User]{
			db: db, cache: cache, name: Users, label: "User",
			fields:  []string{"username", "email", "password", "is_admin"},
			prepare: prepareUser,
			beforeDelete: func(tx *gorm.DB, u *domain.User) error {
				n, err := repository.NewBookingRepository(tx).CountByUser(tx.Statement.Context, u.ID)
				return refuseIfBooked(n, err, "User")
			},
		}).resource(),
		(&crud[domain.RoomType]{
			db: db, cache: cache, name: RoomTypes, label: "Room type",
			fields: []string{"name", "price"},
			beforeDelete: func(tx *gorm.DB, rt *domain.RoomType) error {
				n, err := repository.NewBookingRepository(tx).CountByRoomType(tx.Statement.Context, rt.ID)
				return refuseIfBooked(n, err, "Room type")
			},
			invalidate: []string{utils.KeyRoomTypes},
		}).resource(),
		(&crud[domain.Booking]{
			db: db, cache: cache, name: Bookings, label: "Booking",
			fields:  []string{"user_id", "room_type_id", "check_in", "check_out", "status"},
			prepare: prepareBooking,
		}).resource(),
		(&crud[domain.Review]{
			db: db, cache: cache, name: Reviews, label: "Review",
			fields: []string{"user_id", "rating", "comment"},
			prepare: func(tx *gorm.DB, r *domain.Review, _ map[string]json.RawMessage, _ bool) error {
				return mustExist(tx, &domain.User{}, r.UserID, "user_id")
			},
		}).resource(),
		(&crud[domain.Photo]{
			db: db, cache: cache, name: Photos, label: "Photo",
			fields:     []string{"filename", "description"},
			invalidate: []string{utils.KeyPhotos},
		}).resource(),
	)
}

// prepareUser normalizes identity fields and hashes a supplied password.
func prepareUser(_ *gorm.DB, u *domain.User, raw map[string]json.RawMessage, creating bool) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	pw, ok := raw["password"]
	if !ok {
		if creating {
			return apperrors.Validation("password is required")
		}
		return nil
	}
	var password string
	if err := json.Unmarshal(pw, &password); err != nil {
		return apperrors.Validation("password must be a string")
	}
	if len(password) < 8 || len(password) > 72 {
		return apperrors.Validation("password must be between 8 and 72 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Internal("Failed to hash password", err)
	}
	u.Password = string(hash)
	return nil
}

// prepareBooking enforces the same rules as the public booking flow:
// a non-empty window that overlaps no other booking of the room type.
func prepareBooking(tx *gorm.DB, b *domain.Booking, _ map[string]json.RawMessage, creating bool) error {
	if b.CheckIn.IsZero() || b.CheckOut.IsZero() {
		return apperrors.Validation("check_in and check_out are required")
	}
	stay := b.Stay()
	if err := stay.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	if creating && b.Status == "" {
		b.Status = domain.BookingPending
	}
	if err := mustExist(tx, &domain.User{}, b.UserID, "user_id"); err != nil {
		return err
	}
	if b.RoomTypeID == 0 {
		return apperrors.Validation("room_type_id is required")
	}
	if err := repository.LockRoomType(tx, b.RoomTypeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.Validation("room_type_id does not exist")
		}
		return err
	}

	var others []domain.Booking
	if err := tx.Where("room_type_id = ? AND id <> ?", b.RoomTypeID, b.ID).Find(&others).Error; err != nil {
		return err
	}
	for i := range others {
		if others[i].Stay().Conflicts(stay) {
			return apperrors.Conflict("Room type is not available for the selected dates")
		}
	}
	return nil
}

func mustExist(tx *gorm.DB, model any, id uint, field string) error {
	if id == 0 {
		return apperrors.Validation(field + " is required")
	}
	err := tx.Select("id").First(model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Validation(field + " does not exist")
	}
	return err
}

// refuseIfBooked blocks deletes that would orphan bookings.
func refuseIfBooked(n int64, err error, label string) error {
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.Conflict(label + " still has bookings")
	}
	return nil
}
