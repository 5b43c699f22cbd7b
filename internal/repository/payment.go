package repository

import (
	"context"
	"fmt"

	"hostel_booking/internal/domain"

	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Record(ctx context.Context, payment *domain.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if payment.BookingID != nil {
			res := tx.Model(&domain.Booking{}).
				Where("id = ? AND status = ?", *payment.BookingID, domain.BookingPending).
				Update("status", domain.BookingPaid)
			if res.Error != nil {
				return fmt.Errorf("mark booking paid: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrAlreadyPaid
			}
		}
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("record payment: %w", translate(err))
		}
		return nil
	})
}

func (r *paymentRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
