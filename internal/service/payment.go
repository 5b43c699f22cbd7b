package service

import (
	"context"
	"errors"
	"strings"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/payment"
	"hostel_booking/internal/repository"

	"github.com/sirupsen/logrus"
)

const chargeDescription = "Hostel Booking"

type ChargeInput struct {
	Token     string
	BookingID *uint
}

type PaymentService struct {
	gateway  payment.Gateway
	bookings repository.BookingRepository
	payments repository.PaymentRepository
	amount   int64
	currency string
	notifier *Notifier
}

func NewPaymentService(gateway payment.Gateway, bookings repository.BookingRepository, payments repository.PaymentRepository, amount int64, currency string, notifier *Notifier) *PaymentService {
	return &PaymentService{
		gateway:  gateway,
		bookings: bookings,
		payments: payments,
		amount:   amount,
		currency: strings.ToLower(currency),
		notifier: notifier,
	}
}

// Charge bills user the configured amount using a single-use card token.
// When in.BookingID is set the booking must belong to user and still be pending.
func (s *PaymentService) Charge(ctx context.Context, user *domain.User, in ChargeInput) (*domain.Payment, error) {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return nil, apperrors.Validation("stripeToken is required")
	}
	if in.BookingID != nil {
		booking, err := s.bookings.FindByID(ctx, *in.BookingID)
		if errors.Is(err, repository.ErrNotFound) || (err == nil && booking.UserID != user.ID) {
			return nil, apperrors.NotFound("Booking")
		} else if err != nil {
			return nil, apperrors.Internal("Failed to load booking", err)
		}
		if booking.Status == domain.BookingPaid {
			return nil, apperrors.Conflict("Booking already paid")
		}
	}

	charge, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		Token:       token,
		Email:       user.Email,
		Amount:      s.amount,
		Currency:    s.currency,
		Description: chargeDescription,
	})
	if err != nil {
		var declined *payment.DeclinedError
		if errors.As(err, &declined) {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "code": declined.Code}).Warn("Charge declined")
			return nil, apperrors.PaymentFailed(declined.Message, err)
		}
		logrus.WithError(err).WithField("user_id", user.ID).Error("Charge failed")
		return nil, apperrors.PaymentFailed("Payment could not be processed", err)
	}

	p := &domain.Payment{
		UserID:             user.ID,
		BookingID:          in.BookingID,
		ProviderCustomerID: charge.CustomerID,
		ProviderChargeID:   charge.ChargeID,
		Amount:             charge.Amount,
		Currency:           charge.Currency,
		Status:             charge.Status,
	}
	err = s.payments.Record(ctx, p)
	if errors.Is(err, repository.ErrAlreadyPaid) {
		// the booking was paid concurrently; the money is taken, so keep the record
		logrus.WithFields(logrus.Fields{"user_id": user.ID, "booking_id": *in.BookingID, "charge_id": charge.ChargeID}).
			Error("Booking paid twice, recording charge without booking link")
		p.ID, p.BookingID = 0, nil
		err = s.payments.Record(ctx, p)
	}
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"user_id": user.ID, "charge_id": charge.ChargeID}).Error("Failed to record payment")
		return nil, apperrors.Internal("Payment taken but could not be recorded", err)
	}

	logrus.WithFields(logrus.Fields{"payment_id": p.ID, "user_id": user.ID, "amount": p.Amount}).Info("Payment succeeded")
	s.notifier.PaymentSucceeded(ctx, user, p)
	return p, nil
}

// History lists the user's recorded payments, newest first.
func (s *PaymentService) History(ctx context.Context, userID uint) ([]domain.Payment, error) {
	payments, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load payments", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}
	return payments, nil
}
