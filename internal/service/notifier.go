package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"hostel_booking/internal/domain"
	"hostel_booking/internal/events"
	"hostel_booking/internal/mail"

	"github.com/sirupsen/logrus"
)

// Notifier fans business events out to mail and the event bus.
// Delivery problems are logged and never reach the caller.
type Notifier struct {
	mailer    mail.Sender
	publisher events.Publisher
	sender    string
}

func NewNotifier(mailer mail.Sender, publisher events.Publisher, sender string) *Notifier {
	if mailer == nil {
		mailer = mail.Discard{}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Notifier{mailer: mailer, publisher: publisher, sender: sender}
}

func (n *Notifier) BookingCreated(ctx context.Context, user *domain.User, booking *domain.Booking, room *domain.RoomType) {
	n.publish(ctx, events.Event{Type: events.TypeBookingCreated, ID: booking.ID, OccurredAt: time.Now().UTC(), Payload: booking})

	stay := booking.Stay()
	text := fmt.Sprintf("Hi %s,\n\nyour booking #%d for %s from %s to %s (%d nights) is confirmed.\n",
		user.Username, booking.ID, room.Name, booking.CheckIn, booking.CheckOut, stay.Nights())
	body := fmt.Sprintf("<p>Hi %s,</p><p>your booking #%d for <b>%s</b> from %s to %s (%d nights) is confirmed.</p>",
		html.EscapeString(user.Username), booking.ID, html.EscapeString(room.Name), booking.CheckIn, booking.CheckOut, stay.Nights())
	n.send(mail.Message{
		Subject:    "Booking confirmation",
		Sender:     n.sender,
		Recipients: []string{user.Email},
		TextBody:   text,
		HTMLBody:   body,
	})
}

func (n *Notifier) PaymentSucceeded(ctx context.Context, user *domain.User, p *domain.Payment) {
	n.publish(ctx, events.Event{Type: events.TypePaymentSucceeded, ID: p.ID, OccurredAt: time.Now().UTC(), Payload: p})

	amount := fmt.Sprintf("%d.%02d %s", p.Amount/100, p.Amount%100, p.Currency)
	n.send(mail.Message{
		Subject:    "Payment receipt",
		Sender:     n.sender,
		Recipients: []string{user.Email},
		TextBody:   fmt.Sprintf("Hi %s,\n\nwe received your payment of %s (ref %s).\n", user.Username, amount, p.ProviderChargeID),
		HTMLBody: fmt.Sprintf("<p>Hi %s,</p><p>we received your payment of %s (ref %s).</p>",
			html.EscapeString(user.Username), amount, html.EscapeString(p.ProviderChargeID)),
	})
}

func (n *Notifier) publish(ctx context.Context, e events.Event) {
	if err := n.publisher.Publish(ctx, e); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"event": e.Type, "id": e.ID}).Error("Failed to publish event")
	}
}

func (n *Notifier) send(msg mail.Message) {
	if err := n.mailer.Send(msg); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"subject": msg.Subject, "to": msg.Recipients}).Error("Failed to send mail")
	}
}
