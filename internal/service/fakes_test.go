package service

import (
	"context"
	"fmt"
	"sync"

	"hostel_booking/internal/events"
	"hostel_booking/internal/mail"
	"hostel_booking/internal/payment"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

type fakeGateway struct {
	requests []payment.ChargeRequest
	err      error
	seq      int
}

func (g *fakeGateway) Charge(_ context.Context, req payment.ChargeRequest) (*payment.Charge, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	g.seq++
	return &payment.Charge{
		CustomerID: "cus_test",
		ChargeID:   fmt.Sprintf("ch_test_%d", g.seq),
		Amount:     req.Amount,
		Currency:   req.Currency,
		Status:     "succeeded",
	}, nil
}
