package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

type ConfirmationRequest struct {
	HotelName    string
	CheckInDate  string
	CheckOutDate string
	TotalFare    string
}

type LabelValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Confirmation struct {
	Status         string       `json:"status"`
	BookingDetails []LabelValue `json:"bookingDetails"`
}

// FailureHook lets tests (or chaos config) inject a payment failure; the mock
// gateway otherwise always succeeds after the delay.
type FailureHook func(ConfirmationRequest) error

// PaymentService simulates the gateway round trip: a fixed-duration wait that
// honours context cancellation, with the number of in-flight confirmations
// bounded by a weighted semaphore.
type PaymentService struct {
	delay time.Duration
	sem   *semaphore.Weighted
	fail  FailureHook
}

func NewPaymentService(delay time.Duration, maxInFlight int64, fail FailureHook) *PaymentService {
	if maxInFlight <= 0 {
		maxInFlight = 1
	}
	return &PaymentService{delay: delay, sem: semaphore.NewWeighted(maxInFlight), fail: fail}
}

func (s *PaymentService) Confirm(ctx context.Context, req ConfirmationRequest) (Confirmation, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return Confirmation{}, err
	}
	defer s.sem.Release(1)

	if !sleepCtx(ctx, s.delay) {
		return Confirmation{}, ctx.Err()
	}
	if s.fail != nil {
		if err := s.fail(req); err != nil {
			return Confirmation{}, err
		}
	}

	ref := "BKG" + strings.ToUpper(uuid.NewString()[:8])
	return Confirmation{
		Status: "Payment successful",
		BookingDetails: []LabelValue{
			{Label: "Booking reference", Value: ref},
			{Label: "Booking date", Value: time.Now().Format("2006-01-02")},
			{Label: "Hotel", Value: req.HotelName},
			{Label: "Check-in date", Value: req.CheckInDate},
			{Label: "Check-out date", Value: req.CheckOutDate},
			{Label: "Total amount", Value: req.TotalFare},
		},
	}, nil
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
