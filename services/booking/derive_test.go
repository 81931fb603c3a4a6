package booking

import (
	"testing"
	"time"

	"astromitra/models"
)

func TestDisplayStatusDerivesCompleted(t *testing.T) {
	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.Local)

	b := models.Booking{
		Status:  models.BookingStatusApproved,
		Date:    "2026-04-01",
		EndTime: "10:00 AM",
	}
	if got := DisplayStatus(b, now); got != models.BookingStatusCompleted {
		t.Fatalf("past approved booking = %q, want completed", got)
	}

	b.Date = "2026-04-03"
	if got := DisplayStatus(b, now); got != models.BookingStatusApproved {
		t.Fatalf("future approved booking = %q, want approved", got)
	}
}

func TestDisplayStatusNeverDerivesForUndecided(t *testing.T) {
	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.Local)
	past := models.Booking{Date: "2026-04-01", EndTime: "10:00 AM"}

	for _, status := range []string{
		models.BookingStatusWaiting,
		models.BookingStatusRejected,
		models.BookingStatusDeleted,
	} {
		past.Status = status
		if got := DisplayStatus(past, now); got != status {
			t.Fatalf("status %q rendered as %q", status, got)
		}
	}
}

func TestDisplayStatusUnparseableSlotFallsBack(t *testing.T) {
	b := models.Booking{
		Status:  models.BookingStatusApproved,
		Date:    "yesterday",
		EndTime: "10:00 AM",
	}
	if got := DisplayStatus(b, time.Now()); got != models.BookingStatusApproved {
		t.Fatalf("unparseable slot = %q, want stored status", got)
	}
}

func TestDisplayStatusExactEndIsNotCompleted(t *testing.T) {
	end := time.Date(2026, 4, 1, 10, 0, 0, 0, time.Local)
	b := models.Booking{
		Status:  models.BookingStatusApproved,
		Date:    "2026-04-01",
		EndTime: "10:00 AM",
	}
	if got := DisplayStatus(b, end); got != models.BookingStatusApproved {
		t.Fatalf("booking at its exact end = %q, want approved", got)
	}
}
