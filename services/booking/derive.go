package booking

import (
	"time"

	"astromitra/models"
	"astromitra/utils"
)

// DisplayStatus derives the label shown for a booking. Completed is never
// stored: an approved (or status-less) booking whose slot has already
// ended renders as completed. All other statuses render as stored.
func DisplayStatus(b models.Booking, now time.Time) string {
	switch b.Status {
	case models.BookingStatusWaiting, models.BookingStatusRejected, models.BookingStatusDeleted:
		return b.Status
	}

	end, err := utils.SlotEnd(b.Date, b.EndTime)
	if err != nil {
		return b.Status
	}
	if now.After(end) {
		return models.BookingStatusCompleted
	}
	return b.Status
}
