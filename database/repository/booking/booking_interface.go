package bookingRepo

import (
	"astromitra/models"
)

// BookingRepository defines data access for consultation bookings.
// Bookings are soft-deleted only: no operation removes a document.
type BookingRepository interface {
	// Create inserts a new booking. Status is forced to waiting and
	// createdAt is assigned server-side regardless of the input values.
	Create(booking *models.Booking) error
	// ListByUser lists a requester's bookings, newest first.
	ListByUser(userID string) ([]models.Booking, error)
	// ListByAstrologer lists a professional's bookings, newest first.
	ListByAstrologer(astrologerID string) ([]models.Booking, error)
	// UpdateFields applies a partial $set patch to a booking document.
	UpdateFields(id string, fields map[string]any) error
	// UpdateStatus patches only the status field.
	UpdateStatus(id, status string) error
	// SoftDelete sets status to deleted.
	SoftDelete(id string) error
}
