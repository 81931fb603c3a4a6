package booking

import (
	"context"

	"astromitra/models"
)

// BookingService is the booking half of the data access layer. Image
// uploads always precede the dependent document write: a failed upload
// aborts the operation before any document is touched.
type BookingService interface {
	// CreateBooking uploads the draft's image fields in parallel,
	// replaces them with durable URLs, then writes the booking with
	// status forced to waiting.
	CreateBooking(ctx context.Context, draft models.EventDraft) bool
	// FetchMyBookings queries by the caller's id in the role-appropriate
	// field and replaces the cached list wholesale.
	FetchMyBookings(ctx context.Context) bool
	// UpdateBooking re-uploads any image field that is not already a
	// durable URL, writes the patch, then refreshes the booking list.
	UpdateBooking(ctx context.Context, draft models.EventDraft) bool
	// SoftDeleteBooking marks the booking deleted and refreshes the list.
	SoftDeleteBooking(ctx context.Context, id string) bool
	// UpdateStatus patches the status field and refreshes the list.
	UpdateStatus(ctx context.Context, id, status string) bool
}
