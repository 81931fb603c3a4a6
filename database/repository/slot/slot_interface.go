package slotRepo

import (
	"astromitra/models"
)

// SlotRepository defines data access for availability slots. Overlapping
// slots are not rejected here; the list is displayed newest first.
type SlotRepository interface {
	// Create inserts a new slot definition.
	Create(slot *models.Slot) error
	// Update replaces the mutable fields of an existing slot.
	Update(slot *models.Slot) error
	// Delete removes a slot definition.
	Delete(id string) error
	// ListByOwner lists a professional's slots, newest first.
	ListByOwner(astrologerID string) ([]models.Slot, error)
}
