package astroRepo

import (
	"astromitra/models"
)

// AstrologerRepository defines data access for professional accounts and
// their reviews subcollection.
type AstrologerRepository interface {
	// GetByID retrieves an astrologer by its identity id. Returns
	// (nil, nil) when no document matches.
	GetByID(id string) (*models.Astrologer, error)
	// GetByPhone retrieves an astrologer by phone number.
	GetByPhone(phone string) (*models.Astrologer, error)
	// GetAll retrieves every astrologer document.
	GetAll() ([]models.Astrologer, error)
	// Create inserts a new astrologer document keyed by the identity id.
	Create(astrologer *models.Astrologer) error
	// UpdateFields applies a partial $set patch.
	UpdateFields(id string, fields map[string]any) error
	// GetReviews lists the reviews subcollection for one astrologer,
	// newest first.
	GetReviews(astrologerID string) ([]models.Review, error)
}
