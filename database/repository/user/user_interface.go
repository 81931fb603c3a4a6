package userRepo

import (
	"astromitra/models"
)

// UserRepository defines data access for requester accounts.
type UserRepository interface {
	// GetByID retrieves a user by its identity id.
	GetByID(id string) (*models.User, error)
	// GetByPhone retrieves a user by phone number. Returns (nil, nil) when
	// no document matches.
	GetByPhone(phone string) (*models.User, error)
	// Create inserts a new user document keyed by the identity id.
	Create(user *models.User) error
	// UpdateFields applies a partial $set patch to a user document.
	UpdateFields(id string, fields map[string]any) error
	// AdjustWallet atomically increments the wallet balance by delta
	// (negative for a debit).
	AdjustWallet(id string, delta float64) error
}
