package user

import (
	"context"

	"astromitra/models"
)

// UserService is the account-facing half of the data access layer. Every
// operation catches its own failures, surfaces a notice, and reports
// success through its return value; nothing escapes to a caller as an
// error.
type UserService interface {
	// CreateAccount writes a new account document keyed by the
	// authenticated identity id into the collection selected by the
	// current user-type context.
	CreateAccount(ctx context.Context, id, phone, email, fullName string) bool
	// UserExists checks the type-specific collection by phone equality.
	// Absence is a reportable condition, not a silent empty result: login
	// requires pre-registration.
	UserExists(ctx context.Context, phone string) bool
	// FetchCurrentUser reads the identity's document and replaces the
	// profile in the cache.
	FetchCurrentUser(ctx context.Context, id string) bool
	// FetchAstrologers replaces the astrologer list in cache wholesale.
	FetchAstrologers(ctx context.Context) bool
	// FetchAstrologerDetail reads one professional document and its
	// reviews concurrently. Returns nil if the professional no longer
	// exists.
	FetchAstrologerDetail(ctx context.Context, id string) *models.AstrologerDetail
	// UpdateProfile conditionally uploads the profile image when it is a
	// local URI, writes the patch, then re-fetches the current user.
	UpdateProfile(ctx context.Context, id string, fields map[string]any) bool
	// FetchUserPhoneNumber hydrates the contact field of the in-progress
	// event draft from a requester document.
	FetchUserPhoneNumber(ctx context.Context, requesterID string) (string, bool)
	// RegisterPushToken stores the device push token on the account
	// document and in the app slice.
	RegisterPushToken(ctx context.Context, id, token string) bool
}
