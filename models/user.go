// models/user.go
package models

import "time"

// UserType distinguishes the two account variants. It is a client-state
// flag, not a stored document field: requesters and professionals live in
// separate collections.
type UserType string

const (
	UserTypeRequester    UserType = "user"
	UserTypeProfessional UserType = "astrologer"
)

// User represents a requester account. Documents are keyed by the identity
// id issued at first successful OTP verification.
type User struct {
	ID           string    `bson:"id" json:"id"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"fullName" json:"fullName"`
	BirthDate    string    `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	BirthTime    string    `bson:"birthTime,omitempty" json:"birthTime,omitempty"`
	BirthPlace   string    `bson:"birthPlace,omitempty" json:"birthPlace,omitempty"`
	Wallet       float64   `bson:"wallet" json:"wallet"`
	ProfileImage string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	PushToken    string    `bson:"pushToken,omitempty" json:"pushToken,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Astrologer represents a professional account in the astrologers collection.
type Astrologer struct {
	ID           string    `bson:"id" json:"id"`
	PhoneNumber  string    `bson:"phoneNumber" json:"phoneNumber"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"fullName" json:"fullName"`
	Rate         float64   `bson:"rate" json:"rate"` // price per minute
	Experience   int       `bson:"experience" json:"experience"`
	Bio          string    `bson:"bio,omitempty" json:"bio,omitempty"`
	Rating       float64   `bson:"rating" json:"rating"` // 0-5
	ConsultCount int       `bson:"consultCount" json:"consultCount"`
	Languages    []string  `bson:"languages,omitempty" json:"languages,omitempty"`
	Specialities []string  `bson:"specialities,omitempty" json:"specialities,omitempty"`
	ProfileImage string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	PushToken    string    `bson:"pushToken,omitempty" json:"pushToken,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Review is one entry of an astrologer's reviews subcollection.
type Review struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	UserName  string    `bson:"userName" json:"userName"`
	Rating    float64   `bson:"rating" json:"rating"`
	Text      string    `bson:"text,omitempty" json:"text,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// AstrologerDetail bundles a professional profile with its reviews, the
// shape returned by the combined detail fetch.
type AstrologerDetail struct {
	Astrologer Astrologer `json:"astrologer"`
	Reviews    []Review   `json:"reviews"`
}
