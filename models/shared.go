package models

// Language is a reference-list entry for the languages an astrologer can
// consult in.
type Language struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Speciality is a reference-list entry (vedic, tarot, numerology, ...).
type Speciality struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// TopUpRequest is the payload for a wallet top-up through the payment
// gateway. Amount is in rupees; the gateway is invoked in minor units.
type TopUpRequest struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
	Email  string  `json:"email,omitempty"`
	Phone  string  `json:"phone,omitempty"`
}
