package models

import "time"

// Transaction directions.
const (
	TransactionCredit = "credit" // wallet top-up
	TransactionDebit  = "debit"  // consultation charge
)

// Transaction is an immutable wallet ledger entry. Entries are only ever
// appended, never mutated or deleted.
type Transaction struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"userId" json:"userId"`
	Amount         float64   `bson:"amount" json:"amount"`
	Type           string    `bson:"transactiontype" json:"transactiontype"`
	Reference      string    `bson:"reference,omitempty" json:"reference,omitempty"` // gateway payment id, credits only
	AstrologerName string    `bson:"astrologerName,omitempty" json:"astrologerName,omitempty"` // debit counterpart
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
