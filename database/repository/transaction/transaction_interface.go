package txnRepo

import (
	"astromitra/models"
)

// TransactionRepository is the append-only wallet ledger. Entries are
// never mutated or deleted.
type TransactionRepository interface {
	// Append inserts a new ledger entry with a server-assigned timestamp.
	Append(txn *models.Transaction) error
	// ListByUser lists a user's ledger entries, newest first.
	ListByUser(userID string) ([]models.Transaction, error)
	// ReferenceExists reports whether a ledger entry already consumed the
	// gateway payment reference.
	ReferenceExists(reference string) (bool, error)
}
