package txnRepo

import (
	"context"
	"fmt"
	"time"

	"astromitra/database"
	"astromitra/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTransactionRepo implements TransactionRepository using MongoDB.
type MongoTransactionRepo struct {
	coll *mongo.Collection
}

// NewMongoTransactionRepo creates a new TransactionRepository backed by MongoDB.
func NewMongoTransactionRepo() TransactionRepository {
	repo := &MongoTransactionRepo{coll: database.Collection("transactions")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTransactionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			// One ledger entry per gateway payment reference.
			Keys: bson.D{{Key: "reference", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"reference": bson.M{"$type": "string"}}),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Append inserts a new ledger entry.
func (r *MongoTransactionRepo) Append(txn *models.Transaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if txn.ID == "" {
		txn.ID = uuid.New().String()
	}
	txn.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, txn); err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// ReferenceExists reports whether any ledger entry already carries the
// gateway payment reference.
func (r *MongoTransactionRepo) ReferenceExists(reference string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"reference": reference})
	if err != nil {
		return false, fmt.Errorf("failed to look up reference %s: %w", reference, err)
	}
	return count > 0, nil
}

// ListByUser lists a user's ledger entries, newest first.
func (r *MongoTransactionRepo) ListByUser(userID string) ([]models.Transaction, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transactions for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var txns []models.Transaction
	for cursor.Next(ctx) {
		var t models.Transaction
		if err := cursor.Decode(&t); err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}
