package astroRepo

import (
	"context"
	"fmt"
	"time"

	"astromitra/database"
	"astromitra/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAstrologerRepo implements AstrologerRepository using MongoDB. The
// reviews subcollection is modelled as a sibling collection keyed by
// astrologerId.
type MongoAstrologerRepo struct {
	coll    *mongo.Collection
	reviews *mongo.Collection
}

// NewMongoAstrologerRepo creates a new AstrologerRepository backed by MongoDB.
func NewMongoAstrologerRepo() AstrologerRepository {
	repo := &MongoAstrologerRepo{
		coll:    database.Collection("astrologers"),
		reviews: database.Collection("reviews"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAstrologerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	reviewIndex := mongo.IndexModel{Keys: bson.D{{Key: "astrologerId", Value: 1}, {Key: "createdAt", Value: -1}}}
	if _, err := r.reviews.Indexes().CreateOne(ctx, reviewIndex); err != nil {
		return fmt.Errorf("failed to create review index: %w", err)
	}
	return nil
}

// Create inserts a new astrologer document.
func (r *MongoAstrologerRepo) Create(astrologer *models.Astrologer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	astrologer.CreatedAt = now
	astrologer.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, astrologer); err != nil {
		return fmt.Errorf("failed to create astrologer: %w", err)
	}
	return nil
}

// GetByID retrieves an astrologer by its identity id.
func (r *MongoAstrologerRepo) GetByID(id string) (*models.Astrologer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Astrologer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch astrologer with id %s: %w", id, err)
	}
	return &a, nil
}

// GetByPhone retrieves an astrologer by phone number.
func (r *MongoAstrologerRepo) GetByPhone(phone string) (*models.Astrologer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var a models.Astrologer
	if err := r.coll.FindOne(ctx, bson.M{"phoneNumber": phone}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch astrologer with phone %s: %w", phone, err)
	}
	return &a, nil
}

// GetAll retrieves all astrologer documents.
func (r *MongoAstrologerRepo) GetAll() ([]models.Astrologer, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve astrologers: %w", err)
	}
	defer cursor.Close(ctx)

	var astrologers []models.Astrologer
	for cursor.Next(ctx) {
		var a models.Astrologer
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode astrologer: %w", err)
		}
		astrologers = append(astrologers, a)
	}
	return astrologers, nil
}

// UpdateFields applies a partial update to an astrologer document.
func (r *MongoAstrologerRepo) UpdateFields(id string, fields map[string]any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update astrologer with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("astrologer with id %s not found", id)
	}
	return nil
}

// GetReviews lists an astrologer's reviews, newest first.
func (r *MongoAstrologerRepo) GetReviews(astrologerID string) ([]models.Review, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.reviews.Find(ctx, bson.M{"astrologerId": astrologerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews for astrologer %s: %w", astrologerID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	for cursor.Next(ctx) {
		var rv models.Review
		if err := cursor.Decode(&rv); err != nil {
			return nil, fmt.Errorf("failed to decode review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, nil
}
