package bookingRepo

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

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "astrologerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking with status waiting and a server-assigned
// creation timestamp.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Status = models.BookingStatusWaiting
	booking.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) listByField(field, value string) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{field: value}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings by %s: %w", field, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// ListByUser lists a requester's bookings, newest first.
func (r *MongoBookingRepo) ListByUser(userID string) ([]models.Booking, error) {
	return r.listByField("userId", userID)
}

// ListByAstrologer lists a professional's bookings, newest first.
func (r *MongoBookingRepo) ListByAstrologer(astrologerID string) ([]models.Booking, error) {
	return r.listByField("astrologerId", astrologerID)
}

// UpdateFields applies a partial update to a booking document.
func (r *MongoBookingRepo) UpdateFields(id string, fields map[string]any) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// UpdateStatus patches only the status field.
func (r *MongoBookingRepo) UpdateStatus(id, status string) error {
	return r.UpdateFields(id, map[string]any{"status": status})
}

// SoftDelete marks a booking deleted without removing the document.
func (r *MongoBookingRepo) SoftDelete(id string) error {
	return r.UpdateStatus(id, models.BookingStatusDeleted)
}
