package slotRepo

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

// MongoSlotRepo implements SlotRepository using MongoDB.
type MongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo creates a new SlotRepository backed by MongoDB.
func NewMongoSlotRepo() SlotRepository {
	repo := &MongoSlotRepo{coll: database.Collection("slots")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSlotRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "astrologerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new slot definition.
func (r *MongoSlotRepo) Create(slot *models.Slot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of an existing slot. Unset fields of
// the previous type are cleared so exactly one definition shape remains.
func (r *MongoSlotRepo) Update(slot *models.Slot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	slot.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"type":       slot.Type,
		"date":       slot.Date,
		"startdate":  slot.StartDate,
		"enddate":    slot.EndDate,
		"repeatdays": slot.RepeatDays,
		"starttime":  slot.StartTime,
		"endtime":    slot.EndTime,
		"updatedAt":  slot.UpdatedAt,
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": slot.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update slot with id %s: %w", slot.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("slot with id %s not found", slot.ID)
	}
	return nil
}

// Delete removes a slot definition.
func (r *MongoSlotRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete slot with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("slot with id %s not found", id)
	}
	return nil
}

// ListByOwner lists a professional's slots, newest first.
func (r *MongoSlotRepo) ListByOwner(astrologerID string) ([]models.Slot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"astrologerId": astrologerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve slots for astrologer %s: %w", astrologerID, err)
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	for cursor.Next(ctx) {
		var s models.Slot
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, nil
}
