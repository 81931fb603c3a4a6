package chatRepo

import (
	"context"
	"fmt"
	"time"

	"astromitra/database"
	"astromitra/models"
	"astromitra/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoChatRepo implements ChatRepository using MongoDB. Live delivery
// uses a change stream filtered to one conversation key.
type MongoChatRepo struct {
	coll *mongo.Collection
}

// NewMongoChatRepo creates a new ChatRepository backed by MongoDB.
func NewMongoChatRepo() ChatRepository {
	repo := &MongoChatRepo{coll: database.Collection("chats")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoChatRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "conversationId", Value: 1}, {Key: "createdAt", Value: 1}},
	}
	if _, err := r.coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Append inserts a new message.
func (r *MongoChatRepo) Append(msg *models.ChatMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Kind == "" {
		msg.Kind = models.MessageKindText
	}
	msg.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

// ListByConversation lists a conversation's messages oldest first.
func (r *MongoChatRepo) ListByConversation(conversationID string) ([]models.ChatMessage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"conversationId": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve messages for conversation %s: %w", conversationID, err)
	}
	defer cursor.Close(ctx)

	var messages []models.ChatMessage
	for cursor.Next(ctx) {
		var m models.ChatMessage
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// Watch opens a change stream on the conversation and forwards inserted
// messages until ctx is cancelled.
func (r *MongoChatRepo) Watch(ctx context.Context, conversationID string) (<-chan models.ChatMessage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"operationType":               "insert",
			"fullDocument.conversationId": conversationID,
		}}},
	}
	stream, err := r.coll.Watch(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to watch conversation %s: %w", conversationID, err)
	}

	out := make(chan models.ChatMessage)
	go func() {
		logger := utils.GetLogger()
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var event struct {
				FullDocument models.ChatMessage `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				logger.Warn("failed to decode chat stream event", zap.Error(err))
				continue
			}
			select {
			case out <- event.FullDocument:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
