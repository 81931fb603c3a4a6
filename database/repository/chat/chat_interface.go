package chatRepo

import (
	"context"

	"astromitra/models"
)

// ChatRepository defines data access for conversation messages.
type ChatRepository interface {
	// Append inserts a new message with a server-assigned timestamp.
	Append(msg *models.ChatMessage) error
	// ListByConversation lists a conversation's messages oldest first.
	ListByConversation(conversationID string) ([]models.ChatMessage, error)
	// Watch streams messages appended to a conversation after the call.
	// The stream stops and the channel closes when ctx is cancelled.
	Watch(ctx context.Context, conversationID string) (<-chan models.ChatMessage, error)
}
