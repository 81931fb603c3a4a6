package models

import "time"

// Message kinds. Only text is produced today; the field exists so media
// kinds can be added without a schema change.
const (
	MessageKindText = "text"
)

// ChatMessage is one entry of a two-party conversation, ordered within a
// canonical conversation key shared by both participants.
type ChatMessage struct {
	ID             string    `bson:"id" json:"id"`
	ConversationID string    `bson:"conversationId" json:"conversationId"`
	SenderID       string    `bson:"senderId" json:"senderId"`
	ReceiverID     string    `bson:"receiverId" json:"receiverId"`
	Text           string    `bson:"text" json:"text"`
	Kind           string    `bson:"kind" json:"kind"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}
