package chat

import (
	"context"
	"strings"

	chatRepo "astromitra/database/repository/chat"
	"astromitra/models"
	"astromitra/services/notification"
	"astromitra/state"
	"astromitra/utils"

	"go.uber.org/zap"
)

// ConversationKey canonicalizes a participant pair into one conversation
// id: the two ids are sorted before concatenation, so both sides resolve
// to the same key regardless of who is sender.
func ConversationKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "_" + b
}

// ChatService owns conversation reads, writes, and the live
// subscription. The subscription is the only long-lived resource in the
// data access layer and must be torn down when the owning screen loses
// focus.
type ChatService interface {
	// SendMessage appends a message to the canonical conversation.
	SendMessage(ctx context.Context, senderID, receiverID, text string) bool
	// FetchMessages replaces the cached message list for the
	// conversation, oldest first.
	FetchMessages(ctx context.Context, a, b string) bool
	// Subscribe streams new conversation messages into the cache until
	// the returned teardown runs. Teardown also resets the chat slice.
	Subscribe(ctx context.Context, a, b string) (func(), bool)
}

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	Messages chatRepo.ChatRepository
	State    *state.Store
	Notifier notification.Notifier
}

func (s *DefaultChatService) fail(op string, err error) bool {
	utils.GetLogger().Error(op, zap.Error(err))
	s.Notifier.Notice(utils.GenericFailureNotice)
	return false
}

// SendMessage appends to the conversation derived from the pair.
func (s *DefaultChatService) SendMessage(ctx context.Context, senderID, receiverID, text string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		msg := &models.ChatMessage{
			ConversationID: ConversationKey(senderID, receiverID),
			SenderID:       senderID,
			ReceiverID:     receiverID,
			Text:           text,
			Kind:           models.MessageKindText,
		}
		if err := s.Messages.Append(msg); err != nil {
			s.fail("SendMessage", &utils.PersistenceError{Op: "append message", Err: err})
			return nil
		}
		ok = true
		return nil
	})
	return ok
}

// FetchMessages replaces the cached message list wholesale.
func (s *DefaultChatService) FetchMessages(ctx context.Context, a, b string) bool {
	ok := false
	_ = s.State.Busy(func() error {
		list, err := s.Messages.ListByConversation(ConversationKey(a, b))
		if err != nil {
			s.fail("FetchMessages", err)
			return nil
		}
		s.State.SetMessages(list)
		ok = true
		return nil
	})
	return ok
}

// Subscribe starts the live stream and returns its teardown. The
// teardown cancels the stream and resets the chat slice, matching the
// screen-blur contract.
func (s *DefaultChatService) Subscribe(ctx context.Context, a, b string) (func(), bool) {
	streamCtx, cancel := context.WithCancel(ctx)

	// Only the stream handshake runs under the loading flag; the stream
	// itself outlives the call.
	var stream <-chan models.ChatMessage
	_ = s.State.Busy(func() error {
		var err error
		stream, err = s.Messages.Watch(streamCtx, ConversationKey(a, b))
		if err != nil {
			s.fail("Subscribe", err)
		}
		return nil
	})
	if stream == nil {
		cancel()
		return nil, false
	}

	go func() {
		for msg := range stream {
			s.State.AppendMessage(msg)
		}
	}()

	teardown := func() {
		cancel()
		s.State.ResetMessages()
	}
	return teardown, true
}
