package notification

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"astromitra/config"
	"astromitra/utils"

	"go.uber.org/zap"
)

// PushService sends booking pushes through the relay endpoint. Delivery
// is fire-and-forget: the response is not awaited for correctness.
type PushService interface {
	NotifyBooking(token, title, body, bookingID, kind string)
}

// pushPayload is the relay wire format.
type pushPayload struct {
	To    string   `json:"to"`
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Data  pushData `json:"data"`
}

type pushData struct {
	BookingID string `json:"bookingid"`
	Type      string `json:"type"`
}

// RelayPushService is the production implementation posting to the
// configured push relay URL.
type RelayPushService struct {
	client *http.Client
	url    string
}

// NewRelayPushService creates a PushService against the configured relay.
func NewRelayPushService() *RelayPushService {
	return &RelayPushService{
		client: &http.Client{Timeout: 10 * time.Second},
		url:    config.AppConfig.PushRelayURL,
	}
}

// NotifyBooking posts the push in the background. A missing token is a
// no-op: not every device has registered one.
func (s *RelayPushService) NotifyBooking(token, title, body, bookingID, kind string) {
	if token == "" {
		return
	}
	payload := pushPayload{
		To:    token,
		Title: title,
		Body:  body,
		Data:  pushData{BookingID: bookingID, Type: kind},
	}

	go func() {
		logger := utils.GetLogger()
		data, err := json.Marshal(payload)
		if err != nil {
			logger.Warn("failed to encode push payload", zap.Error(err))
			return
		}
		resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(data))
		if err != nil {
			logger.Warn("push relay request failed", zap.String("bookingId", bookingID), zap.Error(err))
			return
		}
		resp.Body.Close()
	}()
}
