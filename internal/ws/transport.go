package ws

import (
	"context"
	"encoding/json"
	"time"

	"skills-audit/internal/notify"
)

type event struct {
	Type      string            `json:"type"`
	Kind      string            `json:"kind"`
	Recipient string            `json:"recipient"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Timestamp string            `json:"timestamp"`
}

// EventTransport implements notify.Transport by broadcasting each
// dispatched notification to connected admin dashboards.
type EventTransport struct {
	hub *Hub
}

func NewEventTransport(hub *Hub) *EventTransport {
	return &EventTransport{hub: hub}
}

func (t *EventTransport) Name() string { return "ws" }

func (t *EventTransport) Send(_ context.Context, msg notify.Message) error {
	b, err := json.Marshal(event{
		Type:      "notification",
		Kind:      string(msg.Kind),
		Recipient: msg.RecipientExternalID,
		Title:     msg.Title,
		Body:      msg.Body,
		Data:      msg.Data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	t.hub.Broadcast(b)
	return nil
}
