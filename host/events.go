package host

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event topics addons commonly subscribe to. Topic format is
// "entity.<entityType>.<change>".
const (
	TopicTaskStatusChanged = "entity.task.status_changed"
	TopicFolderCreated     = "entity.folder.created"
	TopicSettingsChanged   = "settings.changed"
)

// Event is the platform event envelope delivered over the event bus.
type Event struct {
	ID          string         `json:"id"`
	Topic       string         `json:"topic"`
	Project     string         `json:"project,omitempty"`
	User        string         `json:"user,omitempty"`
	Description string         `json:"description,omitempty"`
	Summary     map[string]any `json:"summary,omitempty"`
	Payload     map[string]any `json:"payload,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NewEvent creates an event with a fresh id and timestamp.
func NewEvent(topic, project, user, description string) Event {
	return Event{
		ID:          uuid.NewString(),
		Topic:       topic,
		Project:     project,
		User:        user,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// EventFromPayload decodes an event bus payload into an Event. Payloads
// arrive either as an Event value (in-process bus) or as a generic decoded
// JSON document (brokered bus), so decoding goes through JSON in the
// general case.
func EventFromPayload(payload any) (Event, error) {
	switch v := payload.(type) {
	case Event:
		return v, nil
	case *Event:
		return *v, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshalling event payload: %w", err)
	}
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("decoding event payload: %w", err)
	}
	if ev.Topic == "" {
		return Event{}, fmt.Errorf("event payload has no topic")
	}
	return ev, nil
}
