package event

import "github.com/google/uuid"

type MediaEventType string

const (
	MediaEventTypeCreated MediaEventType = "media.created"
	MediaEventTypeUpdated MediaEventType = "media.updated"
	MediaEventTypeDeleted MediaEventType = "media.deleted"
)

type MediaEventPayload struct {
	EventType MediaEventType `json:"event_type"`
	MediaID   uuid.UUID      `json:"media_id"`
	Title     string         `json:"title,omitempty"`
}

type RatingEventType string

const (
	RatingEventTypeRated RatingEventType = "rating.rated"
)

type RatingEventPayload struct {
	EventType RatingEventType `json:"event_type"`
	RatingID  uuid.UUID       `json:"rating_id"`
	UserID    uuid.UUID       `json:"user_id"`
	MediaID   uuid.UUID       `json:"media_id"`
	Value     int             `json:"value"`
}
