package models

import "time"

// Routing keys of catalog change events.
const (
	ToyCreated = "toy.created"
	ToyUpdated = "toy.updated"
	ToyDeleted = "toy.deleted"
)

// ToyEvent is published after a mutation reached the store.
type ToyEvent struct {
	Type       string    `json:"type"`
	ToyID      ToyID     `json:"toyId"`
	Email      string    `json:"email,omitempty"` // owner, known on create only
	Count      int64     `json:"count"`           // inserted, modified or deleted records
	OccurredAt time.Time `json:"occurredAt"`
}
