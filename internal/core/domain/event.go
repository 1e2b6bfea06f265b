package domain

import "time"

// ChirpEventAction enumerates the lifecycle actions recorded in the audit trail.
type ChirpEventAction string

const (
	EventCreated ChirpEventAction = "created"
	EventUpdated ChirpEventAction = "updated"
	EventDeleted ChirpEventAction = "deleted"
)

// ChirpEvent is an append-only audit record for a single chirp mutation.
type ChirpEvent struct {
	ChirpID   string
	ActorID   string
	Action    ChirpEventAction
	Message   string // message content after the action; empty for deletes
	Timestamp time.Time
}
