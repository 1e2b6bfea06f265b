package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chirper/chirp-api/internal/core/domain"
	"github.com/chirper/chirp-api/internal/core/ports"
)

const collectionEvents = "chirp_events"

// EventRepository implements ports.EventRepository over the append-only
// chirp_events audit collection.
type EventRepository struct {
	col *mongo.Collection
}

func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{col: db.Collection(collectionEvents)}
}

type eventDoc struct {
	ChirpID   string `bson:"chirp_id"`
	ActorID   string `bson:"actor_id"`
	Action    string `bson:"action"`
	Message   string `bson:"message,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.ChirpEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, eventDoc{
		ChirpID:   event.ChirpID,
		ActorID:   event.ActorID,
		Action:    string(event.Action),
		Message:   event.Message,
		Timestamp: event.Timestamp.Unix(),
	})
	return err
}
