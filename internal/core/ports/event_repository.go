package ports

import (
	"context"

	"github.com/chirper/chirp-api/internal/core/domain"
)

// EventRepository persists chirp lifecycle events to the audit trail.
type EventRepository interface {
	InsertEvent(ctx context.Context, event *domain.ChirpEvent) error
}

// AuditService records a single chirp lifecycle event. Implementations must
// never let audit failures affect the originating request.
type AuditService interface {
	Record(ctx context.Context, event domain.ChirpEvent) error
}
