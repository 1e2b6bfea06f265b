package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chirper/chirp-api/internal/core/domain"
	"github.com/chirper/chirp-api/internal/core/ports"
)

type auditService struct {
	eventRepo ports.EventRepository
	log       zerolog.Logger
}

// NewAuditService returns an AuditService that appends chirp lifecycle events
// to the audit trail.
func NewAuditService(eventRepo ports.EventRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{eventRepo: eventRepo, log: log}
}

// Record persists a single audit event. Callers run this off the request path;
// the chirp mutation has already committed by the time Record runs.
func (s *auditService) Record(ctx context.Context, event domain.ChirpEvent) error {
	if err := s.eventRepo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("chirp_id", event.ChirpID).
		Str("actor_id", event.ActorID).
		Str("action", string(event.Action)).
		Msg("audit event recorded")

	return nil
}
