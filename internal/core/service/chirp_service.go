package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chirper/chirp-api/internal/core/domain"
	"github.com/chirper/chirp-api/internal/core/policy"
	"github.com/chirper/chirp-api/internal/core/ports"
)

// AuditDispatcher is the interface the service uses to enqueue audit events.
// Enqueueing is fire-and-forget; delivery happens on background workers.
type AuditDispatcher interface {
	Enqueue(event domain.ChirpEvent)
}

type ChirpService struct {
	repo   ports.ChirpRepository
	tx     ports.Transactor
	audit  AuditDispatcher
	logger zerolog.Logger
}

func NewChirpService(repo ports.ChirpRepository, tx ports.Transactor, audit AuditDispatcher, logger zerolog.Logger) *ChirpService {
	return &ChirpService{repo: repo, tx: tx, audit: audit, logger: logger}
}

// List returns all chirps ordered newest first. No authentication required.
func (s *ChirpService) List(ctx context.Context) ([]*domain.Chirp, error) {
	chirps, err := s.repo.ListAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list chirps")
		return nil, err
	}
	return chirps, nil
}

// Create validates the message, enforces the per-user cap, and persists a new
// chirp. The quota check and the insert run inside a single transaction so two
// concurrent creations cannot both observe count=9 and exceed the cap.
func (s *ChirpService) Create(ctx context.Context, input ports.CreateChirpInput) (*domain.Chirp, error) {
	if err := validateMessage(input.Message); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	chirp := &domain.Chirp{
		ID:        uuid.NewString(),
		OwnerID:   input.ActorID,
		Message:   input.Message,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		count, err := s.repo.CountByOwner(ctx, input.ActorID)
		if err != nil {
			return err
		}
		if count >= domain.MaxChirpsPerUser {
			return domain.ErrQuotaExceeded
		}
		return s.repo.Insert(ctx, chirp)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrQuotaExceeded) {
			s.logger.Error().Err(err).Str("owner_id", input.ActorID).Msg("failed to create chirp")
		}
		return nil, err
	}

	s.audit.Enqueue(domain.ChirpEvent{
		ChirpID:   chirp.ID,
		ActorID:   input.ActorID,
		Action:    domain.EventCreated,
		Message:   chirp.Message,
		Timestamp: now,
	})

	s.logger.Info().Str("chirp_id", chirp.ID).Str("owner_id", input.ActorID).Msg("chirp created")
	return chirp, nil
}

// GetForEdit returns the chirp's current state for its owner. Ownership is
// enforced here, symmetric with Update and Destroy.
func (s *ChirpService) GetForEdit(ctx context.Context, actorID, chirpID string) (*domain.Chirp, error) {
	chirp, err := s.repo.FindByID(ctx, chirpID)
	if err != nil {
		return nil, err
	}
	if !policy.CanModify(actorID, chirp) {
		return nil, domain.ErrForbidden
	}
	return chirp, nil
}

// Update replaces the message of a chirp the actor owns. Ordering matters:
// not-found beats forbidden beats validation, and the whole
// fetch-authorize-persist sequence is one transaction.
func (s *ChirpService) Update(ctx context.Context, input ports.UpdateChirpInput) (*domain.Chirp, error) {
	var updated *domain.Chirp

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		chirp, err := s.repo.FindByID(ctx, input.ChirpID)
		if err != nil {
			return err
		}
		if !policy.CanModify(input.ActorID, chirp) {
			return domain.ErrForbidden
		}
		if err := validateMessage(input.Message); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, input.ChirpID, input.Message); err != nil {
			return err
		}
		chirp.Message = input.Message
		chirp.UpdatedAt = time.Now().UTC()
		updated = chirp
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.ChirpEvent{
		ChirpID:   updated.ID,
		ActorID:   input.ActorID,
		Action:    domain.EventUpdated,
		Message:   updated.Message,
		Timestamp: updated.UpdatedAt,
	})

	s.logger.Info().Str("chirp_id", updated.ID).Str("owner_id", input.ActorID).Msg("chirp updated")
	return updated, nil
}

// Destroy hard-deletes a chirp the actor owns.
func (s *ChirpService) Destroy(ctx context.Context, actorID, chirpID string) error {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		chirp, err := s.repo.FindByID(ctx, chirpID)
		if err != nil {
			return err
		}
		if !policy.CanModify(actorID, chirp) {
			return domain.ErrForbidden
		}
		return s.repo.Delete(ctx, chirpID)
	})
	if err != nil {
		return err
	}

	s.audit.Enqueue(domain.ChirpEvent{
		ChirpID:   chirpID,
		ActorID:   actorID,
		Action:    domain.EventDeleted,
		Timestamp: time.Now().UTC(),
	})

	s.logger.Info().Str("chirp_id", chirpID).Str("owner_id", actorID).Msg("chirp deleted")
	return nil
}

// validateMessage applies the message rules: required (absent or empty string
// rejected) and at most 255 characters. "required" does not trim, so
// whitespace-only messages pass, matching the documented contract. Length is
// counted in runes, not bytes.
func validateMessage(message string) error {
	if message == "" {
		return &domain.ValidationError{Field: "message", Reason: "le message est obligatoire"}
	}
	if utf8.RuneCountInString(message) > domain.MaxMessageLength {
		return &domain.ValidationError{Field: "message", Reason: "le message ne peut pas dépasser 255 caractères"}
	}
	return nil
}
