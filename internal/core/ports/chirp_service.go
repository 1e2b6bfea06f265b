package ports

import (
	"context"

	"github.com/chirper/chirp-api/internal/core/domain"
)

// CreateChirpInput carries the data needed to create a chirp. ActorID is the
// authenticated user performing the request, always passed explicitly.
type CreateChirpInput struct {
	ActorID string
	Message string
}

// UpdateChirpInput carries the data needed to edit an existing chirp.
type UpdateChirpInput struct {
	ActorID string
	ChirpID string
	Message string
}

// ChirpService defines the use-case operations for chirps.
type ChirpService interface {
	// List returns all chirps newest first. Public; no acting user required.
	List(ctx context.Context) ([]*domain.Chirp, error)
	// Create validates the message, enforces the per-user cap, and persists
	// a new chirp owned by the actor.
	Create(ctx context.Context, input CreateChirpInput) (*domain.Chirp, error)
	// GetForEdit returns the chirp's current state so the owner can edit it.
	// Non-owners are rejected with domain.ErrForbidden, symmetric with Update.
	GetForEdit(ctx context.Context, actorID, chirpID string) (*domain.Chirp, error)
	// Update replaces the message of a chirp the actor owns.
	Update(ctx context.Context, input UpdateChirpInput) (*domain.Chirp, error)
	// Destroy hard-deletes a chirp the actor owns.
	Destroy(ctx context.Context, actorID, chirpID string) error
}
