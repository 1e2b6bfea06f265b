package ports

import (
	"context"

	"github.com/chirper/chirp-api/internal/core/domain"
)

// ChirpRepository defines persistence operations for chirps. Every query is a
// named operation with explicit parameters; there is no generic query builder.
type ChirpRepository interface {
	// ListAll returns every chirp ordered by creation time descending.
	// The result is fully materialized; there is no pagination.
	ListAll(ctx context.Context) ([]*domain.Chirp, error)
	// CountByOwner returns the number of chirps currently owned by ownerID.
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	// Insert persists a new chirp. ID and timestamps are set by the caller.
	Insert(ctx context.Context, chirp *domain.Chirp) error
	// FindByID returns the chirp or domain.ErrChirpNotFound.
	FindByID(ctx context.Context, id string) (*domain.Chirp, error)
	// Update replaces the message and refreshes updated_at. Returns
	// domain.ErrChirpNotFound when no chirp has the given id.
	Update(ctx context.Context, id, message string) error
	// Delete removes the chirp row. Returns domain.ErrChirpNotFound when
	// no chirp has the given id.
	Delete(ctx context.Context, id string) error
}

// Transactor runs fn as a single unit of work against the store. The chirp
// service uses it to make its check-then-act sequences (quota check before
// insert, ownership check before update/delete) atomic.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
