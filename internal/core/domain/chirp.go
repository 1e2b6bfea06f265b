package domain

import (
	"errors"
	"fmt"
	"time"
)

// MaxChirpsPerUser is the hard cap on live chirps per owner, enforced at
// creation time only.
const MaxChirpsPerUser = 10

// MaxMessageLength is the maximum chirp message length, counted in runes.
const MaxMessageLength = 255

// QuotaExceededMessage is the exact user-facing message returned when the
// per-user cap is hit.
const QuotaExceededMessage = "Vous avez atteint le nombre maximum de chirps (10)."

var ErrChirpNotFound = errors.New("chirp not found")
var ErrForbidden = errors.New("access forbidden")
var ErrQuotaExceeded = errors.New("chirp quota exceeded")

// ValidationError reports a user-correctable problem with a single input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// Chirp is a single short text post owned by exactly one user. The owner is
// set at creation and never changes.
type Chirp struct {
	ID        string    `json:"id" bson:"_id"`
	OwnerID   string    `json:"owner_id" bson:"owner_id"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
