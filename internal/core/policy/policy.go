// Package policy holds the authorization rules for chirp mutations.
// Rules are plain predicates so they can be tested without any HTTP or
// storage wiring.
package policy

import "github.com/chirper/chirp-api/internal/core/domain"

// CanModify reports whether actorID may update or delete the given chirp.
// Only the owner may; ownership never transfers, so this is a pure equality
// check. There is no read authorization: listing is public.
func CanModify(actorID string, chirp *domain.Chirp) bool {
	return actorID != "" && actorID == chirp.OwnerID
}
