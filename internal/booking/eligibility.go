package booking

import (
	"strings"

	"github.com/nekogravitycat/pethaven-backend/internal/host"
	"github.com/nekogravitycat/pethaven-backend/internal/pet"
)

// CheckEligibility decides whether requesterID may book p with profile.
// A nil pet or profile means the lookup found nothing.
func CheckEligibility(p *pet.Pet, profile *host.Profile, requesterID string) error {
	if p == nil || p.OwnerID != requesterID {
		return ErrPetNotOwned
	}
	if profile == nil {
		return ErrHostNotFound
	}
	if !profile.IsAvailable {
		return ErrHostUnavailable
	}
	if !profile.Accepts(string(p.Type)) {
		return ErrPetTypeRejected.WithDetail("host does not accept pets of type " + strings.ToLower(string(p.Type)))
	}
	return nil
}
