package service

import (
	"context"
	"fmt"
	"strings"

	"smcbi/internal/repository"
	"smcbi/internal/utils"
)

// TwoSourceResolver looks up the primary profile store first and falls
// back to the identity provider's listing. A store or provider outage
// surfaces as ErrDependencyUnavailable so callers can tell it apart from
// a genuine miss.
type TwoSourceResolver struct {
	Profiles repository.UserProfileRepository
	Identity IdentityProvider
}

func NewTwoSourceResolver(profiles repository.UserProfileRepository, identity IdentityProvider) *TwoSourceResolver {
	return &TwoSourceResolver{Profiles: profiles, Identity: identity}
}

func (r *TwoSourceResolver) Resolve(ctx context.Context, email string) (*ResolvedUser, error) {
	normalized := utils.NormalizeEmail(email)

	profile, err := r.Profiles.FindByEmail(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: profile lookup failed", ErrDependencyUnavailable)
	}
	if profile != nil {
		profileID := profile.ID
		return &ResolvedUser{
			IdentityID: profile.IdentityID,
			ProfileID:  &profileID,
			Email:      profile.Email,
			FirstName:  profile.FirstName,
			LastName:   profile.LastName,
			Source:     ResolvedFromProfile,
		}, nil
	}

	identities, err := r.Identity.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: identity listing failed", ErrDependencyUnavailable)
	}
	for _, identity := range identities {
		if !strings.EqualFold(identity.Email, normalized) {
			continue
		}
		firstName := identity.Metadata.FirstName
		if firstName == "" {
			// Lossy placeholder derived from the address itself; the
			// fallback listing carries no profile.
			firstName = utils.EmailLocalPart(identity.Email)
		}
		return &ResolvedUser{
			IdentityID: identity.ID,
			Email:      identity.Email,
			FirstName:  firstName,
			LastName:   identity.Metadata.LastName,
			Source:     ResolvedFromIdentity,
		}, nil
	}

	return nil, ErrUserNotFound
}
