package usecase

import (
	"context"

	"vehiql/internal/domain/entity"
)

// IdentityProvider resolves bearer tokens and profiles issued by the external
// identity service.
type IdentityProvider interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	GetProfile(ctx context.Context, uid string) (*entity.IdentityProfile, error)
}

// ToggleRecorder observes wishlist toggles.
type ToggleRecorder interface {
	RecordToggle(saved bool)
}
