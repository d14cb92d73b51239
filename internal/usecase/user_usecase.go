package usecase

import (
	"context"
	"time"

	"vehiql/internal/domain/entity"
	"vehiql/internal/domain/repository"
	"vehiql/pkg/errors"
	"vehiql/pkg/logger"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	identity IdentityProvider
}

func NewUserUseCase(userRepo repository.UserRepository, identity IdentityProvider) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		identity: identity,
	}
}

// EnsureUser returns the mirrored user for uid, creating it from the
// identity provider profile the first time the uid is seen.
func (uc *UserUseCase) EnsureUser(ctx context.Context, uid string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	profile, err := uc.identity.GetProfile(ctx, uid)
	if err != nil {
		return nil, errors.Unauthorized("Failed to load identity profile", err)
	}

	now := time.Now()
	user = &entity.User{
		ID:        uid,
		Email:     profile.Email,
		Name:      profile.Name,
		ImageURL:  profile.ImageURL,
		Phone:     profile.Phone,
		Role:      entity.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("mirrored new user %s", uid)
	return user, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, uid string) (*entity.User, error) {
	if uid == "" {
		return nil, errors.Unauthorized("Unauthorized", nil)
	}
	return uc.userRepo.GetByID(ctx, uid)
}

func (uc *UserUseCase) GetUsers(ctx context.Context) ([]*entity.User, error) {
	return uc.userRepo.List(ctx)
}

// UpdateUserRole changes a user's role. Admins may not demote themselves.
func (uc *UserUseCase) UpdateUserRole(ctx context.Context, adminUID, userID string, role entity.Role) (*entity.User, error) {
	if !role.Valid() {
		return nil, errors.ValidationFailed("Invalid role", nil)
	}
	if adminUID == userID && role != entity.RoleAdmin {
		return nil, errors.Forbidden("Cannot remove your own admin role", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}

	if err := uc.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}

	logger.Info("role of user %s changed from %s to %s by %s", userID, user.Role, role, adminUID)
	user.Role = role
	user.UpdatedAt = time.Now()
	return user, nil
}
