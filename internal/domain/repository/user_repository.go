package repository

import (
	"context"

	"vehiql/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdateRole(ctx context.Context, id string, role entity.Role) error
}
