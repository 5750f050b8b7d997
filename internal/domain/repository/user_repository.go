package repository

import (
	"context"
	"time"

	"github.com/jhoicas/toner-control-api/internal/domain/entity"
)

// UserFilter criterios de listado de usuarios.
type UserFilter struct {
	Search     string // busca en name y email
	Role       string
	OnlyActive bool
}

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, filter UserFilter, limit, offset int) ([]*entity.User, error)
	Count(ctx context.Context, filter UserFilter) (int, error)
	// CountActiveAdmins cuenta admins activos, excluyendo opcionalmente un ID
	// (protección del último admin).
	CountActiveAdmins(ctx context.Context, excludeID string) (int, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
