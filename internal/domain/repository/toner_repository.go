package repository

import (
	"context"

	"github.com/jhoicas/toner-control-api/internal/domain/entity"
)

// TonerFilter criterios de listado de tóneres.
type TonerFilter struct {
	Search     string // busca en name, brand, model, sku
	OnlyActive bool
	LowStock   bool // current_stock < min_stock
}

// TonerRepository define el puerto de persistencia para tóneres.
// SetStock solo debe invocarse dentro de la transacción del ledger, después
// de GetForUpdate sobre la misma fila.
type TonerRepository interface {
	Create(ctx context.Context, toner *entity.Toner) error
	GetByID(ctx context.Context, id string) (*entity.Toner, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Toner, error)
	Update(ctx context.Context, toner *entity.Toner) error
	List(ctx context.Context, filter TonerFilter, limit, offset int) ([]*entity.Toner, error)
	Count(ctx context.Context, filter TonerFilter) (int, error)
	// GetForUpdate bloquea la fila del tóner (SELECT FOR UPDATE) para la
	// actualización de saldo dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Toner, error)
	// SetStock persiste el nuevo saldo calculado por el ledger.
	SetStock(ctx context.Context, id string, stock int) error
}
