package repository

import (
	"context"

	"github.com/jhoicas/toner-control-api/internal/domain/entity"
)

// PrinterFilter criterios de listado de impresoras.
type PrinterFilter struct {
	Search     string // busca en name, brand, model, location, ip
	OnlyActive bool
}

// PrinterRepository define el puerto de persistencia para impresoras.
type PrinterRepository interface {
	Create(ctx context.Context, printer *entity.Printer) error
	GetByID(ctx context.Context, id string) (*entity.Printer, error)
	Update(ctx context.Context, printer *entity.Printer) error
	List(ctx context.Context, filter PrinterFilter, limit, offset int) ([]*entity.Printer, error)
	Count(ctx context.Context, filter PrinterFilter) (int, error)
}
