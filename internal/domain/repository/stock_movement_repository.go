package repository

import (
	"context"
	"time"

	"github.com/jhoicas/toner-control-api/internal/domain/entity"
)

// MovementFilter criterios de consulta del ledger. Los campos vacíos no
// filtran; se combinan con AND.
type MovementFilter struct {
	TonerID      string
	PrinterID    string
	Type         string
	NoteContains string
}

// StockMovementRepository define el puerto de persistencia del ledger.
// El log es append-only: no existen Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovementDetail, error)
	List(ctx context.Context, filter MovementFilter, limit, offset int) ([]*entity.StockMovementDetail, error)
	Count(ctx context.Context, filter MovementFilter) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
