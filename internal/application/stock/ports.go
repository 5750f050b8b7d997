package stock

import (
	"context"

	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger: o se
// persisten el nuevo saldo y el movimiento juntos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		tonerRepo repository.TonerRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
