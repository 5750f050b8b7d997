package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

// Paginación de listados del ledger.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// LedgerUseCase es el único punto de entrada para mutar el saldo de un tóner.
// Aplica el movimiento (in/out/adjust) y registra la fila de auditoría dentro
// de una misma transacción, con bloqueo de fila (SELECT FOR UPDATE) para
// serializar movimientos concurrentes sobre el mismo tóner.
type LedgerUseCase struct {
	txRunner TxRunner
	movRepo  repository.StockMovementRepository // lado de lectura, fuera de tx
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo}
}

// MovementInput entrada para ApplyMovement. PrinterID es opaco para el
// ledger: no se valida su existencia aquí.
type MovementInput struct {
	TonerID   string
	Type      string // in, out, adjust
	Quantity  int
	Note      string
	PrinterID string // opcional
	UserID    string // actor, requerido
}

// MovementResult tóner actualizado + movimiento creado.
type MovementResult struct {
	Toner    *entity.Toner
	Movement *entity.StockMovement
}

// ApplyMovement aplica un movimiento de stock de forma transaccional:
//   - in:     suma cantidad (cantidad > 0)
//   - out:    resta cantidad, el saldo no puede quedar negativo
//   - adjust: fija el saldo absoluto (cantidad >= 0)
//
// El nuevo saldo y el registro del movimiento se persisten en la misma
// transacción: Commit ambos o Rollback ambos. La cantidad se guarda literal
// (positiva para in/out, saldo absoluto para adjust).
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	if input.TonerID == "" || input.UserID == "" {
		return nil, fmt.Errorf("%w: toner_id y user_id son requeridos", domain.ErrInvalidInput)
	}
	if !entity.ValidMovementType(input.Type) {
		return nil, fmt.Errorf("%w: tipo de movimiento inválido (use: in | out | adjust)", domain.ErrInvalidInput)
	}
	switch input.Type {
	case entity.MovementTypeIn:
		if input.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser > 0 para una entrada", domain.ErrInvalidInput)
		}
	case entity.MovementTypeOut:
		if input.Quantity <= 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser > 0 para una salida", domain.ErrInvalidInput)
		}
	case entity.MovementTypeAdjust:
		if input.Quantity < 0 {
			return nil, fmt.Errorf("%w: la cantidad debe ser >= 0 para un ajuste", domain.ErrInvalidInput)
		}
	}

	var result MovementResult

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo garantiza).
	err := uc.txRunner.Run(ctx, func(
		tonerRepo repository.TonerRepository,
		movRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del tóner: movimientos concurrentes sobre el mismo
		// tóner se serializan aquí; tóneres distintos no se bloquean entre sí.
		toner, err := tonerRepo.GetForUpdate(ctx, input.TonerID)
		if err != nil {
			return err
		}
		if toner == nil {
			return domain.ErrNotFound
		}

		newStock := toner.CurrentStock
		switch input.Type {
		case entity.MovementTypeIn:
			newStock += input.Quantity
		case entity.MovementTypeOut:
			if toner.CurrentStock-input.Quantity < 0 {
				return domain.ErrInsufficientStock
			}
			newStock -= input.Quantity
		case entity.MovementTypeAdjust:
			newStock = input.Quantity
		}

		if err := tonerRepo.SetStock(ctx, toner.ID, newStock); err != nil {
			return err
		}

		now := time.Now()
		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			TonerID:   toner.ID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Note:      input.Note,
			PrinterID: input.PrinterID,
			UserID:    input.UserID,
			CreatedAt: now,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}

		toner.CurrentStock = newStock
		toner.UpdatedAt = now
		result.Toner = toner
		result.Movement = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MovementPage página de movimientos con metadatos.
type MovementPage struct {
	Items []*entity.StockMovementDetail
	Total int
	Page  int
	Pages int
}

// ListMovements consulta el ledger (lectura, fuera de transacción) con
// filtros combinables, orden created_at descendente y paginación acotada.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter, page, pageSize int) (*MovementPage, error) {
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return nil, fmt.Errorf("%w: tipo de movimiento inválido", domain.ErrInvalidInput)
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	offset := (page - 1) * pageSize

	items, err := uc.movRepo.List(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, err
	}
	total, err := uc.movRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return &MovementPage{Items: items, Total: total, Page: page, Pages: pages}, nil
}
