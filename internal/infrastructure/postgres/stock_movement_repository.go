package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// Columnas del listado: movimiento + referencias resueltas. El log es
// append-only; este adaptador no expone UPDATE ni DELETE.
const movementSelect = `
	SELECT m.id, m.toner_id, m.type, m.quantity, m.note, m.printer_id, m.user_id, m.created_at,
	       t.name, t.model, COALESCE(t.sku, ''),
	       COALESCE(u.name, ''), COALESCE(u.email, ''),
	       COALESCE(p.name, ''), COALESCE(p.location, '')
	FROM stock_movements m
	JOIN toners t ON t.id = m.toner_id
	LEFT JOIN users u ON u.id = m.user_id
	LEFT JOIN printers p ON p.id = m.printer_id`

// StockMovementRepo implementación del ledger sobre PostgreSQL (usable con
// pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. Dentro del ledger debe ejecutarse con el repo
// atado a la misma tx que actualizó el saldo.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, toner_id, type, quantity, note, printer_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.TonerID, m.Type, m.Quantity, m.Note,
		nullable(m.PrinterID), m.UserID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con referencias resueltas. Nil si no existe.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovementDetail, error) {
	row := r.q.QueryRow(ctx, movementSelect+` WHERE m.id = $1`, id)
	d, err := scanMovementDetail(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

// List consulta el ledger con filtros combinables, más recientes primero.
// Usa el índice (toner_id, created_at DESC) para el historial por tóner.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter, limit, offset int) ([]*entity.StockMovementDetail, error) {
	query := movementSelect + movementWhere(filter)
	args := movementArgs(filter)
	query += fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovementDetail
	for rows.Next() {
		d, err := scanMovementDetail(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Count cuenta movimientos que cumplen el filtro.
func (r *StockMovementRepo) Count(ctx context.Context, filter repository.MovementFilter) (int, error) {
	query := `SELECT count(*) FROM stock_movements m` + movementWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, query, movementArgs(filter)...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}

// CountSince cuenta movimientos desde un instante (KPI del dashboard).
func (r *StockMovementRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements WHERE created_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements since: %w", err)
	}
	return n, nil
}

// movementWhere arma la cláusula WHERE del filtro. Debe mantenerse en
// sincronía con movementArgs.
func movementWhere(filter repository.MovementFilter) string {
	where := ""
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	pos := 1
	if filter.TonerID != "" {
		and(fmt.Sprintf("m.toner_id = $%d", pos))
		pos++
	}
	if filter.PrinterID != "" {
		and(fmt.Sprintf("m.printer_id = $%d", pos))
		pos++
	}
	if filter.Type != "" {
		and(fmt.Sprintf("m.type = $%d", pos))
		pos++
	}
	if filter.NoteContains != "" {
		and(fmt.Sprintf("m.note ILIKE $%d", pos))
		pos++
	}
	return where
}

func movementArgs(filter repository.MovementFilter) []any {
	var args []any
	if filter.TonerID != "" {
		args = append(args, filter.TonerID)
	}
	if filter.PrinterID != "" {
		args = append(args, filter.PrinterID)
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
	}
	if filter.NoteContains != "" {
		args = append(args, "%"+filter.NoteContains+"%")
	}
	return args
}

func scanMovementDetail(row pgx.Row) (*entity.StockMovementDetail, error) {
	var d entity.StockMovementDetail
	var printerID *string
	err := row.Scan(
		&d.ID, &d.TonerID, &d.Type, &d.Quantity, &d.Note, &printerID, &d.UserID, &d.CreatedAt,
		&d.TonerName, &d.TonerModel, &d.TonerSKU,
		&d.UserName, &d.UserEmail,
		&d.PrinterName, &d.PrinterLocation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan stock movement: %w", err)
	}
	d.PrinterID = deref(printerID)
	return &d, nil
}
