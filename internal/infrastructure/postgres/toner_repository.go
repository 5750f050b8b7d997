package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

var _ repository.TonerRepository = (*TonerRepo)(nil)

const tonerColumns = `id, name, brand, model, color, sku, min_stock, current_stock, is_active, created_at, updated_at`

// TonerRepo implementación de TonerRepository sobre PostgreSQL (usable con
// pool o tx).
type TonerRepo struct {
	q Querier
}

// NewTonerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTonerRepository(q Querier) *TonerRepo {
	return &TonerRepo{q: q}
}

// Create persiste un nuevo tóner.
func (r *TonerRepo) Create(ctx context.Context, t *entity.Toner) error {
	query := `
		INSERT INTO toners (id, name, brand, model, color, sku, min_stock, current_stock, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Brand, t.Model, t.Color, nullable(t.SKU),
		t.MinStock, t.CurrentStock, t.IsActive, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert toner: %w", err)
	}
	return nil
}

// GetByID obtiene un tóner por ID. Devuelve nil si no existe.
func (r *TonerRepo) GetByID(ctx context.Context, id string) (*entity.Toner, error) {
	query := `SELECT ` + tonerColumns + ` FROM toners WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetBySKU obtiene un tóner por SKU canónico. Devuelve nil si no existe.
func (r *TonerRepo) GetBySKU(ctx context.Context, sku string) (*entity.Toner, error) {
	query := `SELECT ` + tonerColumns + ` FROM toners WHERE sku = $1`
	return r.scanOne(ctx, query, sku)
}

// GetForUpdate obtiene el tóner y bloquea su fila (SELECT FOR UPDATE) para la
// actualización de saldo. Movimientos concurrentes sobre el mismo tóner se
// serializan en este punto; filas distintas no compiten.
func (r *TonerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Toner, error) {
	query := `SELECT ` + tonerColumns + ` FROM toners WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

// SetStock persiste el nuevo saldo. Solo debe invocarse dentro de la
// transacción del ledger, después de GetForUpdate.
func (r *TonerRepo) SetStock(ctx context.Context, id string, stock int) error {
	query := `UPDATE toners SET current_stock = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, stock)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza los datos maestros del tóner. current_stock no se toca
// aquí: pertenece al ledger.
func (r *TonerRepo) Update(ctx context.Context, t *entity.Toner) error {
	query := `
		UPDATE toners
		SET name = $2, brand = $3, model = $4, color = $5, sku = $6,
		    min_stock = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		t.ID, t.Name, t.Brand, t.Model, t.Color, nullable(t.SKU),
		t.MinStock, t.IsActive, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update toner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista tóneres con filtros y paginación, más recientes primero.
func (r *TonerRepo) List(ctx context.Context, filter repository.TonerFilter, limit, offset int) ([]*entity.Toner, error) {
	query := `SELECT ` + tonerColumns + ` FROM toners` + tonerWhere(filter)
	args := tonerArgs(filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list toners: %w", err)
	}
	defer rows.Close()

	var list []*entity.Toner
	for rows.Next() {
		t, err := scanToner(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Count cuenta tóneres que cumplen el filtro.
func (r *TonerRepo) Count(ctx context.Context, filter repository.TonerFilter) (int, error) {
	query := `SELECT count(*) FROM toners` + tonerWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, query, tonerArgs(filter)...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count toners: %w", err)
	}
	return n, nil
}

// tonerWhere arma la cláusula WHERE del filtro. Debe mantenerse en sincronía
// con tonerArgs.
func tonerWhere(filter repository.TonerFilter) string {
	where := ""
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	pos := 1
	if filter.Search != "" {
		and(fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d OR sku ILIKE $%d)", pos, pos, pos, pos))
		pos++
	}
	if filter.OnlyActive {
		and("is_active")
	}
	if filter.LowStock {
		and("current_stock < min_stock")
	}
	return where
}

func tonerArgs(filter repository.TonerFilter) []any {
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
	}
	return args
}

func (r *TonerRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Toner, error) {
	t, err := scanToner(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// scanToner lee una fila de toners desde pgx.Row o pgx.Rows.
func scanToner(row pgx.Row) (*entity.Toner, error) {
	var t entity.Toner
	var sku *string
	err := row.Scan(
		&t.ID, &t.Name, &t.Brand, &t.Model, &t.Color, &sku,
		&t.MinStock, &t.CurrentStock, &t.IsActive, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan toner: %w", err)
	}
	t.SKU = deref(sku)
	return &t, nil
}
