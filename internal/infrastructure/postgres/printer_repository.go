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

var _ repository.PrinterRepository = (*PrinterRepo)(nil)

const printerColumns = `id, name, brand, model, location, serial_number, ip, is_active, created_at, updated_at`

// PrinterRepo implementación de PrinterRepository sobre PostgreSQL.
type PrinterRepo struct {
	q Querier
}

// NewPrinterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPrinterRepository(q Querier) *PrinterRepo {
	return &PrinterRepo{q: q}
}

// Create persiste una nueva impresora.
func (r *PrinterRepo) Create(ctx context.Context, p *entity.Printer) error {
	query := `
		INSERT INTO printers (id, name, brand, model, location, serial_number, ip, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Brand, p.Model, p.Location, p.SerialNumber, p.IP,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert printer: %w", err)
	}
	return nil
}

// GetByID obtiene una impresora por ID. Devuelve nil si no existe.
func (r *PrinterRepo) GetByID(ctx context.Context, id string) (*entity.Printer, error) {
	query := `SELECT ` + printerColumns + ` FROM printers WHERE id = $1`
	p, err := scanPrinter(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Update actualiza una impresora.
func (r *PrinterRepo) Update(ctx context.Context, p *entity.Printer) error {
	query := `
		UPDATE printers
		SET name = $2, brand = $3, model = $4, location = $5,
		    serial_number = $6, ip = $7, is_active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Brand, p.Model, p.Location, p.SerialNumber, p.IP,
		p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update printer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista impresoras con filtros y paginación, más recientes primero.
func (r *PrinterRepo) List(ctx context.Context, filter repository.PrinterFilter, limit, offset int) ([]*entity.Printer, error) {
	query := `SELECT ` + printerColumns + ` FROM printers` + printerWhere(filter)
	args := printerArgs(filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list printers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Printer
	for rows.Next() {
		p, err := scanPrinter(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Count cuenta impresoras que cumplen el filtro.
func (r *PrinterRepo) Count(ctx context.Context, filter repository.PrinterFilter) (int, error) {
	query := `SELECT count(*) FROM printers` + printerWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, query, printerArgs(filter)...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count printers: %w", err)
	}
	return n, nil
}

func printerWhere(filter repository.PrinterFilter) string {
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
		and(fmt.Sprintf("(name ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d OR location ILIKE $%d OR ip ILIKE $%d)", pos, pos, pos, pos, pos))
		pos++
	}
	if filter.OnlyActive {
		and("is_active")
	}
	return where
}

func printerArgs(filter repository.PrinterFilter) []any {
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
	}
	return args
}

func scanPrinter(row pgx.Row) (*entity.Printer, error) {
	var p entity.Printer
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Model, &p.Location, &p.SerialNumber, &p.IP,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan printer: %w", err)
	}
	return &p, nil
}
