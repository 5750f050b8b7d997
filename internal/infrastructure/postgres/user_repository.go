package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/toner-control-api/internal/domain"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
	"github.com/jhoicas/toner-control-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, email, password_hash, role, phone, department, is_active, last_login_at, created_at, updated_at`

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, phone, department, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.Department,
		u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByEmail obtiene un usuario por email. Devuelve nil si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(ctx, query, email)
}

// Update actualiza un usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, password_hash = $3, role = $4, phone = $5,
		    department = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		u.ID, u.Name, u.PasswordHash, u.Role, u.Phone, u.Department,
		u.IsActive, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista usuarios con filtros y paginación, más recientes primero.
func (r *UserRepo) List(ctx context.Context, filter repository.UserFilter, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users` + userWhere(filter)
	args := userArgs(filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Count cuenta usuarios que cumplen el filtro.
func (r *UserRepo) Count(ctx context.Context, filter repository.UserFilter) (int, error) {
	query := `SELECT count(*) FROM users` + userWhere(filter)
	var n int
	if err := r.q.QueryRow(ctx, query, userArgs(filter)...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// CountActiveAdmins cuenta admins activos, excluyendo opcionalmente un ID.
func (r *UserRepo) CountActiveAdmins(ctx context.Context, excludeID string) (int, error) {
	query := `SELECT count(*) FROM users WHERE role = 'admin' AND is_active`
	args := []any{}
	if excludeID != "" {
		query += ` AND id <> $1`
		args = append(args, excludeID)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count active admins: %w", err)
	}
	return n, nil
}

// TouchLastLogin registra el instante del último login.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

func userWhere(filter repository.UserFilter) string {
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
		and(fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", pos, pos))
		pos++
	}
	if filter.Role != "" {
		and(fmt.Sprintf("role = $%d", pos))
		pos++
	}
	if filter.OnlyActive {
		and("is_active")
	}
	return where
}

func userArgs(filter repository.UserFilter) []any {
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
	}
	return args
}

func (r *UserRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.Department,
		&u.IsActive, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
