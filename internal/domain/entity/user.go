package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleTecnico = "tecnico"
	RoleUsuario = "usuario"
)

// ValidRole indica si el rol pertenece al catálogo.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleTecnico, RoleUsuario:
		return true
	}
	return false
}

// User representa un usuario del sistema. Para el ledger es solo una
// referencia opaca de atribución.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, tecnico, usuario
	Phone        string
	Department   string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
