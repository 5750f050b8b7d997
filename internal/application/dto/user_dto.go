package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role,omitempty"` // default: usuario
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRequest body para PUT /api/users/:id (admin). Campos nil no se
// tocan; el password se rehashea si viene.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Phone      *string `json:"phone"`
	Department *string `json:"department"`
	Password   *string `json:"password"`
}

// UserResponse perfil de usuario (sin hash ni tokens).
type UserResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Phone       string     `json:"phone,omitempty"`
	Department  string     `json:"department,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// UserCompactResponse lo esencial para hidratar el cliente.
type UserCompactResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// UserListResponse página de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}
