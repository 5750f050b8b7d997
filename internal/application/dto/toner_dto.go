package dto

import "time"

// CreateTonerRequest body para POST /api/toners.
type CreateTonerRequest struct {
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Color    string `json:"color"`
	SKU      string `json:"sku"`
	MinStock int    `json:"min_stock"`
}

// UpdateTonerRequest body para PUT /api/toners/:id. Campos nil no se tocan.
// CurrentStock no es actualizable por aquí: solo vía movimientos.
type UpdateTonerRequest struct {
	Name     *string `json:"name"`
	Brand    *string `json:"brand"`
	Model    *string `json:"model"`
	Color    *string `json:"color"`
	SKU      *string `json:"sku"`
	MinStock *int    `json:"min_stock"`
}

// TonerResponse representación HTTP de un tóner.
type TonerResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Color        string    `json:"color"`
	SKU          string    `json:"sku,omitempty"`
	MinStock     int       `json:"min_stock"`
	CurrentStock int       `json:"current_stock"`
	LowStock     bool      `json:"low_stock"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TonerListResponse página de tóneres.
type TonerListResponse struct {
	Items []TonerResponse `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Pages int             `json:"pages"`
}
