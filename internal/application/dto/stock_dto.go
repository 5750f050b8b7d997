package dto

import "time"

// CreateMovementRequest body para POST /api/stock.
type CreateMovementRequest struct {
	TonerID   string `json:"toner_id"`
	Type      string `json:"type"` // in, out, adjust
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
	PrinterID string `json:"printer_id,omitempty"`
}

// MovementResponse representación HTTP de un movimiento del ledger, con las
// referencias resueltas para listados.
type MovementResponse struct {
	ID              string    `json:"id"`
	TonerID         string    `json:"toner_id"`
	TonerName       string    `json:"toner_name,omitempty"`
	TonerModel      string    `json:"toner_model,omitempty"`
	TonerSKU        string    `json:"toner_sku,omitempty"`
	Type            string    `json:"type"`
	Quantity        int       `json:"quantity"`
	Note            string    `json:"note,omitempty"`
	PrinterID       string    `json:"printer_id,omitempty"`
	PrinterName     string    `json:"printer_name,omitempty"`
	PrinterLocation string    `json:"printer_location,omitempty"`
	UserID          string    `json:"user_id"`
	UserName        string    `json:"user_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ApplyMovementResponse resultado de POST /api/stock: tóner actualizado +
// movimiento creado.
type ApplyMovementResponse struct {
	Toner    TonerResponse    `json:"toner"`
	Movement MovementResponse `json:"movement"`
}

// MovementListResponse página del ledger.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Pages int                `json:"pages"`
}
