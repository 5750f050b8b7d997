package dto

import "time"

// CreatePrinterRequest body para POST /api/printers.
type CreatePrinterRequest struct {
	Name         string `json:"name"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Location     string `json:"location"`
	SerialNumber string `json:"serial_number"`
	IP           string `json:"ip"`
}

// UpdatePrinterRequest body para PUT /api/printers/:id. Campos nil no se tocan.
type UpdatePrinterRequest struct {
	Name         *string `json:"name"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Location     *string `json:"location"`
	SerialNumber *string `json:"serial_number"`
	IP           *string `json:"ip"`
}

// PrinterResponse representación HTTP de una impresora.
type PrinterResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Location     string    `json:"location"`
	SerialNumber string    `json:"serial_number"`
	IP           string    `json:"ip"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PrinterListResponse página de impresoras.
type PrinterListResponse struct {
	Items []PrinterResponse `json:"items"`
	Total int               `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
}
