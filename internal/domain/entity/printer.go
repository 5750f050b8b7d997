package entity

import "time"

// Printer representa una impresora física que puede ser destino de una salida
// de stock. Solo referencial para el ledger (FK opcional en el movimiento).
type Printer struct {
	ID           string
	Name         string
	Brand        string
	Model        string
	Location     string // ej: "Secretaría de Salud"
	SerialNumber string
	IP           string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
