package entity

import "time"

// Colores válidos para Toner.
const (
	ColorBlack   = "black"
	ColorCyan    = "cyan"
	ColorMagenta = "magenta"
	ColorYellow  = "yellow"
	ColorOther   = "other"
)

// ValidColor indica si el color pertenece al catálogo.
func ValidColor(c string) bool {
	switch c {
	case ColorBlack, ColorCyan, ColorMagenta, ColorYellow, ColorOther:
		return true
	}
	return false
}

// Toner representa un modelo de tóner bajo seguimiento de inventario.
// CurrentStock solo se muta a través del ledger de movimientos; nunca
// directamente desde un update CRUD.
type Toner struct {
	ID           string
	Name         string // ej: "HP 12A"
	Brand        string // ej: "HP"
	Model        string // ej: "Q2612A"
	Color        string // black, cyan, magenta, yellow, other
	SKU          string // opcional, único cuando presente
	MinStock     int    // umbral de alerta, >= 0
	CurrentStock int    // saldo actual, >= 0
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si el saldo actual está por debajo del umbral mínimo.
func (t *Toner) LowStock() bool {
	return t.CurrentStock < t.MinStock
}
