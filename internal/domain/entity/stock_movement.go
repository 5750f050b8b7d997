package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIn     = "in"     // entrada: suma cantidad
	MovementTypeOut    = "out"    // salida: resta cantidad, saldo >= 0
	MovementTypeAdjust = "adjust" // ajuste: fija el saldo absoluto
)

// ValidMovementType indica si el tipo pertenece al catálogo.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjust:
		return true
	}
	return false
}

// StockMovement es el registro de auditoría inmutable de un cambio de saldo.
// Quantity guarda la cantidad literal del request: positiva para in/out,
// el saldo absoluto para adjust. Nunca se actualiza ni se borra.
type StockMovement struct {
	ID        string
	TonerID   string
	Type      string // in, out, adjust
	Quantity  int
	Note      string
	PrinterID string // opcional, FK a printers (salidas)
	UserID    string // actor que registró el movimiento
	CreatedAt time.Time
}

// StockMovementDetail es la proyección de lectura del ledger con los campos
// de referencia resueltos (toner, usuario, impresora) para listados e
// informes. No participa en la escritura.
type StockMovementDetail struct {
	StockMovement
	TonerName       string
	TonerModel      string
	TonerSKU        string
	UserName        string
	UserEmail       string
	PrinterName     string
	PrinterLocation string
}
