package dto

// PageRequest paginación para listados (page/limit, estilo 1-based).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica valores por defecto y topes.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
}

// Offset devuelve el desplazamiento SQL equivalente.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
