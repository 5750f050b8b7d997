package dto

// DashboardSummary contadores simples + listas para la pantalla inicial.
type DashboardSummary struct {
	ActiveToners    int                `json:"active_toners"`
	LowStockCount   int                `json:"low_stock_count"`
	MovementsLast24 int                `json:"movements_last_24h"`
	LowStockList    []TonerResponse    `json:"low_stock_list"`
	RecentMovements []MovementResponse `json:"recent_movements"`
}
