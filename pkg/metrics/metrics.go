package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "toner_control"

// Métricas de negocio del ledger y de autenticación.
var (
	// MovementsApplied movimientos de stock aplicados con éxito, por tipo.
	MovementsApplied *prometheus.CounterVec

	// MovementsRejected movimientos rechazados, por motivo
	// (invalid_input, not_found, insufficient_stock).
	MovementsRejected *prometheus.CounterVec

	// LoginAttempts intentos de login, por resultado (ok, failed).
	LoginAttempts *prometheus.CounterVec

	// LowStockToners gauge de tóneres activos bajo su umbral mínimo.
	LowStockToners prometheus.Gauge
)

func init() {
	MovementsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_applied_total",
			Help:      "Total de movimientos de stock aplicados",
		},
		[]string{"type"},
	)

	MovementsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_rejected_total",
			Help:      "Total de movimientos de stock rechazados",
		},
		[]string{"reason"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Total de intentos de login",
		},
		[]string{"result"},
	)

	LowStockToners = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "low_stock_toners",
		Help:      "Tóneres activos por debajo de su stock mínimo",
	})
}
