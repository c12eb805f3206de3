package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores Prometheus de las operaciones del motor de inventario.
type Metrics struct {
	StockMovements   *prometheus.CounterVec
	Reservations     *prometheus.CounterVec
	SweepRuns        prometheus.Counter
	SweepTransitions *prometheus.CounterVec
}

// New registra los contadores en el registrador dado (nil = registrador por defecto).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Metrics{
		StockMovements: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_movimientos_total",
			Help: "Movimientos de stock registrados en el kardex.",
		}, []string{"tipo", "direccion"}),
		Reservations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_reservas_total",
			Help: "Operaciones de reserva por recurso y resultado.",
		}, []string{"recurso", "resultado"}),
		SweepRuns: f.NewCounter(prometheus.CounterOpts{
			Name: "inventario_barridos_total",
			Help: "Ejecuciones del barrido periódico de reservas de activos.",
		}),
		SweepTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventario_barrido_transiciones_total",
			Help: "Transiciones aplicadas por el barrido (promote/release).",
		}, []string{"accion"}),
	}
}

// Nop devuelve métricas registradas en un registrador aislado; útil en tests.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}
