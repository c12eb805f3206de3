package reservation

import (
	"context"
	"time"

	"github.com/odontosys/inventario-api/pkg/logger"
	"github.com/odontosys/inventario-api/pkg/metrics"
)

// SweepUser identidad con la que el barrido firma bitácora y reservas.
const SweepUser = "sistema"

// Sweeper recorre periódicamente las reservas de activos cuyos límites caen
// en la ventana alrededor de "ahora": promueve PENDING→CONFIRMED al inicio y
// libera el activo al fin si ninguna otra reserva CONFIRMED sigue vigente.
//
// Asume una sola instancia del proceso: no toma ningún lock distribuido, dos
// instancias barriendo la misma ventana procesarían las mismas reservas.
type Sweeper struct {
	uc       *UseCase
	interval time.Duration
	window   time.Duration
	log      *logger.Logger
	metrics  *metrics.Metrics
}

// NewSweeper construye el barrido con su intervalo de tick y ventana de tolerancia.
func NewSweeper(uc *UseCase, interval, window time.Duration, log *logger.Logger, m *metrics.Metrics) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Sweeper{uc: uc, interval: interval, window: window, log: log, metrics: m}
}

// Run ejecuta el ticker hasta que el contexto se cancele.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.log.Info().Dur("intervalo", s.interval).Dur("ventana", s.window).Msg("barrido de reservas iniciado")
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("barrido de reservas detenido")
			return
		case <-ticker.C:
			s.Tick(ctx, time.Now())
		}
	}
}

// Tick ejecuta una pasada completa del barrido.
func (s *Sweeper) Tick(ctx context.Context, now time.Time) {
	s.metrics.SweepRuns.Inc()
	promoted, err := s.uc.PromoverReservasVencidas(ctx, now, s.window)
	if err != nil {
		s.log.Error().Err(err).Msg("promover reservas vencidas")
	}
	released, err := s.uc.LiberarActivosVencidos(ctx, now, s.window)
	if err != nil {
		s.log.Error().Err(err).Msg("liberar activos vencidos")
	}
	if promoted > 0 || released > 0 {
		s.log.Info().Int("promovidas", promoted).Int("liberados", released).Msg("barrido aplicado")
	}
}

// PromoverReservasVencidas confirma las reservas PENDING cuyo inicio cae en
// [now−window, now+window], pasando el activo a IN_USE. Los activos en estado
// terminal se omiten con un aviso; un fallo por reserva no corta la pasada.
func (uc *UseCase) PromoverReservasVencidas(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	due, err := uc.assetResRepo.ListPendingStartingBetween(now.Add(-window), now.Add(window))
	if err != nil {
		return 0, err
	}
	promoted := 0
	for _, res := range due {
		if err := uc.ConfirmarReservaActivo(ctx, res.ID, SweepUser); err != nil {
			uc.log.Warn().Err(err).Str("reserva", res.ID).Msg("reserva no promovida")
			continue
		}
		promoted++
		uc.metrics.SweepTransitions.WithLabelValues("promote").Inc()
	}
	return promoted, nil
}

// LiberarActivosVencidos libera los activos cuyas reservas CONFIRMED terminan
// en [now−window, now+window], siempre que ninguna otra reserva CONFIRMED del
// mismo activo se extienda más allá de "ahora".
func (uc *UseCase) LiberarActivosVencidos(ctx context.Context, now time.Time, window time.Duration) (int, error) {
	ending, err := uc.assetResRepo.ListConfirmedEndingBetween(now.Add(-window), now.Add(window))
	if err != nil {
		return 0, err
	}
	released := 0
	for _, res := range ending {
		stillBusy, err := uc.assetResRepo.CountConfirmedEndingAfter(res.AssetID, now, res.ID)
		if err != nil {
			uc.log.Warn().Err(err).Str("activo", res.AssetID).Msg("no se pudo verificar reservas vigentes")
			continue
		}
		if stillBusy > 0 {
			continue
		}
		if err := uc.LiberarActivo(ctx, res.AssetID, SweepUser); err != nil {
			uc.log.Warn().Err(err).Str("activo", res.AssetID).Msg("activo no liberado")
			continue
		}
		released++
		uc.metrics.SweepTransitions.WithLabelValues("release").Inc()
	}
	return released, nil
}
