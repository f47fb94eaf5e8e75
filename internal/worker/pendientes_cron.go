package worker

// pendientes_cron.go
// Background goroutine that periodically cancels orders stuck in
// PENDIENTE_PAGO past the configured TTL, returning their stock.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const pendientesTickInterval = 5 * time.Minute

// CanceladorVencidos is implemented by the order service; declared here so
// the pool does not import the service layer.
type CanceladorVencidos interface {
	CancelarVencidos(ctx context.Context, antesDe time.Time) (int, error)
}

// StartPendientesCron launches a goroutine that ticks every 5 minutes and
// cancels unpaid orders older than ttl. Respects ctx for graceful shutdown.
func StartPendientesCron(ctx context.Context, cancelador CanceladorVencidos, ttl time.Duration) {
	go func() {
		ticker := time.NewTicker(pendientesTickInterval)
		defer ticker.Stop()

		log.Info().Dur("ttl", ttl).Msg("pendientes_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("pendientes_cron: shutting down")
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-ttl)
				n, err := cancelador.CancelarVencidos(ctx, cutoff)
				if err != nil {
					log.Error().Err(err).Msg("pendientes_cron: query failed")
					continue
				}
				if n > 0 {
					log.Info().Int("cancelados", n).Msg("pendientes_cron: expired orders cancelled")
				}
			}
		}
	}()
}
