package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

// ReservationScheduler barre una vez por día las reservas pendientes cuyo
// check-in ya pasó y las cancela. Una pendiente vencida ya no puede
// verificarse ni pagarse, solo ensucia el tablero de los operadores.
type ReservationScheduler struct {
	reservaRepo domain.ReservaRepository
	stop        chan struct{}
	done        chan struct{}
}

// NewReservationScheduler crea una nueva instancia del scheduler de reservas
func NewReservationScheduler(reservaRepo domain.ReservaRepository) *ReservationScheduler {
	return &ReservationScheduler{
		reservaRepo: reservaRepo,
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Start inicia el scheduler. Ejecuta una barrida inmediata y después una por
// día a las 00:01.
func (s *ReservationScheduler) Start() {
	log.Info().Msg("scheduler de reservas iniciado")

	s.CancelarPendientesVencidas()

	now := time.Now()
	nextRun := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 1, 0, 0, now.Location())
	log.Info().Time("proxima_ejecucion", nextRun).Msg("barrida nocturna programada")

	go func() {
		defer close(s.done)

		// El timer y el ticker viven en esta goroutine; Stop solo cierra
		// el canal, así no hay escritura compartida que sincronizar.
		primera := time.NewTimer(time.Until(nextRun))
		defer primera.Stop()
		select {
		case <-primera.C:
		case <-s.stop:
			return
		}
		s.CancelarPendientesVencidas()

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.CancelarPendientesVencidas()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop detiene el scheduler y espera a que la goroutine termine.
func (s *ReservationScheduler) Stop() {
	close(s.stop)
	<-s.done
	log.Info().Msg("scheduler de reservas detenido")
}

// CancelarPendientesVencidas cancela las reservas pendientes con check-in vencido
func (s *ReservationScheduler) CancelarPendientesVencidas() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hoy := domain.NormalizarFecha(time.Now().UTC())
	canceladas, err := s.reservaRepo.CancelarPendientesVencidas(ctx, hoy)
	if err != nil {
		log.Error().Err(err).Msg("error cancelando reservas pendientes vencidas")
		return
	}
	if canceladas > 0 {
		log.Info().Int64("canceladas", canceladas).Msg("reservas pendientes vencidas canceladas")
	}
}
