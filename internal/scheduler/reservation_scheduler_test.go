package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

// stubReservaRepo cuenta las barridas; el resto de la interfaz no se usa.
type stubReservaRepo struct {
	domain.ReservaRepository
	mu       sync.Mutex
	barridas int
}

func (s *stubReservaRepo) CancelarPendientesVencidas(context.Context, time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.barridas++
	return 0, nil
}

func (s *stubReservaRepo) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.barridas
}

func TestSchedulerBarridaInmediata(t *testing.T) {
	repo := &stubReservaRepo{}
	s := NewReservationScheduler(repo)

	s.Start()
	assert.Equal(t, 1, repo.total(), "Start ejecuta una barrida antes de programar la nocturna")
	s.Stop()
}

func TestSchedulerStopAntesDeLaPrimeraNocturna(t *testing.T) {
	repo := &stubReservaRepo{}
	s := NewReservationScheduler(repo)

	s.Start()

	// Stop antes de que venza el timer de medianoche debe retornar sin
	// colgarse y sin dejar la goroutine viva.
	terminado := make(chan struct{})
	go func() {
		s.Stop()
		close(terminado)
	}()

	select {
	case <-terminado:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop no terminó")
	}
	assert.Equal(t, 1, repo.total())
}
