package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func todosLosEstados() []EstadoReserva {
	return []EstadoReserva{
		ReservaPendienteVerificacion,
		ReservaPendientePago,
		ReservaAprobada,
		ReservaRechazada,
		ReservaCancelada,
	}
}

func TestPuedeTransicionarA(t *testing.T) {
	permitidas := map[EstadoReserva][]EstadoReserva{
		ReservaPendienteVerificacion: {ReservaPendientePago, ReservaAprobada, ReservaRechazada, ReservaCancelada},
		ReservaPendientePago:         {ReservaAprobada, ReservaRechazada, ReservaCancelada},
		ReservaAprobada:              {ReservaCancelada},
		ReservaRechazada:             {},
		ReservaCancelada:             {},
	}

	// Recorre el producto completo de estados: todo par que no esté en la
	// tabla de permitidas tiene que ser ilegal.
	for _, desde := range todosLosEstados() {
		esperadas := make(map[EstadoReserva]bool)
		for _, hasta := range permitidas[desde] {
			esperadas[hasta] = true
		}
		for _, hasta := range todosLosEstados() {
			assert.Equal(t, esperadas[hasta], desde.PuedeTransicionarA(hasta),
				"transición %s -> %s", desde, hasta)
		}
	}
}

func TestEstadosTerminalesNoSalen(t *testing.T) {
	for _, terminal := range []EstadoReserva{ReservaRechazada, ReservaCancelada} {
		for _, destino := range todosLosEstados() {
			assert.False(t, terminal.PuedeTransicionarA(destino),
				"%s es terminal, no puede pasar a %s", terminal, destino)
		}
	}
}

func TestNoHayAutotransiciones(t *testing.T) {
	for _, estado := range todosLosEstados() {
		assert.False(t, estado.PuedeTransicionarA(estado))
	}
}

func TestEsPendiente(t *testing.T) {
	assert.True(t, ReservaPendienteVerificacion.EsPendiente())
	assert.True(t, ReservaPendientePago.EsPendiente())
	assert.False(t, ReservaAprobada.EsPendiente())
	assert.False(t, ReservaRechazada.EsPendiente())
	assert.False(t, ReservaCancelada.EsPendiente())
}

func TestEsValido(t *testing.T) {
	for _, estado := range todosLosEstados() {
		assert.True(t, estado.EsValido())
	}
	assert.False(t, EstadoReserva("Confirmada").EsValido())
	assert.False(t, EstadoReserva("").EsValido())
}

func TestEstadosBloqueantes(t *testing.T) {
	assert.ElementsMatch(t,
		[]EstadoReserva{ReservaPendienteVerificacion, ReservaPendientePago, ReservaAprobada},
		EstadosBloqueantes())

	// Al aprobar solo compiten las aprobadas
	assert.Equal(t, []EstadoReserva{ReservaAprobada}, EstadosBloqueantesAprobacion())
}
