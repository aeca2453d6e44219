package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHayDisponibilidad(t *testing.T) {
	existentes := []Reserva{
		{ID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: ReservaAprobada},
		{ID: 2, HabitacionID: 7, Rango: rango(20, 25), Estado: ReservaPendientePago},
		{ID: 3, HabitacionID: 9, Rango: rango(10, 15), Estado: ReservaAprobada},
		{ID: 4, HabitacionID: 7, Rango: rango(1, 30), Estado: ReservaCancelada},
	}

	t.Run("franja libre", func(t *testing.T) {
		assert.True(t, HayDisponibilidad(7, rango(15, 20), existentes, EstadosBloqueantes()))
	})

	t.Run("choca con aprobada", func(t *testing.T) {
		assert.False(t, HayDisponibilidad(7, rango(12, 17), existentes, EstadosBloqueantes()))
	})

	t.Run("choca con pendiente de pago", func(t *testing.T) {
		assert.False(t, HayDisponibilidad(7, rango(22, 24), existentes, EstadosBloqueantes()))
	})

	t.Run("las canceladas no bloquean", func(t *testing.T) {
		assert.True(t, HayDisponibilidad(7, rango(16, 19), existentes, EstadosBloqueantes()))
	})

	t.Run("otra habitación no interfiere", func(t *testing.T) {
		assert.True(t, HayDisponibilidad(9, rango(20, 25), existentes, EstadosBloqueantes()))
	})

	t.Run("con estados de aprobación las pendientes no bloquean", func(t *testing.T) {
		assert.True(t, HayDisponibilidad(7, rango(20, 25), existentes, EstadosBloqueantesAprobacion()))
		assert.False(t, HayDisponibilidad(7, rango(10, 12), existentes, EstadosBloqueantesAprobacion()))
	})
}

func TestHayDisponibilidadExcluyendo(t *testing.T) {
	existentes := []Reserva{
		{ID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: ReservaAprobada},
	}

	// La propia reserva no cuenta contra sí misma al re-verificar
	assert.True(t, HayDisponibilidadExcluyendo(7, rango(10, 15), existentes, EstadosBloqueantesAprobacion(), 1))
	assert.False(t, HayDisponibilidadExcluyendo(7, rango(10, 15), existentes, EstadosBloqueantesAprobacion(), 2))
}
