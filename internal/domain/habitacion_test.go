package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProyectarEstado(t *testing.T) {
	aprobadaHoy := []Reserva{
		{ID: 1, HabitacionID: 7, Rango: rango(10, 15), Estado: ReservaAprobada},
	}

	t.Run("libre sin reservas", func(t *testing.T) {
		h := Habitacion{ID: 7, Activa: true, Disponible: true}
		assert.Equal(t, HabitacionLibre, ProyectarEstado(h, nil, fecha(12)))
	})

	t.Run("ocupada con aprobada que cubre la fecha", func(t *testing.T) {
		h := Habitacion{ID: 7, Activa: true, Disponible: true}
		assert.Equal(t, HabitacionOcupada, ProyectarEstado(h, aprobadaHoy, fecha(12)))
	})

	t.Run("libre el día del checkout", func(t *testing.T) {
		h := Habitacion{ID: 7, Activa: true, Disponible: true}
		assert.Equal(t, HabitacionLibre, ProyectarEstado(h, aprobadaHoy, fecha(15)))
	})

	t.Run("las pendientes no ocupan", func(t *testing.T) {
		h := Habitacion{ID: 7, Activa: true, Disponible: true}
		pendiente := []Reserva{
			{ID: 2, HabitacionID: 7, Rango: rango(10, 15), Estado: ReservaPendientePago},
		}
		assert.Equal(t, HabitacionLibre, ProyectarEstado(h, pendiente, fecha(12)))
	})

	t.Run("cerrada con un flag apagado", func(t *testing.T) {
		assert.Equal(t, HabitacionCerrada,
			ProyectarEstado(Habitacion{ID: 7, Activa: true, Disponible: false}, nil, fecha(12)))
		assert.Equal(t, HabitacionCerrada,
			ProyectarEstado(Habitacion{ID: 7, Activa: false, Disponible: true}, nil, fecha(12)))
	})

	t.Run("cerrada gana sobre ocupada", func(t *testing.T) {
		h := Habitacion{ID: 7, Activa: true, Disponible: false}
		assert.Equal(t, HabitacionCerrada, ProyectarEstado(h, aprobadaHoy, fecha(12)))
	})

	t.Run("eliminada gana sobre todo", func(t *testing.T) {
		h := Habitacion{ID: 7, Activa: false, Disponible: false}
		assert.Equal(t, HabitacionEliminada, ProyectarEstado(h, aprobadaHoy, fecha(12)))
	})

	t.Run("reserva de otra habitación no ocupa", func(t *testing.T) {
		h := Habitacion{ID: 9, Activa: true, Disponible: true}
		assert.Equal(t, HabitacionLibre, ProyectarEstado(h, aprobadaHoy, fecha(12)))
	})
}

func TestAceptaReservas(t *testing.T) {
	assert.True(t, Habitacion{Activa: true, Disponible: true}.AceptaReservas())
	assert.False(t, Habitacion{Activa: true, Disponible: false}.AceptaReservas())
	assert.False(t, Habitacion{Activa: false, Disponible: true}.AceptaReservas())
	assert.False(t, Habitacion{Activa: false, Disponible: false}.AceptaReservas())
}
