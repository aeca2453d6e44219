package domain

// HayDisponibilidad decide si la franja candidata está libre para la habitación,
// considerando únicamente las reservas existentes en alguno de los estados
// bloqueantes. Es una función pura de sus entradas: sin reloj ni estado global,
// para que las capas de presentación y de escritura compartan exactamente la
// misma semántica de solapamiento.
func HayDisponibilidad(habitacionID int, candidato RangoFechas, existentes []Reserva, bloqueantes []EstadoReserva) bool {
	return HayDisponibilidadExcluyendo(habitacionID, candidato, existentes, bloqueantes, 0)
}

// HayDisponibilidadExcluyendo es la variante usada al aprobar: la propia reserva
// se excluye de la verificación pasando su ID (0 = no excluir ninguna).
func HayDisponibilidadExcluyendo(habitacionID int, candidato RangoFechas, existentes []Reserva, bloqueantes []EstadoReserva, excluirID int) bool {
	bloqueante := make(map[EstadoReserva]bool, len(bloqueantes))
	for _, e := range bloqueantes {
		bloqueante[e] = true
	}

	for _, r := range existentes {
		if r.HabitacionID != habitacionID {
			continue
		}
		if excluirID != 0 && r.ID == excluirID {
			continue
		}
		if !bloqueante[r.Estado] {
			continue
		}
		if r.Rango.Solapa(candidato) {
			return false
		}
	}
	return true
}
