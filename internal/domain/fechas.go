package domain

import "time"

// RangoFechas representa un rango de fechas semiabierto [Inicio, Fin):
// la fecha de entrada está incluida y la fecha de salida excluida
// (la mañana del checkout la habitación ya queda libre).
type RangoFechas struct {
	Inicio time.Time `json:"inicio"`
	Fin    time.Time `json:"fin"`
}

// NuevoRangoFechas construye un rango normalizando ambas fechas a medianoche.
func NuevoRangoFechas(inicio, fin time.Time) RangoFechas {
	return RangoFechas{
		Inicio: NormalizarFecha(inicio),
		Fin:    NormalizarFecha(fin),
	}
}

// Valido indica si el rango cubre al menos una noche facturable.
func (r RangoFechas) Valido() bool {
	return r.Inicio.Before(r.Fin)
}

// Solapa determina si dos rangos semiabiertos se superponen.
// Tocar bordes no cuenta: checkout a la mañana = checkin a la mañana está permitido.
func (r RangoFechas) Solapa(otro RangoFechas) bool {
	return r.Inicio.Before(otro.Fin) && otro.Inicio.Before(r.Fin)
}

// Contiene indica si una fecha cae dentro del rango (Inicio <= fecha < Fin).
func (r RangoFechas) Contiene(fecha time.Time) bool {
	return !fecha.Before(r.Inicio) && fecha.Before(r.Fin)
}

// Noches devuelve la cantidad de noches facturables del rango.
func (r RangoFechas) Noches() int {
	return int(r.Fin.Sub(r.Inicio).Hours() / 24)
}

// RangoDia devuelve el rango [día 00:00, día siguiente 00:00) para consultas
// de ocupación del tipo "¿está ocupada hoy?".
func RangoDia(fecha time.Time) RangoFechas {
	inicio := NormalizarFecha(fecha)
	return RangoFechas{Inicio: inicio, Fin: inicio.AddDate(0, 0, 1)}
}

// NormalizarFecha descarta la hora dejando la fecha a medianoche UTC.
func NormalizarFecha(fecha time.Time) time.Time {
	return time.Date(fecha.Year(), fecha.Month(), fecha.Day(), 0, 0, 0, 0, time.UTC)
}
