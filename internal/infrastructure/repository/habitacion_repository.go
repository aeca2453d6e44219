package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

type habitacionRepository struct {
	db *sql.DB
}

// NewHabitacionRepository creates a new instance of habitacionRepository
func NewHabitacionRepository(db *sql.DB) domain.HabitacionRepository {
	return &habitacionRepository{
		db: db,
	}
}

const habitacionColumns = `
	h.room_id,
	h.name,
	h.number,
	h.active,
	h.available,
	h.general_description,
	t.room_type_id,
	t.title,
	t.description,
	t.capacity,
	t.price
`

func scanHabitacion(row interface{ Scan(...any) error }) (*domain.Habitacion, error) {
	var h domain.Habitacion
	err := row.Scan(
		&h.ID,
		&h.Nombre,
		&h.Numero,
		&h.Activa,
		&h.Disponible,
		&h.DescripcionGeneral,
		&h.TipoHabitacion.ID,
		&h.TipoHabitacion.Titulo,
		&h.TipoHabitacion.Descripcion,
		&h.TipoHabitacion.Capacidad,
		&h.TipoHabitacion.Precio,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetAllRooms implements domain.HabitacionRepository
func (r *habitacionRepository) GetAllRooms(ctx context.Context) ([]domain.Habitacion, error) {
	query := `
		SELECT ` + habitacionColumns + `
		FROM room h
		INNER JOIN room_type t ON h.room_type_id = t.room_type_id
		ORDER BY h.room_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	var habitaciones []domain.Habitacion
	for rows.Next() {
		h, err := scanHabitacion(rows)
		if err != nil {
			return nil, err
		}
		habitaciones = append(habitaciones, *h)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return habitaciones, nil
}

// GetByID devuelve la habitación o nil sin error si no existe.
func (r *habitacionRepository) GetByID(ctx context.Context, id int) (*domain.Habitacion, error) {
	query := `
		SELECT ` + habitacionColumns + `
		FROM room h
		INNER JOIN room_type t ON h.room_type_id = t.room_type_id
		WHERE h.room_id = $1`

	h, err := scanHabitacion(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al obtener habitación: %w", err)
	}
	return h, nil
}

// GetAvailableRooms devuelve habitaciones abiertas sin reservas bloqueantes
// que se solapen con el rango pedido (comparación semiabierta).
func (r *habitacionRepository) GetAvailableRooms(ctx context.Context, rango domain.RangoFechas) ([]domain.Habitacion, error) {
	query := `
		SELECT ` + habitacionColumns + `
		FROM room h
		INNER JOIN room_type t ON h.room_type_id = t.room_type_id
		WHERE h.active = true
		  AND h.available = true
		  AND NOT EXISTS (
			SELECT 1
			FROM reservation rv
			WHERE rv.room_id = h.room_id
			  AND rv.status = ANY($3)
			  AND rv.check_in < $2
			  AND $1 < rv.check_out
		  )
		ORDER BY h.room_id`

	rows, err := r.db.QueryContext(ctx, query,
		rango.Inicio, rango.Fin, pq.Array(estadosToStrings(domain.EstadosBloqueantes())))
	if err != nil {
		return nil, fmt.Errorf("error al buscar habitaciones disponibles: %w", err)
	}
	defer rows.Close()

	var habitaciones []domain.Habitacion
	for rows.Next() {
		h, err := scanHabitacion(rows)
		if err != nil {
			return nil, err
		}
		habitaciones = append(habitaciones, *h)
	}
	return habitaciones, rows.Err()
}

// GetDisponibilidadFechas implementa domain.HabitacionRepository
func (r *habitacionRepository) GetDisponibilidadFechas(ctx context.Context, desde, hasta time.Time) ([]domain.DisponibilidadFecha, error) {
	query := `
		WITH RECURSIVE fechas AS (
			SELECT date(cast($1 as timestamp)) as fecha
			UNION ALL
			SELECT fecha + interval '1 day'
			FROM fechas
			WHERE fecha < date(cast($2 as timestamp))
		),
		habitaciones_abiertas AS (
			SELECT COUNT(*) as total
			FROM room
			WHERE active = true AND available = true
		)
		SELECT
			f.fecha,
			ha.total - COUNT(rv.reservation_id) AS libres
		FROM fechas f
		CROSS JOIN habitaciones_abiertas ha
		LEFT JOIN reservation rv
			ON rv.status = $3
			AND rv.check_in <= f.fecha
			AND f.fecha < rv.check_out
			AND rv.room_id IN (SELECT room_id FROM room WHERE active = true AND available = true)
		GROUP BY f.fecha, ha.total
		ORDER BY f.fecha`

	rows, err := r.db.QueryContext(ctx, query, desde, hasta, string(domain.ReservaAprobada))
	if err != nil {
		return nil, fmt.Errorf("error al consultar disponibilidad por fecha: %w", err)
	}
	defer rows.Close()

	var disponibilidad []domain.DisponibilidadFecha
	for rows.Next() {
		var d domain.DisponibilidadFecha
		var libres int
		if err := rows.Scan(&d.Fecha, &libres); err != nil {
			return nil, fmt.Errorf("error al escanear disponibilidad: %w", err)
		}
		d.Habitaciones = libres
		d.Disponible = libres > 0
		disponibilidad = append(disponibilidad, d)
	}
	return disponibilidad, rows.Err()
}

// GetFechasBloqueadas devuelve las fechas del rango sin ninguna habitación libre.
func (r *habitacionRepository) GetFechasBloqueadas(ctx context.Context, desde, hasta time.Time) (*domain.FechasBloqueadas, error) {
	disponibilidad, err := r.GetDisponibilidadFechas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	bloqueadas := &domain.FechasBloqueadas{FechasNoDisponibles: []time.Time{}}
	for _, d := range disponibilidad {
		if !d.Disponible {
			bloqueadas.FechasNoDisponibles = append(bloqueadas.FechasNoDisponibles, d.Fecha)
		}
	}
	return bloqueadas, nil
}

// GetRoomTypes returns all room types in the system
func (r *habitacionRepository) GetRoomTypes(ctx context.Context) ([]domain.TipoHabitacion, error) {
	query := `
		SELECT room_type_id, title, description, capacity, price
		FROM room_type
		ORDER BY room_type_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error al consultar tipos de habitación: %w", err)
	}
	defer rows.Close()

	var tipos []domain.TipoHabitacion
	for rows.Next() {
		var t domain.TipoHabitacion
		if err := rows.Scan(&t.ID, &t.Titulo, &t.Descripcion, &t.Capacidad, &t.Precio); err != nil {
			return nil, err
		}
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}

// CreateRoom crea una habitación nueva
func (r *habitacionRepository) CreateRoom(ctx context.Context, h *domain.Habitacion) error {
	query := `
		INSERT INTO room (name, number, active, available, general_description, room_type_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING room_id`

	err := r.db.QueryRowContext(ctx, query,
		h.Nombre, h.Numero, h.Activa, h.Disponible, h.DescripcionGeneral, h.TipoHabitacion.ID,
	).Scan(&h.ID)
	if err != nil {
		return fmt.Errorf("error al crear habitación: %w", err)
	}
	return nil
}

// UpdateRoom actualiza nombre, número, descripción y tipo
func (r *habitacionRepository) UpdateRoom(ctx context.Context, h *domain.Habitacion) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE room
		SET name = $1, number = $2, general_description = $3, room_type_id = $4
		WHERE room_id = $5`,
		h.Nombre, h.Numero, h.DescripcionGeneral, h.TipoHabitacion.ID, h.ID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar habitación: %w", err)
	}
	return requireRow(result, fmt.Sprintf("habitación %d no encontrada", h.ID))
}

// SetDisponible prende o apaga el bloqueo operativo de la habitación
func (r *habitacionRepository) SetDisponible(ctx context.Context, id int, disponible bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE room SET available = $1 WHERE room_id = $2`, disponible, id)
	if err != nil {
		return fmt.Errorf("error al actualizar disponibilidad: %w", err)
	}
	return requireRow(result, fmt.Sprintf("habitación %d no encontrada", id))
}

// SoftDelete marca la habitación como eliminada (activa=false, disponible=false)
func (r *habitacionRepository) SoftDelete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE room SET active = false, available = false WHERE room_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error al eliminar habitación: %w", err)
	}
	return requireRow(result, fmt.Sprintf("habitación %d no encontrada", id))
}

// CreateRoomType crea un tipo de habitación
func (r *habitacionRepository) CreateRoomType(ctx context.Context, t *domain.TipoHabitacion) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO room_type (title, description, capacity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING room_type_id`,
		t.Titulo, t.Descripcion, t.Capacidad, t.Precio,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("error al crear tipo de habitación: %w", err)
	}
	return nil
}

// UpdateRoomType actualiza un tipo de habitación
func (r *habitacionRepository) UpdateRoomType(ctx context.Context, t *domain.TipoHabitacion) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE room_type
		SET title = $1, description = $2, capacity = $3, price = $4
		WHERE room_type_id = $5`,
		t.Titulo, t.Descripcion, t.Capacidad, t.Precio, t.ID,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar tipo de habitación: %w", err)
	}
	return requireRow(result, fmt.Sprintf("tipo de habitación %d no encontrado", t.ID))
}
