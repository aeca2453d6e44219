package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

type reservaRepository struct {
	db *sql.DB
}

// NewReservaRepository crea una nueva instancia del repositorio de reservas
func NewReservaRepository(db *sql.DB) domain.ReservaRepository {
	return &reservaRepository{db: db}
}

const reservaColumns = `
	r.reservation_id,
	r.person_id,
	r.room_id,
	r.check_in,
	r.check_out,
	r.status,
	r.notes,
	r.created_by,
	r.approved_by,
	r.creation_date
`

func scanReserva(row interface{ Scan(...any) error }) (*domain.Reserva, error) {
	reserva := &domain.Reserva{}
	var notes sql.NullString
	var createdBy, approvedBy sql.NullInt64

	err := row.Scan(
		&reserva.ID,
		&reserva.PersonID,
		&reserva.HabitacionID,
		&reserva.Rango.Inicio,
		&reserva.Rango.Fin,
		&reserva.Estado,
		&notes,
		&createdBy,
		&approvedBy,
		&reserva.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}

	reserva.Notas = notes.String
	if createdBy.Valid {
		v := int(createdBy.Int64)
		reserva.CreadaPor = &v
	}
	if approvedBy.Valid {
		v := int(approvedBy.Int64)
		reserva.AprobadaPor = &v
	}
	return reserva, nil
}

func estadosToStrings(estados []domain.EstadoReserva) []string {
	out := make([]string, len(estados))
	for i, e := range estados {
		out[i] = string(e)
	}
	return out
}

// GetByID obtiene una reserva por su ID; devuelve nil sin error si no existe.
func (r *reservaRepository) GetByID(ctx context.Context, id int) (*domain.Reserva, error) {
	query := `SELECT ` + reservaColumns + ` FROM reservation r WHERE r.reservation_id = $1`

	reserva, err := scanReserva(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error al obtener reserva: %w", err)
	}
	return reserva, nil
}

func (r *reservaRepository) list(ctx context.Context, query string, args ...any) ([]domain.Reserva, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error al consultar reservas: %w", err)
	}
	defer rows.Close()

	var reservas []domain.Reserva
	for rows.Next() {
		reserva, err := scanReserva(rows)
		if err != nil {
			return nil, fmt.Errorf("error al escanear reserva: %w", err)
		}
		reservas = append(reservas, *reserva)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reservas, nil
}

// ListByHabitacion obtiene todas las reservas de una habitación.
func (r *reservaRepository) ListByHabitacion(ctx context.Context, habitacionID int) ([]domain.Reserva, error) {
	query := `SELECT ` + reservaColumns + `
		FROM reservation r
		WHERE r.room_id = $1
		ORDER BY r.check_in`
	return r.list(ctx, query, habitacionID)
}

// ListByHabitacionYEstados filtra por habitación y conjunto de estados.
func (r *reservaRepository) ListByHabitacionYEstados(ctx context.Context, habitacionID int, estados []domain.EstadoReserva) ([]domain.Reserva, error) {
	query := `SELECT ` + reservaColumns + `
		FROM reservation r
		WHERE r.room_id = $1 AND r.status = ANY($2)
		ORDER BY r.check_in`
	return r.list(ctx, query, habitacionID, pq.Array(estadosToStrings(estados)))
}

// ListAprobadasEnFecha devuelve las reservas aprobadas cuyo rango contiene la
// fecha (check_in <= fecha < check_out).
func (r *reservaRepository) ListAprobadasEnFecha(ctx context.Context, fecha time.Time) ([]domain.Reserva, error) {
	query := `SELECT ` + reservaColumns + `
		FROM reservation r
		WHERE r.status = $1 AND r.check_in <= $2 AND $2 < r.check_out`
	return r.list(ctx, query, string(domain.ReservaAprobada), domain.NormalizarFecha(fecha))
}

// Crear inserta la reserva sin chequeo de disponibilidad. Lo usa únicamente el
// flujo público heredado; todos los demás caminos pasan por CrearConChequeo.
func (r *reservaRepository) Crear(ctx context.Context, reserva *domain.Reserva) error {
	query := `
		INSERT INTO reservation (person_id, room_id, check_in, check_out, status, notes, created_by, approved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING reservation_id, creation_date
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		reserva.PersonID,
		reserva.HabitacionID,
		reserva.Rango.Inicio,
		reserva.Rango.Fin,
		reserva.Estado,
		nullString(reserva.Notas),
		nullInt(reserva.CreadaPor),
		nullInt(reserva.AprobadaPor),
	).Scan(&reserva.ID, &reserva.FechaCreacion)

	if err != nil {
		return fmt.Errorf("error al crear reserva: %w", err)
	}
	return nil
}

// CrearConChequeo inserta la reserva en una sola transacción que primero
// bloquea la fila de la habitación (SELECT ... FOR UPDATE) y después cuenta
// solapamientos contra los estados bloqueantes. Dos requests concurrentes para
// la misma habitación serializan en el lock: exactamente una gana.
func (r *reservaRepository) CrearConChequeo(ctx context.Context, reserva *domain.Reserva, bloqueantes []domain.EstadoReserva) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	var roomID int
	err = tx.QueryRowContext(ctx,
		`SELECT room_id FROM room WHERE room_id = $1 FOR UPDATE`,
		reserva.HabitacionID,
	).Scan(&roomID)
	if err == sql.ErrNoRows {
		return failure.NotFound(fmt.Sprintf("habitación %d no encontrada", reserva.HabitacionID))
	}
	if err != nil {
		return fmt.Errorf("error al bloquear habitación: %w", err)
	}

	var conflictos int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM reservation
		WHERE room_id = $1
		  AND status = ANY($2)
		  AND check_in < $4
		  AND $3 < check_out`,
		reserva.HabitacionID,
		pq.Array(estadosToStrings(bloqueantes)),
		reserva.Rango.Inicio,
		reserva.Rango.Fin,
	).Scan(&conflictos)
	if err != nil {
		return fmt.Errorf("error al verificar disponibilidad: %w", err)
	}
	if conflictos > 0 {
		return failure.Conflict(fmt.Sprintf(
			"la habitación %d ya tiene una reserva que se solapa con las fechas pedidas", reserva.HabitacionID))
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservation (person_id, room_id, check_in, check_out, status, notes, created_by, approved_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING reservation_id, creation_date`,
		reserva.PersonID,
		reserva.HabitacionID,
		reserva.Rango.Inicio,
		reserva.Rango.Fin,
		reserva.Estado,
		nullString(reserva.Notas),
		nullInt(reserva.CreadaPor),
		nullInt(reserva.AprobadaPor),
	).Scan(&reserva.ID, &reserva.FechaCreacion)
	if err != nil {
		return fmt.Errorf("error al crear reserva: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}
	return nil
}

// ActualizarEstado cambia el estado con compare-and-set sobre el estado
// esperado. Cero filas afectadas significa que otro operador se adelantó.
func (r *reservaRepository) ActualizarEstado(ctx context.Context, id int, esperado, nuevo domain.EstadoReserva, actorID int) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reservation
		SET status = $1, approved_by = $2
		WHERE reservation_id = $3 AND status = $4`,
		nuevo, actorID, id, esperado,
	)
	if err != nil {
		return fmt.Errorf("error al actualizar estado de reserva: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar actualización: %w", err)
	}
	if rowsAffected == 0 {
		return failure.Conflict(fmt.Sprintf("la reserva %d cambió de estado, volvé a cargarla", id))
	}
	return nil
}

// AprobarConChequeo aprueba dentro de una transacción: bloquea la habitación,
// re-verifica solapamiento solo contra reservas Aprobadas (excluyéndose a sí
// misma) y escribe el estado con compare-and-set.
func (r *reservaRepository) AprobarConChequeo(ctx context.Context, id int, esperado domain.EstadoReserva, actorID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error al iniciar transacción: %w", err)
	}
	defer tx.Rollback()

	var roomID int
	var checkIn, checkOut time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT room_id, check_in, check_out FROM reservation WHERE reservation_id = $1`,
		id,
	).Scan(&roomID, &checkIn, &checkOut)
	if err == sql.ErrNoRows {
		return failure.NotFound(fmt.Sprintf("reserva %d no encontrada", id))
	}
	if err != nil {
		return fmt.Errorf("error al obtener reserva: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `SELECT room_id FROM room WHERE room_id = $1 FOR UPDATE`, roomID); err != nil {
		return fmt.Errorf("error al bloquear habitación: %w", err)
	}

	var conflictos int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM reservation
		WHERE room_id = $1
		  AND reservation_id <> $2
		  AND status = $3
		  AND check_in < $5
		  AND $4 < check_out`,
		roomID, id, string(domain.ReservaAprobada), checkIn, checkOut,
	).Scan(&conflictos)
	if err != nil {
		return fmt.Errorf("error al verificar disponibilidad: %w", err)
	}
	if conflictos > 0 {
		return failure.Conflict(fmt.Sprintf(
			"no se puede aprobar la reserva %d: otra reserva aprobada se solapa en la misma habitación", id))
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE reservation
		SET status = $1, approved_by = $2
		WHERE reservation_id = $3 AND status = $4`,
		string(domain.ReservaAprobada), actorID, id, esperado,
	)
	if err != nil {
		return fmt.Errorf("error al aprobar reserva: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar aprobación: %w", err)
	}
	if rowsAffected == 0 {
		return failure.Conflict(fmt.Sprintf("la reserva %d cambió de estado, volvé a cargarla", id))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error al confirmar transacción: %w", err)
	}
	return nil
}

// CancelarPendientesVencidas cancela reservas pendientes cuyo check-in ya pasó.
func (r *reservaRepository) CancelarPendientesVencidas(ctx context.Context, hoy time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reservation
		SET status = $1
		WHERE status = ANY($2) AND check_in < $3`,
		string(domain.ReservaCancelada),
		pq.Array(estadosToStrings([]domain.EstadoReserva{
			domain.ReservaPendienteVerificacion,
			domain.ReservaPendientePago,
		})),
		domain.NormalizarFecha(hoy),
	)
	if err != nil {
		return 0, fmt.Errorf("error al cancelar reservas vencidas: %w", err)
	}
	return result.RowsAffected()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
