package repository

import (
	"database/sql"
	"fmt"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

// requireRow convierte "cero filas afectadas" en un NotFound con mensaje claro.
func requireRow(result sql.Result, notFoundMsg string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error al verificar actualización: %w", err)
	}
	if rowsAffected == 0 {
		return failure.NotFound(notFoundMsg)
	}
	return nil
}
