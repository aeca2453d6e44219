package failure

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, GetCode(BadRequest("fechas inválidas")))
	assert.Equal(t, http.StatusNotFound, GetCode(NotFound("no existe")))
	assert.Equal(t, http.StatusConflict, GetCode(Conflict("franja tomada")))
	assert.Equal(t, http.StatusUnauthorized, GetCode(Unauthorized("sin token")))
	assert.Equal(t, http.StatusForbidden, GetCode(Forbidden("solo admin")))
	assert.Equal(t, http.StatusInternalServerError, GetCode(InternalError(errors.New("se cayó la base"))))

	// Un error cualquiera mapea a 500
	assert.Equal(t, http.StatusInternalServerError, GetCode(errors.New("otro")))
}

func TestGetCodeConWrap(t *testing.T) {
	// El código sobrevive al wrapping con %w
	envuelto := fmt.Errorf("creando reserva: %w", Conflict("franja tomada"))
	assert.Equal(t, http.StatusConflict, GetCode(envuelto))
	assert.True(t, IsConflict(envuelto))
}

func TestInternalErrorNil(t *testing.T) {
	assert.Nil(t, InternalError(nil))
}

func TestHelpers(t *testing.T) {
	assert.True(t, IsConflict(Conflict("x")))
	assert.False(t, IsConflict(NotFound("x")))
	assert.True(t, IsNotFound(NotFound("x")))
	assert.False(t, IsNotFound(errors.New("x")))
}

func TestMensaje(t *testing.T) {
	err := Conflict("la habitación ya está reservada")
	assert.Equal(t, "la habitación ya está reservada", err.Error())
}
