package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/failure"
)

// fakeConsultaRepo reproduce el compare-and-set del repositorio real:
// Resolver solo escribe si la consulta sigue pendiente.
type fakeConsultaRepo struct {
	seq       int
	consultas map[int]*domain.Consulta
}

func newFakeConsultaRepo() *fakeConsultaRepo {
	return &fakeConsultaRepo{consultas: make(map[int]*domain.Consulta)}
}

func (f *fakeConsultaRepo) Create(_ context.Context, c *domain.Consulta) error {
	f.seq++
	c.ID = f.seq
	c.FechaEnvio = time.Now().UTC()
	copia := *c
	f.consultas[c.ID] = &copia
	return nil
}

func (f *fakeConsultaRepo) GetByID(_ context.Context, id int) (*domain.Consulta, error) {
	c, ok := f.consultas[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (f *fakeConsultaRepo) List(_ context.Context) ([]domain.Consulta, error) {
	out := make([]domain.Consulta, 0, len(f.consultas))
	for _, c := range f.consultas {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeConsultaRepo) Resolver(_ context.Context, id, operadorID int) error {
	c, ok := f.consultas[id]
	if !ok || c.Estado != domain.ConsultaPendiente {
		return failure.Conflict(fmt.Sprintf("la consulta %d ya fue resuelta", id))
	}
	ahora := time.Now().UTC()
	c.Estado = domain.ConsultaResuelta
	c.ResueltaPor = &operadorID
	c.FechaRespuesta = &ahora
	return nil
}

func nuevoConsultaServicio() (*ConsultaService, *fakeConsultaRepo) {
	repo := newFakeConsultaRepo()
	return NewConsultaService(repo, newFakePersonRepo()), repo
}

func TestCrearConsulta(t *testing.T) {
	s, _ := nuevoConsultaServicio()
	ctx := context.Background()

	consulta, err := s.Crear(ctx, datosCliente("ana@mail.com"), "¿Tienen cochera?")
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultaPendiente, consulta.Estado)
	assert.NotZero(t, consulta.PersonID)
}

func TestCrearConsultaValidaDatos(t *testing.T) {
	s, _ := nuevoConsultaServicio()
	ctx := context.Background()

	_, err := s.Crear(ctx, datosCliente("ana@mail.com"), "")
	assert.Equal(t, 400, failure.GetCode(err))

	malos := DatosPersona{Name: "A", Surname: "García", Email: "no-es-un-email"}
	_, err = s.Crear(ctx, malos, "¿Tienen cochera?")
	require.Error(t, err)
	assert.Equal(t, 400, failure.GetCode(err))
	assert.Contains(t, err.Error(), "email")
}

func TestResolverConsultaEsUnicaEIrreversible(t *testing.T) {
	s, repo := nuevoConsultaServicio()
	ctx := context.Background()

	consulta, err := s.Crear(ctx, datosCliente("ana@mail.com"), "¿Tienen cochera?")
	require.NoError(t, err)

	require.NoError(t, s.Resolver(ctx, 5, consulta.ID))

	resuelta, err := repo.GetByID(ctx, consulta.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ConsultaResuelta, resuelta.Estado)
	require.NotNil(t, resuelta.ResueltaPor)
	assert.Equal(t, 5, *resuelta.ResueltaPor)
	assert.NotNil(t, resuelta.FechaRespuesta)

	// Resolver de nuevo, incluso con otro operador, es conflicto
	err = s.Resolver(ctx, 9, consulta.ID)
	require.Error(t, err)
	assert.True(t, failure.IsConflict(err))

	err = s.Resolver(ctx, 5, 999)
	assert.True(t, failure.IsNotFound(err))
}
