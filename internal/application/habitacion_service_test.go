package application

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/cache"
	"github.com/gonzavillalba02/lenguajes-aurora-sistema-sub000/internal/domain"
)

// fakeCache guarda en memoria y devuelve cache.Nil en los misses, igual que
// el cliente de Redis real.
type fakeCache struct {
	datos map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{datos: make(map[string][]byte)}
}

func (f *fakeCache) Save(_ context.Context, key string, value any, _ int) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.datos[key] = data
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string, value any) error {
	data, ok := f.datos[key]
	if !ok {
		return cache.Nil
	}
	return json.Unmarshal(data, value)
}

func (f *fakeCache) Clear(_ context.Context, prefix string) error {
	for k := range f.datos {
		if strings.HasPrefix(k, prefix) {
			delete(f.datos, k)
		}
	}
	return nil
}

// contadorHabitacionRepo cuenta las lecturas que llegan hasta la base.
type contadorHabitacionRepo struct {
	*fakeHabitacionRepo
	lecturas int
}

func (c *contadorHabitacionRepo) GetAllRooms(ctx context.Context) ([]domain.Habitacion, error) {
	c.lecturas++
	return c.fakeHabitacionRepo.GetAllRooms(ctx)
}

func TestGetAllRoomsUsaCache(t *testing.T) {
	repo := &contadorHabitacionRepo{fakeHabitacionRepo: &fakeHabitacionRepo{habitaciones: map[int]domain.Habitacion{
		7: {ID: 7, Nombre: "Norte", Numero: "101", Activa: true, Disponible: true},
	}}}
	s := NewHabitacionService(repo, newFakeReservaRepo(), newFakeCache(), 60)
	ctx := context.Background()

	rooms, err := s.GetAllRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Equal(t, 1, repo.lecturas)

	// Segunda lectura servida desde cache
	_, err = s.GetAllRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lecturas)

	// Una escritura invalida el prefijo y la próxima lectura vuelve a la base
	require.NoError(t, s.CreateRoom(ctx, &domain.Habitacion{Nombre: "Sur", Numero: "102"}))
	_, err = s.GetAllRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lecturas)
}
