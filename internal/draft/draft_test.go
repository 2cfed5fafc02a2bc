package draft

import (
	"context"
	"testing"

	"swiftpost/internal/logger"
	"swiftpost/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paqueteForm struct {
	Peso      string `json:"peso"`
	Tamano    string `json:"tamaño"`
	Contenido string `json:"contenido"`
	Fragil    bool   `json:"fragil"`
}

func TestStore_RoundTripUntilSubmit(t *testing.T) {
	ctx := context.Background()
	s := NewStore(storage.NewMemory(), logger.NewNop())

	entered := paqueteForm{Peso: "2.5", Tamano: "mediano", Contenido: "libros", Fragil: true}
	require.NoError(t, s.Save(ctx, "paquete", entered))
	assert.True(t, s.Has(ctx, "paquete"))

	var reopened paqueteForm
	ok, err := s.Load(ctx, "paquete", &reopened)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entered, reopened)

	require.NoError(t, s.Clear(ctx, "paquete"))

	var blank paqueteForm
	ok, err = s.Load(ctx, "paquete", &blank)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, paqueteForm{}, blank)
}

func TestStore_CorruptDraftIsAbsent(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, KeyPrefix+"cliente", "{broken"))
	s := NewStore(mem, logger.NewNop())

	var out map[string]interface{}
	ok, err := s.Load(ctx, "cliente", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.Has(ctx, "cliente"))
}

func TestStore_ClearAllOnlyTouchesDrafts(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, "session", `{"auth_token":"u1"}`))
	s := NewStore(mem, logger.NewNop())

	require.NoError(t, s.Save(ctx, "sede", map[string]string{"nombre": "Norte"}))
	require.NoError(t, s.Save(ctx, "empleado", map[string]string{"nombres": "Ana"}))

	forms, err := s.Forms(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sede", "empleado"}, forms)

	require.NoError(t, s.ClearAll(ctx))
	forms, err = s.Forms(ctx)
	require.NoError(t, err)
	assert.Empty(t, forms)

	_, ok, _ := mem.Get(ctx, "session")
	assert.True(t, ok)
}

func TestStore_RejectsEmptyFormName(t *testing.T) {
	s := NewStore(storage.NewMemory(), logger.NewNop())
	assert.ErrorIs(t, s.Save(context.Background(), "", 1), ErrEmptyForm)
}
