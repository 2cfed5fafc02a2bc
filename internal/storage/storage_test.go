package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStorage(t *testing.T, s Storage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "session")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "session", `{"auth_token":"u1"}`))
	require.NoError(t, s.Set(ctx, "swiftpost_form_paquete", `{"peso":2}`))
	require.NoError(t, s.Set(ctx, "swiftpost_form_sede", `{}`))

	v, ok, err := s.Get(ctx, "session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"auth_token":"u1"}`, v)

	require.NoError(t, s.Set(ctx, "session", `{"auth_token":"u2"}`))
	v, _, _ = s.Get(ctx, "session")
	assert.Equal(t, `{"auth_token":"u2"}`, v)

	keys, err := s.Keys(ctx, "swiftpost_form_")
	require.NoError(t, err)
	assert.Equal(t, []string{"swiftpost_form_paquete", "swiftpost_form_sede"}, keys)

	require.NoError(t, s.Delete(ctx, "session"))
	_, ok, err = s.Get(ctx, "session")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting a missing key is not an error
	require.NoError(t, s.Delete(ctx, "session"))
}

func TestMemory(t *testing.T) {
	s := NewMemory()
	assert.True(t, s.Available())
	exerciseStorage(t, s)
}

func TestBadger(t *testing.T) {
	s, err := OpenBadger("")
	require.NoError(t, err)
	defer s.Close()

	assert.True(t, s.Available())
	exerciseStorage(t, s)
}

func TestBadger_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := OpenBadger(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "session", "v"))
	require.NoError(t, s.Close())

	s, err = OpenBadger(dir)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, "session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestNoop(t *testing.T) {
	s := NewNoop()
	ctx := context.Background()

	assert.False(t, s.Available())
	require.NoError(t, s.Set(ctx, "session", "v"))
	_, ok, err := s.Get(ctx, "session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `swiftpost\_form\_`, escapeLike("swiftpost_form_"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
}
