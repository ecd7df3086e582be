package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStateBackend_PutGetDelete(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	backend := NewSQLiteStateBackend(db)
	ctx := context.Background()

	_, found, err := backend.Get(ctx, "circle")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, backend.Put(ctx, "circle", []byte(`{"name":"Johnsons"}`)))
	require.NoError(t, backend.Put(ctx, "circle", []byte(`{"name":"Smiths"}`)))

	raw, found, err := backend.Get(ctx, "circle")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"name":"Smiths"}`, string(raw))

	require.NoError(t, backend.Delete(ctx, "circle"))
	_, found, err = backend.Get(ctx, "circle")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSQLiteStateBackend_KeysAreIndependent(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	backend := NewSQLiteStateBackend(db)
	ctx := context.Background()

	require.NoError(t, backend.Put(ctx, "theme", []byte(`"dark"`)))
	require.NoError(t, backend.Put(ctx, "ai_plan", []byte(`null`)))
	require.NoError(t, backend.Delete(ctx, "ai_plan"))

	raw, found, err := backend.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `"dark"`, string(raw))
}
