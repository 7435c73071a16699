package badgr

import (
	"context"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVector(dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = gofakeit.Float32Range(-1, 1)
	}
	return v
}

func TestVectorRepo(t *testing.T) {
	ctx := context.Background()
	r := New(testDB)
	t.Cleanup(func() { require.NoError(t, r.Drop()) })

	local := map[string][]float32{
		"casa":  randomVector(16),
		"perro": randomVector(16),
	}
	remote := map[string][]float32{
		"casa": randomVector(4),
	}
	require.NoError(t, r.SaveVectors(ctx, "local-ngram-16", local))
	require.NoError(t, r.SaveVectors(ctx, "remote-labse", remote))

	got, err := r.LoadVectors(ctx, "local-ngram-16")
	require.NoError(t, err)
	assert.Equal(t, local, got)

	got, err = r.LoadVectors(ctx, "remote-labse")
	require.NoError(t, err)
	assert.Equal(t, remote, got)

	// upsert
	local["casa"] = randomVector(16)
	require.NoError(t, r.SaveVectors(ctx, "local-ngram-16", map[string][]float32{"casa": local["casa"]}))
	got, err = r.LoadVectors(ctx, "local-ngram-16")
	require.NoError(t, err)
	assert.Equal(t, local, got)

	require.NoError(t, r.DropVectors(ctx, "remote-labse"))
	got, err = r.LoadVectors(ctx, "remote-labse")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.LoadVectors(ctx, "local-ngram-16")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestVectorRepo_UnknownNamespace(t *testing.T) {
	got, err := New(testDB).LoadVectors(context.Background(), "missing")
	require.NoError(t, err)
	assert.Empty(t, got)
}
