package repository

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorEncoding(t *testing.T) {
	v := []float32{0, 1, -1, 0.5, math.MaxFloat32, float32(math.Inf(-1))}
	got, err := DecodeVector(EncodeVector(v))
	require.NoError(t, err)
	assert.Equal(t, v, got)

	got, err = DecodeVector(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = DecodeVector([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrCorruptVector)
}
