package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_RoundTrip(t *testing.T) {
	original := NewVector([]float32{1.5, -0.25, 0, 3})

	value, err := original.Value()
	require.NoError(t, err)
	assert.Equal(t, "[1.5,-0.25,0,3]", value)

	var scanned Vector
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original.Floats(), scanned.Floats())
	assert.Equal(t, 4, scanned.Dimension())
}

func TestVector_Scan(t *testing.T) {
	t.Run("bytes input", func(t *testing.T) {
		var v Vector
		require.NoError(t, v.Scan([]byte("[0.5,1]")))
		assert.Equal(t, []float32{0.5, 1}, v.Floats())
	})

	t.Run("empty literal", func(t *testing.T) {
		var v Vector
		require.NoError(t, v.Scan("[]"))
		assert.Empty(t, v.Floats())
		assert.Zero(t, v.Dimension())
	})

	t.Run("nil stays nil", func(t *testing.T) {
		var v Vector
		require.NoError(t, v.Scan(nil))
		assert.Nil(t, v.Floats())
	})

	t.Run("garbage rejected", func(t *testing.T) {
		var v Vector
		assert.Error(t, v.Scan("[1,abc]"))
	})

	t.Run("unsupported type rejected", func(t *testing.T) {
		var v Vector
		assert.Error(t, v.Scan(42))
	})
}

func TestVector_DefensiveCopies(t *testing.T) {
	src := []float32{1, 2, 3}
	v := NewVector(src)
	src[0] = 99
	assert.Equal(t, float32(1), v.Floats()[0])

	out := v.Floats()
	out[1] = 99
	assert.Equal(t, float32(2), v.Floats()[1])
}
