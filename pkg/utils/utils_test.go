package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateIDMonotonic(t *testing.T) {
	require.NoError(t, InitSnowflake(3))
	prev := GenerateID()
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)
	require.True(t, CheckPassword(hash, "s3cret"))
	require.False(t, CheckPassword(hash, "guess"))
}

func TestTransfer(t *testing.T) {
	require.Equal(t, int64(12), Transfer(float64(12)))
	require.Equal(t, int64(12), Transfer("12"))
	require.Equal(t, int64(12), Transfer(json.Number("12")))
	require.Equal(t, int64(-1), Transfer("abc"))
	require.Equal(t, int64(-1), Transfer(nil))

	id, ok := ParseID("42")
	require.True(t, ok)
	require.Equal(t, int64(42), id)
	_, ok = ParseID("0")
	require.False(t, ok)
	_, ok = ParseID("x")
	require.False(t, ok)
}
