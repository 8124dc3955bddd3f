package metrics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatioJSON(t *testing.T) {
	defined, err := json.Marshal(NewRatio(0.25))
	require.NoError(t, err)
	assert.Equal(t, "0.25", string(defined))

	undefined, err := json.Marshal(UndefinedRatio())
	require.NoError(t, err)
	assert.Equal(t, "null", string(undefined))

	var r Ratio
	require.NoError(t, json.Unmarshal([]byte("null"), &r))
	assert.False(t, r.Valid())

	require.NoError(t, json.Unmarshal([]byte("-0.4"), &r))
	require.True(t, r.Valid())
	assert.InDelta(t, -0.4, r.Value(), 1e-9)
}

func TestRatioFloat64(t *testing.T) {
	assert.True(t, math.IsNaN(UndefinedRatio().Float64()))
	assert.Equal(t, 0.5, NewRatio(0.5).Float64())
}

func TestGrowth(t *testing.T) {
	g := growth(150, 100)
	require.True(t, g.Valid())
	assert.InDelta(t, 0.5, g.Value(), 1e-9)

	assert.False(t, growth(150, 0).Valid())

	zero := growth(100, 100)
	require.True(t, zero.Valid())
	assert.Zero(t, zero.Value())
}
