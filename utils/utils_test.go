package utils_test

import (
	"errors"
	"math"
	"testing"

	"github.com/bvisness/wasm-read/utils"
	"github.com/stretchr/testify/require"
)

func TestInRange(t *testing.T) {
	require.True(t, utils.InRange[int64](0, math.MinInt32, math.MaxInt32))
	require.True(t, utils.InRange[int64](math.MinInt32, math.MinInt32, math.MaxInt32))
	require.False(t, utils.InRange[int64](math.MaxInt32+1, math.MinInt32, math.MaxInt32))
	require.False(t, utils.InRange("b", "c", "d"))
}

func TestOr(t *testing.T) {
	require.Equal(t, "info", utils.Or("", "info"))
	require.Equal(t, "debug", utils.Or("debug", "info"))
}

func TestMust(t *testing.T) {
	require.Equal(t, 3, utils.Must1(3, error(nil)))
	require.Panics(t, func() { utils.Must(errors.New("boom")) })
}
