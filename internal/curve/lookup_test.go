package curve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"whirlpoolScope/internal/model"
)

func TestLiquidityAt(t *testing.T) {
	points, err := Build(8, []model.TickArray{
		newTickArray(0, map[int]int64{0: 100, 10: 50}),
		newTickArray(704, map[int]int64{0: -150}),
	})
	require.NoError(t, err)

	cases := []struct {
		tick int32
		want string
	}{
		{-1, "0"},
		{0, "100"},
		{79, "100"},
		{80, "150"},
		{703, "150"},
		{704, "0"},
		{100000, "0"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, LiquidityAt(points, tc.tick).String(), "tick %d", tc.tick)
	}

	require.Equal(t, "0", LiquidityAt(nil, 5).String())
}
