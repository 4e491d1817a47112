package curve

import (
	"math/big"
	"sort"

	"whirlpoolScope/internal/model"
)

// LiquidityAt returns the active liquidity at tick, zero below the first point.
func LiquidityAt(points []model.LiquidityPoint, tick int32) *big.Int {
	idx := sort.Search(len(points), func(i int) bool {
		return points[i].TickIndex > tick
	})
	if idx == 0 {
		return new(big.Int)
	}
	return new(big.Int).Set(points[idx-1].Liquidity)
}
