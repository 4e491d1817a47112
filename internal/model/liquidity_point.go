package model

import "math/big"

// LiquidityPoint is a step of the liquidity curve: Liquidity is active from TickIndex
// up to the next point's TickIndex.
type LiquidityPoint struct {
	TickIndex int32    `json:"tick_index"`
	Liquidity *big.Int `json:"liquidity"`
}
