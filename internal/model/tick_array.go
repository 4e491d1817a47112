package model

import "math/big"

// TickArraySize is the number of tick slots in one tick array.
const TickArraySize = 88

// Tick is one slot of a normalized tick array.
type Tick struct {
	Initialized    bool     `json:"initialized"`
	LiquidityNet   *big.Int `json:"liquidity_net"`
	LiquidityGross *big.Int `json:"liquidity_gross"`
}

// TickArray is the uniform shape both on-chain tick array layouts are normalized into.
// Slot i covers tick StartTickIndex + i*tickSpacing.
type TickArray struct {
	Address        string              `json:"address"`
	Whirlpool      string              `json:"whirlpool"`
	StartTickIndex int32               `json:"start_tick_index"`
	Ticks          [TickArraySize]Tick `json:"ticks"`
}
