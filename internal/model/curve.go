package model

import "time"

// Curve is a built liquidity curve together with the inputs it was built from.
type Curve struct {
	Pool              Pool             `json:"pool"`
	FixedTickArrays   int              `json:"fixed_tick_arrays"`
	DynamicTickArrays int              `json:"dynamic_tick_arrays"`
	Points            []LiquidityPoint `json:"points"`
	BuiltAt           time.Time        `json:"built_at"`
}
