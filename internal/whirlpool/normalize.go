package whirlpool

import (
	"errors"
	"fmt"
	"math/big"

	"lukechampine.com/uint128"

	"whirlpoolScope/internal/model"
)

// ErrMalformedRecord reports a tick array that cannot be decoded or reshaped.
var ErrMalformedRecord = errors.New("malformed tick array record")

// Normalize reshapes either tick array layout into a model.TickArray.
// All slots are kept, including those with zero liquidity net.
func Normalize(account TickArrayAccount) (model.TickArray, error) {
	switch acc := account.(type) {
	case *FixedTickArray:
		if acc == nil {
			return model.TickArray{}, fmt.Errorf("%w: nil fixed tick array", ErrMalformedRecord)
		}
		return normalizeFixed(acc)
	case *DynamicTickArray:
		if acc == nil {
			return model.TickArray{}, fmt.Errorf("%w: nil dynamic tick array", ErrMalformedRecord)
		}
		return normalizeDynamic(acc)
	default:
		return model.TickArray{}, fmt.Errorf("%w: unsupported tick array type %T", ErrMalformedRecord, account)
	}
}

func normalizeFixed(acc *FixedTickArray) (model.TickArray, error) {
	if len(acc.Ticks) != TickArraySize {
		return model.TickArray{}, fmt.Errorf("%w: fixed tick array %s has %d ticks", ErrMalformedRecord, acc.Address, len(acc.Ticks))
	}

	out := model.TickArray{
		Address:        acc.Address.String(),
		Whirlpool:      acc.Whirlpool.String(),
		StartTickIndex: acc.StartTickIndex,
	}
	for i, tick := range acc.Ticks {
		out.Ticks[i] = model.Tick{
			Initialized:    tick.Initialized,
			LiquidityNet:   copyInt(tick.LiquidityNet),
			LiquidityGross: tick.LiquidityGross.Big(),
		}
	}
	return out, nil
}

func normalizeDynamic(acc *DynamicTickArray) (model.TickArray, error) {
	if len(acc.Ticks) != TickArraySize {
		return model.TickArray{}, fmt.Errorf("%w: dynamic tick array %s has %d ticks", ErrMalformedRecord, acc.Address, len(acc.Ticks))
	}

	out := model.TickArray{
		Address:        acc.Address.String(),
		Whirlpool:      acc.Whirlpool.String(),
		StartTickIndex: acc.StartTickIndex,
	}
	for i, tick := range acc.Ticks {
		initialized := tick.Data != nil
		if initialized != bitSet(acc.TickBitmap, i) {
			return model.TickArray{}, fmt.Errorf("%w: dynamic tick array %s: tick %d disagrees with bitmap", ErrMalformedRecord, acc.Address, i)
		}
		if !initialized {
			out.Ticks[i] = model.Tick{LiquidityNet: new(big.Int), LiquidityGross: new(big.Int)}
			continue
		}
		out.Ticks[i] = model.Tick{
			Initialized:    true,
			LiquidityNet:   copyInt(tick.Data.LiquidityNet),
			LiquidityGross: tick.Data.LiquidityGross.Big(),
		}
	}
	return out, nil
}

func bitSet(bitmap uint128.Uint128, i int) bool {
	if i < 64 {
		return bitmap.Lo>>uint(i)&1 == 1
	}
	return bitmap.Hi>>uint(i-64)&1 == 1
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}
