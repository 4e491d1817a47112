package curve

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"sort"

	"whirlpoolScope/internal/model"
)

var (
	// ErrInvariantViolation reports tick arrays that cannot form a single curve.
	ErrInvariantViolation = errors.New("tick array invariant violation")
	// ErrDuplicateRange reports two tick arrays with the same start tick index.
	ErrDuplicateRange = fmt.Errorf("%w: duplicate tick array range", ErrInvariantViolation)
)

// Build orders the tick arrays of one pool by start tick index and sweeps them into
// a cumulative liquidity curve. Only ticks with a non-zero liquidity net produce a point.
// The input slice is not modified.
func Build(tickSpacing int32, arrays []model.TickArray) ([]model.LiquidityPoint, error) {
	if tickSpacing <= 0 {
		return nil, fmt.Errorf("%w: tick spacing %d must be positive", ErrInvariantViolation, tickSpacing)
	}

	sorted := make([]*model.TickArray, len(arrays))
	for i := range arrays {
		sorted[i] = &arrays[i]
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartTickIndex < sorted[j].StartTickIndex
	})

	if err := validate(tickSpacing, sorted); err != nil {
		return nil, err
	}

	points := make([]model.LiquidityPoint, 0)
	liquidity := new(big.Int)
	for _, ta := range sorted {
		for i := range ta.Ticks {
			net := ta.Ticks[i].LiquidityNet
			if net == nil || net.Sign() == 0 {
				continue
			}

			tickIndex := int64(ta.StartTickIndex) + int64(i)*int64(tickSpacing)
			if tickIndex < math.MinInt32 || tickIndex > math.MaxInt32 {
				return nil, fmt.Errorf("%w: tick %d of array %d is out of range", ErrInvariantViolation, i, ta.StartTickIndex)
			}

			liquidity.Add(liquidity, net)
			points = append(points, model.LiquidityPoint{
				TickIndex: int32(tickIndex),
				Liquidity: new(big.Int).Set(liquidity),
			})
		}
	}

	return points, nil
}

// validate expects arrays sorted by start tick index.
func validate(tickSpacing int32, sorted []*model.TickArray) error {
	if len(sorted) == 0 {
		return nil
	}

	span := int64(tickSpacing) * model.TickArraySize
	pool := sorted[0].Whirlpool
	for i, ta := range sorted {
		if ta.Whirlpool != pool {
			return fmt.Errorf("%w: tick array %s belongs to %s, expected %s", ErrInvariantViolation, ta.Address, ta.Whirlpool, pool)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if prev.StartTickIndex == ta.StartTickIndex {
			return fmt.Errorf("%w: start tick index %d (%s, %s)", ErrDuplicateRange, ta.StartTickIndex, prev.Address, ta.Address)
		}
		if int64(prev.StartTickIndex)+span > int64(ta.StartTickIndex) {
			return fmt.Errorf("%w: tick array at %d overlaps tick array at %d", ErrInvariantViolation, prev.StartTickIndex, ta.StartTickIndex)
		}
	}
	return nil
}
