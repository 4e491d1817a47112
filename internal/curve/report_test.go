package curve

import (
	"bytes"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"whirlpoolScope/internal/model"
)

func TestReporterWrite(t *testing.T) {
	points := []model.LiquidityPoint{
		{TickIndex: -443636, Liquidity: big.NewInt(416944588)},
		{TickIndex: 1, Liquidity: big.NewInt(9736964432851)},
		{TickIndex: 1177, Liquidity: big.NewInt(416944588)},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(ReportOptions{}).Write(&buf, points))

	want := "[-443636,       1) => liquidity:            416944588\n" +
		"[      1,    1177) => liquidity:        9736964432851\n"
	require.Equal(t, want, buf.String())
}

func TestReporterTail(t *testing.T) {
	points := []model.LiquidityPoint{
		{TickIndex: 0, Liquidity: big.NewInt(100)},
		{TickIndex: 704, Liquidity: big.NewInt(60)},
	}

	var buf bytes.Buffer
	require.NoError(t, NewReporter(ReportOptions{TickWidth: 3, LiquidityWidth: 4, Tail: true, TailTick: 800}).Write(&buf, points))
	require.Equal(t, "[  0, 704) => liquidity:  100\n[704, 800) => liquidity:   60\n", buf.String())
}

func TestReporterNothingForSinglePoint(t *testing.T) {
	var buf bytes.Buffer
	points := []model.LiquidityPoint{{TickIndex: 0, Liquidity: big.NewInt(1)}}
	require.NoError(t, NewReporter(ReportOptions{}).Write(&buf, points))
	require.Empty(t, buf.String())

	require.NoError(t, NewReporter(ReportOptions{}).Write(&buf, nil))
	require.Empty(t, buf.String())
}

func TestReporterPrices(t *testing.T) {
	r := NewReporter(ReportOptions{Prices: true})
	line := r.Line(model.LiquidityPoint{TickIndex: 0, Liquidity: big.NewInt(1)}, 1)
	require.True(t, strings.HasSuffix(line, "price: [1, 1.0001)"), line)
}

func TestTickToPrice(t *testing.T) {
	require.Equal(t, "1", TickToPrice(0, 6, 6).String())
	require.Equal(t, "1000", TickToPrice(0, 9, 6).String())
	require.InDelta(t, 2.7181459, TickToPrice(10000, 0, 0).InexactFloat64(), 1e-6)
	require.InDelta(t, 0.3678978, TickToPrice(-10000, 0, 0).InexactFloat64(), 1e-6)
	require.InDelta(t, 0.0036789, TickToPrice(-10000, 6, 8).InexactFloat64(), 1e-7)
}
