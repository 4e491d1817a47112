package curve

import (
	"bufio"
	"fmt"
	"io"

	"whirlpoolScope/internal/model"
)

const (
	defaultTickWidth      = 7
	defaultLiquidityWidth = 20
)

// ReportOptions controls the text rendering of a curve.
type ReportOptions struct {
	TickWidth      int
	LiquidityWidth int
	// Tail renders the last point up to TailTick.
	Tail     bool
	TailTick int32
	// Prices appends decimal-adjusted price bounds to every range.
	Prices    bool
	DecimalsA uint8
	DecimalsB uint8
}

// Reporter renders liquidity ranges as text lines.
type Reporter struct {
	opts ReportOptions
}

func NewReporter(opts ReportOptions) *Reporter {
	if opts.TickWidth <= 0 {
		opts.TickWidth = defaultTickWidth
	}
	if opts.LiquidityWidth <= 0 {
		opts.LiquidityWidth = defaultLiquidityWidth
	}
	return &Reporter{opts: opts}
}

// Write emits one line per range [curr, next) of the curve.
func (r *Reporter) Write(w io.Writer, points []model.LiquidityPoint) error {
	writer := bufio.NewWriter(w)
	for i := 0; i+1 < len(points); i++ {
		if err := r.writeRange(writer, points[i], points[i+1].TickIndex); err != nil {
			return err
		}
	}
	if r.opts.Tail && len(points) > 0 {
		last := points[len(points)-1]
		if r.opts.TailTick > last.TickIndex {
			if err := r.writeRange(writer, last, r.opts.TailTick); err != nil {
				return err
			}
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// Line formats a single range.
func (r *Reporter) Line(curr model.LiquidityPoint, upper int32) string {
	line := fmt.Sprintf("[%*d, %*d) => liquidity: %*s",
		r.opts.TickWidth, curr.TickIndex,
		r.opts.TickWidth, upper,
		r.opts.LiquidityWidth, curr.Liquidity.String(),
	)
	if r.opts.Prices {
		line += fmt.Sprintf(" price: [%s, %s)",
			TickToPrice(curr.TickIndex, r.opts.DecimalsA, r.opts.DecimalsB).String(),
			TickToPrice(upper, r.opts.DecimalsA, r.opts.DecimalsB).String(),
		)
	}
	return line
}

func (r *Reporter) writeRange(w *bufio.Writer, curr model.LiquidityPoint, upper int32) error {
	if _, err := w.WriteString(r.Line(curr, upper)); err != nil {
		return fmt.Errorf("write report line: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	return nil
}
