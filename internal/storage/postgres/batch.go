package postgres

import "fmt"

const pointBatchSize = 1000

// span is a half-open index range [From, To).
type span struct {
	From int
	To   int
}

// splitSpans splits [0, n) into spans of at most size items.
func splitSpans(n, size int) ([]span, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be greater than zero")
	}
	if n < 0 {
		return nil, fmt.Errorf("item count must be >= 0")
	}

	spans := make([]span, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		spans = append(spans, span{From: start, To: end})
	}
	return spans, nil
}
