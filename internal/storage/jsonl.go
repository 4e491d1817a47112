package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"whirlpoolScope/internal/model"
)

// PointRecord is one curve point as written to JSONL. Liquidity is a decimal string.
type PointRecord struct {
	Pool      string `json:"pool"`
	TickIndex int32  `json:"tick_index"`
	Liquidity string `json:"liquidity"`
	BuiltAt   string `json:"built_at"`
}

// JsonlStorage appends records to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutAccountBatch appends raw accounts as JSON lines.
func (s *JsonlStorage) PutAccountBatch(accounts []model.RawAccount) error {
	return writeLines(s, accounts)
}

// PutCurve appends one line per curve point.
func (s *JsonlStorage) PutCurve(_ context.Context, curve model.Curve) error {
	builtAt := curve.BuiltAt.UTC().Format(time.RFC3339Nano)
	records := make([]PointRecord, 0, len(curve.Points))
	for _, p := range curve.Points {
		records = append(records, PointRecord{
			Pool:      curve.Pool.Address,
			TickIndex: p.TickIndex,
			Liquidity: p.Liquidity.String(),
			BuiltAt:   builtAt,
		})
	}
	return writeLines(s, records)
}

func writeLines[T any](s *JsonlStorage, records []T) error {
	if len(records) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
