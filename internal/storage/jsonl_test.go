package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"whirlpoolScope/internal/model"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}

func TestJsonlStorageAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "accounts.jsonl")
	s := NewJsonlStorage(path)

	batch := []model.RawAccount{
		{Address: "a", Kind: model.AccountKindWhirlpool, Data: []byte{1, 2}},
		{Address: "b", Kind: model.AccountKindFixedTickArray, Pool: "a", Data: []byte{3}},
	}
	if err := s.PutAccountBatch(batch); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.PutAccountBatch(nil); err != nil {
		t.Fatalf("put empty: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var decoded model.RawAccount
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(batch[1], decoded) {
		t.Fatalf("mismatch: %+v != %+v", batch[1], decoded)
	}
}

func TestJsonlStorageCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.jsonl")
	s := NewJsonlStorage(path)

	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	curve := model.Curve{
		Pool: model.Pool{Address: "pool"},
		Points: []model.LiquidityPoint{
			{TickIndex: -64, Liquidity: big.NewInt(10)},
			{TickIndex: 64, Liquidity: huge},
		},
		BuiltAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.PutCurve(context.Background(), curve); err != nil {
		t.Fatalf("put curve: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(lines[1]), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["liquidity"] != huge.String() {
		t.Fatalf("liquidity should be an exact string, got %v", decoded["liquidity"])
	}
	if decoded["built_at"] != "2024-01-01T00:00:00Z" {
		t.Fatalf("unexpected built_at %v", decoded["built_at"])
	}
}
