package postgres

import (
	"math/big"
	"testing"
)

func TestParseNumeric(t *testing.T) {
	n := parseNumeric("340282366920938463463374607431768211455")
	if !n.Valid || n.Exp != 0 {
		t.Fatalf("unexpected numeric %+v", n)
	}
	want, _ := new(big.Int).SetString("340282366920938463463374607431768211455", 10)
	if n.Int.Cmp(want) != 0 {
		t.Fatalf("expected %s, got %s", want, n.Int)
	}

	if z := parseNumeric(""); z.Int.Sign() != 0 || !z.Valid {
		t.Fatalf("empty should store zero, got %+v", z)
	}
}

func TestNumericCopiesValue(t *testing.T) {
	src := big.NewInt(42)
	n := numeric(src)
	src.SetInt64(7)
	if n.Int.Int64() != 42 {
		t.Fatalf("numeric should not alias its input, got %s", n.Int)
	}
}
