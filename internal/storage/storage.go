package storage

import (
	"context"

	"whirlpoolScope/internal/model"
)

// Storage defines a sink for raw account snapshots.
type Storage interface {
	PutAccountBatch(accounts []model.RawAccount) error
}

// CurveSink receives built liquidity curves.
type CurveSink interface {
	PutCurve(ctx context.Context, curve model.Curve) error
}
