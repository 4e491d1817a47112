package postgres

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"whirlpoolScope/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS whirlpools (
	pool_address TEXT PRIMARY KEY,
	token_mint_a TEXT NOT NULL,
	token_mint_b TEXT NOT NULL,
	decimals_a SMALLINT NOT NULL,
	decimals_b SMALLINT NOT NULL,
	tick_spacing INTEGER NOT NULL,
	liquidity NUMERIC(39, 0) NOT NULL,
	sqrt_price NUMERIC(39, 0) NOT NULL,
	tick_current_index INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS liquidity_curves (
	id BIGSERIAL PRIMARY KEY,
	pool_address TEXT NOT NULL,
	fixed_tick_arrays INTEGER NOT NULL,
	dynamic_tick_arrays INTEGER NOT NULL,
	point_count INTEGER NOT NULL,
	built_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS liquidity_curves_pool_built_at
	ON liquidity_curves (pool_address, built_at DESC);

CREATE TABLE IF NOT EXISTS liquidity_curve_points (
	curve_id BIGINT NOT NULL REFERENCES liquidity_curves (id) ON DELETE CASCADE,
	tick_index INTEGER NOT NULL,
	liquidity NUMERIC(39, 0) NOT NULL,
	PRIMARY KEY (curve_id, tick_index)
);
`

// Store provides Postgres persistence for pools and built curves.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// UpsertPools inserts or updates pool metadata.
func (s *Store) UpsertPools(ctx context.Context, pools []model.Pool) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, pool := range pools {
		batch.Queue(`
			INSERT INTO whirlpools (
				pool_address, token_mint_a, token_mint_b, decimals_a, decimals_b,
				tick_spacing, liquidity, sqrt_price, tick_current_index, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
			ON CONFLICT (pool_address)
			DO UPDATE SET
				token_mint_a = EXCLUDED.token_mint_a,
				token_mint_b = EXCLUDED.token_mint_b,
				decimals_a = EXCLUDED.decimals_a,
				decimals_b = EXCLUDED.decimals_b,
				tick_spacing = EXCLUDED.tick_spacing,
				liquidity = EXCLUDED.liquidity,
				sqrt_price = EXCLUDED.sqrt_price,
				tick_current_index = EXCLUDED.tick_current_index,
				updated_at = now()
		`,
			pool.Address,
			pool.TokenMintA,
			pool.TokenMintB,
			int16(pool.DecimalsA),
			int16(pool.DecimalsB),
			int32(pool.TickSpacing),
			parseNumeric(pool.Liquidity),
			parseNumeric(pool.SqrtPrice),
			pool.TickCurrentIndex,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pools {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// InsertCurve stores one curve and its points in a single transaction and returns the curve id.
func (s *Store) InsertCurve(ctx context.Context, curve model.Curve) (int64, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO liquidity_curves (
			pool_address, fixed_tick_arrays, dynamic_tick_arrays, point_count, built_at
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,
		curve.Pool.Address,
		curve.FixedTickArrays,
		curve.DynamicTickArrays,
		len(curve.Points),
		curve.BuiltAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert curve: %w", err)
	}

	spans, err := splitSpans(len(curve.Points), pointBatchSize)
	if err != nil {
		return 0, err
	}
	for _, sp := range spans {
		if err := insertPoints(ctx, tx, id, curve.Points[sp.From:sp.To]); err != nil {
			return 0, fmt.Errorf("insert curve points: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit curve: %w", err)
	}
	return id, nil
}

func insertPoints(ctx context.Context, tx pgx.Tx, curveID int64, points []model.LiquidityPoint) error {
	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(`
			INSERT INTO liquidity_curve_points (curve_id, tick_index, liquidity)
			VALUES ($1, $2, $3)
		`, curveID, p.TickIndex, numeric(p.Liquidity))
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for range points {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutCurve upserts the pool row and appends the curve to its history.
func (s *Store) PutCurve(ctx context.Context, curve model.Curve) error {
	if err := s.UpsertPools(ctx, []model.Pool{curve.Pool}); err != nil {
		return fmt.Errorf("upsert pool: %w", err)
	}
	if _, err := s.InsertCurve(ctx, curve); err != nil {
		return err
	}
	return nil
}

func numeric(v *big.Int) pgtype.Numeric {
	if v == nil {
		v = new(big.Int)
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Valid: true}
}

// parseNumeric converts a decimal string; empty or malformed input stores zero.
func parseNumeric(v string) pgtype.Numeric {
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		n = new(big.Int)
	}
	return numeric(n)
}
