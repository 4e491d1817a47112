package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"whirlpoolScope/internal/curve"
	"whirlpoolScope/internal/model"
	"whirlpoolScope/internal/source"
	"whirlpoolScope/internal/whirlpool"
)

// Config holds runtime settings for the loader.
type Config struct {
	Workers int
	// Mints fetches the token mints of the pool for decimals.
	Mints bool
}

// Accounts is the raw account set of one pool.
type Accounts struct {
	Pool    model.RawAccount
	Mints   []model.RawAccount
	Fixed   []model.RawAccount
	Dynamic []model.RawAccount
}

// All returns every account, pool first.
func (a Accounts) All() []model.RawAccount {
	out := make([]model.RawAccount, 0, 1+len(a.Mints)+len(a.Fixed)+len(a.Dynamic))
	out = append(out, a.Pool)
	out = append(out, a.Mints...)
	out = append(out, a.Fixed...)
	return append(out, a.Dynamic...)
}

// Loader fetches the accounts of a pool and turns them into a liquidity curve.
type Loader struct {
	cfg     Config
	source  source.Source
	workers pond.Pool
	logger  *zap.Logger
}

// New builds a Loader. Close releases its worker pool.
func New(cfg Config, src source.Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	return &Loader{
		cfg:     cfg,
		source:  src,
		workers: pond.NewPool(cfg.Workers),
		logger:  logger,
	}
}

func (l *Loader) Close() {
	l.workers.StopAndWait()
}

// Fetch collects the pool account and both tick array sets concurrently,
// then the mints when enabled.
func (l *Loader) Fetch(ctx context.Context, address solana.PublicKey) (Accounts, error) {
	if l.source == nil {
		return Accounts{}, fmt.Errorf("source is nil")
	}

	var (
		accounts                       Accounts
		poolErr, fixedErr, dynamicErr error
	)

	group := l.workers.NewGroupContext(ctx)
	groupCtx := group.Context()

	group.Submit(func() {
		accounts.Pool, poolErr = l.source.Account(groupCtx, address)
		accounts.Pool.Kind = model.AccountKindWhirlpool
	})
	group.Submit(func() {
		accounts.Fixed, fixedErr = l.source.TickArrays(groupCtx, address, model.AccountKindFixedTickArray)
	})
	group.Submit(func() {
		accounts.Dynamic, dynamicErr = l.source.TickArrays(groupCtx, address, model.AccountKindDynamicTickArray)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		l.logger.Warn("parallel fetch encountered error", zap.String("pool", address.String()), zap.Error(err))
	}
	if poolErr != nil {
		return Accounts{}, fmt.Errorf("fetch whirlpool: %w", poolErr)
	}
	if fixedErr != nil {
		return Accounts{}, fmt.Errorf("fetch fixed tick arrays: %w", fixedErr)
	}
	if dynamicErr != nil {
		return Accounts{}, fmt.Errorf("fetch dynamic tick arrays: %w", dynamicErr)
	}
	if err := ctx.Err(); err != nil {
		return Accounts{}, err
	}

	l.logger.Info("found tick arrays",
		zap.String("pool", address.String()),
		zap.Int("fixed_arrays", len(accounts.Fixed)),
		zap.Int("dynamic_arrays", len(accounts.Dynamic)),
	)

	if l.cfg.Mints {
		pool, err := whirlpool.DecodePool(address, accounts.Pool.Data)
		if err != nil {
			return Accounts{}, err
		}
		mints, err := l.fetchMints(ctx, pool.TokenMintA, pool.TokenMintB)
		if err != nil {
			return Accounts{}, err
		}
		accounts.Mints = mints
	}

	return accounts, nil
}

func (l *Loader) fetchMints(ctx context.Context, mints ...solana.PublicKey) ([]model.RawAccount, error) {
	out := make([]model.RawAccount, len(mints))
	errs := make([]error, len(mints))

	group := l.workers.NewGroupContext(ctx)
	groupCtx := group.Context()
	for i, mint := range mints {
		i, mint := i, mint
		group.Submit(func() {
			out[i], errs[i] = l.source.Account(groupCtx, mint)
			out[i].Kind = model.AccountKindMint
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		l.logger.Warn("mint fetch encountered error", zap.Error(err))
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("fetch mint %s: %w", mints[i], err)
		}
	}
	return out, nil
}

// Load fetches one pool and builds its liquidity curve.
func (l *Loader) Load(ctx context.Context, address solana.PublicKey) (model.Curve, error) {
	accounts, err := l.Fetch(ctx, address)
	if err != nil {
		return model.Curve{}, err
	}
	return l.Build(address, accounts)
}

// Build decodes and normalizes fetched accounts and sweeps them into a curve.
func (l *Loader) Build(address solana.PublicKey, accounts Accounts) (model.Curve, error) {
	pool, err := whirlpool.DecodePool(address, accounts.Pool.Data)
	if err != nil {
		return model.Curve{}, err
	}

	arrays := make([]model.TickArray, 0, len(accounts.Fixed)+len(accounts.Dynamic))
	for _, set := range [][]model.RawAccount{accounts.Fixed, accounts.Dynamic} {
		for _, raw := range set {
			ta, err := normalizeAccount(address, raw)
			if err != nil {
				return model.Curve{}, err
			}
			arrays = append(arrays, ta)
		}
	}

	points, err := curve.Build(int32(pool.TickSpacing), arrays)
	if err != nil {
		return model.Curve{}, fmt.Errorf("build curve for %s: %w", address, err)
	}

	meta := model.Pool{
		Address:          address.String(),
		TickSpacing:      pool.TickSpacing,
		TokenMintA:       pool.TokenMintA.String(),
		TokenMintB:       pool.TokenMintB.String(),
		Liquidity:        pool.Liquidity.String(),
		SqrtPrice:        pool.SqrtPrice.String(),
		TickCurrentIndex: pool.TickCurrentIndex,
	}
	if err := applyMintDecimals(&meta, accounts.Mints); err != nil {
		return model.Curve{}, err
	}

	l.checkActiveLiquidity(pool, points)

	l.logger.Info("curve built",
		zap.String("pool", meta.Address),
		zap.Uint16("tick_spacing", pool.TickSpacing),
		zap.Int("tick_arrays", len(arrays)),
		zap.Int("points", len(points)),
	)

	return model.Curve{
		Pool:              meta,
		FixedTickArrays:   len(accounts.Fixed),
		DynamicTickArrays: len(accounts.Dynamic),
		Points:            points,
		BuiltAt:           time.Now().UTC(),
	}, nil
}

func normalizeAccount(pool solana.PublicKey, raw model.RawAccount) (model.TickArray, error) {
	address, err := solana.PublicKeyFromBase58(raw.Address)
	if err != nil {
		return model.TickArray{}, fmt.Errorf("%w: tick array address %q: %v", whirlpool.ErrMalformedRecord, raw.Address, err)
	}

	account, err := whirlpool.DecodeTickArray(address, raw.Data)
	if err != nil {
		return model.TickArray{}, err
	}
	if got := kindOf(account); got != raw.Kind {
		return model.TickArray{}, fmt.Errorf("%w: tick array %s fetched as %s but decoded as %s", whirlpool.ErrMalformedRecord, address, raw.Kind, got)
	}

	ta, err := whirlpool.Normalize(account)
	if err != nil {
		return model.TickArray{}, err
	}
	if ta.Whirlpool != pool.String() {
		return model.TickArray{}, fmt.Errorf("%w: tick array %s belongs to %s, not %s", whirlpool.ErrMalformedRecord, address, ta.Whirlpool, pool)
	}
	return ta, nil
}

func kindOf(account whirlpool.TickArrayAccount) string {
	switch account.(type) {
	case *whirlpool.FixedTickArray:
		return model.AccountKindFixedTickArray
	case *whirlpool.DynamicTickArray:
		return model.AccountKindDynamicTickArray
	default:
		return ""
	}
}

func applyMintDecimals(meta *model.Pool, mints []model.RawAccount) error {
	for _, mint := range mints {
		decimals, err := whirlpool.DecodeMintDecimals(mint.Data)
		if err != nil {
			return fmt.Errorf("mint %s: %w", mint.Address, err)
		}
		switch mint.Address {
		case meta.TokenMintA:
			meta.DecimalsA = decimals
		case meta.TokenMintB:
			meta.DecimalsB = decimals
		}
	}
	return nil
}

// checkActiveLiquidity compares the curve at the current tick with the pool's own liquidity.
func (l *Loader) checkActiveLiquidity(pool whirlpool.Pool, points []model.LiquidityPoint) {
	onChain := pool.Liquidity.Big()
	fromCurve := curve.LiquidityAt(points, pool.TickCurrentIndex)
	if onChain.Cmp(fromCurve) != 0 {
		l.logger.Warn("curve liquidity differs from pool liquidity",
			zap.String("pool", pool.Address.String()),
			zap.Int32("tick_current_index", pool.TickCurrentIndex),
			zap.String("pool_liquidity", onChain.String()),
			zap.String("curve_liquidity", fromCurve.String()),
		)
	}
}
