package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	solrpc "github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"whirlpoolScope/internal/chain"
	"whirlpoolScope/internal/model"
	"whirlpoolScope/internal/whirlpool"
)

// Source supplies raw accounts for the curve pipeline.
type Source interface {
	// Account returns a single account. Kind is left for the caller to set.
	Account(ctx context.Context, address solana.PublicKey) (model.RawAccount, error)
	// TickArrays returns every tick array of one layout kind owned by pool.
	TickArrays(ctx context.Context, pool solana.PublicKey, kind string) ([]model.RawAccount, error)
}

// AccountClient is the subset of chain.Client used by RPCSource.
type AccountClient interface {
	GetAccountInfo(ctx context.Context, address solana.PublicKey) (*solrpc.Account, error)
	GetProgramAccounts(ctx context.Context, program solana.PublicKey, filters []solrpc.RPCFilter) (solrpc.GetProgramAccountsResult, error)
}

// RPCConfig holds retry settings for RPCSource.
type RPCConfig struct {
	MaxRetries   int
	RetryBackoff time.Duration
}

// RPCSource reads accounts from a Solana RPC endpoint.
type RPCSource struct {
	cfg    RPCConfig
	client AccountClient
	logger *zap.Logger
}

func NewRPCSource(cfg RPCConfig, client AccountClient, logger *zap.Logger) *RPCSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RPCSource{cfg: cfg, client: client, logger: logger}
}

func (s *RPCSource) Account(ctx context.Context, address solana.PublicKey) (model.RawAccount, error) {
	var account *solrpc.Account
	err := withRetry(ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		account, err = s.client.GetAccountInfo(ctx, address)
		if err != nil && !errors.Is(err, chain.ErrAccountNotFound) {
			s.logger.Warn("get account failed", zap.Error(err), zap.String("address", address.String()))
		}
		return err
	})
	if err != nil {
		return model.RawAccount{}, fmt.Errorf("get account %s: %w", address, err)
	}
	return buildRawAccount(address, account, "", "", time.Now().UTC()), nil
}

func (s *RPCSource) TickArrays(ctx context.Context, pool solana.PublicKey, kind string) ([]model.RawAccount, error) {
	filters, err := TickArrayFilters(pool, kind)
	if err != nil {
		return nil, err
	}

	var result solrpc.GetProgramAccountsResult
	err = withRetry(ctx, s.cfg.MaxRetries, s.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		result, err = s.client.GetProgramAccounts(ctx, whirlpool.ProgramID, filters)
		if err != nil {
			s.logger.Warn("get program accounts failed", zap.Error(err), zap.String("pool", pool.String()), zap.String("kind", kind))
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get %s accounts: %w", kind, err)
	}

	fetchedAt := time.Now().UTC()
	accounts := make([]model.RawAccount, 0, len(result))
	for _, keyed := range result {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		accounts = append(accounts, buildRawAccount(keyed.Pubkey, keyed.Account, kind, pool.String(), fetchedAt))
	}
	return accounts, nil
}

// TickArrayFilters returns the memcmp filters selecting tick arrays of one kind for pool.
func TickArrayFilters(pool solana.PublicKey, kind string) ([]solrpc.RPCFilter, error) {
	switch kind {
	case model.AccountKindFixedTickArray:
		return []solrpc.RPCFilter{
			chain.MemcmpFilter(0, whirlpool.FixedTickArrayDiscriminator[:]),
			chain.MemcmpFilter(whirlpool.FixedTickArrayWhirlpoolOffset, pool.Bytes()),
		}, nil
	case model.AccountKindDynamicTickArray:
		return []solrpc.RPCFilter{
			chain.MemcmpFilter(0, whirlpool.DynamicTickArrayDiscriminator[:]),
			chain.MemcmpFilter(whirlpool.DynamicTickArrayWhirlpoolOffset, pool.Bytes()),
		}, nil
	default:
		return nil, fmt.Errorf("unknown tick array kind %q", kind)
	}
}

func buildRawAccount(address solana.PublicKey, account *solrpc.Account, kind, pool string, fetchedAt time.Time) model.RawAccount {
	raw := model.RawAccount{
		Address:   address.String(),
		Owner:     account.Owner.String(),
		Kind:      kind,
		Pool:      pool,
		FetchedAt: fetchedAt.Format(time.RFC3339Nano),
	}
	if account.Data != nil {
		raw.Data = account.Data.GetBinary()
	}
	return raw
}

func retryable(err error) bool {
	return !errors.Is(err, chain.ErrAccountNotFound) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
