package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	solrpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"whirlpoolScope/internal/chain"
	"whirlpoolScope/internal/model"
	"whirlpoolScope/internal/whirlpool"
)

var (
	testPool      = solana.MustPublicKeyFromBase58("3ndjN1nJVUKGrJBc1hhVpER6kWTZKHdyDrPyCJyX3CXK")
	testTickArray = solana.MustPublicKeyFromBase58("9vqYJjDUFecLL2xPUC4Rc7hyCtZ6iJ4mDiVZX7aFXoAe")
)

type fakeClient struct {
	accountErrs []error
	accountData []byte
	accountCall int

	programErrs    []error
	programResult  solrpc.GetProgramAccountsResult
	programCall    int
	programFilters []solrpc.RPCFilter
}

func (f *fakeClient) GetAccountInfo(_ context.Context, _ solana.PublicKey) (*solrpc.Account, error) {
	f.accountCall++
	if len(f.accountErrs) > 0 {
		err := f.accountErrs[0]
		f.accountErrs = f.accountErrs[1:]
		return nil, err
	}
	return &solrpc.Account{Owner: whirlpool.ProgramID, Data: solrpc.DataBytesOrJSONFromBytes(f.accountData)}, nil
}

func (f *fakeClient) GetProgramAccounts(_ context.Context, _ solana.PublicKey, filters []solrpc.RPCFilter) (solrpc.GetProgramAccountsResult, error) {
	f.programCall++
	f.programFilters = filters
	if len(f.programErrs) > 0 {
		err := f.programErrs[0]
		f.programErrs = f.programErrs[1:]
		return nil, err
	}
	return f.programResult, nil
}

func TestRPCSourceAccountRetries(t *testing.T) {
	client := &fakeClient{
		accountErrs: []error{errors.New("429 too many requests"), errors.New("timeout")},
		accountData: []byte{1, 2, 3},
	}
	src := NewRPCSource(RPCConfig{MaxRetries: 3, RetryBackoff: time.Millisecond}, client, zaptest.NewLogger(t))

	account, err := src.Account(context.Background(), testPool)
	require.NoError(t, err)
	require.Equal(t, 3, client.accountCall)
	require.Equal(t, testPool.String(), account.Address)
	require.Equal(t, whirlpool.ProgramID.String(), account.Owner)
	require.Equal(t, []byte{1, 2, 3}, account.Data)
}

func TestRPCSourceAccountNotFoundIsNotRetried(t *testing.T) {
	client := &fakeClient{accountErrs: []error{chain.ErrAccountNotFound}}
	src := NewRPCSource(RPCConfig{MaxRetries: 5, RetryBackoff: time.Millisecond}, client, nil)

	_, err := src.Account(context.Background(), testPool)
	require.ErrorIs(t, err, chain.ErrAccountNotFound)
	require.Equal(t, 1, client.accountCall)
}

func TestRPCSourceGivesUpAfterMaxRetries(t *testing.T) {
	boom := errors.New("boom")
	client := &fakeClient{programErrs: []error{boom, boom, boom}}
	src := NewRPCSource(RPCConfig{MaxRetries: 2, RetryBackoff: time.Millisecond}, client, nil)

	_, err := src.TickArrays(context.Background(), testPool, model.AccountKindFixedTickArray)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, client.programCall)
}

func TestRPCSourceTickArrays(t *testing.T) {
	client := &fakeClient{
		programResult: solrpc.GetProgramAccountsResult{
			{Pubkey: testTickArray, Account: &solrpc.Account{Owner: whirlpool.ProgramID, Data: solrpc.DataBytesOrJSONFromBytes([]byte{9})}},
			nil,
		},
	}
	src := NewRPCSource(RPCConfig{}, client, nil)

	accounts, err := src.TickArrays(context.Background(), testPool, model.AccountKindDynamicTickArray)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	require.Equal(t, testTickArray.String(), accounts[0].Address)
	require.Equal(t, model.AccountKindDynamicTickArray, accounts[0].Kind)
	require.Equal(t, testPool.String(), accounts[0].Pool)
	require.Equal(t, []byte{9}, accounts[0].Data)

	require.Len(t, client.programFilters, 2)
	require.Equal(t, uint64(whirlpool.DynamicTickArrayWhirlpoolOffset), client.programFilters[1].Memcmp.Offset)
}

func TestTickArrayFilters(t *testing.T) {
	fixed, err := TickArrayFilters(testPool, model.AccountKindFixedTickArray)
	require.NoError(t, err)
	require.Equal(t, uint64(0), fixed[0].Memcmp.Offset)
	require.Equal(t, whirlpool.FixedTickArrayDiscriminator[:], []byte(fixed[0].Memcmp.Bytes))
	require.Equal(t, uint64(9956), fixed[1].Memcmp.Offset)
	require.Equal(t, testPool.Bytes(), []byte(fixed[1].Memcmp.Bytes))

	dynamic, err := TickArrayFilters(testPool, model.AccountKindDynamicTickArray)
	require.NoError(t, err)
	require.Equal(t, whirlpool.DynamicTickArrayDiscriminator[:], []byte(dynamic[0].Memcmp.Bytes))
	require.Equal(t, uint64(12), dynamic[1].Memcmp.Offset)

	_, err = TickArrayFilters(testPool, model.AccountKindMint)
	require.Error(t, err)
}

func TestWithRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := withRetry(ctx, 10, time.Hour, func(context.Context) error {
		calls++
		cancel()
		return errors.New("transient")
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}
