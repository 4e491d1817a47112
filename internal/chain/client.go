package chain

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/gagliardetto/solana-go"
	solrpc "github.com/gagliardetto/solana-go/rpc"
)

// ErrAccountNotFound is returned when the ledger has no account at an address.
var ErrAccountNotFound = errors.New("account not found")

// Client wraps a JSON-RPC connection to a Solana node.
type Client struct {
	rpcClient  *rpc.Client
	commitment solrpc.CommitmentType
}

// NewClient dials the RPC URL. An empty commitment defaults to confirmed.
func NewClient(ctx context.Context, rpcURL string, commitment string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}

	c := solrpc.CommitmentConfirmed
	if commitment != "" {
		c = solrpc.CommitmentType(commitment)
	}
	return &Client{rpcClient: rpcClient, commitment: c}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// GetAccountInfo returns the account at address with base64-decoded data.
func (c *Client) GetAccountInfo(ctx context.Context, address solana.PublicKey) (*solrpc.Account, error) {
	var result solrpc.GetAccountInfoResult
	err := c.rpcClient.CallContext(ctx, &result, "getAccountInfo", address.String(), map[string]interface{}{
		"encoding":   solana.EncodingBase64,
		"commitment": c.commitment,
	})
	if err != nil {
		return nil, err
	}
	if result.Value == nil {
		return nil, ErrAccountNotFound
	}
	return result.Value, nil
}

// GetProgramAccounts returns all accounts owned by program matching every filter.
// The endpoint must allow getProgramAccounts.
func (c *Client) GetProgramAccounts(ctx context.Context, program solana.PublicKey, filters []solrpc.RPCFilter) (solrpc.GetProgramAccountsResult, error) {
	var result solrpc.GetProgramAccountsResult
	err := c.rpcClient.CallContext(ctx, &result, "getProgramAccounts", program.String(), map[string]interface{}{
		"encoding":   solana.EncodingBase64,
		"commitment": c.commitment,
		"filters":    filters,
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MemcmpFilter matches accounts whose data at offset equals data.
func MemcmpFilter(offset uint64, data []byte) solrpc.RPCFilter {
	return solrpc.RPCFilter{
		Memcmp: &solrpc.RPCFilterMemcmp{
			Offset: offset,
			Bytes:  solana.Base58(data),
		},
	}
}
