package model

// Account kinds stored in snapshots.
const (
	AccountKindWhirlpool        = "whirlpool"
	AccountKindMint             = "mint"
	AccountKindFixedTickArray   = "fixed_tick_array"
	AccountKindDynamicTickArray = "dynamic_tick_array"
)

// RawAccount is an undecoded program account as returned by the ledger.
// Pool is set for tick arrays and is empty for other kinds.
type RawAccount struct {
	Address   string `json:"address"`
	Owner     string `json:"owner"`
	Kind      string `json:"kind"`
	Pool      string `json:"pool,omitempty"`
	Data      []byte `json:"data"`
	FetchedAt string `json:"fetched_at"`
}
