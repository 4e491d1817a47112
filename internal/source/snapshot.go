package source

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"

	"whirlpoolScope/internal/chain"
	"whirlpoolScope/internal/model"
)

// SnapshotSource serves accounts from a JSONL snapshot written by the fetch command.
type SnapshotSource struct {
	accounts map[string]model.RawAccount
	order    []string
}

// NewSnapshotSource reads every account line of path into memory.
// Later lines replace earlier lines for the same address.
func NewSnapshotSource(path string) (*SnapshotSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	s := &SnapshotSource{accounts: make(map[string]model.RawAccount)}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var account model.RawAccount
		if err := json.Unmarshal(line, &account); err != nil {
			return nil, fmt.Errorf("parse snapshot line %d: %w", lineNo, err)
		}
		if account.Address == "" {
			return nil, fmt.Errorf("parse snapshot line %d: missing address", lineNo)
		}
		if _, ok := s.accounts[account.Address]; !ok {
			s.order = append(s.order, account.Address)
		}
		s.accounts[account.Address] = account
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	return s, nil
}

func (s *SnapshotSource) Account(ctx context.Context, address solana.PublicKey) (model.RawAccount, error) {
	if err := ctx.Err(); err != nil {
		return model.RawAccount{}, err
	}
	account, ok := s.accounts[address.String()]
	if !ok {
		return model.RawAccount{}, fmt.Errorf("get account %s: %w", address, chain.ErrAccountNotFound)
	}
	return account, nil
}

func (s *SnapshotSource) TickArrays(ctx context.Context, pool solana.PublicKey, kind string) ([]model.RawAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := TickArrayFilters(pool, kind); err != nil {
		return nil, err
	}

	poolAddress := pool.String()
	accounts := make([]model.RawAccount, 0)
	for _, address := range s.order {
		account := s.accounts[address]
		if account.Kind == kind && account.Pool == poolAddress {
			accounts = append(accounts, account)
		}
	}
	return accounts, nil
}
