package whirlpool

import (
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ParsePublicKeys converts base58 strings into public keys.
func ParsePublicKeys(inputs []string) ([]solana.PublicKey, error) {
	keys := make([]solana.PublicKey, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		key, err := solana.PublicKeyFromBase58(input)
		if err != nil {
			return nil, fmt.Errorf("invalid address %s: %w", input, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
