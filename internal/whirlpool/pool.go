package whirlpool

import (
	"bytes"
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// Pool holds the whirlpool fields the curve pipeline reads.
type Pool struct {
	Address          solana.PublicKey
	TickSpacing      uint16
	Liquidity        uint128.Uint128
	SqrtPrice        uint128.Uint128
	TickCurrentIndex int32
	TokenMintA       solana.PublicKey
	TokenMintB       solana.PublicKey
}

// DecodePool decodes a whirlpool account.
func DecodePool(address solana.PublicKey, data []byte) (Pool, error) {
	if len(data) < poolMinSize {
		return Pool{}, fmt.Errorf("whirlpool %s: %d bytes, want at least %d", address, len(data), poolMinSize)
	}
	if !bytes.Equal(data[:discriminatorSize], WhirlpoolDiscriminator[:]) {
		return Pool{}, fmt.Errorf("whirlpool %s: discriminator mismatch", address)
	}

	pool := Pool{Address: address}
	dec := bin.NewBinDecoder(data)
	if err := dec.SkipBytes(poolTickSpacingOffset); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: %w", address, err)
	}

	var err error
	if pool.TickSpacing, err = dec.ReadUint16(binary.LittleEndian); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: tick spacing: %w", address, err)
	}
	if pool.TickSpacing == 0 {
		return Pool{}, fmt.Errorf("whirlpool %s: zero tick spacing", address)
	}
	// fee tier index seed, fee rate, protocol fee rate
	if err := dec.SkipBytes(poolLiquidityOffset - poolTickSpacingOffset - 2); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: %w", address, err)
	}
	if pool.Liquidity, err = readUint128(dec); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: liquidity: %w", address, err)
	}
	if pool.SqrtPrice, err = readUint128(dec); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: sqrt price: %w", address, err)
	}
	if pool.TickCurrentIndex, err = dec.ReadInt32(binary.LittleEndian); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: tick current index: %w", address, err)
	}
	// protocol fees owed a/b
	if err := dec.SkipBytes(16); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: %w", address, err)
	}
	if pool.TokenMintA, err = readPublicKey(dec); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: token mint a: %w", address, err)
	}
	// token vault a, fee growth global a
	if err := dec.SkipBytes(publicKeySize + u128Size); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: %w", address, err)
	}
	if pool.TokenMintB, err = readPublicKey(dec); err != nil {
		return Pool{}, fmt.Errorf("whirlpool %s: token mint b: %w", address, err)
	}

	return pool, nil
}

// DecodeMintDecimals reads the decimals of an SPL token mint.
func DecodeMintDecimals(data []byte) (uint8, error) {
	if len(data) <= mintDecimalsOffset {
		return 0, fmt.Errorf("mint account too short (%d bytes)", len(data))
	}
	return data[mintDecimalsOffset], nil
}
