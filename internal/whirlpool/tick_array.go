package whirlpool

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// TickArrayAccount is either a *FixedTickArray or a *DynamicTickArray.
type TickArrayAccount interface {
	AccountAddress() solana.PublicKey
	WhirlpoolAddress() solana.PublicKey
	StartIndex() int32
	tickArrayAccount()
}

// TickData holds the per-tick payload shared by both layouts.
type TickData struct {
	LiquidityNet         *big.Int
	LiquidityGross       uint128.Uint128
	FeeGrowthOutsideA    uint128.Uint128
	FeeGrowthOutsideB    uint128.Uint128
	RewardGrowthsOutside [rewardCount]uint128.Uint128
}

// FixedTick is a slot of a fixed tick array. Every slot is stored in full.
type FixedTick struct {
	Initialized bool
	TickData
}

// FixedTickArray is the fixed-capacity on-chain layout.
type FixedTickArray struct {
	Address        solana.PublicKey
	StartTickIndex int32
	Ticks          []FixedTick
	Whirlpool      solana.PublicKey
}

// DynamicTick is a slot of a dynamic tick array. Data is nil when the tick is uninitialized.
type DynamicTick struct {
	Data *TickData
}

// DynamicTickArray is the growable on-chain layout: uninitialized slots take one byte.
type DynamicTickArray struct {
	Address        solana.PublicKey
	StartTickIndex int32
	Whirlpool      solana.PublicKey
	TickBitmap     uint128.Uint128
	Ticks          []DynamicTick
}

func (t *FixedTickArray) AccountAddress() solana.PublicKey   { return t.Address }
func (t *FixedTickArray) WhirlpoolAddress() solana.PublicKey { return t.Whirlpool }
func (t *FixedTickArray) StartIndex() int32                  { return t.StartTickIndex }
func (t *FixedTickArray) tickArrayAccount()                  {}

func (t *DynamicTickArray) AccountAddress() solana.PublicKey   { return t.Address }
func (t *DynamicTickArray) WhirlpoolAddress() solana.PublicKey { return t.Whirlpool }
func (t *DynamicTickArray) StartIndex() int32                  { return t.StartTickIndex }
func (t *DynamicTickArray) tickArrayAccount()                  {}

// DecodeTickArray decodes either tick array layout, selected by the account discriminator.
func DecodeTickArray(address solana.PublicKey, data []byte) (TickArrayAccount, error) {
	if len(data) < discriminatorSize {
		return nil, fmt.Errorf("%w: account %s too short (%d bytes)", ErrMalformedRecord, address, len(data))
	}
	switch {
	case bytes.Equal(data[:discriminatorSize], FixedTickArrayDiscriminator[:]):
		return DecodeFixedTickArray(address, data)
	case bytes.Equal(data[:discriminatorSize], DynamicTickArrayDiscriminator[:]):
		return DecodeDynamicTickArray(address, data)
	default:
		return nil, fmt.Errorf("%w: account %s has unknown discriminator %v", ErrMalformedRecord, address, data[:discriminatorSize])
	}
}

// DecodeFixedTickArray decodes a fixed tick array account.
func DecodeFixedTickArray(address solana.PublicKey, data []byte) (*FixedTickArray, error) {
	if len(data) < FixedTickArraySize {
		return nil, fmt.Errorf("%w: fixed tick array %s: %d bytes, want %d", ErrMalformedRecord, address, len(data), FixedTickArraySize)
	}
	if !bytes.Equal(data[:discriminatorSize], FixedTickArrayDiscriminator[:]) {
		return nil, fmt.Errorf("%w: fixed tick array %s: discriminator mismatch", ErrMalformedRecord, address)
	}

	dec := bin.NewBinDecoder(data[discriminatorSize:])
	out := &FixedTickArray{Address: address}

	start, err := dec.ReadInt32(binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("%w: fixed tick array %s: start tick index: %w", ErrMalformedRecord, address, err)
	}
	out.StartTickIndex = start

	out.Ticks = make([]FixedTick, TickArraySize)
	for i := range out.Ticks {
		initialized, err := dec.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("%w: fixed tick array %s: tick %d: %w", ErrMalformedRecord, address, i, err)
		}
		tick, err := readTickData(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: fixed tick array %s: tick %d: %w", ErrMalformedRecord, address, i, err)
		}
		out.Ticks[i] = FixedTick{Initialized: initialized != 0, TickData: tick}
	}

	whirlpool, err := readPublicKey(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: fixed tick array %s: whirlpool: %w", ErrMalformedRecord, address, err)
	}
	out.Whirlpool = whirlpool

	return out, nil
}

// DecodeDynamicTickArray decodes a dynamic tick array account.
func DecodeDynamicTickArray(address solana.PublicKey, data []byte) (*DynamicTickArray, error) {
	if len(data) < dynamicTickArrayHeaderSize+TickArraySize {
		return nil, fmt.Errorf("%w: dynamic tick array %s: %d bytes is below the minimum", ErrMalformedRecord, address, len(data))
	}
	if !bytes.Equal(data[:discriminatorSize], DynamicTickArrayDiscriminator[:]) {
		return nil, fmt.Errorf("%w: dynamic tick array %s: discriminator mismatch", ErrMalformedRecord, address)
	}

	dec := bin.NewBinDecoder(data[discriminatorSize:])
	out := &DynamicTickArray{Address: address}

	start, err := dec.ReadInt32(binary.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("%w: dynamic tick array %s: start tick index: %w", ErrMalformedRecord, address, err)
	}
	out.StartTickIndex = start

	whirlpool, err := readPublicKey(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: dynamic tick array %s: whirlpool: %w", ErrMalformedRecord, address, err)
	}
	out.Whirlpool = whirlpool

	bitmap, err := readUint128(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: dynamic tick array %s: tick bitmap: %w", ErrMalformedRecord, address, err)
	}
	out.TickBitmap = bitmap

	out.Ticks = make([]DynamicTick, TickArraySize)
	for i := range out.Ticks {
		tag, err := dec.ReadUint8()
		if err != nil {
			return nil, fmt.Errorf("%w: dynamic tick array %s: tick %d: %w", ErrMalformedRecord, address, i, err)
		}
		switch tag {
		case dynamicTickUninitialized:
		case dynamicTickInitialized:
			tick, err := readTickData(dec)
			if err != nil {
				return nil, fmt.Errorf("%w: dynamic tick array %s: tick %d: %w", ErrMalformedRecord, address, i, err)
			}
			out.Ticks[i] = DynamicTick{Data: &tick}
		default:
			return nil, fmt.Errorf("%w: dynamic tick array %s: tick %d: unknown tag %d", ErrMalformedRecord, address, i, tag)
		}
	}

	return out, nil
}

func readTickData(dec *bin.Decoder) (TickData, error) {
	var tick TickData
	net, err := readInt128(dec)
	if err != nil {
		return tick, fmt.Errorf("liquidity net: %w", err)
	}
	tick.LiquidityNet = net
	if tick.LiquidityGross, err = readUint128(dec); err != nil {
		return tick, fmt.Errorf("liquidity gross: %w", err)
	}
	if tick.FeeGrowthOutsideA, err = readUint128(dec); err != nil {
		return tick, fmt.Errorf("fee growth outside a: %w", err)
	}
	if tick.FeeGrowthOutsideB, err = readUint128(dec); err != nil {
		return tick, fmt.Errorf("fee growth outside b: %w", err)
	}
	for j := range tick.RewardGrowthsOutside {
		if tick.RewardGrowthsOutside[j], err = readUint128(dec); err != nil {
			return tick, fmt.Errorf("reward growth outside %d: %w", j, err)
		}
	}
	return tick, nil
}

func readUint128(dec *bin.Decoder) (uint128.Uint128, error) {
	b, err := dec.ReadNBytes(u128Size)
	if err != nil {
		return uint128.Zero, err
	}
	return uint128.FromBytes(b), nil
}

var twoPow128 = new(big.Int).Lsh(big.NewInt(1), 128)

// readInt128 reads a little-endian two's complement i128.
func readInt128(dec *bin.Decoder) (*big.Int, error) {
	u, err := readUint128(dec)
	if err != nil {
		return nil, err
	}
	v := u.Big()
	if u.Hi>>63 == 1 {
		v.Sub(v, twoPow128)
	}
	return v, nil
}

func readPublicKey(dec *bin.Decoder) (solana.PublicKey, error) {
	b, err := dec.ReadNBytes(publicKeySize)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return solana.PublicKeyFromBytes(b), nil
}
