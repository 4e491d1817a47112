package whirlpool

import (
	"encoding/binary"
	"math/big"

	"github.com/gagliardetto/solana-go"
)

var (
	testPool      = solana.MustPublicKeyFromBase58("3ndjN1nJVUKGrJBc1hhVpER6kWTZKHdyDrPyCJyX3CXK")
	testTickArray = solana.MustPublicKeyFromBase58("9vqYJjDUFecLL2xPUC4Rc7hyCtZ6iJ4mDiVZX7aFXoAe")
	testMintA     = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")
	testMintB     = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
)

// int128LE encodes v as a little-endian two's complement i128.
func int128LE(v *big.Int) []byte {
	u := new(big.Int).Set(v)
	if u.Sign() < 0 {
		u.Add(u, twoPow128)
	}
	be := u.FillBytes(make([]byte, u128Size))
	le := make([]byte, u128Size)
	for i := range be {
		le[i] = be[u128Size-1-i]
	}
	return le
}

func tickDataBytes(net *big.Int, gross uint64) []byte {
	out := make([]byte, 0, dynamicTickDataSize)
	out = append(out, int128LE(net)...)
	out = append(out, int128LE(new(big.Int).SetUint64(gross))...)
	return append(out, make([]byte, 5*u128Size)...)
}

func encodeFixedTickArray(start int32, pool solana.PublicKey, nets map[int]int64) []byte {
	buf := make([]byte, 0, FixedTickArraySize)
	buf = append(buf, FixedTickArrayDiscriminator[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(start))
	for i := 0; i < TickArraySize; i++ {
		net, ok := nets[i]
		if ok {
			buf = append(buf, 1)
			buf = append(buf, tickDataBytes(big.NewInt(net), abs64(net))...)
			continue
		}
		buf = append(buf, 0)
		buf = append(buf, make([]byte, dynamicTickDataSize)...)
	}
	return append(buf, pool.Bytes()...)
}

func encodeDynamicTickArray(start int32, pool solana.PublicKey, nets map[int]int64) []byte {
	var lo, hi uint64
	for i := range nets {
		if i < 64 {
			lo |= 1 << uint(i)
		} else {
			hi |= 1 << uint(i-64)
		}
	}

	buf := make([]byte, 0, dynamicTickArrayHeaderSize+TickArraySize)
	buf = append(buf, DynamicTickArrayDiscriminator[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(start))
	buf = append(buf, pool.Bytes()...)
	buf = binary.LittleEndian.AppendUint64(buf, lo)
	buf = binary.LittleEndian.AppendUint64(buf, hi)
	for i := 0; i < TickArraySize; i++ {
		net, ok := nets[i]
		if !ok {
			buf = append(buf, dynamicTickUninitialized)
			continue
		}
		buf = append(buf, dynamicTickInitialized)
		buf = append(buf, tickDataBytes(big.NewInt(net), abs64(net))...)
	}
	return buf
}

func encodePool(tickSpacing uint16, liquidity uint64, tickCurrent int32) []byte {
	buf := make([]byte, poolMinSize+64)
	copy(buf, WhirlpoolDiscriminator[:])
	binary.LittleEndian.PutUint16(buf[poolTickSpacingOffset:], tickSpacing)
	binary.LittleEndian.PutUint64(buf[poolLiquidityOffset:], liquidity)
	binary.LittleEndian.PutUint64(buf[poolLiquidityOffset+u128Size:], 1<<32)
	binary.LittleEndian.PutUint32(buf[poolLiquidityOffset+2*u128Size:], uint32(tickCurrent))
	copy(buf[poolTokenMintAOffset:], testMintA.Bytes())
	copy(buf[poolTokenMintBOffset:], testMintB.Bytes())
	return buf
}

func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}
