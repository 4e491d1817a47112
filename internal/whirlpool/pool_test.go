package whirlpool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodePool(t *testing.T) {
	pool, err := DecodePool(testPool, encodePool(64, 9737184753466, -11300))
	require.NoError(t, err)

	require.Equal(t, testPool, pool.Address)
	require.Equal(t, uint16(64), pool.TickSpacing)
	require.Equal(t, uint64(9737184753466), pool.Liquidity.Lo)
	require.Equal(t, uint64(1)<<32, pool.SqrtPrice.Lo)
	require.Equal(t, int32(-11300), pool.TickCurrentIndex)
	require.Equal(t, testMintA, pool.TokenMintA)
	require.Equal(t, testMintB, pool.TokenMintB)
}

func TestDecodePoolErrors(t *testing.T) {
	_, err := DecodePool(testPool, encodePool(64, 1, 0)[:poolMinSize-1])
	require.Error(t, err)

	_, err = DecodePool(testPool, encodePool(0, 1, 0))
	require.Error(t, err)

	data := encodePool(64, 1, 0)
	data[0] ^= 0xff
	_, err = DecodePool(testPool, data)
	require.Error(t, err)
}

func TestDecodeMintDecimals(t *testing.T) {
	data := make([]byte, 82)
	data[mintDecimalsOffset] = 6
	decimals, err := DecodeMintDecimals(data)
	require.NoError(t, err)
	require.Equal(t, uint8(6), decimals)

	_, err = DecodeMintDecimals(data[:mintDecimalsOffset])
	require.Error(t, err)
}

func TestParsePublicKeys(t *testing.T) {
	keys, err := ParsePublicKeys([]string{" " + testPool.String(), "", testMintA.String()})
	require.NoError(t, err)
	require.Equal(t, testPool, keys[0])
	require.Len(t, keys, 2)

	_, err = ParsePublicKeys([]string{"not-a-key"})
	require.Error(t, err)
}
