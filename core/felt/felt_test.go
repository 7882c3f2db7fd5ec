package felt_test

import (
	"math/big"
	"testing"

	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJson(t *testing.T) {
	var with felt.Felt
	assert.NoError(t, with.UnmarshalJSON([]byte("0x4437ab")))

	var without felt.Felt
	assert.NoError(t, without.UnmarshalJSON([]byte("4437ab")))
	assert.True(t, without.Equal(&with))

	var quoted felt.Felt
	assert.NoError(t, quoted.UnmarshalJSON([]byte(`"0x4437ab"`)))
	assert.True(t, quoted.Equal(&with))
}

func TestFeltCbor(t *testing.T) {
	var val felt.Felt
	_, err := val.SetRandom()
	require.NoError(t, err)

	bytes, err := cbor.Marshal(val)
	require.NoError(t, err)

	var unmarshaled felt.Felt
	require.NoError(t, cbor.Unmarshal(bytes, &unmarshaled))
	assert.Equal(t, val, unmarshaled)
}

func TestNewFromString(t *testing.T) {
	t.Run("hex and decimal agree", func(t *testing.T) {
		hex, err := felt.NewFromString("0x10")
		require.NoError(t, err)
		dec, err := felt.NewFromString("16")
		require.NoError(t, err)
		assert.True(t, hex.Equal(dec))
		assert.Equal(t, "0x10", dec.String())
	})

	t.Run("prime is rejected", func(t *testing.T) {
		_, err := felt.NewFromString(felt.Modulus().String())
		require.ErrorIs(t, err, felt.ErrNonCanonical)
	})

	t.Run("negative is rejected", func(t *testing.T) {
		_, err := felt.NewFromString("-1")
		require.ErrorIs(t, err, felt.ErrNonCanonical)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := felt.NewFromString("0xzz")
		require.Error(t, err)
	})
}

func TestSetBytesCanonical(t *testing.T) {
	p := felt.Modulus()
	var pBytes [32]byte
	p.FillBytes(pBytes[:])

	var f felt.Felt
	require.ErrorIs(t, f.SetBytesCanonical(pBytes[:]), felt.ErrNonCanonical)
	require.ErrorIs(t, f.SetBytesCanonical([]byte{1}), felt.ErrNonCanonical)

	pMinusOne := new(big.Int).Sub(p, big.NewInt(1))
	var b [32]byte
	pMinusOne.FillBytes(b[:])
	require.NoError(t, f.SetBytesCanonical(b[:]))
	assert.Equal(t, pMinusOne, f.BigInt(new(big.Int)))
}

func TestArithmeticWraps(t *testing.T) {
	pMinusOne := felt.FromBigInt(new(big.Int).Sub(felt.Modulus(), big.NewInt(1)))
	var sum felt.Felt
	sum.Add(&pMinusOne, &felt.One)
	assert.True(t, sum.IsZero())

	var diff felt.Felt
	diff.Sub(&felt.Zero, &felt.One)
	assert.Equal(t, pMinusOne, diff)
}

func TestUint64(t *testing.T) {
	f := felt.FromUint64(42)
	v, err := f.Uint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	wide := felt.FromBigInt(new(big.Int).Lsh(big.NewInt(1), 70))
	_, err = wide.Uint64()
	require.ErrorIs(t, err, felt.ErrOverflow)
}

func TestTypedWrappers(t *testing.T) {
	a := felt.AddressFromUint64(5)
	b := felt.Address(felt.FromUint64(5))
	assert.True(t, a.Equal(&b))
	assert.Equal(t, "0x5", a.String())

	m := map[felt.ClassHash]int{felt.ClassHash(felt.FromUint64(1)): 1}
	_, ok := m[felt.ClassHash(felt.FromUint64(1))]
	assert.True(t, ok)

	assert.True(t, felt.IsZero(felt.CompiledClassHash{}))
	assert.True(t, felt.Equal(a, b))
}
