package state_test

import (
	"testing"

	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeTokenBalanceKeys(t *testing.T) {
	account := felt.AddressFromUint64(0x1234)
	low, high := state.FeeTokenBalanceKeys(account)

	base := crypto.StarknetKeccak([]byte("ERC20_balances"))
	accountFelt := account.Felt()
	assert.Equal(t, *crypto.Pedersen(&base, &accountFelt), low)

	var diff felt.Felt
	diff.Sub(&high, &low)
	assert.True(t, diff.IsOne())
}

func TestU256Split(t *testing.T) {
	tests := map[string]struct {
		value     *uint256.Int
		low, high felt.Felt
	}{
		"zero": {
			value: uint256.NewInt(0),
		},
		"low word only": {
			value: uint256.NewInt(1000),
			low:   felt.FromUint64(1000),
		},
		"high word only": {
			value: new(uint256.Int).Lsh(uint256.NewInt(3), 128),
			high:  felt.FromUint64(3),
		},
		"max u256": {
			value: new(uint256.Int).SetAllOne(),
			low:   *felt.UnsafeFromString("0xffffffffffffffffffffffffffffffff"),
			high:  *felt.UnsafeFromString("0xffffffffffffffffffffffffffffffff"),
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			low, high := state.SplitU256(test.value)
			assert.Equal(t, test.low, low)
			assert.Equal(t, test.high, high)
			assert.Equal(t, test.value, state.JoinU256(low, high))
		})
	}
}

func TestFeeTokenBalance(t *testing.T) {
	feeToken := felt.AddressFromUint64(0xfee)
	account := felt.AddressFromUint64(0xacc)
	st := state.NewCachedState(state.NewInMemoryStateReader(), nil)

	balance, err := state.FeeTokenBalance(st, feeToken, account)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	want := new(uint256.Int).Add(new(uint256.Int).Lsh(uint256.NewInt(1), 130), uint256.NewInt(7))
	state.SetFeeTokenBalance(st, feeToken, account, want)

	balance, err = state.FeeTokenBalance(st, feeToken, account)
	require.NoError(t, err)
	assert.Equal(t, want, balance)
}
