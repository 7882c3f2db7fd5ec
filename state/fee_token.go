package state

import (
	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/holiman/uint256"
)

var erc20BalancesVar = crypto.StarknetKeccak([]byte("ERC20_balances"))

// FeeTokenBalanceKeys returns the storage keys of the low and high 128-bit words
// of account's balance in the fee token contract.
func FeeTokenBalanceKeys(account felt.Address) (felt.Felt, felt.Felt) {
	accountFelt := account.Felt()
	low := *crypto.Pedersen(&erc20BalancesVar, &accountFelt)
	high := *new(felt.Felt).Add(&low, &felt.One)
	return low, high
}

// FeeTokenBalance reads account's balance from the fee token contract.
func FeeTokenBalance(r StateReader, feeToken, account felt.Address) (*uint256.Int, error) {
	lowKey, highKey := FeeTokenBalanceKeys(account)

	low, err := r.StorageAt(feeToken, lowKey)
	if err != nil {
		return nil, err
	}
	high, err := r.StorageAt(feeToken, highKey)
	if err != nil {
		return nil, err
	}
	return JoinU256(low, high), nil
}

// SetFeeTokenBalance writes account's balance into the fee token contract.
func SetFeeTokenBalance(s State, feeToken, account felt.Address, balance *uint256.Int) {
	lowKey, highKey := FeeTokenBalanceKeys(account)
	low, high := SplitU256(balance)
	s.SetStorageAt(feeToken, lowKey, low)
	s.SetStorageAt(feeToken, highKey, high)
}

// SplitU256 splits v into its low and high 128-bit words.
func SplitU256(v *uint256.Int) (felt.Felt, felt.Felt) {
	b := v.Bytes32()
	return felt.FromBytes(b[16:]), felt.FromBytes(b[:16])
}

// JoinU256 is the inverse of SplitU256. Words wider than 128 bits are truncated.
func JoinU256(low, high felt.Felt) *uint256.Int {
	lowBytes, highBytes := low.Bytes(), high.Bytes()
	var b [32]byte
	copy(b[:16], highBytes[16:])
	copy(b[16:], lowBytes[16:])
	return new(uint256.Int).SetBytes32(b[:])
}
