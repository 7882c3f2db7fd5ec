package transaction

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/holiman/uint256"
)

var (
	ErrUnsupportedVersion     = errors.New("unsupported transaction version")
	ErrInvalidMaxFee          = errors.New("the max_fee field in declare transactions of version 0 must be 0")
	ErrInvalidNonce           = errors.New("the nonce field in declare transactions of version 0 must be 0")
	ErrInvalidSignature       = errors.New("the signature field in declare transactions of version 0 must be empty")
	ErrClassAlreadyDeclared   = errors.New("class already declared")
	ErrMissingL1GasUsage      = errors.New("resources do not include the l1 gas usage")
	ErrActualFeeExceedsMaxFee = errors.New("actual fee exceeds max fee")
	ErrMaxFeeExceedsBalance   = errors.New("max fee exceeds fee token balance")
	ErrFeeTransfer            = errors.New("fee transfer failure")
	ErrL1HandlerFeeTooLow     = errors.New("fee paid on L1 is lower than the actual fee")
	ErrEmptyCalldata          = errors.New("l1 handler calldata must start with the L1 sender")
)

type InvalidNonceError struct {
	Address  felt.Address
	Expected felt.Felt
	Got      felt.Felt
}

func (e *InvalidNonceError) Error() string {
	return fmt.Sprintf("invalid transaction nonce of contract %s: expected %s, got %s",
		e.Address.String(), e.Expected.String(), e.Got.String())
}

type FeeCheckKind uint8

const (
	FeeExceedsMax FeeCheckKind = iota + 1
	InsufficientFeeTokenBalance
)

func (k FeeCheckKind) String() string {
	switch k {
	case FeeExceedsMax:
		return "fee exceeds max fee"
	case InsufficientFeeTokenBalance:
		return "insufficient fee token balance"
	default:
		return fmt.Sprintf("FeeCheckKind(%d)", uint8(k))
	}
}

// FeeCheckError is a post-execution fee check failure. Revertible transactions turn it into a
// reverted receipt instead of failing.
type FeeCheckError struct {
	Kind      FeeCheckKind
	ActualFee *uint256.Int
	// Limit is the max fee or the balance, depending on Kind.
	Limit *uint256.Int
}

func (e *FeeCheckError) Error() string {
	switch e.Kind {
	case FeeExceedsMax:
		return fmt.Sprintf("calculated fee (%s) exceeds max fee (%s)", e.ActualFee.Dec(), e.Limit.Dec())
	case InsufficientFeeTokenBalance:
		return fmt.Sprintf("insufficient fee token balance: fee %s, balance %s", e.ActualFee.Dec(), e.Limit.Dec())
	default:
		return e.Kind.String()
	}
}
