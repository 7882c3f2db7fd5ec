package execution

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
)

var (
	ErrCallTypeIsNotDelegate         = errors.New("class hash override requires a delegate or library call")
	ErrAttemptToUseNoneCodeAddress   = errors.New("attempt to use a nil code address")
	ErrNotDeployedContract           = errors.New("contract is not deployed")
	ErrNonUniqueEntryPoint           = errors.New("entry point selector matches more than one entry point")
	ErrRecursionDepthExceeded        = errors.New("recursion depth exceeded")
	ErrStepsLimitExceeded            = errors.New("steps limit exceeded")
	ErrUnauthorizedActionOnValidate  = errors.New("unauthorized action on validate")
	ErrUnexpectedHolesInEventOrder   = errors.New("unexpected holes in the event order")
	ErrUnexpectedHolesL2ToL1Messages = errors.New("unexpected holes in the L2-to-L1 message order")
	ErrEmptyConstructorCalldata      = errors.New("cannot pass calldata to a contract without a constructor")
	ErrUnsupportedAddressDomain      = errors.New("unsupported address domain")
	ErrInvalidL1Address              = errors.New("to address does not fit in an L1 address")
	ErrBlockNumberOutOfRange         = errors.New("block number out of range")
	ErrInvalidBlockNumber            = errors.New("block number must increase")
	ErrInvalidBlockTimestamp         = errors.New("block timestamp must not decrease")
	ErrResources                     = errors.New("unknown resource")
)

type EntryPointNotFoundError struct {
	Selector       felt.Felt
	EntryPointType core.EntryPointType
}

func (e *EntryPointNotFoundError) Error() string {
	return fmt.Sprintf("%s entry point %s not found in contract", e.EntryPointType, e.Selector.String())
}

// SyscallError reports the failure of one syscall issued by a running contract.
type SyscallError struct {
	Syscall string
	Err     error
}

func (e *SyscallError) Error() string {
	return fmt.Sprintf("syscall %s: %v", e.Syscall, e.Err)
}

func (e *SyscallError) Unwrap() error {
	return e.Err
}
