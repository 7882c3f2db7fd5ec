package state

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starknet-executor/core/felt"
)

var (
	ErrMissingContractClass         = errors.New("missing contract class")
	ErrNoneClassHash                = errors.New("no class hash assigned to address")
	ErrNoneNonce                    = errors.New("no nonce assigned to address")
	ErrNoneCompiledClassHash        = errors.New("no compiled class hash assigned to class hash")
	ErrStateCacheAlreadyInitialized = errors.New("state cache already initialized")
	ErrContractAddressOutOfRange    = errors.New("contract address out of range")
)

type ContractAddressUnavailableError struct {
	Address felt.Address
}

func (e *ContractAddressUnavailableError) Error() string {
	return fmt.Sprintf("requested contract address %s is unavailable for deployment", e.Address.String())
}
