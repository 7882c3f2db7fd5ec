package state

import (
	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
)

// StorageEntry identifies one storage cell of a contract.
type StorageEntry struct {
	Address felt.Address
	Key     felt.Felt
}

//go:generate mockgen -destination=../mocks/mock_state.go -package=mocks github.com/NethermindEth/starknet-executor/state StateReader
type StateReader interface {
	// ContractClass returns ErrMissingContractClass if the class was never declared.
	ContractClass(classHash felt.ClassHash) (core.CompiledClass, error)
	// ClassHashAt returns ErrNoneClassHash for an undeployed address.
	ClassHashAt(addr felt.Address) (felt.ClassHash, error)
	// NonceAt returns ErrNoneNonce for an undeployed address.
	NonceAt(addr felt.Address) (felt.Felt, error)
	// StorageAt is total: a key that was never written reads as zero.
	StorageAt(addr felt.Address, key felt.Felt) (felt.Felt, error)
	// CompiledClassHash returns ErrNoneCompiledClassHash for classes declared without one.
	CompiledClassHash(classHash felt.ClassHash) (felt.CompiledClassHash, error)
}

type State interface {
	StateReader

	SetContractClass(classHash felt.ClassHash, class core.CompiledClass) error
	DeployContract(addr felt.Address, classHash felt.ClassHash) error
	SetClassHashAt(addr felt.Address, classHash felt.ClassHash) error
	IncrementNonce(addr felt.Address) error
	SetStorageAt(addr felt.Address, key, value felt.Felt)
	SetCompiledClassHash(classHash felt.ClassHash, compiledClassHash felt.CompiledClassHash) error
}
