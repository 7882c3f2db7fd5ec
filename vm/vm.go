package vm

import (
	"errors"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
)

var ErrUnsupportedClass = errors.New("unsupported contract class")

// Limits bound a single run.
type Limits struct {
	// MaxSteps is the number of steps left in the transaction budget, 0 means unbounded.
	MaxSteps   uint64
	InitialGas uint64
}

type RunResult struct {
	Retdata     []*felt.Felt
	Resources   ExecutionResources
	GasConsumed uint64
}

//go:generate mockgen -destination=../mocks/mock_vm.go -package=mocks github.com/NethermindEth/starknet-executor/vm VM
type VM interface {
	// Run executes entryPoint of class with the given calldata. Every side effect the contract
	// has goes through handler; the VM keeps no reference to it after Run returns.
	Run(class core.CompiledClass, entryPoint core.EntryPoint, calldata []*felt.Felt,
		handler SyscallHandler, limits Limits) (*RunResult, error)
}

// TxInfo is what a contract sees of the transaction it runs in.
type TxInfo struct {
	Version                felt.Felt
	AccountContractAddress felt.Address
	MaxFee                 felt.Felt
	Signature              []*felt.Felt
	TransactionHash        felt.Felt
	ChainID                felt.Felt
	Nonce                  felt.Felt
}

// SyscallHandler is the bridge a running contract uses to reach the outside world.
type SyscallHandler interface {
	StorageRead(addressDomain, key felt.Felt) (felt.Felt, error)
	StorageWrite(addressDomain, key, value felt.Felt) error

	CallContract(contractAddress felt.Address, selector felt.Felt, calldata []*felt.Felt) ([]*felt.Felt, error)
	LibraryCall(classHash felt.ClassHash, selector felt.Felt, calldata []*felt.Felt) ([]*felt.Felt, error)
	LibraryCallL1Handler(classHash felt.ClassHash, selector felt.Felt, calldata []*felt.Felt) ([]*felt.Felt, error)
	DelegateCall(contractAddress felt.Address, selector felt.Felt, calldata []*felt.Felt) ([]*felt.Felt, error)
	DelegateL1Handler(contractAddress felt.Address, selector felt.Felt, calldata []*felt.Felt) ([]*felt.Felt, error)
	Deploy(classHash felt.ClassHash, salt felt.Felt, calldata []*felt.Felt, deployFromZero bool) (felt.Address, []*felt.Felt, error)

	EmitEvent(keys, data []*felt.Felt) error
	SendMessageToL1(toAddress felt.Felt, payload []*felt.Felt) error
	ReplaceClass(classHash felt.ClassHash) error

	GetCallerAddress() (felt.Address, error)
	GetContractAddress() (felt.Address, error)
	GetSequencerAddress() (felt.Address, error)
	GetBlockNumber() (uint64, error)
	GetBlockTimestamp() (uint64, error)
	GetBlockHash(blockNumber uint64) (felt.Felt, error)
	GetTxInfo() (*TxInfo, error)
	GetTxSignature() ([]*felt.Felt, error)
}
