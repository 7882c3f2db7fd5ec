package execution

import (
	"fmt"
	"maps"
	"slices"

	"github.com/NethermindEth/starknet-executor/vm"
)

func osResources(steps, pedersen, rangeCheck uint64) vm.ExecutionResources {
	builtins := make(map[string]uint64, 2)
	if pedersen != 0 {
		builtins[vm.PedersenBuiltin] = pedersen
	}
	if rangeCheck != 0 {
		builtins[vm.RangeCheckBuiltin] = rangeCheck
	}
	return vm.NewExecutionResources(steps, builtins)
}

// Resources the OS spends around the execution of each transaction type.
var osTxResources = map[TransactionType]vm.ExecutionResources{
	TxTypeInvokeFunction: osResources(3363, 16, 80),
	TxTypeDeclare:        osResources(2703, 15, 63),
	TxTypeDeploy:         osResources(0, 0, 0),
	TxTypeDeployAccount:  osResources(3612, 23, 83),
	TxTypeL1Handler:      osResources(1068, 11, 17),
}

// Resources the OS spends serving one syscall.
var osSyscallResources = map[string]vm.ExecutionResources{
	SyscallCallContract:         osResources(690, 0, 19),
	SyscallDelegateCall:         osResources(712, 0, 19),
	SyscallDelegateL1Handler:    osResources(691, 0, 15),
	SyscallDeploy:               osResources(936, 7, 18),
	SyscallLibraryCall:          osResources(679, 0, 19),
	SyscallLibraryCallL1Handler: osResources(658, 0, 15),
	SyscallEmitEvent:            osResources(19, 0, 0),
	SyscallGetBlockHash:         osResources(44, 0, 0),
	SyscallGetBlockNumber:       osResources(40, 0, 0),
	SyscallGetBlockTimestamp:    osResources(38, 0, 0),
	SyscallGetCallerAddress:     osResources(32, 0, 0),
	SyscallGetContractAddress:   osResources(36, 0, 0),
	SyscallGetSequencerAddress:  osResources(34, 0, 0),
	SyscallGetTxInfo:            osResources(29, 0, 0),
	SyscallGetTxSignature:       osResources(44, 0, 0),
	SyscallReplaceClass:         osResources(73, 0, 0),
	SyscallSendMessageToL1:      osResources(84, 0, 0),
	SyscallStorageRead:          osResources(44, 0, 0),
	SyscallStorageWrite:         osResources(46, 0, 0),
}

// OSTxResources returns the OS resources of a transaction type.
func OSTxResources(txType TransactionType) (vm.ExecutionResources, bool) {
	r, ok := osTxResources[txType]
	return r.Clone(), ok
}

// OSSyscallResources returns the OS resources of a single syscall.
func OSSyscallResources(syscall string) (vm.ExecutionResources, bool) {
	r, ok := osSyscallResources[syscall]
	return r.Clone(), ok
}

// OSSyscalls lists the syscalls with known OS resources, sorted by name.
func OSSyscalls() []string {
	return slices.Sorted(maps.Keys(osSyscallResources))
}

// AdditionalOSResources is what the OS adds on top of the contract's own cairo usage.
func AdditionalOSResources(syscallCounter map[string]uint64, txType TransactionType) (vm.ExecutionResources, error) {
	total := vm.ExecutionResources{Builtins: make(map[string]uint64)}
	for syscall, n := range syscallCounter {
		r, ok := osSyscallResources[syscall]
		if !ok {
			return vm.ExecutionResources{}, fmt.Errorf("%w: syscall %s", ErrResources, syscall)
		}
		total = total.Add(r.Scale(n))
	}

	r, ok := osTxResources[txType]
	if !ok {
		return vm.ExecutionResources{}, fmt.Errorf("%w: transaction type %s", ErrResources, txType)
	}
	return total.Add(r), nil
}
