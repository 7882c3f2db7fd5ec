package execution_test

import (
	"testing"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/utils"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func l2ToL1Messages(payloadSizes ...int) []core.L2ToL1Message {
	messages := make([]core.L2ToL1Message, len(payloadSizes))
	for i, size := range payloadSizes {
		payload := make([]felt.Felt, size)
		messages[i] = core.L2ToL1Message{
			From:    felt.AddressFromUint64(1234),
			To:      common.BigToAddress(common.Big1),
			Payload: felt.Ptrs(payload...),
		}
	}
	return messages
}

func TestEventEmissionCost(t *testing.T) {
	assert.Equal(t, 18054, execution.EventEmissionCost(40, 9))
}

func TestLogMessageToL1EmissionsCost(t *testing.T) {
	assert.Equal(t, 4792, execution.LogMessageToL1EmissionsCost(l2ToL1Messages(1, 2)))
	assert.Equal(t, 0, execution.LogMessageToL1EmissionsCost(nil))
}

func TestConsumedMessageToL2EmissionsCost(t *testing.T) {
	assert.Equal(t, 5203, execution.ConsumedMessageToL2EmissionsCost(utils.HeapPtr(10)))
	assert.Equal(t, 0, execution.ConsumedMessageToL2EmissionsCost(nil))
}

func TestMessageSegmentLength(t *testing.T) {
	assert.Equal(t, 24, execution.MessageSegmentLength(l2ToL1Messages(1, 2), utils.HeapPtr(10)))
	assert.Equal(t, 9, execution.MessageSegmentLength(l2ToL1Messages(2, 1), nil))
}

func TestCalculateTxGasUsage(t *testing.T) {
	gas := execution.CalculateTxGasUsage(l2ToL1Messages(1, 2), state.StateChangesCount{
		NStorageUpdates:    2,
		NClassHashUpdates:  1,
		NModifiedContracts: 2,
	}, utils.HeapPtr(2))
	assert.Equal(t, 76439, gas)

	t.Run("state changes only", func(t *testing.T) {
		changes := state.StateChangesCount{NStorageUpdates: 1, NModifiedContracts: 1}
		assert.Equal(t, 4, execution.OnchainDataSegmentLength(changes))
		assert.Equal(t, 4*execution.SharpGasPerMemoryWord, execution.CalculateTxGasUsage(nil, changes, nil))
	})
}

func TestCalculateTxResources(t *testing.T) {
	resources := execution.NewExecutionResourcesManager()
	resources.CairoUsage = vm.ExecutionResources{
		Steps:       100,
		MemoryHoles: 5,
		Builtins:    map[string]uint64{vm.PedersenBuiltin: 1, vm.BitwiseBuiltin: 0},
	}
	resources.IncrementSyscallCounter(execution.SyscallStorageRead, 2)
	resources.IncrementSyscallCounter(execution.SyscallStorageWrite, 3)

	changes := state.StateChangesCount{NStorageUpdates: 1, NModifiedContracts: 1}
	got, err := execution.CalculateTxResources(resources, []*execution.CallInfo{nil, leafCall(1)},
		execution.TxTypeInvokeFunction, changes, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]uint64{
		execution.L1GasUsage: uint64(execution.CalculateTxGasUsage(nil, changes, nil)),
		vm.NSteps:            100 + 5 + 3589,
		vm.PedersenBuiltin:   1 + 16,
		vm.RangeCheckBuiltin: 80,
	}, got)

	resources.IncrementSyscallCounter("unknown_syscall", 1)
	_, err = execution.CalculateTxResources(resources, nil, execution.TxTypeInvokeFunction, changes, nil)
	require.ErrorIs(t, err, execution.ErrResources)
}
