package execution_test

import (
	"slices"
	"testing"

	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdditionalOSResources(t *testing.T) {
	counter := map[string]uint64{
		execution.SyscallStorageRead:  2,
		execution.SyscallStorageWrite: 3,
	}

	got, err := execution.AdditionalOSResources(counter, execution.TxTypeInvokeFunction)
	require.NoError(t, err)
	assert.Equal(t, vm.ExecutionResources{
		Steps: 3589,
		Builtins: map[string]uint64{
			vm.RangeCheckBuiltin: 80,
			vm.PedersenBuiltin:   16,
		},
	}, got)

	t.Run("syscall builtins scale with the count", func(t *testing.T) {
		got, err := execution.AdditionalOSResources(map[string]uint64{execution.SyscallDeploy: 2}, execution.TxTypeDeploy)
		require.NoError(t, err)
		assert.Equal(t, uint64(2*936), got.Steps)
		assert.Equal(t, map[string]uint64{vm.RangeCheckBuiltin: 36, vm.PedersenBuiltin: 14}, got.Builtins)
	})

	t.Run("unknown syscall", func(t *testing.T) {
		_, err := execution.AdditionalOSResources(map[string]uint64{"nope": 1}, execution.TxTypeInvokeFunction)
		require.ErrorIs(t, err, execution.ErrResources)
	})

	t.Run("unknown transaction type", func(t *testing.T) {
		_, err := execution.AdditionalOSResources(nil, execution.TransactionType(42))
		require.ErrorIs(t, err, execution.ErrResources)
	})
}

func TestOSResourceTables(t *testing.T) {
	for _, txType := range []execution.TransactionType{
		execution.TxTypeDeclare,
		execution.TxTypeDeploy,
		execution.TxTypeDeployAccount,
		execution.TxTypeInvokeFunction,
		execution.TxTypeL1Handler,
	} {
		t.Run(txType.String(), func(t *testing.T) {
			_, ok := execution.OSTxResources(txType)
			assert.True(t, ok)
		})
	}

	r, ok := execution.OSSyscallResources(execution.SyscallCallContract)
	require.True(t, ok)
	assert.Equal(t, uint64(690), r.Steps)
	r.Builtins[vm.RangeCheckBuiltin] = 0

	r, _ = execution.OSSyscallResources(execution.SyscallCallContract)
	assert.Equal(t, uint64(19), r.Builtins[vm.RangeCheckBuiltin])

	_, ok = execution.OSSyscallResources("nope")
	assert.False(t, ok)

	syscalls := execution.OSSyscalls()
	assert.Len(t, syscalls, 19)
	assert.True(t, slices.IsSorted(syscalls))
	for _, name := range syscalls {
		_, ok := execution.OSSyscallResources(name)
		assert.True(t, ok, name)
	}
}
