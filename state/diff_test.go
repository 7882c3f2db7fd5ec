package state_test

import (
	"testing"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/db"
	"github.com/NethermindEth/starknet-executor/db/memory"
	"github.com/NethermindEth/starknet-executor/db/pebble"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateDiffFromCachedState(t *testing.T) {
	t.Run("reads alone produce an empty diff", func(t *testing.T) {
		st := state.NewCachedState(newReader(), nil)
		_, err := st.ClassHashAt(contractAddr)
		require.NoError(t, err)
		_, err = st.StorageAt(contractAddr, felt.FromUint64(1))
		require.NoError(t, err)

		diff := state.StateDiffFromCachedState(st)
		assert.Empty(t, diff.StorageDiffs)
		assert.Empty(t, diff.ClassHashes)
		assert.Empty(t, diff.Nonces)
	})

	t.Run("writes are grouped by contract", func(t *testing.T) {
		st := state.NewCachedState(newReader(), nil)
		st.SetStorageAt(contractAddr, felt.FromUint64(1), felt.FromUint64(2))
		st.SetStorageAt(contractAddr, felt.FromUint64(3), felt.FromUint64(4))
		require.NoError(t, st.IncrementNonce(contractAddr))

		diff := state.StateDiffFromCachedState(st)
		assert.Equal(t, map[felt.Address]map[felt.Felt]felt.Felt{
			contractAddr: {
				felt.FromUint64(1): felt.FromUint64(2),
				felt.FromUint64(3): felt.FromUint64(4),
			},
		}, diff.StorageDiffs)
		assert.Equal(t, map[felt.Address]felt.Felt{contractAddr: felt.FromUint64(110)}, diff.Nonces)
	})
}

func TestStateDiffSquash(t *testing.T) {
	a := state.EmptyStateDiff()
	a.Nonces[contractAddr] = felt.FromUint64(1)
	a.StorageDiffs[contractAddr] = map[felt.Felt]felt.Felt{
		felt.FromUint64(1): felt.FromUint64(1),
		felt.FromUint64(2): felt.FromUint64(2),
	}

	b := state.EmptyStateDiff()
	b.Nonces[contractAddr] = felt.FromUint64(2)
	b.StorageDiffs[contractAddr] = map[felt.Felt]felt.Felt{felt.FromUint64(2): felt.FromUint64(20)}
	b.ClassHashes[felt.AddressFromUint64(5)] = classHash

	squashed := a.Squash(b)
	assert.Equal(t, felt.FromUint64(2), squashed.Nonces[contractAddr])
	assert.Equal(t, map[felt.Felt]felt.Felt{
		felt.FromUint64(1): felt.FromUint64(1),
		felt.FromUint64(2): felt.FromUint64(20),
	}, squashed.StorageDiffs[contractAddr])
	assert.Equal(t, classHash, squashed.ClassHashes[felt.AddressFromUint64(5)])

	assert.Equal(t, felt.FromUint64(1), a.Nonces[contractAddr], "inputs are not modified")
}

func TestStateDiffToCachedState(t *testing.T) {
	diff := state.EmptyStateDiff()
	diff.StorageDiffs[contractAddr] = map[felt.Felt]felt.Felt{felt.FromUint64(1): felt.FromUint64(100)}
	diff.Nonces[contractAddr] = felt.FromUint64(200)

	st := diff.ToCachedState(newReader(), nil)
	value, err := st.StorageAt(contractAddr, felt.FromUint64(1))
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(100), value)

	nonce, err := st.NonceAt(contractAddr)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(200), nonce)

	assert.Equal(t, diff.StorageDiffs, state.StateDiffFromCachedState(st).StorageDiffs)
}

func TestCommitAndDBReader(t *testing.T) {
	stores := map[string]db.KeyValueStore{
		"memory": memory.New(),
		"pebble": pebble.NewMemTest(t),
	}

	deprecated := &core.DeprecatedClass{
		Program: []byte("program"),
		EntryPointsByType: map[core.EntryPointType][]core.EntryPoint{
			core.External: {{Selector: felt.FromUint64(1), Offset: 4}},
		},
	}
	sierra := felt.ClassHash(felt.FromUint64(0x51e77a))
	compiled := felt.CompiledClassHash(felt.FromUint64(0xca5))

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			st := state.NewCachedState(state.NewDBReader(store), nil)
			require.NoError(t, st.SetContractClass(classHash, deprecated))
			require.NoError(t, st.SetContractClass(felt.ClassHash(compiled), &core.CasmClass{CompilerVersion: "2.1.0"}))
			require.NoError(t, st.SetCompiledClassHash(sierra, compiled))
			require.NoError(t, st.DeployContract(contractAddr, classHash))
			require.NoError(t, st.IncrementNonce(contractAddr))
			st.SetStorageAt(contractAddr, felt.FromUint64(1), felt.FromUint64(42))

			batch := store.NewBatch()
			require.NoError(t, state.StateDiffFromCachedState(st).Commit(batch))
			require.NoError(t, batch.Write())

			reader := state.NewDBReader(store)

			got, err := reader.ClassHashAt(contractAddr)
			require.NoError(t, err)
			assert.Equal(t, classHash, got)

			nonce, err := reader.NonceAt(contractAddr)
			require.NoError(t, err)
			assert.Equal(t, felt.FromUint64(1), nonce)

			value, err := reader.StorageAt(contractAddr, felt.FromUint64(1))
			require.NoError(t, err)
			assert.Equal(t, felt.FromUint64(42), value)

			value, err = reader.StorageAt(contractAddr, felt.FromUint64(2))
			require.NoError(t, err)
			assert.True(t, value.IsZero())

			class, err := reader.ContractClass(classHash)
			require.NoError(t, err)
			assert.Equal(t, core.Cairo0, class.Version())
			assert.Equal(t, deprecated.EntryPoints(core.External), class.EntryPoints(core.External))

			class, err = reader.ContractClass(sierra)
			require.NoError(t, err)
			assert.Equal(t, core.Cairo1, class.Version())

			undeployed := felt.AddressFromUint64(1)
			_, err = reader.ClassHashAt(undeployed)
			require.ErrorIs(t, err, state.ErrNoneClassHash)
			_, err = reader.NonceAt(undeployed)
			require.ErrorIs(t, err, state.ErrNoneNonce)
			_, err = reader.CompiledClassHash(classHash)
			require.ErrorIs(t, err, state.ErrNoneCompiledClassHash)
			_, err = reader.ContractClass(felt.ClassHash(felt.FromUint64(3)))
			require.ErrorIs(t, err, state.ErrMissingContractClass)
		})
	}
}

func TestDeployedContractWithoutNonce(t *testing.T) {
	store := memory.New()
	diff := state.EmptyStateDiff()
	diff.ClassHashes[contractAddr] = classHash
	require.NoError(t, diff.Commit(store))

	nonce, err := state.NewDBReader(store).NonceAt(contractAddr)
	require.NoError(t, err)
	assert.True(t, nonce.IsZero())
}
