package state_test

import (
	"testing"

	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(addr, key uint64) state.StorageEntry {
	return state.StorageEntry{Address: felt.AddressFromUint64(addr), Key: felt.FromUint64(key)}
}

func TestStateCachePrecedence(t *testing.T) {
	cache := state.NewStateCache()
	e := entry(1, 2)

	_, ok := cache.GetStorage(e)
	assert.False(t, ok)

	cache.SetStorageInitial(e, felt.FromUint64(5))
	value, ok := cache.GetStorage(e)
	require.True(t, ok)
	assert.Equal(t, felt.FromUint64(5), value)

	t.Run("writes shadow initial values", func(t *testing.T) {
		cache.SetStorageWrite(e, felt.FromUint64(6))
		cache.SetStorageWrite(e, felt.FromUint64(7))
		value, ok := cache.GetStorage(e)
		require.True(t, ok)
		assert.Equal(t, felt.FromUint64(7), value)
	})

	t.Run("first read wins", func(t *testing.T) {
		addr := felt.AddressFromUint64(3)
		cache.SetNonceInitial(addr, felt.FromUint64(1))
		cache.SetNonceInitial(addr, felt.FromUint64(2))
		nonce, ok := cache.GetNonce(addr)
		require.True(t, ok)
		assert.Equal(t, felt.FromUint64(1), nonce)
	})
}

func TestStateCacheSetInitialValues(t *testing.T) {
	classHashes := map[felt.Address]felt.ClassHash{
		felt.AddressFromUint64(10): felt.ClassHash(felt.FromUint64(8)),
	}
	compiled := map[felt.ClassHash]felt.CompiledClassHash{
		felt.ClassHash(felt.FromUint64(8)): felt.CompiledClassHash(felt.FromUint64(80)),
	}
	nonces := map[felt.Address]felt.Felt{felt.AddressFromUint64(9): felt.FromUint64(12)}
	storage := map[state.StorageEntry]felt.Felt{entry(4, 1): felt.FromUint64(18)}

	cache := state.NewStateCache()
	require.NoError(t, cache.SetInitialValues(classHashes, compiled, nonces, storage))

	classHash, ok := cache.GetClassHash(felt.AddressFromUint64(10))
	require.True(t, ok)
	assert.Equal(t, felt.ClassHash(felt.FromUint64(8)), classHash)

	compiledHash, ok := cache.GetCompiledClassHash(felt.ClassHash(felt.FromUint64(8)))
	require.True(t, ok)
	assert.Equal(t, felt.CompiledClassHash(felt.FromUint64(80)), compiledHash)

	value, ok := cache.GetStorage(entry(4, 1))
	require.True(t, ok)
	assert.Equal(t, felt.FromUint64(18), value)

	err := cache.SetInitialValues(classHashes, compiled, nonces, storage)
	require.ErrorIs(t, err, state.ErrStateCacheAlreadyInitialized)

	t.Run("a cache with writes is already initialised", func(t *testing.T) {
		cache := state.NewStateCache()
		cache.SetNonceWrite(felt.AddressFromUint64(1), felt.FromUint64(1))
		require.ErrorIs(t, cache.SetInitialValues(nil, nil, nil, nil), state.ErrStateCacheAlreadyInitialized)
	})
}

func TestStateCacheUpdateWritesFromOther(t *testing.T) {
	t.Run("disjoint keys are unioned regardless of order", func(t *testing.T) {
		a := state.NewStateCache()
		a.SetStorageWrite(entry(1, 1), felt.FromUint64(11))
		a.SetNonceWrite(felt.AddressFromUint64(1), felt.FromUint64(1))

		b := state.NewStateCache()
		b.SetStorageWrite(entry(2, 2), felt.FromUint64(22))
		b.SetClassHashWrite(felt.AddressFromUint64(2), felt.ClassHash(felt.FromUint64(99)))

		ab := state.NewStateCache()
		ab.UpdateWritesFromOther(a)
		ab.UpdateWritesFromOther(b)

		ba := state.NewStateCache()
		ba.UpdateWritesFromOther(b)
		ba.UpdateWritesFromOther(a)

		assert.Equal(t, ab, ba)
		for _, c := range []*state.StateCache{ab, ba} {
			v, ok := c.GetStorage(entry(1, 1))
			require.True(t, ok)
			assert.Equal(t, felt.FromUint64(11), v)
			v, ok = c.GetStorage(entry(2, 2))
			require.True(t, ok)
			assert.Equal(t, felt.FromUint64(22), v)
			assert.Equal(t, 2, c.StorageWriteCount())
		}
	})

	t.Run("child writes overwrite the parent", func(t *testing.T) {
		parent := state.NewStateCache()
		parent.SetStorageWrite(entry(1, 1), felt.FromUint64(1))
		child := state.NewStateCache()
		child.SetStorageWrite(entry(1, 1), felt.FromUint64(2))

		parent.UpdateWritesFromOther(child)
		v, ok := parent.GetStorage(entry(1, 1))
		require.True(t, ok)
		assert.Equal(t, felt.FromUint64(2), v)
	})
}

func TestStateCacheUpdateInitialValues(t *testing.T) {
	cache := state.NewStateCache()
	cache.SetStorageInitial(entry(1, 1), felt.FromUint64(1))
	cache.SetStorageWrite(entry(1, 1), felt.FromUint64(2))
	cache.SetNonceWrite(felt.AddressFromUint64(1), felt.FromUint64(3))

	cache.UpdateInitialValues()

	assert.Zero(t, cache.StorageWriteCount())
	assert.Empty(t, cache.AccessedContractAddresses())
	v, ok := cache.GetStorage(entry(1, 1))
	require.True(t, ok)
	assert.Equal(t, felt.FromUint64(2), v)
	nonce, ok := cache.GetNonce(felt.AddressFromUint64(1))
	require.True(t, ok)
	assert.Equal(t, felt.FromUint64(3), nonce)
}

func TestStateCacheAccessedContractAddresses(t *testing.T) {
	cache := state.NewStateCache()
	cache.SetClassHashWrite(felt.AddressFromUint64(10), felt.ClassHash(felt.FromUint64(1)))
	cache.SetNonceWrite(felt.AddressFromUint64(9), felt.FromUint64(1))
	cache.SetStorageWrite(entry(4, 1), felt.FromUint64(1))
	cache.SetStorageInitial(entry(5, 1), felt.FromUint64(1))

	assert.Equal(t, map[felt.Address]struct{}{
		felt.AddressFromUint64(10): {},
		felt.AddressFromUint64(9):  {},
		felt.AddressFromUint64(4):  {},
	}, cache.AccessedContractAddresses())
}

func TestStateCacheClone(t *testing.T) {
	cache := state.NewStateCache()
	cache.SetStorageWrite(entry(1, 1), felt.FromUint64(1))

	clone := cache.Clone()
	clone.SetStorageWrite(entry(1, 1), felt.FromUint64(2))
	clone.SetStorageWrite(entry(2, 2), felt.FromUint64(2))

	v, _ := cache.GetStorage(entry(1, 1))
	assert.Equal(t, felt.FromUint64(1), v)
	assert.Equal(t, 1, cache.StorageWriteCount())
	assert.Equal(t, 2, clone.StorageWriteCount())
}
