package state

import (
	"maps"

	"github.com/NethermindEth/starknet-executor/core/felt"
)

// layer pairs the first observed value of every key with its pending write.
type layer[K comparable, V any] struct {
	initial map[K]V
	writes  map[K]V
}

func newLayer[K comparable, V any]() layer[K, V] {
	return layer[K, V]{
		initial: make(map[K]V),
		writes:  make(map[K]V),
	}
}

func (l *layer[K, V]) get(key K) (V, bool) {
	if v, ok := l.writes[key]; ok {
		return v, true
	}
	v, ok := l.initial[key]
	return v, ok
}

// setInitial keeps the first recorded value of key.
func (l *layer[K, V]) setInitial(key K, value V) {
	if _, ok := l.initial[key]; !ok {
		l.initial[key] = value
	}
}

// adoptInitial records other's initial values for keys this layer has never seen.
func (l *layer[K, V]) adoptInitial(other *layer[K, V]) {
	for k, v := range other.initial {
		if _, written := l.writes[k]; written {
			continue
		}
		l.setInitial(k, v)
	}
}

func (l *layer[K, V]) empty() bool {
	return len(l.initial) == 0 && len(l.writes) == 0
}

func (l *layer[K, V]) fold() {
	maps.Copy(l.initial, l.writes)
	l.writes = make(map[K]V)
}

func (l *layer[K, V]) clone() layer[K, V] {
	return layer[K, V]{
		initial: maps.Clone(l.initial),
		writes:  maps.Clone(l.writes),
	}
}

// StateCache tracks, per entity kind, the value first read from the layer below
// and the value pending to be written to it. Writes always shadow initial values.
type StateCache struct {
	classHashes         layer[felt.Address, felt.ClassHash]
	nonces              layer[felt.Address, felt.Felt]
	storage             layer[StorageEntry, felt.Felt]
	compiledClassHashes layer[felt.ClassHash, felt.CompiledClassHash]
}

func NewStateCache() *StateCache {
	return &StateCache{
		classHashes:         newLayer[felt.Address, felt.ClassHash](),
		nonces:              newLayer[felt.Address, felt.Felt](),
		storage:             newLayer[StorageEntry, felt.Felt](),
		compiledClassHashes: newLayer[felt.ClassHash, felt.CompiledClassHash](),
	}
}

func (c *StateCache) GetClassHash(addr felt.Address) (felt.ClassHash, bool) {
	return c.classHashes.get(addr)
}

func (c *StateCache) GetNonce(addr felt.Address) (felt.Felt, bool) {
	return c.nonces.get(addr)
}

func (c *StateCache) GetStorage(entry StorageEntry) (felt.Felt, bool) {
	return c.storage.get(entry)
}

func (c *StateCache) GetCompiledClassHash(classHash felt.ClassHash) (felt.CompiledClassHash, bool) {
	return c.compiledClassHashes.get(classHash)
}

func (c *StateCache) SetClassHashInitial(addr felt.Address, classHash felt.ClassHash) {
	c.classHashes.setInitial(addr, classHash)
}

func (c *StateCache) SetNonceInitial(addr felt.Address, nonce felt.Felt) {
	c.nonces.setInitial(addr, nonce)
}

func (c *StateCache) SetStorageInitial(entry StorageEntry, value felt.Felt) {
	c.storage.setInitial(entry, value)
}

func (c *StateCache) SetCompiledClassHashInitial(classHash felt.ClassHash, compiled felt.CompiledClassHash) {
	c.compiledClassHashes.setInitial(classHash, compiled)
}

func (c *StateCache) SetClassHashWrite(addr felt.Address, classHash felt.ClassHash) {
	c.classHashes.writes[addr] = classHash
}

func (c *StateCache) SetNonceWrite(addr felt.Address, nonce felt.Felt) {
	c.nonces.writes[addr] = nonce
}

func (c *StateCache) SetStorageWrite(entry StorageEntry, value felt.Felt) {
	c.storage.writes[entry] = value
}

func (c *StateCache) SetCompiledClassHashWrite(classHash felt.ClassHash, compiled felt.CompiledClassHash) {
	c.compiledClassHashes.writes[classHash] = compiled
}

// SetInitialValues seeds the initial values of an empty cache.
func (c *StateCache) SetInitialValues(
	classHashes map[felt.Address]felt.ClassHash,
	compiledClassHashes map[felt.ClassHash]felt.CompiledClassHash,
	nonces map[felt.Address]felt.Felt,
	storage map[StorageEntry]felt.Felt,
) error {
	if !c.classHashes.empty() || !c.nonces.empty() || !c.storage.empty() || !c.compiledClassHashes.empty() {
		return ErrStateCacheAlreadyInitialized
	}

	maps.Copy(c.classHashes.initial, classHashes)
	maps.Copy(c.compiledClassHashes.initial, compiledClassHashes)
	maps.Copy(c.nonces.initial, nonces)
	maps.Copy(c.storage.initial, storage)
	return nil
}

// UpdateWritesFromOther merges other's writes into c. On overlapping keys the
// value from other wins.
func (c *StateCache) UpdateWritesFromOther(other *StateCache) {
	maps.Copy(c.classHashes.writes, other.classHashes.writes)
	maps.Copy(c.nonces.writes, other.nonces.writes)
	maps.Copy(c.storage.writes, other.storage.writes)
	maps.Copy(c.compiledClassHashes.writes, other.compiledClassHashes.writes)
}

func (c *StateCache) updateInitialFromOther(other *StateCache) {
	c.classHashes.adoptInitial(&other.classHashes)
	c.nonces.adoptInitial(&other.nonces)
	c.storage.adoptInitial(&other.storage)
	c.compiledClassHashes.adoptInitial(&other.compiledClassHashes)
}

// UpdateInitialValues folds the pending writes into the initial values and
// clears the writes.
func (c *StateCache) UpdateInitialValues() {
	c.classHashes.fold()
	c.nonces.fold()
	c.storage.fold()
	c.compiledClassHashes.fold()
}

// AccessedContractAddresses returns every address with a pending class hash,
// nonce or storage write.
func (c *StateCache) AccessedContractAddresses() map[felt.Address]struct{} {
	addrs := make(map[felt.Address]struct{})
	for addr := range c.classHashes.writes {
		addrs[addr] = struct{}{}
	}
	for addr := range c.nonces.writes {
		addrs[addr] = struct{}{}
	}
	for entry := range c.storage.writes {
		addrs[entry.Address] = struct{}{}
	}
	return addrs
}

func (c *StateCache) StorageWriteCount() int {
	return len(c.storage.writes)
}

func (c *StateCache) Clone() *StateCache {
	return &StateCache{
		classHashes:         c.classHashes.clone(),
		nonces:              c.nonces.clone(),
		storage:             c.storage.clone(),
		compiledClassHashes: c.compiledClassHashes.clone(),
	}
}
