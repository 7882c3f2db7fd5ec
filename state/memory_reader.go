package state

import (
	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
)

var _ StateReader = (*InMemoryStateReader)(nil)

// InMemoryStateReader is a map-backed StateReader. It is safe for concurrent
// reads once populated.
type InMemoryStateReader struct {
	ClassHashes         map[felt.Address]felt.ClassHash
	Nonces              map[felt.Address]felt.Felt
	Storage             map[StorageEntry]felt.Felt
	Classes             map[felt.ClassHash]core.CompiledClass
	CompiledClassHashes map[felt.ClassHash]felt.CompiledClassHash
}

func NewInMemoryStateReader() *InMemoryStateReader {
	return &InMemoryStateReader{
		ClassHashes:         make(map[felt.Address]felt.ClassHash),
		Nonces:              make(map[felt.Address]felt.Felt),
		Storage:             make(map[StorageEntry]felt.Felt),
		Classes:             make(map[felt.ClassHash]core.CompiledClass),
		CompiledClassHashes: make(map[felt.ClassHash]felt.CompiledClassHash),
	}
}

func (r *InMemoryStateReader) ClassHashAt(addr felt.Address) (felt.ClassHash, error) {
	classHash, ok := r.ClassHashes[addr]
	if !ok {
		return felt.ClassHash{}, ErrNoneClassHash
	}
	return classHash, nil
}

// NonceAt treats deployed contracts without a recorded nonce as having nonce zero.
func (r *InMemoryStateReader) NonceAt(addr felt.Address) (felt.Felt, error) {
	if nonce, ok := r.Nonces[addr]; ok {
		return nonce, nil
	}
	if _, deployed := r.ClassHashes[addr]; deployed {
		return felt.Zero, nil
	}
	return felt.Felt{}, ErrNoneNonce
}

func (r *InMemoryStateReader) StorageAt(addr felt.Address, key felt.Felt) (felt.Felt, error) {
	return r.Storage[StorageEntry{Address: addr, Key: key}], nil
}

func (r *InMemoryStateReader) CompiledClassHash(classHash felt.ClassHash) (felt.CompiledClassHash, error) {
	compiled, ok := r.CompiledClassHashes[classHash]
	if !ok {
		return felt.CompiledClassHash{}, ErrNoneCompiledClassHash
	}
	return compiled, nil
}

func (r *InMemoryStateReader) ContractClass(classHash felt.ClassHash) (core.CompiledClass, error) {
	if class, ok := r.Classes[classHash]; ok {
		return class, nil
	}
	if compiled, ok := r.CompiledClassHashes[classHash]; ok {
		if class, ok := r.Classes[felt.ClassHash(compiled)]; ok {
			return class, nil
		}
	}
	return nil, ErrMissingContractClass
}
