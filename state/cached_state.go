package state

import (
	"errors"
	"maps"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
)

var _ State = (*CachedState)(nil)

// CachedState reads through a StateCache into a StateReader and keeps every write
// in the cache. It is not safe for concurrent use; concurrent transactions each
// get their own CachedState over a shared reader.
type CachedState struct {
	reader   StateReader
	cache    *StateCache
	classes  *ClassCache
	declared map[felt.ClassHash]core.CompiledClass
}

func NewCachedState(reader StateReader, classes *ClassCache) *CachedState {
	if classes == nil {
		classes = NewClassCache(DefaultClassCacheSize)
	}
	return &CachedState{
		reader:   reader,
		cache:    NewStateCache(),
		classes:  classes,
		declared: make(map[felt.ClassHash]core.CompiledClass),
	}
}

func (s *CachedState) Cache() *StateCache {
	return s.cache
}

func (s *CachedState) ClassHashAt(addr felt.Address) (felt.ClassHash, error) {
	if classHash, ok := s.cache.GetClassHash(addr); ok {
		return classHash, nil
	}

	classHash, err := s.reader.ClassHashAt(addr)
	if err != nil {
		if !errors.Is(err, ErrNoneClassHash) {
			return felt.ClassHash{}, err
		}
		classHash = felt.ClassHash{}
	}
	s.cache.SetClassHashInitial(addr, classHash)
	return classHash, nil
}

func (s *CachedState) NonceAt(addr felt.Address) (felt.Felt, error) {
	if nonce, ok := s.cache.GetNonce(addr); ok {
		return nonce, nil
	}

	nonce, err := s.reader.NonceAt(addr)
	if err != nil {
		if !errors.Is(err, ErrNoneNonce) {
			return felt.Felt{}, err
		}
		nonce = felt.Zero
	}
	s.cache.SetNonceInitial(addr, nonce)
	return nonce, nil
}

func (s *CachedState) StorageAt(addr felt.Address, key felt.Felt) (felt.Felt, error) {
	entry := StorageEntry{Address: addr, Key: key}
	if value, ok := s.cache.GetStorage(entry); ok {
		return value, nil
	}

	value, err := s.reader.StorageAt(addr, key)
	if err != nil {
		return felt.Felt{}, err
	}
	s.cache.SetStorageInitial(entry, value)
	return value, nil
}

func (s *CachedState) CompiledClassHash(classHash felt.ClassHash) (felt.CompiledClassHash, error) {
	if compiled, ok := s.cache.GetCompiledClassHash(classHash); ok {
		return compiled, nil
	}

	compiled, err := s.reader.CompiledClassHash(classHash)
	if err != nil {
		return felt.CompiledClassHash{}, err
	}
	s.cache.SetCompiledClassHashInitial(classHash, compiled)
	return compiled, nil
}

// ContractClass looks the class up in the classes declared on this layer, then by
// its compiled class hash, then in the shared class cache and finally in the reader.
func (s *CachedState) ContractClass(classHash felt.ClassHash) (core.CompiledClass, error) {
	if class, ok := s.declared[classHash]; ok {
		return class, nil
	}
	if compiled, ok := s.cache.GetCompiledClassHash(classHash); ok {
		if class, ok := s.declared[felt.ClassHash(compiled)]; ok {
			return class, nil
		}
	}
	if class, ok := s.classes.Get(classHash); ok {
		return class, nil
	}

	class, err := s.reader.ContractClass(classHash)
	if err != nil {
		return nil, err
	}
	// Classes seen through a parent layer may not be committed yet.
	if _, layered := s.reader.(*parentView); !layered {
		s.classes.Add(classHash, class)
	}
	return class, nil
}

func (s *CachedState) SetContractClass(classHash felt.ClassHash, class core.CompiledClass) error {
	if class == nil {
		return ErrMissingContractClass
	}
	s.declared[classHash] = class
	return nil
}

func (s *CachedState) DeployContract(addr felt.Address, classHash felt.ClassHash) error {
	if addr.IsZero() {
		return ErrContractAddressOutOfRange
	}

	current, err := s.ClassHashAt(addr)
	if err != nil {
		return err
	}
	if !current.IsZero() {
		return &ContractAddressUnavailableError{Address: addr}
	}

	s.cache.SetClassHashWrite(addr, classHash)
	return nil
}

func (s *CachedState) SetClassHashAt(addr felt.Address, classHash felt.ClassHash) error {
	if addr.IsZero() {
		return ErrContractAddressOutOfRange
	}
	s.cache.SetClassHashWrite(addr, classHash)
	return nil
}

func (s *CachedState) IncrementNonce(addr felt.Address) error {
	nonce, err := s.NonceAt(addr)
	if err != nil {
		return err
	}
	s.cache.SetNonceWrite(addr, *new(felt.Felt).Add(&nonce, &felt.One))
	return nil
}

func (s *CachedState) SetStorageAt(addr felt.Address, key, value felt.Felt) {
	s.cache.SetStorageWrite(StorageEntry{Address: addr, Key: key}, value)
}

func (s *CachedState) SetCompiledClassHash(classHash felt.ClassHash, compiled felt.CompiledClassHash) error {
	s.cache.SetCompiledClassHashWrite(classHash, compiled)
	return nil
}

// CreateTransactionalCopy returns a child layer that reads through s without
// recording anything in it. s is left untouched until the child is applied.
func (s *CachedState) CreateTransactionalCopy() *CachedState {
	return NewCachedState(&parentView{parent: s}, s.classes)
}

// ApplyTo merges the writes and declared classes of s into parent, and records
// the values s observed as parent's initial values where parent has none.
func (s *CachedState) ApplyTo(parent *CachedState) {
	parent.cache.updateInitialFromOther(s.cache)
	parent.cache.UpdateWritesFromOther(s.cache)
	maps.Copy(parent.declared, s.declared)
}

// CountActualStorageChanges returns the number of distinct contracts with storage
// writes and the number of written storage cells.
func (s *CachedState) CountActualStorageChanges() (int, int) {
	contracts := make(map[felt.Address]struct{})
	for entry := range s.cache.storage.writes {
		contracts[entry.Address] = struct{}{}
	}
	return len(contracts), len(s.cache.storage.writes)
}

type StateChangesCount struct {
	NStorageUpdates           int
	NClassHashUpdates         int
	NCompiledClassHashUpdates int
	NModifiedContracts        int
}

// FeeTransferTarget names the balance cell a fee transfer is about to write.
type FeeTransferTarget struct {
	FeeToken felt.Address
	Sender   felt.Address
}

// CountActualStateChanges counts the writes of s. When feeTransfer is set the
// sender's fee token balance cell is counted as well, since the transfer runs
// after the count is taken.
func (s *CachedState) CountActualStateChanges(feeTransfer *FeeTransferTarget) StateChangesCount {
	storage := make(map[StorageEntry]struct{}, len(s.cache.storage.writes)+1)
	modified := make(map[felt.Address]struct{})
	for entry := range s.cache.storage.writes {
		storage[entry] = struct{}{}
		modified[entry.Address] = struct{}{}
	}
	for addr := range s.cache.classHashes.writes {
		modified[addr] = struct{}{}
	}
	for addr := range s.cache.nonces.writes {
		modified[addr] = struct{}{}
	}

	if feeTransfer != nil {
		low, _ := FeeTokenBalanceKeys(feeTransfer.Sender)
		storage[StorageEntry{Address: feeTransfer.FeeToken, Key: low}] = struct{}{}
		delete(modified, feeTransfer.FeeToken)
	}

	return StateChangesCount{
		NStorageUpdates:           len(storage),
		NClassHashUpdates:         len(s.cache.classHashes.writes),
		NCompiledClassHashUpdates: len(s.cache.compiledClassHashes.writes),
		NModifiedContracts:        len(modified),
	}
}

// parentView reads a CachedState without recording initial values in it.
type parentView struct {
	parent *CachedState
}

func (v *parentView) ContractClass(classHash felt.ClassHash) (core.CompiledClass, error) {
	return v.parent.ContractClass(classHash)
}

func (v *parentView) ClassHashAt(addr felt.Address) (felt.ClassHash, error) {
	if classHash, ok := v.parent.cache.GetClassHash(addr); ok {
		return classHash, nil
	}
	return v.parent.reader.ClassHashAt(addr)
}

func (v *parentView) NonceAt(addr felt.Address) (felt.Felt, error) {
	if nonce, ok := v.parent.cache.GetNonce(addr); ok {
		return nonce, nil
	}
	return v.parent.reader.NonceAt(addr)
}

func (v *parentView) StorageAt(addr felt.Address, key felt.Felt) (felt.Felt, error) {
	if value, ok := v.parent.cache.GetStorage(StorageEntry{Address: addr, Key: key}); ok {
		return value, nil
	}
	return v.parent.reader.StorageAt(addr, key)
}

func (v *parentView) CompiledClassHash(classHash felt.ClassHash) (felt.CompiledClassHash, error) {
	if compiled, ok := v.parent.cache.GetCompiledClassHash(classHash); ok {
		return compiled, nil
	}
	return v.parent.reader.CompiledClassHash(classHash)
}
