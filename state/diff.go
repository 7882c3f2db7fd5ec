package state

import (
	"maps"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/db"
)

// StateDiff is the set of writes a CachedState would apply to its reader.
type StateDiff struct {
	ClassHashes         map[felt.Address]felt.ClassHash
	Nonces              map[felt.Address]felt.Felt
	CompiledClassHashes map[felt.ClassHash]felt.CompiledClassHash
	StorageDiffs        map[felt.Address]map[felt.Felt]felt.Felt
	DeclaredClasses     map[felt.ClassHash]core.CompiledClass
}

func EmptyStateDiff() *StateDiff {
	return &StateDiff{
		ClassHashes:         make(map[felt.Address]felt.ClassHash),
		Nonces:              make(map[felt.Address]felt.Felt),
		CompiledClassHashes: make(map[felt.ClassHash]felt.CompiledClassHash),
		StorageDiffs:        make(map[felt.Address]map[felt.Felt]felt.Felt),
		DeclaredClasses:     make(map[felt.ClassHash]core.CompiledClass),
	}
}

func StateDiffFromCachedState(s *CachedState) *StateDiff {
	diff := EmptyStateDiff()
	maps.Copy(diff.ClassHashes, s.cache.classHashes.writes)
	maps.Copy(diff.Nonces, s.cache.nonces.writes)
	maps.Copy(diff.CompiledClassHashes, s.cache.compiledClassHashes.writes)
	maps.Copy(diff.DeclaredClasses, s.declared)
	for entry, value := range s.cache.storage.writes {
		diff.setStorage(entry.Address, entry.Key, value)
	}
	return diff
}

func (d *StateDiff) setStorage(addr felt.Address, key, value felt.Felt) {
	cells, ok := d.StorageDiffs[addr]
	if !ok {
		cells = make(map[felt.Felt]felt.Felt)
		d.StorageDiffs[addr] = cells
	}
	cells[key] = value
}

// Squash returns a new diff holding d followed by other.
func (d *StateDiff) Squash(other *StateDiff) *StateDiff {
	res := EmptyStateDiff()
	for _, diff := range []*StateDiff{d, other} {
		maps.Copy(res.ClassHashes, diff.ClassHashes)
		maps.Copy(res.Nonces, diff.Nonces)
		maps.Copy(res.CompiledClassHashes, diff.CompiledClassHashes)
		maps.Copy(res.DeclaredClasses, diff.DeclaredClasses)
		for addr, cells := range diff.StorageDiffs {
			for key, value := range cells {
				res.setStorage(addr, key, value)
			}
		}
	}
	return res
}

// ToCachedState returns a CachedState over reader whose pending writes are d.
func (d *StateDiff) ToCachedState(reader StateReader, classes *ClassCache) *CachedState {
	s := NewCachedState(reader, classes)
	maps.Copy(s.cache.classHashes.writes, d.ClassHashes)
	maps.Copy(s.cache.nonces.writes, d.Nonces)
	maps.Copy(s.cache.compiledClassHashes.writes, d.CompiledClassHashes)
	maps.Copy(s.declared, d.DeclaredClasses)
	for addr, cells := range d.StorageDiffs {
		for key, value := range cells {
			s.cache.storage.writes[StorageEntry{Address: addr, Key: key}] = value
		}
	}
	return s
}

// Commit persists d through w so that a DBReader over the same store observes it.
func (d *StateDiff) Commit(w db.KeyValueWriter) error {
	for addr, classHash := range d.ClassHashes {
		if err := WriteClassHash(w, addr, classHash); err != nil {
			return err
		}
	}
	for addr, nonce := range d.Nonces {
		if err := WriteNonce(w, addr, nonce); err != nil {
			return err
		}
	}
	for addr, cells := range d.StorageDiffs {
		for key, value := range cells {
			if err := WriteStorage(w, addr, key, value); err != nil {
				return err
			}
		}
	}
	for classHash, compiled := range d.CompiledClassHashes {
		if err := WriteCompiledClassHash(w, classHash, compiled); err != nil {
			return err
		}
	}
	for classHash, class := range d.DeclaredClasses {
		if err := WriteClass(w, classHash, class); err != nil {
			return err
		}
	}
	return nil
}
