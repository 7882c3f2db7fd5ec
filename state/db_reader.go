package state

import (
	"errors"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/db"
)

var _ StateReader = (*DBReader)(nil)

// DBReader serves state committed to a key-value store by StateDiff.Commit.
type DBReader struct {
	r db.KeyValueReader
}

func NewDBReader(r db.KeyValueReader) *DBReader {
	return &DBReader{r: r}
}

func (d *DBReader) ClassHashAt(addr felt.Address) (felt.ClassHash, error) {
	classHash, err := GetClassHash(d.r, addr)
	if errors.Is(err, db.ErrKeyNotFound) {
		return felt.ClassHash{}, ErrNoneClassHash
	}
	return classHash, err
}

func (d *DBReader) NonceAt(addr felt.Address) (felt.Felt, error) {
	nonce, err := GetNonce(d.r, addr)
	if !errors.Is(err, db.ErrKeyNotFound) {
		return nonce, err
	}

	deployed, err := d.r.Has(addressKey(db.ContractClassHash, addr))
	if err != nil {
		return felt.Felt{}, err
	}
	if !deployed {
		return felt.Felt{}, ErrNoneNonce
	}
	return felt.Zero, nil
}

func (d *DBReader) StorageAt(addr felt.Address, key felt.Felt) (felt.Felt, error) {
	value, err := GetStorage(d.r, addr, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return felt.Zero, nil
	}
	return value, err
}

func (d *DBReader) CompiledClassHash(classHash felt.ClassHash) (felt.CompiledClassHash, error) {
	compiled, err := GetCompiledClassHash(d.r, classHash)
	if errors.Is(err, db.ErrKeyNotFound) {
		return felt.CompiledClassHash{}, ErrNoneCompiledClassHash
	}
	return compiled, err
}

func (d *DBReader) ContractClass(classHash felt.ClassHash) (core.CompiledClass, error) {
	class, err := GetClass(d.r, classHash)
	if err == nil {
		return class, nil
	}
	if !errors.Is(err, db.ErrKeyNotFound) {
		return nil, err
	}

	compiled, err := d.CompiledClassHash(classHash)
	if err != nil {
		if errors.Is(err, ErrNoneCompiledClassHash) {
			return nil, ErrMissingContractClass
		}
		return nil, err
	}
	class, err = GetClass(d.r, felt.ClassHash(compiled))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, ErrMissingContractClass
	}
	return class, err
}
