package state

import (
	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/db"
	"github.com/NethermindEth/starknet-executor/encoder"
	_ "github.com/NethermindEth/starknet-executor/encoder/registry"
)

// storedClass wraps a class so the encoder tags its concrete type.
type storedClass struct {
	Class core.CompiledClass
}

func addressKey(bucket db.Bucket, addr felt.Address) []byte {
	b := addr.Bytes()
	return bucket.Key(b[:])
}

func classKey(bucket db.Bucket, classHash felt.ClassHash) []byte {
	b := classHash.Bytes()
	return bucket.Key(b[:])
}

func storageKey(addr felt.Address, key felt.Felt) []byte {
	a, k := addr.Bytes(), key.Bytes()
	return db.ContractStorage.Key(a[:], k[:])
}

func getFelt(r db.KeyValueReader, key []byte) (felt.Felt, error) {
	var f felt.Felt
	err := r.Get(key, func(data []byte) error {
		return f.SetBytesCanonical(data)
	})
	return f, err
}

func putFelt(w db.KeyValueWriter, key []byte, f felt.Felt) error {
	b := f.Bytes()
	return w.Put(key, b[:])
}

func GetClassHash(r db.KeyValueReader, addr felt.Address) (felt.ClassHash, error) {
	f, err := getFelt(r, addressKey(db.ContractClassHash, addr))
	return felt.ClassHash(f), err
}

func WriteClassHash(w db.KeyValueWriter, addr felt.Address, classHash felt.ClassHash) error {
	return putFelt(w, addressKey(db.ContractClassHash, addr), classHash.Felt())
}

func GetNonce(r db.KeyValueReader, addr felt.Address) (felt.Felt, error) {
	return getFelt(r, addressKey(db.ContractNonce, addr))
}

func WriteNonce(w db.KeyValueWriter, addr felt.Address, nonce felt.Felt) error {
	return putFelt(w, addressKey(db.ContractNonce, addr), nonce)
}

func GetStorage(r db.KeyValueReader, addr felt.Address, key felt.Felt) (felt.Felt, error) {
	return getFelt(r, storageKey(addr, key))
}

func WriteStorage(w db.KeyValueWriter, addr felt.Address, key, value felt.Felt) error {
	return putFelt(w, storageKey(addr, key), value)
}

func GetCompiledClassHash(r db.KeyValueReader, classHash felt.ClassHash) (felt.CompiledClassHash, error) {
	f, err := getFelt(r, classKey(db.ClassCompiledHash, classHash))
	return felt.CompiledClassHash(f), err
}

func WriteCompiledClassHash(w db.KeyValueWriter, classHash felt.ClassHash, compiled felt.CompiledClassHash) error {
	return putFelt(w, classKey(db.ClassCompiledHash, classHash), compiled.Felt())
}

func GetClass(r db.KeyValueReader, classHash felt.ClassHash) (core.CompiledClass, error) {
	var stored storedClass
	err := r.Get(classKey(db.Class, classHash), func(data []byte) error {
		return encoder.Unmarshal(data, &stored)
	})
	return stored.Class, err
}

func WriteClass(w db.KeyValueWriter, classHash felt.ClassHash, class core.CompiledClass) error {
	data, err := encoder.Marshal(storedClass{Class: class})
	if err != nil {
		return err
	}
	return w.Put(classKey(db.Class, classHash), data)
}
