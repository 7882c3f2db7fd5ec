package db

import "slices"

type Bucket byte

// Pebble does not support buckets to differentiate between groups of
// keys like Bolt or MDBX does. We use a global prefix list as a poor
// man's bucket alternative.
const (
	ContractClassHash    Bucket = iota // ContractAddress -> ClassHash
	ContractNonce                      // ContractAddress -> Nonce
	ContractStorage                    // ContractAddress + StorageKey -> Value
	Class                              // ClassHash -> CompiledClass
	ClassCompiledHash                  // ClassHash -> CompiledClassHash
)

// Key flattens a prefix and series of byte arrays into a single []byte.
func (b Bucket) Key(key ...[]byte) []byte {
	return append([]byte{byte(b)}, slices.Concat(key...)...)
}

func (b Bucket) String() string {
	switch b {
	case ContractClassHash:
		return "ContractClassHash"
	case ContractNonce:
		return "ContractNonce"
	case ContractStorage:
		return "ContractStorage"
	case Class:
		return "Class"
	case ClassCompiledHash:
		return "ClassCompiledHash"
	default:
		return "Unknown"
	}
}
