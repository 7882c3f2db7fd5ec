package crypto

import (
	"github.com/NethermindEth/starknet-executor/core/felt"
	"golang.org/x/crypto/sha3"
)

// Selector names that map to the zero selector instead of their keccak.
const (
	DefaultEntryPointName   = "__default__"
	DefaultL1EntryPointName = "__l1_default__"
)

// StarknetKeccak implements [StarkNet keccak]
//
// [StarkNet keccak]: https://docs.starknet.io/documentation/develop/Hashing/hash-functions/#starknet_keccak
func StarknetKeccak(b []byte) felt.Felt {
	d := Keccak256(b)
	// Remove the first 6 bits from the first byte
	d[0] &= 3
	return felt.FromBytes(d)
}

// Keccak256 returns the plain keccak256 digest of the concatenation of data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, b := range data {
		// Write on a keccak hash never errors
		_, _ = h.Write(b)
	}
	return h.Sum(nil)
}

// SelectorFromName computes the entry point selector of a function name.
func SelectorFromName(name string) felt.Felt {
	if name == DefaultEntryPointName || name == DefaultL1EntryPointName {
		return felt.Zero
	}
	return StarknetKeccak([]byte(name))
}
