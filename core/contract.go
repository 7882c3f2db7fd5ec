package core

import (
	"errors"
	"math/big"

	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
)

var (
	ErrContractNotDeployed     = errors.New("contract not deployed")
	ErrContractAlreadyDeployed = errors.New("contract already deployed")
)

var contractAddressPrefix = felt.FromBytes([]byte("STARKNET_CONTRACT_ADDRESS"))

// L2AddressUpperBound is 2**251 - 256. Contract addresses live in [0, L2AddressUpperBound).
var L2AddressUpperBound = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 251), big.NewInt(256))

// ContractAddress computes the address of a Starknet contract.
func ContractAddress(deployer felt.Address, classHash felt.ClassHash, salt felt.Felt, calldata []*felt.Felt) felt.Address {
	prefix := contractAddressPrefix
	deployerFelt := deployer.Felt()
	classHashFelt := classHash.Felt()

	raw := crypto.PedersenArray(
		&prefix,
		&deployerFelt,
		&salt,
		&classHashFelt,
		crypto.PedersenArray(calldata...),
	)

	reduced := raw.BigInt(new(big.Int))
	reduced.Mod(reduced, L2AddressUpperBound)
	return felt.Address(felt.FromBigInt(reduced))
}
