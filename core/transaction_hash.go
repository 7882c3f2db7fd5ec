package core

import (
	"fmt"

	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
)

type TransactionHashPrefix uint8

const (
	DeclarePrefix TransactionHashPrefix = iota
	DeployPrefix
	DeployAccountPrefix
	InvokePrefix
	L1HandlerPrefix
)

var (
	declareFelt       = felt.FromBytes([]byte("declare"))
	deployFelt        = felt.FromBytes([]byte("deploy"))
	deployAccountFelt = felt.FromBytes([]byte("deploy_account"))
	invokeFelt        = felt.FromBytes([]byte("invoke"))
	l1HandlerFelt     = felt.FromBytes([]byte("l1_handler"))
)

func (p TransactionHashPrefix) Felt() felt.Felt {
	switch p {
	case DeclarePrefix:
		return declareFelt
	case DeployPrefix:
		return deployFelt
	case DeployAccountPrefix:
		return deployAccountFelt
	case InvokePrefix:
		return invokeFelt
	case L1HandlerPrefix:
		return l1HandlerFelt
	default:
		panic(fmt.Sprintf("unknown transaction hash prefix %d", p))
	}
}

// CalculateTransactionHashCommon computes the hash chain of
// [prefix, version, contract_address, selector, h(calldata), max_fee, chain_id, additional...].
func CalculateTransactionHashCommon(
	prefix TransactionHashPrefix,
	version *felt.Felt,
	contractAddress felt.Address,
	entryPointSelector *felt.Felt,
	calldata []*felt.Felt,
	maxFee *felt.Felt,
	chainID *felt.Felt,
	additionalData ...*felt.Felt,
) *felt.Felt {
	prefixFelt := prefix.Felt()
	address := contractAddress.Felt()

	var digest crypto.PedersenDigest
	digest.Update(
		&prefixFelt,
		version,
		&address,
		entryPointSelector,
		crypto.PedersenArray(calldata...),
		maxFee,
		chainID,
	)
	digest.Update(additionalData...)
	return digest.Finish()
}

// DeployTransactionHash uses the constructor selector and a zero max fee.
func DeployTransactionHash(version *felt.Felt, contractAddress felt.Address, calldata []*felt.Felt, chainID *felt.Felt) *felt.Felt {
	return CalculateTransactionHashCommon(
		DeployPrefix, version, contractAddress, &ConstructorSelector, calldata, &felt.Zero, chainID,
	)
}

func DeployAccountTransactionHash(
	version *felt.Felt,
	contractAddress felt.Address,
	classHash felt.ClassHash,
	constructorCalldata []*felt.Felt,
	maxFee, nonce, salt, chainID *felt.Felt,
) *felt.Felt {
	classHashFelt := classHash.Felt()
	calldata := make([]*felt.Felt, 0, len(constructorCalldata)+2)
	calldata = append(calldata, &classHashFelt, salt)
	calldata = append(calldata, constructorCalldata...)

	return CalculateTransactionHashCommon(
		DeployAccountPrefix, version, contractAddress, &felt.Zero, calldata, maxFee, chainID, nonce,
	)
}

// DeclareTransactionHash covers versions 0 and 1. Version 0 hashes the class hash as additional
// data and has no calldata.
func DeclareTransactionHash(
	classHash felt.ClassHash,
	chainID *felt.Felt,
	senderAddress felt.Address,
	maxFee, version, nonce *felt.Felt,
) *felt.Felt {
	classHashFelt := classHash.Felt()
	if version.IsZero() {
		return CalculateTransactionHashCommon(
			DeclarePrefix, version, senderAddress, &felt.Zero, nil, maxFee, chainID, &classHashFelt,
		)
	}
	return CalculateTransactionHashCommon(
		DeclarePrefix, version, senderAddress, &felt.Zero, []*felt.Felt{&classHashFelt}, maxFee, chainID, nonce,
	)
}

func DeclareV2TransactionHash(
	sierraClassHash felt.ClassHash,
	compiledClassHash felt.CompiledClassHash,
	chainID *felt.Felt,
	senderAddress felt.Address,
	maxFee, version, nonce *felt.Felt,
) *felt.Felt {
	sierra := sierraClassHash.Felt()
	compiled := compiledClassHash.Felt()
	return CalculateTransactionHashCommon(
		DeclarePrefix, version, senderAddress, &felt.Zero, []*felt.Felt{&sierra}, maxFee, chainID, nonce, &compiled,
	)
}

// InvokeTransactionHash covers versions 0 and 1. Version 0 carries the entry point selector and no
// nonce; version 1 always calls __execute__ on the account, so the selector is hashed as zero.
func InvokeTransactionHash(
	version *felt.Felt,
	contractAddress felt.Address,
	entryPointSelector *felt.Felt,
	calldata []*felt.Felt,
	maxFee, chainID, nonce *felt.Felt,
) *felt.Felt {
	if version.IsZero() {
		return CalculateTransactionHashCommon(
			InvokePrefix, version, contractAddress, entryPointSelector, calldata, maxFee, chainID,
		)
	}
	return CalculateTransactionHashCommon(
		InvokePrefix, version, contractAddress, &felt.Zero, calldata, maxFee, chainID, nonce,
	)
}

func L1HandlerTransactionHash(
	contractAddress felt.Address,
	entryPointSelector *felt.Felt,
	calldata []*felt.Felt,
	chainID, nonce *felt.Felt,
) *felt.Felt {
	return CalculateTransactionHashCommon(
		L1HandlerPrefix, &felt.Zero, contractAddress, entryPointSelector, calldata, &felt.Zero, chainID, nonce,
	)
}
