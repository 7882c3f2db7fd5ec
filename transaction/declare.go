package transaction

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
)

// Declare declares a cairo 0 class, versions 0 and 1.
type Declare struct {
	TransactionHash felt.Felt
	ClassHash       felt.ClassHash
	Class           core.CompiledClass
	SenderAddress   felt.Address
	MaxFee          felt.Felt
	Signature       []*felt.Felt
	Nonce           felt.Felt
	Version         felt.Felt
	SimulationFlags SimulationFlags
}

func NewDeclare(chainID felt.Felt, classHash felt.ClassHash, class core.CompiledClass, sender felt.Address,
	maxFee, version, nonce felt.Felt, signature []*felt.Felt,
) *Declare {
	return &Declare{
		TransactionHash: *core.DeclareTransactionHash(classHash, &chainID, sender, &maxFee, &version, &nonce),
		ClassHash:       classHash,
		Class:           class,
		SenderAddress:   sender,
		MaxFee:          maxFee,
		Signature:       signature,
		Nonce:           nonce,
		Version:         version,
	}
}

func (tx *Declare) Type() execution.TransactionType { return execution.TxTypeDeclare }
func (tx *Declare) Hash() felt.Felt                 { return tx.TransactionHash }
func (tx *Declare) TxVersion() felt.Felt            { return tx.Version }
func (tx *Declare) Flags() SimulationFlags          { return tx.SimulationFlags }
func (tx *Declare) transaction()                    {}

func (tx *Declare) verifyVersion() error {
	switch {
	case tx.Version.IsOne():
		return nil
	case !tx.Version.IsZero():
		return fmt.Errorf("%w: declare version %s", ErrUnsupportedVersion, tx.Version.String())
	case !tx.MaxFee.IsZero():
		return ErrInvalidMaxFee
	case !tx.Nonce.IsZero():
		return ErrInvalidNonce
	case len(tx.Signature) != 0:
		return ErrInvalidSignature
	}
	return nil
}

func (tx *Declare) execute(st *state.CachedState, blockCtx *execution.BlockContext,
	v vm.VM,
) (*execution.TransactionExecutionInfo, error) {
	if err := tx.verifyVersion(); err != nil {
		return nil, err
	}

	flow := accountFlow{
		execute: func(st *state.CachedState, _ *execution.ExecutionResourcesManager,
			_ *execution.TransactionExecutionContext,
		) (*execution.CallInfo, error) {
			return nil, st.SetContractClass(tx.ClassHash, tx.Class)
		},
		revertible: true,
	}
	if !tx.Version.IsZero() {
		flow.validate = callEntryPoint(v, blockCtx, validateDeclareEntryPoint(tx.SenderAddress, tx.ClassHash))
	}

	acc := &accountTx{
		txType:    execution.TxTypeDeclare,
		sender:    tx.SenderAddress,
		hash:      tx.TransactionHash,
		signature: tx.Signature,
		maxFee:    tx.MaxFee,
		nonce:     tx.Nonce,
		version:   tx.Version,
		flags:     tx.SimulationFlags,
	}
	return acc.run(st, blockCtx, v, flow)
}

// DeclareV2 declares a sierra class together with its compiled form.
type DeclareV2 struct {
	TransactionHash   felt.Felt
	ClassHash         felt.ClassHash
	CompiledClassHash felt.CompiledClassHash
	CompiledClass     core.CompiledClass
	SenderAddress     felt.Address
	MaxFee            felt.Felt
	Signature         []*felt.Felt
	Nonce             felt.Felt
	Version           felt.Felt
	SimulationFlags   SimulationFlags
}

var declareV2Version = felt.FromUint64(2)

func NewDeclareV2(chainID felt.Felt, classHash felt.ClassHash, compiledClassHash felt.CompiledClassHash,
	compiledClass core.CompiledClass, sender felt.Address, maxFee, nonce felt.Felt, signature []*felt.Felt,
) *DeclareV2 {
	version := declareV2Version
	return &DeclareV2{
		TransactionHash: *core.DeclareV2TransactionHash(classHash, compiledClassHash, &chainID, sender,
			&maxFee, &version, &nonce),
		ClassHash:         classHash,
		CompiledClassHash: compiledClassHash,
		CompiledClass:     compiledClass,
		SenderAddress:     sender,
		MaxFee:            maxFee,
		Signature:         signature,
		Nonce:             nonce,
		Version:           version,
	}
}

func (tx *DeclareV2) Type() execution.TransactionType { return execution.TxTypeDeclare }
func (tx *DeclareV2) Hash() felt.Felt                 { return tx.TransactionHash }
func (tx *DeclareV2) TxVersion() felt.Felt            { return tx.Version }
func (tx *DeclareV2) Flags() SimulationFlags          { return tx.SimulationFlags }
func (tx *DeclareV2) transaction()                    {}

func (tx *DeclareV2) execute(st *state.CachedState, blockCtx *execution.BlockContext,
	v vm.VM,
) (*execution.TransactionExecutionInfo, error) {
	if !tx.Version.Equal(&declareV2Version) {
		return nil, fmt.Errorf("%w: declare v2 version %s", ErrUnsupportedVersion, tx.Version.String())
	}

	compiled, err := st.CompiledClassHash(tx.ClassHash)
	switch {
	case err == nil && !compiled.IsZero():
		return nil, fmt.Errorf("%w: %s", ErrClassAlreadyDeclared, tx.ClassHash.String())
	case err != nil && !errors.Is(err, state.ErrNoneCompiledClassHash):
		return nil, err
	}

	flow := accountFlow{
		validate: callEntryPoint(v, blockCtx, validateDeclareEntryPoint(tx.SenderAddress, tx.ClassHash)),
		execute: func(st *state.CachedState, _ *execution.ExecutionResourcesManager,
			_ *execution.TransactionExecutionContext,
		) (*execution.CallInfo, error) {
			if err := st.SetCompiledClassHash(tx.ClassHash, tx.CompiledClassHash); err != nil {
				return nil, err
			}
			return nil, st.SetContractClass(felt.ClassHash(tx.CompiledClassHash), tx.CompiledClass)
		},
		revertible: true,
	}

	acc := &accountTx{
		txType:    execution.TxTypeDeclare,
		sender:    tx.SenderAddress,
		hash:      tx.TransactionHash,
		signature: tx.Signature,
		maxFee:    tx.MaxFee,
		nonce:     tx.Nonce,
		version:   tx.Version,
		flags:     tx.SimulationFlags,
	}
	return acc.run(st, blockCtx, v, flow)
}

func validateDeclareEntryPoint(sender felt.Address, classHash felt.ClassHash) execution.ExecutionEntryPoint {
	classHashFelt := classHash.Felt()
	return execution.ExecutionEntryPoint{
		CallType:        execution.CallTypeCall,
		ContractAddress: sender,
		Calldata:        []*felt.Felt{&classHashFelt},
		Selector:        core.ValidateDeclareSelector,
		EntryPointType:  core.External,
		InitialGas:      execution.InitialGas,
	}
}
