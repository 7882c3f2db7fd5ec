package transaction

import (
	"fmt"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
)

type InvokeFunction struct {
	TransactionHash felt.Felt
	SenderAddress   felt.Address
	// EntryPointSelector is __execute__ from version 1 on.
	EntryPointSelector felt.Felt
	Calldata           []*felt.Felt
	Signature          []*felt.Felt
	MaxFee             felt.Felt
	Nonce              felt.Felt
	Version            felt.Felt
	SimulationFlags    SimulationFlags
}

func NewInvokeFunction(chainID felt.Felt, sender felt.Address, selector felt.Felt, calldata, signature []*felt.Felt,
	maxFee, version, nonce felt.Felt,
) *InvokeFunction {
	if !version.IsZero() {
		selector = core.ExecuteSelector
	}
	return &InvokeFunction{
		TransactionHash:    *core.InvokeTransactionHash(&version, sender, &selector, calldata, &maxFee, &chainID, &nonce),
		SenderAddress:      sender,
		EntryPointSelector: selector,
		Calldata:           calldata,
		Signature:          signature,
		MaxFee:             maxFee,
		Nonce:              nonce,
		Version:            version,
	}
}

func (tx *InvokeFunction) Type() execution.TransactionType { return execution.TxTypeInvokeFunction }
func (tx *InvokeFunction) Hash() felt.Felt                 { return tx.TransactionHash }
func (tx *InvokeFunction) TxVersion() felt.Felt            { return tx.Version }
func (tx *InvokeFunction) Flags() SimulationFlags          { return tx.SimulationFlags }
func (tx *InvokeFunction) transaction()                    {}

func (tx *InvokeFunction) account() *accountTx {
	return &accountTx{
		txType:    execution.TxTypeInvokeFunction,
		sender:    tx.SenderAddress,
		hash:      tx.TransactionHash,
		signature: tx.Signature,
		maxFee:    tx.MaxFee,
		nonce:     tx.Nonce,
		version:   tx.Version,
		flags:     tx.SimulationFlags,
	}
}

func (tx *InvokeFunction) execute(st *state.CachedState, blockCtx *execution.BlockContext,
	v vm.VM,
) (*execution.TransactionExecutionInfo, error) {
	if !tx.Version.IsZero() && !tx.Version.IsOne() {
		return nil, fmt.Errorf("%w: invoke version %s", ErrUnsupportedVersion, tx.Version.String())
	}

	flow := accountFlow{
		execute:    callEntryPoint(v, blockCtx, tx.entryPoint(tx.EntryPointSelector)),
		revertible: true,
	}
	if !tx.Version.IsZero() {
		flow.validate = callEntryPoint(v, blockCtx, tx.entryPoint(core.ValidateSelector))
	}
	return tx.account().run(st, blockCtx, v, flow)
}

func (tx *InvokeFunction) entryPoint(selector felt.Felt) execution.ExecutionEntryPoint {
	return execution.ExecutionEntryPoint{
		CallType:        execution.CallTypeCall,
		ContractAddress: tx.SenderAddress,
		Calldata:        tx.Calldata,
		Selector:        selector,
		EntryPointType:  core.External,
		InitialGas:      execution.InitialGas,
	}
}
