package transaction

import (
	"fmt"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// L1Handler consumes a message sent from L1. The first calldata element is the L1 sender.
type L1Handler struct {
	TransactionHash    felt.Felt
	ContractAddress    felt.Address
	EntryPointSelector felt.Felt
	Calldata           []*felt.Felt
	Nonce              felt.Felt
	// PaidFeeOnL1 is only checked when the block context enforces L1 handler fees.
	PaidFeeOnL1     *uint256.Int
	SimulationFlags SimulationFlags
}

func NewL1Handler(chainID felt.Felt, contractAddress felt.Address, selector felt.Felt, calldata []*felt.Felt,
	nonce felt.Felt, paidFeeOnL1 *uint256.Int,
) *L1Handler {
	return &L1Handler{
		TransactionHash:    *core.L1HandlerTransactionHash(contractAddress, &selector, calldata, &chainID, &nonce),
		ContractAddress:    contractAddress,
		EntryPointSelector: selector,
		Calldata:           calldata,
		Nonce:              nonce,
		PaidFeeOnL1:        paidFeeOnL1,
	}
}

func (tx *L1Handler) Type() execution.TransactionType { return execution.TxTypeL1Handler }
func (tx *L1Handler) Hash() felt.Felt                 { return tx.TransactionHash }
func (tx *L1Handler) TxVersion() felt.Felt            { return felt.Zero }
func (tx *L1Handler) Flags() SimulationFlags          { return tx.SimulationFlags }
func (tx *L1Handler) transaction()                    {}

// Message returns the L1 to L2 message the transaction consumes.
func (tx *L1Handler) Message() (*core.L1ToL2Message, error) {
	if len(tx.Calldata) == 0 {
		return nil, ErrEmptyCalldata
	}
	from := tx.Calldata[0].Bytes()
	return &core.L1ToL2Message{
		From:     common.BytesToAddress(from[:]),
		To:       tx.ContractAddress,
		Nonce:    tx.Nonce,
		Selector: tx.EntryPointSelector,
		Payload:  tx.Calldata[1:],
	}, nil
}

func (tx *L1Handler) execute(st *state.CachedState, blockCtx *execution.BlockContext,
	v vm.VM,
) (*execution.TransactionExecutionInfo, error) {
	if len(tx.Calldata) == 0 {
		return nil, ErrEmptyCalldata
	}

	txState := st.CreateTransactionalCopy()
	resources := execution.NewExecutionResourcesManager()

	var callInfo *execution.CallInfo
	if !tx.SimulationFlags.SkipExecute {
		ep := execution.ExecutionEntryPoint{
			CallType:        execution.CallTypeCall,
			ContractAddress: tx.ContractAddress,
			Calldata:        tx.Calldata,
			Selector:        tx.EntryPointSelector,
			EntryPointType:  core.L1Handler,
			InitialGas:      execution.InitialGas,
		}
		txCtx := execution.NewTransactionExecutionContext(felt.Address{}, tx.TransactionHash, nil, felt.Zero,
			tx.Nonce, felt.Zero, blockCtx.InvokeTxMaxNSteps, execution.ModeExecute)

		var err error
		if callInfo, err = ep.Execute(v, txState, blockCtx, resources, txCtx); err != nil {
			return nil, errors.Wrap(err, "l1 handler")
		}
	}

	payloadSize := len(tx.Calldata) - 1
	actualResources, err := execution.CalculateTxResources(resources, []*execution.CallInfo{callInfo},
		execution.TxTypeL1Handler, txState.CountActualStateChanges(nil), &payloadSize)
	if err != nil {
		return nil, err
	}

	info := &execution.TransactionExecutionInfo{
		CallInfo:        callInfo,
		ActualResources: actualResources,
		TxType:          execution.TxTypeL1Handler,
	}
	if blockCtx.EnforceL1HandlerFee {
		actualFee, err := CalculateTxFee(actualResources, blockCtx)
		if err != nil {
			return nil, err
		}
		if tx.PaidFeeOnL1 == nil || actualFee.Gt(tx.PaidFeeOnL1) {
			paid := "none"
			if tx.PaidFeeOnL1 != nil {
				paid = tx.PaidFeeOnL1.Dec()
			}
			return nil, fmt.Errorf("%w: paid %s, actual %s", ErrL1HandlerFeeTooLow, paid, actualFee.Dec())
		}
		info.ActualFee = *actualFee
	}

	txState.ApplyTo(st)
	return info, nil
}
