package transaction

import (
	"fmt"

	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// accountCall runs one top-level call of a transaction.
type accountCall func(st *state.CachedState, resources *execution.ExecutionResourcesManager,
	txCtx *execution.TransactionExecutionContext) (*execution.CallInfo, error)

func callEntryPoint(v vm.VM, blockCtx *execution.BlockContext, ep execution.ExecutionEntryPoint) accountCall {
	return func(st *state.CachedState, resources *execution.ExecutionResourcesManager,
		txCtx *execution.TransactionExecutionContext,
	) (*execution.CallInfo, error) {
		return ep.Execute(v, st, blockCtx, resources, txCtx)
	}
}

type accountFlow struct {
	// validate is nil for transactions without account validation.
	validate accountCall
	execute  accountCall
	// validateAfterExecute validates on the execution layer once the main call ran.
	validateAfterExecute bool
	// revertible transactions turn a failed fee check into a reverted receipt.
	revertible bool
}

// accountTx holds what the transactions sent by an account share.
type accountTx struct {
	txType    execution.TransactionType
	sender    felt.Address
	hash      felt.Felt
	signature []*felt.Felt
	maxFee    felt.Felt
	nonce     felt.Felt
	version   felt.Felt
	flags     SimulationFlags
}

func (a *accountTx) context() *execution.TransactionExecutionContext {
	return execution.NewTransactionExecutionContext(a.sender, a.hash, a.signature, a.maxFee, a.nonce, a.version,
		0, execution.ModeExecute)
}

func (a *accountTx) chargesFee() bool {
	return !a.flags.SkipFeeTransfer && !a.maxFee.IsZero()
}

func (a *accountTx) feeTransferTarget(blockCtx *execution.BlockContext) *state.FeeTransferTarget {
	if !a.chargesFee() {
		return nil
	}
	return &state.FeeTransferTarget{FeeToken: blockCtx.FeeTokenAddress, Sender: a.sender}
}

// run executes the transaction on a layer over st and applies the layer when the transaction
// succeeds or is reverted. The main call runs on a layer of its own, which a revert discards
// while the nonce increment, the validation and the fee transfer stay.
func (a *accountTx) run(st *state.CachedState, blockCtx *execution.BlockContext, v vm.VM,
	flow accountFlow,
) (*execution.TransactionExecutionInfo, error) {
	txState := st.CreateTransactionalCopy()
	txCtx := a.context()

	if err := a.checkMaxFeeBalance(txState, blockCtx); err != nil {
		return nil, err
	}
	if err := a.handleNonce(txState); err != nil {
		return nil, err
	}

	var (
		resources              = execution.NewExecutionResourcesManager()
		validateInfo, callInfo *execution.CallInfo
		err                    error
	)
	if !flow.validateAfterExecute {
		if validateInfo, err = a.runValidate(txState, blockCtx, resources, txCtx, flow.validate); err != nil {
			return nil, err
		}
	}

	// a revert charges for what ran before the main call only
	validated := resources.Clone()
	execState := txState.CreateTransactionalCopy()
	if !a.flags.SkipExecute {
		callInfo, err = flow.execute(execState, resources, txCtx.Fork(blockCtx.InvokeTxMaxNSteps, execution.ModeExecute))
		if err != nil {
			return nil, errors.Wrap(err, "execute")
		}
	}
	if flow.validateAfterExecute {
		if validateInfo, err = a.runValidate(execState, blockCtx, resources, txCtx, flow.validate); err != nil {
			return nil, err
		}
	}

	merged := st.CreateTransactionalCopy()
	txState.ApplyTo(merged)
	execState.ApplyTo(merged)
	actualResources, err := execution.CalculateTxResources(resources, []*execution.CallInfo{validateInfo, callInfo},
		a.txType, merged.CountActualStateChanges(a.feeTransferTarget(blockCtx)), nil)
	if err != nil {
		return nil, err
	}
	actualFee, err := CalculateTxFee(actualResources, blockCtx)
	if err != nil {
		return nil, err
	}

	info := &execution.TransactionExecutionInfo{
		ValidateInfo:    validateInfo,
		CallInfo:        callInfo,
		ActualResources: actualResources,
		TxType:          a.txType,
	}

	var feeErr *FeeCheckError
	err = a.checkFee(merged, blockCtx, actualFee)
	switch {
	case errors.As(err, &feeErr) && flow.revertible:
		if err = a.revert(txState, blockCtx, v, validated, txCtx, info, feeErr); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		execState.ApplyTo(txState)
		feeTransferInfo, fee, err := ChargeFee(v, txState, blockCtx, actualResources, txCtx, a.flags.SkipFeeTransfer)
		if err != nil {
			return nil, err
		}
		info.FeeTransferInfo = feeTransferInfo
		info.ActualFee = *fee
	}

	txState.ApplyTo(st)
	return info, nil
}

// checkMaxFeeBalance rejects transactions that could not pay their max fee.
func (a *accountTx) checkMaxFeeBalance(st state.StateReader, blockCtx *execution.BlockContext) error {
	if a.version.IsZero() || !a.chargesFee() || a.flags.IgnoreMaxFee {
		return nil
	}

	balance, err := state.FeeTokenBalance(st, blockCtx.FeeTokenAddress, a.sender)
	if err != nil {
		return err
	}
	if maxFee := feltToUint256(a.maxFee); maxFee.Gt(balance) {
		return fmt.Errorf("%w: max fee %s, balance %s", ErrMaxFeeExceedsBalance, maxFee.Dec(), balance.Dec())
	}
	return nil
}

func (a *accountTx) handleNonce(st *state.CachedState) error {
	if a.version.IsZero() {
		return nil
	}

	current, err := st.NonceAt(a.sender)
	if err != nil {
		return err
	}
	if !a.flags.SkipNonceCheck && !current.Equal(&a.nonce) {
		return &InvalidNonceError{Address: a.sender, Expected: current, Got: a.nonce}
	}
	return st.IncrementNonce(a.sender)
}

func (a *accountTx) runValidate(st *state.CachedState, blockCtx *execution.BlockContext,
	resources *execution.ExecutionResourcesManager, txCtx *execution.TransactionExecutionContext, validate accountCall,
) (*execution.CallInfo, error) {
	if validate == nil || a.flags.SkipValidate {
		return nil, nil
	}

	callInfo, err := validate(st, resources, txCtx.Fork(blockCtx.ValidateMaxNSteps, execution.ModeValidate))
	if err != nil {
		return nil, errors.Wrap(err, "validate")
	}
	if err = execution.VerifyNoCallsToOtherContracts(callInfo); err != nil {
		return nil, err
	}
	return callInfo, nil
}

// checkFee fails with a *FeeCheckError when actualFee cannot be charged in full. Version 0
// transactions are charged what fits and never fail the check.
func (a *accountTx) checkFee(st state.StateReader, blockCtx *execution.BlockContext, actualFee *uint256.Int) error {
	if a.version.IsZero() || a.maxFee.IsZero() {
		return nil
	}

	if maxFee := feltToUint256(a.maxFee); actualFee.Gt(maxFee) {
		return &FeeCheckError{Kind: FeeExceedsMax, ActualFee: actualFee, Limit: maxFee}
	}
	if a.flags.SkipFeeTransfer {
		return nil
	}

	balance, err := state.FeeTokenBalance(st, blockCtx.FeeTokenAddress, a.sender)
	if err != nil {
		return err
	}
	if actualFee.Gt(balance) {
		return &FeeCheckError{Kind: InsufficientFeeTokenBalance, ActualFee: actualFee, Limit: balance}
	}
	return nil
}

// revert charges the transaction without its main call. The fee is bounded by both the max fee
// and the balance the account has left.
func (a *accountTx) revert(txState *state.CachedState, blockCtx *execution.BlockContext, v vm.VM,
	resources *execution.ExecutionResourcesManager, txCtx *execution.TransactionExecutionContext,
	info *execution.TransactionExecutionInfo, feeErr *FeeCheckError,
) error {
	actualResources, err := execution.CalculateTxResources(resources, []*execution.CallInfo{info.ValidateInfo},
		a.txType, txState.CountActualStateChanges(a.feeTransferTarget(blockCtx)), nil)
	if err != nil {
		return err
	}
	fee, err := CalculateTxFee(actualResources, blockCtx)
	if err != nil {
		return err
	}
	if maxFee := feltToUint256(a.maxFee); fee.Gt(maxFee) {
		fee = maxFee
	}

	if !a.flags.SkipFeeTransfer {
		balance, err := state.FeeTokenBalance(txState, blockCtx.FeeTokenAddress, a.sender)
		if err != nil {
			return err
		}
		if fee.Gt(balance) {
			fee = balance
		}
		if info.FeeTransferInfo, err = ExecuteFeeTransfer(v, txState, blockCtx, txCtx, fee); err != nil {
			return err
		}
	}

	info.CallInfo = nil
	info.ActualResources = actualResources
	info.ActualFee = *fee
	info.RevertError = feeErr.Error()
	return nil
}
