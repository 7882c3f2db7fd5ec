package transaction

import (
	"fmt"
	"math"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/holiman/uint256"
)

// CalculateL1GasByCairoUsage converts cairo usage to L1 gas. The proof size is driven by the
// largest segment, so only the heaviest weighted resource counts.
func CalculateL1GasByCairoUsage(weights map[string]float64, usage map[string]uint64) (float64, error) {
	for name := range usage {
		if _, ok := weights[name]; !ok && name != execution.L1GasUsage {
			return 0, fmt.Errorf("%w: no fee weight for %s", execution.ErrResources, name)
		}
	}

	var gas float64
	for name, weight := range weights {
		gas = max(gas, weight*float64(usage[name]))
	}
	return gas, nil
}

// CalculateTxFee returns the fee of the given resources at the block's gas price.
func CalculateTxFee(resources map[string]uint64, blockCtx *execution.BlockContext) (*uint256.Int, error) {
	l1Gas, ok := resources[execution.L1GasUsage]
	if !ok {
		return nil, ErrMissingL1GasUsage
	}
	cairoGas, err := CalculateL1GasByCairoUsage(blockCtx.CairoResourceFeeWeights, resources)
	if err != nil {
		return nil, err
	}

	totalGas := uint64(math.Ceil(float64(l1Gas) + cairoGas))
	return new(uint256.Int).Mul(uint256.NewInt(totalGas), uint256.NewInt(blockCtx.BlockInfo.GasPrice)), nil
}

// ChargeFee computes the fee to charge and transfers it to the sequencer unless skipFeeTransfer
// is set. Transactions with a zero max fee are free. Version 0 transactions pay nothing when the
// fee exceeds the max fee, later versions pay at most the max fee.
func ChargeFee(v vm.VM, st *state.CachedState, blockCtx *execution.BlockContext, resources map[string]uint64,
	txCtx *execution.TransactionExecutionContext, skipFeeTransfer bool,
) (*execution.CallInfo, *uint256.Int, error) {
	maxFee := feltToUint256(txCtx.MaxFee)
	if maxFee.IsZero() {
		return nil, new(uint256.Int), nil
	}

	actualFee, err := CalculateTxFee(resources, blockCtx)
	if err != nil {
		return nil, nil, err
	}
	if actualFee.Gt(maxFee) {
		if txCtx.Version.IsZero() {
			actualFee.Clear()
		} else {
			actualFee.Set(maxFee)
		}
	}

	if skipFeeTransfer {
		return nil, actualFee, nil
	}
	feeTransferInfo, err := ExecuteFeeTransfer(v, st, blockCtx, txCtx, actualFee)
	if err != nil {
		return nil, nil, err
	}
	return feeTransferInfo, actualFee, nil
}

// ExecuteFeeTransfer transfers actualFee from the account to the sequencer through the fee
// token's transfer entry point.
func ExecuteFeeTransfer(v vm.VM, st *state.CachedState, blockCtx *execution.BlockContext,
	txCtx *execution.TransactionExecutionContext, actualFee *uint256.Int,
) (*execution.CallInfo, error) {
	if maxFee := feltToUint256(txCtx.MaxFee); actualFee.Gt(maxFee) {
		return nil, fmt.Errorf("%w: actual %s, max %s", ErrActualFeeExceedsMaxFee, actualFee.Dec(), maxFee.Dec())
	}

	sequencer := blockCtx.BlockInfo.SequencerAddress.Felt()
	low, high := state.SplitU256(actualFee)
	feeTransfer := execution.ExecutionEntryPoint{
		CallType:        execution.CallTypeCall,
		ContractAddress: blockCtx.FeeTokenAddress,
		Calldata:        []*felt.Felt{&sequencer, &low, &high},
		CallerAddress:   txCtx.AccountContractAddress,
		Selector:        core.TransferSelector,
		EntryPointType:  core.External,
		InitialGas:      execution.InitialGas,
	}

	callInfo, err := feeTransfer.Execute(v, st, blockCtx, execution.NewExecutionResourcesManager(),
		txCtx.Fork(blockCtx.InvokeTxMaxNSteps, execution.ModeExecute))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFeeTransfer, err)
	}
	return callInfo, nil
}

func feltToUint256(f felt.Felt) *uint256.Int {
	b := f.Bytes()
	return new(uint256.Int).SetBytes32(b[:])
}
