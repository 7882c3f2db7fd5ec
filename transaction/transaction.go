package transaction

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/utils"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/jinzhu/copier"
)

// maxU128 replaces the max fee of transactions simulated with IgnoreMaxFee.
var maxU128 = felt.FromBytes(bytes.Repeat([]byte{0xff}, 16))

// SimulationFlags turn off parts of a transaction to estimate its cost without real signatures
// or funds.
type SimulationFlags struct {
	SkipValidate    bool
	SkipExecute     bool
	SkipFeeTransfer bool
	IgnoreMaxFee    bool
	SkipNonceCheck  bool
}

// Transaction is one of Declare, DeclareV2, Deploy, DeployAccount, InvokeFunction and L1Handler.
type Transaction interface {
	Type() execution.TransactionType
	Hash() felt.Felt
	TxVersion() felt.Felt
	Flags() SimulationFlags
	transaction()
}

var (
	_ Transaction = (*Declare)(nil)
	_ Transaction = (*DeclareV2)(nil)
	_ Transaction = (*Deploy)(nil)
	_ Transaction = (*DeployAccount)(nil)
	_ Transaction = (*InvokeFunction)(nil)
	_ Transaction = (*L1Handler)(nil)
)

// ContractAddress returns the account or contract the transaction acts on.
func ContractAddress(tx Transaction) felt.Address {
	switch t := tx.(type) {
	case *Declare:
		return t.SenderAddress
	case *DeclareV2:
		return t.SenderAddress
	case *Deploy:
		return t.ContractAddress
	case *DeployAccount:
		return t.ContractAddress
	case *InvokeFunction:
		return t.SenderAddress
	case *L1Handler:
		return t.ContractAddress
	default:
		panic(fmt.Sprintf("unknown transaction %T", tx))
	}
}

// Execute runs tx on top of st. st is only written when tx succeeds or is reverted by a fee
// check; on any other error it is left untouched.
func Execute(st *state.CachedState, blockCtx *execution.BlockContext, tx Transaction, v vm.VM,
	logger utils.SimpleLogger,
) (*execution.TransactionExecutionInfo, error) {
	start := time.Now()

	var (
		info *execution.TransactionExecutionInfo
		err  error
	)
	switch t := tx.(type) {
	case *Declare:
		info, err = t.execute(st, blockCtx, v)
	case *DeclareV2:
		info, err = t.execute(st, blockCtx, v)
	case *Deploy:
		info, err = t.execute(st, blockCtx, v)
	case *DeployAccount:
		info, err = t.execute(st, blockCtx, v)
	case *InvokeFunction:
		info, err = t.execute(st, blockCtx, v)
	case *L1Handler:
		info, err = t.execute(st, blockCtx, v)
	default:
		return nil, fmt.Errorf("unknown transaction %T", tx)
	}
	observe(tx.Type(), info, err, time.Since(start))

	hash := tx.Hash()
	if err != nil {
		logger.Debugw("Transaction failed", "type", tx.Type(), "hash", hash.String(), "err", err)
		return nil, err
	}
	if info.IsReverted() {
		logger.Warnw("Transaction reverted", "type", tx.Type(), "hash", hash.String(), "reason", info.RevertError)
	}
	logger.Debugw("Executed transaction", "type", tx.Type(), "hash", hash.String(), "fee", info.ActualFee.Dec())
	return info, nil
}

// CreateForSimulation returns a copy of tx running with flags. IgnoreMaxFee raises the max fee
// of versioned transactions to the largest u128; version 0 keeps its max fee, which must be 0.
func CreateForSimulation(tx Transaction, flags SimulationFlags) (Transaction, error) {
	var (
		sim Transaction
		err error
	)
	switch t := tx.(type) {
	case *Declare:
		c := new(Declare)
		err = copier.Copy(c, t)
		c.SimulationFlags = flags
		c.MaxFee = simulatedMaxFee(t.Version, t.MaxFee, flags)
		sim = c
	case *DeclareV2:
		c := new(DeclareV2)
		err = copier.Copy(c, t)
		c.SimulationFlags = flags
		c.MaxFee = simulatedMaxFee(t.Version, t.MaxFee, flags)
		sim = c
	case *Deploy:
		c := new(Deploy)
		err = copier.Copy(c, t)
		c.SimulationFlags = flags
		sim = c
	case *DeployAccount:
		c := new(DeployAccount)
		err = copier.Copy(c, t)
		c.SimulationFlags = flags
		c.MaxFee = simulatedMaxFee(t.Version, t.MaxFee, flags)
		sim = c
	case *InvokeFunction:
		c := new(InvokeFunction)
		err = copier.Copy(c, t)
		c.SimulationFlags = flags
		c.MaxFee = simulatedMaxFee(t.Version, t.MaxFee, flags)
		sim = c
	case *L1Handler:
		c := new(L1Handler)
		err = copier.Copy(c, t)
		c.SimulationFlags = flags
		sim = c
	default:
		return nil, fmt.Errorf("unknown transaction %T", tx)
	}
	if err != nil {
		return nil, fmt.Errorf("copy %s: %w", tx.Type(), err)
	}
	return sim, nil
}

func simulatedMaxFee(version, maxFee felt.Felt, flags SimulationFlags) felt.Felt {
	if flags.IgnoreMaxFee && !version.IsZero() {
		return maxU128
	}
	return maxFee
}

func outcome(info *execution.TransactionExecutionInfo, err error) string {
	var feeErr *FeeCheckError
	switch {
	case errors.As(err, &feeErr):
		return "fee_check_failed"
	case err != nil:
		return "failed"
	case info.IsReverted():
		return "reverted"
	default:
		return "succeeded"
	}
}
