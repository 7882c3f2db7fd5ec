package transaction

import (
	"fmt"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/pkg/errors"
)

// Deploy deploys a contract from the zero address. It has no account, so no validation, nonce
// or fee.
type Deploy struct {
	TransactionHash     felt.Felt
	ContractAddress     felt.Address
	ContractAddressSalt felt.Felt
	ClassHash           felt.ClassHash
	// Class is declared along with the deployment when set.
	Class               core.CompiledClass
	ConstructorCalldata []*felt.Felt
	Version             felt.Felt
	SimulationFlags     SimulationFlags
}

func NewDeploy(chainID felt.Felt, classHash felt.ClassHash, class core.CompiledClass, salt felt.Felt,
	constructorCalldata []*felt.Felt, version felt.Felt,
) *Deploy {
	address := core.ContractAddress(felt.Address{}, classHash, salt, constructorCalldata)
	return &Deploy{
		TransactionHash:     *core.DeployTransactionHash(&version, address, constructorCalldata, &chainID),
		ContractAddress:     address,
		ContractAddressSalt: salt,
		ClassHash:           classHash,
		Class:               class,
		ConstructorCalldata: constructorCalldata,
		Version:             version,
	}
}

func (tx *Deploy) Type() execution.TransactionType { return execution.TxTypeDeploy }
func (tx *Deploy) Hash() felt.Felt                 { return tx.TransactionHash }
func (tx *Deploy) TxVersion() felt.Felt            { return tx.Version }
func (tx *Deploy) Flags() SimulationFlags          { return tx.SimulationFlags }
func (tx *Deploy) transaction()                    {}

func (tx *Deploy) execute(st *state.CachedState, blockCtx *execution.BlockContext,
	v vm.VM,
) (*execution.TransactionExecutionInfo, error) {
	txState := st.CreateTransactionalCopy()
	if tx.Class != nil {
		if err := txState.SetContractClass(tx.ClassHash, tx.Class); err != nil {
			return nil, err
		}
	}
	if err := txState.DeployContract(tx.ContractAddress, tx.ClassHash); err != nil {
		return nil, err
	}

	resources := execution.NewExecutionResourcesManager()
	var callInfo *execution.CallInfo
	if !tx.SimulationFlags.SkipExecute {
		txCtx := execution.NewTransactionExecutionContext(felt.Address{}, tx.TransactionHash, nil, felt.Zero,
			felt.Zero, tx.Version, blockCtx.InvokeTxMaxNSteps, execution.ModeExecute)

		var err error
		callInfo, err = execution.ExecuteConstructor(v, txState, blockCtx, resources, txCtx, tx.ClassHash,
			tx.ContractAddress, felt.Address{}, tx.ConstructorCalldata, execution.InitialGas)
		if err != nil {
			return nil, errors.Wrap(err, "constructor")
		}
	}

	actualResources, err := execution.CalculateTxResources(resources, []*execution.CallInfo{callInfo},
		execution.TxTypeDeploy, txState.CountActualStateChanges(nil), nil)
	if err != nil {
		return nil, err
	}

	txState.ApplyTo(st)
	return &execution.TransactionExecutionInfo{
		CallInfo:        callInfo,
		ActualResources: actualResources,
		TxType:          execution.TxTypeDeploy,
	}, nil
}

// DeployAccount deploys an account contract that pays for its own deployment. The account
// validates the deployment after its constructor ran.
type DeployAccount struct {
	TransactionHash     felt.Felt
	ContractAddress     felt.Address
	ContractAddressSalt felt.Felt
	ClassHash           felt.ClassHash
	ConstructorCalldata []*felt.Felt
	Signature           []*felt.Felt
	MaxFee              felt.Felt
	Nonce               felt.Felt
	Version             felt.Felt
	SimulationFlags     SimulationFlags
}

func NewDeployAccount(chainID felt.Felt, classHash felt.ClassHash, salt felt.Felt, constructorCalldata,
	signature []*felt.Felt, maxFee, version, nonce felt.Felt,
) *DeployAccount {
	address := core.ContractAddress(felt.Address{}, classHash, salt, constructorCalldata)
	return &DeployAccount{
		TransactionHash: *core.DeployAccountTransactionHash(&version, address, classHash, constructorCalldata,
			&maxFee, &nonce, &salt, &chainID),
		ContractAddress:     address,
		ContractAddressSalt: salt,
		ClassHash:           classHash,
		ConstructorCalldata: constructorCalldata,
		Signature:           signature,
		MaxFee:              maxFee,
		Nonce:               nonce,
		Version:             version,
	}
}

func (tx *DeployAccount) Type() execution.TransactionType { return execution.TxTypeDeployAccount }
func (tx *DeployAccount) Hash() felt.Felt                 { return tx.TransactionHash }
func (tx *DeployAccount) TxVersion() felt.Felt            { return tx.Version }
func (tx *DeployAccount) Flags() SimulationFlags          { return tx.SimulationFlags }
func (tx *DeployAccount) transaction()                    {}

func (tx *DeployAccount) execute(st *state.CachedState, blockCtx *execution.BlockContext,
	v vm.VM,
) (*execution.TransactionExecutionInfo, error) {
	if !tx.Version.IsOne() {
		return nil, fmt.Errorf("%w: deploy account version %s", ErrUnsupportedVersion, tx.Version.String())
	}

	classHash := tx.ClassHash.Felt()
	validateCalldata := make([]*felt.Felt, 0, len(tx.ConstructorCalldata)+2)
	validateCalldata = append(validateCalldata, &classHash, &tx.ContractAddressSalt)
	validateCalldata = append(validateCalldata, tx.ConstructorCalldata...)

	flow := accountFlow{
		validate: callEntryPoint(v, blockCtx, execution.ExecutionEntryPoint{
			CallType:        execution.CallTypeCall,
			ContractAddress: tx.ContractAddress,
			Calldata:        validateCalldata,
			Selector:        core.ValidateDeploySelector,
			EntryPointType:  core.External,
			InitialGas:      execution.InitialGas,
		}),
		execute: func(st *state.CachedState, resources *execution.ExecutionResourcesManager,
			txCtx *execution.TransactionExecutionContext,
		) (*execution.CallInfo, error) {
			if err := st.DeployContract(tx.ContractAddress, tx.ClassHash); err != nil {
				return nil, err
			}
			return execution.ExecuteConstructor(v, st, blockCtx, resources, txCtx, tx.ClassHash, tx.ContractAddress,
				felt.Address{}, tx.ConstructorCalldata, execution.InitialGas)
		},
		validateAfterExecute: true,
	}

	acc := &accountTx{
		txType:    execution.TxTypeDeployAccount,
		sender:    tx.ContractAddress,
		hash:      tx.TransactionHash,
		signature: tx.Signature,
		maxFee:    tx.MaxFee,
		nonce:     tx.Nonce,
		version:   tx.Version,
		flags:     tx.SimulationFlags,
	}
	return acc.run(st, blockCtx, v, flow)
}
