package execution

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
)

// InitialGas is the gas a top-level call starts with.
const InitialGas uint64 = 100_000_000 * 100

// ExecutionEntryPoint describes one call frame before it runs.
type ExecutionEntryPoint struct {
	CallType        CallType
	ContractAddress felt.Address
	// CodeAddress is the contract whose code a delegate call runs.
	CodeAddress *felt.Address
	// ClassHash overrides the class to run, library and delegate calls only.
	ClassHash      *felt.ClassHash
	Calldata       []*felt.Felt
	CallerAddress  felt.Address
	Selector       felt.Felt
	EntryPointType core.EntryPointType
	InitialGas     uint64
}

// Execute runs the frame and every call it issues against st.
func (ep *ExecutionEntryPoint) Execute(v vm.VM, st *state.CachedState, blockCtx *BlockContext,
	resources *ExecutionResourcesManager, txCtx *TransactionExecutionContext,
) (*CallInfo, error) {
	if blockCtx.MaxRecursionDepth > 0 && txCtx.depth >= blockCtx.MaxRecursionDepth {
		return nil, ErrRecursionDepthExceeded
	}
	txCtx.depth++
	defer func() { txCtx.depth-- }()

	classHash, err := ep.CodeClassHash(st)
	if err != nil {
		return nil, err
	}
	class, err := st.ContractClass(classHash)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", classHash.String(), err)
	}
	entryPoint, err := ep.selectEntryPoint(class)
	if err != nil {
		return nil, err
	}

	limits := vm.Limits{InitialGas: ep.InitialGas}
	if txCtx.NSteps != 0 {
		used := resources.CairoUsage.Steps
		if used >= txCtx.NSteps {
			return nil, ErrStepsLimitExceeded
		}
		limits.MaxSteps = txCtx.NSteps - used
	}

	previous := resources.CairoUsage.Clone()
	handler := newSyscallHandler(v, st, blockCtx, resources, txCtx, ep.CallerAddress, ep.ContractAddress, ep.InitialGas)
	res, err := v.Run(class, entryPoint, ep.Calldata, handler, limits)
	if err != nil {
		return nil, err
	}

	resources.CairoUsage = resources.CairoUsage.Add(res.Resources)
	if txCtx.NSteps != 0 && resources.CairoUsage.Steps > txCtx.NSteps {
		return nil, ErrStepsLimitExceeded
	}

	return &CallInfo{
		CallerAddress:       ep.CallerAddress,
		CallType:            ep.CallType,
		ContractAddress:     ep.ContractAddress,
		CodeAddress:         ep.CodeAddress,
		ClassHash:           classHash,
		EntryPointSelector:  ep.Selector,
		EntryPointType:      ep.EntryPointType,
		Calldata:            ep.Calldata,
		Retdata:             res.Retdata,
		ExecutionResources:  resources.CairoUsage.Sub(previous).FilterUnusedBuiltins(),
		Events:              handler.events,
		L2ToL1Messages:      handler.messages,
		StorageReadValues:   handler.readValues,
		AccessedStorageKeys: handler.accessedKeys,
		InternalCalls:       handler.internalCalls,
		GasConsumed:         res.GasConsumed,
	}, nil
}

// CodeClassHash resolves the class whose code the frame runs.
func (ep *ExecutionEntryPoint) CodeClassHash(st state.StateReader) (felt.ClassHash, error) {
	if ep.ClassHash != nil {
		if ep.CallType == CallTypeCall {
			return felt.ClassHash{}, ErrCallTypeIsNotDelegate
		}
		return *ep.ClassHash, nil
	}

	var codeAddress felt.Address
	switch ep.CallType {
	case CallTypeCall:
		codeAddress = ep.ContractAddress
	default:
		if ep.CodeAddress == nil {
			return felt.ClassHash{}, ErrAttemptToUseNoneCodeAddress
		}
		codeAddress = *ep.CodeAddress
	}

	classHash, err := st.ClassHashAt(codeAddress)
	if err != nil && !errors.Is(err, state.ErrNoneClassHash) {
		return felt.ClassHash{}, err
	}
	if err != nil || classHash.IsZero() {
		return felt.ClassHash{}, fmt.Errorf("%w: %s", ErrNotDeployedContract, codeAddress.String())
	}
	return classHash, nil
}

// selectEntryPoint picks the entry point matching the selector, falling back to the
// default entry point when the class has one.
func (ep *ExecutionEntryPoint) selectEntryPoint(class core.CompiledClass) (core.EntryPoint, error) {
	var (
		match, fallback *core.EntryPoint
		entryPoints     = class.EntryPoints(ep.EntryPointType)
	)
	for i := range entryPoints {
		entryPoint := &entryPoints[i]
		if entryPoint.Selector.Equal(&core.DefaultSelector) {
			fallback = entryPoint
		}
		if entryPoint.Selector.Equal(&ep.Selector) {
			if match != nil {
				return core.EntryPoint{}, ErrNonUniqueEntryPoint
			}
			match = entryPoint
		}
	}

	switch {
	case match != nil:
		return *match, nil
	case fallback != nil:
		return *fallback, nil
	default:
		return core.EntryPoint{}, &EntryPointNotFoundError{Selector: ep.Selector, EntryPointType: ep.EntryPointType}
	}
}

// ExecuteConstructor runs the constructor of the class deployed at contractAddress. Classes
// without a constructor get an empty constructor call, which takes no calldata.
func ExecuteConstructor(v vm.VM, st *state.CachedState, blockCtx *BlockContext, resources *ExecutionResourcesManager,
	txCtx *TransactionExecutionContext, classHash felt.ClassHash, contractAddress, callerAddress felt.Address,
	calldata []*felt.Felt, initialGas uint64,
) (*CallInfo, error) {
	class, err := st.ContractClass(classHash)
	if err != nil {
		return nil, fmt.Errorf("class %s: %w", classHash.String(), err)
	}

	if len(class.EntryPoints(core.Constructor)) == 0 {
		if len(calldata) != 0 {
			return nil, ErrEmptyConstructorCalldata
		}
		return EmptyConstructorCall(contractAddress, callerAddress, classHash), nil
	}

	ep := ExecutionEntryPoint{
		CallType:        CallTypeCall,
		ContractAddress: contractAddress,
		Calldata:        calldata,
		CallerAddress:   callerAddress,
		Selector:        core.ConstructorSelector,
		EntryPointType:  core.Constructor,
		InitialGas:      initialGas,
	}
	return ep.Execute(v, st, blockCtx, resources, txCtx)
}
