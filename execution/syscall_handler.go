package execution

import (
	"math/big"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/ethereum/go-ethereum/common"
)

const (
	SyscallCallContract         = "call_contract"
	SyscallDelegateCall         = "delegate_call"
	SyscallDelegateL1Handler    = "delegate_l1_handler"
	SyscallDeploy               = "deploy"
	SyscallEmitEvent            = "emit_event"
	SyscallGetBlockHash         = "get_block_hash"
	SyscallGetBlockNumber       = "get_block_number"
	SyscallGetBlockTimestamp    = "get_block_timestamp"
	SyscallGetCallerAddress     = "get_caller_address"
	SyscallGetContractAddress   = "get_contract_address"
	SyscallGetSequencerAddress  = "get_sequencer_address"
	SyscallGetTxInfo            = "get_tx_info"
	SyscallGetTxSignature       = "get_tx_signature"
	SyscallLibraryCall          = "library_call"
	SyscallLibraryCallL1Handler = "library_call_l1_handler"
	SyscallReplaceClass         = "replace_class"
	SyscallSendMessageToL1      = "send_message_to_l1"
	SyscallStorageRead          = "storage_read"
	SyscallStorageWrite         = "storage_write"
)

// BlockHashContractAddress stores the hash of block n at key n.
var BlockHashContractAddress = felt.AddressFromUint64(1)

// Block hashes of the last blockHashDelay blocks are not available to contracts.
const blockHashDelay = 10

var maxL1Address = new(big.Int).Lsh(big.NewInt(1), 8*common.AddressLength)

var _ vm.SyscallHandler = (*syscallHandler)(nil)

// syscallHandler serves the syscalls of a single frame and records what it did.
type syscallHandler struct {
	vm        vm.VM
	st        *state.CachedState
	blockCtx  *BlockContext
	resources *ExecutionResourcesManager
	txCtx     *TransactionExecutionContext

	callerAddress   felt.Address
	contractAddress felt.Address
	initialGas      uint64

	events        []OrderedEvent
	messages      []OrderedL2ToL1Message
	readValues    []felt.Felt
	accessedKeys  map[felt.Felt]struct{}
	internalCalls []*CallInfo
}

func newSyscallHandler(v vm.VM, st *state.CachedState, blockCtx *BlockContext, resources *ExecutionResourcesManager,
	txCtx *TransactionExecutionContext, callerAddress, contractAddress felt.Address, initialGas uint64,
) *syscallHandler {
	return &syscallHandler{
		vm:              v,
		st:              st,
		blockCtx:        blockCtx,
		resources:       resources,
		txCtx:           txCtx,
		callerAddress:   callerAddress,
		contractAddress: contractAddress,
		initialGas:      initialGas,
		events:          []OrderedEvent{},
		messages:        []OrderedL2ToL1Message{},
		readValues:      []felt.Felt{},
		accessedKeys:    make(map[felt.Felt]struct{}),
		internalCalls:   []*CallInfo{},
	}
}

func (h *syscallHandler) count(syscall string) {
	h.resources.IncrementSyscallCounter(syscall, 1)
}

func syscallErr(syscall string, err error) error {
	return &SyscallError{Syscall: syscall, Err: err}
}

// checkValidateTarget rejects calls leaving the account while it validates.
func (h *syscallHandler) checkValidateTarget(target *felt.Address) error {
	if h.txCtx.Mode == ModeValidate && !target.Equal(&h.txCtx.AccountContractAddress) {
		return ErrUnauthorizedActionOnValidate
	}
	return nil
}

func (h *syscallHandler) StorageRead(addressDomain, key felt.Felt) (felt.Felt, error) {
	h.count(SyscallStorageRead)
	if !addressDomain.IsZero() {
		return felt.Felt{}, syscallErr(SyscallStorageRead, ErrUnsupportedAddressDomain)
	}

	h.accessedKeys[key] = struct{}{}
	value, err := h.st.StorageAt(h.contractAddress, key)
	if err != nil {
		return felt.Felt{}, syscallErr(SyscallStorageRead, err)
	}
	h.readValues = append(h.readValues, value)
	return value, nil
}

func (h *syscallHandler) StorageWrite(addressDomain, key, value felt.Felt) error {
	h.count(SyscallStorageWrite)
	if !addressDomain.IsZero() {
		return syscallErr(SyscallStorageWrite, ErrUnsupportedAddressDomain)
	}

	h.accessedKeys[key] = struct{}{}
	h.st.SetStorageAt(h.contractAddress, key, value)
	return nil
}

func (h *syscallHandler) execute(syscall string, ep *ExecutionEntryPoint) ([]*felt.Felt, error) {
	callInfo, err := ep.Execute(h.vm, h.st, h.blockCtx, h.resources, h.txCtx)
	if err != nil {
		return nil, syscallErr(syscall, err)
	}
	h.internalCalls = append(h.internalCalls, callInfo)
	return callInfo.Retdata, nil
}

func (h *syscallHandler) CallContract(contractAddress felt.Address, selector felt.Felt,
	calldata []*felt.Felt,
) ([]*felt.Felt, error) {
	h.count(SyscallCallContract)
	if err := h.checkValidateTarget(&contractAddress); err != nil {
		return nil, syscallErr(SyscallCallContract, err)
	}

	return h.execute(SyscallCallContract, &ExecutionEntryPoint{
		CallType:        CallTypeCall,
		ContractAddress: contractAddress,
		Calldata:        calldata,
		CallerAddress:   h.contractAddress,
		Selector:        selector,
		EntryPointType:  core.External,
		InitialGas:      h.initialGas,
	})
}

func (h *syscallHandler) libraryCall(syscall string, classHash felt.ClassHash, selector felt.Felt,
	calldata []*felt.Felt, entryPointType core.EntryPointType,
) ([]*felt.Felt, error) {
	h.count(syscall)
	if err := h.checkValidateTarget(&h.contractAddress); err != nil {
		return nil, syscallErr(syscall, err)
	}

	return h.execute(syscall, &ExecutionEntryPoint{
		CallType:        CallTypeLibrary,
		ContractAddress: h.contractAddress,
		ClassHash:       &classHash,
		Calldata:        calldata,
		CallerAddress:   h.callerAddress,
		Selector:        selector,
		EntryPointType:  entryPointType,
		InitialGas:      h.initialGas,
	})
}

func (h *syscallHandler) LibraryCall(classHash felt.ClassHash, selector felt.Felt,
	calldata []*felt.Felt,
) ([]*felt.Felt, error) {
	return h.libraryCall(SyscallLibraryCall, classHash, selector, calldata, core.External)
}

func (h *syscallHandler) LibraryCallL1Handler(classHash felt.ClassHash, selector felt.Felt,
	calldata []*felt.Felt,
) ([]*felt.Felt, error) {
	return h.libraryCall(SyscallLibraryCallL1Handler, classHash, selector, calldata, core.L1Handler)
}

func (h *syscallHandler) delegateCall(syscall string, codeAddress felt.Address, selector felt.Felt,
	calldata []*felt.Felt, entryPointType core.EntryPointType,
) ([]*felt.Felt, error) {
	h.count(syscall)
	return h.execute(syscall, &ExecutionEntryPoint{
		CallType:        CallTypeDelegate,
		ContractAddress: h.contractAddress,
		CodeAddress:     &codeAddress,
		Calldata:        calldata,
		CallerAddress:   h.callerAddress,
		Selector:        selector,
		EntryPointType:  entryPointType,
		InitialGas:      h.initialGas,
	})
}

func (h *syscallHandler) DelegateCall(contractAddress felt.Address, selector felt.Felt,
	calldata []*felt.Felt,
) ([]*felt.Felt, error) {
	return h.delegateCall(SyscallDelegateCall, contractAddress, selector, calldata, core.External)
}

func (h *syscallHandler) DelegateL1Handler(contractAddress felt.Address, selector felt.Felt,
	calldata []*felt.Felt,
) ([]*felt.Felt, error) {
	return h.delegateCall(SyscallDelegateL1Handler, contractAddress, selector, calldata, core.L1Handler)
}

func (h *syscallHandler) Deploy(classHash felt.ClassHash, salt felt.Felt, calldata []*felt.Felt,
	deployFromZero bool,
) (felt.Address, []*felt.Felt, error) {
	h.count(SyscallDeploy)

	deployer := h.contractAddress
	if deployFromZero {
		deployer = felt.Address{}
	}
	address := core.ContractAddress(deployer, classHash, salt, calldata)
	if err := h.checkValidateTarget(&address); err != nil {
		return felt.Address{}, nil, syscallErr(SyscallDeploy, err)
	}

	if err := h.st.DeployContract(address, classHash); err != nil {
		return felt.Address{}, nil, syscallErr(SyscallDeploy, err)
	}
	callInfo, err := ExecuteConstructor(h.vm, h.st, h.blockCtx, h.resources, h.txCtx, classHash,
		address, h.contractAddress, calldata, h.initialGas)
	if err != nil {
		return felt.Address{}, nil, syscallErr(SyscallDeploy, err)
	}
	h.internalCalls = append(h.internalCalls, callInfo)
	return address, callInfo.Retdata, nil
}

func (h *syscallHandler) EmitEvent(keys, data []*felt.Felt) error {
	h.count(SyscallEmitEvent)
	h.events = append(h.events, OrderedEvent{
		Order: h.txCtx.NEmittedEvents,
		Keys:  keys,
		Data:  data,
	})
	h.txCtx.NEmittedEvents++
	return nil
}

func (h *syscallHandler) SendMessageToL1(toAddress felt.Felt, payload []*felt.Felt) error {
	h.count(SyscallSendMessageToL1)
	if toAddress.BigInt(new(big.Int)).Cmp(maxL1Address) >= 0 {
		return syscallErr(SyscallSendMessageToL1, ErrInvalidL1Address)
	}

	toBytes := toAddress.Bytes()
	h.messages = append(h.messages, OrderedL2ToL1Message{
		Order:   h.txCtx.NSentMessages,
		To:      common.BytesToAddress(toBytes[:]),
		Payload: payload,
	})
	h.txCtx.NSentMessages++
	return nil
}

func (h *syscallHandler) ReplaceClass(classHash felt.ClassHash) error {
	h.count(SyscallReplaceClass)
	if _, err := h.st.ContractClass(classHash); err != nil {
		return syscallErr(SyscallReplaceClass, err)
	}
	if err := h.st.SetClassHashAt(h.contractAddress, classHash); err != nil {
		return syscallErr(SyscallReplaceClass, err)
	}
	return nil
}

func (h *syscallHandler) GetCallerAddress() (felt.Address, error) {
	h.count(SyscallGetCallerAddress)
	return h.callerAddress, nil
}

func (h *syscallHandler) GetContractAddress() (felt.Address, error) {
	h.count(SyscallGetContractAddress)
	return h.contractAddress, nil
}

func (h *syscallHandler) GetSequencerAddress() (felt.Address, error) {
	h.count(SyscallGetSequencerAddress)
	return h.blockCtx.BlockInfo.SequencerAddress, nil
}

func (h *syscallHandler) GetBlockNumber() (uint64, error) {
	h.count(SyscallGetBlockNumber)
	return h.blockCtx.BlockInfo.BlockNumber, nil
}

func (h *syscallHandler) GetBlockTimestamp() (uint64, error) {
	h.count(SyscallGetBlockTimestamp)
	return h.blockCtx.BlockInfo.BlockTimestamp, nil
}

func (h *syscallHandler) GetBlockHash(blockNumber uint64) (felt.Felt, error) {
	h.count(SyscallGetBlockHash)
	if h.txCtx.Mode == ModeValidate {
		return felt.Felt{}, syscallErr(SyscallGetBlockHash, ErrUnauthorizedActionOnValidate)
	}

	current := h.blockCtx.BlockInfo.BlockNumber
	if current < blockHashDelay || blockNumber > current-blockHashDelay {
		return felt.Felt{}, syscallErr(SyscallGetBlockHash, ErrBlockNumberOutOfRange)
	}
	hash, err := h.st.StorageAt(BlockHashContractAddress, felt.FromUint64(blockNumber))
	if err != nil {
		return felt.Felt{}, syscallErr(SyscallGetBlockHash, err)
	}
	return hash, nil
}

func (h *syscallHandler) GetTxInfo() (*vm.TxInfo, error) {
	h.count(SyscallGetTxInfo)
	return &vm.TxInfo{
		Version:                h.txCtx.Version,
		AccountContractAddress: h.txCtx.AccountContractAddress,
		MaxFee:                 h.txCtx.MaxFee,
		Signature:              h.txCtx.Signature,
		TransactionHash:        h.txCtx.TransactionHash,
		ChainID:                h.blockCtx.ChainID,
		Nonce:                  h.txCtx.Nonce,
	}, nil
}

func (h *syscallHandler) GetTxSignature() ([]*felt.Felt, error) {
	h.count(SyscallGetTxSignature)
	return h.txCtx.Signature, nil
}
