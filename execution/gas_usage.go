package execution

import (
	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/state"
)

// L1 gas constants.
const (
	WordWidth                      = 32
	GasPerMemoryByte               = 16
	GasPerMemoryWord               = GasPerMemoryByte * WordWidth
	GasPerLog                      = 375
	GasPerLogTopic                 = 375
	GasPerLogDataByte              = 8
	GasPerLogDataWord              = GasPerLogDataByte * WordWidth
	GasPerZeroToNonzeroStorageSet  = 20000
	GasPerColdStorageAccess        = 2100
	GasPerNonzeroToIntStorageSet   = 2900
	GasPerCounterDecrease          = GasPerColdStorageAccess + GasPerNonzeroToIntStorageSet
	SharpAddedGasPerMemoryWord     = 100
	SharpGasPerMemoryWord          = GasPerMemoryWord + SharpAddedGasPerMemoryWord
	L2ToL1MsgHeaderSize            = 3
	L1ToL2MsgHeaderSize            = 5
	ClassUpdateSize                = 1
	ConsumedMsgToL2NTopics         = 3
	LogMsgToL1NTopics              = 2
	NDefaultTopics                 = 1
	ConsumedMsgToL2EncodedDataSize = (L1ToL2MsgHeaderSize + 1) - ConsumedMsgToL2NTopics
	LogMsgToL1EncodedDataSize      = (L2ToL1MsgHeaderSize + 1) - LogMsgToL1NTopics
	modifiedContractSegmentLength  = 2
	storageUpdateSegmentLength     = 2
	compiledClassHashSegmentLength = 2
)

// L1GasUsage is the resource name the L1 gas of a transaction is reported under.
const L1GasUsage = "l1_gas_usage"

// CalculateTxGasUsage returns the L1 gas of a transaction: the messages it sends and consumes
// plus the cost of publishing its state changes. l1HandlerPayloadSize is set for L1 handlers only.
func CalculateTxGasUsage(messages []core.L2ToL1Message, stateChanges state.StateChangesCount,
	l1HandlerPayloadSize *int,
) int {
	messageSegmentLength := MessageSegmentLength(messages, l1HandlerPayloadSize)
	onchainDataSegmentLength := OnchainDataSegmentLength(stateChanges)

	nL1ToL2Messages := 0
	if l1HandlerPayloadSize != nil {
		nL1ToL2Messages = 1
	}

	starknetGasUsage := messageSegmentLength*GasPerMemoryWord +
		len(messages)*GasPerZeroToNonzeroStorageSet +
		nL1ToL2Messages*GasPerCounterDecrease +
		ConsumedMessageToL2EmissionsCost(l1HandlerPayloadSize) +
		LogMessageToL1EmissionsCost(messages)
	sharpGasUsage := (messageSegmentLength + onchainDataSegmentLength) * SharpGasPerMemoryWord

	return starknetGasUsage + sharpGasUsage
}

func MessageSegmentLength(messages []core.L2ToL1Message, l1HandlerPayloadSize *int) int {
	length := 0
	for _, msg := range messages {
		length += L2ToL1MsgHeaderSize + len(msg.Payload)
	}
	if l1HandlerPayloadSize != nil {
		length += L1ToL2MsgHeaderSize + *l1HandlerPayloadSize
	}
	return length
}

func OnchainDataSegmentLength(stateChanges state.StateChangesCount) int {
	return stateChanges.NModifiedContracts*modifiedContractSegmentLength +
		stateChanges.NClassHashUpdates*ClassUpdateSize +
		stateChanges.NStorageUpdates*storageUpdateSegmentLength +
		stateChanges.NCompiledClassHashUpdates*compiledClassHashSegmentLength
}

func ConsumedMessageToL2EmissionsCost(l1HandlerPayloadSize *int) int {
	if l1HandlerPayloadSize == nil {
		return 0
	}
	return EventEmissionCost(ConsumedMsgToL2NTopics, *l1HandlerPayloadSize+ConsumedMsgToL2EncodedDataSize)
}

func LogMessageToL1EmissionsCost(messages []core.L2ToL1Message) int {
	cost := 0
	for _, msg := range messages {
		cost += EventEmissionCost(LogMsgToL1NTopics, LogMsgToL1EncodedDataSize+len(msg.Payload))
	}
	return cost
}

// EventEmissionCost is the L1 gas of emitting an event with the given topics and data words.
func EventEmissionCost(topics, dataWords int) int {
	return GasPerLog + (topics+NDefaultTopics)*GasPerLogTopic + dataWords*GasPerLogDataWord
}

// CalculateTxResources sums the resources a transaction consumed, keyed by resource name.
func CalculateTxResources(resources *ExecutionResourcesManager, calls []*CallInfo, txType TransactionType,
	stateChanges state.StateChangesCount, l1HandlerPayloadSize *int,
) (map[string]uint64, error) {
	var messages []core.L2ToL1Message
	for _, call := range calls {
		if call == nil {
			continue
		}
		callMessages, err := call.SortedL2ToL1Messages()
		if err != nil {
			return nil, err
		}
		messages = append(messages, callMessages...)
	}

	l1Gas := CalculateTxGasUsage(messages, stateChanges, l1HandlerPayloadSize)
	osUsage, err := AdditionalOSResources(resources.SyscallCounter, txType)
	if err != nil {
		return nil, err
	}

	total := resources.CairoUsage.Add(osUsage).FilterUnusedBuiltins().ResourceMap()
	total[L1GasUsage] = uint64(l1Gas)
	return total, nil
}
