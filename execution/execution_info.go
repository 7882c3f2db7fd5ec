package execution

import (
	"fmt"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/holiman/uint256"
)

type TransactionType uint8

const (
	TxTypeDeclare TransactionType = iota
	TxTypeDeploy
	TxTypeDeployAccount
	TxTypeInvokeFunction
	TxTypeL1Handler
)

func (t TransactionType) String() string {
	switch t {
	case TxTypeDeclare:
		return "DECLARE"
	case TxTypeDeploy:
		return "DEPLOY"
	case TxTypeDeployAccount:
		return "DEPLOY_ACCOUNT"
	case TxTypeInvokeFunction:
		return "INVOKE_FUNCTION"
	case TxTypeL1Handler:
		return "L1_HANDLER"
	default:
		return fmt.Sprintf("TransactionType(%d)", uint8(t))
	}
}

// TransactionExecutionInfo is the receipt of an executed transaction.
type TransactionExecutionInfo struct {
	ValidateInfo    *CallInfo
	CallInfo        *CallInfo
	FeeTransferInfo *CallInfo
	ActualFee       uint256.Int
	ActualResources map[string]uint64
	TxType          TransactionType
	// RevertError is set when the main call was reverted, CallInfo is nil then.
	RevertError string
}

func (i *TransactionExecutionInfo) IsReverted() bool {
	return i.RevertError != ""
}

// NonOptionalCalls lists the calls of the transaction in execution order. Deployments run the
// constructor before validating.
func (i *TransactionExecutionInfo) NonOptionalCalls() []*CallInfo {
	var ordered []*CallInfo
	switch i.TxType {
	case TxTypeDeploy, TxTypeDeployAccount:
		ordered = []*CallInfo{i.CallInfo, i.ValidateInfo, i.FeeTransferInfo}
	default:
		ordered = []*CallInfo{i.ValidateInfo, i.CallInfo, i.FeeTransferInfo}
	}

	calls := make([]*CallInfo, 0, len(ordered))
	for _, call := range ordered {
		if call != nil {
			calls = append(calls, call)
		}
	}
	return calls
}

// Events returns every event of the transaction in execution order.
func (i *TransactionExecutionInfo) Events() ([]Event, error) {
	var events []Event
	for _, call := range i.NonOptionalCalls() {
		callEvents, err := call.SortedEvents()
		if err != nil {
			return nil, err
		}
		events = append(events, callEvents...)
	}
	return events, nil
}

// L2ToL1Messages returns every message sent by the transaction in execution order.
func (i *TransactionExecutionInfo) L2ToL1Messages() ([]core.L2ToL1Message, error) {
	var messages []core.L2ToL1Message
	for _, call := range i.NonOptionalCalls() {
		callMessages, err := call.SortedL2ToL1Messages()
		if err != nil {
			return nil, err
		}
		messages = append(messages, callMessages...)
	}
	return messages, nil
}

const (
	eventsBloomLength    = 8192
	eventsBloomHashFuncs = 6
)

// EventsBloom indexes the emitter and keys of every event in infos.
func EventsBloom(infos []*TransactionExecutionInfo) (*bloom.BloomFilter, error) {
	filter := bloom.New(eventsBloomLength, eventsBloomHashFuncs)

	for _, info := range infos {
		events, err := info.Events()
		if err != nil {
			return nil, err
		}
		for _, event := range events {
			fromBytes := event.From.Bytes()
			filter.TestOrAdd(fromBytes[:])
			for _, key := range event.Keys {
				keyBytes := key.Bytes()
				filter.TestOrAdd(keyBytes[:])
			}
		}
	}
	return filter, nil
}
