package execution

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/ethereum/go-ethereum/common"
)

type CallType uint8

const (
	CallTypeCall CallType = iota
	CallTypeDelegate
	CallTypeLibrary
)

func (c CallType) String() string {
	switch c {
	case CallTypeDelegate:
		return "DELEGATE"
	case CallTypeLibrary:
		return "LIBRARY"
	default:
		return "CALL"
	}
}

// OrderedEvent is an event as emitted by a frame, Order is its index within the call tree.
type OrderedEvent struct {
	Order uint64
	Keys  []*felt.Felt
	Data  []*felt.Felt
}

type Event struct {
	From felt.Address
	Keys []*felt.Felt
	Data []*felt.Felt
}

type OrderedL2ToL1Message struct {
	Order   uint64
	To      common.Address
	Payload []*felt.Felt
}

// CallInfo is the receipt of one call frame.
type CallInfo struct {
	CallerAddress      felt.Address
	CallType           CallType
	ContractAddress    felt.Address
	CodeAddress        *felt.Address
	ClassHash          felt.ClassHash
	EntryPointSelector felt.Felt
	EntryPointType     core.EntryPointType
	Calldata           []*felt.Felt
	Retdata            []*felt.Felt
	// ExecutionResources include the resources of every internal call.
	ExecutionResources vm.ExecutionResources
	Events             []OrderedEvent
	L2ToL1Messages     []OrderedL2ToL1Message
	// StorageReadValues are in the order the reads were issued.
	StorageReadValues   []felt.Felt
	AccessedStorageKeys map[felt.Felt]struct{}
	// InternalCalls are in the order they were issued.
	InternalCalls []*CallInfo
	GasConsumed   uint64
}

// EmptyConstructorCall is the receipt of deploying a class without a constructor.
func EmptyConstructorCall(contractAddress, callerAddress felt.Address, classHash felt.ClassHash) *CallInfo {
	return &CallInfo{
		CallerAddress:       callerAddress,
		CallType:            CallTypeCall,
		ContractAddress:     contractAddress,
		ClassHash:           classHash,
		EntryPointSelector:  core.ConstructorSelector,
		EntryPointType:      core.Constructor,
		Calldata:            []*felt.Felt{},
		Retdata:             []*felt.Felt{},
		AccessedStorageKeys: make(map[felt.Felt]struct{}),
	}
}

// GenCallTopology lists c and its internal calls in preorder.
func (c *CallInfo) GenCallTopology() []*CallInfo {
	topology := []*CallInfo{c}
	for _, call := range c.InternalCalls {
		topology = append(topology, call.GenCallTopology()...)
	}
	return topology
}

func checkOrder[T any](items []T, order func(T) uint64) bool {
	slices.SortStableFunc(items, func(a, b T) int {
		return cmp.Compare(order(a), order(b))
	})
	for i, item := range items {
		if order(item) != uint64(i) {
			return false
		}
	}
	return true
}

// SortedEvents returns the events of the call tree in emission order.
func (c *CallInfo) SortedEvents() ([]Event, error) {
	type fromEvent struct {
		from  felt.Address
		event OrderedEvent
	}

	var ordered []fromEvent
	for _, call := range c.GenCallTopology() {
		for _, e := range call.Events {
			ordered = append(ordered, fromEvent{from: call.ContractAddress, event: e})
		}
	}
	if !checkOrder(ordered, func(e fromEvent) uint64 { return e.event.Order }) {
		return nil, ErrUnexpectedHolesInEventOrder
	}

	events := make([]Event, len(ordered))
	for i, e := range ordered {
		events[i] = Event{From: e.from, Keys: e.event.Keys, Data: e.event.Data}
	}
	return events, nil
}

// SortedL2ToL1Messages returns the messages of the call tree in the order they were sent.
func (c *CallInfo) SortedL2ToL1Messages() ([]core.L2ToL1Message, error) {
	type fromMessage struct {
		from felt.Address
		msg  OrderedL2ToL1Message
	}

	var ordered []fromMessage
	for _, call := range c.GenCallTopology() {
		for _, m := range call.L2ToL1Messages {
			ordered = append(ordered, fromMessage{from: call.ContractAddress, msg: m})
		}
	}
	if !checkOrder(ordered, func(m fromMessage) uint64 { return m.msg.Order }) {
		return nil, ErrUnexpectedHolesL2ToL1Messages
	}

	messages := make([]core.L2ToL1Message, len(ordered))
	for i, m := range ordered {
		messages[i] = core.L2ToL1Message{From: m.from, To: m.msg.To, Payload: m.msg.Payload}
	}
	return messages, nil
}

// VisitedStorageEntries returns every storage cell accessed in the call tree.
func (c *CallInfo) VisitedStorageEntries() map[state.StorageEntry]struct{} {
	entries := make(map[state.StorageEntry]struct{})
	for _, call := range c.GenCallTopology() {
		for key := range call.AccessedStorageKeys {
			entries[state.StorageEntry{Address: call.ContractAddress, Key: key}] = struct{}{}
		}
	}
	return entries
}

// ClassHashes returns the classes whose code ran in the call tree.
func (c *CallInfo) ClassHashes() map[felt.ClassHash]struct{} {
	hashes := make(map[felt.ClassHash]struct{})
	for _, call := range c.GenCallTopology() {
		hashes[call.ClassHash] = struct{}{}
	}
	return hashes
}

// NDeployments counts the constructor frames of the call tree.
func (c *CallInfo) NDeployments() int {
	n := 0
	for _, call := range c.GenCallTopology() {
		if call.EntryPointType == core.Constructor {
			n++
		}
	}
	return n
}

// VerifyNoCallsToOtherContracts fails when a call of the tree left the contract at its root.
func VerifyNoCallsToOtherContracts(callInfo *CallInfo) error {
	for _, call := range callInfo.GenCallTopology() {
		if !call.ContractAddress.Equal(&callInfo.ContractAddress) {
			return fmt.Errorf("%w: call to %s", ErrUnauthorizedActionOnValidate, call.ContractAddress.String())
		}
	}
	return nil
}
