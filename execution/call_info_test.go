package execution_test

import (
	"testing"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leafCall(addr uint64, events ...execution.OrderedEvent) *execution.CallInfo {
	return &execution.CallInfo{
		ContractAddress: felt.AddressFromUint64(addr),
		ClassHash:       felt.ClassHash(felt.FromUint64(addr * 10)),
		Events:          events,
	}
}

func event(order, key uint64) execution.OrderedEvent {
	return execution.OrderedEvent{Order: order, Keys: felt.Ptrs(felt.FromUint64(key))}
}

func TestGenCallTopology(t *testing.T) {
	//      1
	//    /   \
	//   2     5
	//  / \
	// 3   4
	two := leafCall(2)
	two.InternalCalls = []*execution.CallInfo{leafCall(3), leafCall(4)}
	root := leafCall(1)
	root.InternalCalls = []*execution.CallInfo{two, leafCall(5)}

	var order []felt.Address
	for _, call := range root.GenCallTopology() {
		order = append(order, call.ContractAddress)
	}
	assert.Equal(t, []felt.Address{
		felt.AddressFromUint64(1),
		felt.AddressFromUint64(2),
		felt.AddressFromUint64(3),
		felt.AddressFromUint64(4),
		felt.AddressFromUint64(5),
	}, order)

	assert.Len(t, root.ClassHashes(), 5)
	assert.Contains(t, root.ClassHashes(), felt.ClassHash(felt.FromUint64(30)))
	assert.Equal(t, 0, root.NDeployments())
}

func TestSortedEvents(t *testing.T) {
	t.Run("ordered across the call tree", func(t *testing.T) {
		root := leafCall(1, event(0, 100), event(3, 103))
		root.InternalCalls = []*execution.CallInfo{leafCall(2, event(2, 102), event(1, 101))}

		events, err := root.SortedEvents()
		require.NoError(t, err)
		require.Len(t, events, 4)

		var keys []uint64
		for _, e := range events {
			k, err := e.Keys[0].Uint64()
			require.NoError(t, err)
			keys = append(keys, k)
		}
		assert.Equal(t, []uint64{100, 101, 102, 103}, keys)
		assert.Equal(t, felt.AddressFromUint64(2), events[1].From)
		assert.Equal(t, felt.AddressFromUint64(1), events[3].From)
	})

	t.Run("hole", func(t *testing.T) {
		root := leafCall(1, event(0, 1), event(2, 2))
		_, err := root.SortedEvents()
		require.ErrorIs(t, err, execution.ErrUnexpectedHolesInEventOrder)
	})

	t.Run("duplicate order", func(t *testing.T) {
		root := leafCall(1, event(0, 1))
		root.InternalCalls = []*execution.CallInfo{leafCall(2, event(0, 2))}
		_, err := root.SortedEvents()
		require.ErrorIs(t, err, execution.ErrUnexpectedHolesInEventOrder)
	})

	t.Run("no events", func(t *testing.T) {
		events, err := leafCall(1).SortedEvents()
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

func TestSortedL2ToL1Messages(t *testing.T) {
	to := common.HexToAddress("0xde29d060D45901Fb19ED6C6e959EB22d8626708e")

	root := leafCall(1)
	root.L2ToL1Messages = []execution.OrderedL2ToL1Message{{Order: 1, To: to, Payload: felt.Ptrs(felt.One)}}
	child := leafCall(2)
	child.L2ToL1Messages = []execution.OrderedL2ToL1Message{{Order: 0, To: to}}
	root.InternalCalls = []*execution.CallInfo{child}

	messages, err := root.SortedL2ToL1Messages()
	require.NoError(t, err)
	assert.Equal(t, []core.L2ToL1Message{
		{From: felt.AddressFromUint64(2), To: to},
		{From: felt.AddressFromUint64(1), To: to, Payload: felt.Ptrs(felt.One)},
	}, messages)

	child.L2ToL1Messages[0].Order = 5
	_, err = root.SortedL2ToL1Messages()
	require.ErrorIs(t, err, execution.ErrUnexpectedHolesL2ToL1Messages)
}

func TestEmptyConstructorCall(t *testing.T) {
	call := execution.EmptyConstructorCall(felt.AddressFromUint64(1), felt.AddressFromUint64(2),
		felt.ClassHash(felt.FromUint64(3)))

	assert.Equal(t, core.Constructor, call.EntryPointType)
	assert.Equal(t, core.ConstructorSelector, call.EntryPointSelector)
	assert.Equal(t, execution.CallTypeCall, call.CallType)
	assert.Empty(t, call.InternalCalls)
	assert.Equal(t, 1, call.NDeployments())
}
