package execution

import (
	"maps"

	"github.com/NethermindEth/starknet-executor/vm"
)

// ExecutionResourcesManager accumulates the cairo usage and syscall counts of a transaction.
type ExecutionResourcesManager struct {
	CairoUsage     vm.ExecutionResources
	SyscallCounter map[string]uint64
}

func NewExecutionResourcesManager() *ExecutionResourcesManager {
	return &ExecutionResourcesManager{
		CairoUsage:     vm.ExecutionResources{Builtins: make(map[string]uint64)},
		SyscallCounter: make(map[string]uint64),
	}
}

func (m *ExecutionResourcesManager) IncrementSyscallCounter(name string, n uint64) {
	m.SyscallCounter[name] += n
}

func (m *ExecutionResourcesManager) SyscallCount(name string) uint64 {
	return m.SyscallCounter[name]
}

// Merge adds the usage recorded by other.
func (m *ExecutionResourcesManager) Merge(other *ExecutionResourcesManager) {
	m.CairoUsage = m.CairoUsage.Add(other.CairoUsage)
	for name, n := range other.SyscallCounter {
		m.SyscallCounter[name] += n
	}
}

func (m *ExecutionResourcesManager) Clone() *ExecutionResourcesManager {
	return &ExecutionResourcesManager{
		CairoUsage:     m.CairoUsage.Clone(),
		SyscallCounter: maps.Clone(m.SyscallCounter),
	}
}
