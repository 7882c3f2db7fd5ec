package vm

import (
	"maps"
)

const (
	OutputBuiltin       = "output_builtin"
	PedersenBuiltin     = "pedersen_builtin"
	RangeCheckBuiltin   = "range_check_builtin"
	EcdsaBuiltin        = "ecdsa_builtin"
	BitwiseBuiltin      = "bitwise_builtin"
	EcOpBuiltin         = "ec_op_builtin"
	KeccakBuiltin       = "keccak_builtin"
	PoseidonBuiltin     = "poseidon_builtin"
	SegmentArenaBuiltin = "segment_arena_builtin"
)

// NSteps is the resource name steps are reported under.
const NSteps = "n_steps"

type ExecutionResources struct {
	Steps       uint64
	MemoryHoles uint64
	Builtins    map[string]uint64
}

func NewExecutionResources(steps uint64, builtins map[string]uint64) ExecutionResources {
	return ExecutionResources{
		Steps:    steps,
		Builtins: builtins,
	}
}

func (r ExecutionResources) Clone() ExecutionResources {
	r.Builtins = maps.Clone(r.Builtins)
	return r
}

func (r ExecutionResources) Add(other ExecutionResources) ExecutionResources {
	res := ExecutionResources{
		Steps:       r.Steps + other.Steps,
		MemoryHoles: r.MemoryHoles + other.MemoryHoles,
		Builtins:    make(map[string]uint64, len(r.Builtins)+len(other.Builtins)),
	}
	for name, n := range r.Builtins {
		res.Builtins[name] += n
	}
	for name, n := range other.Builtins {
		res.Builtins[name] += n
	}
	return res
}

// Sub saturates at zero per counter.
func (r ExecutionResources) Sub(other ExecutionResources) ExecutionResources {
	res := ExecutionResources{
		Steps:       saturatingSub(r.Steps, other.Steps),
		MemoryHoles: saturatingSub(r.MemoryHoles, other.MemoryHoles),
		Builtins:    make(map[string]uint64, len(r.Builtins)),
	}
	for name, n := range r.Builtins {
		res.Builtins[name] = saturatingSub(n, other.Builtins[name])
	}
	return res
}

func (r ExecutionResources) Scale(factor uint64) ExecutionResources {
	res := ExecutionResources{
		Steps:       r.Steps * factor,
		MemoryHoles: r.MemoryHoles * factor,
		Builtins:    make(map[string]uint64, len(r.Builtins)),
	}
	for name, n := range r.Builtins {
		res.Builtins[name] = n * factor
	}
	return res
}

// FilterUnusedBuiltins drops builtins with a zero counter.
func (r ExecutionResources) FilterUnusedBuiltins() ExecutionResources {
	res := ExecutionResources{
		Steps:       r.Steps,
		MemoryHoles: r.MemoryHoles,
		Builtins:    make(map[string]uint64, len(r.Builtins)),
	}
	for name, n := range r.Builtins {
		if n != 0 {
			res.Builtins[name] = n
		}
	}
	return res
}

// ResourceMap flattens the resources into named counters, memory holes are charged as steps.
func (r ExecutionResources) ResourceMap() map[string]uint64 {
	res := make(map[string]uint64, len(r.Builtins)+1)
	for name, n := range r.Builtins {
		res[name] = n
	}
	res[NSteps] = r.Steps + r.MemoryHoles
	return res
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
