// Package vmtest provides a deterministic VM whose contracts are Go closures.
package vmtest

import (
	"fmt"
	"maps"
	"sync"

	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/crypto"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/vm"
)

// EntryPointFunc is the body of a scripted entry point.
type EntryPointFunc func(h vm.SyscallHandler, calldata []*felt.Felt) ([]*felt.Felt, error)

type script struct {
	fn       EntryPointFunc
	steps    uint64
	builtins map[string]uint64
	gas      uint64
}

type Option func(*script)

func WithSteps(steps uint64) Option {
	return func(s *script) { s.steps = steps }
}

func WithBuiltins(builtins map[string]uint64) Option {
	return func(s *script) { s.builtins = builtins }
}

func WithGas(gas uint64) Option {
	return func(s *script) { s.gas = gas }
}

type scriptKey struct {
	class  core.CompiledClass
	offset uint64
}

var _ vm.VM = (*VM)(nil)

// VM runs the closure registered for a (class, entry point offset) pair.
type VM struct {
	mu      sync.RWMutex
	scripts map[scriptKey]script
}

func New() *VM {
	return &VM{scripts: make(map[scriptKey]script)}
}

func (v *VM) Run(class core.CompiledClass, entryPoint core.EntryPoint, calldata []*felt.Felt,
	handler vm.SyscallHandler, limits vm.Limits,
) (*vm.RunResult, error) {
	v.mu.RLock()
	s, ok := v.scripts[scriptKey{class: class, offset: entryPoint.Offset}]
	v.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no script at offset %d of class %p", entryPoint.Offset, class)
	}

	var retdata []*felt.Felt
	if s.fn != nil {
		var err error
		if retdata, err = s.fn(handler, calldata); err != nil {
			return nil, err
		}
	}
	if retdata == nil {
		retdata = []*felt.Felt{}
	}

	gas := s.gas
	if gas > limits.InitialGas {
		gas = limits.InitialGas
	}
	return &vm.RunResult{
		Retdata: retdata,
		Resources: vm.ExecutionResources{
			Steps:    s.steps,
			Builtins: maps.Clone(s.builtins),
		},
		GasConsumed: gas,
	}, nil
}

// ClassBuilder collects the entry points of one scripted class.
type ClassBuilder struct {
	vm          *VM
	entryPoints map[core.EntryPointType][]core.EntryPoint
	scripts     map[uint64]script
	nextOffset  uint64
}

func (v *VM) NewClass() *ClassBuilder {
	return &ClassBuilder{
		vm:          v,
		entryPoints: make(map[core.EntryPointType][]core.EntryPoint),
		scripts:     make(map[uint64]script),
	}
}

func (b *ClassBuilder) add(t core.EntryPointType, selector felt.Felt, fn EntryPointFunc, opts []Option) *ClassBuilder {
	s := script{fn: fn}
	for _, opt := range opts {
		opt(&s)
	}

	offset := b.nextOffset
	b.nextOffset++
	b.entryPoints[t] = append(b.entryPoints[t], core.EntryPoint{
		Selector: selector,
		Offset:   offset,
	})
	b.scripts[offset] = s
	return b
}

// External adds an external entry point named name. "__default__" registers the catch-all.
func (b *ClassBuilder) External(name string, fn EntryPointFunc, opts ...Option) *ClassBuilder {
	return b.add(core.External, crypto.SelectorFromName(name), fn, opts)
}

func (b *ClassBuilder) L1Handler(name string, fn EntryPointFunc, opts ...Option) *ClassBuilder {
	return b.add(core.L1Handler, crypto.SelectorFromName(name), fn, opts)
}

func (b *ClassBuilder) Constructor(fn EntryPointFunc, opts ...Option) *ClassBuilder {
	return b.add(core.Constructor, core.ConstructorSelector, fn, opts)
}

func (b *ClassBuilder) register(class core.CompiledClass) {
	b.vm.mu.Lock()
	defer b.vm.mu.Unlock()
	for offset, s := range b.scripts {
		b.vm.scripts[scriptKey{class: class, offset: offset}] = s
	}
}

// Build returns a cairo 0 class whose entry points run the registered closures.
func (b *ClassBuilder) Build() *core.DeprecatedClass {
	class := &core.DeprecatedClass{EntryPointsByType: b.entryPoints}
	b.register(class)
	return class
}

// BuildCasm is Build for a compiled sierra class.
func (b *ClassBuilder) BuildCasm() *core.CasmClass {
	class := &core.CasmClass{EntryPointsByType: b.entryPoints}
	b.register(class)
	return class
}
