package core

import (
	"fmt"

	"github.com/NethermindEth/starknet-executor/core/felt"
)

type EntryPointType uint8

const (
	External EntryPointType = iota
	L1Handler
	Constructor
)

func (t EntryPointType) String() string {
	switch t {
	case External:
		return "EXTERNAL"
	case L1Handler:
		return "L1_HANDLER"
	case Constructor:
		return "CONSTRUCTOR"
	default:
		return fmt.Sprintf("EntryPointType(%d)", uint8(t))
	}
}

type EntryPoint struct {
	// The selector of this entry point, the starknet keccak of its name.
	Selector felt.Felt
	// Offset of the entry point in the program bytecode.
	Offset uint64
	// Builtins used by the entry point, only set for Cairo 1 classes.
	Builtins []string
}

// CompiledClass is the executable form of a declared class. It is either a [DeprecatedClass]
// (Cairo 0) or a [CasmClass] (compiled Sierra).
type CompiledClass interface {
	EntryPoints(t EntryPointType) []EntryPoint
	Version() ClassVersion
	compiledClass()
}

type ClassVersion uint8

const (
	Cairo0 ClassVersion = iota
	Cairo1
)

var (
	_ CompiledClass = (*DeprecatedClass)(nil)
	_ CompiledClass = (*CasmClass)(nil)
)

// DeprecatedClass is a Cairo 0 class. The program is kept opaque; only the VM reads it.
type DeprecatedClass struct {
	Program           []byte
	EntryPointsByType map[EntryPointType][]EntryPoint
}

func (c *DeprecatedClass) EntryPoints(t EntryPointType) []EntryPoint {
	return c.EntryPointsByType[t]
}

func (c *DeprecatedClass) Version() ClassVersion { return Cairo0 }

func (c *DeprecatedClass) compiledClass() {}

// CasmClass is the compiled form of a Sierra class.
type CasmClass struct {
	CompilerVersion   string
	Bytecode          []felt.Felt
	EntryPointsByType map[EntryPointType][]EntryPoint
}

func (c *CasmClass) EntryPoints(t EntryPointType) []EntryPoint {
	return c.EntryPointsByType[t]
}

func (c *CasmClass) Version() ClassVersion { return Cairo1 }

func (c *CasmClass) compiledClass() {}
