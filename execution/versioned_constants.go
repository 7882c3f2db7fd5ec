package execution

import (
	"maps"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/vm"
)

// VersionedConstants are the protocol parameters that change between Starknet versions.
type VersionedConstants struct {
	// Fee weight of one unit of each cairo resource, in L1 gas.
	CairoResourceFeeWeights map[string]float64
	InvokeTxMaxNSteps       uint64
	ValidateMaxNSteps       uint64
	MaxRecursionDepth       int
}

var (
	constantsV0_12 = VersionedConstants{
		CairoResourceFeeWeights: map[string]float64{
			vm.NSteps:              0.01,
			vm.PedersenBuiltin:     0.32,
			vm.RangeCheckBuiltin:   0.16,
			vm.EcdsaBuiltin:        20.48,
			vm.BitwiseBuiltin:      0.64,
			vm.EcOpBuiltin:         10.24,
			vm.PoseidonBuiltin:     0.32,
			vm.KeccakBuiltin:       20.48,
			vm.OutputBuiltin:       0,
			vm.SegmentArenaBuiltin: 0,
		},
		InvokeTxMaxNSteps: 1_000_000,
		ValidateMaxNSteps: 1_000_000,
		MaxRecursionDepth: 50,
	}
	constantsV0_13 = VersionedConstants{
		CairoResourceFeeWeights: map[string]float64{
			vm.NSteps:              0.005,
			vm.PedersenBuiltin:     0.16,
			vm.RangeCheckBuiltin:   0.08,
			vm.EcdsaBuiltin:        10.24,
			vm.BitwiseBuiltin:      0.32,
			vm.EcOpBuiltin:         5.12,
			vm.PoseidonBuiltin:     0.16,
			vm.KeccakBuiltin:       10.24,
			vm.OutputBuiltin:       0,
			vm.SegmentArenaBuiltin: 0,
		},
		InvokeTxMaxNSteps: 3_000_000,
		ValidateMaxNSteps: 1_000_000,
		MaxRecursionDepth: 50,
	}
)

// VersionedConstantsFor returns a copy of the constants in force at the given protocol version.
func VersionedConstantsFor(version *semver.Version) VersionedConstants {
	c := constantsV0_12
	if version != nil && !version.LessThan(core.Ver0_13_0) {
		c = constantsV0_13
	}
	c.CairoResourceFeeWeights = maps.Clone(c.CairoResourceFeeWeights)
	return c
}
