package execution

import (
	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/utils"
)

type Mode uint8

const (
	ModeExecute Mode = iota
	ModeValidate
)

func (m Mode) String() string {
	if m == ModeValidate {
		return "validate"
	}
	return "execute"
}

// TransactionExecutionContext is shared by every frame of one top-level call.
type TransactionExecutionContext struct {
	AccountContractAddress felt.Address
	TransactionHash        felt.Felt
	Signature              []*felt.Felt
	MaxFee                 felt.Felt
	Nonce                  felt.Felt
	Version                felt.Felt
	// NSteps is the step budget of the call tree, 0 disables the limit.
	NSteps uint64

	NSentMessages  uint64
	NEmittedEvents uint64
	Mode           Mode

	depth int
}

func NewTransactionExecutionContext(account felt.Address, txHash felt.Felt, signature []*felt.Felt,
	maxFee, nonce, version felt.Felt, nSteps uint64, mode Mode,
) *TransactionExecutionContext {
	return &TransactionExecutionContext{
		AccountContractAddress: account,
		TransactionHash:        txHash,
		Signature:              signature,
		MaxFee:                 maxFee,
		Nonce:                  nonce,
		Version:                version,
		NSteps:                 nSteps,
		Mode:                   mode,
	}
}

// Fork returns a context with the same transaction fields and fresh counters.
func (c *TransactionExecutionContext) Fork(nSteps uint64, mode Mode) *TransactionExecutionContext {
	return NewTransactionExecutionContext(c.AccountContractAddress, c.TransactionHash, c.Signature,
		c.MaxFee, c.Nonce, c.Version, nSteps, mode)
}

type BlockInfo struct {
	BlockNumber      uint64
	BlockTimestamp   uint64
	GasPrice         uint64
	SequencerAddress felt.Address
}

// ValidateLegalProgress checks that next may follow b.
func (b *BlockInfo) ValidateLegalProgress(next *BlockInfo) error {
	if b.BlockNumber >= next.BlockNumber {
		return ErrInvalidBlockNumber
	}
	if b.BlockTimestamp > next.BlockTimestamp {
		return ErrInvalidBlockTimestamp
	}
	return nil
}

// BlockContext is the environment every transaction of a block executes in.
type BlockContext struct {
	ChainID                 felt.Felt
	FeeTokenAddress         felt.Address
	BlockInfo               BlockInfo
	CairoResourceFeeWeights map[string]float64
	InvokeTxMaxNSteps       uint64
	ValidateMaxNSteps       uint64
	MaxRecursionDepth       int
	EnforceL1HandlerFee     bool
	Version                 *semver.Version
}

func NewBlockContext(network utils.Network, blockInfo BlockInfo, protocolVersion string) (*BlockContext, error) {
	version, err := core.ParseBlockVersion(protocolVersion)
	if err != nil {
		return nil, err
	}

	constants := VersionedConstantsFor(version)
	return &BlockContext{
		ChainID:                 network.ChainID(),
		FeeTokenAddress:         network.FeeTokenAddress(),
		BlockInfo:               blockInfo,
		CairoResourceFeeWeights: constants.CairoResourceFeeWeights,
		InvokeTxMaxNSteps:       constants.InvokeTxMaxNSteps,
		ValidateMaxNSteps:       constants.ValidateMaxNSteps,
		MaxRecursionDepth:       constants.MaxRecursionDepth,
		Version:                 version,
	}, nil
}
