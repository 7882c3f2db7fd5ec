package execution_test

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/NethermindEth/starknet-executor/core/felt"
	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/utils"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLegalProgress(t *testing.T) {
	current := execution.BlockInfo{BlockNumber: 10, BlockTimestamp: 100}

	tests := map[string]struct {
		next execution.BlockInfo
		err  error
	}{
		"next block": {
			next: execution.BlockInfo{BlockNumber: 11, BlockTimestamp: 100},
		},
		"same block number": {
			next: execution.BlockInfo{BlockNumber: 10, BlockTimestamp: 101},
			err:  execution.ErrInvalidBlockNumber,
		},
		"earlier timestamp": {
			next: execution.BlockInfo{BlockNumber: 12, BlockTimestamp: 99},
			err:  execution.ErrInvalidBlockTimestamp,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := current.ValidateLegalProgress(&test.next)
			if test.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, test.err)
			}
		})
	}
}

func TestNewBlockContext(t *testing.T) {
	info := execution.BlockInfo{BlockNumber: 1, GasPrice: 7}

	t.Run("pre 0.13", func(t *testing.T) {
		blockCtx, err := execution.NewBlockContext(utils.Goerli, info, "0.12.2")
		require.NoError(t, err)

		assert.Equal(t, utils.Goerli.ChainID(), blockCtx.ChainID)
		assert.Equal(t, utils.Goerli.FeeTokenAddress(), blockCtx.FeeTokenAddress)
		assert.Equal(t, info, blockCtx.BlockInfo)
		assert.Equal(t, "0.12.2", blockCtx.Version.String())
		assert.InDelta(t, 0.01, blockCtx.CairoResourceFeeWeights[vm.NSteps], 1e-12)
		assert.Equal(t, uint64(1_000_000), blockCtx.InvokeTxMaxNSteps)
		assert.False(t, blockCtx.EnforceL1HandlerFee)
	})

	t.Run("0.13", func(t *testing.T) {
		blockCtx, err := execution.NewBlockContext(utils.Mainnet, info, "0.13")
		require.NoError(t, err)
		assert.Equal(t, "0.13.0", blockCtx.Version.String())
		assert.InDelta(t, 0.005, blockCtx.CairoResourceFeeWeights[vm.NSteps], 1e-12)
		assert.Equal(t, uint64(3_000_000), blockCtx.InvokeTxMaxNSteps)
	})

	t.Run("empty version", func(t *testing.T) {
		blockCtx, err := execution.NewBlockContext(utils.Mainnet, info, "")
		require.NoError(t, err)
		assert.Equal(t, "0.0.0", blockCtx.Version.String())
	})

	t.Run("invalid version", func(t *testing.T) {
		_, err := execution.NewBlockContext(utils.Mainnet, info, "x.y")
		require.Error(t, err)
	})
}

func TestVersionedConstantsAreCopies(t *testing.T) {
	c := execution.VersionedConstantsFor(semver.MustParse("0.12.0"))
	c.CairoResourceFeeWeights[vm.NSteps] = 100

	fresh := execution.VersionedConstantsFor(semver.MustParse("0.12.0"))
	assert.InDelta(t, 0.01, fresh.CairoResourceFeeWeights[vm.NSteps], 1e-12)
	assert.Equal(t, 50, fresh.MaxRecursionDepth)
}

func TestForkResetsCounters(t *testing.T) {
	txCtx := execution.NewTransactionExecutionContext(felt.AddressFromUint64(1), felt.One, nil,
		felt.Zero, felt.FromUint64(3), felt.One, 10, execution.ModeValidate)
	txCtx.NEmittedEvents = 4
	txCtx.NSentMessages = 2

	forked := txCtx.Fork(20, execution.ModeExecute)
	assert.Equal(t, txCtx.AccountContractAddress, forked.AccountContractAddress)
	assert.Equal(t, txCtx.Nonce, forked.Nonce)
	assert.Equal(t, uint64(20), forked.NSteps)
	assert.Equal(t, execution.ModeExecute, forked.Mode)
	assert.Zero(t, forked.NEmittedEvents)
	assert.Zero(t, forked.NSentMessages)
	assert.Equal(t, "validate", txCtx.Mode.String())
}
