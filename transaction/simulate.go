package transaction

import (
	"runtime"

	"github.com/NethermindEth/starknet-executor/execution"
	"github.com/NethermindEth/starknet-executor/state"
	"github.com/NethermindEth/starknet-executor/utils"
	"github.com/NethermindEth/starknet-executor/vm"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// SimulateBatch executes independent transactions concurrently, each on its own state over
// reader. The infos are in the order of txs and nothing is written to reader.
func SimulateBatch(reader state.StateReader, classes *state.ClassCache, blockCtx *execution.BlockContext,
	txs []Transaction, v vm.VM, logger utils.SimpleLogger,
) ([]*execution.TransactionExecutionInfo, error) {
	if classes == nil {
		classes = state.NewClassCache(state.DefaultClassCacheSize)
	}

	infos := make([]*execution.TransactionExecutionInfo, len(txs))
	workerPool := pool.New().WithErrors().WithMaxGoroutines(runtime.GOMAXPROCS(0))
	for i, tx := range txs {
		workerPool.Go(func() error {
			info, err := Execute(state.NewCachedState(reader, classes), blockCtx, tx, v, logger)
			if err != nil {
				return errors.Wrapf(err, "transaction %d", i)
			}
			infos[i] = info
			return nil
		})
	}

	if err := workerPool.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}
