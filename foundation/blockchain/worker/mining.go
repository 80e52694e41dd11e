package worker

import (
	"context"
	"errors"

	"github.com/minichain/blockchain/foundation/blockchain/state"
)

// miningOperations handles mining signals until shutdown.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation()
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation takes all the transactions from the mempool and seals
// them into a new block on the chain.
func (w *Worker) runMiningOperation() {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	// After running a mining operation, check if a new operation should
	// be signaled again.
	defer func() {
		length := w.state.QueryMempoolLength()
		if length > 0 {
			w.evHandler("worker: runMiningOperation: MINING: signal new mining operation: Txs[%d]", length)
			w.SignalStartMining()
		}
	}()

	// Create a context so mining can be cancelled on shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		select {
		case <-w.shut:
			w.evHandler("worker: runMiningOperation: MINING: shutdown: cancel mining")
			cancel()
		case <-ctx.Done():
		}
	}()

	block, err := w.state.MineNewBlock(ctx, w.beneficiaryID)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNoTransactions):
			w.evHandler("worker: runMiningOperation: MINING: no transactions to mine")
		case ctx.Err() != nil:
			w.evHandler("worker: runMiningOperation: MINING: CANCELLED")
		default:
			w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		}
		return
	}

	w.evHandler("worker: runMiningOperation: MINING: mined block: number[%d] hash[%s] txs[%d]", block.Header.Number, block.BlockHash, len(block.Trans))
}
