// Package worker implements background mining for the chain. It is the
// documented extension over the synchronous core: mining runs on a
// dedicated goroutine while every state operation still serializes through
// the state's own critical section.
package worker

import (
	"sync"

	"github.com/minichain/blockchain/foundation/blockchain/database"
	"github.com/minichain/blockchain/foundation/blockchain/state"
)

// Worker manages the POW workflow for the chain.
type Worker struct {
	state         *state.State
	beneficiaryID database.AccountID
	wg            sync.WaitGroup
	shut          chan struct{}
	startMining   chan bool
	evHandler     state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the mining goroutine.
func Run(st *state.State, beneficiaryID database.AccountID, evHandler state.EventHandler) {
	w := Worker{
		state:         st,
		beneficiaryID: beneficiaryID,
		shut:          make(chan struct{}),
		startMining:   make(chan bool, 1),
		evHandler:     evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work. An in-flight mining
// operation is cancelled through its context.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining starts a mining operation. If mining is already
// running, the signal is dropped; the running operation re-signals itself
// when transactions remain.
func (w *Worker) SignalStartMining() {
	select {
	case w.startMining <- true:
	default:
	}
	w.evHandler("worker: SignalStartMining: mining signaled")
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
