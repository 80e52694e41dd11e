// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/minichain/blockchain/foundation/blockchain/database"
	"github.com/minichain/blockchain/foundation/blockchain/genesis"
	"github.com/minichain/blockchain/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events occur in the
// processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by
// any package providing background mining support.
type Worker interface {
	Shutdown()
	SignalStartMining()
}

// =============================================================================

// Config represents the configuration required to start a chain.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// State manages one chain: the blocks, the pending pool, and the policy
// rules for accepting transactions. Every public operation serializes on a
// single mutex so chain and pool are always observed together.
type State struct {
	mu sync.Mutex

	genesis   genesis.Genesis
	evHandler EventHandler
	mempool   *mempool.Mempool
	db        *database.Database

	// Worker is optionally assigned by the worker package to mine in the
	// background when transactions arrive.
	Worker Worker
}

// New constructs a new state for chain management. Each call produces an
// independent chain with its own genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	db, err := database.New(cfg.Genesis, ev)
	if err != nil {
		return nil, err
	}

	state := State{
		genesis:   cfg.Genesis,
		evHandler: ev,
		mempool:   mempool.New(),
		db:        db,
	}

	return &state, nil
}

// Shutdown cleanly brings the chain down, stopping any background worker.
func (s *State) Shutdown() error {
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
