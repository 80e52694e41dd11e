// Package genesis maintains access to the chain parameters.
package genesis

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// Genesis represents the parameters a chain runs with. Balances seed
// accounts at block zero; all other value enters through mining rewards.
type Genesis struct {
	Date         time.Time          `json:"date"`
	ChainID      string             `json:"chain_id"`      // Unique id for this chain instance.
	Difficulty   uint               `json:"difficulty"`    // Number of leading zeros required of a block hash.
	MiningReward float64            `json:"mining_reward"` // Reward for mining a block.
	Balances     map[string]float64 `json:"balances"`
}

// New constructs the parameters for a fresh chain.
func New(difficulty uint, miningReward float64) Genesis {
	return Genesis{
		Date:         time.Now().UTC(),
		ChainID:      uuid.NewString(),
		Difficulty:   difficulty,
		MiningReward: miningReward,
	}
}

// =============================================================================

// Load opens and consumes a genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}

// Save writes the genesis parameters to disk so external tooling can reuse
// them. The chain itself is never persisted.
func (g Genesis) Save(path string) error {
	data, err := json.MarshalIndent(g, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
