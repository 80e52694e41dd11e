// This program runs the money transfer scenario end to end on a fresh
// chain: seed an account from the mint, move value between wallets, mine
// with a background worker, and validate the chain. It exercises the core
// only through its public operations.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/minichain/blockchain/foundation/blockchain/database"
	"github.com/minichain/blockchain/foundation/blockchain/genesis"
	"github.com/minichain/blockchain/foundation/blockchain/state"
	"github.com/minichain/blockchain/foundation/blockchain/wallet"
	"github.com/minichain/blockchain/foundation/blockchain/worker"
	"github.com/minichain/blockchain/foundation/logger"
	"github.com/minichain/blockchain/foundation/nameservice"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("DEMO")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Chain struct {
			Difficulty   uint    `conf:"default:3"`
			MiningReward float64 `conf:"default:50"`
		}
		Accounts struct {
			Folder string `conf:"default:zblock/accounts/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "educational proof-of-work ledger",
		},
	}

	const prefix = "DEMO"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	log.Infow("starting demo", "version", build)
	defer log.Infow("demo complete")

	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Wallets and name resolution

	if err := os.MkdirAll(cfg.Accounts.Folder, 0755); err != nil {
		return fmt.Errorf("creating accounts folder: %w", err)
	}

	wallets := make(map[string]*wallet.Wallet)
	for _, name := range []string{"alice", "bob", "miner"} {
		w, err := wallet.Generate()
		if err != nil {
			return fmt.Errorf("generating wallet %s: %w", name, err)
		}
		if err := w.SaveToFile(filepath.Join(cfg.Accounts.Folder, name+".ecdsa")); err != nil {
			return fmt.Errorf("saving wallet %s: %w", name, err)
		}
		wallets[name] = w
	}

	ns, err := nameservice.New(cfg.Accounts.Folder)
	if err != nil {
		return fmt.Errorf("constructing name service: %w", err)
	}

	aliceID := database.AccountID(wallets["alice"].PublicKeyHex())
	bobID := database.AccountID(wallets["bob"].PublicKeyHex())
	minerID := database.AccountID(wallets["miner"].PublicKeyHex())

	// =========================================================================
	// Chain and background miner

	ev := func(v string, args ...any) {
		log.Infow(fmt.Sprintf(v, args...))
	}

	st, err := state.New(state.Config{
		Genesis:   genesis.New(cfg.Chain.Difficulty, cfg.Chain.MiningReward),
		EvHandler: ev,
	})
	if err != nil {
		return fmt.Errorf("constructing state: %w", err)
	}

	worker.Run(st, minerID, ev)
	defer st.Shutdown()

	// =========================================================================
	// Scenario

	seed, err := database.NewRewardTx(aliceID, 100)
	if err != nil {
		return fmt.Errorf("constructing seed transaction: %w", err)
	}
	if err := st.SubmitTransaction(seed); err != nil {
		return fmt.Errorf("submitting seed transaction: %w", err)
	}

	if err := submitPayment(st, wallets["alice"], aliceID, bobID, 10); err != nil {
		return err
	}
	if err := waitForPool(st); err != nil {
		return err
	}
	logBalances(log, st, ns)

	if err := submitPayment(st, wallets["bob"], bobID, aliceID, 4.5); err != nil {
		return err
	}
	if err := waitForPool(st); err != nil {
		return err
	}
	logBalances(log, st, ns)

	// =========================================================================
	// Validation

	if err := st.Validate(); err != nil {
		return fmt.Errorf("chain validation: %w", err)
	}
	log.Infow("chain validated", "blocks", len(st.RetrieveBlocks()))

	return nil
}

// submitPayment signs and submits a payment between two wallets.
func submitPayment(st *state.State, w *wallet.Wallet, from database.AccountID, to database.AccountID, value float64) error {
	tx, err := database.NewTx(database.Account(from), to, value)
	if err != nil {
		return fmt.Errorf("constructing transaction: %w", err)
	}

	signedTx, err := tx.Sign(w.ECDSA())
	if err != nil {
		return fmt.Errorf("signing transaction: %w", err)
	}

	if err := st.SubmitTransaction(signedTx); err != nil {
		return fmt.Errorf("submitting transaction: %w", err)
	}

	return nil
}

// waitForPool blocks until the background worker has drained the pending
// pool into a mined block.
func waitForPool(st *state.State) error {
	deadline := time.Now().Add(2 * time.Minute)
	for st.QueryMempoolLength() > 0 {
		if time.Now().After(deadline) {
			return errors.New("timed out waiting for mining")
		}
		time.Sleep(50 * time.Millisecond)
	}

	return nil
}

// logBalances reports every known balance using wallet names.
func logBalances(log *zap.SugaredLogger, st *state.State, ns *nameservice.NameService) {
	for accountID, balance := range st.Balances() {
		log.Infow("balance", "account", ns.Lookup(accountID), "value", balance)
	}
}
