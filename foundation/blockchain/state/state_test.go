package state_test

import (
	"context"
	"errors"
	"testing"

	"github.com/minichain/blockchain/foundation/blockchain/database"
	"github.com/minichain/blockchain/foundation/blockchain/genesis"
	"github.com/minichain/blockchain/foundation/blockchain/state"
	"github.com/minichain/blockchain/foundation/blockchain/wallet"
	"github.com/minichain/blockchain/foundation/validate"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

// testDifficulty keeps the POW search fast in the test suite.
const testDifficulty = 1

func newState(t *testing.T, reward float64) *state.State {
	t.Helper()

	st, err := state.New(state.Config{
		Genesis: genesis.New(testDifficulty, reward),
	})
	if err != nil {
		t.Fatalf("Should be able to construct the state: %s", err)
	}

	return st
}

func newWallet(t *testing.T) (*wallet.Wallet, database.AccountID) {
	t.Helper()

	w, err := wallet.Generate()
	if err != nil {
		t.Fatalf("Should be able to generate a wallet: %s", err)
	}

	return w, database.AccountID(w.PublicKeyHex())
}

func send(t *testing.T, w *wallet.Wallet, from database.AccountID, to database.AccountID, value float64) database.SignedTx {
	t.Helper()

	tx, err := database.NewTx(database.Account(from), to, value)
	if err != nil {
		t.Fatalf("Should be able to construct a transaction: %s", err)
	}

	signedTx, err := tx.Sign(w.ECDSA())
	if err != nil {
		t.Fatalf("Should be able to sign a transaction: %s", err)
	}

	return signedTx
}

// =============================================================================

func Test_EndToEnd(t *testing.T) {
	t.Log("Given the need to run a full submit/mine/balance scenario.")
	{
		st := newState(t, 50)

		alice, aliceID := newWallet(t)
		_, bobID := newWallet(t)
		_, minerID := newWallet(t)

		// Seed Alice with a mint transaction of 100.
		seed, err := database.NewRewardTx(aliceID, 100)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the seed transaction: %v", failed, err)
		}
		if err := st.SubmitTransaction(seed); err != nil {
			t.Fatalf("\t%s\tShould accept the mint seed transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept the mint seed transaction.", success)

		// Alice sends 10 to Bob. Her pending credit of 100 covers it.
		if err := st.SubmitTransaction(send(t, alice, aliceID, bobID, 10)); err != nil {
			t.Fatalf("\t%s\tShould accept a signed transaction covered by pending credit: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept a signed transaction covered by pending credit.", success)

		block, err := st.MineNewBlock(context.Background(), minerID)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine the pending pool: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine the pending pool.", success)

		if len(block.Trans) != 3 {
			t.Fatalf("\t%s\tShould seal seed, payment and reward into one block: got %d txs", failed, len(block.Trans))
		}
		if !block.Trans[2].FromID.IsMint() || block.Trans[2].ToID != minerID {
			t.Fatalf("\t%s\tShould append the miner reward last.", failed)
		}
		t.Logf("\t%s\tShould seal seed, payment and reward into one block.", success)

		if st.QueryMempoolLength() != 0 {
			t.Fatalf("\t%s\tShould clear the pool after mining: got %d", failed, st.QueryMempoolLength())
		}
		t.Logf("\t%s\tShould clear the pool after mining.", success)

		if latest := st.LatestBlock(); latest.Header.Number != 1 {
			t.Fatalf("\t%s\tShould have genesis plus one block: tip is %d", failed, latest.Header.Number)
		}

		if bal := st.BalanceOf(aliceID); bal != 90 {
			t.Fatalf("\t%s\tShould compute Alice's balance as 90: got %v", failed, bal)
		}
		if bal := st.BalanceOf(bobID); bal != 10 {
			t.Fatalf("\t%s\tShould compute Bob's balance as 10: got %v", failed, bal)
		}
		if bal := st.BalanceOf(minerID); bal != 50 {
			t.Fatalf("\t%s\tShould compute the miner's balance as 50: got %v", failed, bal)
		}
		t.Logf("\t%s\tShould compute the expected balances.", success)

		if err := st.Validate(); err != nil {
			t.Fatalf("\t%s\tShould validate the chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould validate the chain.", success)
	}
}

func Test_BalanceConservation(t *testing.T) {
	st := newState(t, 50)

	alice, aliceID := newWallet(t)
	bob, bobID := newWallet(t)
	_, carolID := newWallet(t)
	_, minerID := newWallet(t)

	seed, err := database.NewRewardTx(aliceID, 1000)
	if err != nil {
		t.Fatalf("Should be able to construct the seed transaction: %s", err)
	}
	if err := st.SubmitTransaction(seed); err != nil {
		t.Fatalf("Should accept the seed transaction: %s", err)
	}
	if _, err := st.MineNewBlock(context.Background(), minerID); err != nil {
		t.Fatalf("Should be able to mine: %s", err)
	}

	for _, tx := range []database.SignedTx{
		send(t, alice, aliceID, bobID, 300),
		send(t, alice, aliceID, carolID, 200),
		send(t, bob, bobID, carolID, 100),
	} {
		if err := st.SubmitTransaction(tx); err != nil {
			t.Fatalf("Should accept transaction %s: %s", tx, err)
		}
	}
	if _, err := st.MineNewBlock(context.Background(), minerID); err != nil {
		t.Fatalf("Should be able to mine: %s", err)
	}

	// Every unit in circulation entered through the mint: the seed plus
	// one reward per mined block.
	var total float64
	for _, bal := range st.Balances() {
		total += bal
	}
	if exp := 1000 + 2*50.0; total != exp {
		t.Fatalf("Should conserve value outside mint credits, got %v, exp %v", total, exp)
	}

	if bal := st.BalanceOf(aliceID); bal != 500 {
		t.Errorf("Should compute Alice's balance as 500: got %v", bal)
	}
	if bal := st.BalanceOf(carolID); bal != 300 {
		t.Errorf("Should compute Carol's balance as 300: got %v", bal)
	}
}

func Test_SubmitRejections(t *testing.T) {
	t.Log("Given the need to reject bad submissions with distinct reasons.")
	{
		st := newState(t, 50)

		alice, aliceID := newWallet(t)
		_, bobID := newWallet(t)
		_, minerID := newWallet(t)

		// Malformed fields are field errors.
		bad := send(t, alice, aliceID, bobID, 10)
		bad.ToID = ""
		err := st.SubmitTransaction(bad)
		if !validate.IsFieldErrors(err) {
			t.Fatalf("\t%s\tShould reject a missing receiver with field errors: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a missing receiver with field errors.", success)

		negative := send(t, alice, aliceID, bobID, -5)
		if err := st.SubmitTransaction(negative); !validate.IsFieldErrors(err) {
			t.Fatalf("\t%s\tShould reject a negative amount with field errors: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a negative amount with field errors.", success)

		// A missing signature is an authorization failure.
		tx, err := database.NewTx(database.Account(aliceID), bobID, 1)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}
		if err := st.SubmitTransaction(database.SignedTx{Tx: tx}); !errors.Is(err, database.ErrMissingSignature) {
			t.Fatalf("\t%s\tShould reject an unsigned transaction: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject an unsigned transaction.", success)

		// A tampered transaction is an authorization failure.
		tampered := send(t, alice, aliceID, bobID, 10)
		tampered.Value = 1
		if err := st.SubmitTransaction(tampered); !errors.Is(err, database.ErrInvalidSignature) {
			t.Fatalf("\t%s\tShould reject a tampered transaction: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject a tampered transaction.", success)

		// Overspend is its own outcome.
		if err := st.SubmitTransaction(send(t, alice, aliceID, bobID, 10)); !errors.Is(err, state.ErrInsufficientFunds) {
			t.Fatalf("\t%s\tShould reject an overspend: got %v", failed, err)
		}
		t.Logf("\t%s\tShould reject an overspend.", success)

		// Nothing entered the pool and nothing can be mined.
		if st.QueryMempoolLength() != 0 {
			t.Fatalf("\t%s\tShould leave the pool empty after rejections: got %d", failed, st.QueryMempoolLength())
		}
		if _, err := st.MineNewBlock(context.Background(), minerID); !errors.Is(err, state.ErrNoTransactions) {
			t.Fatalf("\t%s\tShould report an empty pool to the miner: got %v", failed, err)
		}
		t.Logf("\t%s\tShould leave the pool empty after rejections.", success)
	}
}

func Test_PendingSpendIsReserved(t *testing.T) {
	st := newState(t, 50)

	alice, aliceID := newWallet(t)
	_, bobID := newWallet(t)
	_, minerID := newWallet(t)

	seed, err := database.NewRewardTx(aliceID, 100)
	if err != nil {
		t.Fatalf("Should be able to construct the seed transaction: %s", err)
	}
	if err := st.SubmitTransaction(seed); err != nil {
		t.Fatalf("Should accept the seed transaction: %s", err)
	}
	if _, err := st.MineNewBlock(context.Background(), minerID); err != nil {
		t.Fatalf("Should be able to mine: %s", err)
	}

	// The first spend of 80 is covered.
	if err := st.SubmitTransaction(send(t, alice, aliceID, bobID, 80)); err != nil {
		t.Fatalf("Should accept the first spend: %s", err)
	}

	// A second spend of 80 against the same pool is not, even though the
	// chain alone still shows a balance of 100.
	if err := st.SubmitTransaction(send(t, alice, aliceID, bobID, 80)); !errors.Is(err, state.ErrInsufficientFunds) {
		t.Fatalf("Should reject a double spend against the pending pool: got %v", err)
	}

	if st.QueryMempoolLength() != 1 {
		t.Fatalf("Should hold only the first spend in the pool: got %d", st.QueryMempoolLength())
	}
}
