package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/minichain/blockchain/foundation/blockchain/database"
	"github.com/minichain/blockchain/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <to-account> <amount>",
	Short: "Construct and sign a transaction, printing its JSON",
	Args:  cobra.ExactArgs(2),
	Run:   sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func sendRun(cmd *cobra.Command, args []string) {
	w, err := wallet.LoadFromFile(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	to, err := database.ToAccountID(args[0])
	if err != nil {
		log.Fatal(err)
	}

	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		log.Fatal(err)
	}

	from, err := database.ToAccountID(w.PublicKeyHex())
	if err != nil {
		log.Fatal(err)
	}

	tx, err := database.NewTx(database.Account(from), to, value)
	if err != nil {
		log.Fatal(err)
	}

	signedTx, err := tx.Sign(w.ECDSA())
	if err != nil {
		log.Fatal(err)
	}

	data, err := json.MarshalIndent(signedTx, "", "    ")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(data))
}
