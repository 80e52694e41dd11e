package cmd

import (
	"fmt"
	"log"

	"github.com/minichain/blockchain/foundation/blockchain/wallet"
	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the account id for the specified wallet",
	Run:   accountRun,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func accountRun(cmd *cobra.Command, args []string) {
	w, err := wallet.LoadFromFile(getPrivateKeyPath())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(w.PublicKeyHex())
}
