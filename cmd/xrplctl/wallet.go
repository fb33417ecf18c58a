// cmd/xrplctl/wallet.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/wallet"
)

var walletsFile string

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage signing keys",
}

var walletNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate a new secp256k1 wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := wallet.New()
		if err != nil {
			return err
		}
		return printJSON(cmd, walletView(w, true))
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the addresses of the wallets in a CSV file (Name,PrivateKeyHex)",
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets, err := wallet.LoadWallets(walletsFile)
		if err != nil {
			return err
		}
		if len(wallets) == 0 {
			return fmt.Errorf("no valid wallets in %s", walletsFile)
		}
		view := make(map[string]any, len(wallets))
		for name, w := range wallets {
			view[name] = walletView(w, false)
		}
		return printJSON(cmd, view)
	},
}

func walletView(w *wallet.Wallet, withKey bool) map[string]string {
	view := map[string]string{
		"address":    w.ClassicAddress,
		"public_key": w.PublicKey,
	}
	if withKey {
		view["private_key"] = w.PrivateKeyHex()
	}
	return view
}

func init() {
	walletListCmd.Flags().StringVar(&walletsFile, "file", "wallets.csv", "CSV file with wallets")
	walletCmd.AddCommand(walletNewCmd)
	walletCmd.AddCommand(walletListCmd)
}
