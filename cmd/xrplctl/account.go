// cmd/xrplctl/account.go
package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/account"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Query accounts",
}

var accountSeqCmd = &cobra.Command{
	Use:   "seq <address>",
	Short: "Print the next sequence number of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !account.IsValidClassicAddress(args[0]) {
			return fmt.Errorf("invalid address %q", args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			seq, err := account.GetNextValidSeqNumber(ctx, a.client, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"account": args[0], "sequence": seq})
		})
	},
}

var accountBalanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Print the XRP balance of an account in drops",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !account.IsValidClassicAddress(args[0]) {
			return fmt.Errorf("invalid address %q", args[0])
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			balance, err := account.GetBalance(ctx, a.client, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"account": args[0], "balance": balance})
		})
	},
}

func init() {
	accountCmd.AddCommand(accountSeqCmd)
	accountCmd.AddCommand(accountBalanceCmd)
}
