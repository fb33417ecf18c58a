// cmd/xrplctl/ledger.go
package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/ledger"
)

var ledgerCurrent bool

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Query ledgers",
}

var ledgerIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Print the latest validated (or open) ledger index",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			get := ledger.GetLatestValidatedLedgerSequence
			if ledgerCurrent {
				get = ledger.GetLatestOpenLedgerSequence
			}
			index, err := get(ctx, a.client)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"ledger_index": index, "validated": !ledgerCurrent})
		})
	},
}

var ledgerFeeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Print the current transaction cost in drops",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			fee, err := ledger.GetFee(ctx, a.client)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{"fee": fee})
		})
	},
}

func init() {
	ledgerIndexCmd.Flags().BoolVar(&ledgerCurrent, "current", false, "print the open ledger index instead")
	ledgerCmd.AddCommand(ledgerIndexCmd)
	ledgerCmd.AddCommand(ledgerFeeCmd)
}
