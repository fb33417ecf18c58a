// cmd/xrplctl/tx.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/clients"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/transaction"
)

var (
	txBinary    bool
	txMinLedger uint32
	txMaxLedger uint32
)

// lookupConcurrency bounds parallel tx requests to the node pool.
const lookupConcurrency = 8

var txCmd = &cobra.Command{
	Use:   "tx <hash>...",
	Short: "Look transactions up by hash",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []transaction.LookupOption
		if txBinary {
			opts = append(opts, transaction.WithBinary())
		}
		if txMinLedger > 0 || txMaxLedger > 0 {
			if txMinLedger == 0 || txMaxLedger < txMinLedger {
				return errors.New("--min-ledger and --max-ledger must form a range")
			}
			opts = append(opts, transaction.WithLedgerRange(txMinLedger, txMaxLedger))
		}

		return withApp(cmd, func(ctx context.Context, a *app) error {
			s := transaction.NewSubmitter(a.client, a.options()...)
			results := make([]json.RawMessage, len(args))

			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(lookupConcurrency)
			for i, hash := range args {
				g.Go(func() error {
					resp, err := s.GetTransactionFromHash(gctx, hash, opts...)
					var failure *clients.RequestFailure
					if errors.As(err, &failure) {
						// node errors such as txnNotFound are reported per hash
						results[i], _ = json.Marshal(map[string]string{
							"hash":  hash,
							"error": failure.Code,
						})
						return nil
					}
					if err != nil {
						return fmt.Errorf("lookup %s: %w", hash, err)
					}
					results[i] = resp.Raw()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return printJSON(cmd, results)
		})
	},
}

func init() {
	txCmd.Flags().BoolVar(&txBinary, "binary", false, "return the transaction and metadata as hex blobs")
	txCmd.Flags().Uint32Var(&txMinLedger, "min-ledger", 0, "first ledger to search")
	txCmd.Flags().Uint32Var(&txMaxLedger, "max-ledger", 0, "last ledger to search")
}
