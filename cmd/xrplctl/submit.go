// cmd/xrplctl/submit.go
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/internal/report"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/models/transactions"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/transaction"
	"github.com/rovshanmuradov/xrpl-sdk/pkg/wallet"
)

var (
	paymentTo      string
	paymentAmount  uint64
	paymentFee     string
	paymentOffset  uint32
	paymentDestTag uint32
	paymentNoWait  bool
	paymentRepeat  int
	reportPath     string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Sign and submit transactions",
}

var submitPaymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Send XRP and wait for the payment to be validated",
	Example: `  xrplctl submit payment --to rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe --amount 1000000
  xrplctl submit payment --to rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe --amount 25 --fee 12 --last-ledger-offset 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			w, err := a.wallet()
			if err != nil {
				return err
			}

			payment, err := transactions.NewPayment(w.ClassicAddress, paymentTo, transactions.XRPDrops(paymentAmount))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("destination-tag") {
				payment.DestinationTag = &paymentDestTag
			}

			opts := a.options()
			if paymentFee != "" {
				opts = append(opts, transaction.WithFee(paymentFee))
			}
			if paymentOffset > 0 {
				opts = append(opts, transaction.WithLedgerOffset(paymentOffset))
			}
			s := transaction.NewSubmitter(a.client, opts...)

			end := a.log.TrackPerformance("submit_payment")
			defer end()

			batch, err := signPayments(ctx, s, payment, w, paymentRepeat)
			if err != nil {
				return err
			}
			for _, signed := range batch {
				a.log.WithTransaction(signed.Hash).Info("Payment signed",
					zap.String("from", w.ClassicAddress),
					zap.String("to", paymentTo),
					zap.Uint32("sequence", signed.Tx.Common().Sequence),
					zap.Uint32("last_ledger_sequence", signed.Tx.Common().LastLedgerSequence))
			}

			if paymentNoWait {
				views := make([]map[string]any, 0, len(batch))
				for _, signed := range batch {
					result, _, err := s.Submit(ctx, signed)
					if err != nil {
						return err
					}
					views = append(views, map[string]any{
						"hash":          signed.Hash,
						"engine_result": result.EngineResult,
						"message":       result.EngineResultMessage,
					})
				}
				return printJSON(cmd, views)
			}

			outcomes, err := s.SubmitAndWaitAll(ctx, batch)
			if reportErr := writeReport(a, w.ClassicAddress, outcomes); reportErr != nil {
				a.log.LogError("Failed to write report", reportErr)
			}
			if err != nil {
				return err
			}

			views := make([]map[string]any, len(outcomes))
			var expired []error
			for i, outcome := range outcomes {
				views[i] = outcomeView(outcome)
				if err := outcome.Err(); err != nil {
					expired = append(expired, err)
				}
			}
			if len(views) == 1 {
				err = printJSON(cmd, views[0])
			} else {
				err = printJSON(cmd, views)
			}
			if err != nil {
				return err
			}
			return errors.Join(expired...)
		})
	},
}

// signPayments autofills payment once and signs count copies of it with
// consecutive sequence numbers.
func signPayments(ctx context.Context, s *transaction.Submitter, payment transactions.Payment, w *wallet.Wallet, count int) ([]transaction.SignedTransaction, error) {
	if count < 1 {
		count = 1
	}
	filled, err := s.Autofill(ctx, payment)
	if err != nil {
		return nil, fmt.Errorf("prepare payment: %w", err)
	}

	batch := make([]transaction.SignedTransaction, 0, count)
	common := filled.Common()
	first := common.Sequence
	for i := range count {
		if first != 0 {
			common.Sequence = first + uint32(i)
		}
		signed, err := transaction.Sign(filled.WithCommon(common), w)
		if err != nil {
			return nil, fmt.Errorf("sign payment: %w", err)
		}
		batch = append(batch, signed)
	}
	return batch, nil
}

func writeReport(a *app, account string, outcomes []transaction.Outcome) error {
	if reportPath == "" {
		return nil
	}
	rw, err := report.NewWriter(reportPath, a.log.Logger)
	if err != nil {
		return err
	}
	defer rw.Close()

	for _, o := range outcomes {
		if o.Hash == "" {
			continue
		}
		if err := rw.Write(report.Record{
			Hash:               o.Hash,
			Account:            account,
			State:              o.State.String(),
			EngineResult:       o.EngineResult,
			Result:             o.TransactionResult(),
			LedgerIndex:        o.LedgerIndex,
			LastLedgerSequence: o.LastLedgerSequence,
		}); err != nil {
			return err
		}
	}
	return nil
}

func outcomeView(o transaction.Outcome) map[string]any {
	view := map[string]any{
		"hash":                 o.Hash,
		"state":                o.State.String(),
		"engine_result":        o.EngineResult,
		"last_ledger_sequence": o.LastLedgerSequence,
		"validated_ledger":     o.CurrentLedgerIndex,
	}
	if o.Validated() {
		view["result"] = o.TransactionResult()
		view["ledger_index"] = o.LedgerIndex
		if o.Meta != nil && o.Meta.DeliveredAmount != nil {
			view["delivered_amount"] = o.Meta.DeliveredAmount.String()
		}
	}
	return view
}

func init() {
	submitPaymentCmd.Flags().StringVar(&paymentTo, "to", "", "destination address")
	submitPaymentCmd.Flags().Uint64Var(&paymentAmount, "amount", 0, "amount in drops")
	submitPaymentCmd.Flags().StringVar(&paymentFee, "fee", "", "fee in drops (default: ask the node)")
	submitPaymentCmd.Flags().Uint32Var(&paymentOffset, "last-ledger-offset", 0, "ledgers after the latest validated one before the payment expires")
	submitPaymentCmd.Flags().Uint32Var(&paymentDestTag, "destination-tag", 0, "destination tag")
	submitPaymentCmd.Flags().BoolVar(&paymentNoWait, "no-wait", false, "print the preliminary result and return")
	submitPaymentCmd.Flags().IntVar(&paymentRepeat, "repeat", 1, "send the payment this many times with consecutive sequence numbers, concurrently")
	submitPaymentCmd.Flags().StringVar(&reportPath, "report", "", "append outcomes to this CSV (or .jsonl) file")
	_ = submitPaymentCmd.MarkFlagRequired("to")
	_ = submitPaymentCmd.MarkFlagRequired("amount")

	submitCmd.AddCommand(submitPaymentCmd)
}
