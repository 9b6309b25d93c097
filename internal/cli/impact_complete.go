package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/config"
	"github.com/rshade/ecoshare/internal/engine/batch"
	"github.com/rshade/ecoshare/internal/impact"
	"github.com/rshade/ecoshare/internal/ingest"
	"github.com/rshade/ecoshare/internal/logging"
)

// CompleteParams holds the flags of the impact complete command.
type CompleteParams struct {
	Inputs    []string
	Out       string
	BatchSize int
}

// NewImpactCompleteCmd creates the impact complete command.
func NewImpactCompleteCmd() *cobra.Command {
	var params CompleteParams

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Mark transactions completed and attach their impact",
		Long: `Loads transactions from one or more JSON, NDJSON or YAML files, marks each one
completed and attaches its impact record. Transactions that already carry an
impact record keep it unchanged. The completed transactions are written as JSON
(or NDJSON with --output ndjson) to --out or standard output, and a one-line
total is printed to standard error.`,
		Example: `  # Complete every listing in two exports
  ecoshare impact complete --input week1.json --input week2.ndjson --out completed.json

  # Read from standard input
  cat listings.json | ecoshare impact complete --input -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImpactComplete(cmd, params)
		},
	}

	cmd.Flags().StringSliceVarP(&params.Inputs, "input", "i", nil, "transaction file(s); '-' reads JSON from stdin")
	cmd.Flags().StringVar(&params.Out, "out", "", "write completed transactions to this file instead of stdout")
	cmd.Flags().IntVar(&params.BatchSize, "batch-size", batch.DefaultBatchSize,
		fmt.Sprintf("transactions per batch (%d-%d)", batch.MinBatchSize, batch.MaxBatchSize))
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runImpactComplete(cmd *cobra.Command, params CompleteParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	processor, err := batch.NewProcessor[impact.Transaction](params.BatchSize)
	if err != nil {
		return err
	}

	txns, err := ingest.LoadFiles(ctx, params.Inputs)
	if err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}
	if err = ingest.ValidateKinds(txns); err != nil {
		return fmt.Errorf("loading transactions: %w", err)
	}

	acc, err := completeTransactions(ctx, processor, txns, time.Now().UTC())
	if err != nil {
		return err
	}

	if err = writeCompleted(cmd, params.Out, txns); err != nil {
		return err
	}

	summary := acc.User()
	log.Info().Ctx(ctx).
		Int("transaction_count", acc.Len()).
		Float64("co2_saved_kg", summary.TotalCO2SavedKg).
		Msg("transactions completed")

	cmd.PrintErrf("Completed %d transactions: %s kg waste prevented, %s kg CO2 saved\n",
		acc.Len(),
		impact.FormatFloat(summary.TotalWastePreventedKg, precision()),
		impact.FormatFloat(summary.TotalCO2SavedKg, precision()))
	return nil
}

// completeTransactions completes txns in place, batch by batch, and folds
// each finished batch into an accumulator.
func completeTransactions(
	ctx context.Context,
	processor *batch.Processor[impact.Transaction],
	txns []impact.Transaction,
	at time.Time,
) (*impact.Accumulator, error) {
	log := logging.FromContext(ctx)
	acc := impact.NewAccumulator()

	processor.WithProgress(func(s batch.Snapshot) {
		log.Debug().Ctx(ctx).
			Int("processed", s.ProcessedItems).
			Int("total", s.TotalItems).
			Float64("percent", s.Percent()).
			Msg("batch completed")
	})

	err := processor.Process(ctx, txns, func(_ context.Context, items []impact.Transaction, _ int) error {
		for i := range items {
			items[i] = impact.Complete(items[i], at)
		}
		acc.Add(items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("completing transactions: %w", err)
	}
	return acc, nil
}

func writeCompleted(cmd *cobra.Command, out string, txns []impact.Transaction) (err error) {
	format := outputFormat(cmd)

	var w io.Writer = cmd.OutOrStdout()
	if out != "" {
		f, createErr := os.Create(filepath.Clean(out))
		if createErr != nil {
			return fmt.Errorf("creating output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", closeErr)
			}
		}()
		w = f
	}

	if format == config.FormatNDJSON {
		return renderNDJSON(w, txns)
	}
	return ingest.WriteJSON(w, txns)
}
