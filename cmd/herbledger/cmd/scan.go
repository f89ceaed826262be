package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"herbledger/core/config"
	"herbledger/core/engine"
	"herbledger/core/product"
)

var scanCmd = &cobra.Command{
	Use:   "scan [unitID]",
	Short: "Record a consumer scan of a finished-product unit",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		unitID := args[0]
		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			ctx, err := opCtx()
			if err != nil {
				return err
			}
			res := e.RecordScan(ctx, unitID)
			if !res.FirstSeen {
				fmt.Printf("WARNING: unit %s was already scanned at %s — possible counterfeit\n",
					unitID, res.FirstScanAt.Format(time.RFC3339))
				return nil
			}
			fmt.Printf("unit %s: first scan recorded at %s\n", unitID, res.FirstScanAt.Format(time.RFC3339))
			if trace, ok := product.Resolve(unitID, e.UseRecords()); ok {
				fmt.Printf("produced in batch %s from %d raw batches:\n", trace.BatchID, len(trace.UsedBatches))
				for _, ub := range trace.UsedBatches {
					fmt.Printf("  %s (%v %s)\n", ub.ItemID, ub.UnitsUsed, ub.Unit)
				}
			}
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
