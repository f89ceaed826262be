package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"herbledger/core/config"
	"herbledger/core/engine"
	"herbledger/core/product"
	"herbledger/core/record"
)

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Consume verified batches into a finished product (manufacturer)",
	Example: `  herbledger consume --manufacturer manufacturer-1 --batch B1 \
      --batches "H1:4:Kg,H2:2:Kg" --final-weight 5 --final-unit Kg --score 72`,
	Run: func(cmd *cobra.Command, args []string) {
		manufacturer, _ := cmd.Flags().GetString("manufacturer")
		batch, _ := cmd.Flags().GetString("batch")
		location, _ := cmd.Flags().GetString("location")
		batchesSpec, _ := cmd.Flags().GetString("batches")
		finalWeight, _ := cmd.Flags().GetFloat64("final-weight")
		finalUnit, _ := cmd.Flags().GetString("final-unit")
		score, _ := cmd.Flags().GetInt("score")
		qstatus, _ := cmd.Flags().GetString("quality-status")

		used, err := parseUsedBatches(batchesSpec)
		if err != nil {
			fail(err)
		}
		err = withEngine(func(_ config.Policy, e *engine.Engine) error {
			ctx, err := opCtx()
			if err != nil {
				return err
			}
			res := e.ConsumeIntoProduct(ctx, manufacturer, batch, location, used, finalWeight, finalUnit, record.Quality{Score: score, Status: qstatus})
			printResult(res)
			// Unit minting is a collaborator concern; the CLI is the collaborator.
			units := product.MintUnits(batch, finalWeight)
			fmt.Printf("minted %d traceable unit ids:\n", len(units))
			for _, u := range units {
				fmt.Printf("  %s\n", u)
			}
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

// parseUsedBatches reads "itemID:units:unit" entries separated by commas.
func parseUsedBatches(spec string) ([]record.UsedBatch, error) {
	var out []record.UsedBatch
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ":")
		if len(fields) != 3 {
			return nil, fmt.Errorf("bad batch entry %q, want itemID:units:unit", part)
		}
		units, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad unit count in %q: %w", part, err)
		}
		out = append(out, record.UsedBatch{ItemID: fields[0], UnitsUsed: units, Unit: fields[2]})
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(consumeCmd)
	consumeCmd.Flags().String("manufacturer", "", "Manufacturer actor id")
	consumeCmd.Flags().String("batch", "", "Finished-product batch id")
	consumeCmd.Flags().String("location", "", "Production location (free text)")
	consumeCmd.Flags().String("batches", "", "Used batches as itemID:units:unit, comma separated")
	consumeCmd.Flags().Float64("final-weight", 0, "Final product weight")
	consumeCmd.Flags().String("final-unit", "Kg", "Final product unit")
	consumeCmd.Flags().Int("score", 0, "Final product quality score")
	consumeCmd.Flags().String("quality-status", "", "Quality status label")
	for _, f := range []string{"manufacturer", "batch", "batches", "final-weight"} {
		_ = consumeCmd.MarkFlagRequired(f)
	}
}
