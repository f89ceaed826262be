package cmd

import (
	"github.com/spf13/cobra"

	"herbledger/core/config"
	"herbledger/core/engine"
	"herbledger/core/record"
)

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer a verified batch between actors",
	Example: `  herbledger transfer --from supplier-1 --to manufacturer-1 --item H1 \
      --weight 4 --unit Kg --location "Plant 2, Pune" --score 88`,
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		item, _ := cmd.Flags().GetString("item")
		weight, _ := cmd.Flags().GetFloat64("weight")
		unit, _ := cmd.Flags().GetString("unit")
		location, _ := cmd.Flags().GetString("location")
		score, _ := cmd.Flags().GetInt("score")
		qstatus, _ := cmd.Flags().GetString("quality-status")

		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			ctx, err := opCtx()
			if err != nil {
				return err
			}
			printResult(e.Transfer(ctx, from, to, item, weight, location, unit, record.Quality{Score: score, Status: qstatus}))
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().String("from", "", "Sending actor id")
	transferCmd.Flags().String("to", "", "Receiving actor id")
	transferCmd.Flags().String("item", "", "Item id")
	transferCmd.Flags().Float64("weight", 0, "Weight to transfer")
	transferCmd.Flags().String("unit", "Kg", "Unit type")
	transferCmd.Flags().String("location", "", "Transfer location (free text)")
	transferCmd.Flags().Int("score", 0, "Quality score at transfer time")
	transferCmd.Flags().String("quality-status", "", "Quality status label")
	for _, f := range []string{"from", "to", "item", "weight"} {
		_ = transferCmd.MarkFlagRequired(f)
	}
}
