package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"herbledger/core/config"
	"herbledger/core/engine"
	"herbledger/core/record"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a collected herb batch (collector)",
	Example: `  herbledger register --collector collector-1 --item H1 --name Ashwagandha \
      --location "Field 7, Karnataka" --quantity 10 --unit Kg --score 82`,
	Run: func(cmd *cobra.Command, args []string) {
		collector, _ := cmd.Flags().GetString("collector")
		item, _ := cmd.Flags().GetString("item")
		name, _ := cmd.Flags().GetString("name")
		location, _ := cmd.Flags().GetString("location")
		quantity, _ := cmd.Flags().GetFloat64("quantity")
		unit, _ := cmd.Flags().GetString("unit")
		score, _ := cmd.Flags().GetInt("score")
		qstatus, _ := cmd.Flags().GetString("quality-status")

		err := withEngine(func(pol config.Policy, e *engine.Engine) error {
			// Registration gating is caller policy: the engine records
			// whatever the collaborator decides to submit.
			if score < pol.MinRegisterScore {
				return fmt.Errorf("quality score %d below registration minimum %d; batch not submitted", score, pol.MinRegisterScore)
			}
			ctx, err := opCtx()
			if err != nil {
				return err
			}
			printResult(e.Register(ctx, collector, item, name, location, quantity, unit, record.Quality{Score: score, Status: qstatus}))
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().String("collector", "", "Collector actor id")
	registerCmd.Flags().String("item", "", "Globally unique item id")
	registerCmd.Flags().String("name", "", "Herb name")
	registerCmd.Flags().String("location", "", "Origin location (free text)")
	registerCmd.Flags().Float64("quantity", 0, "Claimed quantity")
	registerCmd.Flags().String("unit", "Kg", "Unit type")
	registerCmd.Flags().Int("score", 0, "Externally computed quality score (0-100)")
	registerCmd.Flags().String("quality-status", "", "Quality status label from the external check")
	for _, f := range []string{"collector", "item", "name", "quantity"} {
		_ = registerCmd.MarkFlagRequired(f)
	}
}
