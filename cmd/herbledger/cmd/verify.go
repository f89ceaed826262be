package cmd

import (
	"github.com/spf13/cobra"

	"herbledger/core/config"
	"herbledger/core/engine"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify receipt of a pending batch against the claimed quantity (supplier)",
	Example: `  herbledger verify --verifier supplier-1 --item H1 --measured 9.9`,
	Run: func(cmd *cobra.Command, args []string) {
		verifier, _ := cmd.Flags().GetString("verifier")
		item, _ := cmd.Flags().GetString("item")
		measured, _ := cmd.Flags().GetFloat64("measured")

		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			ctx, err := opCtx()
			if err != nil {
				return err
			}
			printResult(e.VerifyReceipt(ctx, verifier, item, measured))
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().String("verifier", "", "Verifying actor id")
	verifyCmd.Flags().String("item", "", "Item id awaiting verification")
	verifyCmd.Flags().Float64("measured", 0, "Measured quantity on receipt")
	for _, f := range []string{"verifier", "item", "measured"} {
		_ = verifyCmd.MarkFlagRequired(f)
	}
}
