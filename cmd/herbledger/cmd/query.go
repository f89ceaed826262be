package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"herbledger/core/config"
	"herbledger/core/engine"
	"herbledger/core/product"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "List ledger entries, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		verify, _ := cmd.Flags().GetBool("verify")
		asJSON, _ := cmd.Flags().GetBool("json")
		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			if verify {
				if err := e.VerifyChain(); err != nil {
					return fmt.Errorf("chain integrity check failed: %w", err)
				}
				fmt.Println("chain integrity: OK")
			}
			blocks := e.ListChain()
			if asJSON {
				data, err := json.MarshalIndent(blocks, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			for _, blk := range blocks {
				fmt.Printf("#%d  %-14s %s  %s\n", blk.Height, blk.Record.Type,
					blk.Timestamp.Format(time.RFC3339), blk.Hash)
			}
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory [actorID]",
	Short: "List an actor's inventory",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			entries := e.ActorInventory(args[0])
			if len(entries) == 0 {
				fmt.Printf("%s holds no inventory\n", args[0])
				return nil
			}
			for _, en := range entries {
				fmt.Printf("%-12s %-20s %10.2f %s\n", en.ItemID, en.Name, en.Quantity, en.Unit)
			}
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List items awaiting verification",
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			for _, it := range e.PendingItems() {
				fmt.Printf("%-12s %-20s claimed %v %s by %s from %s\n",
					it.ItemID, it.Name, it.Claimed, it.Unit, it.Registrant, it.Origin)
			}
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

var historyCmd = &cobra.Command{
	Use:   "history [itemID]",
	Short: "Show the full event history of an item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			item, ok := e.ItemMaster(args[0])
			if !ok {
				return fmt.Errorf("item %s is not registered", args[0])
			}
			fmt.Printf("%s (%s) — status: %s\n", item.ItemID, item.Name, item.Status)
			history, _ := e.ItemHistory(args[0])
			for _, blk := range history {
				fmt.Printf("  #%d %-14s %s\n", blk.Height, blk.Record.Type, blk.Timestamp.Format(time.RFC3339))
			}
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

var reputationCmd = &cobra.Command{
	Use:   "reputation",
	Short: "Show every actor's trust score",
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			scores := e.Reputations()
			actors := make([]string, 0, len(scores))
			for a := range scores {
				actors = append(actors, a)
			}
			sort.Strings(actors)
			for _, a := range actors {
				fmt.Printf("%-20s %d\n", a, scores[a])
			}
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

var traceCmd = &cobra.Command{
	Use:   "trace [unitID]",
	Short: "Trace a finished-product unit back to its raw batches",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			trace, ok := product.Resolve(args[0], e.UseRecords())
			if !ok {
				return fmt.Errorf("unit %s does not belong to any known batch", args[0])
			}
			rec := trace.UseRecord.Record
			fmt.Printf("unit %s\n  batch %s produced %v %s at %q by %s\n",
				trace.UnitID, trace.BatchID, rec.FinalWeight, rec.FinalUnit, rec.Location, rec.Actor)
			for _, ub := range trace.UsedBatches {
				item, ok := e.ItemMaster(ub.ItemID)
				origin := "unknown origin"
				if ok {
					origin = item.Origin
				}
				fmt.Printf("  input %s: %v %s (%s)\n", ub.ItemID, ub.UnitsUsed, ub.Unit, origin)
			}
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	chainCmd.Flags().Bool("verify", false, "Recompute every fingerprint and link before listing")
	chainCmd.Flags().Bool("json", false, "Emit blocks as JSON")
	rootCmd.AddCommand(chainCmd, inventoryCmd, pendingCmd, historyCmd, reputationCmd, traceCmd)
}
