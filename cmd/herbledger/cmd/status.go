package cmd

import (
	"encoding/json"
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/spf13/cobra"

	"herbledger/core/config"
	"herbledger/core/engine"
)

// LedgerStatus holds health metrics for the local ledger process.
type LedgerStatus struct {
	ChainHeight    uint64  `json:"chain_height"`
	PendingItems   int     `json:"pending_items"`
	KnownActors    int     `json:"known_actors"`
	LastBlockTime  string  `json:"last_block_time"`
	IntegrityOK    bool    `json:"integrity_ok"`
	CPULoadPercent float64 `json:"cpu_load_percent"`
	MemoryMB       float64 `json:"memory_mb"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ledger and process health",
	Example: `  herbledger status
  herbledger status --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")
		err := withEngine(func(_ config.Policy, e *engine.Engine) error {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			cpuLoad := 0.0
			if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
				cpuLoad = percents[0]
			}

			st := LedgerStatus{
				ChainHeight:    e.ChainHeight(),
				PendingItems:   len(e.PendingItems()),
				KnownActors:    len(e.Reputations()),
				IntegrityOK:    e.VerifyChain() == nil,
				CPULoadPercent: cpuLoad,
				MemoryMB:       float64(m.Alloc) / (1024 * 1024),
			}
			if blocks := e.ListChain(); len(blocks) > 0 {
				st.LastBlockTime = blocks[0].Timestamp.Format(time.RFC3339)
			}

			if output == "json" {
				data, err := json.MarshalIndent(st, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			fmt.Printf("Height: %d\nPending items: %d\nKnown actors: %d\nIntegrity: %v\nLast block: %s\nCPU: %.1f%%  Mem: %.1f MB\n",
				st.ChainHeight, st.PendingItems, st.KnownActors, st.IntegrityOK, st.LastBlockTime, st.CPULoadPercent, st.MemoryMB)
			return nil
		})
		if err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringP("output", "o", "plain", "Output format: plain|json")
}
