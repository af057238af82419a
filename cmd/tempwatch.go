package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hostlink/internal/sampler"
)

var tempwatchCmd = &cobra.Command{
	Use:   "tempwatch",
	Short: "Print what the temperature fallback chain reports, with SAFE/WARM/HOT thresholds",
	RunE:  runTempWatch,
}

var (
	tempCritical float64
	tempInterval time.Duration
)

func init() {
	tempwatchCmd.Flags().Float64Var(&tempCritical, "critical", 100.0, "Critical temperature in °C (pressure = temp / critical)")
	tempwatchCmd.Flags().DurationVar(&tempInterval, "interval", 1*time.Second, "Sampling interval")
	rootCmd.AddCommand(tempwatchCmd)
}

// -----------------------------------------------------------------------------
// runTempWatch
//
// Runs the same chain the sender uses (gopsutil sensors → platform hardware
// monitor → 0) and classifies each reading:
//
//	pressure >= 0.8 → HOT
//	pressure >= 0.6 → WARM
//	otherwise       → SAFE
//
// Useful for checking which tier answers on a given machine before wiring
// up the display.
// -----------------------------------------------------------------------------
func runTempWatch(cmd *cobra.Command, args []string) error {
	if tempInterval <= 0 {
		return fmt.Errorf("--interval must be positive, got %s", tempInterval)
	}

	chain := sampler.DefaultChain(logger)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Collecting temperature... CTRL+C to stop")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	tick := time.NewTicker(tempInterval)
	defer tick.Stop()

	for {
		select {
		case <-tick.C:
			v, src := chain.ReadSource(cmd.Context())
			r := classifyTemp(v, tempCritical, src)
			if r.Status == "UNAVAILABLE" {
				fmt.Fprintln(out, "no temperature sensor answered (frames carry 0.0)")
				continue
			}
			fmt.Fprintf(out, "[%s] %.1f°C (pressure=%.2f) → %s\n", r.Source, r.TempC, r.Pressure, r.Status)

		case <-stop:
			fmt.Fprintln(out, "Stopping tempwatch...")
			return nil
		}
	}
}
