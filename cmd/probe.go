package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"hostlink/internal/status"
)

const (
	// DefaultStatusAddr is where probe looks when neither flag nor config
	// names an address.
	DefaultStatusAddr = "127.0.0.1:7071"

	// ProbeTimeout bounds the whole health check round trip.
	ProbeTimeout = 2 * time.Second
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Ask a running sender whether its serial link is up (exit 1 if not)",
	Args:  cobra.NoArgs,
	RunE:  runProbe,
}

var (
	probeAddr    string
	probeTimeout time.Duration
)

func init() {
	probeCmd.Flags().StringVar(&probeAddr, "addr", "", "Status endpoint (default: config status_addr or "+DefaultStatusAddr+")")
	probeCmd.Flags().DurationVar(&probeTimeout, "timeout", ProbeTimeout, "Health check timeout")
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	addr := probeAddr
	if addr == "" {
		addr = cfg.StatusAddr
	}
	if addr == "" {
		addr = DefaultStatusAddr
	}

	st, err := status.Probe(cmd.Context(), addr, probeTimeout)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", addr, st)
	if st != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("serial link is %s", st)
	}
	return nil
}
