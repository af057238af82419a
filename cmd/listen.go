package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hostlink/internal/frame"
	"hostlink/internal/link"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Decode frames arriving on a serial port (the board's side of the link)",
	Long: `listen reads a serial port the way the display firmware does: skip bytes until
the 0xAA marker, take the next 20 bytes as one frame, and count sequence gaps.

Examples:
  hostlink listen --port /dev/ttyUSB1      # loopback cable from another sender
  hostlink listen --port COM7 --baud 115200`,
	RunE: runListen,
}

var (
	listenPort string
	listenBaud int
)

func init() {
	listenCmd.Flags().StringVarP(&listenPort, "port", "p", "", "Serial port to read (default: config port)")
	listenCmd.Flags().IntVarP(&listenBaud, "baud", "b", 0, "Baud rate (default: config baud)")
	rootCmd.AddCommand(listenCmd)
}

func runListen(cmd *cobra.Command, args []string) error {
	port, baud := cfg.Port, cfg.Baud
	if listenPort != "" {
		port = listenPort
	}
	if listenBaud > 0 {
		baud = listenBaud
	}

	rc, err := link.OpenReader(port, baud)
	if err != nil {
		return err
	}
	defer rc.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Closing the port is the only way to unblock a pending read.
	go func() {
		<-ctx.Done()
		rc.Close()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s @ %d baud... CTRL+C to stop\n", port, baud)

	lt, err := printFrames(ctx, rc, cmd.OutOrStdout())
	logger.Info("listener stopped",
		zap.Uint64("received", lt.Received),
		zap.Uint64("lost", lt.Lost),
		zap.Float64("loss_pct", lt.LossPercent()),
	)
	return err
}

// printFrames decodes frames from r until EOF, a read error, or ctx ends,
// writing one line per frame to w.
func printFrames(ctx context.Context, r io.Reader, w io.Writer) (frame.LossTracker, error) {
	var lt frame.LossTracker
	fr := frame.NewReader(r)

	for {
		f, err := fr.Next()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return lt, nil
			}
			return lt, fmt.Errorf("reading frames: %w", err)
		}

		gap := lt.Observe(f.Seq)
		fmt.Fprintf(w, "%s | missed=%d total_lost=%d loss=%.1f%%\n", f, gap, lt.Lost, lt.LossPercent())
	}
}
