package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hostlink/internal/config"
	"hostlink/internal/link"
	"hostlink/internal/sampler"
	"hostlink/internal/sender"
	"hostlink/internal/status"
)

// sendCmd streams telemetry frames to the display board.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sample host metrics and stream them to the serial port",
	RunE:  runSend,
}

var (
	sendPort       string
	sendBaud       int
	sendInterval   time.Duration
	sendStatusAddr string
)

func init() {
	sendCmd.Flags().StringVarP(&sendPort, "port", "p", config.DefaultPort(), "Serial port of the display board")
	sendCmd.Flags().IntVarP(&sendBaud, "baud", "b", config.DefaultBaud, "Baud rate")
	sendCmd.Flags().DurationVarP(&sendInterval, "interval", "i", config.DefaultInterval, "Pause between frames")
	sendCmd.Flags().StringVar(&sendStatusAddr, "status-addr", "", "Serve gRPC link health on this address (e.g. 127.0.0.1:7071)")
	rootCmd.AddCommand(sendCmd)
}

// applySendFlags overlays explicitly set flags onto the loaded config.
func applySendFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("port") {
		c.Port = sendPort
	}
	if flags.Changed("baud") {
		c.Baud = sendBaud
	}
	if flags.Changed("interval") {
		c.Interval = sendInterval
	}
	if flags.Changed("status-addr") {
		c.StatusAddr = sendStatusAddr
	}
	return c.Validate()
}

// -----------------------------------------------------------------------------
// runSend
//
// Opens the port (fatal on failure), then runs the sender loop until
// SIGINT/SIGTERM:
//
//	sample → encode → write → log → sleep
//
// A failed write triggers one close+open of the same port; the frame is not
// retried. Sampling errors end the run with a non-zero exit.
// -----------------------------------------------------------------------------
func runSend(cmd *cobra.Command, args []string) error {
	c := *cfg
	if err := applySendFlags(cmd, &c); err != nil {
		return err
	}

	log := logger.With(zap.String("run", uuid.NewString()))
	log.Info("starting serial sender",
		zap.String("port", c.Port),
		zap.Int("baud", c.Baud),
		zap.Duration("interval", c.Interval),
	)

	lk := link.New(c.Port, c.Baud, link.WithSettle(c.Settle))
	if err := lk.Open(); err != nil {
		log.Error("cannot open serial port", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := sampler.NewHost(nil, log)
	host.Warmup(ctx)

	opts := []sender.Option{
		sender.WithInterval(c.Interval),
		sender.WithLogger(log),
	}

	if c.StatusAddr != "" {
		srv, err := status.Listen(c.StatusAddr, log)
		if err != nil {
			lk.Close()
			return err
		}
		go func() {
			if err := srv.Serve(); err != nil {
				log.Warn("status endpoint stopped", zap.Error(err))
			}
		}()
		defer srv.Stop()

		srv.SetLinkUp(true)
		opts = append(opts, sender.WithStatus(srv))
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Sending to %s @ %d baud... CTRL+C to stop\n", c.Port, c.Baud)

	if err := sender.New(host, lk, opts...).Run(ctx); err != nil {
		log.Error("sender stopped", zap.Error(err))
		return fmt.Errorf("sender stopped: %w", err)
	}

	log.Info("stopped by user")
	return nil
}
