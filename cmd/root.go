package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hostlink/internal/config"
	"hostlink/internal/logging"
)

var (
	cfgPath string
	logFile string
	verbose bool

	// Populated by the root PersistentPreRunE before any subcommand runs.
	cfg    *config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "hostlink",
	Short: "Stream host CPU, RAM and temperature to a serial display board",
	Long: `hostlink samples CPU load, memory usage and CPU temperature and writes them
as fixed 21-byte frames to a microcontroller over a serial port.

Settings come from a YAML file (default: <user config dir>/hostlink/hostlink.yaml);
command-line flags override the file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this file (rotated)")
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hostlink", "hostlink.yaml")
}

// setup loads the config file and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	path := cfgPath
	if path == "" {
		path = defaultConfigPath()
	}

	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if logFile != "" {
		c.LogFile = logFile
	}

	cfg = c
	logger = logging.New(logging.Options{Verbose: verbose, File: c.LogFile})
	return nil
}
