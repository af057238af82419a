package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"hostlink/internal/link"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List serial ports the OS reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := link.ListPorts()
		if err != nil {
			return fmt.Errorf("listing serial ports: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(ports) == 0 {
			fmt.Fprintln(out, "No serial ports found")
			return nil
		}
		for _, p := range ports {
			marker := " "
			if p == cfg.Port {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s\n", marker, p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
