package main

import (
	"github.com/spf13/cobra"

	"github.com/tangledbytes/go-vec/internal/harness"
)

var scenarioFile string

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run workload scenarios and report lifecycle traffic",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := harness.DefaultConfig()
		if scenarioFile != "" {
			loaded, err := harness.LoadConfig(scenarioFile)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		return harness.New(newLogger()).Run(cfg)
	},
}

func init() {
	benchCmd.Flags().StringVar(&scenarioFile, "scenarios", "", "YAML scenario file (built-in scenarios when empty)")
}
