package main

import (
	"github.com/spf13/cobra"

	"github.com/tangledbytes/go-vec/internal/harness"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through the container's basic contract",
	RunE: func(cmd *cobra.Command, args []string) error {
		return harness.New(newLogger()).Demo()
	},
}
