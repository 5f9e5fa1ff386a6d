package main

import (
	"github.com/spf13/cobra"

	"github.com/Vaidurya-s/os-memory-management-simulator/config"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "memsimctl",
	Short: "Drive the memory subsystem simulator's engines",
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&envFile, "env-file", "", "path to a .env file overriding scenario defaults")

	rootCmd.AddCommand(runScenarioCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadScenario() config.Scenario {
	return config.Load(envFile)
}
