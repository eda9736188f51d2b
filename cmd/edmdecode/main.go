package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"edmdecode/internal/app"
)

func main() {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "edmdecode [flags] <file.jpi> ...",
		Short: "JPI Engine Data Management flight-data decoder",
		Long: `edmdecode decodes JPI EDM flight-data files: an ASCII metadata
header followed by a binary, delta-compressed stream of per-flight
engine samples. Each decoded flight is written as a fixed-schema CSV.

Example usage:
  edmdecode --unit celsius --out ./csv N12345.JPI
  edmdecode --flight 42 --config profile.yaml N12345.JPI`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			config.Files = args
			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().StringVarP(&config.Unit, "unit", "u", app.DefaultUnit, "Temperature unit: original, celsius, or fahrenheit")
	rootCmd.Flags().StringVarP(&config.OutDir, "out", "o", app.DefaultOutDir, "Output directory for decoded CSV files")
	rootCmd.Flags().StringVarP(&config.ConfigPath, "config", "c", "", "Path to an optional YAML operator profile")
	rootCmd.Flags().IntVarP(&config.FlightNumber, "flight", "f", 0, "Decode only this flight number (0 decodes every flight)")
	rootCmd.Flags().StringVar(&config.LogDir, "log-dir", app.DefaultLogDir, "Decode log directory")
	rootCmd.Flags().BoolVar(&config.LogRotateUTC, "utc", true, "Use UTC for log rotation timestamps")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
