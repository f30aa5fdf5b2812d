package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	mllog "github.com/antoinebcx/ElectronML/pkg/log"
)

var config Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

func init() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cfgPath)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		config = cfg
		if logLevel != "" {
			config.Log = logLevel
		}
		mllog.SetupLogger(config.Log)
		// Predictions go to stdout; unknown-category warnings go to
		// stderr so piped output stays parseable.
		mllog.UseZerologWarnings(os.Stderr)
	}
}
