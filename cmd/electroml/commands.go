package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	cfgPath    string
	logLevel   string
	modelPath  string
	metaPath   string
	inputPath  string
	showProba  bool
	showMargin bool
	strictCats bool
	cacheSize  int

	rootCmd = &cobra.Command{
		Use:   "electroml",
		Short: "Score records against trained ElectronML models from the command line",
		Long: `electroml loads the JSON artifacts a training run produces (the training
result envelope and the preprocessing metadata) and scores raw feature
records against them, with no Python runtime involved.`,
	}

	// --- Scoring ---
	predictCmd = &cobra.Command{
		Use:   "predict",
		Short: "Score a record (or a JSON array of records) and print predictions",
		Run:   runPredict, // Defined in cmd_predict.go
	}

	// --- Inspection ---
	infoCmd = &cobra.Command{
		Use:   "info",
		Short: "Print model structure, objective and feature importances",
		Run:   runInfo, // Defined in cmd_inspect.go
	}
	featuresCmd = &cobra.Command{
		Use:   "features",
		Short: "Print the feature schema the preprocessing metadata declares",
		Run:   runFeatures, // Defined in cmd_inspect.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"Path to an electroml.yaml config file (or set ELECTROML_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "",
		"Log level: debug, info, warn or error")

	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().StringVar(&modelPath, "model", "",
		"Path to a training result envelope or a raw booster dump")
	predictCmd.Flags().StringVar(&metaPath, "meta", "",
		"Path to the preprocessing metadata JSON")
	predictCmd.Flags().StringVar(&inputPath, "input", "-",
		"Record JSON to score, '-' reads stdin")
	predictCmd.Flags().BoolVar(&showProba, "proba", false,
		"Include per-class probabilities in the output")
	predictCmd.Flags().BoolVar(&showMargin, "margin", false,
		"Include the raw margin in the output")
	predictCmd.Flags().BoolVar(&strictCats, "strict-categories", false,
		"Fail on unknown categorical values instead of falling back to the first declared category")
	predictCmd.Flags().IntVar(&cacheSize, "cache", 0,
		"Traversal cache capacity, overrides the configured value")

	rootCmd.AddCommand(infoCmd)
	infoCmd.Flags().StringVar(&modelPath, "model", "",
		"Path to a training result envelope or a raw booster dump")

	rootCmd.AddCommand(featuresCmd)
	featuresCmd.Flags().StringVar(&metaPath, "meta", "",
		"Path to the preprocessing metadata JSON")
}
