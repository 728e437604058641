package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/interview-assessor/internal/config"
	"alfredoptarigan/interview-assessor/internal/logger"
)

const app = "screenctl"

var (
	debugLogs bool
	jsonLogs  bool

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "screenctl runs the resume and interview assessment pipeline from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugLogs, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", app, err)
		os.Exit(1)
	}
}

// setup loads env configuration and a logger writing to stderr so stdout stays
// machine-readable.
func setup() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()

	opts := cfg.Log.LoggerOptions(app, "stderr")
	opts.JSON = opts.JSON || jsonLogs
	opts.Debug = opts.Debug || debugLogs

	log, err := logger.New(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	return cfg, log, nil
}
