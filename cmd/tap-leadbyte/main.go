package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/casesondemand/tap-leadbyte/internal/sync"
	"github.com/casesondemand/tap-leadbyte/pkg/clients"
	"github.com/casesondemand/tap-leadbyte/pkg/config"
	"github.com/casesondemand/tap-leadbyte/pkg/logger"
	"github.com/casesondemand/tap-leadbyte/pkg/singer"
	"github.com/casesondemand/tap-leadbyte/pkg/tap"
	"github.com/casesondemand/tap-leadbyte/pkg/tap/streams"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "tap-leadbyte",
		Short: "tap-leadbyte - LeadByte data extraction tap",
		Long: `tap-leadbyte extracts reports and master data from the LeadByte REST API
and writes them as newline-delimited JSON messages, one SCHEMA message per
stream followed by its RECORD messages.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tap-leadbyte v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// List command to show available streams
	root.AddCommand(&cobra.Command{
		Use:   "streams",
		Short: "List available streams",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available streams:")
			for _, stream := range streams.All() {
				fmt.Printf("  - %s\n", stream.Name)
			}
		},
	})

	// Main run command
	var configFile string
	var selected []string
	var logLevel string

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a sync",
		Long: `Run a full-table sync of the configured streams.

Example:
  tap-leadbyte run --config config.yaml --streams email_reports,campaigns`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(configFile, selected, logLevel)
		},
	}

	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to configuration YAML file (required)")
	_ = runCmd.MarkFlagRequired("config")
	runCmd.Flags().StringSliceVar(&selected, "streams", nil, "Streams to sync (default: all)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides configuration")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSync(configFile string, selected []string, logLevel string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Observability.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Development: cfg.Observability.Development,
	}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()

	selectedStreams, err := resolveStreams(selected)
	if err != nil {
		return err
	}

	out := os.Stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("failed to open output file %s: %w", cfg.Output.Path, err)
		}
		defer f.Close()
		out = f
	}

	client := clients.New(clients.Options{
		BaseURL:       cfg.BaseURL(),
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.Reliability.RequestTimeout,
		RetryAttempts: cfg.Reliability.RetryAttempts,
		RetryDelay:    cfg.Reliability.RetryDelay,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting tap-leadbyte",
		zap.String("version", version),
		zap.String("domain", cfg.Domain),
		zap.String("api_version", cfg.APIVersion))

	syncer := sync.New(cfg, client, singer.NewWriter(out))
	return syncer.Run(ctx, selectedStreams)
}

// resolveStreams maps stream names to their definitions, keeping the
// canonical sync order. No names selects every stream.
func resolveStreams(names []string) ([]*tap.Stream, error) {
	if len(names) == 0 {
		return streams.All(), nil
	}

	want := make(map[string]bool, len(names))
	for _, name := range names {
		if streams.Lookup(name) == nil {
			return nil, fmt.Errorf("unknown stream %q", name)
		}
		want[name] = true
	}

	var out []*tap.Stream
	for _, stream := range streams.All() {
		if want[stream.Name] {
			out = append(out, stream)
		}
	}
	return out, nil
}
