package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ganot/committee/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

const (
	programName = "committee"
	version     = "0.1.0"
)

var (
	globalFlags = struct {
		debug      bool
		configFile string
	}{}

	cfg     config.Config
	logger  *slog.Logger
	closers []io.Closer
)

func slogPrintf(format string, v ...any) {
	slog.Info(fmt.Sprintf(format, v...),
		"component", programName,
	)
}

// setup loads configuration and installs the process logger. Stdio mode logs
// to stderr so stdout carries only protocol frames.
func setup(cmd *cobra.Command, _ []string) error {
	path := globalFlags.configFile
	if path == "" {
		path = os.Getenv("COMMITTEE_CONFIG_PATH")
	}
	loaded, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg = loaded

	level, _ := config.ParseLogLevel(cfg.Log.Level)
	if globalFlags.debug {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stdout
	if cfg.Transport.Mode == config.TransportStdio {
		w = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			closers = append(closers, fileWriter)
			w = fileWriter
		}
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: globalFlags.debug,
		Level:     level,
	}))
	slog.SetDefault(logger)

	if _, err := maxprocs.Set(maxprocs.Logger(slogPrintf)); err != nil {
		return fmt.Errorf("set GOMAXPROCS: %w", err)
	}
	logger.Info("version: "+version, "component", programName)
	return nil
}

func teardown(*cobra.Command, []string) {
	for _, c := range closers {
		_ = c.Close()
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:               programName,
		Short:             "Parliamentary meeting server",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              serveRun,
		PersistentPostRun: teardown,
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&globalFlags.configFile, "config", "", "path to config file")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(migrateCommand())
	rootCmd.AddCommand(seedCommand())
	rootCmd.AddCommand(versionCommand())

	if err := rootCmd.Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), programName, version)
		},
	}
}
