package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"firewall-auditor/internal/config"
	"firewall-auditor/internal/engine"
	"firewall-auditor/internal/model"
	"firewall-auditor/internal/parser"
	"firewall-auditor/internal/report"
)

var (
	ruleProvider string
	rulesDB      string
	cfgPath      string
	outDir       string
	format       string
	workers      int
	verbose      bool
	logLevel     string
	logFile      string

	anomaliesFound bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "firewall-auditor [rules-file]",
		Short: "A static firewall rule auditor",
		Long: `firewall-auditor reads an ordered firewall rule set from CSV, JSON or a
	MariaDB table and reports configuration anomalies: shadowed, redundant,
	overly permissive and unused rules. No live firewall is consulted.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().StringVar(&ruleProvider, "provider", "file", "Rule provider type: 'file' or 'mariadb'")
	rootCmd.Flags().StringVar(&rulesDB, "db", "", "Database connection string (for 'mariadb' provider)")
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Audit configuration file (YAML)")
	rootCmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "Output directory for reports (default from config: reports)")
	rootCmd.Flags().StringVar(&format, "format", "", "Report format: 'html', 'csv', 'both' or 'none' (default from config: both)")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of concurrent workers for the pairwise scan")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print anomaly details to the terminal")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	if anomaliesFound {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := setupLogger(logLevel, logFile)
	slog.SetDefault(logger)

	slog.Info("Starting firewall audit", "version", "1.0-go")
	startTime := time.Now()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", cfgPath, "error", err)
		return err
	}
	if outDir != "" {
		cfg.Report.OutputDir = outDir
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if format != "" {
		formats, err := reportFormats(format)
		if err != nil {
			return err
		}
		cfg.Report.Formats = formats
	}

	slog.Info("Loading rules", "provider", ruleProvider)
	rules, err := loadRules(ruleProvider, args, rulesDB)
	if err != nil {
		slog.Error("Failed to load rules", "error", err)
		return err
	}
	slog.Info("Rules loaded", "count", len(rules))

	analyzer, err := engine.New(rules, engine.Config{
		SensitivePorts: cfg.SensitivePorts,
		Workers:        cfg.Workers,
	})
	if err != nil {
		slog.Error("Rule set rejected", "error", err)
		return err
	}

	slog.Info("Running anomaly detection", "workers", cfg.Workers)
	anomalies, err := analyzer.Run()
	if err != nil {
		slog.Error("Analysis failed", "error", err)
		return err
	}
	slog.Info("Analysis complete",
		"anomalies", len(anomalies),
		"shadowed", countKind(anomalies, model.KindShadowed),
		"redundant", countKind(anomalies, model.KindRedundant),
		"permissive", countKind(anomalies, model.KindPermissive),
		"unused", countKind(anomalies, model.KindUnused),
		"duration", time.Since(startTime))

	audit := report.NewAudit(analyzer.Rules(), anomalies)
	if err := writeReports(audit, cfg.Report); err != nil {
		slog.Error("Failed to write reports", "error", err)
		return err
	}

	fmt.Println(report.Summary(audit))
	if verbose && len(anomalies) > 0 {
		fmt.Println()
		fmt.Println(report.Details(audit, 5))
	}

	anomaliesFound = len(anomalies) > 0
	return nil
}

func loadRules(provider string, args []string, dbConnStr string) ([]model.Rule, error) {
	switch provider {
	case "file":
		if len(args) != 1 {
			return nil, fmt.Errorf("a rules file path must be provided for the file provider")
		}
		return parser.ParseFile(args[0])
	case "mariadb":
		if dbConnStr == "" {
			return nil, fmt.Errorf("database connection string must be provided for mariadb provider")
		}
		p, err := parser.NewMariaDBProvider(dbConnStr)
		if err != nil {
			return nil, err
		}
		defer p.Close()
		return p.Load()
	default:
		return nil, fmt.Errorf("unknown rule provider: %s", provider)
	}
}

func reportFormats(flag string) ([]string, error) {
	switch strings.ToLower(flag) {
	case "html":
		return []string{"html"}, nil
	case "csv":
		return []string{"csv"}, nil
	case "both":
		return []string{"html", "csv"}, nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown report format: %s", flag)
	}
}

func writeReports(audit report.Audit, cfg config.Report) error {
	if len(cfg.Formats) == 0 {
		return nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}
	for _, format := range cfg.Formats {
		var path string
		var render func(io.Writer) error
		switch format {
		case "html":
			path = report.HTMLPath(cfg.OutputDir, audit.GeneratedAt)
			render = func(w io.Writer) error { return report.WriteHTML(w, audit) }
		case "csv":
			path = report.CSVPath(cfg.OutputDir, audit.GeneratedAt)
			render = func(w io.Writer) error { return report.WriteAnomaliesCSV(w, audit.Anomalies) }
		default:
			return fmt.Errorf("unknown report format: %s", format)
		}

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := render(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		slog.Info("Report written", "format", format, "path", path)
	}
	return nil
}

func countKind(anomalies []model.Anomaly, kind model.AnomalyKind) int {
	n := 0
	for _, an := range anomalies {
		if an.Kind == kind {
			n++
		}
	}
	return n
}

func setupLogger(level, logFilePath string) *slog.Logger {
	var logWriter io.Writer = os.Stderr
	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logWriter = f
		}
		// We don't log an error here because the logger isn't set up yet.
		// It will just fall back to stderr.
	}

	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "INFO":
		lvl = slog.LevelInfo
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: lvl}))
}
