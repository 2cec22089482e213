package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/timesheet-tracker/internal/calendar"
	"github.com/username/timesheet-tracker/internal/config"
	"github.com/username/timesheet-tracker/internal/daemon"
	"github.com/username/timesheet-tracker/internal/report"
	"github.com/username/timesheet-tracker/internal/server"
	"github.com/username/timesheet-tracker/internal/storage"
	"github.com/username/timesheet-tracker/internal/timesheet"
	"github.com/username/timesheet-tracker/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "timesheet",
		Short:         "Timesheet tracker",
		Long:          "Record work and absence days, lock months and export a printable monthly calendar",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger()
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: config.yaml in ., $HOME/.timesheet, /etc/timesheet)")

	rootCmd.AddCommand(
		serveCmd(),
		setCmd(),
		summaryCmd(),
		showCmd(),
		exportCmd(),
		lockCmd(),
		unlockCmd(),
		holidaysCmd(),
	)

	return rootCmd
}

func serveCmd() *cobra.Command {
	var listen string
	var tray bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server with the calendar UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("listen") {
				cfg.Server.Listen = listen
			}
			if cmd.Flags().Changed("tray") {
				cfg.Server.SystemTray = tray
			}

			app, err := initializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			logger.Info("Starting timesheet server",
				zap.String("listen", cfg.Server.Listen),
				zap.String("database", cfg.Database.Driver),
				zap.String("country", cfg.Holidays.Country),
				zap.String("renderer", cfg.Export.Renderer))

			srv := server.New(app.manager, logger)
			d := daemon.NewDaemon(srv, app.manager, cfg.Server.Listen, cfg.Server.SystemTray, logger)
			return d.Start()
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "Listen address (overrides server.listen)")
	cmd.Flags().BoolVar(&tray, "tray", false, "Show system tray icon (Windows only)")

	return cmd
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set DATE [work|absence|none]",
		Short: "Record the status of a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := args[1]
			if status == "none" {
				status = ""
			}

			app, err := initializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.manager.SetStatus(cmd.Context(), args[0], status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s set to %s\n", args[0], args[1])
			return nil
		},
	}
}

func summaryCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the work day summary of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := monthFlag(month)
			if err != nil {
				return err
			}

			app, err := initializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			status, err := app.manager.Status(cmd.Context(), year, m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			lock := "open"
			if status.Locked {
				lock = "locked"
			}
			fmt.Fprintf(out, "📊 %s (%s)\n", dateutil.MonthKey(year, m), lock)
			fmt.Fprintln(out, "═══════════════════════════════════════")
			fmt.Fprintf(out, "  Work days:     %d\n", status.Workdays)
			fmt.Fprintf(out, "  Absences:      %d\n", status.Absences)
			fmt.Fprintf(out, "  Unrecorded:    %d  - weekdays without status\n", status.Remaining)
			fmt.Fprintf(out, "  Holidays:      %d\n", len(status.Holidays))
			for _, h := range status.Holidays {
				fmt.Fprintf(out, "    %s  %s\n", dateutil.FormatDate(h.Date), h.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM (default: current month)")
	return cmd
}

func showCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the month calendar in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := monthFlag(month)
			if err != nil {
				return err
			}

			app, err := initializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			grid, err := app.manager.Grid(cmd.Context(), year, m)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Terminal(grid, cfg.Export.Title))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM (default: current month)")
	return cmd
}

func exportCmd() *cobra.Command {
	var month, format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the month calendar as PDF or HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := monthFlag(month)
			if err != nil {
				return err
			}

			app, err := initializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			export, err := app.manager.Export(cmd.Context(), year, m, timesheet.Format(strings.ToLower(format)))
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = export.Filename
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, export.Filename)
			}

			if err := os.WriteFile(path, export.Body, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Exported %s to %s (%d bytes)\n", dateutil.MonthKey(year, m), path, len(export.Body))
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM (default: current month)")
	cmd.Flags().StringVarP(&format, "format", "f", string(timesheet.FormatPDF), "Export format: pdf or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory (default: timesheet_<title>_<year>_<month>.pdf)")
	return cmd
}

func lockCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "lock [YYYY-MM]",
		Short: "Lock a month against edits in the UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !list && len(args) == 0 {
				return fmt.Errorf("month argument is required unless --list is given")
			}

			app, err := initializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			if list {
				months, err := app.manager.LockedMonths(cmd.Context())
				if err != nil {
					return err
				}
				if len(months) == 0 {
					fmt.Fprintln(out, "No locked months")
				}
				for _, month := range months {
					fmt.Fprintf(out, "🔒 %s\n", month)
				}
				return nil
			}

			year, m, err := dateutil.ParseMonth(args[0])
			if err != nil {
				return err
			}
			if err := app.manager.Lock(cmd.Context(), year, m); err != nil {
				return err
			}
			fmt.Fprintf(out, "🔒 %s locked\n", dateutil.MonthKey(year, m))
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List locked months")
	return cmd
}

func unlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock YYYY-MM",
		Short: "Unlock a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, m, err := dateutil.ParseMonth(args[0])
			if err != nil {
				return err
			}

			app, err := initializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.manager.Unlock(cmd.Context(), year, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🔓 %s unlocked\n", dateutil.MonthKey(year, m))
			return nil
		},
	}
}

func holidaysCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "holidays",
		Short: "List public holidays in [start, end)",
		RunE: func(cmd *cobra.Command, args []string) error {
			today := dateutil.Today()
			if start == "" {
				start = dateutil.FormatDate(dateutil.Date(today.Year(), time.January, 1))
			}
			if end == "" {
				end = dateutil.FormatDate(dateutil.Date(today.Year()+1, time.January, 1))
			}

			app, err := initializeApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			holidays := app.manager.Holidays(cmd.Context(), start, end)
			out := cmd.OutOrStdout()
			if len(holidays) == 0 {
				fmt.Fprintln(out, "No holidays found")
			}
			for _, h := range holidays {
				fmt.Fprintf(out, "%s  %s  %s\n", dateutil.FormatDate(h.Date), h.Date.Weekday().String()[:3], h.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First day, inclusive (default: Jan 1 of this year)")
	cmd.Flags().StringVar(&end, "end", "", "Last day, exclusive (default: Jan 1 of next year)")
	return cmd
}

// monthFlag resolves a --month value, defaulting to the current month
func monthFlag(value string) (int, time.Month, error) {
	if value == "" {
		today := dateutil.Today()
		return today.Year(), today.Month(), nil
	}
	return dateutil.ParseMonth(value)
}

// application holds the wired components and what must be released on exit
type application struct {
	manager *timesheet.Manager
	closers []func() error
}

// Close releases the database and the browser renderer
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger.Warn("Failed to release resource", zap.Error(err))
		}
	}
}

func initializeApp(ctx context.Context, cfg *config.Config) (*application, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Open database
	db, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app := &application{closers: []func() error{db.Close}}

	// Initialize holiday fetcher
	source := calendar.NewNagerSource(
		cfg.Holidays.BaseURL,
		cfg.Holidays.Country,
		cfg.Holidays.GetTimeout(),
		logger,
	)
	fetcher := calendar.NewHolidayFetcher(source, calendar.NewYearCache(), logger)
	logger.Debug("Holiday source configured",
		zap.String("country", source.Country()),
		zap.Duration("timeout", cfg.Holidays.GetTimeout()))

	// Initialize renderer based on type
	var renderer report.Renderer
	switch cfg.Export.Renderer {
	case config.RendererBrowser:
		logger.Info("Using headless browser PDF renderer")
		browser := report.NewBrowserRenderer(logger)
		app.closers = append(app.closers, browser.Close)
		renderer = browser
	default:
		renderer = report.NewPDFRenderer(true)
	}

	app.manager = timesheet.NewManager(
		storage.NewEventStore(db),
		storage.NewLockRegistry(db),
		fetcher,
		renderer,
		cfg.Export.Title,
		logger,
	)
	return app, nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,  // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	// Setup encoder
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Parse log level
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	// Create core with lumberjack writer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
