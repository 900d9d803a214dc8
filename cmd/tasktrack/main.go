package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/Joseda-hg/tasktrack/internal/config"
	"github.com/Joseda-hg/tasktrack/internal/db"
	"github.com/Joseda-hg/tasktrack/internal/events"
	"github.com/Joseda-hg/tasktrack/internal/tasks"
	"github.com/Joseda-hg/tasktrack/internal/tui"
	"github.com/Joseda-hg/tasktrack/internal/web"
)

type options struct {
	configPath string
	dbPath     string
	dbDriver   string
	dbURL      string
	web        bool
	webOnly    bool
	port       int
	logLevel   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "config file path")
	flag.StringVar(&opts.dbPath, "db", "", "sqlite db path")
	flag.StringVar(&opts.dbDriver, "db-driver", "", "database driver (sqlite or postgres)")
	flag.StringVar(&opts.dbURL, "db-url", "", "postgres connection url")
	flag.BoolVar(&opts.web, "web", false, "enable web server")
	flag.BoolVar(&opts.webOnly, "web-only", false, "run web server only")
	flag.IntVar(&opts.port, "port", 0, "web server port")
	flag.StringVar(&opts.logLevel, "log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	flag.Parse()

	cfgPath, err := resolveConfigPath(opts.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := loadConfig(cfgPath, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logOut, closeLog, err := logOutput(cfg, opts.webOnly)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	log := mustMakeLogger(logOut, cfg.LogLevel)

	if err := run(cfg, opts.webOnly, log); err != nil {
		log.Error("tasktrack failed", "error", err)
		closeLog()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config, webOnly bool, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("close db", "error", err)
		}
	}()

	publisher, closePublisher := makePublisher(cfg, log)
	defer closePublisher()

	svc := tasks.NewService(store, log.With("component", "tasks"), tasks.WithPublisher(publisher))

	var serverErr chan error
	if cfg.WebEnabled {
		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.WebPort),
			Handler:           web.NewServer(svc, log.With("component", "web"), cfg.HTTPTimeout).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		serverErr = make(chan error, 1)
		go func() {
			log.Info("web server running", "url", fmt.Sprintf("http://localhost:%d", cfg.WebPort))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error("web server shutdown", "error", err)
			}
		}()
	}

	if webOnly {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			return nil
		case err := <-serverErr:
			if err != nil {
				return fmt.Errorf("web server: %w", err)
			}
			return nil
		}
	}

	return tui.Run(ctx, svc, log.With("component", "tui"))
}

func resolveConfigPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return config.DefaultConfigPath()
}

// loadConfig reads the config file, applies flag overrides and writes the
// file on first run.
func loadConfig(path string, opts options) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if opts.dbDriver != "" {
		cfg.DBDriver = opts.dbDriver
	}
	if opts.dbPath != "" {
		cfg.DBPath = opts.dbPath
	}
	if opts.dbURL != "" {
		cfg.DBURL = opts.dbURL
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(filepath.Dir(path), "tasktrack.db")
	}
	if opts.web || opts.webOnly {
		cfg.WebEnabled = true
	}
	if opts.port != 0 {
		cfg.WebPort = opts.port
	}
	if cfg.WebPort == 0 {
		cfg.WebPort = 8080
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(path, cfg); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func openStore(cfg config.Config) (*db.Store, error) {
	dsn := cfg.DBURL
	if cfg.DBDriver != config.DriverPostgres {
		if err := config.EnsureDir(cfg.DBPath); err != nil {
			return nil, err
		}
		dsn = cfg.DBPath
	}

	conn, err := db.Open(cfg.DBDriver, dsn)
	if err != nil {
		return nil, err
	}
	return db.NewStore(conn), nil
}

// makePublisher falls back to logging events when no broker is configured
// or the broker cannot be reached.
func makePublisher(cfg config.Config, log *slog.Logger) (events.Publisher, func()) {
	if cfg.AMQPURL == "" {
		return events.NewLogPublisher(log), func() {}
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, log.With("component", "events"))
	if err != nil {
		log.Warn("amqp unavailable, logging events instead", "error", err)
		return events.NewLogPublisher(log), func() {}
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Error("close amqp publisher", "error", err)
		}
	}
}

// logOutput keeps the terminal free while the TUI owns it by writing logs
// next to the database.
func logOutput(cfg config.Config, webOnly bool) (io.Writer, func(), error) {
	if webOnly {
		return os.Stderr, func() {}, nil
	}

	dir := filepath.Dir(cfg.DBPath)
	if cfg.DBDriver == config.DriverPostgres {
		configPath, err := config.DefaultConfigPath()
		if err != nil {
			return nil, nil, err
		}
		dir = filepath.Dir(configPath)
	}
	path := filepath.Join(dir, "tasktrack.log")
	if err := config.EnsureDir(path); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func mustMakeLogger(out io.Writer, levelStr string) *slog.Logger {
	var level slog.Level
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
