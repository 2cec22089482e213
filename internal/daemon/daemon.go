package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/username/timesheet-tracker/internal/server"
	"github.com/username/timesheet-tracker/internal/timesheet"
	"github.com/username/timesheet-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Daemon keeps the HTTP server running until a signal, Stop or the tray's Quit
type Daemon struct {
	server     *server.Server
	manager    *timesheet.Manager
	listen     string
	exportDir  string // where tray exports are written
	systemTray bool   // Show system tray icon
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	trayApp    *TrayApp
	mu         sync.Mutex // serializes tray exports
}

// NewDaemon creates a new daemon instance
func NewDaemon(srv *server.Server, manager *timesheet.Manager, listen string, systemTray bool, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	exportDir, err := os.UserHomeDir()
	if err != nil {
		exportDir = "."
	}

	return &Daemon{
		server:     srv,
		manager:    manager,
		listen:     listen,
		exportDir:  exportDir,
		systemTray: systemTray,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start runs the daemon and blocks until it stops
func (d *Daemon) Start() error {
	// Initialize system tray if enabled (Windows only)
	if d.systemTray {
		d.logger.Info("Initializing system tray")
		trayApp, err := NewTrayApp(d, d.logger)
		if err != nil {
			d.logger.Warn("Failed to initialize system tray", zap.Error(err))
			return d.serve()
		}
		d.trayApp = trayApp

		errCh := make(chan error, 1)
		go func() {
			errCh <- d.serve()
		}()
		// Run tray (blocks until Quit)
		d.trayApp.Run()
		d.Stop()
		return <-errCh
	}

	d.logger.Info("Running without system tray")
	return d.serve()
}

// serve binds the listen address, runs the HTTP server and shuts it down gracefully
func (d *Daemon) serve() error {
	ln, err := net.Listen("tcp", d.listen)
	if err != nil {
		d.stopTray()
		d.Stop()
		return fmt.Errorf("failed to listen on %s: %w", d.listen, err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- d.server.Listener(ln)
	}()

	select {
	case err := <-listenErr:
		d.stopTray()
		d.Stop()
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil

	case sig := <-sigChan:
		d.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
		d.stopTray()
		d.Stop()

	case <-d.ctx.Done():
	}

	// a second signal terminates the process
	signal.Stop(sigChan)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	shutdownErr := d.server.Shutdown(ctx)

	// Shutdown only closes listeners fiber is already accepting on
	_ = ln.Close()

	if err := <-listenErr; err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	if shutdownErr != nil {
		return fmt.Errorf("failed to shut down server: %w", shutdownErr)
	}

	d.logger.Info("Daemon stopped")
	return nil
}

func (d *Daemon) stopTray() {
	if d.trayApp != nil {
		d.trayApp.Stop()
	}
}

// Stop stops the daemon
func (d *Daemon) Stop() {
	d.cancel()
}

// URL returns the address to open in a browser
func (d *Daemon) URL() string {
	host, port, err := net.SplitHostPort(d.listen)
	if err != nil {
		return "http://localhost:8080/"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/"
}

// ExportCurrentMonth writes the PDF of the current month into the export directory
func (d *Daemon) ExportCurrentMonth() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	today := dateutil.Today()
	export, err := d.manager.Export(d.ctx, today.Year(), today.Month(), timesheet.FormatPDF)
	if err != nil {
		return "", err
	}

	path := filepath.Join(d.exportDir, export.Filename)
	if err := os.WriteFile(path, export.Body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	d.logger.Info("Current month exported", zap.String("path", path))
	return path, nil
}
