//go:build windows

package daemon

import (
	"fmt"
	"os/exec"
	"syscall"
	"unsafe"

	"fyne.io/systray"
	"go.uber.org/zap"
)

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	messageBoxW = user32.NewProc("MessageBoxW")
)

const (
	MB_OK              = 0x00000000
	MB_ICONINFORMATION = 0x00000040
	MB_ICONERROR       = 0x00000010
)

// TrayApp represents system tray application
type TrayApp struct {
	daemon *Daemon
	logger *zap.Logger
	quit   chan struct{}
}

// NewTrayApp creates a new system tray application
func NewTrayApp(daemon *Daemon, logger *zap.Logger) (*TrayApp, error) {
	return &TrayApp{
		daemon: daemon,
		logger: logger,
		quit:   make(chan struct{}),
	}, nil
}

// Run starts the system tray application (blocks until Quit)
func (t *TrayApp) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *TrayApp) onReady() {
	systray.SetIcon(calendarIcon())
	systray.SetTitle("TS")
	systray.SetTooltip("Timesheet")

	mOpen := systray.AddMenuItem("Open", "Open the timesheet in a browser")
	mExport := systray.AddMenuItem("Export current month", "Save this month as PDF")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit the application")

	go func() {
		for {
			select {
			case <-mOpen.ClickedCh:
				t.logger.Info("Open clicked from tray")
				t.openBrowser()
			case <-mExport.ClickedCh:
				t.logger.Info("Export clicked from tray")
				go t.export()
			case <-mQuit.ClickedCh:
				t.logger.Info("Quit clicked from tray")
				t.daemon.Stop()
				systray.Quit()
				return
			case <-t.quit:
				systray.Quit()
				return
			}
		}
	}()
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// Stop stops the system tray application
func (t *TrayApp) Stop() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

func (t *TrayApp) openBrowser() {
	url := t.daemon.URL()
	if err := exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start(); err != nil {
		t.logger.Warn("Failed to open browser", zap.String("url", url), zap.Error(err))
	}
}

func (t *TrayApp) export() {
	path, err := t.daemon.ExportCurrentMonth()
	if err != nil {
		t.logger.Error("Tray export failed", zap.Error(err))
		showMessageBox("Export Failed", fmt.Sprintf("Error: %v", err), MB_ICONERROR)
		return
	}
	showMessageBox("Export Completed", "Saved to "+path, MB_ICONINFORMATION)
}

func showMessageBox(title, message string, icon uintptr) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)
	messagePtr, _ := syscall.UTF16PtrFromString(message)
	messageBoxW.Call(
		0,
		uintptr(unsafe.Pointer(messagePtr)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(MB_OK)|icon,
	)
}
