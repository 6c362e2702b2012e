package ui

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"

	"github.com/cutboard/cutboard-agent/internal/editor"
)

type Tray struct {
	editor   *editor.Editor
	autosave *editor.Autosave
	logger   *slog.Logger

	statusItem   *systray.MenuItem
	projectsItem *systray.MenuItem
	pauseItem    *systray.MenuItem

	mu sync.Mutex

	onSaveAll func() error
	onQuit    func()
}

type TrayConfig struct {
	Editor    *editor.Editor
	Autosave  *editor.Autosave
	Logger    *slog.Logger
	OnSaveAll func() error
	OnQuit    func()
}

func NewTray(cfg TrayConfig) *Tray {
	return &Tray{
		editor:    cfg.Editor,
		autosave:  cfg.Autosave,
		logger:    cfg.Logger,
		onSaveAll: cfg.OnSaveAll,
		onQuit:    cfg.OnQuit,
	}
}

func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(iconBytes)
	systray.SetTitle("Cutboard")
	systray.SetTooltip("Cutboard Agent")

	t.statusItem = systray.AddMenuItem("Status: Idle", "Current agent status")
	t.statusItem.Disable()

	t.projectsItem = systray.AddMenuItem("Open projects: 0", "Projects currently open")
	t.projectsItem.Disable()

	systray.AddSeparator()

	t.pauseItem = systray.AddMenuItem("Pause autosave", "Pause periodic saving")

	saveAllItem := systray.AddMenuItem("Save All", "Save every open project now")

	systray.AddSeparator()

	quitItem := systray.AddMenuItem("Quit", "Quit Cutboard Agent")

	go func() {
		for {
			select {
			case <-t.pauseItem.ClickedCh:
				t.togglePause()
			case <-saveAllItem.ClickedCh:
				t.handleSaveAll()
			case <-quitItem.ClickedCh:
				t.logger.Info("quit requested from tray")
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()

	t.logger.Info("system tray ready")
}

func (t *Tray) onExit() {
	t.logger.Info("system tray exiting")
}

func (t *Tray) togglePause() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.autosave == nil {
		return
	}

	if t.autosave.IsPaused() {
		t.autosave.Resume()
		t.pauseItem.SetTitle("Pause autosave")
		t.statusItem.SetTitle("Status: Idle")
	} else {
		t.autosave.Pause()
		t.pauseItem.SetTitle("Resume autosave")
		t.statusItem.SetTitle("Status: Autosave paused")
	}
}

func (t *Tray) handleSaveAll() {
	if t.onSaveAll != nil {
		if err := t.onSaveAll(); err != nil {
			t.logger.Error("failed to save open projects", "error", err)
		}
	}
}

func (t *Tray) UpdateStatus(status string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.autosave != nil && t.autosave.IsPaused() {
		return
	}
	t.statusItem.SetTitle("Status: " + status)
}

func (t *Tray) UpdateProjectCount(count int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.projectsItem.SetTitle(fmt.Sprintf("Open projects: %d", count))
}

func (t *Tray) Quit() {
	systray.Quit()
}
