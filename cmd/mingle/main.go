package main

import (
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	zone "github.com/lrstanley/bubblezone"
	"github.com/minglehq/mingle/internal/client"
	"github.com/minglehq/mingle/internal/tui"
)

func main() {
	slogger := slog.New(tint.NewHandler(os.Stderr, nil))

	filesDir, err := appFilesDir()
	if err != nil {
		slogger.Error(err.Error())
		os.Exit(1)
	}
	// initializing here so a startup failure halts the app instead of
	// surfacing while it's running
	if err = client.Init(filesDir); err != nil {
		slogger.Error(err.Error())
		os.Exit(1)
	}
	f, err := tea.LogToFile(filepath.Join(filesDir, "Mingle.log"), "Mingle")
	if err != nil {
		slogger.Error(err.Error())
		os.Exit(1)
	}
	defer f.Close()

	zone.NewGlobal()
	_, err = tea.NewProgram(tui.InitialTabContainerModel(), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		slogger.Error(err.Error())
		os.Exit(1)
	}
}

func appFilesDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "Mingle")
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}
