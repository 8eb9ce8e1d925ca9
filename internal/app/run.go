package app

import (
	"log"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
)

const fyneAppID = "studio.omniview.workspace"

// Run initializes required resources and starts the desktop UI.
func Run() error {
	cfg, err := LoadConfig("")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.WorkspaceDir, 0o755); err != nil {
		return err
	}

	a := fyneapp.NewWithID(fyneAppID)
	logger := log.New(os.Stderr, "omniview ", log.LstdFlags)

	svc, err := NewService(cfg, newPrefStore(a), logger)
	if err != nil {
		return err
	}

	u := buildUI(a, svc)
	u.w.SetOnClosed(func() {
		size := u.w.Canvas().Size()
		saved := svc.Config()
		saved.WindowWidth = size.Width
		saved.WindowHeight = size.Height
		if err := SaveConfig("", saved); err != nil {
			logger.Printf("save config: %v", err)
		}
	})
	u.w.ShowAndRun()
	return nil
}
