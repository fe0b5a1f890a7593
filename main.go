// Package main provides the entry point for the TextLens application.
package main

import (
	"log"
	"os"
	"time"

	"textlens/internal/app"
	"textlens/internal/model"
	"textlens/internal/ocr"
	"textlens/internal/version"
	"textlens/ui/mainwindow"
	"textlens/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "TextLens"

// defaultModelsDir is where trained-data models live, relative to the
// working directory. Downloaded models are stored here too.
const defaultModelsDir = "models"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, version.Version)

	fyneApp := fyneapp.NewWithID("io.textlens.app")
	fyneApp.Settings().SetTheme(&app.TextLensTheme{})

	engine, err := ocr.NewEngine()
	if err != nil {
		log.Fatalf("OCR engine unavailable: %v", err)
	}
	defer engine.Close()

	appState := app.NewState()
	appPrefs := prefs.Load()
	models := model.NewManager(defaultModelsDir)

	win := mainwindow.New(fyneApp, appState, models, engine, appPrefs)

	// An image path on the command line overrides the restored session.
	if len(os.Args) > 1 {
		if err := appState.LoadImage(os.Args[1]); err != nil {
			log.Printf("Failed to load image %s: %v", os.Args[1], err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win)
	})

	reloader.Start()
}
