// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"textlens/internal/app"
	img "textlens/internal/image"
	"textlens/internal/model"
	"textlens/internal/ocr"
	"textlens/internal/version"
	"textlens/pkg/geometry"
	"textlens/ui/prefs"
	"textlens/ui/transcript"
	"textlens/ui/viewer"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// Origin tags for highlight events, so each side can ignore its own echo.
const (
	originViewer     = "viewer"
	originTranscript = "transcript"
)

const prefKeyLastDir = "lastDirectory"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	models *model.Manager
	engine *ocr.Engine
	prefs  *prefs.Prefs

	viewer     *viewer.Viewer
	transcript *transcript.View
	statusBar  *widget.Label

	modelSelect   *widget.Select
	preprocSelect *widget.Select
	transcribeBtn *widget.Button

	transcribing bool
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, models *model.Manager, engine *ocr.Engine, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("TextLens")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		models: models,
		engine: engine,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.refreshModels()
	mw.restoreSession()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.viewer = viewer.New()
	mw.transcript = transcript.New()
	mw.statusBar = widget.NewLabel("Ready")

	// Hover sync runs through the shared state so either side can ignore
	// its own echo; taps are cross-wired directly.
	mw.viewer.OnWordHovered(func(id int) {
		mw.state.HighlightWord(id, originViewer)
	})
	mw.viewer.OnWordTapped(func(id int) {
		mw.transcript.SetSelected(id)
	})
	mw.viewer.OnRegionSelected(func(r geometry.RectInt) {
		if err := mw.state.SetROI(r); err != nil {
			mw.updateStatus(err.Error())
			return
		}
		mw.updateStatus("Region selected; transcription will use it")
	})

	mw.transcript.OnWordHovered(func(id int) {
		mw.state.HighlightWord(id, originTranscript)
	})
	mw.transcript.OnWordTapped(func(id int) {
		mw.viewer.SetSelected(id)
	})

	toolbar := mw.createToolbar()

	split := container.NewHSplit(
		mw.viewer,
		mw.transcript,
	)
	split.SetOffset(0.62) // Image takes most of the width

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1100, 700))
}

// createToolbar creates the toolbar with the main controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	openBtn := widget.NewButton("Open Image...", mw.onOpenImage)

	mw.modelSelect = widget.NewSelect(nil, func(display string) {
		code := model.CodeFromDisplayName(display)
		mw.state.SetModelCode(code)
		mw.prefs.LastModel = code
		if err := mw.prefs.Save(); err != nil {
			log.Printf("failed to save preferences: %v", err)
		}
	})
	mw.modelSelect.PlaceHolder = "Select model"

	mw.preprocSelect = widget.NewSelect([]string{"none", "gray", "binarize"}, nil)
	mw.preprocSelect.SetSelected("none")

	mw.transcribeBtn = widget.NewButton("Transcribe", mw.onTranscribe)
	selectBtn := widget.NewButton("Select Region", mw.onSelectRegion)
	clearBtn := widget.NewButton("Clear Region", mw.onClearRegion)
	exportBtn := widget.NewButton("Export Text...", mw.onExportTranscript)

	return container.NewHBox(
		openBtn,
		widget.NewSeparator(),
		widget.NewLabel("Model:"),
		mw.modelSelect,
		widget.NewLabel("Preprocess:"),
		mw.preprocSelect,
		mw.transcribeBtn,
		widget.NewSeparator(),
		selectBtn,
		clearBtn,
		widget.NewSeparator(),
		exportBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Transcript...", mw.onExportTranscript),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Transcribe", mw.onTranscribe),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Select Region", mw.onSelectRegion),
		fyne.NewMenuItem("Clear Region", mw.onClearRegion),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Refresh Models", mw.onRefreshModels),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, toolsMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		page, ok := data.(*img.Page)
		if !ok || page == nil {
			return
		}
		mw.viewer.SetImage(page.Image)
		mw.transcript.SetMessage("Transcription output...")
		mw.SetTitle("TextLens - " + filepath.Base(page.Path))
		mw.updateStatus(fmt.Sprintf("Loaded %s (%dx%d)", filepath.Base(page.Path), page.Width(), page.Height()))
	})

	mw.state.On(app.EventTranscriptionComplete, func(data interface{}) {
		res, ok := data.(*ocr.Result)
		if !ok || res == nil {
			return
		}
		mw.viewer.SetWords(res.Words)
		mw.transcript.SetResult(res)
		status := fmt.Sprintf("Recognized %d words with %s", len(res.Words), model.DisplayName(res.Language))
		if res.SkewDegrees > 1.0 || res.SkewDegrees < -1.0 {
			status += fmt.Sprintf(" (page skew %.1f°)", res.SkewDegrees)
		}
		mw.updateStatus(status)
	})

	mw.state.On(app.EventROIChanged, func(data interface{}) {
		mw.viewer.SetROI(mw.state.ROI())
	})

	mw.state.On(app.EventWordHighlighted, func(data interface{}) {
		hl, ok := data.(app.Highlight)
		if !ok {
			return
		}
		switch hl.Origin {
		case originViewer:
			mw.transcript.SetHighlight(hl.WordID)
		case originTranscript:
			mw.viewer.SetHighlight(hl.WordID)
		}
	})

	mw.state.On(app.EventModelsChanged, func(data interface{}) {
		mw.refreshModels()
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// refreshModels rescans the model directories and rebuilds the dropdown,
// keeping the current selection when it still exists.
func (mw *MainWindow) refreshModels() {
	models := mw.models.Scan()

	options := make([]string, 0, len(models))
	for _, m := range models {
		options = append(options, model.DisplayName(m.Code))
	}
	mw.modelSelect.Options = options

	want := mw.state.ModelCode()
	if want == "" {
		want = mw.prefs.LastModel
	}
	for _, opt := range options {
		if model.CodeFromDisplayName(opt) == want {
			mw.modelSelect.SetSelected(opt)
			mw.modelSelect.Refresh()
			return
		}
	}
	mw.modelSelect.ClearSelected()
	mw.modelSelect.Refresh()
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		path = mw.prefs.LastDirectory
	}
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

// restoreSession reloads the previously open image, if any.
func (mw *MainWindow) restoreSession() {
	if mw.prefs.LastImage == "" {
		return
	}
	if _, err := os.Stat(mw.prefs.LastImage); err != nil {
		return
	}
	if err := mw.state.LoadImage(mw.prefs.LastImage); err != nil {
		log.Printf("failed to restore last image: %v", err)
	}
}

// Menu and toolbar action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()

		if loadErr := mw.state.LoadImage(path); loadErr != nil {
			dialog.ShowError(loadErr, mw.Window)
			return
		}

		mw.saveLastDir(path)
		mw.prefs.RememberFile(path)
		if saveErr := mw.prefs.Save(); saveErr != nil {
			log.Printf("failed to save preferences: %v", saveErr)
		}
	}, mw.Window)

	fd.SetFilter(storage.NewExtensionFileFilter(img.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onTranscribe() {
	if mw.transcribing {
		mw.updateStatus("Transcription already running")
		return
	}

	page := mw.state.Page()
	if page == nil {
		mw.updateStatus("Open an image first")
		return
	}

	code := mw.state.ModelCode()
	if code == "" {
		mw.updateStatus("Select a language model first")
		return
	}

	req := ocr.Request{
		ImagePath:  page.Path,
		Language:   code,
		ROI:        mw.state.ROI(),
		Preprocess: ocr.ParsePreprocessMode(mw.preprocSelect.Selected),
		DPI:        page.DPI,
	}

	mw.transcribing = true
	mw.transcribeBtn.Disable()
	mw.transcript.SetMessage("Transcribing with " + model.DisplayName(code) + "...")
	mw.updateStatus("Transcribing...")

	// Recognition can take seconds, and a model download can take longer;
	// keep it off the event loop.
	go func() {
		defer func() {
			mw.transcribing = false
			mw.transcribeBtn.Enable()
		}()

		dir, err := mw.models.Resolve(code)
		if err != nil {
			mw.transcript.SetMessage(err.Error())
			mw.updateStatus("Model not available")
			return
		}
		mw.state.Emit(app.EventModelsChanged, nil) // A download may have added a file

		req.TessdataDir = dir
		res, err := mw.engine.Transcribe(req)
		if err != nil {
			mw.transcript.SetMessage(err.Error())
			mw.updateStatus("Transcription failed")
			return
		}
		mw.state.SetResult(res)
	}()
}

func (mw *MainWindow) onSelectRegion() {
	if mw.state.Page() == nil {
		mw.updateStatus("Open an image first")
		return
	}
	mw.viewer.ArmSelectMode()
	mw.updateStatus("Drag on the image to select a region")
}

func (mw *MainWindow) onClearRegion() {
	mw.state.ClearROI()
	mw.updateStatus("Region cleared; transcription will use the whole image")
}

func (mw *MainWindow) onRefreshModels() {
	mw.refreshModels()
	mw.updateStatus(fmt.Sprintf("Found %d models", len(mw.modelSelect.Options)))
}

func (mw *MainWindow) onExportTranscript() {
	if mw.state.Result() == nil {
		mw.updateStatus("Nothing to export: transcribe an image first")
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".txt" {
			path += ".txt"
		}
		mw.saveLastDir(path)
		if err := mw.state.ExportTranscript(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Transcript saved to " + path)
	}, mw.Window)

	fd.SetFileName("transcript.txt")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About TextLens",
		fmt.Sprintf("TextLens v%s\n\n"+
			"An OCR transcription tool for scanned documents,\n"+
			"with word-level proofreading against the source image.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
