// Package app provides application state, events, and lifecycle helpers.
package app

import (
	"fmt"
	"os"
	"sync"

	img "textlens/internal/image"
	"textlens/internal/ocr"
	"textlens/pkg/geometry"
)

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventTranscriptionComplete
	EventROIChanged
	EventModelsChanged
	EventWordHighlighted
	EventModified
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Highlight carries a word highlight between the viewer and the transcript.
// Origin names the widget that produced the event so it can ignore its own
// echo. WordID is -1 when the highlight is cleared.
type Highlight struct {
	WordID int
	Origin string
}

// State holds the application state: the loaded image, the selected model,
// the optional region of interest, and the latest transcription result.
type State struct {
	mu sync.RWMutex

	page      *img.Page
	modelCode string
	roi       *geometry.RectInt
	result    *ocr.Result

	listeners map[EventType][]EventListener
}

// NewState creates a new application state.
func NewState() *State {
	return &State{
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// LoadImage loads a new source image. Any previous region of interest and
// transcription result are discarded.
func (s *State) LoadImage(path string) error {
	page, err := img.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.page = page
	s.roi = nil
	s.result = nil
	s.mu.Unlock()

	s.Emit(EventImageLoaded, page)
	return nil
}

// Page returns the currently loaded image, or nil.
func (s *State) Page() *img.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// ImagePath returns the path of the loaded image, or "".
func (s *State) ImagePath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.page == nil {
		return ""
	}
	return s.page.Path
}

// SetModelCode records the selected language model.
func (s *State) SetModelCode(code string) {
	s.mu.Lock()
	s.modelCode = code
	s.mu.Unlock()
}

// ModelCode returns the selected language model code.
func (s *State) ModelCode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelCode
}

// SetROI sets the region of interest for the next transcription. The region
// is clamped to the image bounds; a region entirely outside the image is
// rejected.
func (s *State) SetROI(r geometry.RectInt) error {
	s.mu.Lock()
	if s.page == nil {
		s.mu.Unlock()
		return fmt.Errorf("no image loaded")
	}
	bounds := geometry.NewRectInt(0, 0, s.page.Width(), s.page.Height())
	clamped := r.Intersect(bounds)
	if clamped.Empty() {
		s.mu.Unlock()
		return fmt.Errorf("selected region lies outside the image")
	}
	s.roi = &clamped
	s.mu.Unlock()

	s.Emit(EventROIChanged, &clamped)
	return nil
}

// ClearROI removes the region of interest.
func (s *State) ClearROI() {
	s.mu.Lock()
	hadROI := s.roi != nil
	s.roi = nil
	s.mu.Unlock()

	if hadROI {
		s.Emit(EventROIChanged, (*geometry.RectInt)(nil))
	}
}

// ROI returns a copy of the current region of interest, or nil.
func (s *State) ROI() *geometry.RectInt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.roi == nil {
		return nil
	}
	r := *s.roi
	return &r
}

// SetResult stores a transcription result and notifies listeners.
func (s *State) SetResult(res *ocr.Result) {
	s.mu.Lock()
	s.result = res
	s.mu.Unlock()

	s.Emit(EventTranscriptionComplete, res)
}

// Result returns the latest transcription result, or nil.
func (s *State) Result() *ocr.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// HighlightWord broadcasts a word highlight from the named origin widget.
// Pass id -1 to clear the highlight.
func (s *State) HighlightWord(id int, origin string) {
	s.Emit(EventWordHighlighted, Highlight{WordID: id, Origin: origin})
}

// ExportTranscript writes the reconstructed transcript to a plain-text file.
func (s *State) ExportTranscript(path string) error {
	s.mu.RLock()
	res := s.result
	s.mu.RUnlock()

	if res == nil {
		return fmt.Errorf("nothing to export: no transcription result")
	}
	if err := os.WriteFile(path, []byte(res.Text+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}
