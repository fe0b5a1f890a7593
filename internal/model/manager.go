// Package model manages Tesseract trained-data models: scanning local model
// directories, resolving a language code to a model directory, and downloading
// missing models from the upstream tessdata repository.
package model

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// TrainedDataExt is the file extension of Tesseract model files.
	TrainedDataExt = ".traineddata"

	// repoURLFormat is the upstream repository serving standard models.
	repoURLFormat = "https://github.com/tesseract-ocr/tessdata/raw/main/%s"

	otherModelsDir  = "other_models"
	downloadTimeout = 60 * time.Second
)

// DefaultDownloadable lists codes offered in the model list even when no
// local file exists yet; Resolve fetches them on first use.
var DefaultDownloadable = []string{"eng", "deu_frak"}

// Model is a locally available (or downloadable) trained-data model.
type Model struct {
	Code string // Language code, e.g. "deu_frak"
	Dir  string // Directory holding <code>.traineddata, "" if not yet downloaded
}

// Path returns the full path of the model file, or "" if not yet downloaded.
func (m Model) Path() string {
	if m.Dir == "" {
		return ""
	}
	return filepath.Join(m.Dir, m.Code+TrainedDataExt)
}

// Manager resolves language codes to model directories.
type Manager struct {
	baseDir string
	repoURL string // URL format with one %s verb for the file name
	client  *http.Client
}

// NewManager creates a manager rooted at baseDir. Models live in baseDir
// itself; an optional baseDir/other_models subdirectory is scanned as well.
func NewManager(baseDir string) *Manager {
	return &Manager{
		baseDir: baseDir,
		repoURL: repoURLFormat,
		client:  &http.Client{Timeout: downloadTimeout},
	}
}

// BaseDir returns the primary model directory.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// Scan lists all models found in the managed directories plus the default
// downloadable codes. Duplicate codes keep the first directory found, so the
// primary directory wins over other_models. Results are sorted by code.
func (m *Manager) Scan() []Model {
	seen := make(map[string]bool)
	var models []Model

	for _, dir := range []string{m.baseDir, filepath.Join(m.baseDir, otherModelsDir)} {
		for _, code := range listCodes(dir) {
			if seen[code] {
				continue
			}
			seen[code] = true
			models = append(models, Model{Code: code, Dir: dir})
		}
	}

	for _, code := range DefaultDownloadable {
		if !seen[code] {
			seen[code] = true
			models = append(models, Model{Code: code})
		}
	}

	sort.Slice(models, func(i, j int) bool { return models[i].Code < models[j].Code })
	return models
}

// listCodes returns the language codes of all trained-data files in dir.
func listCodes(dir string) []string {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+TrainedDataExt))
	if err != nil {
		return nil
	}
	codes := make([]string, 0, len(matches))
	for _, m := range matches {
		codes = append(codes, strings.TrimSuffix(filepath.Base(m), TrainedDataExt))
	}
	return codes
}

// Resolve returns the directory containing the model for the given code,
// downloading it into the primary directory when absent locally.
func (m *Manager) Resolve(code string) (string, error) {
	if code == "" {
		return "", fmt.Errorf("empty language code")
	}

	for _, dir := range []string{m.baseDir, filepath.Join(m.baseDir, otherModelsDir)} {
		if fileExists(filepath.Join(dir, code+TrainedDataExt)) {
			return dir, nil
		}
	}

	if err := m.download(code); err != nil {
		return "", fmt.Errorf("model %q not available locally and download failed: %w", code, err)
	}
	return m.baseDir, nil
}

// download fetches <code>.traineddata from the upstream repository into the
// primary directory. The file is streamed to a .tmp sibling and renamed on
// success so a failed download never leaves a partial model behind.
func (m *Manager) download(code string) error {
	if err := os.MkdirAll(m.baseDir, 0o755); err != nil {
		return err
	}

	url := fmt.Sprintf(m.repoURL, code+TrainedDataExt)
	resp, err := m.client.Get(url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	dest := filepath.Join(m.baseDir, code+TrainedDataExt)
	tmp := dest + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dest)
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
