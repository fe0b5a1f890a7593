package model

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeModel(t *testing.T, dir, code string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, code+TrainedDataExt), []byte("stub"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan(t *testing.T) {
	base := t.TempDir()
	writeModel(t, base, "lat")
	writeModel(t, base, "deu_frak")
	writeModel(t, filepath.Join(base, "other_models"), "spa_old")
	// Duplicate in other_models must not shadow the primary copy.
	writeModel(t, filepath.Join(base, "other_models"), "lat")

	models := NewManager(base).Scan()

	byCode := make(map[string]Model)
	for _, m := range models {
		if _, dup := byCode[m.Code]; dup {
			t.Errorf("duplicate code %q in scan results", m.Code)
		}
		byCode[m.Code] = m
	}

	if m := byCode["lat"]; m.Dir != base {
		t.Errorf("lat resolved to %q, want primary dir %q", m.Dir, base)
	}
	if m := byCode["spa_old"]; m.Dir != filepath.Join(base, "other_models") {
		t.Errorf("spa_old resolved to %q, want other_models", m.Dir)
	}
	if m := byCode["deu_frak"]; m.Dir != base {
		t.Errorf("deu_frak resolved to %q, want %q", m.Dir, base)
	}
	// "eng" has no local file but is offered for download.
	if m, ok := byCode["eng"]; !ok || m.Dir != "" {
		t.Errorf("eng: got %+v, want downloadable entry with empty dir", m)
	}
}

func TestScan_SortedByCode(t *testing.T) {
	base := t.TempDir()
	writeModel(t, base, "swe")
	writeModel(t, base, "ara")

	models := NewManager(base).Scan()
	for i := 1; i < len(models); i++ {
		if models[i-1].Code >= models[i].Code {
			t.Fatalf("scan results not sorted: %q before %q", models[i-1].Code, models[i].Code)
		}
	}
}

func TestResolve_Local(t *testing.T) {
	base := t.TempDir()
	writeModel(t, filepath.Join(base, "other_models"), "ita_old")

	dir, err := NewManager(base).Resolve("ita_old")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dir != filepath.Join(base, "other_models") {
		t.Errorf("got %q, want other_models dir", dir)
	}
}

func TestResolve_Download(t *testing.T) {
	payload := []byte("fake traineddata payload")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/eng"+TrainedDataExt {
			http.NotFound(w, r)
			return
		}
		w.Write(payload)
	}))
	defer srv.Close()

	base := t.TempDir()
	m := NewManager(base)
	m.repoURL = srv.URL + "/%s"

	dir, err := m.Resolve("eng")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dir != base {
		t.Errorf("downloaded model dir: got %q, want %q", dir, base)
	}

	data, err := os.ReadFile(filepath.Join(base, "eng"+TrainedDataExt))
	if err != nil {
		t.Fatalf("model file missing after download: %v", err)
	}
	if string(data) != string(payload) {
		t.Error("downloaded model content mismatch")
	}

	// No temp file left behind.
	if _, err := os.Stat(filepath.Join(base, "eng"+TrainedDataExt+".tmp")); !os.IsNotExist(err) {
		t.Error("temp file left behind after successful download")
	}
}

func TestResolve_DownloadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	base := t.TempDir()
	m := NewManager(base)
	m.repoURL = srv.URL + "/%s"

	if _, err := m.Resolve("xyz"); err == nil {
		t.Fatal("Resolve should fail when the upstream returns 404")
	}

	entries, _ := os.ReadDir(base)
	if len(entries) != 0 {
		t.Errorf("failed download left files behind: %v", entries)
	}
}

func TestResolve_EmptyCode(t *testing.T) {
	if _, err := NewManager(t.TempDir()).Resolve(""); err == nil {
		t.Fatal("Resolve should reject an empty language code")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		code, want string
	}{
		{"deu_frak", "German Fraktur (deu_frak)"},
		{"eng", "English (eng)"},
		{"frak2021-0.905", "frak2021-0.905"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.code); got != tt.want {
			t.Errorf("DisplayName(%q): got %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeFromDisplayName(t *testing.T) {
	tests := []struct {
		display, want string
	}{
		{"German Fraktur (deu_frak)", "deu_frak"},
		{"frak2021-0.905", "frak2021-0.905"},
		{"Japanese (Vertical) (jpn_vert)", "jpn_vert"},
	}
	for _, tt := range tests {
		if got := CodeFromDisplayName(tt.display); got != tt.want {
			t.Errorf("CodeFromDisplayName(%q): got %q, want %q", tt.display, got, tt.want)
		}
	}
}

func TestDisplayNameRoundTrip(t *testing.T) {
	for _, code := range []string{"deu_frak", "eng", "chi_sim_vert", "german_print_0.877"} {
		if got := CodeFromDisplayName(DisplayName(code)); got != code {
			t.Errorf("round trip of %q: got %q", code, got)
		}
	}
}
