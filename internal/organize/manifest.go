package organize

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/aali-22/askengine/internal/domain"
	"github.com/aali-22/askengine/internal/fetch"
)

const manifestName = "manifest.json"

// Manifest tracks a season partition's contents and known gaps.
type Manifest struct {
	Version       int         `json:"version"`
	Sport         string      `json:"sport"`
	Year          int         `json:"year"`
	GeneratedAt   time.Time   `json:"generatedAt"`
	LastOrganized time.Time   `json:"lastOrganized"`
	Files         []string    `json:"files"`
	Gaps          []fetch.Gap `json:"gaps,omitempty"`
}

func defaultManifest(season domain.Season) Manifest {
	return Manifest{
		Version: 1,
		Sport:   string(season.Sport),
		Year:    season.Year,
		Files:   []string{},
	}
}

func readManifest(seasonDir string, season domain.Season) Manifest {
	f, err := os.Open(filepath.Join(seasonDir, manifestName))
	if err != nil {
		return defaultManifest(season)
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(season)
	}
	return m
}

func writeManifest(seasonDir string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(seasonDir, manifestName)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
