package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sportsight/internal/config"
	"sportsight/pkg/contracts/domain"
)

// Manager provides file management operations around the pipeline artifacts.
type Manager struct {
	paths *config.Paths
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MarkerExists reports whether the extraction marker from the last run is
// present. Its presence is the sole signal that extraction yielded nothing.
func (m *Manager) MarkerExists() bool {
	return m.FileExists(m.paths.GetRawPath(domain.MarkerFilename))
}

// WriteMarker writes the extraction marker, overwriting any previous one.
func (m *Manager) WriteMarker() error {
	path := m.paths.GetRawPath(domain.MarkerFilename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create raw data directory: %w", err)
	}

	slog.Info("writing extraction marker", slog.String("path", path))
	if err := os.WriteFile(path, []byte(domain.MarkerContent), 0644); err != nil {
		return fmt.Errorf("failed to write extraction marker: %w", err)
	}
	return nil
}

// RemoveMarker deletes a stale extraction marker. Missing marker is not an error.
func (m *Manager) RemoveMarker() error {
	path := m.paths.GetRawPath(domain.MarkerFilename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove extraction marker: %w", err)
	}
	return nil
}

// WriteNote writes a small informational text file into the processed
// directory, such as the synthetic-provenance source note.
func (m *Manager) WriteNote(filename, content string) error {
	path := m.paths.GetProcessedPath(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create processed data directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// RemoveNote deletes a note file if present.
func (m *Manager) RemoveNote(filename string) error {
	path := m.paths.GetProcessedPath(filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", filename, err)
	}
	return nil
}
