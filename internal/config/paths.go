package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for all filesystem locations used by
// the pipeline and the dashboard server.
//
// Layout relative to the base directory:
//
//	<base>/
//	  ├── documents/        (source PDF reports)
//	  ├── data/
//	  │   ├── raw/          (intermediate extraction table + marker)
//	  │   └── processed/    (the five output tables and supplements)
//	  ├── logs/
//	  └── web/              (static dashboard assets)
type Paths struct {
	BaseDir      string
	DocumentsDir string
	DataDir      string
	RawDir       string
	ProcessedDir string
	LogsDir      string
	WebDir       string
}

// NewPaths builds the path set rooted at baseDir.
func NewPaths(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")
	return &Paths{
		BaseDir:      baseDir,
		DocumentsDir: filepath.Join(baseDir, "documents"),
		DataDir:      dataDir,
		RawDir:       filepath.Join(dataDir, "raw"),
		ProcessedDir: filepath.Join(dataDir, "processed"),
		LogsDir:      filepath.Join(baseDir, "logs"),
		WebDir:       filepath.Join(baseDir, "web"),
	}
}

// GetPaths returns paths rooted at the directory containing the executable,
// never the current working directory, so the binaries behave the same no
// matter where they are launched from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	return NewPaths(filepath.Dir(exe)), nil
}

// EnsureDirectories creates every directory the pipeline writes into.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DocumentsDir, p.DataDir, p.RawDir, p.ProcessedDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetRawPath resolves a filename inside the raw data directory.
func (p *Paths) GetRawPath(filename string) string {
	return filepath.Join(p.RawDir, filename)
}

// GetProcessedPath resolves a filename inside the processed data directory.
func (p *Paths) GetProcessedPath(filename string) string {
	return filepath.Join(p.ProcessedDir, filename)
}

// GetDocumentPath resolves a filename inside the documents directory.
func (p *Paths) GetDocumentPath(filename string) string {
	return filepath.Join(p.DocumentsDir, filename)
}

// GetLogPath resolves a filename inside the logs directory.
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
