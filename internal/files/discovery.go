package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"sportsight/pkg/contracts/domain"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// SourceDocument is a discovered PDF report together with its product line.
type SourceDocument struct {
	FileInfo
	Category domain.Category
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindPDFFiles finds all PDF files in the specified directory, sorted by
// name for deterministic processing order.
func (d *Discovery) FindPDFFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// FindSourceDocuments finds PDF files whose names match a known product-line
// pattern. Files matching neither pattern are skipped with a warning.
func (d *Discovery) FindSourceDocuments(dir string, logger *slog.Logger) ([]SourceDocument, error) {
	if logger == nil {
		logger = slog.Default()
	}

	files, err := d.FindPDFFiles(dir)
	if err != nil {
		return nil, err
	}

	var docs []SourceDocument
	for _, file := range files {
		category, ok := domain.DetectCategory(file.Name)
		if !ok {
			logger.Warn("skipping document with unrecognized filename pattern",
				slog.String("file", file.Name))
			continue
		}
		docs = append(docs, SourceDocument{FileInfo: file, Category: category})
	}

	return docs, nil
}

// FindCSVFiles finds all CSV files in the specified directory
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// resolve joins dir onto the base path unless it is already absolute.
func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
