package walker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qrlgen-dev/qrlgen/internal/ignore"
)

// FileBoundaries holds the boundaries discovered in a single file.
type FileBoundaries struct {
	Path       string // relative to the scan root, forward slashes
	Language   string
	Boundaries []Boundary
}

// Issue captures a non-fatal problem encountered while scanning files.
type Issue struct {
	File     string `json:"file"`
	Language string `json:"language,omitempty"`
	Severity string `json:"severity"` // warning | error
	Message  string `json:"message"`
}

// ScanResult is the complete scan of a directory tree.
type ScanResult struct {
	RootPath string
	Files    []FileBoundaries
	Issues   []Issue
}

// ScanFile reads and scans a single file from disk.
func (w *Walker) ScanFile(path string) ([]Boundary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.Scan(path, content)
}

// ScanDir recursively scans every supported file under root, skipping paths
// excluded by the ignore rules. Per-file parse failures become issues rather
// than aborting the scan.
func (w *Walker) ScanDir(root string, ignoreRules []string) (*ScanResult, error) {
	matcher := ignore.NewMatcher(ignoreRules)

	supported := make(map[string]bool)
	for _, ext := range w.Extensions() {
		supported[ext] = true
	}

	result := &ScanResult{
		RootPath: root,
		Files:    make([]FileBoundaries, 0),
		Issues:   make([]Issue, 0),
	}

	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			result.Issues = append(result.Issues, Issue{
				File:     relativeTo(root, path),
				Severity: "warning",
				Message:  fmt.Sprintf("walk error: %v", walkErr),
			})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath := relativeTo(root, path)
		if matcher.ShouldIgnore(relPath, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			return nil
		}
		if !supported[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			result.Issues = append(result.Issues, Issue{
				File:     relPath,
				Severity: "error",
				Message:  fmt.Sprintf("read error: %v", err),
			})
			return nil
		}

		_, lang := w.parserFor(path)
		boundaries, err := w.Scan(path, content)
		if err != nil {
			result.Issues = append(result.Issues, Issue{
				File:     relPath,
				Language: lang,
				Severity: "error",
				Message:  fmt.Sprintf("parse error: %v", err),
			})
			return nil
		}
		if len(boundaries) == 0 {
			return nil
		}

		result.Files = append(result.Files, FileBoundaries{
			Path:       relPath,
			Language:   lang,
			Boundaries: boundaries,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	return result, nil
}

func relativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
