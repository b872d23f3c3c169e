// Package scan finds transcript export files on disk.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Export is one candidate transcript file.
type Export struct {
	Path    string
	Mtime   int64
	Size    int64
	Matched bool // name looked like a Claude Code export
}

// dateRe matches the YYYY-MM-DD stamp the CLI puts in export filenames.
var dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// nameHints are substrings that mark a .txt file as a likely export even
// without a date stamp.
var nameHints = []string{"export", "command", "message"}

// Discover returns the likely exports in dir, newest first. When nothing in
// the directory looks like an export, every .txt file is returned instead
// so the user can still pick one.
func Discover(dir string) ([]Export, error) {
	all, err := listTxt(dir)
	if err != nil {
		return nil, err
	}

	var matched []Export
	for _, e := range all {
		if e.Matched {
			matched = append(matched, e)
		}
	}
	if len(matched) > 0 {
		return matched, nil
	}
	return all, nil
}

// All returns every .txt file in dir, newest first, match or not.
func All(dir string) ([]Export, error) {
	return listTxt(dir)
}

func listTxt(dir string) ([]Export, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read exports dir: %w", err)
	}

	var exports []Export
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".txt" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		exports = append(exports, Export{
			Path:    filepath.Join(dir, entry.Name()),
			Mtime:   info.ModTime().Unix(),
			Size:    info.Size(),
			Matched: looksLikeExport(entry.Name()),
		})
	}

	sort.Slice(exports, func(i, j int) bool {
		return exports[i].Mtime > exports[j].Mtime
	})
	return exports, nil
}

func looksLikeExport(name string) bool {
	lower := strings.ToLower(name)
	if dateRe.MatchString(lower) {
		return true
	}
	for _, hint := range nameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
