package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Snapshot bounds. The snapshot only enriches the generator prompt, so
// it trades completeness for a predictable size.
const (
	MaxFilesPerDir    = 10  // Files listed per directory before collapsing
	MaxFilenameLength = 30  // Longer names are truncated with "..."
	SummaryThreshold  = 100 // Above this many files, append a count-only summary
)

// DirectorySnapshot returns a token-efficient textual summary of the
// working tree rooted at root, down to maxDepth levels. Hidden entries
// are skipped; entries come back in lexical order, so the output is
// deterministic for an unchanged tree.
func DirectorySnapshot(root string, maxDepth int) string {
	var structure []string
	totalFiles := 0
	totalDirs := 0

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are simply omitted
		}
		if !d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil //nolint:nilerr
		}

		level := 0
		if rel != "." {
			level = strings.Count(rel, string(os.PathSeparator)) + 1
		}

		name := d.Name()
		if rel == "." {
			name = filepath.Base(root)
			if name == "" || name == "." || name == string(os.PathSeparator) {
				name = "."
			}
		}

		if strings.HasPrefix(name, ".") && rel != "." {
			return filepath.SkipDir
		}
		if maxDepth >= 0 && level > maxDepth {
			return filepath.SkipDir
		}

		indent := strings.Repeat("    ", level)
		structure = append(structure, indent+name+"/")
		totalDirs++

		files := listFiles(path)
		totalFiles += len(files)

		shown := files
		var overflow int
		if len(files) > MaxFilesPerDir {
			shown = files[:MaxFilesPerDir]
			overflow = len(files) - MaxFilesPerDir
		}

		subIndent := strings.Repeat("    ", level+1)
		for _, f := range shown {
			structure = append(structure, subIndent+truncateName(f))
		}
		if overflow > 0 {
			structure = append(structure, fmt.Sprintf("%s... (%d more files)", subIndent, overflow))
		}

		return nil
	})

	if totalFiles > SummaryThreshold {
		structure = append(structure,
			fmt.Sprintf("\nDirectory summary: %d total files across %d directories", totalFiles, totalDirs))
	}

	return strings.Join(structure, "\n")
}

// listFiles returns the visible file names directly under dir
func listFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, e.Name())
	}
	return files
}

// truncateName shortens a filename past the display limit
func truncateName(name string) string {
	if len(name) <= MaxFilenameLength {
		return name
	}
	return name[:MaxFilenameLength-3] + "..."
}
