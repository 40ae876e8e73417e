package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestDirectorySnapshot(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"main.go",
		"README.md",
		"src/parser.go",
		"src/util/helpers.go",
		".hidden/secret.txt",
		".hiddenfile",
	)

	snapshot := DirectorySnapshot(root, 2)

	for _, want := range []string{"main.go", "README.md", "src/", "parser.go", "util/", "helpers.go"} {
		if !strings.Contains(snapshot, want) {
			t.Errorf("snapshot missing %q:\n%s", want, snapshot)
		}
	}
	for _, banned := range []string{".hidden", "secret.txt", ".hiddenfile"} {
		if strings.Contains(snapshot, banned) {
			t.Errorf("snapshot leaked hidden entry %q:\n%s", banned, snapshot)
		}
	}
}

func TestDirectorySnapshotDepthLimit(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/b/c/deep.txt", "a/shallow.txt")

	snapshot := DirectorySnapshot(root, 1)

	if !strings.Contains(snapshot, "shallow.txt") {
		t.Errorf("depth-1 snapshot missing level-1 file:\n%s", snapshot)
	}
	if strings.Contains(snapshot, "deep.txt") || strings.Contains(snapshot, "c/") {
		t.Errorf("depth-1 snapshot descended too far:\n%s", snapshot)
	}
}

func TestDirectorySnapshotFileOverflow(t *testing.T) {
	root := t.TempDir()
	var names []string
	for i := 0; i < MaxFilesPerDir+5; i++ {
		names = append(names, fmt.Sprintf("file%02d.txt", i))
	}
	writeFiles(t, root, names...)

	snapshot := DirectorySnapshot(root, 1)

	if !strings.Contains(snapshot, "(5 more files)") {
		t.Errorf("overflow marker missing:\n%s", snapshot)
	}
	if strings.Contains(snapshot, fmt.Sprintf("file%02d.txt", MaxFilesPerDir)) {
		t.Errorf("files past the cap were listed:\n%s", snapshot)
	}
}

func TestDirectorySnapshotSummary(t *testing.T) {
	root := t.TempDir()
	var names []string
	for i := 0; i < SummaryThreshold+1; i++ {
		names = append(names, fmt.Sprintf("dir%02d/file%03d.txt", i%20, i))
	}
	writeFiles(t, root, names...)

	snapshot := DirectorySnapshot(root, 2)
	if !strings.Contains(snapshot, "Directory summary:") {
		t.Errorf("summary line missing for large tree:\n%s", snapshot)
	}
	if !strings.Contains(snapshot, "21 directories") {
		t.Errorf("summary should count 21 directories (root + 20):\n%s", snapshot)
	}
}

func TestDirectorySnapshotDeterministic(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "b.txt", "a.txt", "sub/z.txt", "sub/a.txt")

	first := DirectorySnapshot(root, 2)
	second := DirectorySnapshot(root, 2)
	if first != second {
		t.Error("snapshot differs between runs on an unchanged tree")
	}
}

func TestTruncateName(t *testing.T) {
	short := "short.txt"
	if got := truncateName(short); got != short {
		t.Errorf("truncateName(%q) = %q", short, got)
	}

	long := strings.Repeat("a", MaxFilenameLength+10) + ".txt"
	got := truncateName(long)
	if len(got) != MaxFilenameLength {
		t.Errorf("truncated length = %d, want %d", len(got), MaxFilenameLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated name missing ellipsis: %q", got)
	}
}
