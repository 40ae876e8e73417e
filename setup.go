package main

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	onnxRuntimeVersion = "1.16.3"

	// BGE-small sentence encoder used for example retrieval
	embedModelURL     = "https://huggingface.co/BAAI/bge-small-en-v1.5/resolve/main/onnx/model.onnx"
	embedTokenizerURL = "https://huggingface.co/BAAI/bge-small-en-v1.5/resolve/main/tokenizer.json"

	// maxExtractSize bounds archive extraction against decompression bombs
	maxExtractSize = 100 * 1024 * 1024
)

// SetupRetrieval downloads the ONNX runtime library and the embedding
// model so example retrieval can use real semantic similarity.
// progressFn receives status messages as the stages complete.
func SetupRetrieval(progressFn func(string)) error {
	if err := ensureONNXRuntime(progressFn); err != nil {
		return err
	}
	return ensureEmbedModel(progressFn)
}

// ensureONNXRuntime downloads and installs the runtime library if missing
func ensureONNXRuntime(progressFn func(string)) error {
	if isONNXAvailable() {
		return nil
	}

	libDir, err := onnxLibDir()
	if err != nil {
		return fmt.Errorf("cannot determine lib directory: %w", err)
	}

	libPath := filepath.Join(libDir, expectedLibName())
	if _, err := os.Stat(libPath); err == nil {
		return nil
	}

	url, archiveType := onnxDownloadURL()
	if progressFn != nil {
		progressFn(fmt.Sprintf("Downloading ONNX Runtime v%s...", onnxRuntimeVersion))
	}

	tmpPath, err := downloadToTemp(url, progressFn)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	if err := os.MkdirAll(libDir, 0750); err != nil {
		return fmt.Errorf("failed to create lib directory: %w", err)
	}

	if progressFn != nil {
		progressFn("Extracting...")
	}
	if archiveType == "zip" {
		err = extractLibZip(tmpPath, libDir)
	} else {
		err = extractLibTarGz(tmpPath, libDir)
	}
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if progressFn != nil {
		progressFn("ONNX Runtime installed")
	}
	return nil
}

// ensureEmbedModel downloads the sentence encoder and its tokenizer
func ensureEmbedModel(progressFn func(string)) error {
	dir := DefaultModelDir()
	if dir == "" {
		return fmt.Errorf("cannot determine model directory")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}

	files := []struct {
		url  string
		name string
	}{
		{embedModelURL, "model.onnx"},
		{embedTokenizerURL, "tokenizer.json"},
	}

	for _, f := range files {
		dest := filepath.Join(dir, f.name)
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		if progressFn != nil {
			progressFn(fmt.Sprintf("Downloading %s...", f.name))
		}
		if err := downloadFile(f.url, dest); err != nil {
			return fmt.Errorf("download %s: %w", f.name, err)
		}
	}

	if progressFn != nil {
		progressFn("Embedding model ready")
	}
	return nil
}

// onnxDownloadURL returns the runtime archive URL for the current platform
func onnxDownloadURL() (string, string) {
	base := "https://github.com/microsoft/onnxruntime/releases/download/v" + onnxRuntimeVersion

	switch runtime.GOOS {
	case "windows":
		return base + "/onnxruntime-win-x64-" + onnxRuntimeVersion + ".zip", "zip"
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return base + "/onnxruntime-osx-arm64-" + onnxRuntimeVersion + ".tgz", "tgz"
		}
		return base + "/onnxruntime-osx-x86_64-" + onnxRuntimeVersion + ".tgz", "tgz"
	default: // linux
		if runtime.GOARCH == "arm64" {
			return base + "/onnxruntime-linux-aarch64-" + onnxRuntimeVersion + ".tgz", "tgz"
		}
		return base + "/onnxruntime-linux-x64-" + onnxRuntimeVersion + ".tgz", "tgz"
	}
}

func onnxLibDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cmdgen", "lib"), nil
}

func expectedLibName() string {
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "darwin":
		return "libonnxruntime.dylib"
	default:
		return "libonnxruntime.so"
	}
}

// downloadToTemp fetches a URL into a temp file and returns its path
func downloadToTemp(url string, progressFn func(string)) (string, error) {
	tmpFile, err := os.CreateTemp("", "cmdgen-dl-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	resp, err := http.Get(url) //nolint:gosec // URL is hardcoded
	if err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	if progressFn != nil && resp.ContentLength > 0 {
		progressFn(fmt.Sprintf("Downloading %.1f MB...", float64(resp.ContentLength)/(1024*1024)))
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("download failed: %w", err)
	}
	_ = tmpFile.Close()
	return tmpPath, nil
}

// downloadFile fetches a URL directly to dest
func downloadFile(url, dest string) error {
	resp, err := http.Get(url) //nolint:gosec // URL is hardcoded
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	_, err = io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

// extractLibZip pulls library files out of a zip archive
func extractLibZip(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	for _, f := range r.File {
		if !strings.Contains(f.Name, "/lib/") {
			continue
		}
		name := filepath.Base(f.Name)
		if !isLibraryFile(name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeLimited(filepath.Join(destDir, name), rc)
		_ = rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// extractLibTarGz pulls library files out of a tar.gz archive
func extractLibTarGz(tgzPath, destDir string) error {
	f, err := os.Open(tgzPath)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return err
	}
	defer func() { _ = gzr.Close() }()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if header.Typeflag == tar.TypeDir || !strings.Contains(header.Name, "/lib/") {
			continue
		}
		name := filepath.Base(header.Name)
		if !isLibraryFile(name) {
			continue
		}
		if err := writeLimited(filepath.Join(destDir, name), tr); err != nil {
			return err
		}
	}
	return nil
}

// writeLimited copies at most maxExtractSize bytes to dest
func writeLimited(dest string, r io.Reader) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	_, err = io.CopyN(out, r, maxExtractSize)
	if err == io.EOF {
		err = nil
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

// isLibraryFile reports whether name is a shared library worth extracting
func isLibraryFile(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.HasSuffix(name, ".dll") || strings.HasSuffix(name, ".dylib") {
		return true
	}
	return strings.HasPrefix(name, "libonnxruntime") && strings.Contains(name, ".so")
}
