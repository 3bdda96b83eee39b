// Package fileutil provides file and path helpers shared by the converter and the CLI.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// tempPattern prefixes every temporary file so leftovers are easy to spot in $TMPDIR.
const tempPattern = "policypdf-*."

// WriteTempFile stores content in a new policypdf-*.<extension> file under
// os.TempDir. The returned cleanup removes the file; callers defer it.
func WriteTempFile(content, extension string) (string, func(), error) {
	if err := ValidateExtension(extension); err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", tempPattern+extension)
	if err != nil {
		return "", nil, fmt.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	remove := func() { _ = os.Remove(path) }

	_, err = io.WriteString(f, content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		remove()
		return "", nil, fmt.Errorf("writing temp file %s: %w", path, err)
	}

	return path, remove, nil
}

// ValidateExtension rejects extensions that could escape the temp directory.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if s contains a path separator.
//
//   - "policypdf"            -> false (name)
//   - "./policypdf.yaml"     -> true
//   - "C:\cfg\policypdf.yml" -> true
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// Kilobytes converts a byte count to kilobytes (1 KB = 1024 bytes).
func Kilobytes(size int64) float64 {
	return float64(size) / 1024
}
