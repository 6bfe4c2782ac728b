// Package security validates user-supplied file paths before they are written.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyPath     = errors.New("file path cannot be empty")
	ErrForbiddenChar = errors.New("file path contains a forbidden character")
	ErrIsDirectory   = errors.New("file path is a directory")
)

// dangerousChars contains shell metacharacters rejected in paths.
var dangerousChars = []string{";", "&", "|", "$", "`", "<", ">", "!", "\n", "\r"}

// ValidateFilePath cleans path, makes it absolute and resolves symlinks
// when the file already exists.
func ValidateFilePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return "", fmt.Errorf("%w %q: %s", ErrForbiddenChar, char, path)
		}
	}

	cleanPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}

	resolvedPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cleanPath, nil
		}
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	return resolvedPath, nil
}

// SafeWriteFile validates path and writes data to it, creating parent
// directories as needed. Existing directories are never overwritten.
func SafeWriteFile(path string, data []byte) (string, error) {
	cleanPath, err := ValidateFilePath(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, cleanPath)
	}
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o750); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	// #nosec G306 - exported calendars are meant to be shared
	if err := os.WriteFile(cleanPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return cleanPath, nil
}
