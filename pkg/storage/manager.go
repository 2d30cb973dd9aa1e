package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Manager handles the output directory tree: one subdirectory per album,
// one .jpg file per downloaded photo.
type Manager struct {
	rootDir string
}

// NewManager creates a storage manager rooted at the output directory
func NewManager(rootDir string) (*Manager, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Manager{rootDir: rootDir}, nil
}

// FolderName derives an album's directory name from its title: runs of
// whitespace become a single "-". "sunt aut facere" -> "sunt-aut-facere".
func FolderName(title string) string {
	return strings.Join(strings.Fields(title), "-")
}

// EnsureAlbumDir creates an album's directory if it doesn't exist
func (m *Manager) EnsureAlbumDir(folder string) error {
	if err := os.MkdirAll(filepath.Join(m.rootDir, folder), 0755); err != nil {
		return fmt.Errorf("failed to create album directory %q: %w", folder, err)
	}
	return nil
}

// PhotoPath returns the file path for a photo within an album folder
func (m *Manager) PhotoPath(folder string, photoID int) string {
	return filepath.Join(m.rootDir, folder, fmt.Sprintf("%d.jpg", photoID))
}

// PhotoExists reports whether a photo's file is present on disk
func (m *Manager) PhotoExists(folder string, photoID int) bool {
	_, err := os.Stat(m.PhotoPath(folder, photoID))
	return err == nil
}

// SavePhoto writes a photo from the given reader to its album folder.
// The data lands in a temporary file first and is renamed into place, so
// a crash never leaves a truncated photo behind.
func (m *Manager) SavePhoto(r io.Reader, folder string, photoID int) error {
	filename := m.PhotoPath(folder, photoID)

	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	_, err = io.Copy(out, r)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to save photo data: %w", err)
	}

	if closeErr != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

// RootDir returns the output root directory path
func (m *Manager) RootDir() string {
	return m.rootDir
}
