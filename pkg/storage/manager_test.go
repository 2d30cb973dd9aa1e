package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFolderName(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"sunt aut facere", "sunt-aut-facere"},
		{"quidem molestiae enim", "quidem-molestiae-enim"},
		{"single", "single"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"tabs\tand\nnewlines", "tabs-and-newlines"},
		{"double  spaces", "double-spaces"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := FolderName(tt.title); got != tt.expected {
				t.Errorf("FolderName(%q) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}
}

func TestManager(t *testing.T) {
	tempDir := t.TempDir()
	rootDir := filepath.Join(tempDir, "photos")

	manager, err := NewManager(rootDir)
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	// Root directory was created
	if _, err := os.Stat(rootDir); err != nil {
		t.Fatalf("Expected root directory to exist: %v", err)
	}

	// Photo does not exist yet
	if manager.PhotoExists("sunt-aut-facere", 1) {
		t.Error("Expected PhotoExists to return false before saving")
	}

	// Save a photo
	if err := manager.EnsureAlbumDir("sunt-aut-facere"); err != nil {
		t.Fatalf("Failed to create album directory: %v", err)
	}
	testData := []byte("test photo data")
	if err := manager.SavePhoto(bytes.NewReader(testData), "sunt-aut-facere", 1); err != nil {
		t.Fatalf("Failed to save photo: %v", err)
	}

	// Verify file path and content
	expectedPath := filepath.Join(rootDir, "sunt-aut-facere", "1.jpg")
	if expectedPath != manager.PhotoPath("sunt-aut-facere", 1) {
		t.Errorf("Unexpected photo path: %s", manager.PhotoPath("sunt-aut-facere", 1))
	}
	content, err := os.ReadFile(expectedPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(content, testData) {
		t.Error("File content does not match expected data")
	}

	if !manager.PhotoExists("sunt-aut-facere", 1) {
		t.Error("Expected PhotoExists to return true after saving")
	}

	// No temp file left behind
	if _, err := os.Stat(expectedPath + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temporary file to be gone after save")
	}
}

func TestEnsureAlbumDirIdempotent(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := manager.EnsureAlbumDir("repudiandae-iusto"); err != nil {
			t.Fatalf("EnsureAlbumDir failed on call %d: %v", i+1, err)
		}
	}
}
