package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	testDir := filepath.Join(t.TempDir(), "nested", "out")

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if info, err := os.Stat(testDir); err != nil || !info.IsDir() {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}
	if filepath.Base(downloadsDir) != "Downloads" && downloadsDir != "/sdcard/Download" {
		t.Errorf("Unexpected downloads directory: %s", downloadsDir)
	}
}

func TestDefaultOutputDir(t *testing.T) {
	dir, err := DefaultOutputDir()
	if err != nil {
		t.Fatalf("DefaultOutputDir failed: %v", err)
	}
	if filepath.Base(dir) != OutputFolderName {
		t.Errorf("Expected %q folder, got %s", OutputFolderName, dir)
	}
}

func TestOpen_MissingPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent.png")

	tests := []struct {
		name string
		open func(string) error
	}{
		{"OpenFileInManager", OpenFileInManager},
		{"OpenDirectory", OpenDirectory},
		{"OpenFileWithDefaultApp", OpenFileWithDefaultApp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.open(missing); !errors.Is(err, ErrFileNotFound) {
				t.Errorf("Expected ErrFileNotFound, got %v", err)
			}
			if err := tt.open(""); !errors.Is(err, ErrFileNotFound) {
				t.Errorf("Expected ErrFileNotFound for empty path, got %v", err)
			}
		})
	}
}
