package archive

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	outputFile := filepath.Join(tmpDir, "updated_words.json")
	content := []byte(`[{"word":"hello"}]`)
	if err := os.WriteFile(outputFile, content, 0644); err != nil {
		t.Fatalf("Failed to create output file: %v", err)
	}

	archivePath, err := ArchiveFile(outputFile)
	if err != nil {
		t.Fatalf("ArchiveFile failed: %v", err)
	}

	// Check that the output file no longer exists
	if _, err := os.Stat(outputFile); !os.IsNotExist(err) {
		t.Error("Output file still exists after archiving")
	}

	if filepath.Dir(archivePath) != filepath.Join(tmpDir, DirName) {
		t.Errorf("Archived into %s, want %s", filepath.Dir(archivePath), filepath.Join(tmpDir, DirName))
	}

	pattern := regexp.MustCompile(`^updated_words-\d{8}-\d{6}\.json$`)
	if !pattern.MatchString(filepath.Base(archivePath)) {
		t.Errorf("Unexpected archive name: %s", filepath.Base(archivePath))
	}

	data, err := os.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("Failed to read archived file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("Archived content = %q, want %q", data, content)
	}
}

func TestArchiveFile_SameSecond(t *testing.T) {
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "out.json")

	var archived []string
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(outputFile, []byte("[]"), 0644); err != nil {
			t.Fatalf("Failed to create output file: %v", err)
		}
		path, err := ArchiveFile(outputFile)
		if err != nil {
			t.Fatalf("ArchiveFile #%d failed: %v", i+1, err)
		}
		archived = append(archived, path)
	}

	if archived[0] == archived[1] {
		t.Errorf("Expected distinct archive paths, got %s twice", archived[0])
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, DirName))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 archived files, got %d", len(entries))
	}
}

func TestArchiveFile_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"missing file", filepath.Join(tmpDir, "missing.json"), "does not exist"},
		{"directory", tmpDir, "refusing to archive directory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ArchiveFile(tt.path)
			if err == nil {
				t.Fatal("Expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"updated_words.json", "updated_words-20240101-120000.json"},
		{"/tmp/out", "out-20240101-120000"},
		{"dir/archive.tar.gz", "archive.tar-20240101-120000.gz"},
	}

	for _, tt := range tests {
		if got := archiveName(tt.path, "20240101-120000"); got != tt.want {
			t.Errorf("archiveName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
