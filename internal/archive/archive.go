// Package archive moves a previous output file out of the way so a new run
// can write to the same path.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DirName is the directory created next to the archived file.
const DirName = "archive"

// ArchiveFile moves path into an archive directory beside it, named
// <base>-<timestamp><ext>, and returns the new location.
func ArchiveFile(path string) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("refusing to archive directory: %s", path)
	}

	archiveDir := filepath.Join(filepath.Dir(path), DirName)
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	now := time.Now()
	archivePath := filepath.Join(archiveDir, archiveName(path, now.Format("20060102-150405")))

	// Two archives within the same second
	if _, err := os.Lstat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, archiveName(path, now.Format("20060102-150405.000000")))
		if _, err := os.Lstat(archivePath); err == nil {
			return "", fmt.Errorf("archive target already exists: %s", archivePath)
		}
	}

	if err := os.Rename(path, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", path, err)
	}

	return archivePath, nil
}

func archiveName(path, timestamp string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return fmt.Sprintf("%s-%s%s", strings.TrimSuffix(base, ext), timestamp, ext)
}
