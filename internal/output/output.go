// Package output persists the enriched word records.
package output

import (
	"encoding/json"
	"fmt"
	"os"

	"codeberg.org/snonux/wordenrich/internal/dictionary"
)

// WriteJSON writes records as a 2-space indented JSON array. The file is
// created exclusively, so an existing file is never overwritten. A nil or
// empty slice is written as [].
func WriteJSON(path string, records []dictionary.WordRecord) error {
	if records == nil {
		records = []dictionary.WordRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	data = append(data, '\n')

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	return nil
}
