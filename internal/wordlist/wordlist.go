package wordlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Guard runs the pre-flight checks in order: the word list first, then the
// output path. It returns the parsed words when both pass.
func Guard(inputPath, outputPath string) ([]string, error) {
	words, err := Read(inputPath)
	if err != nil {
		return nil, err
	}
	if err := CheckOutput(outputPath); err != nil {
		return nil, err
	}
	return words, nil
}

// Read loads a JSON array of words. An empty array (or null) is a valid,
// empty list.
func Read(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Path: path, Err: ErrInputMissing}
		}
		return nil, &ConfigError{Path: path, Err: err}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("failed to read word list: %w", err)}
	}

	if !json.Valid(bytes.TrimSpace(content)) {
		return nil, &ConfigError{Path: path, Err: ErrInputInvalid}
	}

	var words []string
	if err := json.Unmarshal(content, &words); err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("%w: expected an array of strings: %v", ErrInputInvalid, err)}
	}
	if words == nil {
		words = []string{}
	}

	return words, nil
}

// CheckOutput fails when something already exists at path.
func CheckOutput(path string) error {
	_, err := os.Lstat(path)
	if err == nil {
		return &ConflictError{Path: path}
	}
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return &ConfigError{Path: path, Err: fmt.Errorf("failed to check output file: %w", err)}
}
