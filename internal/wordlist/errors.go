package wordlist

import (
	"errors"
	"fmt"
)

var (
	// ErrInputMissing means the word list file does not exist.
	ErrInputMissing = errors.New("word list file not found")
	// ErrInputInvalid means the word list is not a JSON array of strings.
	ErrInputInvalid = errors.New("word list is not valid JSON")
	// ErrOutputExists means the output file is already present.
	ErrOutputExists = errors.New("output file already exists")
)

// ConfigError reports an unusable word list.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ConflictError reports an output file that would be overwritten.
type ConflictError struct {
	Path string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s: %v, refusing to overwrite", e.Path, ErrOutputExists)
}

func (e *ConflictError) Unwrap() error { return ErrOutputExists }
