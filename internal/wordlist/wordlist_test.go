package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []string
		wantErr     error
	}{
		{
			name:        "word array",
			fileContent: `["hello", "world", "dictionary"]`,
			want:        []string{"hello", "world", "dictionary"},
		},
		{
			name:        "empty array",
			fileContent: `[]`,
			want:        []string{},
		},
		{
			name:        "null",
			fileContent: `null`,
			want:        []string{},
		},
		{
			name:        "pretty printed with trailing newline",
			fileContent: "[\n  \"apple\",\n  \"pear\"\n]\n",
			want:        []string{"apple", "pear"},
		},
		{
			name:        "duplicates are kept",
			fileContent: `["a", "a"]`,
			want:        []string{"a", "a"},
		},
		{
			name:        "empty file",
			fileContent: "",
			wantErr:     ErrInputInvalid,
		},
		{
			name:        "syntax error",
			fileContent: `["hello",`,
			wantErr:     ErrInputInvalid,
		},
		{
			name:        "object instead of array",
			fileContent: `{"words": ["hello"]}`,
			wantErr:     ErrInputInvalid,
		},
		{
			name:        "array of numbers",
			fileContent: `[1, 2, 3]`,
			wantErr:     ErrInputInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "words.json")
			if err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := Read(tmpFile)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Read() error = %v, want %v", err, tt.wantErr)
				}
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("Expected *ConfigError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrInputMissing) {
		t.Fatalf("Expected ErrInputMissing, got %v", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected *ConfigError, got %T", err)
	}
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()

	free := filepath.Join(dir, "updated_words.json")
	if err := CheckOutput(free); err != nil {
		t.Errorf("CheckOutput on missing file: %v", err)
	}

	taken := filepath.Join(dir, "taken.json")
	if err := os.WriteFile(taken, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	err := CheckOutput(taken)
	if !errors.Is(err, ErrOutputExists) {
		t.Fatalf("Expected ErrOutputExists, got %v", err)
	}
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected *ConflictError, got %T", err)
	}
	if conflict.Path != taken {
		t.Errorf("ConflictError.Path = %s, want %s", conflict.Path, taken)
	}
}

func TestGuard(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "words.json")
	output := filepath.Join(dir, "updated_words.json")

	if err := os.WriteFile(input, []byte(`["hello"]`), 0644); err != nil {
		t.Fatal(err)
	}

	words, err := Guard(input, output)
	if err != nil {
		t.Fatalf("Guard() error = %v", err)
	}
	if !reflect.DeepEqual(words, []string{"hello"}) {
		t.Errorf("Guard() words = %v", words)
	}

	// Guard must not create anything.
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Error("Guard created the output file")
	}
}

func TestGuard_ChecksInputBeforeOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "updated_words.json")
	if err := os.WriteFile(output, []byte("existing"), 0644); err != nil {
		t.Fatal(err)
	}

	// Both checks would fail; the input error wins.
	_, err := Guard(filepath.Join(dir, "missing.json"), output)
	if !errors.Is(err, ErrInputMissing) {
		t.Fatalf("Expected ErrInputMissing first, got %v", err)
	}
}

func TestGuard_OutputConflictLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "words.json")
	output := filepath.Join(dir, "updated_words.json")

	os.WriteFile(input, []byte(`["a", "b"]`), 0644)
	os.WriteFile(output, []byte("keep me"), 0644)

	_, err := Guard(input, output)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected *ConflictError, got %v", err)
	}

	data, _ := os.ReadFile(output)
	if string(data) != "keep me" {
		t.Errorf("Output file was modified: %q", data)
	}
}

func TestErrorMessages(t *testing.T) {
	cfg := &ConfigError{Path: "words.json", Err: ErrInputMissing}
	if cfg.Error() != "configuration error: words.json: word list file not found" {
		t.Errorf("unexpected ConfigError message: %s", cfg.Error())
	}

	conflict := &ConflictError{Path: "out.json"}
	if conflict.Error() != "conflict: out.json: output file already exists, refusing to overwrite" {
		t.Errorf("unexpected ConflictError message: %s", conflict.Error())
	}
}
