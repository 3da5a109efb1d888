package cli

import (
	"time"

	"codeberg.org/snonux/wordenrich/internal/dictionary"
	"codeberg.org/snonux/wordenrich/internal/pacing"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	InputFile  string
	OutputFile string
	Archive    bool

	// Dictionary flags
	BaseURL    string
	Delay      time.Duration
	PacingMode string
	Timeout    time.Duration

	// Logging flags
	LogLevel string
	LogJSON  bool

	// Anki export flags
	GenerateAnki bool
	AnkiCSV      bool
	DeckName     string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		InputFile:  "words.json",
		OutputFile: "updated_words.json",
		BaseURL:    dictionary.DefaultBaseURL,
		Delay:      pacing.DefaultDelay,
		PacingMode: pacing.ModeFixed,
		LogLevel:   "info",
		DeckName:   "Vocabulary",
	}
}
