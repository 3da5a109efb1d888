package anki

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/wordenrich/internal/dictionary"
)

// Card represents a single Anki flashcard. The front shows the word and its
// pronunciation, the back the part of speech and the numbered definitions.
type Card struct {
	Word          string
	Pronunciation string
	PartOfSpeech  string
	Definitions   []string
}

// CardFromRecord converts an enriched word into a card.
func CardFromRecord(record dictionary.WordRecord) Card {
	return Card{
		Word:          record.Word,
		Pronunciation: record.Pronunciation,
		PartOfSpeech:  record.PartOfSpeech,
		Definitions:   append([]string(nil), record.Definition...),
	}
}

// GeneratorOptions configures the Anki export
type GeneratorOptions struct {
	OutputPath     string // Output CSV file path
	IncludeHeaders bool   // Include CSV headers
}

// DefaultGeneratorOptions returns sensible defaults
func DefaultGeneratorOptions() *GeneratorOptions {
	return &GeneratorOptions{
		OutputPath:     "anki_import.csv",
		IncludeHeaders: true,
	}
}

// Generator creates Anki-compatible import files
type Generator struct {
	options *GeneratorOptions
	cards   []Card
}

// NewGenerator creates a new Anki generator
func NewGenerator(options *GeneratorOptions) *Generator {
	if options == nil {
		options = DefaultGeneratorOptions()
	}
	return &Generator{
		options: options,
		cards:   make([]Card, 0),
	}
}

// AddCard adds a card to the collection
func (g *Generator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// AddRecord adds the card for an enriched word
func (g *Generator) AddRecord(record dictionary.WordRecord) {
	g.AddCard(CardFromRecord(record))
}

// GetCards returns a slice of all cards for modification
func (g *Generator) GetCards() []Card {
	return g.cards
}

// GenerateCSV creates a CSV file for Anki import
func (g *Generator) GenerateCSV() error {
	file, err := os.Create(g.options.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if g.options.IncludeHeaders {
		headers := []string{"Word", "Pronunciation", "Part of Speech", "Definitions"}
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for _, card := range g.cards {
		row := []string{
			card.Word,
			card.Pronunciation,
			card.PartOfSpeech,
			FormatDefinitions(card.Definitions),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write card: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// FormatDefinitions numbers the definitions and joins them with HTML line
// breaks, e.g. "1. first<br>2. second".
func FormatDefinitions(definitions []string) string {
	lines := make([]string, 0, len(definitions))
	for i, def := range definitions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, def))
	}
	return strings.Join(lines, "<br>")
}

// GenerateAPKG creates a proper .apkg file for Anki import
func (g *Generator) GenerateAPKG(outputPath, deckName string) error {
	apkgGen := NewAPKGGenerator(deckName)

	for _, card := range g.cards {
		apkgGen.AddCard(card)
	}

	return apkgGen.GenerateAPKG(outputPath)
}

// Stats returns statistics about the card collection
func (g *Generator) Stats() (totalCards, withPronunciation, withDefinitions int) {
	totalCards = len(g.cards)

	for _, card := range g.cards {
		if card.Pronunciation != "" {
			withPronunciation++
		}
		if len(card.Definitions) > 0 {
			withDefinitions++
		}
	}

	return
}
