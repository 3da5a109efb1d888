package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/wordenrich/internal"
	"codeberg.org/snonux/wordenrich/internal/anki"
	"codeberg.org/snonux/wordenrich/internal/cli"
	"codeberg.org/snonux/wordenrich/internal/dictionary"
	"codeberg.org/snonux/wordenrich/internal/output"
	"codeberg.org/snonux/wordenrich/internal/pacing"
	"codeberg.org/snonux/wordenrich/internal/wordlist"
)

// Lookuper fetches the dictionary record of a single word. A nil record with
// a nil error means the dictionary has no entry for the word.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (*dictionary.WordRecord, error)
}

// Result is the outcome of one pass over a word list.
type Result struct {
	Records []dictionary.WordRecord
	Total   int
	Found   int
	Missed  int
	Failed  int
	Elapsed time.Duration
}

// Processor handles the main word processing logic
type Processor struct {
	flags  *cli.Flags
	lookup Lookuper
	pacer  pacing.Pacer
	log    zerolog.Logger
	now    func() time.Time
	out    io.Writer
}

// Option customizes a Processor.
type Option func(*Processor)

// WithPacer replaces the fixed delay derived from the flags.
func WithPacer(pacer pacing.Pacer) Option {
	return func(p *Processor) { p.pacer = pacer }
}

// WithClock replaces time.Now for elapsed time measurement.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// WithOutput redirects the run summary, which goes to stdout by default.
func WithOutput(w io.Writer) Option {
	return func(p *Processor) { p.out = w }
}

// NewProcessor creates a new word processor
func NewProcessor(flags *cli.Flags, lookup Lookuper, logger zerolog.Logger, opts ...Option) *Processor {
	p := &Processor{
		flags:  flags,
		lookup: lookup,
		pacer:  pacing.NewFixedDelay(flags.Delay),
		log:    logger,
		now:    time.Now,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessBatch guards the configured paths, enriches every word of the input
// list and writes the records to the output file. Guard and write failures
// are returned; lookup failures only show up in the log and the summary.
func (p *Processor) ProcessBatch(ctx context.Context) (Result, error) {
	words, err := wordlist.Guard(p.flags.InputFile, p.flags.OutputFile)
	if err != nil {
		return Result{}, err
	}

	p.log.Info().
		Str("input", p.flags.InputFile).
		Int("words", len(words)).
		Dur("delay", p.flags.Delay).
		Str("pacing", p.flags.PacingMode).
		Msg("starting enrichment")

	result, err := p.ProcessWords(ctx, words)
	if err != nil {
		return result, err
	}

	p.PrintSummary(result)

	if err := output.WriteJSON(p.flags.OutputFile, result.Records); err != nil {
		p.log.Error().Err(err).Str("output", p.flags.OutputFile).Msg("error writing updated data to file")
		return result, err
	}

	p.log.Info().
		Str("output", p.flags.OutputFile).
		Int("records", len(result.Records)).
		Msg("updated data successfully written to file")

	return result, nil
}

// ProcessWords looks every word up in input order and pauses after each
// lookup, the last one included. A failed or empty lookup skips the word and
// never stops the loop. The only error is a cancelled context.
func (p *Processor) ProcessWords(ctx context.Context, words []string) (Result, error) {
	start := p.now()
	result := Result{
		Records: make([]dictionary.WordRecord, 0, len(words)),
		Total:   len(words),
	}

	for i, word := range words {
		record, err := p.lookup.Lookup(ctx, word)
		switch {
		case err != nil:
			p.log.Error().Err(err).Str("word", word).Msg("error fetching data for word")
			result.Failed++
		case record == nil:
			p.log.Warn().Str("word", word).Msg("no data found for word")
			result.Missed++
		default:
			result.Records = append(result.Records, *record)
			result.Found++
		}

		if err := p.pacer.Wait(ctx); err != nil {
			result.Elapsed = p.now().Sub(start)
			return result, fmt.Errorf("enrichment interrupted after %d/%d words: %w", i+1, len(words), err)
		}

		p.log.Info().Msgf("processed word %d/%d", i+1, len(words))
	}

	result.Elapsed = p.now().Sub(start)
	return result, nil
}

// PrintSummary prints the run statistics.
func (p *Processor) PrintSummary(result Result) {
	fmt.Fprintf(p.out, "\n=== Enrichment Summary ===\n")
	fmt.Fprintf(p.out, "Total words: %d\n", result.Total)
	fmt.Fprintf(p.out, "Found: %d\n", result.Found)
	fmt.Fprintf(p.out, "No data: %d\n", result.Missed)
	if result.Failed > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", result.Failed)
	}
	fmt.Fprintf(p.out, "Completed in %s. Processed %d words.\n", FormatElapsed(result.Elapsed), result.Total)
	fmt.Fprintf(p.out, "==========================\n")
}

// FormatElapsed renders d as whole minutes and seconds, e.g. "1m 5s".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// GenerateAnkiFile exports records as an Anki deck next to the output file
// and returns the path written.
func (p *Processor) GenerateAnkiFile(records []dictionary.WordRecord) (string, error) {
	outputDir := filepath.Dir(p.flags.OutputFile)

	gen := anki.NewGenerator(&anki.GeneratorOptions{
		OutputPath:     filepath.Join(outputDir, "anki_import.csv"),
		IncludeHeaders: true,
	})
	for _, record := range records {
		gen.AddRecord(record)
	}

	var outputPath string
	if p.flags.AnkiCSV {
		outputPath = filepath.Join(outputDir, "anki_import.csv")
		if err := gen.GenerateCSV(); err != nil {
			return "", fmt.Errorf("failed to generate CSV: %w", err)
		}
	} else {
		name := internal.SanitizeFilename(p.flags.DeckName)
		if name == "" {
			name = "deck"
		}
		outputPath = filepath.Join(outputDir, name+".apkg")
		if err := gen.GenerateAPKG(outputPath, p.flags.DeckName); err != nil {
			return "", fmt.Errorf("failed to generate APKG: %w", err)
		}
	}

	total, withPronunciation, withDefinitions := gen.Stats()
	p.log.Info().
		Str("path", outputPath).
		Int("cards", total).
		Int("with_pronunciation", withPronunciation).
		Int("with_definitions", withDefinitions).
		Msg("generated anki export")

	return outputPath, nil
}
