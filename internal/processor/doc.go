// Package processor runs the enrichment pipeline. It guards the input and
// output paths, looks every word up in order with a fixed pause after each
// lookup, prints the run summary, writes the enriched records and can export
// them as an Anki deck.
package processor
