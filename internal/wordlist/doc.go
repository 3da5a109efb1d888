// Package wordlist reads the JSON word list and guards the preconditions
// of a run: the input must exist and parse, the output must not exist yet.
package wordlist
