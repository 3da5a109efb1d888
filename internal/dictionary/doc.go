// Package dictionary looks up single words in the Merriam-Webster
// Collegiate dictionary API and reduces the first matching entry to a
// WordRecord holding pronunciation, part of speech and short definitions.
package dictionary
