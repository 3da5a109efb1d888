package dictionary

import (
	"encoding/json"
	"strings"
)

// syllableMarker separates syllables in the headword ("hel*lo").
const (
	syllableMarker    = "*"
	syllableSeparator = " - "
)

// apiEntry is the subset of a collegiate entry we read. Every field is
// optional and kept raw, so a value of the wrong type falls back to its
// default instead of failing the whole entry.
type apiEntry struct {
	Hwi      json.RawMessage `json:"hwi"`
	Fl       json.RawMessage `json:"fl"`
	Shortdef json.RawMessage `json:"shortdef"`
}

// apiHeadwordInfo holds the syllable-marked headword.
type apiHeadwordInfo struct {
	Hw json.RawMessage `json:"hw"`
}

// toRecord builds the record for word. Missing fields get their defaults:
// empty pronunciation, empty part of speech, empty definition list.
func (e *apiEntry) toRecord(word string) WordRecord {
	return WordRecord{
		Word:          word,
		Pronunciation: e.pronunciation(),
		PartOfSpeech:  rawString(e.Fl),
		Definition:    e.definitions(),
	}
}

func (e *apiEntry) pronunciation() string {
	var hwi apiHeadwordInfo
	if len(e.Hwi) == 0 || json.Unmarshal(e.Hwi, &hwi) != nil {
		return ""
	}
	return FormatPronunciation(rawString(hwi.Hw))
}

// rawString decodes raw as a JSON string, "" for anything else.
func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func (e *apiEntry) definitions() []string {
	defs := []string{}
	if len(e.Shortdef) == 0 {
		return defs
	}
	if err := json.Unmarshal(e.Shortdef, &defs); err != nil || defs == nil {
		return []string{}
	}
	return defs
}

// FormatPronunciation replaces the syllable markers of a headword with a
// readable separator.
func FormatPronunciation(headword string) string {
	return strings.ReplaceAll(headword, syllableMarker, syllableSeparator)
}

// parseSuggestions reads the plain string suggestions the API returns in
// place of entries when the word is unknown. Non-string elements are
// ignored.
func parseSuggestions(raw []json.RawMessage, limit int) []string {
	var out []string
	for _, r := range raw {
		if len(out) >= limit {
			break
		}
		var s string
		if err := json.Unmarshal(r, &s); err == nil && s != "" {
			out = append(out, s)
		}
	}
	return out
}
