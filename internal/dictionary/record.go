package dictionary

// WordRecord is the enriched form of one input word. Field order is the
// serialized key order.
type WordRecord struct {
	Word          string   `json:"word"`
	Pronunciation string   `json:"pronunciation"`
	PartOfSpeech  string   `json:"partOfSpeech"`
	Definition    []string `json:"definition"`
}
