package dictionary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the Merriam-Webster Collegiate entry endpoint.
	DefaultBaseURL = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"

	maxSuggestions  = 5
	maxErrorBodyLen = 512
)

// Config holds the dictionary client settings
type Config struct {
	BaseURL string        // Entry endpoint, the word is appended as a path segment
	APIKey  string        // Pre-shared key sent as the "key" query parameter
	Timeout time.Duration // Per-request timeout, 0 keeps the transport default (none)
}

// DefaultConfig returns the configuration for the public API without a key
func DefaultConfig() *Config {
	return &Config{
		BaseURL: DefaultBaseURL,
	}
}

// Client performs single-word lookups against the dictionary API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a new dictionary client
func NewClient(config *Config, logger zerolog.Logger) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		log: logger.With().Str("component", "dictionary").Logger(),
	}
}

// Lookup fetches the first dictionary entry for word.
// It returns nil, nil when the API has no entry for the word (empty body,
// empty array, or a list of spelling suggestions).
func (c *Client) Lookup(ctx context.Context, word string) (*WordRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.entryURL(word), nil)
	if err != nil {
		return nil, fmt.Errorf("dictionary: create request: %w", err)
	}

	c.log.Debug().Str("word", word).Msg("dictionary request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return nil, &StatusError{
			Word:       word,
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("dictionary: read body: %w", err)
	}

	return c.parse(word, body)
}

// parse decodes a response body into a record.
func (c *Client) parse(word string, body []byte) (*WordRecord, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("dictionary: decode json: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	first := bytes.TrimSpace(raw[0])
	if len(first) == 0 || first[0] != '{' {
		if suggestions := parseSuggestions(raw, maxSuggestions); len(suggestions) > 0 {
			c.log.Warn().
				Str("word", word).
				Strs("suggestions", suggestions).
				Msg("no entry, dictionary offered suggestions")
		}
		return nil, nil
	}

	var entry apiEntry
	if err := json.Unmarshal(first, &entry); err != nil {
		return nil, fmt.Errorf("dictionary: decode entry: %w", err)
	}

	record := entry.toRecord(word)
	c.log.Debug().
		Str("word", word).
		Str("part_of_speech", record.PartOfSpeech).
		Int("definitions", len(record.Definition)).
		Msg("dictionary response")

	return &record, nil
}

// entryURL builds {baseURL}/{word}?key={apiKey}.
func (c *Client) entryURL(word string) string {
	reqURL := c.baseURL + "/" + url.PathEscape(word)
	if c.apiKey != "" {
		params := url.Values{}
		params.Set("key", c.apiKey)
		reqURL += "?" + params.Encode()
	}
	return reqURL
}
