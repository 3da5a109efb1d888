package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// FakeDictionary stands in for the dictionary API. Words with a canned body
// get that body, words marked broken get their connection dropped, and every
// other word gets an empty array.
type FakeDictionary struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses map[string]string
	broken    map[string]bool
	calls     []string
}

// NewFakeDictionary starts a fake dictionary server that is closed when the
// test ends.
func NewFakeDictionary(t *testing.T, responses map[string]string) *FakeDictionary {
	t.Helper()

	f := &FakeDictionary{
		responses: responses,
		broken:    make(map[string]bool),
	}
	if f.responses == nil {
		f.responses = make(map[string]string)
	}

	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to hand to the dictionary client.
func (f *FakeDictionary) URL() string {
	return f.Server.URL
}

// Break makes every lookup of word fail at the transport level.
func (f *FakeDictionary) Break(word string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broken[word] = true
}

// Calls returns the looked up words in request order.
func (f *FakeDictionary) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeDictionary) handle(w http.ResponseWriter, r *http.Request) {
	word := strings.TrimPrefix(r.URL.Path, "/")

	f.mu.Lock()
	f.calls = append(f.calls, word)
	body, ok := f.responses[word]
	broken := f.broken[word]
	f.mu.Unlock()

	if broken {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				conn.Close()
				return
			}
		}
		http.Error(w, "broken", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		body = "[]"
	}
	w.Write([]byte(body))
}
