package dictionary

import "fmt"

// StatusError is returned when the dictionary API answers with a non-200
// status code.
type StatusError struct {
	Word       string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("dictionary: lookup %q: unexpected status %d", e.Word, e.StatusCode)
	}
	return fmt.Sprintf("dictionary: lookup %q: unexpected status %d: %s", e.Word, e.StatusCode, e.Message)
}
