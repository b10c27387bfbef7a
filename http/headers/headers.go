package headers

import "strings"

// Header is a single key-value pair, as it's rendered into a response.
type Header struct {
	Key   string
	Value string
}

// Headers is the request headers map. Keys are always stored lowercased, so any
// spelling of a name finds the same entry. A repeated name overrides the previous
// value.
type Headers map[string]string

func New() Headers {
	return make(Headers)
}

// Set stores the value, replacing the previous one if any.
func (h Headers) Set(key, value string) {
	h[strings.ToLower(key)] = value
}

// Value returns the value of the header, or an empty string if it's not presented.
func (h Headers) Value(key string) string {
	value, _ := h.Get(key)
	return value
}

func (h Headers) Get(key string) (value string, found bool) {
	value, found = h[strings.ToLower(key)]
	return value, found
}

func (h Headers) Has(key string) bool {
	_, found := h.Get(key)
	return found
}

func (h Headers) Len() int {
	return len(h)
}
