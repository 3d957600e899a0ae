package streams

import "strings"

// Mapping resolves stream names to upstream URLs. It is built once and never
// modified, so it can be shared between requests.
type Mapping struct {
	urls map[string]string
}

func NewMapping(entries map[string]string) *Mapping {
	urls := make(map[string]string, len(entries))
	for name, url := range entries {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || url == "" {
			continue
		}

		urls[name] = url
	}

	return &Mapping{urls: urls}
}

// Lookup is case-insensitive on name.
func (m *Mapping) Lookup(name string) (string, bool) {
	url, ok := m.urls[strings.ToLower(name)]
	return url, ok
}

func (m *Mapping) Len() int {
	return len(m.urls)
}
