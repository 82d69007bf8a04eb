// Package settings provides checker parameter sources: an in-memory source
// loadable from JSON and a SQLite-backed store that persists inventory
// edits.
package settings

import (
	"encoding/json"
	"io"
	"maps"
	"os"
	"sync"

	"github.com/FocuswithJustin/JuniperChecks/core/categorizer"
	"github.com/FocuswithJustin/JuniperChecks/core/checks"
	"github.com/FocuswithJustin/JuniperChecks/core/errors"
)

// Source is an in-memory checks.ParameterStore.
type Source struct {
	mu          sync.RWMutex
	params      map[string]string
	messages    map[string]string
	categorizer checks.CharacterCategorizer
}

var _ checks.ParameterStore = (*Source)(nil)

// NewSource creates a Source holding a copy of params. Its categorizer is
// built from the categorizer parameters in params.
func NewSource(params map[string]string) *Source {
	p := maps.Clone(params)
	if p == nil {
		p = make(map[string]string)
	}
	return &Source{
		params:      p,
		messages:    make(map[string]string),
		categorizer: categorizer.FromParameters(p),
	}
}

// WithCategorizer replaces the character categorizer.
func (s *Source) WithCategorizer(c checks.CharacterCategorizer) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categorizer = c
	return s
}

// WithMessages installs localized message templates keyed by their
// English template.
func (s *Source) WithMessages(messages map[string]string) *Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = maps.Clone(messages)
	return s
}

// ParameterValue returns the named parameter or "".
func (s *Source) ParameterValue(name string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params[name]
}

// SetParameterValue stores a parameter value.
func (s *Source) SetParameterValue(name, value string) error {
	if name == "" {
		return errors.NewValidation("name", "parameter name is empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params[name] = value
	return nil
}

// LocalizedString returns the translation of key, or key itself.
func (s *Source) LocalizedString(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if msg, ok := s.messages[key]; ok && msg != "" {
		return msg
	}
	return key
}

// Categorizer returns the character categorizer.
func (s *Source) Categorizer() checks.CharacterCategorizer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categorizer
}

// Parameters returns a copy of all parameters.
func (s *Source) Parameters() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.params)
}

// fileFormat is the JSON layout of a settings file.
type fileFormat struct {
	Parameters map[string]string `json:"parameters"`
	Messages   map[string]string `json:"messages,omitempty"`
}

// LoadJSON reads a settings document:
//
//	{"parameters": {"Verse Bridge": "-"}, "messages": {"Repeated word": "Mot répété"}}
func LoadJSON(r io.Reader) (*Source, error) {
	var f fileFormat
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, errors.NewParseWrap("JSON", "settings", err)
	}
	return NewSource(f.Parameters).WithMessages(f.Messages), nil
}

// LoadJSONFile reads a settings document from path.
func LoadJSONFile(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer file.Close()
	src, err := LoadJSON(file)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return src, nil
}

// WriteJSON writes the source's parameters and messages as a settings
// document.
func (s *Source) WriteJSON(w io.Writer) error {
	s.mu.RLock()
	f := fileFormat{Parameters: maps.Clone(s.params), Messages: maps.Clone(s.messages)}
	s.mu.RUnlock()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
