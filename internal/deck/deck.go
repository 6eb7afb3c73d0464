// Package deck reads vocabulary decks from JSON files. A deck is one topic
// and its items; it is validated against a JSON Schema before import.
package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/tango/internal/vocab"
)

// Deck is a parsed deck file.
type Deck struct {
	Topic DeckTopic         `json:"topic"`
	Items []vocab.StudyItem `json:"items"`
}

// DeckTopic describes the topic a deck fills.
type DeckTopic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// InvalidDeckError reports a deck that failed parsing or validation.
type InvalidDeckError struct {
	Source string
	Err    error
}

func (e *InvalidDeckError) Error() string {
	return fmt.Sprintf("invalid deck %s: %v", e.Source, e.Err)
}

func (e *InvalidDeckError) Unwrap() error { return e.Err }

const schemaURL = "schema://tango/deck.json"

var deckSchema = map[string]any{
	"type":     "object",
	"required": []any{"topic", "items"},
	"properties": map[string]any{
		"topic": map[string]any{
			"type":     "object",
			"required": []any{"id", "name"},
			"properties": map[string]any{
				"id":          map[string]any{"type": "string", "pattern": "^[A-Za-z0-9][A-Za-z0-9_.-]*$"},
				"name":        map[string]any{"type": "string", "minLength": 1},
				"description": map[string]any{"type": "string"},
			},
		},
		"items": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "primary_text"},
				"properties": map[string]any{
					"id":             map[string]any{"type": "string", "minLength": 1},
					"primary_text":   map[string]any{"type": "string", "minLength": 1},
					"secondary_text": map[string]any{"type": "string"},
					"meaning":        map[string]any{"type": "string"},
					"type":           map[string]any{"type": "string"},
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants plain decoded JSON, so round-trip the
		// definition through encoding/json.
		defBytes, err := json.Marshal(deckSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Parse validates raw deck JSON and decodes it. source names the input in
// errors.
func Parse(source string, raw []byte) (*Deck, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &InvalidDeckError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile deck schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, &InvalidDeckError{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var d Deck
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, &InvalidDeckError{Source: source, Err: err}
	}

	seen := make(map[string]bool, len(d.Items))
	for i := range d.Items {
		it := &d.Items[i]
		it.ID = strings.TrimSpace(it.ID)
		if seen[it.ID] {
			return nil, &InvalidDeckError{Source: source, Err: fmt.Errorf("duplicate item id %q", it.ID)}
		}
		seen[it.ID] = true
		it.TopicID = d.Topic.ID
	}
	return &d, nil
}

// Load reads and parses the deck file at path.
func Load(path string) (*Deck, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read deck: %w", err)
	}
	return Parse(path, raw)
}

// TopicInfo returns the deck's topic in store form.
func (d *Deck) TopicInfo() vocab.Topic {
	return vocab.Topic{ID: d.Topic.ID, Name: d.Topic.Name, ItemCount: len(d.Items)}
}
