// Package langfile reads and writes flat Minecraft language files:
//
//	{
//	  "item.mymod.gear": "Gear",
//	  "quest.1A2B.title": "Getting Started"
//	}
//
// Key order is significant (translators diff these files), so a Map keeps
// insertion order. Output matches Python's json.dump(..., ensure_ascii=False,
// indent=2) byte for byte, which is what the packs were historically
// generated with.
package langfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered key -> text mapping.
type Map = orderedmap.OrderedMap[string, string]

// New returns an empty Map.
func New() *Map {
	return orderedmap.New[string, string]()
}

// FromPairs builds a Map from index-aligned keys and values. A repeated key
// keeps its first position and its last value.
func FromPairs(keys, values []string) *Map {
	m := New()
	for i, k := range keys {
		m.Set(k, values[i])
	}
	return m
}

// Keys returns the keys of m in order.
func Keys(m *Map) []string {
	keys := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// ParseFile reads and parses a language file.
func ParseFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Parse parses language file data, preserving key order.
func Parse(data []byte) (*Map, error) {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	t, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := t.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected {, got %v", t)
	}

	m := New()
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := kt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string key, got %T", kt)
		}

		vt, err := dec.Token()
		if err != nil {
			return nil, err
		}
		value, ok := vt.(string)
		if !ok {
			return nil, fmt.Errorf("expected string value for key %q, got %T", key, vt)
		}
		m.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

// Marshal renders m in insertion order.
func Marshal(m *Map) []byte {
	return marshalKeys(m, Keys(m))
}

// MarshalSorted renders m with keys in byte-wise ascending order.
func MarshalSorted(m *Map) []byte {
	keys := Keys(m)
	sort.Strings(keys)
	return marshalKeys(m, keys)
}

func marshalKeys(m *Map, keys []string) []byte {
	if len(keys) == 0 {
		return []byte("{}")
	}
	var b strings.Builder
	b.WriteString("{\n")
	for i, k := range keys {
		v, _ := m.Get(k)
		b.WriteString("  ")
		b.WriteString(Quote(k))
		b.WriteString(": ")
		b.WriteString(Quote(v))
		if i < len(keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return []byte(b.String())
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Quote returns s as a JSON string literal without escaping non-ASCII or
// HTML characters. Control characters use the short escapes where JSON has
// them and \u00XX otherwise.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\b':
			b.WriteString(`\b`)
		case r == '\f':
			b.WriteString(`\f`)
		case r < 0x20:
			b.WriteString(`\u00`)
			if r < 0x10 {
				b.WriteByte('0')
			}
			b.WriteString(strconv.FormatInt(int64(r), 16))
		default:
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}
