// Package ftbquests regroups quest language keys for FTB Quests.
//
// Paratranz stores a quest description as one key per line:
//
//	quest.1A2B.quest_desc_0  "First line"
//	quest.1A2B.quest_desc_1  "Second line"
//
// FTB Quests expects a single key holding the ordered lines:
//
//	quest.1A2B.quest_desc  ["First line", "Second line"]
package ftbquests

import (
	"errors"
	"fmt"
	"strings"

	"github.com/minios-linux/para2github/langfile"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrMalformedKey is returned for a description key without an identifier
// segment.
var ErrMalformedKey = errors.New("malformed quest description key")

// Document is the restructured key space. Values are string or []string.
type Document = orderedmap.OrderedMap[string, any]

// IsLangAsset reports whether the remote file at path feeds the quest file.
// dir is the marker segment, e.g. "kubejs/assets/quests/lang/".
func IsLangAsset(path, dir string) bool {
	return strings.Contains(path, dir)
}

// IsDescKey reports whether key is a description line. Any key containing
// "desc" counts, chapter descriptions included.
func IsDescKey(key string) bool {
	return strings.Contains(key, "desc")
}

// QuestID returns the identifier segment of key: "1A2B" for
// "quest.1A2B.quest_desc_0".
func QuestID(key string) (string, error) {
	parts := strings.Split(key, ".")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	return parts[1], nil
}

// DescKey is the grouped key for id.
func DescKey(id string) string {
	return "quest." + id + ".quest_desc"
}

// Lines collects, in map order, every value whose key contains
// "<id>.quest_desc".
func Lines(m *langfile.Map, id string) []string {
	marker := id + ".quest_desc"
	lines := []string{}
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if strings.Contains(pair.Key, marker) {
			lines = append(lines, pair.Value)
		}
	}
	return lines
}

// Restructure replaces every description key with one grouped key per
// identifier. Other keys keep their value and position; grouped keys are
// appended in the order their identifier first appears. m is not modified.
func Restructure(m *langfile.Map) (*Document, error) {
	out := orderedmap.New[string, any](m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}

	grouped := orderedmap.New[string, any]()
	var sources []string
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if !IsDescKey(pair.Key) {
			continue
		}
		id, err := QuestID(pair.Key)
		if err != nil {
			return nil, err
		}
		key := DescKey(id)
		// Every key of one identifier yields the same lines.
		if _, done := grouped.Get(key); !done {
			grouped.Set(key, Lines(m, id))
		}
		sources = append(sources, pair.Key)
	}

	for _, k := range sources {
		out.Delete(k)
	}
	for pair := grouped.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, pair.Value)
	}
	return out, nil
}
