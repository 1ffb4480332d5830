// Package transform turns Paratranz translation entries into the text that
// lands in the language files.
package transform

import (
	"strings"

	"github.com/minios-linux/para2github/langfile"
	"github.com/minios-linux/para2github/paratranz"
)

// Review stages that fall back to the original text when untranslated.
const (
	StageUntranslated = 0
	StageHidden       = -1
)

// NBSP is U+00A0 NO-BREAK SPACE.
const NBSP = "\u00a0"

// Escaped forms written by translators into Paratranz.
const (
	escapedBackslash = "&#92;"
	escapedNBSP      = `\u00A0`
	escapedNewline   = `\n`
)

// Select resolves the effective text of every entry. keys and values are
// index-aligned and follow the order of entries.
//
// An empty translation falls back to the original only while the entry is
// untranslated or hidden; any other stage keeps the empty string.
func Select(entries []paratranz.Translation) (keys, values []string) {
	keys = make([]string, 0, len(entries))
	values = make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
		values = append(values, Resolve(e))
	}
	return keys, values
}

// Resolve returns the effective text of a single entry.
func Resolve(e paratranz.Translation) string {
	if e.Translation == "" && fallsBack(e.Stage) {
		return e.Original
	}
	return e.Translation
}

func fallsBack(stage int) bool {
	return stage == StageUntranslated || stage == StageHidden
}

// Normalize decodes the escapes Paratranz keeps literally: "&#92;" becomes
// a backslash, the six characters \u00A0 become U+00A0 and the two
// characters \n become a newline. The replacements run in that order.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, escapedBackslash, `\`)
	s = strings.ReplaceAll(s, escapedNBSP, NBSP)
	s = strings.ReplaceAll(s, escapedNewline, "\n")
	return s
}

// IsQuestFile reports whether path names an FTB Quests file, whose text
// needs non-breaking spaces.
func IsQuestFile(path string) bool {
	return strings.Contains(path, "ftbquest")
}

// HasImage reports whether value embeds an image tag. Such values keep
// their ordinary spaces so the tag still parses.
func HasImage(value string) bool {
	return strings.Contains(value, "image")
}

// ApplyQuestSpacing replaces every space with U+00A0 in each value of m
// that has no image. The quest book wraps lines on ordinary spaces, which
// splits CJK text mid-sentence.
func ApplyQuestSpacing(m *langfile.Map) {
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if HasImage(pair.Value) {
			continue
		}
		pair.Value = strings.ReplaceAll(pair.Value, " ", NBSP)
	}
}

// BuildMap resolves and normalizes the entries of the remote file at path.
func BuildMap(path string, entries []paratranz.Translation) *langfile.Map {
	keys, values := Select(entries)
	for i, v := range values {
		values[i] = Normalize(v)
	}
	m := langfile.FromPairs(keys, values)
	if IsQuestFile(path) {
		ApplyQuestSpacing(m)
	}
	return m
}
