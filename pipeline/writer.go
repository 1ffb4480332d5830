package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/minios-linux/para2github/config"
	"github.com/minios-linux/para2github/console"
	"github.com/minios-linux/para2github/i18n"
	"github.com/minios-linux/para2github/langfile"
)

// ErrKeyLookup is matched by every *KeyLookupError.
var ErrKeyLookup = errors.New("source key has no translation")

// KeyLookupError reports a key of the source language file that the
// translated map does not contain.
type KeyLookupError struct {
	Key    string
	Source string
}

func (e *KeyLookupError) Error() string {
	return fmt.Sprintf("%s: key %q has no translation", e.Source, e.Key)
}

func (e *KeyLookupError) Unwrap() error { return ErrKeyLookup }

// Writer places output files under Root following Layout.
type Writer struct {
	// Root is the repository checkout; layout paths are relative to it.
	Root   string
	Layout config.Layout
}

// TargetPath returns the output file for the remote file at remotePath,
// relative to Root: <output_root>/<dir of remotePath>/<target>.json.
func (w *Writer) TargetPath(remotePath string) string {
	return filepath.Join(w.Layout.OutputRoot, filepath.FromSlash(path.Dir(remotePath)), w.Layout.TargetFileName())
}

// SourcePath derives the source language file from a target path: the
// target file name becomes the source file name and the output root
// becomes the source root, wherever they occur.
func (w *Writer) SourcePath(targetPath string) string {
	p := strings.ReplaceAll(targetPath, w.Layout.TargetFileName(), w.Layout.SourceFileName())
	return strings.ReplaceAll(p, w.Layout.OutputRoot, w.Layout.SourceRoot)
}

// SaveTranslation writes m as the target language file of remotePath and
// returns the path written, relative to Root.
//
// When the matching source file can be read, the output follows its key
// order and every source key must be translated; otherwise keys are
// sorted. A source file that exists but is not valid JSON is an error.
func (w *Writer) SaveTranslation(m *langfile.Map, remotePath string) (string, error) {
	target := w.TargetPath(remotePath)
	source := w.SourcePath(target)

	var data []byte
	raw, err := os.ReadFile(filepath.Join(w.Root, source))
	if err != nil {
		console.Warning(i18n.T("%s does not exist, keys sorted alphabetically"), filepath.ToSlash(source))
		data = langfile.MarshalSorted(m)
	} else {
		src, err := langfile.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", source, err)
		}
		ordered, err := reorder(m, langfile.Keys(src), source)
		if err != nil {
			return "", err
		}
		data = langfile.Marshal(ordered)
	}

	if err := langfile.WriteFile(filepath.Join(w.Root, target), data); err != nil {
		return "", err
	}
	return target, nil
}

// reorder returns the values of m in the order of keys. Keys of m that
// are not listed are dropped.
func reorder(m *langfile.Map, keys []string, source string) (*langfile.Map, error) {
	out := langfile.New()
	for _, k := range keys {
		v, ok := m.Get(k)
		if !ok {
			return nil, &KeyLookupError{Key: k, Source: filepath.ToSlash(source)}
		}
		out.Set(k, v)
	}
	return out, nil
}

// SaveQuests writes the SNBT quest language file and returns its path
// relative to Root.
func (w *Writer) SaveQuests(data []byte) (string, error) {
	p := w.Layout.QuestsPath()
	if err := langfile.WriteFile(filepath.Join(w.Root, p), data); err != nil {
		return "", err
	}
	return p, nil
}
