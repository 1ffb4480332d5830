// Package pipeline runs one Paratranz to repository sync.
//
// Files are processed one at a time in the order the API lists them. Any
// error aborts the run; files already written stay on disk.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/minios-linux/para2github/console"
	"github.com/minios-linux/para2github/ftbquests"
	"github.com/minios-linux/para2github/i18n"
	"github.com/minios-linux/para2github/langfile"
	"github.com/minios-linux/para2github/paratranz"
	"github.com/minios-linux/para2github/snbt"
	"github.com/minios-linux/para2github/transform"
)

// Source provides the project's files and their translations.
// *paratranz.Client implements it.
type Source interface {
	ListFiles(ctx context.Context) ([]paratranz.File, error)
	ListTranslations(ctx context.Context, fileID int) ([]paratranz.Translation, error)
}

// Summary counts what a run did.
type Summary struct {
	Written    int    // language files written
	Skipped    int    // translation-memory files ignored
	QuestFiles int    // files merged into the quest file
	QuestKeys  int    // keys in the quest file
	QuestsPath string // quest file, relative to the writer root
}

// isSkipped reports whether the remote file is a translation-memory export.
func isSkipped(remotePath, marker string) bool {
	return strings.Contains(remotePath, marker)
}

// Run syncs every file of src into w.
func Run(ctx context.Context, src Source, w *Writer) (Summary, error) {
	var sum Summary
	layout := w.Layout

	files, err := src.ListFiles(ctx)
	if err != nil {
		return sum, err
	}
	console.Info(i18n.T("Found %d files"), len(files))

	quests := langfile.New()
	for _, f := range files {
		if isSkipped(f.Name, layout.SkipMarker) {
			console.Info(i18n.T("Skipping translation memory file: %s"), f.Name)
			sum.Skipped++
			continue
		}

		entries, err := src.ListTranslations(ctx, f.ID)
		if err != nil {
			return sum, fmt.Errorf("%s: %w", f.Name, err)
		}
		m := transform.BuildMap(f.Name, entries)

		if ftbquests.IsLangAsset(f.Name, layout.QuestLangDir) {
			for p := m.Oldest(); p != nil; p = p.Next() {
				quests.Set(p.Key, p.Value)
			}
			sum.QuestFiles++
			console.Info(i18n.T("Merged quest language file: %s"), f.Name)
			continue
		}

		if _, err := w.SaveTranslation(m, f.Name); err != nil {
			return sum, fmt.Errorf("%s: %w", f.Name, err)
		}
		sum.Written++
		console.Info(i18n.T("Downloaded from Paratranz to repository: %s"),
			strings.ReplaceAll(f.Name, layout.SourceFileName(), layout.TargetFileName()))
	}

	doc, err := ftbquests.Restructure(quests)
	if err != nil {
		return sum, fmt.Errorf("restructuring quest descriptions: %w", err)
	}
	data, err := snbt.Marshal(doc)
	if err != nil {
		return sum, fmt.Errorf("serializing quest descriptions: %w", err)
	}
	p, err := w.SaveQuests(data)
	if err != nil {
		return sum, err
	}
	sum.QuestKeys = doc.Len()
	sum.QuestsPath = p
	console.Info(i18n.T("Wrote %s"), p)

	return sum, nil
}
