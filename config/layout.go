package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minios-linux/para2github/locale"
	"gopkg.in/yaml.v3"
)

// LayoutFileName is the default layout file name.
const LayoutFileName = ".para2github.yaml"

// Defaults for the modpack repository layout.
const (
	DefaultBaseURL      = "https://paratranz.cn/api"
	DefaultOutputRoot   = "ZHTWPack"
	DefaultSourceRoot   = "Source"
	DefaultSourceLocale = "en_us"
	DefaultTargetLocale = "zh_tw"
	DefaultQuestLangDir = "kubejs/assets/quests/lang/"
	DefaultSkipMarker   = "TM"
	DefaultTimeout      = 60 * time.Second
)

// Layout describes where files are read from and written to.
type Layout struct {
	// OutputRoot receives the translated pack.
	OutputRoot string `yaml:"output_root,omitempty"`
	// SourceRoot holds the untranslated source language files.
	SourceRoot string `yaml:"source_root,omitempty"`
	// SourceLocale is the Minecraft code of the source files (en_us).
	SourceLocale string `yaml:"source_locale,omitempty"`
	// TargetLocale is the Minecraft code of the output files (zh_tw).
	TargetLocale string `yaml:"target_locale,omitempty"`
	// QuestLangDir marks remote files that feed the quest SNBT file.
	QuestLangDir string `yaml:"quest_lang_dir,omitempty"`
	// SkipMarker marks remote files that are never synced.
	SkipMarker string `yaml:"skip_marker,omitempty"`
	// BaseURL is the Paratranz API root.
	BaseURL string `yaml:"base_url,omitempty"`
	// Timeout bounds each HTTP request.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// DefaultLayout returns the built-in layout.
func DefaultLayout() Layout {
	return Layout{
		OutputRoot:   DefaultOutputRoot,
		SourceRoot:   DefaultSourceRoot,
		SourceLocale: DefaultSourceLocale,
		TargetLocale: DefaultTargetLocale,
		QuestLangDir: DefaultQuestLangDir,
		SkipMarker:   DefaultSkipMarker,
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultTimeout,
	}
}

// LoadLayout reads the layout file and fills in defaults. An empty path
// means dir/.para2github.yaml, which may be absent. An explicitly named
// file must exist.
func LoadLayout(dir, path string) (*Layout, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, LayoutFileName)
	}

	l := DefaultLayout()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &l, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var fromFile Layout
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	l.merge(fromFile)

	if err := l.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &l, nil
}

// merge overlays every non-zero field of o.
func (l *Layout) merge(o Layout) {
	if o.OutputRoot != "" {
		l.OutputRoot = o.OutputRoot
	}
	if o.SourceRoot != "" {
		l.SourceRoot = o.SourceRoot
	}
	if o.SourceLocale != "" {
		l.SourceLocale = o.SourceLocale
	}
	if o.TargetLocale != "" {
		l.TargetLocale = o.TargetLocale
	}
	if o.QuestLangDir != "" {
		l.QuestLangDir = o.QuestLangDir
	}
	if o.SkipMarker != "" {
		l.SkipMarker = o.SkipMarker
	}
	if o.BaseURL != "" {
		l.BaseURL = o.BaseURL
	}
	if o.Timeout != 0 {
		l.Timeout = o.Timeout
	}
}

func (l *Layout) validate() error {
	for _, p := range []struct{ name, value string }{
		{"output_root", l.OutputRoot},
		{"source_root", l.SourceRoot},
	} {
		if filepath.IsAbs(p.value) || strings.HasPrefix(filepath.Clean(p.value), "..") {
			return fmt.Errorf("%s must be a relative path inside the repository, got %q", p.name, p.value)
		}
	}

	src, err := locale.Parse(l.SourceLocale)
	if err != nil {
		return fmt.Errorf("source_locale: %w", err)
	}
	dst, err := locale.Parse(l.TargetLocale)
	if err != nil {
		return fmt.Errorf("target_locale: %w", err)
	}
	if src.Code == dst.Code {
		return fmt.Errorf("source_locale and target_locale are both %q", src.Code)
	}
	l.SourceLocale = src.Code
	l.TargetLocale = dst.Code

	if l.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", l.Timeout)
	}
	return nil
}

// SourceFileName is the language file name for the source locale ("en_us.json").
func (l Layout) SourceFileName() string { return l.SourceLocale + ".json" }

// TargetFileName is the language file name for the target locale ("zh_tw.json").
func (l Layout) TargetFileName() string { return l.TargetLocale + ".json" }

// QuestsPath is the SNBT output path relative to the working directory.
func (l Layout) QuestsPath() string {
	return filepath.Join(l.OutputRoot, "config", "ftbquests", "quests", "lang", l.TargetLocale+".snbt")
}
