// Package locale maps Minecraft language codes (zh_tw, en_us) to BCP 47
// tags and native display names.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Meta describes language display metadata.
type Meta struct {
	Code string // Minecraft form, e.g. "zh_tw"
	Tag  language.Tag
	Name string
}

// Registry holds native names for the locales modpacks usually ship.
// Keys are canonical BCP 47 strings.
var Registry = map[string]string{
	"de-DE": "Deutsch",
	"en-GB": "English (UK)",
	"en-US": "English (US)",
	"es-ES": "Español",
	"fr-FR": "Français",
	"it-IT": "Italiano",
	"ja-JP": "日本語",
	"ko-KR": "한국어",
	"pl-PL": "Polski",
	"pt-BR": "Português (Brasil)",
	"ru-RU": "Русский",
	"tr-TR": "Türkçe",
	"uk-UA": "Українська",
	"zh-CN": "简体中文",
	"zh-HK": "繁體中文 (香港)",
	"zh-TW": "繁體中文",
}

// Parse validates a Minecraft language code and returns its metadata.
// Both "zh_tw" and "zh-TW" are accepted; Code is always the lower-case
// underscore form used in file names.
func Parse(code string) (Meta, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Meta{}, fmt.Errorf("empty locale code")
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return Meta{}, fmt.Errorf("invalid locale code %q: %w", code, err)
	}
	m := Meta{
		Code: FileCode(tag),
		Tag:  tag,
	}
	m.Name = displayName(tag)
	return m, nil
}

// FileCode renders tag in the Minecraft file-name convention ("zh_tw").
func FileCode(tag language.Tag) string {
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf == language.No {
		return strings.ToLower(base.String())
	}
	return strings.ToLower(base.String() + "_" + region.String())
}

func displayName(tag language.Tag) string {
	if name, ok := Registry[tag.String()]; ok {
		return name
	}
	base, _ := tag.Base()
	region, conf := tag.Region()
	if conf != language.No {
		if name, ok := Registry[base.String()+"-"+region.String()]; ok {
			return name
		}
	}
	return tag.String()
}
