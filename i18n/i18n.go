// Package i18n translates para2github's own diagnostics.
//
// It wraps the gotext library to provide a simple T() function. Catalogs
// are embedded in the binary via //go:embed and loaded at startup via Init().
// The modpack team reads the CI log in Traditional Chinese, so a zh_TW
// catalog ships with the tool.
//
// Usage:
//
//	i18n.Init("")  // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	console.Info(i18n.T("Wrote %s"), path)
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// Directory structure: locales/{lang}/LC_MESSAGES/para2github.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name.
const domain = "para2github"

var po *gotext.Locale

// Init initializes the catalog. If lang is empty, it auto-detects from the
// environment variables LANGUAGE, LC_ALL, LC_MESSAGES, LANG (in that order,
// matching GNU gettext behavior).
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// T translates a string. Untranslated strings pass through unchanged.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			// LANGUAGE can be a colon-separated list; take the first
			if env == "LANGUAGE" {
				val, _, _ = strings.Cut(val, ":")
			}
			// "zh_TW.UTF-8" -> "zh_TW"
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "en"
}
