// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from localized titles.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// whitespaceRun collapses any whitespace run to a single separator.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// stripMarks decomposes characters and removes combining marks, turning
// "Categoría" into "Categoria" before the ASCII cleanup pass.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make creates a URL-friendly slug from the given string for a language.
// Example: "¡Hola, Categoría! 2026" → "hola-categoria-2026".
// Every configured language shares the Latin-alphabet rules; the language
// code selects nothing yet but is part of the contract so per-language
// transliteration can be added without touching callers.
func Make(s, language string) string {
	_ = language

	result := strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(stripMarks, result); err == nil {
		result = folded
	}
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespaceRun.ReplaceAllString(result, "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// MakeOr slugifies s and substitutes fallback when the input strips down
// to nothing, so a slug is never empty.
func MakeOr(s, language, fallback string) string {
	if made := Make(s, language); made != "" {
		return made
	}
	return fallback
}
