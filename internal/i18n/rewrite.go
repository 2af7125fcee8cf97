// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

import "strings"

// Rewriter maps API-facing field names to SQL expressions, transparently
// redirecting translated fields to their translation-table columns.
// Untranslated fields resolve through their plain column map. Relation
// traversal uses "__" separators ("tags__name" resolves name through the
// tags relation's rewriter). Resolution is a closed whitelist: keys are
// user input headed for string-built SQL, so anything outside the maps
// is rejected, never echoed back.
type Rewriter struct {
	translated map[string]string
	plain      map[string]string
	relations  map[string]*Rewriter
}

// NewRewriter builds a rewriter from a translated-field map and a plain
// column map. Values are the full SQL expressions for each field, usually
// a COALESCE over the requested- and default-language join aliases.
func NewRewriter(translated, plain map[string]string) *Rewriter {
	return &Rewriter{
		translated: translated,
		plain:      plain,
		relations:  make(map[string]*Rewriter),
	}
}

// Relate registers a related entity's rewriter under a relation name.
func (rw *Rewriter) Relate(name string, related *Rewriter) *Rewriter {
	rw.relations[name] = related
	return rw
}

// Column resolves a lookup key to its SQL expression. The boolean is
// false for unknown fields so callers can reject them as validation
// errors instead of interpolating arbitrary input.
func (rw *Rewriter) Column(key string) (string, bool) {
	if rel, rest, found := strings.Cut(key, "__"); found {
		related, ok := rw.relations[rel]
		if !ok {
			return "", false
		}
		return related.Column(rest)
	}

	if expr, ok := rw.translated[key]; ok {
		return expr, true
	}
	if expr, ok := rw.plain[key]; ok {
		return expr, true
	}
	return "", false
}

// OrderClause resolves an ordering field, honouring a "-" prefix for
// descending order. Returns false for fields not known to the rewriter.
func (rw *Rewriter) OrderClause(field string) (string, bool) {
	dir := " ASC"
	if strings.HasPrefix(field, "-") {
		dir = " DESC"
		field = field[1:]
	}
	expr, ok := rw.Column(field)
	if !ok {
		return "", false
	}
	return expr + dir, true
}
