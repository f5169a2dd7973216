// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package lexicon holds the static vocabularies used to split names: salutation
// tokens with their implied gender and language, surname connector particles
// and the built-in title dictionary.
//
// Tables are immutable once built. Components receive a *Tables at
// construction time so tests can substitute their own vocabularies.
package lexicon

import (
	"maps"
	"slices"
	"strings"

	"contact-splitter/internal/contact"
)

// SalutationEntry describes one salutation token.
type SalutationEntry struct {
	Token    string // lowercase, without trailing period
	Gender   contact.Gender
	Language string
}

// Tables is the set of vocabularies consulted by the segmenter and enricher.
type Tables struct {
	salutations      []SalutationEntry
	salutationIndex  map[string]int
	connectors       map[string]struct{}
	maxConnectorSize int
	defaultTitles    map[string]string
}

// NewTables builds a Tables value. Keys are normalized with NormalizeKey.
// Salutation order is kept because the enricher picks the first entry that
// matches a gender and language.
func NewTables(salutations []SalutationEntry, connectors []string, defaultTitles map[string]string) *Tables {
	t := &Tables{
		salutationIndex: make(map[string]int, len(salutations)),
		connectors:      make(map[string]struct{}, len(connectors)),
		defaultTitles:   make(map[string]string, len(defaultTitles)),
	}

	for _, entry := range salutations {
		entry.Token = NormalizeKey(entry.Token)
		if _, dup := t.salutationIndex[entry.Token]; dup || entry.Token == "" {
			continue
		}
		t.salutationIndex[entry.Token] = len(t.salutations)
		t.salutations = append(t.salutations, entry)
	}

	for _, c := range connectors {
		key := NormalizeKey(c)
		if key == "" {
			continue
		}
		t.connectors[key] = struct{}{}
		if n := len(strings.Fields(key)); n > t.maxConnectorSize {
			t.maxConnectorSize = n
		}
	}

	for long, short := range defaultTitles {
		if key := NormalizeKey(long); key != "" {
			t.defaultTitles[key] = short
		}
	}

	return t
}

// Default returns the built-in tables.
func Default() *Tables {
	return NewTables(defaultSalutations, defaultConnectors, defaultTitles)
}

// Salutation looks up a salutation token. The token may carry a trailing
// period and any casing.
func (t *Tables) Salutation(token string) (SalutationEntry, bool) {
	i, ok := t.salutationIndex[NormalizeKey(token)]
	if !ok {
		return SalutationEntry{}, false
	}
	return t.salutations[i], true
}

// SalutationFor returns the first salutation entry in table order matching
// the gender and language.
func (t *Tables) SalutationFor(gender contact.Gender, language string) (SalutationEntry, bool) {
	language = strings.ToLower(language)
	for _, entry := range t.salutations {
		if entry.Gender == gender && entry.Language == language {
			return entry, true
		}
	}
	return SalutationEntry{}, false
}

// Salutations returns the salutation entries in table order.
func (t *Tables) Salutations() []SalutationEntry {
	return slices.Clone(t.salutations)
}

// IsConnector reports whether the given tokens, joined, form a surname
// connector such as "von" or "van der".
func (t *Tables) IsConnector(tokens ...string) bool {
	if len(tokens) == 0 {
		return false
	}
	_, ok := t.connectors[NormalizeKey(strings.Join(tokens, " "))]
	return ok
}

// MaxConnectorSize is the token count of the longest connector.
func (t *Tables) MaxConnectorSize() int {
	return t.maxConnectorSize
}

// DefaultTitles returns a copy of the built-in title dictionary.
func (t *Tables) DefaultTitles() map[string]string {
	return maps.Clone(t.defaultTitles)
}

// NormalizeKey case-folds s, collapses whitespace and strips a trailing
// period from every token: "Dr. Rer.  Nat." becomes "dr rer nat".
func NormalizeKey(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	for i, f := range fields {
		fields[i] = strings.TrimRight(f, ".")
	}
	return strings.Join(slices.DeleteFunc(fields, func(f string) bool { return f == "" }), " ")
}
