// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package segmenter

import (
	"strings"

	"contact-splitter/internal/lexicon"
)

// titleIndex is a per-call snapshot of the known titles keyed by their
// normalized form.
type titleIndex struct {
	lookup   TitleLookup
	known    map[string]string // normalized key -> long form as listed
	maxWords int
}

func newTitleIndex(lookup TitleLookup) titleIndex {
	idx := titleIndex{lookup: lookup, known: map[string]string{}}
	if lookup == nil {
		return idx
	}

	for _, long := range lookup.KnownTokens() {
		key := lexicon.NormalizeKey(long)
		if key == "" {
			continue
		}
		idx.known[key] = long
		if n := len(strings.Fields(key)); n > idx.maxWords {
			idx.maxWords = n
		}
	}
	return idx
}

// has reports whether a single token is a known title.
func (idx titleIndex) has(token string) bool {
	_, ok := idx.known[lexicon.NormalizeKey(token)]
	return ok
}

// match finds the longest known title at the start of tokens. It returns the
// canonical short form and the number of tokens consumed, 0 when nothing
// matched.
func (idx titleIndex) match(tokens []string) (string, int) {
	for size := min(idx.maxWords, len(tokens)); size > 0; size-- {
		candidate := strings.Join(tokens[:size], " ")
		long, ok := idx.known[lexicon.NormalizeKey(candidate)]
		if !ok {
			continue
		}
		if short, ok := idx.lookup.Lookup(long); ok && short != "" {
			return short, size
		}
		return candidate, size
	}
	return "", 0
}
