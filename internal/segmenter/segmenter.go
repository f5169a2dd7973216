// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package segmenter splits a raw name string into salutation, titles, first
// name and last name.
//
// Rules are applied in a fixed order: comma inversion, salutation, titles,
// residual title detection, surname particles, hyphenated last token, single
// token and finally the backward fallback split.
package segmenter

import (
	"strings"
	"unicode/utf8"

	"contact-splitter/internal/contact"
	"contact-splitter/internal/lexicon"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxInputLength is the longest accepted input in characters.
const MaxInputLength = 255

const (
	NoteInvalidInput = "invalid input (empty or longer than 255 characters)"
	// NoteResidualTitle prefixes the note recorded for a title token found
	// between the name tokens.
	NoteResidualTitle = "title token found within name"
)

// TitleLookup is the title vocabulary consulted while segmenting.
type TitleLookup interface {
	// Lookup returns the canonical abbreviation for a long form.
	Lookup(token string) (string, bool)
	// KnownTokens lists all long forms.
	KnownTokens() []string
}

// Segmenter is stateless apart from its injected vocabularies and safe for
// concurrent use.
type Segmenter struct {
	tables *lexicon.Tables
	titles TitleLookup
}

// New creates a Segmenter. A nil tables value selects lexicon.Default().
func New(tables *lexicon.Tables, titles TitleLookup) *Segmenter {
	if tables == nil {
		tables = lexicon.Default()
	}
	return &Segmenter{tables: tables, titles: titles}
}

// Segment parses raw into a new Contact. It never fails; problems are
// reported through the contact's inaccuracies and review fields.
func (s *Segmenter) Segment(raw string) *contact.Contact {
	text := strings.TrimSpace(norm.NFC.String(raw))
	if text == "" || utf8.RuneCountInString(text) > MaxInputLength {
		return invalidInput()
	}

	idx := newTitleIndex(s.titles)

	before, after, found := strings.Cut(text, ",")
	if !found {
		return s.segmentTokens(strings.Fields(text), idx)
	}

	left, right := strings.Fields(before), strings.Fields(after)
	if len(left) > 0 && (s.isSalutation(left[0]) || idx.has(left[0])) {
		// Reorder to salutation, titles, first name, last name and segment
		// the rebuilt sequence once more.
		prefix := s.prefixLength(left, idx)
		tokens := make([]string, 0, len(left)+len(right))
		tokens = append(tokens, left[:prefix]...)
		tokens = append(tokens, right...)
		tokens = append(tokens, left[prefix:]...)
		return s.segmentTokens(tokens, idx)
	}

	return s.segmentInverted(left, right, idx)
}

// segmentTokens runs the rule chain on a token sequence in natural order.
func (s *Segmenter) segmentTokens(tokens []string, idx titleIndex) *contact.Contact {
	c := contact.New()
	tokens = s.extractSalutation(c, tokens)
	tokens = s.extractTitles(c, tokens, idx)
	s.flagResidualTitles(c, tokens, idx)

	first, last := s.splitName(tokens)
	caser := newCaser(c.Language)
	c.FirstName = titleCase(caser, first)
	c.LastName = titleCase(caser, last)
	return c
}

// segmentInverted handles "Last, First" where the part before the comma is
// taken verbatim as the last name.
func (s *Segmenter) segmentInverted(last, first []string, idx titleIndex) *contact.Contact {
	c := contact.New()
	first = s.extractSalutation(c, first)
	first = s.extractTitles(c, first, idx)
	s.flagResidualTitles(c, first, idx)
	s.flagResidualTitles(c, last, idx)

	caser := newCaser(c.Language)
	c.FirstName = titleCase(caser, first)
	c.LastName = titleCase(caser, last)
	return c
}

func (s *Segmenter) isSalutation(token string) bool {
	_, ok := s.tables.Salutation(token)
	return ok
}

// prefixLength counts the leading salutation and title tokens.
func (s *Segmenter) prefixLength(tokens []string, idx titleIndex) int {
	n := 0
	if s.isSalutation(tokens[0]) {
		n = 1
	}
	for n < len(tokens) {
		_, size := idx.match(tokens[n:])
		if size == 0 {
			break
		}
		n += size
	}
	return n
}

func (s *Segmenter) extractSalutation(c *contact.Contact, tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}

	entry, ok := s.tables.Salutation(tokens[0])
	if !ok {
		return tokens
	}

	c.Salutation = strings.TrimSuffix(tokens[0], ".")
	c.Gender = entry.Gender
	c.Language = entry.Language
	return tokens[1:]
}

func (s *Segmenter) extractTitles(c *contact.Contact, tokens []string, idx titleIndex) []string {
	var titles []string
	for len(tokens) > 0 {
		short, size := idx.match(tokens)
		if size == 0 {
			break
		}
		titles = append(titles, short)
		tokens = tokens[size:]
	}

	if len(titles) > 0 {
		c.Titles = strings.Join(titles, " ")
	}
	return tokens
}

func (s *Segmenter) flagResidualTitles(c *contact.Contact, tokens []string, idx titleIndex) {
	for _, tok := range tokens {
		if idx.has(tok) {
			c.AddInaccuracy(NoteResidualTitle + ": " + tok)
		}
	}
}

// splitName divides the remaining tokens into first and last name.
func (s *Segmenter) splitName(tokens []string) (first, last []string) {
	if len(tokens) == 0 {
		return nil, nil
	}

	if i := s.particleIndex(tokens); i >= 0 {
		return tokens[:i], tokens[i:]
	}

	n := len(tokens)
	if strings.Contains(tokens[n-1], "-") {
		return tokens[:n-1], tokens[n-1:]
	}

	if n == 1 {
		return nil, tokens
	}

	return s.fallbackSplit(tokens)
}

// particleIndex returns the position of the first surname connector, trying
// the longest connector at every position, or -1.
func (s *Segmenter) particleIndex(tokens []string) int {
	for i := range tokens {
		for size := min(s.tables.MaxConnectorSize(), len(tokens)-i); size > 0; size-- {
			if s.tables.IsConnector(tokens[i : i+size]...) {
				return i
			}
		}
	}
	return -1
}

// fallbackSplit takes the last token as the last name and prepends any
// connectors directly in front of it, two-token connectors first.
func (s *Segmenter) fallbackSplit(tokens []string) (first, last []string) {
	start := len(tokens) - 1
	for start > 0 {
		if start >= 2 && s.tables.IsConnector(tokens[start-2:start]...) {
			start -= 2
			continue
		}
		if s.tables.IsConnector(tokens[start-1]) {
			start--
			continue
		}
		break
	}
	return tokens[:start], tokens[start:]
}

func invalidInput() *contact.Contact {
	c := contact.New()
	c.AddInaccuracy(NoteInvalidInput)
	c.AddReviewField(contact.FieldFirstName)
	c.AddReviewField(contact.FieldLastName)
	return c
}

func newCaser(lang string) cases.Caser {
	tag := language.Und
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			tag = parsed
		}
	}
	return cases.Title(tag)
}

// titleCase capitalizes every token, treating hyphen and apostrophe separated
// parts as words of their own: "o'neil schäfer-karrenberger" becomes
// "O'Neil Schäfer-Karrenberger".
func titleCase(caser cases.Caser, tokens []string) string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		var b strings.Builder
		start := 0
		for j, r := range tok {
			if r == '-' || r == '\'' || r == '’' {
				b.WriteString(caser.String(tok[start:j]))
				b.WriteRune(r)
				start = j + utf8.RuneLen(r)
			}
		}
		b.WriteString(caser.String(tok[start:]))
		out[i] = b.String()
	}
	return strings.Join(out, " ")
}
