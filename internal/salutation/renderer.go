// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package salutation renders the formal letter greeting for a contact from
// its language, gender, titles and last name.
package salutation

import (
	"slices"
	"strings"

	"contact-splitter/internal/contact"
)

// DefaultLanguage is used for contacts whose language has no greeting table.
const DefaultLanguage = "de"

// Greeting is the greeting table of one language.
type Greeting struct {
	// Opening precedes the courtesy word, e.g. "Dear". May be empty.
	Opening string
	Female  string
	Male    string
	// Unknown is the complete greeting used when the gender is unknown.
	Unknown string

	// WithTitles interposes the titles between courtesy word and last name.
	WithTitles bool
	// FemaleCourtesies and MaleCourtesies list supplied salutations that
	// replace the default courtesy word with their original casing.
	FemaleCourtesies []string
	MaleCourtesies   []string
	// AcademicAddress replaces the courtesy word by a leading Dr or Prof title.
	AcademicAddress bool
}

// DefaultGreetings returns the built-in greeting tables keyed by language.
func DefaultGreetings() map[string]Greeting {
	return map[string]Greeting{
		"de": {
			Female:     "Sehr geehrte Frau",
			Male:       "Sehr geehrter Herr",
			Unknown:    "Sehr geehrte Damen und Herren",
			WithTitles: true,
		},
		"en": {
			Opening:          "Dear",
			Female:           "Ms",
			Male:             "Mr",
			Unknown:          "Dear Sirs",
			FemaleCourtesies: []string{"mrs", "miss", "ms"},
			MaleCourtesies:   []string{"mr"},
			AcademicAddress:  true,
		},
		"it": {
			Female:  "Gentile Signora",
			Male:    "Egregio Signor",
			Unknown: "Egregi Signori",
		},
		"fr": {
			Female:  "Madame",
			Male:    "Monsieur",
			Unknown: "Messieursdames",
		},
		"es": {
			Female:  "Estimada Señora",
			Male:    "Estimado Señor",
			Unknown: "Estimados Señores y Señoras",
		},
	}
}

// Renderer is a pure, table-driven greeting renderer.
type Renderer struct {
	greetings map[string]Greeting
}

// NewRenderer creates a renderer. A nil map selects DefaultGreetings. The
// table must contain DefaultLanguage.
func NewRenderer(greetings map[string]Greeting) *Renderer {
	if greetings == nil {
		greetings = DefaultGreetings()
	}
	return &Renderer{greetings: greetings}
}

// Supports reports whether lang has its own greeting table.
func (r *Renderer) Supports(lang string) bool {
	_, ok := r.greetings[strings.ToLower(lang)]
	return ok
}

// Render returns the letter greeting for c. It never returns an empty string
// for a table that defines Unknown greetings.
func (r *Renderer) Render(c *contact.Contact) string {
	lang := strings.ToLower(strings.TrimSpace(c.Language))
	g, ok := r.greetings[lang]
	if !ok {
		g = r.greetings[DefaultLanguage]
	}

	lastName := strings.TrimSpace(c.LastName)
	titles := strings.TrimSpace(c.Titles)

	var courtesy string
	var supplied []string
	switch contact.ParseGender(strings.ToLower(string(c.Gender))) {
	case contact.GenderFemale:
		courtesy, supplied = g.Female, g.FemaleCourtesies
	case contact.GenderMale:
		courtesy, supplied = g.Male, g.MaleCourtesies
	default:
		return g.Unknown
	}

	if c.Salutation != "" && slices.Contains(supplied, strings.ToLower(c.Salutation)) {
		courtesy = c.Salutation
	}

	if g.AcademicAddress && titles != "" {
		first := strings.Fields(titles)[0]
		if key := strings.TrimRight(strings.ToLower(first), "."); key == "dr" || strings.HasPrefix(key, "prof") {
			courtesy = first
		}
	}

	parts := make([]string, 0, 4)
	parts = appendNonEmpty(parts, g.Opening, courtesy)
	if g.WithTitles {
		parts = appendNonEmpty(parts, titles)
	}
	parts = appendNonEmpty(parts, lastName)
	return strings.Join(parts, " ")
}

func appendNonEmpty(parts []string, values ...string) []string {
	for _, v := range values {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return parts
}
