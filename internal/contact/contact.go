// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package contact

import (
	"fmt"
	"slices"
	"strings"
)

// Gender is the detected gender of a contact.
type Gender string

const (
	GenderMale    Gender = "m"
	GenderFemale  Gender = "w"
	GenderUnknown Gender = "-"
)

// ParseGender maps s onto one of the three gender values. Anything that is not
// "m" or "w" becomes GenderUnknown.
func ParseGender(s string) Gender {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s)
	default:
		return GenderUnknown
	}
}

// IsKnown reports whether g is male or female.
func (g Gender) IsKnown() bool {
	return g == GenderMale || g == GenderFemale
}

// Review field names used in ReviewFields.
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldTitles    = "titles"
)

// Contact is the result of parsing one raw name string.
//
// NeedsReview is derived from Inaccuracies and ReviewFields. Use the mutator
// methods instead of appending to those slices directly so it stays in sync.
type Contact struct {
	Salutation       string   `json:"salutation" yaml:"salutation"`
	Titles           string   `json:"titles" yaml:"titles"`
	FirstName        string   `json:"firstName" yaml:"first_name"`
	LastName         string   `json:"lastName" yaml:"last_name"`
	Gender           Gender   `json:"gender" yaml:"gender"`
	Language         string   `json:"languageCode" yaml:"language_code"`
	LetterSalutation string   `json:"letterSalutation" yaml:"letter_salutation"`
	NeedsReview      bool     `json:"needsReview" yaml:"needs_review"`
	Inaccuracies     []string `json:"inaccuracies" yaml:"inaccuracies"`
	ReviewFields     []string `json:"reviewFields" yaml:"review_fields"`
}

// New returns an empty contact with unknown gender.
func New() *Contact {
	return &Contact{
		Gender:       GenderUnknown,
		Inaccuracies: []string{},
		ReviewFields: []string{},
	}
}

// AddInaccuracy appends a human-readable note.
func (c *Contact) AddInaccuracy(note string) {
	c.Inaccuracies = append(c.Inaccuracies, note)
	c.recompute()
}

// HasInaccuracy reports whether any recorded note has the given prefix.
func (c *Contact) HasInaccuracy(prefix string) bool {
	for _, note := range c.Inaccuracies {
		if strings.HasPrefix(note, prefix) {
			return true
		}
	}
	return false
}

// RemoveInaccuracy drops every note equal to note.
func (c *Contact) RemoveInaccuracy(note string) {
	c.Inaccuracies = slices.DeleteFunc(c.Inaccuracies, func(n string) bool { return n == note })
	c.recompute()
}

// AddReviewField marks a field for manual review. Duplicates are ignored.
func (c *Contact) AddReviewField(field string) {
	if !slices.Contains(c.ReviewFields, field) {
		c.ReviewFields = append(c.ReviewFields, field)
	}
	c.recompute()
}

// ClearReviewFields removes all review markers.
func (c *Contact) ClearReviewFields() {
	c.ReviewFields = []string{}
	c.recompute()
}

// Normalize repairs a contact built outside the parser (for example decoded
// from an API request) so that its invariants hold.
func (c *Contact) Normalize() {
	c.Gender = ParseGender(string(c.Gender))
	if c.Inaccuracies == nil {
		c.Inaccuracies = []string{}
	}
	if c.ReviewFields == nil {
		c.ReviewFields = []string{}
	}
	c.recompute()
}

func (c *Contact) recompute() {
	c.NeedsReview = len(c.Inaccuracies) > 0 || len(c.ReviewFields) > 0
}

// Clone returns a deep copy.
func (c *Contact) Clone() *Contact {
	out := *c
	out.Inaccuracies = slices.Clone(c.Inaccuracies)
	out.ReviewFields = slices.Clone(c.ReviewFields)
	if out.Inaccuracies == nil {
		out.Inaccuracies = []string{}
	}
	if out.ReviewFields == nil {
		out.ReviewFields = []string{}
	}
	return &out
}

// FullName joins first and last name.
func (c *Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Field is a labelled value used for display.
type Field struct {
	Name  string
	Label string
	Value string
}

// Fields returns the displayable fields in a stable order.
func (c *Contact) Fields() []Field {
	return []Field{
		{Name: "salutation", Label: "Salutation", Value: c.Salutation},
		{Name: FieldTitles, Label: "Titles", Value: c.Titles},
		{Name: FieldFirstName, Label: "First name", Value: c.FirstName},
		{Name: FieldLastName, Label: "Last name", Value: c.LastName},
		{Name: "gender", Label: "Gender", Value: string(c.Gender)},
		{Name: "languageCode", Label: "Language", Value: c.Language},
		{Name: "letterSalutation", Label: "Letter salutation", Value: c.LetterSalutation},
	}
}

func (c *Contact) String() string {
	return fmt.Sprintf("Contact(salutation=%q, titles=%q, firstName=%q, lastName=%q, gender=%q, language=%q, letterSalutation=%q, needsReview=%t)",
		c.Salutation, c.Titles, c.FirstName, c.LastName, c.Gender, c.Language, c.LetterSalutation, c.NeedsReview)
}
