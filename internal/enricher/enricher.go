// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package enricher completes a segmented contact: it detects missing gender
// and language, derives a salutation, renders the letter salutation and
// records which fields need manual review.
package enricher

import (
	"context"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"contact-splitter/internal/classifier"
	"contact-splitter/internal/config"
	"contact-splitter/internal/contact"
	"contact-splitter/internal/lexicon"
	"contact-splitter/internal/salutation"
	"contact-splitter/internal/segmenter"
)

const (
	NoteFirstNameMissing = "first name missing"
	NoteLastNameMissing  = "last name missing"
)

// Options configures an Enricher. Zero values select defaults.
type Options struct {
	Tables   *lexicon.Tables
	Renderer *salutation.Renderer
	// LetterSalutation is config.LetterSalutationRule or config.LetterSalutationAI.
	LetterSalutation string
	Logger           *slog.Logger
}

// Enricher fills the fields the segmenter cannot derive from the input.
type Enricher struct {
	classifier classifier.Classifier
	tables     *lexicon.Tables
	renderer   *salutation.Renderer
	useAI      bool
	log        *slog.Logger
}

// New creates an Enricher. A nil classifier behaves like classifier.Disabled.
func New(c classifier.Classifier, opts Options) *Enricher {
	if c == nil {
		c = classifier.Disabled{}
	}
	if opts.Tables == nil {
		opts.Tables = lexicon.Default()
	}
	if opts.Renderer == nil {
		opts.Renderer = salutation.NewRenderer(nil)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Enricher{
		classifier: c,
		tables:     opts.Tables,
		renderer:   opts.Renderer,
		useAI:      opts.LetterSalutation == config.LetterSalutationAI,
		log:        opts.Logger.With("component", "enricher"),
	}
}

// Enrich mutates c in place and returns it.
func (e *Enricher) Enrich(ctx context.Context, c *contact.Contact) *contact.Contact {
	if c.Gender == contact.GenderUnknown && c.FirstName != "" {
		c.Gender = e.classifier.DetectGender(ctx, c.FirstName)
		e.log.DebugContext(ctx, "gender detected",
			slog.String("first_name", c.FirstName),
			slog.String("gender", string(c.Gender)))
	}

	if c.Language == "" {
		name := strings.TrimSpace(c.FirstName + " " + c.LastName)
		if name != "" {
			c.Language = e.classifier.DetectLanguage(ctx, name)
			e.log.DebugContext(ctx, "language detected",
				slog.String("name", name),
				slog.String("language", c.Language))
		}
	}

	if c.Salutation == "" && c.Gender.IsKnown() && c.Language != "" {
		if entry, ok := e.tables.SalutationFor(c.Gender, c.Language); ok {
			c.Salutation = capitalize(entry.Token)
		}
	}

	c.LetterSalutation = e.LetterSalutation(ctx, c)
	e.Validate(c)
	return c
}

// LetterSalutation renders the greeting for c without modifying it.
func (e *Enricher) LetterSalutation(ctx context.Context, c *contact.Contact) string {
	if !e.useAI {
		return e.renderer.Render(c)
	}

	generated := e.classifier.GenerateLetterSalutation(ctx, c)
	if generated == classifier.DefaultLetterSalutation && c.Gender.IsKnown() && c.LastName != "" {
		e.log.WarnContext(ctx, "generator returned the generic greeting, using rule renderer",
			slog.String("last_name", c.LastName))
		return e.renderer.Render(c)
	}
	return generated
}

// Validate rebuilds the review fields of c. Notes added by an earlier
// validation are replaced, so the call is idempotent.
func (e *Enricher) Validate(c *contact.Contact) {
	c.ClearReviewFields()
	c.RemoveInaccuracy(NoteFirstNameMissing)
	c.RemoveInaccuracy(NoteLastNameMissing)

	if strings.TrimSpace(c.FirstName) == "" {
		c.AddInaccuracy(NoteFirstNameMissing)
		c.AddReviewField(contact.FieldFirstName)
	}
	if strings.TrimSpace(c.LastName) == "" {
		c.AddInaccuracy(NoteLastNameMissing)
		c.AddReviewField(contact.FieldLastName)
	}
	if c.HasInaccuracy(segmenter.NoteResidualTitle) {
		c.AddReviewField(contact.FieldTitles)
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
