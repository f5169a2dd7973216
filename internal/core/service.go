// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"contact-splitter/internal/contact"
	"contact-splitter/internal/enricher"
	"contact-splitter/internal/lexicon"
	"contact-splitter/internal/metrics"
	"contact-splitter/internal/observability"
	"contact-splitter/internal/segmenter"
	"contact-splitter/internal/titles"
)

// ServiceConfig holds the collaborators of a Service. Nil fields select
// in-memory defaults.
type ServiceConfig struct {
	Tables   *lexicon.Tables
	Titles   *titles.Store
	Enricher *enricher.Enricher
	History  *contact.History
	Observer observability.Observer
	// Metrics may be nil.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// Service is the parsing pipeline shared by the CLI and the web server.
type Service struct {
	segmenter *segmenter.Segmenter
	enricher  *enricher.Enricher
	titles    *titles.Store
	history   *contact.History
	observer  observability.Observer
	metrics   *metrics.Metrics
	log       *slog.Logger
}

// NewService wires a Service. The title store must already be loaded.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Tables == nil {
		cfg.Tables = lexicon.Default()
	}
	if cfg.Titles == nil {
		cfg.Titles = titles.NewStore("", cfg.Tables.DefaultTitles(), cfg.Logger)
		_ = cfg.Titles.Load() // in-memory load cannot fail
	}
	if cfg.Enricher == nil {
		cfg.Enricher = enricher.New(nil, enricher.Options{Tables: cfg.Tables, Logger: cfg.Logger})
	}
	if cfg.History == nil {
		cfg.History = contact.NewHistory(contact.DefaultHistorySize)
	}
	if cfg.Observer == nil {
		cfg.Observer = observability.NopObserver{}
	}

	return &Service{
		segmenter: segmenter.New(cfg.Tables, cfg.Titles),
		enricher:  cfg.Enricher,
		titles:    cfg.Titles,
		history:   cfg.History,
		observer:  cfg.Observer,
		metrics:   cfg.Metrics,
		log:       cfg.Logger.With("component", "core"),
	}
}

// Process parses and enriches one raw name. Invalid input yields a flagged
// contact without consulting the classifier.
func (s *Service) Process(ctx context.Context, raw string) *contact.Contact {
	finish := s.observer.StartTiming(ctx, "core", "process")
	start := time.Now()

	c := s.segmenter.Segment(raw)
	invalid := c.HasInaccuracy(segmenter.NoteInvalidInput)
	if !invalid {
		s.enricher.Enrich(ctx, c)
	}

	s.metrics.ObserveParse(c.NeedsReview, time.Since(start).Seconds())
	finish(!invalid, map[string]any{
		"input_length": utf8.RuneCountInString(raw),
		"needs_review": c.NeedsReview,
		"inaccuracies": len(c.Inaccuracies),
	})

	return c
}

// RegenerateLetterSalutation recomputes the letter salutation and review
// fields of a contact that was edited by hand.
func (s *Service) RegenerateLetterSalutation(ctx context.Context, c *contact.Contact) *contact.Contact {
	finish := s.observer.StartTiming(ctx, "core", "regenerate")

	c.Normalize()
	c.LetterSalutation = s.enricher.LetterSalutation(ctx, c)
	s.enricher.Validate(c)

	finish(true, map[string]any{"needs_review": c.NeedsReview})
	return c
}

// Titles returns a copy of the title dictionary.
func (s *Service) Titles() map[string]string {
	return s.titles.Entries()
}

// LookupTitle resolves a title token. When it is unknown, suggestion holds
// the closest known long form if there is one.
func (s *Service) LookupTitle(token string) (short string, ok bool, suggestion string) {
	if short, ok = s.titles.Lookup(token); ok {
		return short, true, ""
	}
	suggestion, _ = s.titles.Suggest(token)
	return "", false, suggestion
}

// SaveTitle adds or updates a title. It reports whether the dictionary changed.
func (s *Service) SaveTitle(long, short string) (bool, error) {
	changed, err := s.titles.Add(long, short)
	if err != nil {
		return false, fmt.Errorf("failed to save title %q: %w", long, err)
	}
	if changed {
		s.metrics.IncTitleMutation("add")
		s.log.Info("title saved", slog.String("long", long), slog.String("short", short))
	}
	return changed, nil
}

// DeleteTitle removes a title. It reports whether the title existed.
func (s *Service) DeleteTitle(long string) (bool, error) {
	removed, err := s.titles.Delete(long)
	if err != nil {
		return false, fmt.Errorf("failed to delete title %q: %w", long, err)
	}
	if removed {
		s.metrics.IncTitleMutation("delete")
		s.log.Info("title deleted", slog.String("long", long))
	}
	return removed, nil
}

// ResetTitles restores the default dictionary.
func (s *Service) ResetTitles() error {
	if err := s.titles.ResetToDefaults(); err != nil {
		return fmt.Errorf("failed to reset titles: %w", err)
	}
	s.metrics.IncTitleMutation("reset")
	s.log.Info("title dictionary reset to defaults")
	return nil
}

// TitlesPath returns the backing file of the title dictionary, "" when it
// is kept in memory.
func (s *Service) TitlesPath() string {
	return s.titles.Path()
}

// AddToHistory stores a copy of c and returns the history size.
func (s *Service) AddToHistory(c *contact.Contact) int {
	return s.history.Add(c)
}

// History returns the stored contacts, oldest first.
func (s *Service) History() []*contact.Contact {
	return s.history.List()
}
