// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"contact-splitter/internal/classifier"
	"contact-splitter/internal/config"
	"contact-splitter/internal/contact"
	"contact-splitter/internal/enricher"
	"contact-splitter/internal/lexicon"
	"contact-splitter/internal/metrics"
	"contact-splitter/internal/observability"
	"contact-splitter/internal/titles"
)

// BuildOptions tunes BuildService.
type BuildOptions struct {
	// Metrics records pipeline and classifier metrics. May be nil.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// Debug prints an operation trace to DebugWriter (stderr when nil).
	Debug       bool
	DebugWriter io.Writer
	// Classifier overrides the one derived from cfg.Classifier.
	Classifier classifier.Classifier
}

// BuildService constructs the full pipeline from configuration. It loads
// the title dictionary, creating the backing file when it does not exist.
func BuildService(cfg *config.Config, opts BuildOptions) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := opts.Metrics
	tables := lexicon.Default()
	store := titles.NewStore(cfg.TitlesFile(), tables.DefaultTitles(), logger)
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load title dictionary: %w", err)
	}

	cls := opts.Classifier
	if cls == nil {
		cls = classifier.FromConfig(cfg.Classifier, m, logger)
	}

	var observer observability.Observer = observability.NewStandardObserver(observability.ObservabilityMetrics, logger)
	if opts.Debug {
		w := opts.DebugWriter
		if w == nil {
			w = os.Stderr
		}
		observer = observability.NewDebugObserver(w, logger)
	}

	return NewService(ServiceConfig{
		Tables: tables,
		Titles: store,
		Enricher: enricher.New(cls, enricher.Options{
			Tables:           tables,
			LetterSalutation: cfg.Enrichment.LetterSalutation,
			Logger:           logger,
		}),
		History:  contact.NewHistory(cfg.History.Size),
		Observer: observer,
		Metrics:  m,
		Logger:   logger,
	}), nil
}
