// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package classifier detects gender and language of names and generates
// letter salutations through a remote language model. All operations degrade
// to safe defaults instead of returning errors.
package classifier

import (
	"context"
	"log/slog"

	"contact-splitter/internal/config"
	"contact-splitter/internal/contact"
	"contact-splitter/internal/metrics"
	"contact-splitter/internal/resilience"
)

// DefaultLetterSalutation is returned when no salutation could be generated.
const DefaultLetterSalutation = "Sehr geehrte Damen und Herren"

// Classifier is the remote classification and generation service.
type Classifier interface {
	// DetectGender returns the gender of a first name, GenderUnknown on failure.
	DetectGender(ctx context.Context, name string) contact.Gender
	// DetectLanguage returns an ISO-639-1 code for a name, "" on failure.
	DetectLanguage(ctx context.Context, name string) string
	// GenerateLetterSalutation returns a greeting for the contact,
	// DefaultLetterSalutation on failure.
	GenerateLetterSalutation(ctx context.Context, c *contact.Contact) string
}

// Disabled is a Classifier that never leaves the process.
type Disabled struct{}

func (Disabled) DetectGender(context.Context, string) contact.Gender { return contact.GenderUnknown }

func (Disabled) DetectLanguage(context.Context, string) string { return "" }

func (Disabled) GenerateLetterSalutation(context.Context, *contact.Contact) string {
	return DefaultLetterSalutation
}

// FromConfig returns a remote client when an API key is configured and
// Disabled otherwise.
func FromConfig(cfg config.ClassifierConfig, m *metrics.Metrics, logger *slog.Logger) Classifier {
	if !cfg.Enabled() {
		if logger != nil {
			logger.Info("no classifier API key configured, remote classification disabled")
		}
		return Disabled{}
	}

	return New(Options{
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
		Retry: resilience.RetryConfig{
			MaxRetries:      cfg.MaxRetries,
			InitialInterval: cfg.InitialInterval,
			Multiplier:      cfg.Multiplier,
			Jitter:          true,
		},
		Metrics: m,
		Logger:  logger,
	})
}
