// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strings"

	"contact-splitter/internal/contact"
	"contact-splitter/internal/formatters"
	"contact-splitter/internal/formatters/shared"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(contacts []*contact.Contact, options formatters.FormatterOptions) (string, error) {
	var builder strings.Builder
	w := csv.NewWriter(&builder)

	headers := []string{"Status"}
	for _, field := range contact.New().Fields() {
		headers = append(headers, field.Label)
	}
	if options.Verbose {
		headers = append(headers, "Inaccuracies", "Review fields")
	}
	if err := w.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, c := range contacts {
		if c == nil {
			continue
		}
		if err := w.Write(f.createRow(c, options)); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to format CSV: %w", err)
	}
	return builder.String(), nil
}

// createRow creates a CSV row for a contact
func (f *Formatter) createRow(c *contact.Contact, options formatters.FormatterOptions) []string {
	row := []string{shared.NeedsReviewMarker(c)}
	for _, field := range c.Fields() {
		row = append(row, field.Value)
	}
	if options.Verbose {
		row = append(row, strings.Join(c.Inaccuracies, "; "), strings.Join(c.ReviewFields, "; "))
	}
	return row
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
