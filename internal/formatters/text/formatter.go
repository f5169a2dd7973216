// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"contact-splitter/internal/contact"
	"contact-splitter/internal/formatters"
	"contact-splitter/internal/formatters/shared"

	"github.com/fatih/color"
)

// maxColumnWidth caps table columns for readability
const maxColumnWidth = 40

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable text output with colors and tables"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(contacts []*contact.Contact, options formatters.FormatterOptions) (string, error) {
	contacts = slices.DeleteFunc(slices.Clone(contacts), func(c *contact.Contact) bool { return c == nil })
	if len(contacts) == 0 {
		return "No contacts.\n", nil
	}

	var builder strings.Builder
	if options.Verbose {
		for i, c := range contacts {
			if i > 0 {
				builder.WriteString("\n")
			}
			f.appendDetailedContact(&builder, i+1, c, options)
		}
		return builder.String(), nil
	}

	f.appendTable(&builder, contacts, options)
	return builder.String(), nil
}

// paint colors s unless colors are disabled
func (f *Formatter) paint(name, s string, options formatters.FormatterOptions) string {
	if options.NoColor {
		return s
	}
	return f.colors[name].Sprint(s)
}

// appendTable writes one summary line per contact
func (f *Formatter) appendTable(builder *strings.Builder, contacts []*contact.Contact, options formatters.FormatterOptions) {
	headers := []string{"STATUS"}
	for _, field := range contacts[0].Fields() {
		headers = append(headers, strings.ToUpper(field.Label))
	}

	rows := make([][]string, len(contacts))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for r, c := range contacts {
		row := []string{shared.NeedsReviewMarker(c)}
		for _, field := range c.Fields() {
			row = append(row, truncate(field.Value, maxColumnWidth))
		}
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
		rows[r] = row
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = f.paint("white", pad(h, widths[i]), options)
	}
	builder.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")

	total := (len(widths) - 1) * 2
	for _, w := range widths {
		total += w
	}
	builder.WriteString(f.paint("white", strings.Repeat("-", total), options) + "\n")

	for r, c := range contacts {
		fields := c.Fields()
		for i, cell := range rows[r] {
			padded := pad(cell, widths[i])
			switch {
			case i == 0 && c.NeedsReview:
				padded = f.paint("red", padded, options)
			case i == 0:
				padded = f.paint("green", padded, options)
			case slices.Contains(c.ReviewFields, fields[i-1].Name):
				padded = f.paint("yellow", padded, options)
			}
			cells[i] = padded
		}
		builder.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
	}
}

// appendDetailedContact writes every field of c on its own line
func (f *Formatter) appendDetailedContact(builder *strings.Builder, n int, c *contact.Contact, options formatters.FormatterOptions) {
	builder.WriteString(f.paint("white", fmt.Sprintf("=== Contact %d ===", n), options) + "\n")

	fields := c.Fields()
	labelWidth := 0
	for _, field := range fields {
		labelWidth = max(labelWidth, utf8.RuneCountInString(field.Label))
	}

	for _, field := range fields {
		value := field.Value
		if value == "" {
			value = "-"
		}
		line := fmt.Sprintf("%s  %s", f.paint("cyan", pad(field.Label+":", labelWidth+1), options), value)
		if slices.Contains(c.ReviewFields, field.Name) {
			line += " " + f.paint("yellow", "(review)", options)
		}
		builder.WriteString(line + "\n")
	}

	if len(c.Inaccuracies) > 0 {
		builder.WriteString(f.paint("red", "Needs review:", options) + "\n")
		for _, note := range c.Inaccuracies {
			builder.WriteString("  - " + note + "\n")
		}
	}
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
