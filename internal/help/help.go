// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"contact-splitter/internal/formatters"
	"contact-splitter/internal/lexicon"
	"contact-splitter/internal/salutation"
)

// LanguageInfo describes what the parser knows about one language.
type LanguageInfo struct {
	Code        string
	Salutations []string // salutation tokens recognized in input
	Female      string
	Male        string
	Unknown     string
	WithTitles  bool
}

// Languages merges the salutation table and greeting tables into one
// entry per language, sorted by code.
func Languages(tables *lexicon.Tables, greetings map[string]salutation.Greeting) []LanguageInfo {
	byCode := make(map[string]*LanguageInfo)
	get := func(code string) *LanguageInfo {
		if info, ok := byCode[code]; ok {
			return info
		}
		info := &LanguageInfo{Code: code}
		byCode[code] = info
		return info
	}

	for _, entry := range tables.Salutations() {
		info := get(entry.Language)
		info.Salutations = append(info.Salutations, entry.Token)
	}
	for code, g := range greetings {
		info := get(code)
		info.Female = strings.TrimSpace(g.Opening + " " + g.Female)
		info.Male = strings.TrimSpace(g.Opening + " " + g.Male)
		info.Unknown = g.Unknown
		info.WithTitles = g.WithTitles
	}

	result := make([]LanguageInfo, 0, len(byCode))
	for _, info := range byCode {
		result = append(result, *info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}

// System renders help pages.
type System struct {
	out    io.Writer
	colors map[string]*color.Color
}

// NewSystem creates a help system writing to out.
func NewSystem(out io.Writer, noColor bool) *System {
	colors := map[string]*color.Color{
		"title":  color.New(color.FgWhite, color.Bold),
		"header": color.New(color.FgBlue, color.Bold),
		"item":   color.New(color.FgCyan),
	}
	if noColor {
		for _, c := range colors {
			c.DisableColor()
		}
	}
	return &System{out: out, colors: colors}
}

// ShowLanguages prints the language overview.
func (h *System) ShowLanguages(languages []LanguageInfo) {
	h.colors["title"].Fprintln(h.out, "Supported languages")
	fmt.Fprintln(h.out, "===================")

	for _, lang := range languages {
		fmt.Fprintln(h.out)
		h.colors["header"].Fprintf(h.out, "%s\n", strings.ToUpper(lang.Code))

		w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Salutations:\t%s\n", orNone(strings.Join(lang.Salutations, ", ")))
		fmt.Fprintf(w, "  Female:\t%s\n", orNone(lang.Female))
		fmt.Fprintf(w, "  Male:\t%s\n", orNone(lang.Male))
		fmt.Fprintf(w, "  Unknown:\t%s\n", orNone(lang.Unknown))
		if lang.WithTitles {
			fmt.Fprintln(w, "  Titles:\tincluded in letter salutation")
		}
		w.Flush()
	}
}

// ShowFormats prints the output formats.
func (h *System) ShowFormats(formats []formatters.FormatInfo) {
	h.colors["title"].Fprintln(h.out, "Output formats")
	fmt.Fprintln(h.out, "==============")
	fmt.Fprintln(h.out)

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, f := range formats {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", h.colors["item"].Sprint(f.Name), f.Extension, f.Description)
	}
	w.Flush()
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
