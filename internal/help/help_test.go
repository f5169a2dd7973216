// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-splitter/internal/formatters"
	_ "contact-splitter/internal/formatters/json"
	"contact-splitter/internal/lexicon"
	"contact-splitter/internal/salutation"
)

func TestLanguages(t *testing.T) {
	langs := Languages(lexicon.Default(), salutation.DefaultGreetings())

	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, []string{"de", "en", "es", "fr", "it"}, codes)

	de := langs[0]
	assert.Equal(t, []string{"herr", "frau"}, de.Salutations)
	assert.Equal(t, "Sehr geehrte Frau", de.Female)
	assert.True(t, de.WithTitles)

	en := langs[1]
	assert.Equal(t, "Dear Mr", en.Male)
	assert.Equal(t, "Dear Sirs", en.Unknown)
	assert.False(t, en.WithTitles)
}

func TestShowLanguages(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowLanguages(Languages(lexicon.Default(), salutation.DefaultGreetings()))

	out := buf.String()
	assert.Contains(t, out, "Supported languages")
	assert.Contains(t, out, "\nFR\n")
	assert.Contains(t, out, "Monsieur")
	assert.Contains(t, out, "included in letter salutation")
	assert.NotContains(t, out, "\x1b[")
}

func TestShowFormats(t *testing.T) {
	var buf bytes.Buffer
	NewSystem(&buf, true).ShowFormats(formatters.GetSupportedFormats())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Contains(t, buf.String(), "json")
	assert.Contains(t, buf.String(), ".json")
}
