// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-splitter/internal/formatters/shared"
)

// run executes the CLI in an isolated config directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONTACT_SPLITTER_CONFIG_DIR", dir)
	t.Setenv("OPENAI_API_KEY", "")

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func TestParse_JSON(t *testing.T) {
	out, err := run(t, "", "parse", "-f", "json", "Frau Dr. Maria von Schäfer-Karrenberger")
	require.NoError(t, err)

	var resp shared.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Contacts, 1)
	c := resp.Contacts[0]
	assert.Equal(t, "Frau", c.Salutation)
	assert.Equal(t, "Dr.", c.Titles)
	assert.Equal(t, "Maria", c.FirstName)
	assert.Equal(t, "de", c.Language)
	assert.Equal(t, "Sehr geehrte Frau Dr. "+c.LastName, c.LetterSalutation)
}

func TestParse_TextIsUncoloredOffTerminal(t *testing.T) {
	out, err := run(t, "", "parse", "Monsieur Heimer")
	require.NoError(t, err)
	assert.Contains(t, out, "Monsieur Heimer")
	assert.NotContains(t, out, "\x1b[")
}

func TestParse_Interactive(t *testing.T) {
	out, err := run(t, "Herr Hans Huber\n\nFrau Anna Schmidt\n:history\n", "parse", "--save", "-f", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// two single-contact tables followed by the two-contact history
	require.Len(t, lines, 7)
	assert.Contains(t, lines[1], "Huber")
	assert.Contains(t, lines[3], "Schmidt")
	assert.Contains(t, lines[5], "Huber")
	assert.Contains(t, lines[6], "Schmidt")
}

func TestParse_UnknownFormat(t *testing.T) {
	_, err := run(t, "", "parse", "-f", "xml", "Herr Hans Huber")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format 'xml'")
}

func TestBatch_KeepsInputOrder(t *testing.T) {
	input := "# contacts\nHerr Hans Huber\nFrau Anna Schmidt\nMonsieur Heimer\n"
	out, err := run(t, input, "batch", "-", "-f", "csv", "-w", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[1], "Huber")
	assert.Contains(t, lines[2], "Schmidt")
	assert.Contains(t, lines[3], "Heimer")
}

func TestBatch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("Dr. Benjamin Henrisson\n"), 0o600))

	out, err := run(t, "", "batch", path, "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"lastName": "Henrisson"`)
}

func TestBatch_MissingFile(t *testing.T) {
	_, err := run(t, "", "batch", filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestTitles(t *testing.T) {
	titlesFile := filepath.Join(t.TempDir(), "titles.json")

	out, err := run(t, "", "--titles-file", titlesFile, "titles", "add", "Magister", "Mag.")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")
	assert.FileExists(t, titlesFile)

	out, err = run(t, "", "--titles-file", titlesFile, "titles", "lookup", "magister")
	require.NoError(t, err)
	assert.Equal(t, "Mag.\n", out)

	out, err = run(t, "", "--titles-file", titlesFile, "titles", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "magister")

	_, err = run(t, "", "--titles-file", titlesFile, "titles", "delete", "magister")
	require.NoError(t, err)

	_, err = run(t, "", "--titles-file", titlesFile, "titles", "delete", "magister")
	require.Error(t, err)

	_, err = run(t, "", "--titles-file", titlesFile, "titles", "lookup", "doktr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "doktor"`)

	out, err = run(t, "", "--titles-file", titlesFile, "titles", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Title dictionary reset")
}

func TestTitlesList_JSON(t *testing.T) {
	out, err := run(t, "", "titles", "list", "-f", "json")
	require.NoError(t, err)

	var entries map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, "Prof.", entries["professor"])
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "contact-splitter "))
}

func TestLanguages(t *testing.T) {
	out, err := run(t, "", "languages")
	require.NoError(t, err)
	assert.Contains(t, out, "Sehr geehrter Herr")
	assert.Contains(t, out, "Estimada Señora")
}

func TestFormats(t *testing.T) {
	out, err := run(t, "", "formats")
	require.NoError(t, err)
	for _, name := range []string{"csv", "json", "text", "yaml"} {
		assert.Contains(t, out, name)
	}
}
