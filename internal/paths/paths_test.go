// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir_Override(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONTACT_SPLITTER_CONFIG_DIR", dir)

	assert.Equal(t, dir, GetConfigDir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), GetConfigFile())
	assert.Equal(t, filepath.Join(dir, "titles.json"), GetTitlesFile())
}

func TestGetConfigDir_Default(t *testing.T) {
	t.Setenv("CONTACT_SPLITTER_CONFIG_DIR", "")

	dir := GetConfigDir()
	assert.NotEmpty(t, dir)
	assert.Contains(t, dir, "contact-splitter")
}

func TestResolvePath(t *testing.T) {
	resolved, err := ResolvePath("")
	require.NoError(t, err)
	assert.Empty(t, resolved)

	resolved, err = ResolvePath("some/../file.json")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(resolved))
	assert.Equal(t, "file.json", filepath.Base(resolved))

	home, err := os.UserHomeDir()
	if err == nil {
		resolved, err = ResolvePath("~/titles.json")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, "titles.json"), resolved)
	}
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, ValidatePath("/tmp/titles.json"))

	err := ValidatePath("bad\x00path")
	var pathErr *PathValidationError
	require.ErrorAs(t, err, &pathErr)
	assert.Equal(t, "contains null byte", pathErr.Reason)
}
