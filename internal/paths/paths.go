// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const appDirName = "contact-splitter"

// GetConfigDir returns the contact-splitter configuration directory.
// CONTACT_SPLITTER_CONFIG_DIR overrides the per-user config location.
func GetConfigDir() string {
	if dir := os.Getenv("CONTACT_SPLITTER_CONFIG_DIR"); dir != "" {
		return dir
	}

	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appDirName)
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, "."+appDirName)
	}

	return filepath.Join(os.TempDir(), appDirName)
}

// GetConfigFile returns the path to the main config file
func GetConfigFile() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// GetTitlesFile returns the path to the title dictionary
func GetTitlesFile() string {
	return filepath.Join(GetConfigDir(), "titles.json")
}

// ResolvePath expands a leading "~" and returns the absolute, cleaned path.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	return filepath.Abs(filepath.Clean(path))
}

// ValidatePath rejects paths containing null bytes
func ValidatePath(path string) error {
	if strings.ContainsRune(path, 0) {
		return &PathValidationError{Path: path, Reason: "contains null byte"}
	}
	return nil
}

// PathValidationError represents a path validation error
type PathValidationError struct {
	Path   string
	Reason string
}

func (e *PathValidationError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Reason
}
