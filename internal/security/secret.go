// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package security

import (
	"log/slog"
)

const redacted = "[REDACTED]"

// Secret holds a credential such as an API key. Its String and LogValue
// methods never expose the value, so it can be passed to fmt and slog.
//
// Clear zeroes the internal buffer. Copies made by Reveal are ordinary
// strings and cannot be scrubbed.
type Secret struct {
	data []byte
}

// NewSecret copies s into a new Secret.
func NewSecret(s string) *Secret {
	data := make([]byte, len(s))
	copy(data, s)
	return &Secret{data: data}
}

// Reveal returns the plain value. A nil Secret reveals "".
func (s *Secret) Reveal() string {
	if s == nil {
		return ""
	}
	return string(s.data)
}

// IsEmpty reports whether the secret holds no value.
func (s *Secret) IsEmpty() bool {
	return s == nil || len(s.data) == 0
}

func (s *Secret) String() string {
	if s.IsEmpty() {
		return ""
	}
	return redacted
}

// LogValue implements slog.LogValuer.
func (s *Secret) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// Clear overwrites the buffer with zeros and releases it.
func (s *Secret) Clear() {
	if s == nil {
		return
	}
	clear(s.data)
	s.data = nil
}
