// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"contact-splitter/internal/contact"
)

// Response is the top-level structure for JSON and YAML output
type Response struct {
	Contacts    []*contact.Contact `json:"contacts" yaml:"contacts"`
	Total       int                `json:"total" yaml:"total"`
	NeedsReview int                `json:"needsReview" yaml:"needs_review"`
}

// NewResponse wraps contacts. Nil contacts are skipped and nil slices inside a
// contact are emitted as empty lists.
func NewResponse(contacts []*contact.Contact) Response {
	resp := Response{Contacts: make([]*contact.Contact, 0, len(contacts))}
	for _, c := range contacts {
		if c == nil {
			continue
		}
		clone := c.Clone()
		resp.Contacts = append(resp.Contacts, clone)
		if clone.NeedsReview {
			resp.NeedsReview++
		}
	}
	resp.Total = len(resp.Contacts)
	return resp
}

// NeedsReviewMarker returns the short review marker used by tabular formats
func NeedsReviewMarker(c *contact.Contact) string {
	if c.NeedsReview {
		return "REVIEW"
	}
	return "OK"
}
