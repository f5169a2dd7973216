// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"contact-splitter/internal/contact"
)

// ProcessBatch runs Process for every name on at most workers goroutines.
// Results keep the input order. Only cancellation of ctx returns an error.
func (s *Service) ProcessBatch(ctx context.Context, names []string, workers int) ([]*contact.Contact, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]*contact.Contact, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.Process(gctx, name)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch processing canceled: %w", err)
	}
	return results, nil
}

// ReadNames reads one name per line. Blank lines and lines starting with
// '#' are skipped.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}

	return names, nil
}
