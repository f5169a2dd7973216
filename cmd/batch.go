// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"contact-splitter/internal/core"
)

func batchCmd(a *app) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <file|->",
		Short: "Parse one name per line from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader
			if args[0] == "-" {
				in = cmd.InOrStdin()
			} else {
				f, err := os.Open(filepath.Clean(args[0]))
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			names, err := core.ReadNames(in)
			if err != nil {
				return err
			}

			svc, err := a.buildService(cmd, nil)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Defaults.Workers
			}
			contacts, err := svc.ProcessBatch(cmd.Context(), names, workers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return write(out, a.cfg.Defaults.Format, contacts, a.formatterOptions(out))
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of names parsed concurrently")
	return cmd
}
