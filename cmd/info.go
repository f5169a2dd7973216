// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/spf13/cobra"

	"contact-splitter/internal/formatters"
	"contact-splitter/internal/help"
	"contact-splitter/internal/lexicon"
	"contact-splitter/internal/salutation"
)

func languagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "Show recognized salutations and letter greetings per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			h := help.NewSystem(out, a.formatterOptions(out).NoColor)
			h.ShowLanguages(help.Languages(lexicon.Default(), salutation.DefaultGreetings()))
			return nil
		},
	}
}

func formatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			help.NewSystem(out, a.formatterOptions(out).NoColor).ShowFormats(formatters.GetSupportedFormats())
			return nil
		},
	}
}
