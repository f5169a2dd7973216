// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"contact-splitter/internal/contact"
	"contact-splitter/internal/core"
	"contact-splitter/internal/formatters"
)

// historyCommand prints the session history in interactive mode
const historyCommand = ":history"

func parseCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "parse [name...]",
		Short: "Parse names given as arguments, or line by line from stdin",
		Long: "Parse each argument as one name. Without arguments names are read line by line\n" +
			"from stdin; entering " + historyCommand + " prints the contacts saved with --save.",
		Example: `  contact-splitter parse "Frau Dr. Maria von Schäfer-Karrenberger"
  contact-splitter parse -f json "Herr Schlüter, Fabian"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.buildService(cmd, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			opts := a.formatterOptions(out)

			if len(args) > 0 {
				contacts := make([]*contact.Contact, 0, len(args))
				for _, arg := range args {
					c := svc.Process(cmd.Context(), arg)
					if save {
						svc.AddToHistory(c)
					}
					contacts = append(contacts, c)
				}
				return write(out, a.cfg.Defaults.Format, contacts, opts)
			}

			return parseInteractive(cmd, a, svc, save, opts)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "add parsed contacts to the session history")
	return cmd
}

// parseInteractive parses stdin line by line until EOF
func parseInteractive(cmd *cobra.Command, a *app, svc *core.Service, save bool, opts formatters.FormatterOptions) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case historyCommand:
			if err := write(out, a.cfg.Defaults.Format, svc.History(), opts); err != nil {
				return err
			}
			continue
		}

		c := svc.Process(cmd.Context(), line)
		if save {
			svc.AddToHistory(c)
		}
		if err := write(out, a.cfg.Defaults.Format, []*contact.Contact{c}, opts); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// write formats contacts and prints them with a trailing newline
func write(out io.Writer, format string, contacts []*contact.Contact, opts formatters.FormatterOptions) error {
	content, err := formatters.Export(format, contacts, opts)
	if err != nil {
		return err
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, err = io.WriteString(out, content)
	return err
}
