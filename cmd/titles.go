// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func titlesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "titles",
		Short: "Manage the title dictionary",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all known titles",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.buildService(cmd, nil)
				if err != nil {
					return err
				}
				entries := svc.Titles()
				out := cmd.OutOrStdout()

				switch a.cfg.Defaults.Format {
				case "json":
					data, err := json.MarshalIndent(entries, "", "  ")
					if err != nil {
						return err
					}
					fmt.Fprintln(out, string(data))
				case "yaml":
					data, err := yaml.Marshal(entries)
					if err != nil {
						return err
					}
					fmt.Fprint(out, string(data))
				default:
					for _, long := range slices.Sorted(maps.Keys(entries)) {
						fmt.Fprintf(out, "%-30s %s\n", long, entries[long])
					}
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "add <long> <short>",
			Short: "Add or update a title",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.buildService(cmd, nil)
				if err != nil {
					return err
				}
				changed, err := svc.SaveTitle(args[0], args[1])
				if err != nil {
					return err
				}
				if changed {
					fmt.Fprintf(cmd.OutOrStdout(), "Saved %q -> %q\n", args[0], args[1])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Unchanged %q -> %q\n", args[0], args[1])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <long>",
			Short: "Delete a title",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.buildService(cmd, nil)
				if err != nil {
					return err
				}
				removed, err := svc.DeleteTitle(args[0])
				if err != nil {
					return err
				}
				if !removed {
					return fmt.Errorf("unknown title %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Restore the default title dictionary",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.buildService(cmd, nil)
				if err != nil {
					return err
				}
				if err := svc.ResetTitles(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Title dictionary reset (%d entries)\n", len(svc.Titles()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "lookup <token>",
			Short: "Resolve a title to its abbreviation",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				svc, err := a.buildService(cmd, nil)
				if err != nil {
					return err
				}
				short, ok, suggestion := svc.LookupTitle(args[0])
				if ok {
					fmt.Fprintln(cmd.OutOrStdout(), short)
					return nil
				}
				if suggestion != "" {
					return fmt.Errorf("unknown title %q, did you mean %q?", args[0], suggestion)
				}
				return fmt.Errorf("unknown title %q", args[0])
			},
		},
	)

	return cmd
}
