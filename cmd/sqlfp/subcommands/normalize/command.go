// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package normalize implements 'sqlfp normalize'.
package normalize

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DataDog/sqlfingerprint/cmd/sqlfp/command"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint"
)

// Commands returns a slice of subcommands for the 'sqlfp' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	normalizeCmd := &cobra.Command{
		Use:   "normalize [query...]",
		Short: "Print each query with its constants replaced by parameters",
		Long: `Prints each query with every constant replaced by a $n parameter. Numbering
starts after the highest parameter already present in the query. With the
lexer fallback enabled, queries the parser rejects are normalized by a SQL
lexer instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := command.NewRunner(cmd, globalParams)
			if err != nil {
				return err
			}
			defer r.Stop()
			return r.Run(cmd.Context(), args, func(query string) (interface{}, error) {
				return r.Engine.Normalize(query)
			}, text)
		},
	}
	return []*cobra.Command{normalizeCmd}
}

func text(v interface{}) string {
	res := v.(*sqlfingerprint.NormalizeResult)
	if res.Fallback {
		return res.Query + "\t" + color.YellowString("(lexer)")
	}
	return res.Query
}
