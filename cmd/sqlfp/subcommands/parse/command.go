// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package parse implements 'sqlfp parse'.
package parse

import (
	"github.com/spf13/cobra"

	"github.com/DataDog/sqlfingerprint/cmd/sqlfp/command"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
)

// Commands returns a slice of subcommands for the 'sqlfp' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse [query...]",
		Short: "Print the parse tree of each query",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := command.NewRunner(cmd, globalParams)
			if err != nil {
				return err
			}
			defer r.Stop()
			return r.Run(cmd.Context(), args, func(query string) (interface{}, error) {
				stmts, err := r.Engine.Parse(query)
				if err != nil {
					return nil, err
				}
				tree := make([]interface{}, len(stmts))
				for i, stmt := range stmts {
					tree[i] = ast.Tree(stmt)
				}
				return tree, nil
			}, command.CompactJSON)
		},
	}
	return []*cobra.Command{parseCmd}
}
