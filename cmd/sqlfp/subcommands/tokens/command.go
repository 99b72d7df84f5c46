// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package tokens implements 'sqlfp tokens'.
package tokens

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/DataDog/sqlfingerprint/cmd/sqlfp/command"
)

// Commands returns a slice of subcommands for the 'sqlfp' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	tokensCmd := &cobra.Command{
		Use:   "tokens [query...]",
		Short: "Print the tokens hashed into each fingerprint",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := command.NewRunner(cmd, globalParams, command.WithTokens())
			if err != nil {
				return err
			}
			defer r.Stop()
			return r.Run(cmd.Context(), args, func(query string) (interface{}, error) {
				res, err := r.Engine.Fingerprint(query)
				if err != nil {
					return nil, err
				}
				return res.Tokens, nil
			}, func(v interface{}) string {
				return strings.Join(v.([]string), " ")
			})
		},
	}
	return []*cobra.Command{tokensCmd}
}
