// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package fingerprint implements 'sqlfp fingerprint'.
package fingerprint

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/DataDog/sqlfingerprint/cmd/sqlfp/command"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint"
)

// Commands returns a slice of subcommands for the 'sqlfp' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	fingerprintCmd := &cobra.Command{
		Use:   "fingerprint [query...]",
		Short: "Print the fingerprint of each query",
		Long: `Prints the 64-bit fingerprint of each query as 16 hex digits. Queries that
differ only in constant values, parameter numbers, aliases or the order of
unordered lists share a fingerprint.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := command.NewRunner(cmd, globalParams)
			if err != nil {
				return err
			}
			defer r.Stop()
			return r.Run(cmd.Context(), args, func(query string) (interface{}, error) {
				return r.Engine.Fingerprint(query)
			}, text)
		},
	}
	return []*cobra.Command{fingerprintCmd}
}

func text(v interface{}) string {
	res := v.(*sqlfingerprint.FingerprintResult)
	line := color.CyanString(res.Hex)
	if len(res.Tokens) > 0 {
		line += "\t" + strings.Join(res.Tokens, " ")
	}
	for _, w := range res.Warnings {
		line += "\n" + color.YellowString("warning: %s", w)
	}
	return line
}
