// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package version implements 'sqlfp version'.
package version

import (
	"github.com/spf13/cobra"

	"github.com/DataDog/sqlfingerprint/cmd/sqlfp/command"
	"github.com/DataDog/sqlfingerprint/pkg/version"
)

// Commands returns a slice of subcommands for the 'sqlfp' command.
func Commands(globalParams *command.GlobalParams) []*cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version info",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := command.NewRunner(cmd, globalParams)
			if err != nil {
				return err
			}
			defer r.Stop()
			info := version.Get()
			return r.Print(info, info.String())
		},
	}
	return []*cobra.Command{versionCmd}
}
