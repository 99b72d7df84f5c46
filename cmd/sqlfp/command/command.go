// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package command implements the top-level `sqlfp` binary, including its
// global flags and the batch runner shared by its subcommands.
package command

import (
	"github.com/spf13/cobra"
)

// GlobalParams contains the values of sqlfp-global Cobra flags.
//
// A pointer to this type is passed to SubcommandFactory's, but its contents
// are not valid until Cobra calls the subcommand's Run or RunE function.
type GlobalParams struct {
	// ConfFilePath holds the path to the sqlfp configuration file.
	ConfFilePath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// Format overrides the configured output format when set.
	Format string

	// Tokens includes the hashed tokens with fingerprints.
	Tokens bool

	// StatsdAddr enables metrics, sent to this address.
	StatsdAddr string

	// File is read for queries, one per line, when none are given as
	// arguments. "-" reads standard input.
	File string

	// Workers overrides the configured number of concurrent queries.
	Workers int

	// NoColor disables colors in text output.
	NoColor bool
}

// SubcommandFactory is a callable that will return a slice of subcommands.
type SubcommandFactory func(globalParams *GlobalParams) []*cobra.Command

// MakeCommand makes the top-level Cobra command for this app.
func MakeCommand(subcommandFactories []SubcommandFactory) *cobra.Command {
	globalParams := GlobalParams{}

	sqlfpCmd := &cobra.Command{
		Use:   "sqlfp [command]",
		Short: "Fingerprint and normalize PostgreSQL queries",
		Long: `sqlfp parses PostgreSQL queries and prints a fingerprint that is identical
for queries differing only in constants, or the query text with every
constant replaced by a $n parameter.`,
		SilenceUsage: true,
	}

	pflags := sqlfpCmd.PersistentFlags()
	pflags.StringVarP(&globalParams.ConfFilePath, "config", "c", "", "path to a sqlfp configuration yaml file")
	pflags.StringVar(&globalParams.LogLevel, "log-level", "", "log level (trace, debug, info, warn, error, critical, off)")
	pflags.StringVarP(&globalParams.Format, "format", "o", "", "output format (json, yaml, text)")
	pflags.BoolVar(&globalParams.Tokens, "tokens", false, "include the hashed tokens with each fingerprint")
	pflags.StringVar(&globalParams.StatsdAddr, "statsd", "", "send metrics to the statsd server at this address")
	pflags.StringVarP(&globalParams.File, "file", "f", "", "read queries from this file, one per line (- for stdin)")
	pflags.IntVar(&globalParams.Workers, "workers", 0, "number of queries processed concurrently")
	pflags.BoolVarP(&globalParams.NoColor, "no-color", "n", false, "disable color output")

	for _, sf := range subcommandFactories {
		for _, cmd := range sf(&globalParams) {
			sqlfpCmd.AddCommand(cmd)
		}
	}

	return sqlfpCmd
}
