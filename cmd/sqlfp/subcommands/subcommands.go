// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package subcommands lists the subcommands of sqlfp.
package subcommands

import (
	"github.com/DataDog/sqlfingerprint/cmd/sqlfp/command"
	cmdfingerprint "github.com/DataDog/sqlfingerprint/cmd/sqlfp/subcommands/fingerprint"
	cmdnormalize "github.com/DataDog/sqlfingerprint/cmd/sqlfp/subcommands/normalize"
	cmdparse "github.com/DataDog/sqlfingerprint/cmd/sqlfp/subcommands/parse"
	cmdtokens "github.com/DataDog/sqlfingerprint/cmd/sqlfp/subcommands/tokens"
	cmdversion "github.com/DataDog/sqlfingerprint/cmd/sqlfp/subcommands/version"
)

// SqlfpSubcommands returns SubcommandFactories for the subcommands supported
// by sqlfp.
func SqlfpSubcommands() []command.SubcommandFactory {
	return []command.SubcommandFactory{
		cmdfingerprint.Commands,
		cmdnormalize.Commands,
		cmdparse.Commands,
		cmdtokens.Commands,
		cmdversion.Commands,
	}
}
