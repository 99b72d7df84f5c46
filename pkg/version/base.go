// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

// Package version defines the version of sqlfp
package version

import (
	"fmt"
	"runtime"

	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/fingerprint"
)

// Version contains the version of sqlfp.
// It is populated at build time using build flags:
//
//	-ldflags "-X github.com/DataDog/sqlfingerprint/pkg/version.Version=1.2.3"
var Version string

// Commit is populated with the short commit hash from which sqlfp was built
var Commit string

var versionDefault = "0.1.0"

func init() {
	if Version == "" {
		Version = versionDefault
	}
}

// Info describes a build of sqlfp.
type Info struct {
	Version            string `json:"version" yaml:"version"`
	Commit             string `json:"commit,omitempty" yaml:"commit,omitempty"`
	FingerprintVersion int    `json:"fingerprint_version" yaml:"fingerprint_version"`
	GoVersion          string `json:"go_version" yaml:"go_version"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:            Version,
		Commit:             Commit,
		FingerprintVersion: fingerprint.Version,
		GoVersion:          runtime.Version(),
	}
}

func (i Info) String() string {
	s := fmt.Sprintf("sqlfp %s - Fingerprint version: %d - Go version: %s", i.Version, i.FingerprintVersion, i.GoVersion)
	if i.Commit != "" {
		s += " - Commit: " + i.Commit
	}
	return s
}
