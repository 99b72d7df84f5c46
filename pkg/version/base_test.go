// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	i := Get()
	assert.Equal(t, "0.1.0", i.Version)
	assert.Equal(t, 3, i.FingerprintVersion)
	assert.Equal(t, runtime.Version(), i.GoVersion)
}

func TestString(t *testing.T) {
	i := Info{Version: "1.0.0", FingerprintVersion: 3, GoVersion: "go1.22.0"}
	assert.Equal(t, "sqlfp 1.0.0 - Fingerprint version: 3 - Go version: go1.22.0", i.String())
	i.Commit = "abc123"
	assert.Equal(t, "sqlfp 1.0.0 - Fingerprint version: 3 - Go version: go1.22.0 - Commit: abc123", i.String())
}
