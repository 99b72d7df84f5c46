// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/sqlfingerprint/pkg/util/log"
)

func TestSetupLogger(t *testing.T) {
	var b bytes.Buffer
	logOutput = &b
	defer func() { logOutput = os.Stderr }()

	require.NoError(t, SetupLogger("WARN", ""))
	log.Infof("hidden")
	log.Warnf("connecting with password=%s", "hunter2")
	log.Flush()

	out := b.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "| SQLFP | WARN |")
	assert.Contains(t, out, "password=********")
	assert.NotContains(t, out, "hunter2")
}

func TestSetupLoggerUnknownLevel(t *testing.T) {
	assert.EqualError(t, SetupLogger("loud", ""), "unknown log level: loud")
}

func TestBuildLoggerConfig(t *testing.T) {
	cfg := buildLoggerConfig("debug", "/var/log/sqlfp.log")
	assert.Contains(t, cfg, `<seelog minlevel="debug">`)
	assert.Contains(t, cfg, `filename="/var/log/sqlfp.log" maxsize="10485760"`)
	assert.Contains(t, cfg, "%Date(2006-01-02 15:04:05 MST) | SQLFP | %LEVEL")
}
