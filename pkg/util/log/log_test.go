// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package log

import (
	"bytes"
	"testing"

	"github.com/cihub/seelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger() {
	bufferMutex.Lock()
	defer bufferMutex.Unlock()
	logger = nil
	logsBuffer = []func(){}
	initialized.Store(false)
}

func newBufferLogger(t *testing.T, b *bytes.Buffer) seelog.LoggerInterface {
	l, err := seelog.LoggerFromWriterWithMinLevelAndFormat(b, seelog.TraceLvl, "[%LEV] %Msg%n")
	require.NoError(t, err)
	return l
}

func TestLogBufferedBeforeSetup(t *testing.T) {
	resetLogger()
	defer resetLogger()

	Infof("before %s", "setup")
	Debugf("filtered")
	assert.Len(t, logsBuffer, 2)

	var b bytes.Buffer
	SetupLogger(newBufferLogger(t, &b), "info")
	Flush()

	assert.Equal(t, "[INF] before setup\n", b.String())
	assert.Empty(t, logsBuffer)
}

func TestLogLevels(t *testing.T) {
	resetLogger()
	defer resetLogger()

	var b bytes.Buffer
	SetupLogger(newBufferLogger(t, &b), "warn")

	Debugf("debug")
	Infof("info")
	err := Warnf("warn %d", 1)
	assert.EqualError(t, err, "warn 1")
	Errorf("error %d", 2) //nolint:errcheck
	Flush()
	assert.Equal(t, "[WRN] warn 1\n[ERR] error 2\n", b.String())

	lvl, err := GetLogLevel()
	require.NoError(t, err)
	assert.Equal(t, seelog.LogLevel(seelog.WarnLvl), lvl)

	var c bytes.Buffer
	require.NoError(t, ChangeLogLevel(newBufferLogger(t, &c), "debug"))
	Debugf("now visible")
	Flush()
	assert.Equal(t, "[DBG] now visible\n", c.String())

	assert.Error(t, ChangeLogLevel(newBufferLogger(t, &c), "loud"))
}

func TestLogScrubs(t *testing.T) {
	resetLogger()
	defer resetLogger()

	var b bytes.Buffer
	SetupLogger(newBufferLogger(t, &b), "debug")
	Adapter{}.Debugf("normalizing %s", "CREATE ROLE r PASSWORD 'hunter2'")
	Flush()
	assert.Equal(t, "[DBG] normalizing CREATE ROLE r PASSWORD '********'\n", b.String())
}

func TestLogNotInitialized(t *testing.T) {
	resetLogger()
	defer resetLogger()

	_, err := GetLogLevel()
	assert.Error(t, err)
	err = Warnf("password=%s", "hunter2")
	assert.EqualError(t, err, "password=********")
}
