// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cihub/seelog"

	"github.com/DataDog/sqlfingerprint/pkg/util/log"
)

const logFileMaxSize = 10 * 1024 * 1024         // 10MB
const logDateFormat = "2006-01-02 15:04:05 MST" // see time.Format for format syntax

var logFormat = "%Date(" + logDateFormat + ") | SQLFP | %LEVEL | (%RelFile:%Line) | %Msg%n"

// logOutput receives log lines when no log file is configured. Results are
// printed on stdout, so logs stay on stderr.
var logOutput io.Writer = os.Stderr

// SetupLogger sets up the default logger. When logFile is set, logs go to a
// size-rolled file instead of stderr.
func SetupLogger(logLevel, logFile string) error {
	lvl, ok := seelog.LogLevelFromString(strings.ToLower(logLevel))
	if !ok {
		return fmt.Errorf("unknown log level: %s", logLevel)
	}

	var logger seelog.LoggerInterface
	var err error
	if logFile == "" {
		logger, err = seelog.LoggerFromWriterWithMinLevelAndFormat(logOutput, lvl, logFormat)
	} else {
		logger, err = seelog.LoggerFromConfigAsString(buildLoggerConfig(lvl.String(), logFile))
	}
	if err != nil {
		return err
	}
	log.SetupLogger(logger, lvl.String())
	return nil
}

func buildLoggerConfig(logLevel, logFile string) string {
	configTemplate := `<seelog minlevel="%s">
    <outputs formatid="common">
        <rollingfile type="size" filename="%s" maxsize="%d" maxrolls="1" />
    </outputs>
    <formats>
        <format id="common" format="%s"/>
    </formats>
</seelog>`
	return fmt.Sprintf(configTemplate, logLevel, logFile, logFileMaxSize, logFormat)
}
