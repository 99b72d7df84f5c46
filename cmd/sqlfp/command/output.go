// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package command

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/DataDog/sqlfingerprint/pkg/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CompactJSON renders v on a single line, for text output of structured
// results.
func CompactJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(b)
}

func writeResults(w io.Writer, format string, results []Result, text TextFunc) error {
	if format != config.FormatText {
		return encode(w, format, results)
	}
	for _, res := range results {
		var line string
		if res.Error != nil {
			line = color.RedString("error: %s", res.Error.Error())
		} else {
			line = text(res.Result)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeValue(w io.Writer, format string, v interface{}, text string) error {
	if format != config.FormatText {
		return encode(w, format, v)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
