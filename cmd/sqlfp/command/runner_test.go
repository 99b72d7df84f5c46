// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/DataDog/sqlfingerprint/pkg/config"
	"github.com/DataDog/sqlfingerprint/pkg/errors"
)

func TestReadQueries(t *testing.T) {
	queries, err := readQueries(strings.NewReader("SELECT 1\r\n\n   \nSELECT 'a'\nSELECT 2"))
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT 1", "SELECT 'a'", "SELECT 2"}, queries)

	queries, err = readQueries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestProcessKeepsOrder(t *testing.T) {
	assert := assert.New(t)
	queries := make([]string, 50)
	for i := range queries {
		queries[i] = fmt.Sprintf("q%d", i)
	}

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	results, err := process(context.Background(), queries, 4, func(q string) (interface{}, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		time.Sleep(time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
		if q == "q7" {
			return nil, errors.New(1, "boom")
		}
		if q == "q8" {
			return nil, stderrors.New("plain")
		}
		return strings.ToUpper(q), nil
	})
	require.NoError(t, err)
	require.Len(t, results, 50)
	assert.LessOrEqual(maxInFlight, 4)

	for i, res := range results {
		assert.Equal(queries[i], res.Query)
		switch i {
		case 7:
			require.NotNil(t, res.Error)
			assert.Equal("boom", res.Error.Message)
			assert.Equal(2, res.Error.Cursorpos)
			assert.Nil(res.Result)
		case 8:
			require.NotNil(t, res.Error)
			assert.Equal("plain", res.Error.Message)
			assert.Zero(res.Error.Cursorpos)
		default:
			assert.Nil(res.Error)
			assert.Equal(fmt.Sprintf("Q%d", i), res.Result)
		}
	}
}

func TestProcessCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := process(ctx, []string{"a", "b"}, 1, func(string) (interface{}, error) {
		return "x", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteResults(t *testing.T) {
	color.NoColor = true
	results := []Result{
		{Query: "SELECT 1", Result: "SELECT $1"},
		{Query: "SELECT (", Error: &errors.QueryError{Message: "syntax error at end of input", Cursorpos: 9}},
	}
	text := func(v interface{}) string { return v.(string) }

	var b bytes.Buffer
	require.NoError(t, writeResults(&b, config.FormatText, results, text))
	assert.Equal(t, "SELECT $1\nerror: syntax error at end of input (position 9)\n", b.String())

	b.Reset()
	require.NoError(t, writeResults(&b, config.FormatJSON, results, text))
	assert.JSONEq(t, `[
		{"query": "SELECT 1", "result": "SELECT $1"},
		{"query": "SELECT (", "error": {"message": "syntax error at end of input", "filename": "", "funcname": "", "lineno": 0, "cursorpos": 9}}
	]`, b.String())

	b.Reset()
	require.NoError(t, writeResults(&b, config.FormatYAML, results, text))
	var decoded []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(b.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "SELECT $1", decoded[0]["result"])
	assert.Equal(t, 9, decoded[1]["error"].(map[string]interface{})["cursorpos"])
}

func TestCompactJSON(t *testing.T) {
	assert.Equal(t, `{"a":[1,"b"]}`, CompactJSON(map[string]interface{}{"a": []interface{}{1, "b"}}))
}
