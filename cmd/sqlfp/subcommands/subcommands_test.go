// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package subcommands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/DataDog/sqlfingerprint/cmd/sqlfp/command"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint"
)

func runSqlfp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := command.MakeCommand(SqlfpSubcommands())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "off", "--no-color"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestNormalizeText(t *testing.T) {
	out, err := runSqlfp(t, "", "normalize", "-o", "text", "SELECT 1", "SELECT * FROM t WHERE a = 'x' AND b = $1")
	require.NoError(t, err)
	assert.Equal(t, "SELECT $1\nSELECT * FROM t WHERE a = $2 AND b = $1\n", out)
}

func TestFingerprintText(t *testing.T) {
	want, err := sqlfingerprint.Fingerprint("SELECT 1")
	require.NoError(t, err)

	out, err := runSqlfp(t, "", "fingerprint", "--format", "text", "SELECT 1", "SELECT 2", "select   3")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat(want.Hex+"\n", 3), out)

	out, err = runSqlfp(t, "", "fingerprint", "--format", "text", "--tokens", "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, want.Hex+"\tSelectStmt targetList ResTarget limitOption LIMIT_OPTION_DEFAULT op SETOP_NONE\n", out)
}

func TestTokens(t *testing.T) {
	out, err := runSqlfp(t, "", "tokens", "-o", "text", "SELECT 1")
	require.NoError(t, err)
	assert.Equal(t, "SelectStmt targetList ResTarget limitOption LIMIT_OPTION_DEFAULT op SETOP_NONE\n", out)
}

func TestJSONOutputAndFailures(t *testing.T) {
	out, err := runSqlfp(t, "", "normalize", "-o", "json", "SELECT 1", "SELECT (")
	assert.EqualError(t, err, "1 of 2 queries failed")

	var results []struct {
		Query  string                 `json:"query"`
		Result map[string]interface{} `json:"result"`
		Error  map[string]interface{} `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "SELECT $1", results[0].Result["query"])
	assert.Nil(t, results[0].Error)
	assert.Equal(t, "SELECT (", results[1].Query)
	assert.Equal(t, "syntax error at end of input", results[1].Error["message"])
	assert.EqualValues(t, 9, results[1].Error["cursorpos"])
	assert.NotEmpty(t, results[1].Error["funcname"])
}

func TestYAMLOutput(t *testing.T) {
	out, err := runSqlfp(t, "", "fingerprint", "-o", "yaml", "SELECT a FROM t")
	require.NoError(t, err)
	var results []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	res := results[0]["result"].(map[string]interface{})
	assert.Len(t, res["hex"], 16)
}

func TestQueriesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT 1\n\nSELECT 'a', 2\n"), 0o600))

	out, err := runSqlfp(t, "", "normalize", "-o", "text", "--file", path, "--workers", "2")
	require.NoError(t, err)
	assert.Equal(t, "SELECT $1\nSELECT $1, $2\n", out)

	_, err = runSqlfp(t, "", "normalize", "--file", filepath.Join(t.TempDir(), "missing.sql"))
	assert.Error(t, err)
}

func TestQueriesFromStdin(t *testing.T) {
	out, err := runSqlfp(t, "SELECT 1 LIMIT 5 OFFSET 10\n", "normalize", "-o", "text")
	require.NoError(t, err)
	assert.Equal(t, "SELECT $1 LIMIT $3 OFFSET $2\n", out)

	_, err = runSqlfp(t, "\n\n", "normalize")
	assert.EqualError(t, err, "no queries given")
}

func TestParse(t *testing.T) {
	out, err := runSqlfp(t, "", "parse", "-o", "text", "SELECT 1; SELECT 2")
	require.NoError(t, err)
	var tree []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	require.Len(t, tree, 2)
	assert.Contains(t, tree[0]["RawStmt"], "stmt")
}

func TestFallbackFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlfp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fallback:\n  enabled: true\noutput:\n  format: json\n"), 0o600))

	out, err := runSqlfp(t, "", "normalize", "--config", path, "SELECT * INTO archive FROM users WHERE id = 1")
	require.NoError(t, err)
	var results []struct {
		Result sqlfingerprint.NormalizeResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.True(t, results[0].Result.Fallback)
	assert.NotContains(t, results[0].Result.Query, "= 1")
}

func TestVersion(t *testing.T) {
	out, err := runSqlfp(t, "", "version", "-o", "text")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sqlfp "), out)

	out, err = runSqlfp(t, "", "version", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"fingerprint_version": 3`)
}

func TestInvalidFormat(t *testing.T) {
	_, err := runSqlfp(t, "", "normalize", "-o", "xml", "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output.format")
}
