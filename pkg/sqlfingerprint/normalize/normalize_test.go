// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/sqlfingerprint/pkg/errors"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/fingerprint"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/parser"
)

func TestNormalize(t *testing.T) {
	for _, tt := range []struct {
		name, in, out string
	}{
		{"no constants", "SELECT a FROM t WHERE b = c", "SELECT a FROM t WHERE b = c"},
		{"integer", "SELECT * FROM t WHERE a = 1", "SELECT * FROM t WHERE a = $1"},
		{"negative", "SELECT * FROM t WHERE x = -5", "SELECT * FROM t WHERE x = $1"},
		{"negative float", "SELECT -1.5", "SELECT $1"},
		{"literal kinds", "SELECT 'abc', 1.5, x'1F', true, NULL FROM t", "SELECT $1, $2, $3, $4, $5 FROM t"},
		{"in list", "SELECT * FROM t WHERE a IN (1, 2, 3)", "SELECT * FROM t WHERE a IN ($1, $2, $3)"},
		{"existing params", "SELECT * FROM t WHERE a = $1 AND b = 2", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{"params after", "SELECT * FROM t WHERE a = 2 AND b = $3", "SELECT * FROM t WHERE a = $4 AND b = $3"},
		{"group by expression", "SELECT a+1 AS x FROM t GROUP BY a+1", "SELECT a+$1 AS x FROM t GROUP BY a+$1"},
		{
			"group by reordered",
			"SELECT a + 1, b + 2 FROM t GROUP BY b + 2, a + 1",
			"SELECT a + $1, b + $2 FROM t GROUP BY b + $2, a + $1",
		},
		{"group by ordinal", "SELECT a, b FROM t GROUP BY 1", "SELECT a, b FROM t GROUP BY 1"},
		{"order by ordinal", "SELECT a, b FROM t ORDER BY 2 DESC", "SELECT a, b FROM t ORDER BY 2 DESC"},
		{"order by expression", "SELECT a FROM t ORDER BY a + 1", "SELECT a FROM t ORDER BY a + $1"},
		{"limit offset", "SELECT * FROM t LIMIT 10 OFFSET 5", "SELECT * FROM t LIMIT $2 OFFSET $1"},
		{"type modifiers", "SELECT CAST(a AS varchar(10)), b::numeric(10, 2) FROM t", "SELECT CAST(a AS varchar(10)), b::numeric(10, 2) FROM t"},
		{"array bounds", "SELECT a::int[3] FROM t", "SELECT a::int[3] FROM t"},
		{"typed literal", "SELECT date '2020-01-01'", "SELECT date $1"},
		{"cast literal", "SELECT '1'::int", "SELECT $1::int"},
		{"insert", "INSERT INTO t (a, b) VALUES (1, 'x'), (2, DEFAULT)", "INSERT INTO t (a, b) VALUES ($1, $2), ($3, DEFAULT)"},
		{"update", "UPDATE t SET a = 'x' WHERE id = 5 RETURNING a", "UPDATE t SET a = $1 WHERE id = $2 RETURNING a"},
		{"cte", "WITH w AS (SELECT 1) SELECT * FROM w WHERE a > 2", "WITH w AS (SELECT $2) SELECT * FROM w WHERE a > $1"},
		{"union", "SELECT 1 UNION SELECT 2", "SELECT $1 UNION SELECT $2"},
		{"multiple statements", "SELECT 1; SELECT 'a'", "SELECT $1; SELECT $2"},
		{"explain", "EXPLAIN ANALYZE SELECT * FROM t WHERE a = 1", "EXPLAIN ANALYZE SELECT * FROM t WHERE a = $1"},
		{"set", "SET statement_timeout = 5000", "SET statement_timeout = $1"},
		{"set string", "SET search_path TO 'public'", "SET search_path TO $1"},
		{"password", "CREATE ROLE r WITH LOGIN PASSWORD 'secret'", "CREATE ROLE r WITH LOGIN PASSWORD $1"},
		{"valid until", "CREATE USER u VALID UNTIL '2030-01-01' CONNECTION LIMIT 5", "CREATE USER u VALID UNTIL $1 CONNECTION LIMIT 5"},
		{"do block", "DO $$BEGIN PERFORM 1; END$$", "DO $1"},
		{"do language", "DO LANGUAGE plpgsql $x$BEGIN END$x$", "DO LANGUAGE plpgsql $1"},
		{
			"subscription",
			"CREATE SUBSCRIPTION s CONNECTION 'host=db password=hunter2' PUBLICATION p",
			"CREATE SUBSCRIPTION s CONNECTION $1 PUBLICATION p",
		},
		{"prepare", "PREPARE p AS SELECT 1", "PREPARE p AS SELECT 1"},
		{"unicode string", "SELECT U&'d\\0061t\\+000061'  FROM t", "SELECT $1  FROM t"},
		{"dollar string", "SELECT $tag$it's$tag$ FROM t", "SELECT $1 FROM t"},
		{"comments", "SELECT /* c */ 1 -- trailing\n", "SELECT /* c */ $1 -- trailing\n"},
		{"empty", "", ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.out, out)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, q := range []string{
		"SELECT a FROM t",
		"SELECT * FROM t WHERE a = $1 AND b IN ($2, $3)",
		"SELECT a, count(*) FROM t GROUP BY 1 ORDER BY 2",
	} {
		out, err := Normalize(q)
		require.NoError(t, err)
		assert.Equal(t, q, out)
	}
}

func TestNormalizeKeepsFingerprint(t *testing.T) {
	for _, q := range []string{
		"SELECT a+1 AS x FROM t GROUP BY a+1",
		"SELECT * FROM t WHERE x = -5 AND y IN ('a', 'b') LIMIT 10",
		"INSERT INTO t (a, b) VALUES (1, 'x') ON CONFLICT (a) DO UPDATE SET b = 'y'",
		"UPDATE t SET a = a + 1 WHERE b = '2020-01-01'::date",
	} {
		t.Run(q, func(t *testing.T) {
			norm, err := Normalize(q)
			require.NoError(t, err)

			before, err := parser.Parse(q)
			require.NoError(t, err)
			after, err := parser.Parse(norm)
			require.NoError(t, err, norm)

			a, err := fingerprint.Fingerprint(before, fingerprint.Options{})
			require.NoError(t, err)
			b, err := fingerprint.Fingerprint(after, fingerprint.Options{})
			require.NoError(t, err)
			assert.Equal(t, a.Hex, b.Hex)
		})
	}
}

func TestConstants(t *testing.T) {
	q := "SELECT 1, 'ab' FROM t WHERE a = -2"
	stmts, err := parser.Parse(q)
	require.NoError(t, err)
	consts, err := Constants(q, stmts)
	require.NoError(t, err)
	assert.Equal(t, []Constant{
		{Offset: 7, Length: 1, Param: 1},
		{Offset: 10, Length: 4, Param: 2},
		{Offset: 32, Length: 2, Param: 3},
	}, consts)
}

func TestNormalizeSyntaxError(t *testing.T) {
	_, err := Normalize("SELECT FROM WHERE")
	require.Error(t, err)
	qe, ok := errors.AsQueryError(err)
	require.True(t, ok)
	assert.Equal(t, 13, qe.Cursorpos)
	assert.Contains(t, qe.Message, "syntax error")
}

func TestFillLengthsStopsAtEnd(t *testing.T) {
	assert := assert.New(t)
	query := "SELECT 1"
	locs := []location{
		{offset: 7, length: -1, paramID: -1},
		{offset: 7, length: -1, paramID: -2},
		{offset: 20, length: -1, paramID: -3},
	}
	fillLengths(query, locs)
	assert.Equal(1, locs[0].length)
	assert.Equal(-1, locs[1].length)
	assert.Equal(-1, locs[2].length)
	assert.Equal("SELECT $1", rewrite(query, locs, 0))
}
