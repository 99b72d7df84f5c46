// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataDog/sqlfingerprint/pkg/errors"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
)

func parseOne(t *testing.T, query string) ast.Node {
	t.Helper()
	stmts, err := Parse(query)
	require.NoError(t, err, query)
	require.Len(t, stmts, 1, query)
	return stmts[0].Stmt
}

func parseSelect(t *testing.T, query string) *ast.SelectStmt {
	t.Helper()
	stmt, ok := parseOne(t, query).(*ast.SelectStmt)
	require.True(t, ok, query)
	return stmt
}

func firstTarget(t *testing.T, query string) ast.Node {
	t.Helper()
	stmt := parseSelect(t, query)
	require.Equal(t, 1, stmt.TargetList.Len())
	return stmt.TargetList.Items[0].(*ast.ResTarget).Val
}

func TestParseSimpleSelect(t *testing.T) {
	assert := assert.New(t)
	stmt := parseSelect(t, "SELECT a, b AS c FROM t WHERE x = 1")

	require.Equal(t, 2, stmt.TargetList.Len())
	second := stmt.TargetList.Items[1].(*ast.ResTarget)
	assert.Equal("c", second.Name)
	assert.Equal(10, second.Location)

	require.Equal(t, 1, stmt.FromClause.Len())
	rv := stmt.FromClause.Items[0].(*ast.RangeVar)
	assert.Equal("t", rv.Relname)
	assert.True(rv.Inh)
	assert.Equal(byte('p'), rv.Relpersistence)

	where := stmt.WhereClause.(*ast.AExpr)
	assert.Equal(ast.AExprOp, where.Kind)
	assert.Equal("=", where.Name.Items[0].(*ast.String).Sval)
	assert.Equal(32, where.Location)
	c := where.Rexpr.(*ast.AConst)
	assert.Equal(int64(1), c.Val.(*ast.Integer).Ival)
	assert.Equal(34, c.Location)
}

func TestParseMultipleStatements(t *testing.T) {
	assert := assert.New(t)

	stmts, err := Parse("SELECT 1; SELECT 2")
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.Equal(0, stmts[0].StmtLocation)
	assert.Equal(8, stmts[0].StmtLen)
	assert.Equal(9, stmts[1].StmtLocation)
	assert.Equal(0, stmts[1].StmtLen)

	stmts, err = Parse(";;")
	require.NoError(t, err)
	assert.Empty(stmts)

	stmts, err = Parse("")
	require.NoError(t, err)
	assert.Empty(stmts)
}

func TestParseNegation(t *testing.T) {
	assert := assert.New(t)

	c := firstTarget(t, "SELECT -5").(*ast.AConst)
	assert.Equal(int64(-5), c.Val.(*ast.Integer).Ival)
	assert.Equal(7, c.Location)

	c = firstTarget(t, "SELECT - 1.5").(*ast.AConst)
	assert.Equal("-1.5", c.Val.(*ast.Float).Fval)
	assert.Equal(7, c.Location)

	e := firstTarget(t, "SELECT -a").(*ast.AExpr)
	assert.Nil(e.Lexpr)
	assert.Equal("-", e.Name.Items[0].(*ast.String).Sval)

	// a cast binds tighter than unary minus
	e = firstTarget(t, "SELECT -5::int").(*ast.AExpr)
	assert.IsType(&ast.TypeCast{}, e.Rexpr)
}

func TestParseDistinct(t *testing.T) {
	stmt := parseSelect(t, "SELECT DISTINCT a FROM t")
	require.Equal(t, 1, stmt.DistinctClause.Len())
	assert.Nil(t, stmt.DistinctClause.Items[0])

	stmt = parseSelect(t, "SELECT DISTINCT ON (a, b) a FROM t")
	assert.Equal(t, 2, stmt.DistinctClause.Len())

	stmt = parseSelect(t, "SELECT ALL a FROM t")
	assert.Nil(t, stmt.DistinctClause)
}

func TestParseInList(t *testing.T) {
	assert := assert.New(t)

	e := parseSelect(t, "SELECT * FROM t WHERE a IN (1, 2)").WhereClause.(*ast.AExpr)
	assert.Equal(ast.AExprIn, e.Kind)
	assert.Equal("=", e.Name.Items[0].(*ast.String).Sval)
	assert.Equal(2, e.Rexpr.(*ast.List).Len())

	e = parseSelect(t, "SELECT * FROM t WHERE a NOT IN (1, 2)").WhereClause.(*ast.AExpr)
	assert.Equal("<>", e.Name.Items[0].(*ast.String).Sval)

	sub := parseSelect(t, "SELECT * FROM t WHERE a IN (SELECT b FROM u)").WhereClause.(*ast.SubLink)
	assert.Equal(ast.AnySubLink, sub.SubLinkType)
	assert.Nil(sub.OperName)

	not := parseSelect(t, "SELECT * FROM t WHERE a NOT IN (SELECT b FROM u)").WhereClause.(*ast.BoolExpr)
	assert.Equal(ast.NotExpr, not.Boolop)
}

func TestParseTypedLiteral(t *testing.T) {
	assert := assert.New(t)

	tc := firstTarget(t, "SELECT date '2020-01-01'").(*ast.TypeCast)
	assert.Equal(-1, tc.Location)
	arg := tc.Arg.(*ast.AConst)
	assert.Equal("2020-01-01", arg.Val.(*ast.String).Sval)
	assert.Equal(12, arg.Location)
	assert.Equal("date", tc.TypeName.Names.Items[0].(*ast.String).Sval)

	tc = firstTarget(t, "SELECT interval '1' day").(*ast.TypeCast)
	assert.Equal("interval", tc.TypeName.Names.Items[1].(*ast.String).Sval)
}

func TestParseTypeCast(t *testing.T) {
	assert := assert.New(t)

	tc := firstTarget(t, "SELECT a::int").(*ast.TypeCast)
	assert.Equal(8, tc.Location)
	names := tc.TypeName.Names
	require.Equal(t, 2, names.Len())
	assert.Equal("pg_catalog", names.Items[0].(*ast.String).Sval)
	assert.Equal("int4", names.Items[1].(*ast.String).Sval)

	tc = firstTarget(t, "SELECT CAST(a AS varchar(10)[])").(*ast.TypeCast)
	assert.Equal("varchar", tc.TypeName.Names.Items[1].(*ast.String).Sval)
	assert.Equal(1, tc.TypeName.Typmods.Len())
	assert.Equal(1, tc.TypeName.ArrayBounds.Len())
}

func TestParseSetOperation(t *testing.T) {
	assert := assert.New(t)

	stmt := parseSelect(t, "SELECT 1 UNION ALL SELECT 2 ORDER BY 1 LIMIT 3")
	assert.Equal(ast.SetOpUnion, stmt.Op)
	assert.True(stmt.All)
	assert.NotNil(stmt.Larg)
	assert.NotNil(stmt.Rarg)
	assert.Equal(1, stmt.SortClause.Len())
	assert.Equal(ast.LimitOptionCount, stmt.LimitOption)
	assert.Nil(stmt.Larg.SortClause)

	// INTERSECT binds tighter than UNION
	stmt = parseSelect(t, "SELECT 1 UNION SELECT 2 INTERSECT SELECT 3")
	assert.Equal(ast.SetOpUnion, stmt.Op)
	assert.Equal(ast.SetOpIntersect, stmt.Rarg.Op)

	_, err := Parse("(SELECT 1 ORDER BY 1) ORDER BY 1")
	require.Error(t, err)
	assert.Contains(err.Error(), "multiple ORDER BY clauses not allowed")
}

func TestParseBoolFlatten(t *testing.T) {
	assert := assert.New(t)

	b := parseSelect(t, "SELECT 1 WHERE a AND b AND c").WhereClause.(*ast.BoolExpr)
	assert.Equal(ast.AndExpr, b.Boolop)
	assert.Equal(3, b.Args.Len())

	// AND binds tighter than OR
	b = parseSelect(t, "SELECT 1 WHERE a OR b AND c").WhereClause.(*ast.BoolExpr)
	assert.Equal(ast.OrExpr, b.Boolop)
	require.Equal(t, 2, b.Args.Len())
	assert.IsType(&ast.BoolExpr{}, b.Args.Items[1])
}

func TestParseLimit(t *testing.T) {
	assert := assert.New(t)

	stmt := parseSelect(t, "SELECT * FROM t LIMIT ALL OFFSET 5")
	all := stmt.LimitCount.(*ast.AConst)
	assert.True(all.Isnull)
	assert.Equal(22, all.Location)
	assert.NotNil(stmt.LimitOffset)

	stmt = parseSelect(t, "SELECT * FROM t FETCH FIRST ROWS ONLY")
	one := stmt.LimitCount.(*ast.AConst)
	assert.Equal(-1, one.Location)

	stmt = parseSelect(t, "SELECT * FROM t ORDER BY a FETCH NEXT 3 ROWS WITH TIES")
	assert.Equal(ast.LimitOptionWithTies, stmt.LimitOption)
}

func TestParseWindow(t *testing.T) {
	assert := assert.New(t)

	fc := firstTarget(t, "SELECT count(*) OVER (PARTITION BY a ORDER BY b ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW) FROM t").(*ast.FuncCall)
	assert.True(fc.AggStar)
	require.NotNil(t, fc.Over)
	assert.Equal(1, fc.Over.PartitionClause.Len())
	assert.Equal(1, fc.Over.OrderClause.Len())
	want := ast.FrameOptionNonDefault | ast.FrameOptionRows | ast.FrameOptionBetween |
		ast.FrameOptionStartUnboundedPreceding | ast.FrameOptionEndCurrentRow
	assert.Equal(want, fc.Over.FrameOptions)

	fc = firstTarget(t, "SELECT rank() OVER w FROM t WINDOW w AS (ORDER BY a)").(*ast.FuncCall)
	assert.Equal("w", fc.Over.Name)
	assert.Equal(ast.FrameOptionDefaults, fc.Over.FrameOptions)
}

func TestParseUtilityStatements(t *testing.T) {
	for _, tt := range []struct {
		query string
		tag   ast.NodeTag
	}{
		{"INSERT INTO t (a, b) VALUES (1, 2) ON CONFLICT (a) DO UPDATE SET b = excluded.b RETURNING *", ast.TagInsertStmt},
		{"INSERT INTO t DEFAULT VALUES", ast.TagInsertStmt},
		{"WITH x AS (SELECT 1) INSERT INTO t SELECT * FROM x", ast.TagInsertStmt},
		{"UPDATE t SET a = 1, b = DEFAULT WHERE c = 2", ast.TagUpdateStmt},
		{"UPDATE t AS u SET a = 1 FROM v WHERE u.id = v.id", ast.TagUpdateStmt},
		{"DELETE FROM t USING u WHERE t.id = u.id RETURNING t.id", ast.TagDeleteStmt},
		{"SET search_path TO public, pg_catalog", ast.TagVariableSetStmt},
		{"SET LOCAL statement_timeout = 5000", ast.TagVariableSetStmt},
		{"SET TIME ZONE 'UTC'", ast.TagVariableSetStmt},
		{"RESET ALL", ast.TagVariableSetStmt},
		{"SHOW ALL", ast.TagVariableShowStmt},
		{"BEGIN ISOLATION LEVEL SERIALIZABLE, READ ONLY", ast.TagTransactionStmt},
		{"COMMIT AND NO CHAIN", ast.TagTransactionStmt},
		{"ROLLBACK TO SAVEPOINT sp", ast.TagTransactionStmt},
		{"EXPLAIN ANALYZE SELECT 1", ast.TagExplainStmt},
		{"EXPLAIN (FORMAT JSON, COSTS false) SELECT 1", ast.TagExplainStmt},
		{"PREPARE q (int, text) AS SELECT $1, $2", ast.TagPrepareStmt},
		{"EXECUTE q (1, 'a')", ast.TagExecuteStmt},
		{"DEALLOCATE PREPARE q", ast.TagDeallocateStmt},
		{"DEALLOCATE ALL", ast.TagDeallocateStmt},
		{"CALL proc(1, 'a')", ast.TagCallStmt},
		{"DO $$BEGIN NULL; END$$", ast.TagDoStmt},
		{"DO LANGUAGE plpgsql 'BEGIN NULL; END'", ast.TagDoStmt},
		{"CREATE ROLE admin WITH LOGIN PASSWORD 'secret' CONNECTION LIMIT 5 VALID UNTIL '2030-01-01'", ast.TagCreateRoleStmt},
		{"CREATE USER bob NOSUPERUSER", ast.TagCreateRoleStmt},
		{"CREATE SUBSCRIPTION sub CONNECTION 'host=db password=x' PUBLICATION pub WITH (enabled = false)", ast.TagCreateSubscriptionStmt},
	} {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.tag, parseOne(t, tt.query).Tag())
		})
	}
}

func TestParseExpressions(t *testing.T) {
	for _, query := range []string{
		"SELECT CASE WHEN a THEN 1 ELSE 2 END",
		"SELECT CASE a WHEN 1 THEN 'x' END FROM t",
		"SELECT a BETWEEN 1 AND 2, a NOT BETWEEN SYMMETRIC 1 AND 2",
		"SELECT a LIKE 'x%', a NOT ILIKE 'y' ESCAPE '!', a SIMILAR TO 'z'",
		"SELECT a IS NOT NULL, a ISNULL, a IS TRUE, a IS DISTINCT FROM b",
		"SELECT NULLIF(a, b), COALESCE(a, 1), GREATEST(a, b), LEAST(a, b)",
		"SELECT now() AT TIME ZONE 'utc', CURRENT_TIMESTAMP, CURRENT_TIME(3)",
		"SELECT ARRAY[1, 2], ARRAY[[1], [2]], ARRAY(SELECT 1), a[1], a[1:2], (b).c",
		"SELECT a FROM t WHERE b = ANY(ARRAY[1, 2]) AND c <> ALL (SELECT d FROM u)",
		"SELECT EXISTS (SELECT 1), (SELECT 2), ROW(1, 2), (1, 2)",
		"SELECT a COLLATE \"C\", e'\\n', b'101', x'ff', $1",
		"SELECT extract(year FROM d), position('a' IN b), substring(s FROM 1 FOR 2), trim(both 'x' FROM y)",
		"SELECT string_agg(a, ',' ORDER BY a), count(DISTINCT a) FILTER (WHERE b), percentile_cont(0.5) WITHIN GROUP (ORDER BY c)",
		"SELECT a FROM t ORDER BY a DESC NULLS LAST, b USING >",
		"SELECT 1 WHERE a ~ 'x' AND NOT b",
		"SELECT * FROM a LEFT JOIN b ON a.id = b.id CROSS JOIN c NATURAL FULL JOIN d JOIN e USING (id)",
		"SELECT x FROM (SELECT 1 AS x) s, LATERAL (SELECT 2) l",
		"SELECT * FROM generate_series(1, 10) WITH ORDINALITY AS g(i, n)",
		"SELECT * FROM ONLY t, ONLY (u), s.t * AS x (a)",
		"SELECT a, count(*) FROM t GROUP BY ROLLUP (a), CUBE (b), GROUPING SETS ((a), ()) HAVING count(*) > 1",
		"SELECT * FROM t FOR UPDATE OF t SKIP LOCKED",
		"SELECT * FROM t FOR NO KEY UPDATE NOWAIT",
		"WITH RECURSIVE r (n) AS MATERIALIZED (SELECT 1 UNION ALL SELECT n + 1 FROM r) SELECT * FROM r",
		"VALUES (1, 'a'), (2, 'b')",
		"TABLE t",
		"SELECT FROM t",
		"(SELECT 1) UNION (SELECT 2)",
		"SELECT 2 ^ 3 * 4 + 5 || 'x' %> y",
		"SELECT a::numeric(10, 2), b::timestamp with time zone, c::double precision, d::bit varying(3)",
	} {
		t.Run(query, func(t *testing.T) {
			_, err := Parse(query)
			assert.NoError(t, err)
		})
	}
}

func TestParseCreateRoleOptions(t *testing.T) {
	assert := assert.New(t)
	query := "CREATE ROLE admin WITH LOGIN PASSWORD 'secret'"
	stmt := parseOne(t, query).(*ast.CreateRoleStmt)
	assert.Equal("admin", stmt.Role)
	require.Equal(t, 2, stmt.Options.Len())

	login := stmt.Options.Items[0].(*ast.DefElem)
	assert.Equal("canlogin", login.Defname)
	assert.True(login.Arg.(*ast.Boolean).Boolval)

	pw := stmt.Options.Items[1].(*ast.DefElem)
	assert.Equal("password", pw.Defname)
	assert.Equal("secret", pw.Arg.(*ast.String).Sval)
	assert.Equal(29, pw.Location)
}

func TestParseSyntaxErrors(t *testing.T) {
	for _, tt := range []struct {
		query   string
		message string
		pos     int
	}{
		{"SELEC 1", `syntax error at or near "SELEC"`, 1},
		{"SELECT 1 FROM", "syntax error at end of input", 14},
		{"SELECT FROM WHERE", `syntax error at or near "WHERE"`, 13},
		{"SELECT 1 2", `syntax error at or near "2"`, 10},
		{"SELECT (1", "syntax error at end of input", 10},
		{"SELECT 'abc", `unterminated quoted string at or near "'abc"`, 8},
	} {
		t.Run(tt.query, func(t *testing.T) {
			_, err := Parse(tt.query)
			require.Error(t, err)
			qe, ok := errors.AsQueryError(err)
			require.True(t, ok)
			assert.Equal(t, tt.message, qe.Message)
			assert.Equal(t, tt.pos, qe.Cursorpos)
		})
	}
}
