// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package parser

import (
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/ast"
	"github.com/DataDog/sqlfingerprint/pkg/sqlfingerprint/scanner"
)

func (p *parser) parseStmt() ast.Node {
	t := p.peek()
	if isCharTok(t, '(') {
		return p.preparableStmt()
	}
	if t.Kind != scanner.Ident {
		p.syntaxError(t)
	}
	switch t.Value {
	case "select", "values", "table", "with", "insert", "update", "delete":
		return p.preparableStmt()
	case "set":
		return p.variableSetStmt()
	case "reset":
		return p.variableResetStmt()
	case "show":
		return p.variableShowStmt()
	case "begin", "start", "commit", "end", "rollback", "abort", "savepoint", "release":
		return p.transactionStmt()
	case "explain":
		return p.explainStmt()
	case "prepare":
		return p.prepareStmt()
	case "execute":
		return p.executeStmt()
	case "deallocate":
		return p.deallocateStmt()
	case "call":
		return p.callStmt()
	case "do":
		return p.doStmt()
	case "create":
		return p.createStmt()
	}
	p.syntaxError(t)
	return nil
}

// preparableStmt parses the statements allowed in PREPARE, EXPLAIN and
// common table expressions.
func (p *parser) preparableStmt() ast.Node {
	var with *ast.WithClause
	if p.isKeyword("with") {
		with = p.withClause()
	}
	switch {
	case p.isKeyword("insert"):
		return p.insertStmt(with)
	case p.isKeyword("update"):
		return p.updateStmt(with)
	case p.isKeyword("delete"):
		return p.deleteStmt(with)
	}
	return p.selectRest(with)
}

func (p *parser) insertStmt(with *ast.WithClause) ast.Node {
	p.expectKeyword("insert")
	p.expectKeyword("into")
	stmt := &ast.InsertStmt{WithClause: with, Relation: p.qualifiedName()}
	if p.acceptKeyword("as") {
		name, _ := p.colID()
		stmt.Relation.Alias = &ast.Alias{Aliasname: name}
	}
	if p.isChar('(') && !p.isSelectWithParens() {
		p.next()
		stmt.Cols = &ast.List{}
		for {
			name, loc := p.colID()
			rt := &ast.ResTarget{Name: name, Location: loc}
			if p.isChar('.') || p.isChar('[') {
				rt.Indirection = p.indirection()
			}
			stmt.Cols.Append(rt)
			if !p.acceptChar(',') {
				break
			}
		}
		p.expectChar(')')
	}
	if p.acceptKeyword("overriding") {
		if p.acceptKeyword("user") {
			stmt.Override = ast.OverridingUserValue
		} else {
			p.expectKeyword("system")
			stmt.Override = ast.OverridingSystemValue
		}
		p.expectKeyword("value")
	}
	if p.acceptKeyword("default") {
		p.expectKeyword("values")
	} else {
		stmt.SelectStmt = p.selectStmt()
	}
	if p.isKeyword("on") {
		stmt.OnConflictClause = p.onConflictClause()
	}
	stmt.ReturningList = p.returningClause()
	return stmt
}

func (p *parser) onConflictClause() *ast.OnConflictClause {
	on := p.expectKeyword("on")
	p.expectKeyword("conflict")
	oc := &ast.OnConflictClause{Location: on.Pos}
	switch {
	case p.isChar('('):
		open := p.next()
		infer := &ast.InferClause{IndexElems: &ast.List{}, Location: open.Pos}
		for {
			infer.IndexElems.Append(p.indexElem())
			if !p.acceptChar(',') {
				break
			}
		}
		p.expectChar(')')
		if p.acceptKeyword("where") {
			infer.WhereClause = p.parseExpr()
		}
		oc.Infer = infer
	case p.isKeyword("on"):
		t := p.next()
		p.expectKeyword("constraint")
		name, _ := p.colID()
		oc.Infer = &ast.InferClause{Conname: name, Location: t.Pos}
	}
	p.expectKeyword("do")
	if p.acceptKeyword("nothing") {
		oc.Action = ast.OnConflictNothing
		return oc
	}
	p.expectKeyword("update")
	p.expectKeyword("set")
	oc.Action = ast.OnConflictUpdate
	oc.TargetList = p.setClauseList()
	if p.acceptKeyword("where") {
		oc.WhereClause = p.parseExpr()
	}
	return oc
}

func (p *parser) indexElem() *ast.IndexElem {
	elem := &ast.IndexElem{}
	switch {
	case p.isChar('('):
		p.next()
		elem.Expr = p.parseExpr()
		p.expectChar(')')
	case p.isColID() && !isCharTok(p.peekN(1), '('):
		elem.Name, _ = p.colID()
	default:
		elem.Expr = p.parsePrimary()
	}
	if p.acceptKeyword("collate") {
		elem.Collation = p.anyName()
	}
	switch {
	case p.acceptKeyword("asc"):
		elem.Ordering = ast.SortByAsc
	case p.acceptKeyword("desc"):
		elem.Ordering = ast.SortByDesc
	}
	if p.acceptKeyword("nulls") {
		if p.acceptKeyword("first") {
			elem.NullsOrdering = ast.SortByNullsFirst
		} else {
			p.expectKeyword("last")
			elem.NullsOrdering = ast.SortByNullsLast
		}
	}
	return elem
}

func (p *parser) setClauseList() *ast.List {
	l := &ast.List{}
	for {
		name, loc := p.colID()
		rt := &ast.ResTarget{Name: name, Location: loc}
		if p.isChar('.') || p.isChar('[') {
			rt.Indirection = p.indirection()
		}
		p.expectChar('=')
		rt.Val = p.parseExpr()
		l.Append(rt)
		if !p.acceptChar(',') {
			return l
		}
	}
}

func (p *parser) returningClause() *ast.List {
	if !p.acceptKeyword("returning") {
		return nil
	}
	return p.targetList()
}

func (p *parser) updateStmt(with *ast.WithClause) ast.Node {
	p.expectKeyword("update")
	stmt := &ast.UpdateStmt{WithClause: with, Relation: p.relationExpr()}
	stmt.Relation.Alias = p.optAlias("set")
	p.expectKeyword("set")
	stmt.TargetList = p.setClauseList()
	if p.acceptKeyword("from") {
		stmt.FromClause = p.fromList()
	}
	if p.acceptKeyword("where") {
		stmt.WhereClause = p.parseExpr()
	}
	stmt.ReturningList = p.returningClause()
	return stmt
}

func (p *parser) deleteStmt(with *ast.WithClause) ast.Node {
	p.expectKeyword("delete")
	p.expectKeyword("from")
	stmt := &ast.DeleteStmt{WithClause: with, Relation: p.relationExpr()}
	stmt.Relation.Alias = p.optAlias("")
	if p.acceptKeyword("using") {
		stmt.UsingClause = p.fromList()
	}
	if p.acceptKeyword("where") {
		stmt.WhereClause = p.parseExpr()
	}
	stmt.ReturningList = p.returningClause()
	return stmt
}

// SET, RESET and SHOW

func (p *parser) varName() string {
	name, _ := p.colID()
	for p.acceptChar('.') {
		part, _ := p.colID()
		name += "." + part
	}
	return name
}

func (p *parser) variableSetStmt() ast.Node {
	p.expectKeyword("set")
	stmt := &ast.VariableSetStmt{}
	if p.acceptKeyword("local") {
		stmt.IsLocal = true
	} else if p.isKeyword("session") && !isCharTok(p.peekN(1), '=') && !p.isKeywordAt(1, "to") {
		p.next()
	}
	switch {
	case p.isKeyword("time") && p.isKeywordAt(1, "zone"):
		p.next()
		p.next()
		stmt.Name = "timezone"
		if p.acceptKeyword("default") || p.acceptKeyword("local") {
			stmt.Kind = ast.VarSetDefault
			return stmt
		}
		stmt.Kind = ast.VarSetValue
		stmt.Args = ast.NewList(p.varValue())
		return stmt
	case p.isKeyword("transaction") && !isCharTok(p.peekN(1), '=') && !p.isKeywordAt(1, "to"):
		p.next()
		stmt.Kind = ast.VarSetMulti
		stmt.Name = "TRANSACTION"
		stmt.Args = p.transactionModes()
		if stmt.Args == nil {
			p.syntaxError(p.peek())
		}
		return stmt
	}
	stmt.Name = p.varName()
	if !p.acceptKeyword("to") {
		p.expectChar('=')
	}
	if p.acceptKeyword("default") {
		stmt.Kind = ast.VarSetDefault
		return stmt
	}
	stmt.Kind = ast.VarSetValue
	stmt.Args = &ast.List{}
	for {
		stmt.Args.Append(p.varValue())
		if !p.acceptChar(',') {
			return stmt
		}
	}
}

func (p *parser) varValue() ast.Node {
	t := p.peek()
	switch t.Kind {
	case scanner.SConst, scanner.Ident, scanner.QuotedIdent:
		p.next()
		return makeStringConst(t.Value, t.Pos)
	}
	return p.numericOnly()
}

// numericOnly parses a signed numeric literal. The constant is located at
// its sign when there is one.
func (p *parser) numericOnly() *ast.AConst {
	start := p.peek()
	neg := false
	if p.acceptChar('-') {
		neg = true
	} else {
		p.acceptChar('+')
	}
	var c *ast.AConst
	switch t := p.next(); t.Kind {
	case scanner.IConst:
		c = makeIntConst(p.intValue(t), start.Pos)
	case scanner.FConst:
		c = makeAConst(&ast.Float{Fval: t.Value}, start.Pos)
	default:
		p.syntaxError(t)
	}
	if neg {
		doNegate(c, start.Pos)
	}
	return c
}

func (p *parser) variableResetStmt() ast.Node {
	p.expectKeyword("reset")
	switch {
	case p.acceptKeyword("all"):
		return &ast.VariableSetStmt{Kind: ast.VarResetAll}
	case p.isKeyword("time") && p.isKeywordAt(1, "zone"):
		p.next()
		p.next()
		return &ast.VariableSetStmt{Kind: ast.VarReset, Name: "timezone"}
	}
	return &ast.VariableSetStmt{Kind: ast.VarReset, Name: p.varName()}
}

func (p *parser) variableShowStmt() ast.Node {
	p.expectKeyword("show")
	switch {
	case p.acceptKeyword("all"):
		return &ast.VariableShowStmt{Name: "all"}
	case p.isKeyword("time") && p.isKeywordAt(1, "zone"):
		p.next()
		p.next()
		return &ast.VariableShowStmt{Name: "timezone"}
	case p.isKeyword("transaction") && p.isKeywordAt(1, "isolation"):
		p.next()
		p.next()
		p.expectKeyword("level")
		return &ast.VariableShowStmt{Name: "transaction_isolation"}
	}
	return &ast.VariableShowStmt{Name: p.varName()}
}

// transactions

func (p *parser) transactionStmt() ast.Node {
	t := p.next()
	stmt := &ast.TransactionStmt{}
	switch t.Value {
	case "begin":
		p.optTransaction()
		stmt.Kind = ast.TransStmtBegin
		stmt.Options = p.transactionModes()
	case "start":
		p.expectKeyword("transaction")
		stmt.Kind = ast.TransStmtStart
		stmt.Options = p.transactionModes()
	case "commit", "end":
		if t.Value == "commit" && p.acceptKeyword("prepared") {
			stmt.Kind = ast.TransStmtCommitPrepared
			stmt.Gid = p.expectKind(scanner.SConst).Value
			return stmt
		}
		p.optTransaction()
		stmt.Kind = ast.TransStmtCommit
		stmt.Chain = p.optChain()
	case "rollback", "abort":
		if t.Value == "rollback" && p.acceptKeyword("prepared") {
			stmt.Kind = ast.TransStmtRollbackPrepared
			stmt.Gid = p.expectKind(scanner.SConst).Value
			return stmt
		}
		p.optTransaction()
		if t.Value == "rollback" && p.acceptKeyword("to") {
			p.acceptKeyword("savepoint")
			stmt.Kind = ast.TransStmtRollbackTo
			stmt.SavepointName, _ = p.colID()
			return stmt
		}
		stmt.Kind = ast.TransStmtRollback
		stmt.Chain = p.optChain()
	case "savepoint":
		stmt.Kind = ast.TransStmtSavepoint
		stmt.SavepointName, _ = p.colID()
	case "release":
		p.acceptKeyword("savepoint")
		stmt.Kind = ast.TransStmtRelease
		stmt.SavepointName, _ = p.colID()
	}
	return stmt
}

func (p *parser) optTransaction() {
	if !p.acceptKeyword("work") {
		p.acceptKeyword("transaction")
	}
}

func (p *parser) optChain() bool {
	if !p.acceptKeyword("and") {
		return false
	}
	chain := !p.acceptKeyword("no")
	p.expectKeyword("chain")
	return chain
}

// transactionModes parses isolation level, access mode and deferrable
// settings. Their constants carry no location since they are keywords in the
// query text.
func (p *parser) transactionModes() *ast.List {
	var l *ast.List
	for {
		t := p.peek()
		var d *ast.DefElem
		switch {
		case isKeywordTok(t, "isolation"):
			p.next()
			p.expectKeyword("level")
			d = &ast.DefElem{Defname: "transaction_isolation", Arg: makeStringConst(p.isolationLevel(), -1)}
		case isKeywordTok(t, "read"):
			p.next()
			v := int64(0)
			if p.acceptKeyword("only") {
				v = 1
			} else {
				p.expectKeyword("write")
			}
			d = &ast.DefElem{Defname: "transaction_read_only", Arg: makeIntConst(v, -1)}
		case isKeywordTok(t, "deferrable"):
			p.next()
			d = &ast.DefElem{Defname: "transaction_deferrable", Arg: makeIntConst(1, -1)}
		case isKeywordTok(t, "not") && p.isKeywordAt(1, "deferrable"):
			p.next()
			p.next()
			d = &ast.DefElem{Defname: "transaction_deferrable", Arg: makeIntConst(0, -1)}
		default:
			return l
		}
		d.Location = t.Pos
		l = l.Append(d)
		p.acceptChar(',')
	}
}

func (p *parser) isolationLevel() string {
	switch {
	case p.acceptKeyword("serializable"):
		return "serializable"
	case p.acceptKeyword("repeatable"):
		p.expectKeyword("read")
		return "repeatable read"
	}
	p.expectKeyword("read")
	if p.acceptKeyword("committed") {
		return "read committed"
	}
	p.expectKeyword("uncommitted")
	return "read uncommitted"
}

// EXPLAIN, PREPARE, EXECUTE, DEALLOCATE

func (p *parser) explainStmt() ast.Node {
	p.expectKeyword("explain")
	stmt := &ast.ExplainStmt{}
	if p.isChar('(') && !p.isSelectWithParens() {
		p.next()
		stmt.Options = &ast.List{}
		for {
			name, loc := p.colLabel()
			d := &ast.DefElem{Defname: name, Location: loc}
			if !p.isChar(',') && !p.isChar(')') {
				d.Arg = p.defArg()
			}
			stmt.Options.Append(d)
			if !p.acceptChar(',') {
				break
			}
		}
		p.expectChar(')')
	} else {
		if t := p.peek(); isKeywordTok(t, "analyze") || isKeywordTok(t, "analyse") {
			p.next()
			stmt.Options = stmt.Options.Append(&ast.DefElem{Defname: "analyze", Location: t.Pos})
		}
		if t := p.peek(); isKeywordTok(t, "verbose") {
			p.next()
			stmt.Options = stmt.Options.Append(&ast.DefElem{Defname: "verbose", Location: t.Pos})
		}
	}
	if p.isKeyword("execute") {
		stmt.Query = p.executeStmt()
	} else {
		stmt.Query = p.preparableStmt()
	}
	return stmt
}

// defArg parses an option value: a word or string becomes a String node and
// a number an Integer or Float node.
func (p *parser) defArg() ast.Node {
	t := p.peek()
	switch t.Kind {
	case scanner.SConst, scanner.Ident, scanner.QuotedIdent:
		p.next()
		return ast.MakeString(t.Value)
	}
	return p.numericOnly().Val
}

func (p *parser) prepareStmt() ast.Node {
	p.expectKeyword("prepare")
	if p.acceptKeyword("transaction") {
		gid := p.expectKind(scanner.SConst)
		return &ast.TransactionStmt{Kind: ast.TransStmtPrepare, Gid: gid.Value}
	}
	name, _ := p.colID()
	stmt := &ast.PrepareStmt{Name: name}
	if p.acceptChar('(') {
		stmt.Argtypes = &ast.List{}
		for {
			stmt.Argtypes.Append(p.parseTypename())
			if !p.acceptChar(',') {
				break
			}
		}
		p.expectChar(')')
	}
	p.expectKeyword("as")
	stmt.Query = p.preparableStmt()
	return stmt
}

func (p *parser) executeStmt() ast.Node {
	p.expectKeyword("execute")
	name, _ := p.colID()
	stmt := &ast.ExecuteStmt{Name: name}
	if p.acceptChar('(') {
		stmt.Params = p.exprList()
		p.expectChar(')')
	}
	return stmt
}

func (p *parser) deallocateStmt() ast.Node {
	p.expectKeyword("deallocate")
	p.acceptKeyword("prepare")
	if p.acceptKeyword("all") {
		return &ast.DeallocateStmt{}
	}
	name, _ := p.colID()
	return &ast.DeallocateStmt{Name: name}
}

func (p *parser) callStmt() ast.Node {
	p.expectKeyword("call")
	t := p.peek()
	fc, ok := p.parsePrimary().(*ast.FuncCall)
	if !ok {
		p.syntaxError(t)
	}
	return &ast.CallStmt{Funccall: fc}
}

func (p *parser) doStmt() ast.Node {
	p.expectKeyword("do")
	stmt := &ast.DoStmt{Args: &ast.List{}}
	for {
		t := p.peek()
		switch {
		case t.Kind == scanner.SConst:
			p.next()
			stmt.Args.Append(&ast.DefElem{Defname: "as", Arg: ast.MakeString(t.Value), Location: t.Pos})
		case isKeywordTok(t, "language"):
			p.next()
			lang := p.next()
			if lang.Kind != scanner.SConst && lang.Kind != scanner.Ident && lang.Kind != scanner.QuotedIdent {
				p.syntaxError(lang)
			}
			stmt.Args.Append(&ast.DefElem{Defname: "language", Arg: ast.MakeString(lang.Value), Location: t.Pos})
		default:
			if stmt.Args.Len() == 0 {
				p.syntaxError(t)
			}
			return stmt
		}
	}
}

// CREATE ROLE and CREATE SUBSCRIPTION

func (p *parser) createStmt() ast.Node {
	p.expectKeyword("create")
	switch {
	case p.isKeyword("role"), p.isKeyword("user"), p.isKeyword("group"):
		return p.createRoleStmt()
	case p.isKeyword("subscription"):
		return p.createSubscriptionStmt()
	}
	p.syntaxError(p.peek())
	return nil
}

var roleStmtTypes = map[string]ast.RoleStmtType{
	"role":  ast.RoleStmtRole,
	"user":  ast.RoleStmtUser,
	"group": ast.RoleStmtGroup,
}

// roleFlags maps keyword options to their DefElem name and boolean value.
var roleFlags = map[string]struct {
	name  string
	value bool
}{
	"superuser":     {"superuser", true},
	"nosuperuser":   {"superuser", false},
	"createrole":    {"createrole", true},
	"nocreaterole":  {"createrole", false},
	"createdb":      {"createdb", true},
	"nocreatedb":    {"createdb", false},
	"login":         {"canlogin", true},
	"nologin":       {"canlogin", false},
	"replication":   {"isreplication", true},
	"noreplication": {"isreplication", false},
	"bypassrls":     {"bypassrls", true},
	"nobypassrls":   {"bypassrls", false},
	"inherit":       {"inherit", true},
	"noinherit":     {"inherit", false},
}

func (p *parser) createRoleStmt() ast.Node {
	stmt := &ast.CreateRoleStmt{StmtType: roleStmtTypes[p.next().Value]}
	stmt.Role, _ = p.colID()
	p.acceptKeyword("with")
	for {
		t := p.peek()
		if t.Kind != scanner.Ident {
			return stmt
		}
		d := &ast.DefElem{Location: t.Pos}
		switch t.Value {
		case "password", "encrypted":
			p.next()
			if t.Value == "encrypted" {
				p.expectKeyword("password")
			}
			d.Defname = "password"
			if !p.acceptKeyword("null") {
				d.Arg = ast.MakeString(p.expectKind(scanner.SConst).Value)
			}
		case "connection":
			p.next()
			p.expectKeyword("limit")
			d.Defname = "connectionlimit"
			d.Arg = &ast.Integer{Ival: p.signedIconst()}
		case "valid":
			p.next()
			p.expectKeyword("until")
			d.Defname = "validUntil"
			d.Arg = ast.MakeString(p.expectKind(scanner.SConst).Value)
		case "sysid":
			p.next()
			d.Defname = "sysid"
			d.Arg = &ast.Integer{Ival: p.intValue(p.expectKind(scanner.IConst))}
		case "in":
			p.next()
			if !p.acceptKeyword("role") {
				p.expectKeyword("group")
			}
			d.Defname = "addroleto"
			d.Arg = p.nameList()
		case "role", "user":
			p.next()
			d.Defname = "rolemembers"
			d.Arg = p.nameList()
		case "admin":
			p.next()
			d.Defname = "adminmembers"
			d.Arg = p.nameList()
		default:
			flag, ok := roleFlags[t.Value]
			if !ok {
				return stmt
			}
			p.next()
			d.Defname = flag.name
			d.Arg = &ast.Boolean{Boolval: flag.value}
		}
		stmt.Options = stmt.Options.Append(d)
	}
}

func (p *parser) createSubscriptionStmt() ast.Node {
	p.expectKeyword("subscription")
	stmt := &ast.CreateSubscriptionStmt{}
	stmt.Subname, _ = p.colID()
	p.expectKeyword("connection")
	stmt.Conninfo = p.expectKind(scanner.SConst).Value
	p.expectKeyword("publication")
	stmt.Publication = p.nameList()
	if p.acceptKeyword("with") {
		p.expectChar('(')
		stmt.Options = &ast.List{}
		for {
			name, loc := p.colLabel()
			d := &ast.DefElem{Defname: name, Location: loc}
			if p.acceptChar('=') {
				d.Arg = p.defArg()
			}
			stmt.Options.Append(d)
			if !p.acceptChar(',') {
				break
			}
		}
		p.expectChar(')')
	}
	return stmt
}
