// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package ast

import "strconv"

// NodeTag identifies a node type.
type NodeTag int

// Node tags. The zero value is invalid.
const (
	TagInvalid NodeTag = iota
	TagList
	TagInteger
	TagFloat
	TagBoolean
	TagString
	TagBitString
	TagAlias
	TagRangeVar
	TagColumnRef
	TagParamRef
	TagAExpr
	TagAConst
	TagTypeCast
	TagCollateClause
	TagFuncCall
	TagAStar
	TagAIndices
	TagAIndirection
	TagAArrayExpr
	TagResTarget
	TagSortBy
	TagWindowDef
	TagRangeSubselect
	TagRangeFunction
	TagTypeName
	TagIndexElem
	TagDefElem
	TagLockingClause
	TagGroupingSet
	TagWithClause
	TagInferClause
	TagOnConflictClause
	TagCommonTableExpr
	TagJoinExpr
	TagSubLink
	TagBoolExpr
	TagCaseExpr
	TagCaseWhen
	TagRowExpr
	TagCoalesceExpr
	TagMinMaxExpr
	TagSQLValueFunction
	TagNullTest
	TagBooleanTest
	TagSetToDefault
	TagRawStmt
	TagSelectStmt
	TagInsertStmt
	TagUpdateStmt
	TagDeleteStmt
	TagVariableSetStmt
	TagVariableShowStmt
	TagTransactionStmt
	TagExplainStmt
	TagPrepareStmt
	TagExecuteStmt
	TagDeallocateStmt
	TagCreateRoleStmt
	TagDoStmt
	TagCreateSubscriptionStmt
	TagCallStmt

	numTags
)

var tagNames = [numTags]string{
	TagList:                   "List",
	TagInteger:                "Integer",
	TagFloat:                  "Float",
	TagBoolean:                "Boolean",
	TagString:                 "String",
	TagBitString:              "BitString",
	TagAlias:                  "Alias",
	TagRangeVar:               "RangeVar",
	TagColumnRef:              "ColumnRef",
	TagParamRef:               "ParamRef",
	TagAExpr:                  "A_Expr",
	TagAConst:                 "A_Const",
	TagTypeCast:               "TypeCast",
	TagCollateClause:          "CollateClause",
	TagFuncCall:               "FuncCall",
	TagAStar:                  "A_Star",
	TagAIndices:               "A_Indices",
	TagAIndirection:           "A_Indirection",
	TagAArrayExpr:             "A_ArrayExpr",
	TagResTarget:              "ResTarget",
	TagSortBy:                 "SortBy",
	TagWindowDef:              "WindowDef",
	TagRangeSubselect:         "RangeSubselect",
	TagRangeFunction:          "RangeFunction",
	TagTypeName:               "TypeName",
	TagIndexElem:              "IndexElem",
	TagDefElem:                "DefElem",
	TagLockingClause:          "LockingClause",
	TagGroupingSet:            "GroupingSet",
	TagWithClause:             "WithClause",
	TagInferClause:            "InferClause",
	TagOnConflictClause:       "OnConflictClause",
	TagCommonTableExpr:        "CommonTableExpr",
	TagJoinExpr:               "JoinExpr",
	TagSubLink:                "SubLink",
	TagBoolExpr:               "BoolExpr",
	TagCaseExpr:               "CaseExpr",
	TagCaseWhen:               "CaseWhen",
	TagRowExpr:                "RowExpr",
	TagCoalesceExpr:           "CoalesceExpr",
	TagMinMaxExpr:             "MinMaxExpr",
	TagSQLValueFunction:       "SQLValueFunction",
	TagNullTest:               "NullTest",
	TagBooleanTest:            "BooleanTest",
	TagSetToDefault:           "SetToDefault",
	TagRawStmt:                "RawStmt",
	TagSelectStmt:             "SelectStmt",
	TagInsertStmt:             "InsertStmt",
	TagUpdateStmt:             "UpdateStmt",
	TagDeleteStmt:             "DeleteStmt",
	TagVariableSetStmt:        "VariableSetStmt",
	TagVariableShowStmt:       "VariableShowStmt",
	TagTransactionStmt:        "TransactionStmt",
	TagExplainStmt:            "ExplainStmt",
	TagPrepareStmt:            "PrepareStmt",
	TagExecuteStmt:            "ExecuteStmt",
	TagDeallocateStmt:         "DeallocateStmt",
	TagCreateRoleStmt:         "CreateRoleStmt",
	TagDoStmt:                 "DoStmt",
	TagCreateSubscriptionStmt: "CreateSubscriptionStmt",
	TagCallStmt:               "CallStmt",
}

// Name returns the PostgreSQL type name of the tag and whether the tag is known.
func (t NodeTag) Name() (string, bool) {
	if t <= TagInvalid || t >= numTags {
		return "", false
	}
	return tagNames[t], true
}

// String implements fmt.Stringer.
func (t NodeTag) String() string {
	if name, ok := t.Name(); ok {
		return name
	}
	return "NodeTag(" + strconv.Itoa(int(t)) + ")"
}
