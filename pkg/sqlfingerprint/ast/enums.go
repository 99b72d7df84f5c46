// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package ast

// Enum String methods return the PostgreSQL label, which is what the
// fingerprint hashes.

func enumLabel(labels []string, i int) string {
	if i < 0 || i >= len(labels) {
		return "UNKNOWN"
	}
	return labels[i]
}

// AExprKind is the kind of an A_Expr.
type AExprKind int

// AExprKind values.
const (
	AExprOp AExprKind = iota
	AExprOpAny
	AExprOpAll
	AExprDistinct
	AExprNotDistinct
	AExprNullIf
	AExprIn
	AExprLike
	AExprILike
	AExprSimilar
	AExprBetween
	AExprNotBetween
	AExprBetweenSym
	AExprNotBetweenSym
)

var aExprKindLabels = []string{"AEXPR_OP", "AEXPR_OP_ANY", "AEXPR_OP_ALL", "AEXPR_DISTINCT", "AEXPR_NOT_DISTINCT", "AEXPR_NULLIF", "AEXPR_IN", "AEXPR_LIKE", "AEXPR_ILIKE", "AEXPR_SIMILAR", "AEXPR_BETWEEN", "AEXPR_NOT_BETWEEN", "AEXPR_BETWEEN_SYM", "AEXPR_NOT_BETWEEN_SYM"}

func (k AExprKind) String() string { return enumLabel(aExprKindLabels, int(k)) }

// BoolExprType is the operator of a BoolExpr.
type BoolExprType int

// BoolExprType values.
const (
	AndExpr BoolExprType = iota
	OrExpr
	NotExpr
)

var boolExprTypeLabels = []string{"AND_EXPR", "OR_EXPR", "NOT_EXPR"}

func (k BoolExprType) String() string { return enumLabel(boolExprTypeLabels, int(k)) }

// SubLinkType is the kind of a SubLink.
type SubLinkType int

// SubLinkType values.
const (
	ExistsSubLink SubLinkType = iota
	AllSubLink
	AnySubLink
	RowCompareSubLink
	ExprSubLink
	MultiExprSubLink
	ArraySubLink
	CTESubLink
)

var subLinkTypeLabels = []string{"EXISTS_SUBLINK", "ALL_SUBLINK", "ANY_SUBLINK", "ROWCOMPARE_SUBLINK", "EXPR_SUBLINK", "MULTIEXPR_SUBLINK", "ARRAY_SUBLINK", "CTE_SUBLINK"}

func (k SubLinkType) String() string { return enumLabel(subLinkTypeLabels, int(k)) }

// NullTestType distinguishes IS NULL from IS NOT NULL.
type NullTestType int

// NullTestType values.
const (
	IsNull NullTestType = iota
	IsNotNull
)

var nullTestTypeLabels = []string{"IS_NULL", "IS_NOT_NULL"}

func (k NullTestType) String() string { return enumLabel(nullTestTypeLabels, int(k)) }

// BoolTestType mirrors the PostgreSQL enum of the same name.
type BoolTestType int

// BoolTestType values.
const (
	IsTrue BoolTestType = iota
	IsNotTrue
	IsFalse
	IsNotFalse
	IsUnknown
	IsNotUnknown
)

var boolTestTypeLabels = []string{"IS_TRUE", "IS_NOT_TRUE", "IS_FALSE", "IS_NOT_FALSE", "IS_UNKNOWN", "IS_NOT_UNKNOWN"}

func (k BoolTestType) String() string { return enumLabel(boolTestTypeLabels, int(k)) }

// SortByDir is the direction of a SortBy.
type SortByDir int

// SortByDir values.
const (
	SortByDefault SortByDir = iota
	SortByAsc
	SortByDesc
	SortByUsing
)

var sortByDirLabels = []string{"SORTBY_DEFAULT", "SORTBY_ASC", "SORTBY_DESC", "SORTBY_USING"}

func (k SortByDir) String() string { return enumLabel(sortByDirLabels, int(k)) }

// SortByNulls mirrors the PostgreSQL enum of the same name.
type SortByNulls int

// SortByNulls values.
const (
	SortByNullsDefault SortByNulls = iota
	SortByNullsFirst
	SortByNullsLast
)

var sortByNullsLabels = []string{"SORTBY_NULLS_DEFAULT", "SORTBY_NULLS_FIRST", "SORTBY_NULLS_LAST"}

func (k SortByNulls) String() string { return enumLabel(sortByNullsLabels, int(k)) }

// JoinType is the kind of a JoinExpr.
type JoinType int

// JoinType values.
const (
	JoinInner JoinType = iota
	JoinLeft
	JoinFull
	JoinRight
)

var joinTypeLabels = []string{"JOIN_INNER", "JOIN_LEFT", "JOIN_FULL", "JOIN_RIGHT"}

func (k JoinType) String() string { return enumLabel(joinTypeLabels, int(k)) }

// SetOperation is the set operator joining the arms of a SelectStmt.
type SetOperation int

// SetOperation values.
const (
	SetOpNone SetOperation = iota
	SetOpUnion
	SetOpIntersect
	SetOpExcept
)

var setOperationLabels = []string{"SETOP_NONE", "SETOP_UNION", "SETOP_INTERSECT", "SETOP_EXCEPT"}

func (k SetOperation) String() string { return enumLabel(setOperationLabels, int(k)) }

// LimitOption mirrors the PostgreSQL enum of the same name.
type LimitOption int

// LimitOption values.
const (
	LimitOptionDefault LimitOption = iota
	LimitOptionCount
	LimitOptionWithTies
)

var limitOptionLabels = []string{"LIMIT_OPTION_DEFAULT", "LIMIT_OPTION_COUNT", "LIMIT_OPTION_WITH_TIES"}

func (k LimitOption) String() string { return enumLabel(limitOptionLabels, int(k)) }

// CoercionForm records how a function-like node was written.
type CoercionForm int

// CoercionForm values.
const (
	CoerceExplicitCall CoercionForm = iota
	CoerceExplicitCast
	CoerceImplicitCast
	CoerceSQLSyntax
)

var coercionFormLabels = []string{"COERCE_EXPLICIT_CALL", "COERCE_EXPLICIT_CAST", "COERCE_IMPLICIT_CAST", "COERCE_SQL_SYNTAX"}

func (k CoercionForm) String() string { return enumLabel(coercionFormLabels, int(k)) }

// MinMaxOp mirrors the PostgreSQL enum of the same name.
type MinMaxOp int

// MinMaxOp values.
const (
	IsGreatest MinMaxOp = iota
	IsLeast
)

var minMaxOpLabels = []string{"IS_GREATEST", "IS_LEAST"}

func (k MinMaxOp) String() string { return enumLabel(minMaxOpLabels, int(k)) }

// SQLValueFunctionOp identifies an SQL-standard niladic function.
type SQLValueFunctionOp int

// SQLValueFunctionOp values.
const (
	SVFOpCurrentDate SQLValueFunctionOp = iota
	SVFOpCurrentTime
	SVFOpCurrentTimeN
	SVFOpCurrentTimestamp
	SVFOpCurrentTimestampN
	SVFOpLocaltime
	SVFOpLocaltimeN
	SVFOpLocaltimestamp
	SVFOpLocaltimestampN
	SVFOpCurrentRole
	SVFOpCurrentUser
	SVFOpUser
	SVFOpSessionUser
	SVFOpCurrentCatalog
	SVFOpCurrentSchema
)

var sQLValueFunctionOpLabels = []string{"SVFOP_CURRENT_DATE", "SVFOP_CURRENT_TIME", "SVFOP_CURRENT_TIME_N", "SVFOP_CURRENT_TIMESTAMP", "SVFOP_CURRENT_TIMESTAMP_N", "SVFOP_LOCALTIME", "SVFOP_LOCALTIME_N", "SVFOP_LOCALTIMESTAMP", "SVFOP_LOCALTIMESTAMP_N", "SVFOP_CURRENT_ROLE", "SVFOP_CURRENT_USER", "SVFOP_USER", "SVFOP_SESSION_USER", "SVFOP_CURRENT_CATALOG", "SVFOP_CURRENT_SCHEMA"}

func (k SQLValueFunctionOp) String() string { return enumLabel(sQLValueFunctionOpLabels, int(k)) }

// DefElemAction mirrors the PostgreSQL enum of the same name.
type DefElemAction int

// DefElemAction values.
const (
	DefElemUnspec DefElemAction = iota
	DefElemSet
	DefElemAdd
	DefElemDrop
)

var defElemActionLabels = []string{"DEFELEM_UNSPEC", "DEFELEM_SET", "DEFELEM_ADD", "DEFELEM_DROP"}

func (k DefElemAction) String() string { return enumLabel(defElemActionLabels, int(k)) }

// LockClauseStrength is the strength of a FOR UPDATE/SHARE clause.
type LockClauseStrength int

// LockClauseStrength values.
const (
	LCSNone LockClauseStrength = iota
	LCSForKeyShare
	LCSForShare
	LCSForNoKeyUpdate
	LCSForUpdate
)

var lockClauseStrengthLabels = []string{"LCS_NONE", "LCS_FORKEYSHARE", "LCS_FORSHARE", "LCS_FORNOKEYUPDATE", "LCS_FORUPDATE"}

func (k LockClauseStrength) String() string { return enumLabel(lockClauseStrengthLabels, int(k)) }

// LockWaitPolicy mirrors the PostgreSQL enum of the same name.
type LockWaitPolicy int

// LockWaitPolicy values.
const (
	LockWaitBlock LockWaitPolicy = iota
	LockWaitSkip
	LockWaitError
)

var lockWaitPolicyLabels = []string{"LockWaitBlock", "LockWaitSkip", "LockWaitError"}

func (k LockWaitPolicy) String() string { return enumLabel(lockWaitPolicyLabels, int(k)) }

// GroupingSetKind mirrors the PostgreSQL enum of the same name.
type GroupingSetKind int

// GroupingSetKind values.
const (
	GroupingSetEmpty GroupingSetKind = iota
	GroupingSetSimple
	GroupingSetRollup
	GroupingSetCube
	GroupingSetSets
)

var groupingSetKindLabels = []string{"GROUPING_SET_EMPTY", "GROUPING_SET_SIMPLE", "GROUPING_SET_ROLLUP", "GROUPING_SET_CUBE", "GROUPING_SET_SETS"}

func (k GroupingSetKind) String() string { return enumLabel(groupingSetKindLabels, int(k)) }

// OnConflictAction mirrors the PostgreSQL enum of the same name.
type OnConflictAction int

// OnConflictAction values.
const (
	OnConflictNone OnConflictAction = iota
	OnConflictNothing
	OnConflictUpdate
)

var onConflictActionLabels = []string{"ONCONFLICT_NONE", "ONCONFLICT_NOTHING", "ONCONFLICT_UPDATE"}

func (k OnConflictAction) String() string { return enumLabel(onConflictActionLabels, int(k)) }

// CTEMaterialize mirrors the PostgreSQL enum of the same name.
type CTEMaterialize int

// CTEMaterialize values.
const (
	CTEMaterializeDefault CTEMaterialize = iota
	CTEMaterializeAlways
	CTEMaterializeNever
)

var cTEMaterializeLabels = []string{"CTEMaterializeDefault", "CTEMaterializeAlways", "CTEMaterializeNever"}

func (k CTEMaterialize) String() string { return enumLabel(cTEMaterializeLabels, int(k)) }

// OverridingKind mirrors the PostgreSQL enum of the same name.
type OverridingKind int

// OverridingKind values.
const (
	OverridingNotSet OverridingKind = iota
	OverridingUserValue
	OverridingSystemValue
)

var overridingKindLabels = []string{"OVERRIDING_NOT_SET", "OVERRIDING_USER_VALUE", "OVERRIDING_SYSTEM_VALUE"}

func (k OverridingKind) String() string { return enumLabel(overridingKindLabels, int(k)) }

// VariableSetKind is the form of a SET or RESET statement.
type VariableSetKind int

// VariableSetKind values.
const (
	VarSetValue VariableSetKind = iota
	VarSetDefault
	VarSetCurrent
	VarSetMulti
	VarReset
	VarResetAll
)

var variableSetKindLabels = []string{"VAR_SET_VALUE", "VAR_SET_DEFAULT", "VAR_SET_CURRENT", "VAR_SET_MULTI", "VAR_RESET", "VAR_RESET_ALL"}

func (k VariableSetKind) String() string { return enumLabel(variableSetKindLabels, int(k)) }

// TransactionStmtKind mirrors the PostgreSQL enum of the same name.
type TransactionStmtKind int

// TransactionStmtKind values.
const (
	TransStmtBegin TransactionStmtKind = iota
	TransStmtStart
	TransStmtCommit
	TransStmtRollback
	TransStmtSavepoint
	TransStmtRelease
	TransStmtRollbackTo
	TransStmtPrepare
	TransStmtCommitPrepared
	TransStmtRollbackPrepared
)

var transactionStmtKindLabels = []string{"TRANS_STMT_BEGIN", "TRANS_STMT_START", "TRANS_STMT_COMMIT", "TRANS_STMT_ROLLBACK", "TRANS_STMT_SAVEPOINT", "TRANS_STMT_RELEASE", "TRANS_STMT_ROLLBACK_TO", "TRANS_STMT_PREPARE", "TRANS_STMT_COMMIT_PREPARED", "TRANS_STMT_ROLLBACK_PREPARED"}

func (k TransactionStmtKind) String() string { return enumLabel(transactionStmtKindLabels, int(k)) }

// RoleStmtType records which CREATE ROLE synonym was used.
type RoleStmtType int

// RoleStmtType values.
const (
	RoleStmtRole RoleStmtType = iota
	RoleStmtUser
	RoleStmtGroup
)

var roleStmtTypeLabels = []string{"ROLESTMT_ROLE", "ROLESTMT_USER", "ROLESTMT_GROUP"}

func (k RoleStmtType) String() string { return enumLabel(roleStmtTypeLabels, int(k)) }
