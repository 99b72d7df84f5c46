// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package ast

// Location values are byte offsets into the query text, -1 when unknown.

// Alias is an AS clause attached to a range table entry.
type Alias struct {
	Aliasname string
	Colnames  *List
}

func (*Alias) Tag() NodeTag { return TagAlias }
func (n *Alias) WalkFields(v FieldVisitor) {
	v.Str("aliasname", n.Aliasname)
	v.Child("colnames", opt(n.Colnames))
}

// RangeVar is a possibly qualified relation name.
type RangeVar struct {
	Catalogname    string
	Schemaname     string
	Relname        string
	Inh            bool
	Relpersistence byte
	Alias          *Alias
	Location       int
}

func (*RangeVar) Tag() NodeTag { return TagRangeVar }
func (n *RangeVar) WalkFields(v FieldVisitor) {
	v.Str("catalogname", n.Catalogname)
	v.Str("schemaname", n.Schemaname)
	v.Str("relname", n.Relname)
	v.Bool("inh", n.Inh)
	if n.Relpersistence != 0 {
		v.Str("relpersistence", string(rune(n.Relpersistence)))
	}
	v.Child("alias", opt(n.Alias))
}

// ColumnRef is a column reference; Fields holds String and A_Star nodes.
type ColumnRef struct {
	Fields   *List
	Location int
}

func (*ColumnRef) Tag() NodeTag { return TagColumnRef }
func (n *ColumnRef) WalkFields(v FieldVisitor) {
	v.Child("fields", opt(n.Fields))
}

// ParamRef is a positional parameter such as $1.
type ParamRef struct {
	Number   int
	Location int
}

func (*ParamRef) Tag() NodeTag { return TagParamRef }
func (n *ParamRef) WalkFields(v FieldVisitor) {
	v.Int("number", int64(n.Number))
}

// AExpr is an operator expression.
type AExpr struct {
	Kind     AExprKind
	Name     *List
	Lexpr    Node
	Rexpr    Node
	Location int
}

func (*AExpr) Tag() NodeTag { return TagAExpr }
func (n *AExpr) WalkFields(v FieldVisitor) {
	v.Enum("kind", n.Kind)
	v.Child("name", opt(n.Name))
	v.Child("lexpr", n.Lexpr)
	v.Child("rexpr", n.Rexpr)
}

// AConst is a literal constant. Val is nil when Isnull is set.
type AConst struct {
	Val      Node
	Isnull   bool
	Location int
}

func (*AConst) Tag() NodeTag { return TagAConst }
func (n *AConst) WalkFields(v FieldVisitor) {
	v.Bool("isnull", n.Isnull)
	v.Child("val", n.Val)
}

// TypeCast is an expr::type or CAST(expr AS type) conversion.
type TypeCast struct {
	Arg      Node
	TypeName *TypeName
	Location int
}

func (*TypeCast) Tag() NodeTag { return TagTypeCast }
func (n *TypeCast) WalkFields(v FieldVisitor) {
	v.Child("arg", n.Arg)
	v.Child("typeName", opt(n.TypeName))
}

// CollateClause is expr COLLATE name.
type CollateClause struct {
	Arg      Node
	Collname *List
	Location int
}

func (*CollateClause) Tag() NodeTag { return TagCollateClause }
func (n *CollateClause) WalkFields(v FieldVisitor) {
	v.Child("arg", n.Arg)
	v.Child("collname", opt(n.Collname))
}

// FuncCall is a function or aggregate invocation.
type FuncCall struct {
	Funcname       *List
	Args           *List
	AggOrder       *List
	AggFilter      Node
	Over           *WindowDef
	AggWithinGroup bool
	AggStar        bool
	AggDistinct    bool
	FuncVariadic   bool
	Funcformat     CoercionForm
	Location       int
}

func (*FuncCall) Tag() NodeTag { return TagFuncCall }
func (n *FuncCall) WalkFields(v FieldVisitor) {
	v.Child("funcname", opt(n.Funcname))
	v.Child("args", opt(n.Args))
	v.Child("agg_order", opt(n.AggOrder))
	v.Child("agg_filter", n.AggFilter)
	v.Child("over", opt(n.Over))
	v.Bool("agg_within_group", n.AggWithinGroup)
	v.Bool("agg_star", n.AggStar)
	v.Bool("agg_distinct", n.AggDistinct)
	v.Bool("func_variadic", n.FuncVariadic)
	v.Enum("funcformat", n.Funcformat)
}

// AStar is the * in a column reference or select list.
type AStar struct{}

func (*AStar) Tag() NodeTag            { return TagAStar }
func (*AStar) WalkFields(FieldVisitor) {}

// AIndices is an array subscript or slice.
type AIndices struct {
	IsSlice bool
	Lidx    Node
	Uidx    Node
}

func (*AIndices) Tag() NodeTag { return TagAIndices }
func (n *AIndices) WalkFields(v FieldVisitor) {
	v.Bool("is_slice", n.IsSlice)
	v.Child("lidx", n.Lidx)
	v.Child("uidx", n.Uidx)
}

// AIndirection applies subscripts or field selections to an expression.
type AIndirection struct {
	Arg         Node
	Indirection *List
}

func (*AIndirection) Tag() NodeTag { return TagAIndirection }
func (n *AIndirection) WalkFields(v FieldVisitor) {
	v.Child("arg", n.Arg)
	v.Child("indirection", opt(n.Indirection))
}

// AArrayExpr is an ARRAY[...] constructor.
type AArrayExpr struct {
	Elements *List
	Location int
}

func (*AArrayExpr) Tag() NodeTag { return TagAArrayExpr }
func (n *AArrayExpr) WalkFields(v FieldVisitor) {
	v.Child("elements", opt(n.Elements))
}

// ResTarget is a select list entry, an INSERT column or an UPDATE SET target.
type ResTarget struct {
	Name        string
	Indirection *List
	Val         Node
	Location    int
}

func (*ResTarget) Tag() NodeTag { return TagResTarget }
func (n *ResTarget) WalkFields(v FieldVisitor) {
	v.Str("name", n.Name)
	v.Child("indirection", opt(n.Indirection))
	v.Child("val", n.Val)
}

// SortBy is an ORDER BY item.
type SortBy struct {
	Node        Node
	SortbyDir   SortByDir
	SortbyNulls SortByNulls
	UseOp       *List
	Location    int
}

func (*SortBy) Tag() NodeTag { return TagSortBy }
func (n *SortBy) WalkFields(v FieldVisitor) {
	v.Child("node", n.Node)
	v.Enum("sortby_dir", n.SortbyDir)
	v.Enum("sortby_nulls", n.SortbyNulls)
	v.Child("useOp", opt(n.UseOp))
}

// Window frame option bits.
const (
	FrameOptionNonDefault              = 0x00001
	FrameOptionRange                   = 0x00002
	FrameOptionRows                    = 0x00004
	FrameOptionGroups                  = 0x00008
	FrameOptionBetween                 = 0x00010
	FrameOptionStartUnboundedPreceding = 0x00020
	FrameOptionEndUnboundedPreceding   = 0x00040
	FrameOptionStartUnboundedFollowing = 0x00080
	FrameOptionEndUnboundedFollowing   = 0x00100
	FrameOptionStartCurrentRow         = 0x00200
	FrameOptionEndCurrentRow           = 0x00400
	FrameOptionStartOffsetPreceding    = 0x00800
	FrameOptionEndOffsetPreceding      = 0x01000
	FrameOptionStartOffsetFollowing    = 0x02000
	FrameOptionEndOffsetFollowing      = 0x04000
	FrameOptionExcludeCurrentRow       = 0x08000
	FrameOptionExcludeGroup            = 0x10000
	FrameOptionExcludeTies             = 0x20000

	FrameOptionDefaults = FrameOptionRange | FrameOptionStartUnboundedPreceding | FrameOptionEndCurrentRow
)

// WindowDef is an OVER clause or a WINDOW clause entry.
type WindowDef struct {
	Name            string
	Refname         string
	PartitionClause *List
	OrderClause     *List
	FrameOptions    int
	StartOffset     Node
	EndOffset       Node
	Location        int
}

func (*WindowDef) Tag() NodeTag { return TagWindowDef }
func (n *WindowDef) WalkFields(v FieldVisitor) {
	v.Str("name", n.Name)
	v.Str("refname", n.Refname)
	v.Child("partitionClause", opt(n.PartitionClause))
	v.Child("orderClause", opt(n.OrderClause))
	v.Int("frameOptions", int64(n.FrameOptions))
	v.Child("startOffset", n.StartOffset)
	v.Child("endOffset", n.EndOffset)
}

// RangeSubselect is a subquery in FROM.
type RangeSubselect struct {
	Lateral  bool
	Subquery Node
	Alias    *Alias
}

func (*RangeSubselect) Tag() NodeTag { return TagRangeSubselect }
func (n *RangeSubselect) WalkFields(v FieldVisitor) {
	v.Bool("lateral", n.Lateral)
	v.Child("subquery", n.Subquery)
	v.Child("alias", opt(n.Alias))
}

// RangeFunction is a function call in FROM. Functions holds two-element lists
// of (FuncCall, column definitions).
type RangeFunction struct {
	Lateral    bool
	Ordinality bool
	IsRowsfrom bool
	Functions  *List
	Alias      *Alias
	Coldeflist *List
}

func (*RangeFunction) Tag() NodeTag { return TagRangeFunction }
func (n *RangeFunction) WalkFields(v FieldVisitor) {
	v.Bool("lateral", n.Lateral)
	v.Bool("ordinality", n.Ordinality)
	v.Bool("is_rowsfrom", n.IsRowsfrom)
	v.Child("functions", opt(n.Functions))
	v.Child("alias", opt(n.Alias))
	v.Child("coldeflist", opt(n.Coldeflist))
}

// TypeName names a type, with optional modifiers and array bounds.
type TypeName struct {
	Names       *List
	Setof       bool
	PctType     bool
	Typmods     *List
	Typemod     int
	ArrayBounds *List
	Location    int
}

func (*TypeName) Tag() NodeTag { return TagTypeName }
func (n *TypeName) WalkFields(v FieldVisitor) {
	v.Child("names", opt(n.Names))
	v.Bool("setof", n.Setof)
	v.Bool("pct_type", n.PctType)
	v.Child("typmods", opt(n.Typmods))
	v.Int("typemod", int64(n.Typemod))
	v.Child("arrayBounds", opt(n.ArrayBounds))
}

// IndexElem is a column or expression in an ON CONFLICT target.
type IndexElem struct {
	Name          string
	Expr          Node
	Indexcolname  string
	Collation     *List
	Opclass       *List
	Ordering      SortByDir
	NullsOrdering SortByNulls
}

func (*IndexElem) Tag() NodeTag { return TagIndexElem }
func (n *IndexElem) WalkFields(v FieldVisitor) {
	v.Str("name", n.Name)
	v.Child("expr", n.Expr)
	v.Str("indexcolname", n.Indexcolname)
	v.Child("collation", opt(n.Collation))
	v.Child("opclass", opt(n.Opclass))
	v.Enum("ordering", n.Ordering)
	v.Enum("nulls_ordering", n.NullsOrdering)
}

// DefElem is a generic name/value option.
type DefElem struct {
	Defnamespace string
	Defname      string
	Arg          Node
	Defaction    DefElemAction
	Location     int
}

func (*DefElem) Tag() NodeTag { return TagDefElem }
func (n *DefElem) WalkFields(v FieldVisitor) {
	v.Str("defnamespace", n.Defnamespace)
	v.Str("defname", n.Defname)
	v.Child("arg", n.Arg)
	v.Enum("defaction", n.Defaction)
}

// LockingClause is FOR UPDATE, FOR SHARE and their variants.
type LockingClause struct {
	LockedRels *List
	Strength   LockClauseStrength
	WaitPolicy LockWaitPolicy
}

func (*LockingClause) Tag() NodeTag { return TagLockingClause }
func (n *LockingClause) WalkFields(v FieldVisitor) {
	v.Child("lockedRels", opt(n.LockedRels))
	v.Enum("strength", n.Strength)
	v.Enum("waitPolicy", n.WaitPolicy)
}

// GroupingSet is ROLLUP, CUBE, GROUPING SETS or the empty set ().
type GroupingSet struct {
	Kind     GroupingSetKind
	Content  *List
	Location int
}

func (*GroupingSet) Tag() NodeTag { return TagGroupingSet }
func (n *GroupingSet) WalkFields(v FieldVisitor) {
	v.Enum("kind", n.Kind)
	v.Child("content", opt(n.Content))
}

// WithClause holds the common table expressions of a statement.
type WithClause struct {
	Ctes      *List
	Recursive bool
	Location  int
}

func (*WithClause) Tag() NodeTag { return TagWithClause }
func (n *WithClause) WalkFields(v FieldVisitor) {
	v.Child("ctes", opt(n.Ctes))
	v.Bool("recursive", n.Recursive)
}

// InferClause is the conflict target of ON CONFLICT.
type InferClause struct {
	IndexElems  *List
	WhereClause Node
	Conname     string
	Location    int
}

func (*InferClause) Tag() NodeTag { return TagInferClause }
func (n *InferClause) WalkFields(v FieldVisitor) {
	v.Child("indexElems", opt(n.IndexElems))
	v.Child("whereClause", n.WhereClause)
	v.Str("conname", n.Conname)
}

// OnConflictClause is INSERT ... ON CONFLICT.
type OnConflictClause struct {
	Action      OnConflictAction
	Infer       *InferClause
	TargetList  *List
	WhereClause Node
	Location    int
}

func (*OnConflictClause) Tag() NodeTag { return TagOnConflictClause }
func (n *OnConflictClause) WalkFields(v FieldVisitor) {
	v.Enum("action", n.Action)
	v.Child("infer", opt(n.Infer))
	v.Child("targetList", opt(n.TargetList))
	v.Child("whereClause", n.WhereClause)
}

// CommonTableExpr is one WITH entry.
type CommonTableExpr struct {
	Ctename         string
	Aliascolnames   *List
	Ctematerialized CTEMaterialize
	Ctequery        Node
	Location        int
}

func (*CommonTableExpr) Tag() NodeTag { return TagCommonTableExpr }
func (n *CommonTableExpr) WalkFields(v FieldVisitor) {
	v.Str("ctename", n.Ctename)
	v.Child("aliascolnames", opt(n.Aliascolnames))
	v.Enum("ctematerialized", n.Ctematerialized)
	v.Child("ctequery", n.Ctequery)
}

// JoinExpr is a JOIN in FROM.
type JoinExpr struct {
	Jointype       JoinType
	IsNatural      bool
	Larg           Node
	Rarg           Node
	UsingClause    *List
	JoinUsingAlias *Alias
	Quals          Node
	Alias          *Alias
}

func (*JoinExpr) Tag() NodeTag { return TagJoinExpr }
func (n *JoinExpr) WalkFields(v FieldVisitor) {
	v.Enum("jointype", n.Jointype)
	v.Bool("isNatural", n.IsNatural)
	v.Child("larg", n.Larg)
	v.Child("rarg", n.Rarg)
	v.Child("usingClause", opt(n.UsingClause))
	v.Child("join_using_alias", opt(n.JoinUsingAlias))
	v.Child("quals", n.Quals)
	v.Child("alias", opt(n.Alias))
}

// SubLink is a subquery used as an expression.
type SubLink struct {
	SubLinkType SubLinkType
	SubLinkID   int
	Testexpr    Node
	OperName    *List
	Subselect   Node
	Location    int
}

func (*SubLink) Tag() NodeTag { return TagSubLink }
func (n *SubLink) WalkFields(v FieldVisitor) {
	v.Enum("subLinkType", n.SubLinkType)
	v.Int("subLinkId", int64(n.SubLinkID))
	v.Child("testexpr", n.Testexpr)
	v.Child("operName", opt(n.OperName))
	v.Child("subselect", n.Subselect)
}

// BoolExpr is AND, OR or NOT.
type BoolExpr struct {
	Boolop   BoolExprType
	Args     *List
	Location int
}

func (*BoolExpr) Tag() NodeTag { return TagBoolExpr }
func (n *BoolExpr) WalkFields(v FieldVisitor) {
	v.Enum("boolop", n.Boolop)
	v.Child("args", opt(n.Args))
}

// CaseExpr is a CASE expression; Args holds CaseWhen nodes.
type CaseExpr struct {
	Arg       Node
	Args      *List
	Defresult Node
	Location  int
}

func (*CaseExpr) Tag() NodeTag { return TagCaseExpr }
func (n *CaseExpr) WalkFields(v FieldVisitor) {
	v.Child("arg", n.Arg)
	v.Child("args", opt(n.Args))
	v.Child("defresult", n.Defresult)
}

// CaseWhen is one WHEN arm.
type CaseWhen struct {
	Expr     Node
	Result   Node
	Location int
}

func (*CaseWhen) Tag() NodeTag { return TagCaseWhen }
func (n *CaseWhen) WalkFields(v FieldVisitor) {
	v.Child("expr", n.Expr)
	v.Child("result", n.Result)
}

// RowExpr is ROW(...) or an implicit (a, b) row.
type RowExpr struct {
	Args      *List
	RowFormat CoercionForm
	Colnames  *List
	Location  int
}

func (*RowExpr) Tag() NodeTag { return TagRowExpr }
func (n *RowExpr) WalkFields(v FieldVisitor) {
	v.Child("args", opt(n.Args))
	v.Enum("row_format", n.RowFormat)
	v.Child("colnames", opt(n.Colnames))
}

// CoalesceExpr is COALESCE(...).
type CoalesceExpr struct {
	Args     *List
	Location int
}

func (*CoalesceExpr) Tag() NodeTag { return TagCoalesceExpr }
func (n *CoalesceExpr) WalkFields(v FieldVisitor) {
	v.Child("args", opt(n.Args))
}

// MinMaxExpr is GREATEST(...) or LEAST(...).
type MinMaxExpr struct {
	Op       MinMaxOp
	Args     *List
	Location int
}

func (*MinMaxExpr) Tag() NodeTag { return TagMinMaxExpr }
func (n *MinMaxExpr) WalkFields(v FieldVisitor) {
	v.Enum("op", n.Op)
	v.Child("args", opt(n.Args))
}

// SQLValueFunction is CURRENT_DATE, CURRENT_USER and friends.
type SQLValueFunction struct {
	Op       SQLValueFunctionOp
	Typmod   int
	Location int
}

func (*SQLValueFunction) Tag() NodeTag { return TagSQLValueFunction }
func (n *SQLValueFunction) WalkFields(v FieldVisitor) {
	v.Enum("op", n.Op)
	v.Int("typmod", int64(n.Typmod))
}

// NullTest is IS [NOT] NULL.
type NullTest struct {
	Arg          Node
	Nulltesttype NullTestType
	Argisrow     bool
	Location     int
}

func (*NullTest) Tag() NodeTag { return TagNullTest }
func (n *NullTest) WalkFields(v FieldVisitor) {
	v.Child("arg", n.Arg)
	v.Enum("nulltesttype", n.Nulltesttype)
	v.Bool("argisrow", n.Argisrow)
}

// BooleanTest is IS [NOT] TRUE, FALSE or UNKNOWN.
type BooleanTest struct {
	Arg          Node
	Booltesttype BoolTestType
	Location     int
}

func (*BooleanTest) Tag() NodeTag { return TagBooleanTest }
func (n *BooleanTest) WalkFields(v FieldVisitor) {
	v.Child("arg", n.Arg)
	v.Enum("booltesttype", n.Booltesttype)
}

// SetToDefault is the DEFAULT keyword in INSERT or UPDATE.
type SetToDefault struct {
	Location int
}

func (*SetToDefault) Tag() NodeTag            { return TagSetToDefault }
func (*SetToDefault) WalkFields(FieldVisitor) {}
