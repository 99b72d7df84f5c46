// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package ast

// RawStmt wraps one statement of a query string.
type RawStmt struct {
	Stmt         Node
	StmtLocation int
	// StmtLen is 0 when the statement runs to the end of the string.
	StmtLen int
}

func (*RawStmt) Tag() NodeTag { return TagRawStmt }
func (n *RawStmt) WalkFields(v FieldVisitor) {
	v.Child("stmt", n.Stmt)
}

// SelectStmt is a SELECT, a VALUES list or a set operation over two selects.
// Leaf selects have Op == SetOpNone; set operations only use Larg, Rarg, All
// and the trailing clauses.
type SelectStmt struct {
	DistinctClause *List
	TargetList     *List
	FromClause     *List
	WhereClause    Node
	GroupClause    *List
	GroupDistinct  bool
	HavingClause   Node
	WindowClause   *List
	ValuesLists    *List
	SortClause     *List
	LimitOffset    Node
	LimitCount     Node
	LimitOption    LimitOption
	LockingClause  *List
	WithClause     *WithClause
	Op             SetOperation
	All            bool
	Larg           *SelectStmt
	Rarg           *SelectStmt
}

func (*SelectStmt) Tag() NodeTag { return TagSelectStmt }
func (n *SelectStmt) WalkFields(v FieldVisitor) {
	v.Child("distinctClause", opt(n.DistinctClause))
	v.Child("targetList", opt(n.TargetList))
	v.Child("fromClause", opt(n.FromClause))
	v.Child("whereClause", n.WhereClause)
	v.Child("groupClause", opt(n.GroupClause))
	v.Bool("groupDistinct", n.GroupDistinct)
	v.Child("havingClause", n.HavingClause)
	v.Child("windowClause", opt(n.WindowClause))
	v.Child("valuesLists", opt(n.ValuesLists))
	v.Child("sortClause", opt(n.SortClause))
	v.Child("limitOffset", n.LimitOffset)
	v.Child("limitCount", n.LimitCount)
	v.Enum("limitOption", n.LimitOption)
	v.Child("lockingClause", opt(n.LockingClause))
	v.Child("withClause", opt(n.WithClause))
	v.Enum("op", n.Op)
	v.Bool("all", n.All)
	v.Child("larg", opt(n.Larg))
	v.Child("rarg", opt(n.Rarg))
}

// InsertStmt is INSERT. SelectStmt is nil for DEFAULT VALUES.
type InsertStmt struct {
	Relation         *RangeVar
	Cols             *List
	SelectStmt       Node
	OnConflictClause *OnConflictClause
	ReturningList    *List
	WithClause       *WithClause
	Override         OverridingKind
}

func (*InsertStmt) Tag() NodeTag { return TagInsertStmt }
func (n *InsertStmt) WalkFields(v FieldVisitor) {
	v.Child("relation", opt(n.Relation))
	v.Child("cols", opt(n.Cols))
	v.Child("selectStmt", n.SelectStmt)
	v.Child("onConflictClause", opt(n.OnConflictClause))
	v.Child("returningList", opt(n.ReturningList))
	v.Child("withClause", opt(n.WithClause))
	v.Enum("override", n.Override)
}

// UpdateStmt is UPDATE.
type UpdateStmt struct {
	Relation      *RangeVar
	TargetList    *List
	WhereClause   Node
	FromClause    *List
	ReturningList *List
	WithClause    *WithClause
}

func (*UpdateStmt) Tag() NodeTag { return TagUpdateStmt }
func (n *UpdateStmt) WalkFields(v FieldVisitor) {
	v.Child("relation", opt(n.Relation))
	v.Child("targetList", opt(n.TargetList))
	v.Child("whereClause", n.WhereClause)
	v.Child("fromClause", opt(n.FromClause))
	v.Child("returningList", opt(n.ReturningList))
	v.Child("withClause", opt(n.WithClause))
}

// DeleteStmt is DELETE.
type DeleteStmt struct {
	Relation      *RangeVar
	UsingClause   *List
	WhereClause   Node
	ReturningList *List
	WithClause    *WithClause
}

func (*DeleteStmt) Tag() NodeTag { return TagDeleteStmt }
func (n *DeleteStmt) WalkFields(v FieldVisitor) {
	v.Child("relation", opt(n.Relation))
	v.Child("usingClause", opt(n.UsingClause))
	v.Child("whereClause", n.WhereClause)
	v.Child("returningList", opt(n.ReturningList))
	v.Child("withClause", opt(n.WithClause))
}

// VariableSetStmt is SET or RESET.
type VariableSetStmt struct {
	Kind    VariableSetKind
	Name    string
	Args    *List
	IsLocal bool
}

func (*VariableSetStmt) Tag() NodeTag { return TagVariableSetStmt }
func (n *VariableSetStmt) WalkFields(v FieldVisitor) {
	v.Enum("kind", n.Kind)
	v.Str("name", n.Name)
	v.Child("args", opt(n.Args))
	v.Bool("is_local", n.IsLocal)
}

// VariableShowStmt is SHOW.
type VariableShowStmt struct {
	Name string
}

func (*VariableShowStmt) Tag() NodeTag { return TagVariableShowStmt }
func (n *VariableShowStmt) WalkFields(v FieldVisitor) {
	v.Str("name", n.Name)
}

// TransactionStmt is BEGIN, COMMIT, ROLLBACK and the savepoint commands.
type TransactionStmt struct {
	Kind          TransactionStmtKind
	Options       *List
	SavepointName string
	Gid           string
	Chain         bool
}

func (*TransactionStmt) Tag() NodeTag { return TagTransactionStmt }
func (n *TransactionStmt) WalkFields(v FieldVisitor) {
	v.Enum("kind", n.Kind)
	v.Child("options", opt(n.Options))
	v.Str("savepoint_name", n.SavepointName)
	v.Str("gid", n.Gid)
	v.Bool("chain", n.Chain)
}

// ExplainStmt is EXPLAIN; Options holds DefElem nodes.
type ExplainStmt struct {
	Query   Node
	Options *List
}

func (*ExplainStmt) Tag() NodeTag { return TagExplainStmt }
func (n *ExplainStmt) WalkFields(v FieldVisitor) {
	v.Child("query", n.Query)
	v.Child("options", opt(n.Options))
}

// PrepareStmt is PREPARE name [(types)] AS query.
type PrepareStmt struct {
	Name     string
	Argtypes *List
	Query    Node
}

func (*PrepareStmt) Tag() NodeTag { return TagPrepareStmt }
func (n *PrepareStmt) WalkFields(v FieldVisitor) {
	v.Str("name", n.Name)
	v.Child("argtypes", opt(n.Argtypes))
	v.Child("query", n.Query)
}

// ExecuteStmt is EXECUTE name [(params)].
type ExecuteStmt struct {
	Name   string
	Params *List
}

func (*ExecuteStmt) Tag() NodeTag { return TagExecuteStmt }
func (n *ExecuteStmt) WalkFields(v FieldVisitor) {
	v.Str("name", n.Name)
	v.Child("params", opt(n.Params))
}

// DeallocateStmt is DEALLOCATE; Name is empty for DEALLOCATE ALL.
type DeallocateStmt struct {
	Name string
}

func (*DeallocateStmt) Tag() NodeTag { return TagDeallocateStmt }
func (n *DeallocateStmt) WalkFields(v FieldVisitor) {
	v.Str("name", n.Name)
}

// CreateRoleStmt is CREATE ROLE, USER or GROUP.
type CreateRoleStmt struct {
	StmtType RoleStmtType
	Role     string
	Options  *List
}

func (*CreateRoleStmt) Tag() NodeTag { return TagCreateRoleStmt }
func (n *CreateRoleStmt) WalkFields(v FieldVisitor) {
	v.Enum("stmt_type", n.StmtType)
	v.Str("role", n.Role)
	v.Child("options", opt(n.Options))
}

// DoStmt is DO; Args holds the "as" and "language" DefElems.
type DoStmt struct {
	Args *List
}

func (*DoStmt) Tag() NodeTag { return TagDoStmt }
func (n *DoStmt) WalkFields(v FieldVisitor) {
	v.Child("args", opt(n.Args))
}

// CreateSubscriptionStmt is CREATE SUBSCRIPTION.
type CreateSubscriptionStmt struct {
	Subname     string
	Conninfo    string
	Publication *List
	Options     *List
}

func (*CreateSubscriptionStmt) Tag() NodeTag { return TagCreateSubscriptionStmt }
func (n *CreateSubscriptionStmt) WalkFields(v FieldVisitor) {
	v.Str("subname", n.Subname)
	v.Str("conninfo", n.Conninfo)
	v.Child("publication", opt(n.Publication))
	v.Child("options", opt(n.Options))
}

// CallStmt is CALL.
type CallStmt struct {
	Funccall *FuncCall
}

func (*CallStmt) Tag() NodeTag { return TagCallStmt }
func (n *CallStmt) WalkFields(v FieldVisitor) {
	v.Child("funccall", opt(n.Funccall))
}
