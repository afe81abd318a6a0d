// Package ast defines the abstract syntax tree produced by the chronoql
// parser. Every node carries a NodeTag identifying its shape, the byte
// offset of the token that introduced it, and a SqlString method that
// renders the node back to parseable SQL.
package ast

import (
	"fmt"
	"strings"
)

// NodeTag identifies the concrete type of an AST node. The tag uniquely
// determines the node's Go struct, so consumers can switch on it instead
// of type-asserting.
type NodeTag int

const (
	T_Invalid NodeTag = iota

	// Query statements
	T_SelectStmt
	T_InsertStmt
	T_UpdateStmt
	T_PivotStmt

	// DDL statements
	T_CreateTableStmt
	T_CreateMatViewStmt
	T_CreateViewStmt
	T_AlterTableStmt
	T_AlterMatViewStmt
	T_DropTableStmt
	T_DropMatViewStmt
	T_DropViewStmt
	T_DropAllTablesStmt
	T_RenameTableStmt
	T_TruncateTableStmt

	// Table maintenance and data movement
	T_VacuumTableStmt
	T_ReindexTableStmt
	T_CheckpointStmt
	T_SnapshotStmt
	T_BackupStmt
	T_CopyStmt
	T_ResumeWalStmt
	T_SetTypeStmt

	// Users, groups, service accounts and permissions
	T_CreateUserStmt
	T_CreateGroupStmt
	T_CreateServiceAccountStmt
	T_AlterUserStmt
	T_DropUserStmt
	T_DropGroupStmt
	T_DropServiceAccountStmt
	T_AddUserStmt
	T_RemoveUserStmt
	T_GrantStmt
	T_RevokeStmt
	T_AssumeServiceAccountStmt
	T_ExitServiceAccountStmt

	// Introspection
	T_ShowStmt
	T_ExplainStmt

	// Clause nodes
	T_QualifiedName
	T_SelectColumn
	T_WithClause
	T_TableExpr
	T_JoinClause
	T_LatestOnClause
	T_SampleByClause
	T_OrderByItem
	T_LimitClause
	T_SetOpClause
	T_WindowSpec
	T_ColumnDef
	T_TypeName
	T_TtlClause
	T_IndexClause
	T_CastTypeClause
	T_AlterTableCmd
	T_AlterUserAction
	T_CaseWhen
	T_CopyOption
	T_PermissionTarget
	T_PivotAggregation
	T_PivotForClause

	// Expression nodes
	T_BinaryExpr
	T_UnaryExpr
	T_ColumnRef
	T_VariableRef
	T_StringLiteral
	T_NumberLiteral
	T_BooleanLiteral
	T_NullLiteral
	T_GeohashLiteral
	T_DurationLiteral
	T_FunctionCall
	T_CaseExpr
	T_CastExpr
	T_TypeCastExpr
	T_InExpr
	T_BetweenExpr
	T_WithinExpr
	T_IsNullExpr
	T_ParenExpr
	T_TupleExpr
	T_ArrayLiteral
	T_ArrayAccess
	T_ArraySlice
	T_SubqueryExpr

	tagSentinel
)

var nodeTagNames = [...]string{
	T_Invalid: "T_Invalid",

	T_SelectStmt: "T_SelectStmt",
	T_InsertStmt: "T_InsertStmt",
	T_UpdateStmt: "T_UpdateStmt",
	T_PivotStmt:  "T_PivotStmt",

	T_CreateTableStmt:   "T_CreateTableStmt",
	T_CreateMatViewStmt: "T_CreateMatViewStmt",
	T_CreateViewStmt:    "T_CreateViewStmt",
	T_AlterTableStmt:    "T_AlterTableStmt",
	T_AlterMatViewStmt:  "T_AlterMatViewStmt",
	T_DropTableStmt:     "T_DropTableStmt",
	T_DropMatViewStmt:   "T_DropMatViewStmt",
	T_DropViewStmt:      "T_DropViewStmt",
	T_DropAllTablesStmt: "T_DropAllTablesStmt",
	T_RenameTableStmt:   "T_RenameTableStmt",
	T_TruncateTableStmt: "T_TruncateTableStmt",

	T_VacuumTableStmt:  "T_VacuumTableStmt",
	T_ReindexTableStmt: "T_ReindexTableStmt",
	T_CheckpointStmt:   "T_CheckpointStmt",
	T_SnapshotStmt:     "T_SnapshotStmt",
	T_BackupStmt:       "T_BackupStmt",
	T_CopyStmt:         "T_CopyStmt",
	T_ResumeWalStmt:    "T_ResumeWalStmt",
	T_SetTypeStmt:      "T_SetTypeStmt",

	T_CreateUserStmt:           "T_CreateUserStmt",
	T_CreateGroupStmt:          "T_CreateGroupStmt",
	T_CreateServiceAccountStmt: "T_CreateServiceAccountStmt",
	T_AlterUserStmt:            "T_AlterUserStmt",
	T_DropUserStmt:             "T_DropUserStmt",
	T_DropGroupStmt:            "T_DropGroupStmt",
	T_DropServiceAccountStmt:   "T_DropServiceAccountStmt",
	T_AddUserStmt:              "T_AddUserStmt",
	T_RemoveUserStmt:           "T_RemoveUserStmt",
	T_GrantStmt:                "T_GrantStmt",
	T_RevokeStmt:               "T_RevokeStmt",
	T_AssumeServiceAccountStmt: "T_AssumeServiceAccountStmt",
	T_ExitServiceAccountStmt:   "T_ExitServiceAccountStmt",

	T_ShowStmt:    "T_ShowStmt",
	T_ExplainStmt: "T_ExplainStmt",

	T_QualifiedName:    "T_QualifiedName",
	T_SelectColumn:     "T_SelectColumn",
	T_WithClause:       "T_WithClause",
	T_TableExpr:        "T_TableExpr",
	T_JoinClause:       "T_JoinClause",
	T_LatestOnClause:   "T_LatestOnClause",
	T_SampleByClause:   "T_SampleByClause",
	T_OrderByItem:      "T_OrderByItem",
	T_LimitClause:      "T_LimitClause",
	T_SetOpClause:      "T_SetOpClause",
	T_WindowSpec:       "T_WindowSpec",
	T_ColumnDef:        "T_ColumnDef",
	T_TypeName:         "T_TypeName",
	T_TtlClause:        "T_TtlClause",
	T_IndexClause:      "T_IndexClause",
	T_CastTypeClause:   "T_CastTypeClause",
	T_AlterTableCmd:    "T_AlterTableCmd",
	T_AlterUserAction:  "T_AlterUserAction",
	T_CaseWhen:         "T_CaseWhen",
	T_CopyOption:       "T_CopyOption",
	T_PermissionTarget: "T_PermissionTarget",
	T_PivotAggregation: "T_PivotAggregation",
	T_PivotForClause:   "T_PivotForClause",

	T_BinaryExpr:      "T_BinaryExpr",
	T_UnaryExpr:       "T_UnaryExpr",
	T_ColumnRef:       "T_ColumnRef",
	T_VariableRef:     "T_VariableRef",
	T_StringLiteral:   "T_StringLiteral",
	T_NumberLiteral:   "T_NumberLiteral",
	T_BooleanLiteral:  "T_BooleanLiteral",
	T_NullLiteral:     "T_NullLiteral",
	T_GeohashLiteral:  "T_GeohashLiteral",
	T_DurationLiteral: "T_DurationLiteral",
	T_FunctionCall:    "T_FunctionCall",
	T_CaseExpr:        "T_CaseExpr",
	T_CastExpr:        "T_CastExpr",
	T_TypeCastExpr:    "T_TypeCastExpr",
	T_InExpr:          "T_InExpr",
	T_BetweenExpr:     "T_BetweenExpr",
	T_WithinExpr:      "T_WithinExpr",
	T_IsNullExpr:      "T_IsNullExpr",
	T_ParenExpr:       "T_ParenExpr",
	T_TupleExpr:       "T_TupleExpr",
	T_ArrayLiteral:    "T_ArrayLiteral",
	T_ArrayAccess:     "T_ArrayAccess",
	T_ArraySlice:      "T_ArraySlice",
	T_SubqueryExpr:    "T_SubqueryExpr",
}

// String returns the name of the tag for debugging and error reporting.
func (nt NodeTag) String() string {
	if nt > T_Invalid && nt < tagSentinel {
		return nodeTagNames[nt]
	}
	return fmt.Sprintf("NodeTag(%d)", int(nt))
}

// Node is the base interface implemented by every AST node.
type Node interface {
	// NodeTag returns the type tag for this node.
	NodeTag() NodeTag

	// Location returns the byte offset in the source string where this
	// node begins, or -1 when the node was built without one.
	Location() int

	// String returns a short representation for debugging.
	String() string

	// SqlString renders the node back to SQL text.
	SqlString() string
}

// BaseNode supplies the Node plumbing shared by all concrete nodes.
// Concrete node types embed it and implement SqlString themselves.
type BaseNode struct {
	Tag NodeTag // node type tag
	Loc int     // byte offset into the source, -1 if unknown
}

// NodeTag returns the node's type tag.
func (n *BaseNode) NodeTag() NodeTag {
	return n.Tag
}

// Location returns the node's source offset.
func (n *BaseNode) Location() int {
	return n.Loc
}

// SetLocation records the source offset this node starts at.
func (n *BaseNode) SetLocation(location int) {
	n.Loc = location
}

// String returns a basic representation; most node types override this.
func (n *BaseNode) String() string {
	return fmt.Sprintf("%s@%d", n.Tag, n.Loc)
}

// Statement is implemented by all top-level statement nodes.
type Statement interface {
	Node
	StatementType() string
}

// Expression is implemented by every node legal in expression position.
type Expression interface {
	Node
	ExpressionType() string
}

// Deparse renders any AST node back to SQL text. It is the inverse of
// parsing up to whitespace and case normalization: feeding the result
// back through the parser yields a statement with the same tag.
func Deparse(node Node) string {
	if node == nil {
		return ""
	}
	return node.SqlString()
}

// QualifiedName is a dot-separated name path such as "t.x" or
// "telemetry.cpu". Parts is never empty for a well-formed node.
type QualifiedName struct {
	BaseNode
	Parts []string
}

// NewQualifiedName creates a qualified name from its parts.
func NewQualifiedName(parts ...string) *QualifiedName {
	return &QualifiedName{
		BaseNode: BaseNode{Tag: T_QualifiedName, Loc: -1},
		Parts:    parts,
	}
}

// Last returns the final path element, the object's own name.
func (q *QualifiedName) Last() string {
	if len(q.Parts) == 0 {
		return ""
	}
	return q.Parts[len(q.Parts)-1]
}

// String returns the dotted path for debugging.
func (q *QualifiedName) String() string {
	return fmt.Sprintf("QualifiedName(%s)@%d", strings.Join(q.Parts, "."), q.Location())
}

// SqlString renders the name with each part quoted as needed.
func (q *QualifiedName) SqlString() string {
	return FormatQualifiedName(q.Parts...)
}
