// Package ast expression node definitions: literals, operators, function
// calls and the subscript and cast forms of the chronoql dialect.
package ast

import (
	"fmt"
	"strings"
)

// BinaryExpr is a two-operand operator application. Op holds the operator
// as written, upper-cased for word operators ("AND", "LIKE").
//
// SqlString emits the operands in source order with no parentheses of its
// own, so grouping survives only where the tree contains ParenExpr nodes.
type BinaryExpr struct {
	BaseNode
	Op    string
	Left  Expression
	Right Expression
}

// NewBinaryExpr creates a binary operator node.
func NewBinaryExpr(op string, left, right Expression, location int) *BinaryExpr {
	return &BinaryExpr{
		BaseNode: BaseNode{Tag: T_BinaryExpr, Loc: location},
		Op:       op,
		Left:     left,
		Right:    right,
	}
}

func (e *BinaryExpr) ExpressionType() string {
	return "BinaryExpr"
}

func (e *BinaryExpr) String() string {
	return fmt.Sprintf("BinaryExpr(%s)@%d", e.Op, e.Location())
}

func (e *BinaryExpr) SqlString() string {
	return e.Left.SqlString() + " " + e.Op + " " + e.Right.SqlString()
}

// UnaryExpr is a prefix operator application: "-", "~" or "NOT".
type UnaryExpr struct {
	BaseNode
	Op      string
	Operand Expression
}

// NewUnaryExpr creates a prefix operator node.
func NewUnaryExpr(op string, operand Expression, location int) *UnaryExpr {
	return &UnaryExpr{
		BaseNode: BaseNode{Tag: T_UnaryExpr, Loc: location},
		Op:       op,
		Operand:  operand,
	}
}

func (e *UnaryExpr) ExpressionType() string {
	return "UnaryExpr"
}

func (e *UnaryExpr) String() string {
	return fmt.Sprintf("UnaryExpr(%s)@%d", e.Op, e.Location())
}

func (e *UnaryExpr) SqlString() string {
	if isWordOperator(e.Op) {
		return e.Op + " " + e.Operand.SqlString()
	}
	return e.Op + e.Operand.SqlString()
}

func isWordOperator(op string) bool {
	for _, r := range op {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return len(op) > 0
}

// ColumnRef references a column, optionally qualified, or a star
// projection. For "*" Name is nil and Star is set; for "t.*" Name holds
// the qualifier.
type ColumnRef struct {
	BaseNode
	Name *QualifiedName
	Star bool
}

// NewColumnRef creates a column reference from name parts.
func NewColumnRef(name *QualifiedName, location int) *ColumnRef {
	return &ColumnRef{
		BaseNode: BaseNode{Tag: T_ColumnRef, Loc: location},
		Name:     name,
	}
}

// NewStarRef creates a star projection, qualified when name is non-nil.
func NewStarRef(name *QualifiedName, location int) *ColumnRef {
	return &ColumnRef{
		BaseNode: BaseNode{Tag: T_ColumnRef, Loc: location},
		Name:     name,
		Star:     true,
	}
}

func (e *ColumnRef) ExpressionType() string {
	return "ColumnRef"
}

func (e *ColumnRef) String() string {
	return fmt.Sprintf("ColumnRef(%s)@%d", e.SqlString(), e.Location())
}

func (e *ColumnRef) SqlString() string {
	if e.Star {
		if e.Name == nil {
			return "*"
		}
		return e.Name.SqlString() + ".*"
	}
	return e.Name.SqlString()
}

// VariableRef is an "@name" bind variable reference. Name excludes the
// leading at sign.
type VariableRef struct {
	BaseNode
	Name string
}

func (e *VariableRef) ExpressionType() string {
	return "VariableRef"
}

func (e *VariableRef) String() string {
	return fmt.Sprintf("VariableRef(@%s)@%d", e.Name, e.Location())
}

func (e *VariableRef) SqlString() string {
	return "@" + e.Name
}

// StringLiteral holds an unescaped string value.
type StringLiteral struct {
	BaseNode
	Value string
}

// NewStringLiteral creates a string literal node.
func NewStringLiteral(value string, location int) *StringLiteral {
	return &StringLiteral{
		BaseNode: BaseNode{Tag: T_StringLiteral, Loc: location},
		Value:    value,
	}
}

func (e *StringLiteral) ExpressionType() string {
	return "StringLiteral"
}

func (e *StringLiteral) String() string {
	return fmt.Sprintf("StringLiteral(%q)@%d", e.Value, e.Location())
}

func (e *StringLiteral) SqlString() string {
	return QuoteStringLiteral(e.Value)
}

// NumberLiteral is a numeric literal. Raw preserves the literal exactly
// as written, including underscore separators and any L or m suffix.
// Val carries the numeric value; for L-suffixed literals whose magnitude
// exceeds 2^53-1, Exact holds the digits instead so no precision is lost.
type NumberLiteral struct {
	BaseNode
	Raw     string
	Val     float64
	Exact   string
	Long    bool
	Decimal bool
}

// NewNumberLiteral creates a numeric literal node.
func NewNumberLiteral(raw string, val float64, location int) *NumberLiteral {
	return &NumberLiteral{
		BaseNode: BaseNode{Tag: T_NumberLiteral, Loc: location},
		Raw:      raw,
		Val:      val,
	}
}

// Value returns the literal's value: the exact digit string when the
// literal does not fit the double-precision integer range, the float64
// value otherwise.
func (e *NumberLiteral) Value() any {
	if e.Exact != "" {
		return e.Exact
	}
	return e.Val
}

func (e *NumberLiteral) ExpressionType() string {
	return "NumberLiteral"
}

func (e *NumberLiteral) String() string {
	return fmt.Sprintf("NumberLiteral(%s)@%d", e.Raw, e.Location())
}

func (e *NumberLiteral) SqlString() string {
	return e.Raw
}

// BooleanLiteral is TRUE or FALSE.
type BooleanLiteral struct {
	BaseNode
	Value bool
}

// NewBooleanLiteral creates a boolean literal node.
func NewBooleanLiteral(value bool, location int) *BooleanLiteral {
	return &BooleanLiteral{
		BaseNode: BaseNode{Tag: T_BooleanLiteral, Loc: location},
		Value:    value,
	}
}

func (e *BooleanLiteral) ExpressionType() string {
	return "BooleanLiteral"
}

func (e *BooleanLiteral) SqlString() string {
	if e.Value {
		return "TRUE"
	}
	return "FALSE"
}

// NullLiteral is the NULL keyword in expression position.
type NullLiteral struct {
	BaseNode
}

// NewNullLiteral creates a NULL literal node.
func NewNullLiteral(location int) *NullLiteral {
	return &NullLiteral{BaseNode: BaseNode{Tag: T_NullLiteral, Loc: location}}
}

func (e *NullLiteral) ExpressionType() string {
	return "NullLiteral"
}

func (e *NullLiteral) SqlString() string {
	return "NULL"
}

// GeohashLiteral is a geohash constant: "#" plus base32 digits with an
// optional "/bits" suffix, or "##" plus binary digits. Raw includes the
// hash prefix.
type GeohashLiteral struct {
	BaseNode
	Raw    string
	Binary bool
}

func (e *GeohashLiteral) ExpressionType() string {
	return "GeohashLiteral"
}

func (e *GeohashLiteral) String() string {
	return fmt.Sprintf("GeohashLiteral(%s)@%d", e.Raw, e.Location())
}

func (e *GeohashLiteral) SqlString() string {
	return e.Raw
}

// DurationLiteral is a time interval written as magnitude plus unit
// suffix, e.g. "15s" or "1.5d". Raw preserves the literal as written.
type DurationLiteral struct {
	BaseNode
	Raw       string
	Magnitude float64
	Unit      string
}

// NewDurationLiteral creates a duration literal node.
func NewDurationLiteral(raw string, magnitude float64, unit string, location int) *DurationLiteral {
	return &DurationLiteral{
		BaseNode:  BaseNode{Tag: T_DurationLiteral, Loc: location},
		Raw:       raw,
		Magnitude: magnitude,
		Unit:      unit,
	}
}

func (e *DurationLiteral) ExpressionType() string {
	return "DurationLiteral"
}

func (e *DurationLiteral) String() string {
	return fmt.Sprintf("DurationLiteral(%s)@%d", e.Raw, e.Location())
}

func (e *DurationLiteral) SqlString() string {
	return e.Raw
}

// FunctionCall is a function invocation. The modifier fields cover the
// aggregate and window forms: count(DISTINCT x), count(*),
// extract(part FROM ts), first_value(x) IGNORE NULLS OVER (...).
type FunctionCall struct {
	BaseNode
	Name          *QualifiedName
	Args          []Expression
	Distinct      bool
	Star          bool
	FromSeparator bool
	IgnoreNulls   bool
	Over          *WindowSpec
}

// NewFunctionCall creates a plain function call node.
func NewFunctionCall(name *QualifiedName, args []Expression, location int) *FunctionCall {
	return &FunctionCall{
		BaseNode: BaseNode{Tag: T_FunctionCall, Loc: location},
		Name:     name,
		Args:     args,
	}
}

func (e *FunctionCall) ExpressionType() string {
	return "FunctionCall"
}

func (e *FunctionCall) String() string {
	return fmt.Sprintf("FunctionCall(%s/%d)@%d", e.Name.SqlString(), len(e.Args), e.Location())
}

func (e *FunctionCall) SqlString() string {
	var sb strings.Builder
	sb.WriteString(e.Name.SqlString())
	sb.WriteString("(")
	if e.Distinct {
		sb.WriteString("DISTINCT ")
	}
	switch {
	case e.Star:
		sb.WriteString("*")
	case e.FromSeparator && len(e.Args) == 2:
		sb.WriteString(e.Args[0].SqlString())
		sb.WriteString(" FROM ")
		sb.WriteString(e.Args[1].SqlString())
	default:
		for i, arg := range e.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.SqlString())
		}
	}
	sb.WriteString(")")
	if e.IgnoreNulls {
		sb.WriteString(" IGNORE NULLS")
	}
	if e.Over != nil {
		sb.WriteString(" OVER ")
		sb.WriteString(e.Over.SqlString())
	}
	return sb.String()
}

// CaseWhen is one WHEN/THEN arm of a CASE expression.
type CaseWhen struct {
	BaseNode
	When Expression
	Then Expression
}

func (e *CaseWhen) SqlString() string {
	return "WHEN " + e.When.SqlString() + " THEN " + e.Then.SqlString()
}

// CaseExpr is a CASE expression. Operand is nil for the searched form
// and set for the simple form.
type CaseExpr struct {
	BaseNode
	Operand Expression
	Whens   []*CaseWhen
	Else    Expression
}

func (e *CaseExpr) ExpressionType() string {
	return "CaseExpr"
}

func (e *CaseExpr) SqlString() string {
	parts := []string{"CASE"}
	if e.Operand != nil {
		parts = append(parts, e.Operand.SqlString())
	}
	for _, w := range e.Whens {
		parts = append(parts, w.SqlString())
	}
	if e.Else != nil {
		parts = append(parts, "ELSE", e.Else.SqlString())
	}
	parts = append(parts, "END")
	return strings.Join(parts, " ")
}

// CastExpr is the functional cast form CAST(value AS type).
type CastExpr struct {
	BaseNode
	Value Expression
	Type  *TypeName
}

func (e *CastExpr) ExpressionType() string {
	return "CastExpr"
}

func (e *CastExpr) SqlString() string {
	return "CAST(" + e.Value.SqlString() + " AS " + e.Type.SqlString() + ")"
}

// TypeCastExpr is the postfix cast form value::type.
type TypeCastExpr struct {
	BaseNode
	Value Expression
	Type  *TypeName
}

// NewTypeCastExpr creates a postfix cast node.
func NewTypeCastExpr(value Expression, typ *TypeName, location int) *TypeCastExpr {
	return &TypeCastExpr{
		BaseNode: BaseNode{Tag: T_TypeCastExpr, Loc: location},
		Value:    value,
		Type:     typ,
	}
}

func (e *TypeCastExpr) ExpressionType() string {
	return "TypeCastExpr"
}

func (e *TypeCastExpr) SqlString() string {
	return e.Value.SqlString() + "::" + e.Type.SqlString()
}

// InExpr is value [NOT] IN (list). Subquery membership is a List with a
// single SubqueryExpr element.
type InExpr struct {
	BaseNode
	Not   bool
	Value Expression
	List  []Expression
}

func (e *InExpr) ExpressionType() string {
	return "InExpr"
}

func (e *InExpr) SqlString() string {
	var sb strings.Builder
	sb.WriteString(e.Value.SqlString())
	if e.Not {
		sb.WriteString(" NOT")
	}
	sb.WriteString(" IN (")
	for i, item := range e.List {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.SqlString())
	}
	sb.WriteString(")")
	return sb.String()
}

// BetweenExpr is value [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	BaseNode
	Not   bool
	Value Expression
	Low   Expression
	High  Expression
}

func (e *BetweenExpr) ExpressionType() string {
	return "BetweenExpr"
}

func (e *BetweenExpr) SqlString() string {
	not := ""
	if e.Not {
		not = "NOT "
	}
	return e.Value.SqlString() + " " + not + "BETWEEN " + e.Low.SqlString() + " AND " + e.High.SqlString()
}

// WithinExpr is the geospatial prefix filter value WITHIN(args).
type WithinExpr struct {
	BaseNode
	Value Expression
	Args  []Expression
}

func (e *WithinExpr) ExpressionType() string {
	return "WithinExpr"
}

func (e *WithinExpr) SqlString() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.SqlString()
	}
	return e.Value.SqlString() + " WITHIN(" + strings.Join(args, ", ") + ")"
}

// IsNullExpr is value IS [NOT] NULL.
type IsNullExpr struct {
	BaseNode
	Not   bool
	Value Expression
}

func (e *IsNullExpr) ExpressionType() string {
	return "IsNullExpr"
}

func (e *IsNullExpr) SqlString() string {
	if e.Not {
		return e.Value.SqlString() + " IS NOT NULL"
	}
	return e.Value.SqlString() + " IS NULL"
}

// ParenExpr records an explicit source-level parenthesization. It is the
// only node that prints parentheses around a nested expression.
type ParenExpr struct {
	BaseNode
	Inner Expression
}

// NewParenExpr creates an explicit grouping node.
func NewParenExpr(inner Expression, location int) *ParenExpr {
	return &ParenExpr{
		BaseNode: BaseNode{Tag: T_ParenExpr, Loc: location},
		Inner:    inner,
	}
}

func (e *ParenExpr) ExpressionType() string {
	return "ParenExpr"
}

func (e *ParenExpr) SqlString() string {
	return "(" + e.Inner.SqlString() + ")"
}

// TupleExpr is a parenthesized list of two or more expressions, as used
// by row comparisons and IN lists.
type TupleExpr struct {
	BaseNode
	Items []Expression
}

func (e *TupleExpr) ExpressionType() string {
	return "TupleExpr"
}

func (e *TupleExpr) SqlString() string {
	items := make([]string, len(e.Items))
	for i, item := range e.Items {
		items[i] = item.SqlString()
	}
	return "(" + strings.Join(items, ", ") + ")"
}

// ArrayLiteral is an ARRAY[...] constructor.
type ArrayLiteral struct {
	BaseNode
	Items []Expression
}

func (e *ArrayLiteral) ExpressionType() string {
	return "ArrayLiteral"
}

func (e *ArrayLiteral) SqlString() string {
	items := make([]string, len(e.Items))
	for i, item := range e.Items {
		items[i] = item.SqlString()
	}
	return "ARRAY[" + strings.Join(items, ", ") + "]"
}

// ArrayAccess is a subscript read: one bracket pair with one or more
// comma-separated subscript expressions.
type ArrayAccess struct {
	BaseNode
	Array      Expression
	Subscripts []Expression
}

func (e *ArrayAccess) ExpressionType() string {
	return "ArrayAccess"
}

func (e *ArrayAccess) SqlString() string {
	subs := make([]string, len(e.Subscripts))
	for i, s := range e.Subscripts {
		subs[i] = s.SqlString()
	}
	return e.Array.SqlString() + "[" + strings.Join(subs, ", ") + "]"
}

// ArraySlice is a subscript range read arr[from:to]; either bound may be
// absent.
type ArraySlice struct {
	BaseNode
	Array Expression
	From  Expression
	To    Expression
}

func (e *ArraySlice) ExpressionType() string {
	return "ArraySlice"
}

func (e *ArraySlice) SqlString() string {
	var sb strings.Builder
	sb.WriteString(e.Array.SqlString())
	sb.WriteString("[")
	if e.From != nil {
		sb.WriteString(e.From.SqlString())
	}
	sb.WriteString(":")
	if e.To != nil {
		sb.WriteString(e.To.SqlString())
	}
	sb.WriteString("]")
	return sb.String()
}

// SubqueryExpr wraps a parenthesized SELECT in expression position.
type SubqueryExpr struct {
	BaseNode
	Query *SelectStmt
}

func (e *SubqueryExpr) ExpressionType() string {
	return "SubqueryExpr"
}

func (e *SubqueryExpr) SqlString() string {
	return "(" + e.Query.SqlString() + ")"
}

// TypeName names a column or cast target type: base name, optional
// precision arguments, optional geohash precision such as "8c", and
// trailing [] pairs for array dimensions.
type TypeName struct {
	BaseNode
	Name      string
	Args      []Expression
	Geohash   string
	ArrayDims int
}

// NewTypeName creates a bare type name node.
func NewTypeName(name string, location int) *TypeName {
	return &TypeName{
		BaseNode: BaseNode{Tag: T_TypeName, Loc: location},
		Name:     name,
	}
}

func (t *TypeName) String() string {
	return fmt.Sprintf("TypeName(%s)@%d", t.Name, t.Location())
}

func (t *TypeName) SqlString() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if t.Geohash != "" {
		sb.WriteString("(")
		sb.WriteString(t.Geohash)
		sb.WriteString(")")
	} else if len(t.Args) > 0 {
		sb.WriteString("(")
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.SqlString())
		}
		sb.WriteString(")")
	}
	for i := 0; i < t.ArrayDims; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}
