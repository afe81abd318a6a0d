// Package ast statement node definitions for queries: SELECT with its
// time-series clauses, INSERT, UPDATE and PIVOT.
package ast

import (
	"fmt"
	"strings"
)

// SelectColumn is one projection list entry.
type SelectColumn struct {
	BaseNode
	Expr  Expression
	Alias string
}

func (c *SelectColumn) SqlString() string {
	if c.Alias != "" {
		return c.Expr.SqlString() + " AS " + QuoteIdentifier(c.Alias)
	}
	return c.Expr.SqlString()
}

// WithClause is one common table expression: name AS (query).
type WithClause struct {
	BaseNode
	Name  string
	Query *SelectStmt
}

func (w *WithClause) SqlString() string {
	return QuoteIdentifier(w.Name) + " AS (" + w.Query.SqlString() + ")"
}

// TableExpr is a FROM item: a table name, subquery or table function,
// with an optional alias.
type TableExpr struct {
	BaseNode
	Source Node
	Alias  string
}

func (t *TableExpr) String() string {
	return fmt.Sprintf("TableExpr(%s)@%d", t.Source.String(), t.Location())
}

func (t *TableExpr) SqlString() string {
	if t.Alias != "" {
		return t.Source.SqlString() + " AS " + QuoteIdentifier(t.Alias)
	}
	return t.Source.SqlString()
}

// JoinType enumerates the dialect's join flavors.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinCross
	JoinAsof
	JoinLt
	JoinSplice
	JoinWindow
)

func (jt JoinType) String() string {
	switch jt {
	case JoinInner:
		return "JOIN"
	case JoinLeft:
		return "LEFT JOIN"
	case JoinCross:
		return "CROSS JOIN"
	case JoinAsof:
		return "ASOF JOIN"
	case JoinLt:
		return "LT JOIN"
	case JoinSplice:
		return "SPLICE JOIN"
	case JoinWindow:
		return "WINDOW JOIN"
	default:
		return fmt.Sprintf("JoinType(%d)", int(jt))
	}
}

// JoinClause is one join step applied to the preceding FROM chain.
// Tolerance is the ASOF/LT time bound; RangeLo and RangeHi carry the
// WINDOW JOIN frame.
type JoinClause struct {
	BaseNode
	Type      JoinType
	Outer     bool
	Table     *TableExpr
	On        Expression
	Tolerance Expression
	RangeLo   Expression
	RangeHi   Expression
}

func (j *JoinClause) SqlString() string {
	var parts []string
	if j.Type == JoinLeft && j.Outer {
		parts = append(parts, "LEFT OUTER JOIN")
	} else {
		parts = append(parts, j.Type.String())
	}
	parts = append(parts, j.Table.SqlString())
	if j.RangeLo != nil || j.RangeHi != nil {
		parts = append(parts, "RANGE BETWEEN", j.RangeLo.SqlString(), "AND", j.RangeHi.SqlString())
	}
	if j.On != nil {
		parts = append(parts, "ON", j.On.SqlString())
	}
	if j.Tolerance != nil {
		parts = append(parts, "TOLERANCE", j.Tolerance.SqlString())
	}
	return strings.Join(parts, " ")
}

// LatestOnClause selects the most recent row per partition key. The
// legacy form LATEST BY has no explicit timestamp.
type LatestOnClause struct {
	BaseNode
	Timestamp   Expression
	PartitionBy []Expression
	Legacy      bool
}

func (l *LatestOnClause) SqlString() string {
	cols := make([]string, len(l.PartitionBy))
	for i, c := range l.PartitionBy {
		cols[i] = c.SqlString()
	}
	if l.Legacy {
		return "LATEST BY " + strings.Join(cols, ", ")
	}
	return "LATEST ON " + l.Timestamp.SqlString() + " PARTITION BY " + strings.Join(cols, ", ")
}

// SampleAlign selects the bucket alignment mode of SAMPLE BY.
type SampleAlign int

const (
	AlignNone SampleAlign = iota
	AlignCalendar
	AlignFirstObservation
)

// SampleByClause buckets rows by a time interval. FILL values are NULL,
// NONE, PREV, LINEAR or constants, one per aggregate column.
type SampleByClause struct {
	BaseNode
	Interval Expression
	From     Expression
	To       Expression
	Fill     []Expression
	Align    SampleAlign
	TimeZone Expression
	Offset   Expression
}

func (s *SampleByClause) SqlString() string {
	parts := []string{"SAMPLE BY", s.Interval.SqlString()}
	if s.From != nil {
		parts = append(parts, "FROM", s.From.SqlString())
	}
	if s.To != nil {
		parts = append(parts, "TO", s.To.SqlString())
	}
	if len(s.Fill) > 0 {
		items := make([]string, len(s.Fill))
		for i, f := range s.Fill {
			items[i] = f.SqlString()
		}
		parts = append(parts, "FILL("+strings.Join(items, ", ")+")")
	}
	switch s.Align {
	case AlignCalendar:
		parts = append(parts, "ALIGN TO CALENDAR")
		if s.TimeZone != nil {
			parts = append(parts, "TIME ZONE", s.TimeZone.SqlString())
		}
		if s.Offset != nil {
			parts = append(parts, "WITH OFFSET", s.Offset.SqlString())
		}
	case AlignFirstObservation:
		parts = append(parts, "ALIGN TO FIRST OBSERVATION")
	}
	return strings.Join(parts, " ")
}

// OrderByItem is one sort key.
type OrderByItem struct {
	BaseNode
	Expr Expression
	Desc bool
}

func (o *OrderByItem) SqlString() string {
	if o.Desc {
		return o.Expr.SqlString() + " DESC"
	}
	return o.Expr.SqlString()
}

// LimitClause caps the result set. With both bounds set it is the range
// form LIMIT low, high; negative values count from the end.
type LimitClause struct {
	BaseNode
	Low  Expression
	High Expression
}

func (l *LimitClause) SqlString() string {
	if l.High != nil {
		return "LIMIT " + l.Low.SqlString() + ", " + l.High.SqlString()
	}
	return "LIMIT " + l.Low.SqlString()
}

// SetOpType enumerates set operators between selects.
type SetOpType int

const (
	SetOpUnion SetOpType = iota
	SetOpUnionAll
	SetOpExcept
	SetOpIntersect
)

func (s SetOpType) String() string {
	switch s {
	case SetOpUnion:
		return "UNION"
	case SetOpUnionAll:
		return "UNION ALL"
	case SetOpExcept:
		return "EXCEPT"
	case SetOpIntersect:
		return "INTERSECT"
	default:
		return fmt.Sprintf("SetOpType(%d)", int(s))
	}
}

// SetOpClause chains one set operation onto a select.
type SetOpClause struct {
	BaseNode
	Op    SetOpType
	Right *SelectStmt
}

func (s *SetOpClause) SqlString() string {
	return s.Op.String() + " " + s.Right.SqlString()
}

// FrameMode selects the window frame unit.
type FrameMode int

const (
	FrameNone FrameMode = iota
	FrameRows
	FrameRange
	FrameGroups
)

// FrameBoundType enumerates window frame bound kinds.
type FrameBoundType int

const (
	BoundUnboundedPreceding FrameBoundType = iota
	BoundPreceding
	BoundCurrentRow
	BoundFollowing
	BoundUnboundedFollowing
)

// FrameBound is one edge of a window frame. Value is set only for the
// offset PRECEDING/FOLLOWING kinds.
type FrameBound struct {
	Type  FrameBoundType
	Value Expression
}

func (b FrameBound) sqlString() string {
	switch b.Type {
	case BoundUnboundedPreceding:
		return "UNBOUNDED PRECEDING"
	case BoundPreceding:
		return b.Value.SqlString() + " PRECEDING"
	case BoundCurrentRow:
		return "CURRENT ROW"
	case BoundFollowing:
		return b.Value.SqlString() + " FOLLOWING"
	case BoundUnboundedFollowing:
		return "UNBOUNDED FOLLOWING"
	}
	return ""
}

// WindowSpec is the parenthesized window definition after OVER.
type WindowSpec struct {
	BaseNode
	PartitionBy []Expression
	OrderBy     []*OrderByItem
	Frame       FrameMode
	Start       *FrameBound
	End         *FrameBound
}

func (w *WindowSpec) SqlString() string {
	var parts []string
	if len(w.PartitionBy) > 0 {
		cols := make([]string, len(w.PartitionBy))
		for i, c := range w.PartitionBy {
			cols[i] = c.SqlString()
		}
		parts = append(parts, "PARTITION BY "+strings.Join(cols, ", "))
	}
	if len(w.OrderBy) > 0 {
		items := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			items[i] = o.SqlString()
		}
		parts = append(parts, "ORDER BY "+strings.Join(items, ", "))
	}
	if w.Frame != FrameNone && w.Start != nil {
		var mode string
		switch w.Frame {
		case FrameRows:
			mode = "ROWS"
		case FrameRange:
			mode = "RANGE"
		case FrameGroups:
			mode = "GROUPS"
		}
		if w.End != nil {
			parts = append(parts, mode+" BETWEEN "+w.Start.sqlString()+" AND "+w.End.sqlString())
		} else {
			parts = append(parts, mode+" "+w.Start.sqlString())
		}
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// SelectStmt is a query. Implicit marks the from-first shorthand where
// the statement begins with a table reference and the projection is
// implied; such statements deparse back to the shorthand form.
type SelectStmt struct {
	BaseNode
	With     []*WithClause
	Distinct bool
	Columns  []*SelectColumn
	From     *TableExpr
	Joins    []*JoinClause
	LatestOn *LatestOnClause
	Where    Expression
	SampleBy *SampleByClause
	GroupBy  []Expression
	OrderBy  []*OrderByItem
	Limit    *LimitClause
	SetOps   []*SetOpClause
	Implicit bool
}

// NewSelectStmt creates an empty select statement.
func NewSelectStmt(location int) *SelectStmt {
	return &SelectStmt{BaseNode: BaseNode{Tag: T_SelectStmt, Loc: location}}
}

func (s *SelectStmt) StatementType() string {
	return "SELECT"
}

func (s *SelectStmt) String() string {
	return fmt.Sprintf("SelectStmt(%d cols)@%d", len(s.Columns), s.Location())
}

func (s *SelectStmt) SqlString() string {
	var parts []string
	if len(s.With) > 0 {
		ctes := make([]string, len(s.With))
		for i, w := range s.With {
			ctes[i] = w.SqlString()
		}
		parts = append(parts, "WITH "+strings.Join(ctes, ", "))
	}
	if s.Implicit && len(s.Columns) == 0 {
		if s.From != nil {
			parts = append(parts, s.From.SqlString())
		}
	} else {
		kw := "SELECT"
		if s.Distinct {
			kw = "SELECT DISTINCT"
		}
		cols := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			cols[i] = c.SqlString()
		}
		parts = append(parts, kw+" "+strings.Join(cols, ", "))
		if s.From != nil {
			parts = append(parts, "FROM "+s.From.SqlString())
		}
	}
	for _, j := range s.Joins {
		parts = append(parts, j.SqlString())
	}
	if s.LatestOn != nil {
		parts = append(parts, s.LatestOn.SqlString())
	}
	if s.Where != nil {
		parts = append(parts, "WHERE "+s.Where.SqlString())
	}
	if s.SampleBy != nil {
		parts = append(parts, s.SampleBy.SqlString())
	}
	if len(s.GroupBy) > 0 {
		cols := make([]string, len(s.GroupBy))
		for i, g := range s.GroupBy {
			cols[i] = g.SqlString()
		}
		parts = append(parts, "GROUP BY "+strings.Join(cols, ", "))
	}
	if len(s.OrderBy) > 0 {
		items := make([]string, len(s.OrderBy))
		for i, o := range s.OrderBy {
			items[i] = o.SqlString()
		}
		parts = append(parts, "ORDER BY "+strings.Join(items, ", "))
	}
	if s.Limit != nil {
		parts = append(parts, s.Limit.SqlString())
	}
	for _, op := range s.SetOps {
		parts = append(parts, op.SqlString())
	}
	return strings.Join(parts, " ")
}

// InsertStmt writes rows into a table, either from a VALUES list or from
// a query.
type InsertStmt struct {
	BaseNode
	Atomic    bool
	BatchSize *NumberLiteral
	O3MaxLag  Expression
	Table     *QualifiedName
	Columns   []string
	Rows      [][]Expression
	Query     *SelectStmt
}

func (s *InsertStmt) StatementType() string {
	return "INSERT"
}

func (s *InsertStmt) String() string {
	return fmt.Sprintf("InsertStmt(%s)@%d", s.Table.SqlString(), s.Location())
}

func (s *InsertStmt) SqlString() string {
	parts := []string{"INSERT"}
	if s.Atomic {
		parts = append(parts, "ATOMIC")
	}
	if s.BatchSize != nil {
		parts = append(parts, "BATCH", s.BatchSize.SqlString())
	}
	if s.O3MaxLag != nil {
		parts = append(parts, "O3MAXLAG", s.O3MaxLag.SqlString())
	}
	parts = append(parts, "INTO", s.Table.SqlString())
	if len(s.Columns) > 0 {
		parts = append(parts, "("+FormatColumnList(s.Columns)+")")
	}
	if s.Query != nil {
		parts = append(parts, s.Query.SqlString())
		return strings.Join(parts, " ")
	}
	rows := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		vals := make([]string, len(row))
		for j, v := range row {
			vals[j] = v.SqlString()
		}
		rows[i] = "(" + strings.Join(vals, ", ") + ")"
	}
	parts = append(parts, "VALUES", strings.Join(rows, ", "))
	return strings.Join(parts, " ")
}

// UpdateAssignment is one SET column = value pair.
type UpdateAssignment struct {
	Column *QualifiedName
	Value  Expression
}

// UpdateStmt rewrites column values in place.
type UpdateStmt struct {
	BaseNode
	Table *TableExpr
	Set   []UpdateAssignment
	From  *TableExpr
	Joins []*JoinClause
	Where Expression
}

func (s *UpdateStmt) StatementType() string {
	return "UPDATE"
}

func (s *UpdateStmt) String() string {
	return fmt.Sprintf("UpdateStmt(%s)@%d", s.Table.SqlString(), s.Location())
}

func (s *UpdateStmt) SqlString() string {
	assigns := make([]string, len(s.Set))
	for i, a := range s.Set {
		assigns[i] = a.Column.SqlString() + " = " + a.Value.SqlString()
	}
	parts := []string{"UPDATE", s.Table.SqlString(), "SET", strings.Join(assigns, ", ")}
	if s.From != nil {
		parts = append(parts, "FROM", s.From.SqlString())
	}
	for _, j := range s.Joins {
		parts = append(parts, j.SqlString())
	}
	if s.Where != nil {
		parts = append(parts, "WHERE", s.Where.SqlString())
	}
	return strings.Join(parts, " ")
}

// PivotAggregation is one aggregate in the PIVOT projection.
type PivotAggregation struct {
	BaseNode
	Expr  Expression
	Alias string
}

func (p *PivotAggregation) SqlString() string {
	if p.Alias != "" {
		return p.Expr.SqlString() + " AS " + QuoteIdentifier(p.Alias)
	}
	return p.Expr.SqlString()
}

// PivotInValue is one IN list entry of a pivot FOR clause.
type PivotInValue struct {
	Value Expression
	Alias string
}

// PivotForClause maps one column's values onto output columns.
type PivotForClause struct {
	BaseNode
	Column *QualifiedName
	Values []PivotInValue
}

func (p *PivotForClause) SqlString() string {
	vals := make([]string, len(p.Values))
	for i, v := range p.Values {
		if v.Alias != "" {
			vals[i] = v.Value.SqlString() + " AS " + QuoteIdentifier(v.Alias)
		} else {
			vals[i] = v.Value.SqlString()
		}
	}
	return "FOR " + p.Column.SqlString() + " IN (" + strings.Join(vals, ", ") + ")"
}

// PivotStmt rotates row values into columns over a source table or
// subquery.
type PivotStmt struct {
	BaseNode
	Source       *TableExpr
	Aggregations []*PivotAggregation
	For          []*PivotForClause
	GroupBy      []Expression
	OrderBy      []*OrderByItem
	Limit        *LimitClause
}

func (s *PivotStmt) StatementType() string {
	return "PIVOT"
}

func (s *PivotStmt) String() string {
	return fmt.Sprintf("PivotStmt(%d aggs, %d for)@%d", len(s.Aggregations), len(s.For), s.Location())
}

func (s *PivotStmt) SqlString() string {
	var sb strings.Builder
	sb.WriteString(s.Source.SqlString())
	sb.WriteString(" PIVOT (")
	for i, a := range s.Aggregations {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.SqlString())
	}
	for _, f := range s.For {
		sb.WriteString(" ")
		sb.WriteString(f.SqlString())
	}
	if len(s.GroupBy) > 0 {
		cols := make([]string, len(s.GroupBy))
		for i, g := range s.GroupBy {
			cols[i] = g.SqlString()
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(cols, ", "))
	}
	sb.WriteString(")")
	if len(s.OrderBy) > 0 {
		items := make([]string, len(s.OrderBy))
		for i, o := range s.OrderBy {
			items[i] = o.SqlString()
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(items, ", "))
	}
	if s.Limit != nil {
		sb.WriteString(" ")
		sb.WriteString(s.Limit.SqlString())
	}
	return sb.String()
}
