/*
 * Query statement lowering: SELECT, the from-first shorthand, INSERT,
 * UPDATE and PIVOT.
 *
 * Explicit queries lower strictly, so a clause hole left by a syntax
 * error drops the statement. The from-first shorthand is the one
 * lenient spot: its table reference is the whole mandatory part, and
 * every trailing clause lowers best effort so `trades WHERE` still
 * yields an AST whose content is the source table.
 */

package parser

import "github.com/chronoql/chronoql/go/parser/ast"

func (v *visitor) visitSelect(cst *SelectStmtCst) (*ast.SelectStmt, error) {
	if cst == nil {
		return nil, missing("query")
	}
	stmt := ast.NewSelectStmt(cst.Pos())
	for _, w := range cst.WithItems {
		item, err := v.visitWithItem(w)
		if err != nil {
			return nil, err
		}
		stmt.With = append(stmt.With, item)
	}
	if len(cst.WithTok) > 0 && len(stmt.With) == 0 {
		return nil, missing("common table expression")
	}
	stmt.Implicit = len(cst.SelectTok) == 0
	if stmt.Implicit {
		if cst.From == nil {
			return nil, missing("table expression")
		}
		from, err := v.visitTableExpr(cst.From)
		if err != nil {
			return nil, err
		}
		stmt.From = from
		v.visitQueryTail(cst, stmt, true)
	} else {
		stmt.Distinct = len(cst.Distinct) > 0
		if len(cst.Columns) == 0 {
			return nil, missing("projection")
		}
		for _, c := range cst.Columns {
			col, err := v.visitSelectColumn(c)
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, col)
		}
		if cst.From != nil {
			from, err := v.visitTableExpr(cst.From)
			if err != nil {
				return nil, err
			}
			stmt.From = from
		} else if len(cst.FromTok) > 0 {
			return nil, missing("table expression")
		}
		if err := v.visitQueryTail(cst, stmt, false); err != nil {
			return nil, err
		}
	}
	for _, s := range cst.SetOps {
		op, err := v.visitSetOp(s)
		if err != nil {
			return nil, err
		}
		stmt.SetOps = append(stmt.SetOps, op)
	}
	return stmt, nil
}

// visitQueryTail lowers the clauses following the FROM chain. Lenient
// mode skips any clause that fails or was left unfilled by the
// grammar; strict mode propagates the first failure and treats an
// unfilled clause keyword as one.
func (v *visitor) visitQueryTail(cst *SelectStmtCst, stmt *ast.SelectStmt, lenient bool) error {
	for _, j := range cst.Joins {
		join, err := v.visitJoin(j)
		if err == nil {
			stmt.Joins = append(stmt.Joins, join)
		} else if !lenient {
			return err
		}
	}
	if cst.LatestOn != nil {
		latest, err := v.visitLatestOn(cst.LatestOn)
		if err == nil {
			stmt.LatestOn = latest
		} else if !lenient {
			return err
		}
	}
	if cst.WhereExpr != nil {
		where, err := v.visitExpr(cst.WhereExpr)
		if err == nil {
			stmt.Where = where
		} else if !lenient {
			return err
		}
	} else if len(cst.WhereTok) > 0 && !lenient {
		return missing("filter expression")
	}
	if cst.SampleBy != nil {
		sample, err := v.visitSampleBy(cst.SampleBy)
		if err == nil {
			stmt.SampleBy = sample
		} else if !lenient {
			return err
		}
	}
	for _, g := range cst.GroupBy {
		e, err := v.visitExpr(g)
		if err == nil {
			stmt.GroupBy = append(stmt.GroupBy, e)
		} else if !lenient {
			return err
		}
	}
	if len(cst.GroupToks) > 0 && len(stmt.GroupBy) == 0 && !lenient {
		return missing("grouping expression")
	}
	for _, o := range cst.OrderBy {
		item, err := v.visitOrderByItem(o)
		if err == nil {
			stmt.OrderBy = append(stmt.OrderBy, item)
		} else if !lenient {
			return err
		}
	}
	if len(cst.OrderToks) > 0 && len(stmt.OrderBy) == 0 && !lenient {
		return missing("sort key")
	}
	if cst.Limit != nil {
		limit, err := v.visitLimit(cst.Limit)
		if err == nil {
			stmt.Limit = limit
		} else if !lenient {
			return err
		}
	}
	return nil
}

func (v *visitor) visitWithItem(cst *WithItemCst) (*ast.WithClause, error) {
	if cst == nil {
		return nil, missing("common table expression")
	}
	query, err := v.visitSelect(cst.Query)
	if err != nil {
		return nil, err
	}
	return &ast.WithClause{
		BaseNode: ast.BaseNode{Tag: ast.T_WithClause, Loc: cst.Pos()},
		Name:     cst.Name.IdentValue(),
		Query:    query,
	}, nil
}

func (v *visitor) visitSelectColumn(cst *SelectColumnCst) (*ast.SelectColumn, error) {
	if cst == nil {
		return nil, missing("projection entry")
	}
	col := &ast.SelectColumn{BaseNode: ast.BaseNode{Tag: ast.T_SelectColumn, Loc: cst.Pos()}}
	if len(cst.StarTok) > 0 {
		col.Expr = ast.NewStarRef(nil, cst.StarTok[0].Pos)
		return col, nil
	}
	expr, err := v.visitExpr(cst.Expr)
	if err != nil {
		return nil, err
	}
	col.Expr = expr
	if len(cst.Alias) > 0 {
		col.Alias = cst.Alias[0].IdentValue()
	}
	return col, nil
}

func (v *visitor) visitTableExpr(cst *TableExprCst) (*ast.TableExpr, error) {
	if cst == nil {
		return nil, missing("table expression")
	}
	te := &ast.TableExpr{BaseNode: ast.BaseNode{Tag: ast.T_TableExpr, Loc: cst.Pos()}}
	switch {
	case cst.Name != nil:
		name, err := v.visitQualifiedName(cst.Name)
		if err != nil {
			return nil, err
		}
		te.Source = name
	case cst.Subquery != nil:
		query, err := v.visitSelect(cst.Subquery)
		if err != nil {
			return nil, err
		}
		te.Source = &ast.SubqueryExpr{
			BaseNode: ast.BaseNode{Tag: ast.T_SubqueryExpr, Loc: cst.Subquery.Pos()},
			Query:    query,
		}
	case cst.Func != nil:
		fn, err := v.visitFunctionCall(cst.Func)
		if err != nil {
			return nil, err
		}
		te.Source = fn
	default:
		return nil, missing("table source")
	}
	if len(cst.Alias) > 0 {
		te.Alias = cst.Alias[0].IdentValue()
	}
	return te, nil
}

func (v *visitor) visitJoin(cst *JoinClauseCst) (*ast.JoinClause, error) {
	if cst == nil {
		return nil, missing("join clause")
	}
	join := &ast.JoinClause{BaseNode: ast.BaseNode{Tag: ast.T_JoinClause, Loc: cst.Pos()}}
	switch {
	case len(cst.LeftTok) > 0:
		join.Type = ast.JoinLeft
		join.Outer = len(cst.OuterTok) > 0
	case len(cst.CrossTok) > 0:
		join.Type = ast.JoinCross
	case len(cst.AsofTok) > 0:
		join.Type = ast.JoinAsof
	case len(cst.LtTok) > 0:
		join.Type = ast.JoinLt
	case len(cst.SpliceTok) > 0:
		join.Type = ast.JoinSplice
	case len(cst.WindowTok) > 0:
		join.Type = ast.JoinWindow
	default:
		join.Type = ast.JoinInner
	}
	table, err := v.visitTableExpr(cst.Table)
	if err != nil {
		return nil, err
	}
	join.Table = table
	if cst.RangeLo != nil {
		lo, err := v.visitExpr(cst.RangeLo)
		if err != nil {
			return nil, err
		}
		join.RangeLo = lo
		hi, err := v.visitExpr(cst.RangeHi)
		if err != nil {
			return nil, err
		}
		join.RangeHi = hi
	} else if len(cst.RangeToks) > 0 {
		return nil, missing("range bound")
	}
	if cst.OnExpr != nil {
		on, err := v.visitExpr(cst.OnExpr)
		if err != nil {
			return nil, err
		}
		join.On = on
	} else if len(cst.OnTok) > 0 {
		return nil, missing("join condition")
	}
	if cst.Tolerance != nil {
		tol, err := v.visitExpr(cst.Tolerance)
		if err != nil {
			return nil, err
		}
		join.Tolerance = tol
	} else if len(cst.TolToks) > 0 {
		return nil, missing("tolerance interval")
	}
	return join, nil
}

func (v *visitor) visitLatestOn(cst *LatestOnCst) (*ast.LatestOnClause, error) {
	if cst == nil {
		return nil, missing("latest-on clause")
	}
	latest := &ast.LatestOnClause{BaseNode: ast.BaseNode{Tag: ast.T_LatestOnClause, Loc: cst.Pos()}}
	if len(cst.OnTok) > 0 {
		ts, err := v.visitExpr(cst.Timestamp)
		if err != nil {
			return nil, err
		}
		latest.Timestamp = ts
	} else {
		latest.Legacy = true
	}
	for _, c := range cst.Columns {
		e, err := v.visitExpr(c)
		if err != nil {
			return nil, err
		}
		latest.PartitionBy = append(latest.PartitionBy, e)
	}
	if len(latest.PartitionBy) == 0 {
		return nil, missing("partition key")
	}
	return latest, nil
}

func (v *visitor) visitSampleBy(cst *SampleByCst) (*ast.SampleByClause, error) {
	if cst == nil {
		return nil, missing("sample-by clause")
	}
	sample := &ast.SampleByClause{BaseNode: ast.BaseNode{Tag: ast.T_SampleByClause, Loc: cst.Pos()}}
	interval, err := v.visitExpr(cst.Interval)
	if err != nil {
		return nil, err
	}
	sample.Interval = interval
	if cst.FromExpr != nil {
		from, err := v.visitExpr(cst.FromExpr)
		if err != nil {
			return nil, err
		}
		sample.From = from
	}
	if cst.ToExpr != nil {
		to, err := v.visitExpr(cst.ToExpr)
		if err != nil {
			return nil, err
		}
		sample.To = to
	}
	for _, f := range cst.FillItems {
		e, err := v.visitExpr(f)
		if err != nil {
			return nil, err
		}
		sample.Fill = append(sample.Fill, e)
	}
	switch {
	case len(cst.CalendarTok) > 0:
		sample.Align = ast.AlignCalendar
		if cst.TimeZone != nil {
			tz, err := v.visitExpr(cst.TimeZone)
			if err != nil {
				return nil, err
			}
			sample.TimeZone = tz
		}
		if cst.Offset != nil {
			off, err := v.visitExpr(cst.Offset)
			if err != nil {
				return nil, err
			}
			sample.Offset = off
		}
	case len(cst.FirstTok) > 0:
		sample.Align = ast.AlignFirstObservation
	}
	return sample, nil
}

func (v *visitor) visitOrderByItem(cst *OrderByItemCst) (*ast.OrderByItem, error) {
	if cst == nil {
		return nil, missing("sort key")
	}
	expr, err := v.visitExpr(cst.Expr)
	if err != nil {
		return nil, err
	}
	return &ast.OrderByItem{
		BaseNode: ast.BaseNode{Tag: ast.T_OrderByItem, Loc: cst.Pos()},
		Expr:     expr,
		Desc:     len(cst.DescTok) > 0,
	}, nil
}

func (v *visitor) visitLimit(cst *LimitCst) (*ast.LimitClause, error) {
	if cst == nil {
		return nil, missing("limit clause")
	}
	low, err := v.visitExpr(cst.Low)
	if err != nil {
		return nil, err
	}
	limit := &ast.LimitClause{
		BaseNode: ast.BaseNode{Tag: ast.T_LimitClause, Loc: cst.Pos()},
		Low:      low,
	}
	if cst.High != nil {
		high, err := v.visitExpr(cst.High)
		if err != nil {
			return nil, err
		}
		limit.High = high
	} else if len(cst.CommaTok) > 0 {
		return nil, missing("upper limit")
	}
	return limit, nil
}

func (v *visitor) visitSetOp(cst *SetOpCst) (*ast.SetOpClause, error) {
	if cst == nil {
		return nil, missing("set operation")
	}
	op := &ast.SetOpClause{BaseNode: ast.BaseNode{Tag: ast.T_SetOpClause, Loc: cst.Pos()}}
	switch {
	case len(cst.UnionTok) > 0 && len(cst.AllTok) > 0:
		op.Op = ast.SetOpUnionAll
	case len(cst.UnionTok) > 0:
		op.Op = ast.SetOpUnion
	case len(cst.ExceptTok) > 0:
		op.Op = ast.SetOpExcept
	case len(cst.IntersectTok) > 0:
		op.Op = ast.SetOpIntersect
	default:
		return nil, missing("set operator")
	}
	right, err := v.visitSelect(cst.Right)
	if err != nil {
		return nil, err
	}
	op.Right = right
	return op, nil
}

func (v *visitor) visitInsert(cst *InsertStmtCst) (*ast.InsertStmt, error) {
	if cst == nil {
		return nil, missing("insert statement")
	}
	stmt := &ast.InsertStmt{BaseNode: ast.BaseNode{Tag: ast.T_InsertStmt, Loc: cst.Pos()}}
	stmt.Atomic = len(cst.AtomicTok) > 0
	if n := len(cst.BatchSize); n > 0 {
		size, err := numberLiteral(cst.BatchSize[n-1])
		if err != nil {
			return nil, err
		}
		stmt.BatchSize = size
	}
	if cst.O3Value != nil {
		lag, err := v.visitExpr(cst.O3Value)
		if err != nil {
			return nil, err
		}
		stmt.O3MaxLag = lag
	} else if len(cst.O3Tok) > 0 {
		return nil, missing("O3 lag value")
	}
	table, err := v.visitQualifiedName(cst.Table)
	if err != nil {
		return nil, err
	}
	stmt.Table = table
	stmt.Columns = identList(cst.Columns)
	switch {
	case cst.Query != nil:
		query, err := v.visitSelect(cst.Query)
		if err != nil {
			return nil, err
		}
		stmt.Query = query
	case len(cst.Rows) > 0:
		for _, row := range cst.Rows {
			vals, err := v.visitValuesRow(row)
			if err != nil {
				return nil, err
			}
			stmt.Rows = append(stmt.Rows, vals)
		}
	default:
		return nil, missing("VALUES or query")
	}
	return stmt, nil
}

func (v *visitor) visitValuesRow(cst *ValuesRowCst) ([]ast.Expression, error) {
	if cst == nil || len(cst.Values) == 0 {
		return nil, missing("values tuple")
	}
	row := make([]ast.Expression, 0, len(cst.Values))
	for _, val := range cst.Values {
		e, err := v.visitExpr(val)
		if err != nil {
			return nil, err
		}
		row = append(row, e)
	}
	return row, nil
}

func (v *visitor) visitUpdate(cst *UpdateStmtCst) (*ast.UpdateStmt, error) {
	if cst == nil {
		return nil, missing("update statement")
	}
	stmt := &ast.UpdateStmt{BaseNode: ast.BaseNode{Tag: ast.T_UpdateStmt, Loc: cst.Pos()}}
	table, err := v.visitTableExpr(cst.Table)
	if err != nil {
		return nil, err
	}
	stmt.Table = table
	if len(cst.Assignments) == 0 {
		return nil, missing("assignment")
	}
	for _, a := range cst.Assignments {
		assign, err := v.visitUpdateAssign(a)
		if err != nil {
			return nil, err
		}
		stmt.Set = append(stmt.Set, assign)
	}
	if cst.From != nil {
		from, err := v.visitTableExpr(cst.From)
		if err != nil {
			return nil, err
		}
		stmt.From = from
	} else if len(cst.FromTok) > 0 {
		return nil, missing("table expression")
	}
	for _, j := range cst.Joins {
		join, err := v.visitJoin(j)
		if err != nil {
			return nil, err
		}
		stmt.Joins = append(stmt.Joins, join)
	}
	if cst.WhereExpr != nil {
		where, err := v.visitExpr(cst.WhereExpr)
		if err != nil {
			return nil, err
		}
		stmt.Where = where
	} else if len(cst.WhereTok) > 0 {
		return nil, missing("filter expression")
	}
	return stmt, nil
}

func (v *visitor) visitUpdateAssign(cst *UpdateAssignCst) (ast.UpdateAssignment, error) {
	if cst == nil {
		return ast.UpdateAssignment{}, missing("assignment")
	}
	column, err := v.visitQualifiedName(cst.Column)
	if err != nil {
		return ast.UpdateAssignment{}, err
	}
	value, err := v.visitExpr(cst.Value)
	if err != nil {
		return ast.UpdateAssignment{}, err
	}
	return ast.UpdateAssignment{Column: column, Value: value}, nil
}

func (v *visitor) visitPivot(cst *PivotStmtCst) (*ast.PivotStmt, error) {
	if cst == nil {
		return nil, missing("pivot statement")
	}
	stmt := &ast.PivotStmt{BaseNode: ast.BaseNode{Tag: ast.T_PivotStmt, Loc: cst.Pos()}}
	source, err := v.visitTableExpr(cst.Source)
	if err != nil {
		return nil, err
	}
	stmt.Source = source
	if len(cst.Aggregations) == 0 {
		return nil, missing("aggregation")
	}
	for _, a := range cst.Aggregations {
		agg, err := v.visitPivotAgg(a)
		if err != nil {
			return nil, err
		}
		stmt.Aggregations = append(stmt.Aggregations, agg)
	}
	if len(cst.ForClauses) == 0 {
		return nil, missing("FOR clause")
	}
	for _, f := range cst.ForClauses {
		fc, err := v.visitPivotFor(f)
		if err != nil {
			return nil, err
		}
		stmt.For = append(stmt.For, fc)
	}
	for _, g := range cst.GroupBy {
		e, err := v.visitExpr(g)
		if err != nil {
			return nil, err
		}
		stmt.GroupBy = append(stmt.GroupBy, e)
	}
	if len(cst.GroupToks) > 0 && len(stmt.GroupBy) == 0 {
		return nil, missing("grouping expression")
	}
	for _, o := range cst.OrderBy {
		item, err := v.visitOrderByItem(o)
		if err != nil {
			return nil, err
		}
		stmt.OrderBy = append(stmt.OrderBy, item)
	}
	if len(cst.OrderToks) > 0 && len(stmt.OrderBy) == 0 {
		return nil, missing("sort key")
	}
	if cst.Limit != nil {
		limit, err := v.visitLimit(cst.Limit)
		if err != nil {
			return nil, err
		}
		stmt.Limit = limit
	}
	return stmt, nil
}

func (v *visitor) visitPivotAgg(cst *PivotAggCst) (*ast.PivotAggregation, error) {
	if cst == nil {
		return nil, missing("aggregation")
	}
	expr, err := v.visitExpr(cst.Expr)
	if err != nil {
		return nil, err
	}
	agg := &ast.PivotAggregation{
		BaseNode: ast.BaseNode{Tag: ast.T_PivotAggregation, Loc: cst.Pos()},
		Expr:     expr,
	}
	if len(cst.Alias) > 0 {
		agg.Alias = cst.Alias[0].IdentValue()
	}
	return agg, nil
}

func (v *visitor) visitPivotFor(cst *PivotForCst) (*ast.PivotForClause, error) {
	if cst == nil {
		return nil, missing("FOR clause")
	}
	column, err := v.visitQualifiedName(cst.Column)
	if err != nil {
		return nil, err
	}
	fc := &ast.PivotForClause{
		BaseNode: ast.BaseNode{Tag: ast.T_PivotForClause, Loc: cst.Pos()},
		Column:   column,
	}
	if len(cst.Values) == 0 {
		return nil, missing("IN list")
	}
	for _, val := range cst.Values {
		in, err := v.visitPivotInValue(val)
		if err != nil {
			return nil, err
		}
		fc.Values = append(fc.Values, in)
	}
	return fc, nil
}

func (v *visitor) visitPivotInValue(cst *PivotInValueCst) (ast.PivotInValue, error) {
	if cst == nil {
		return ast.PivotInValue{}, missing("IN list entry")
	}
	value, err := v.visitExpr(cst.Value)
	if err != nil {
		return ast.PivotInValue{}, err
	}
	in := ast.PivotInValue{Value: value}
	if len(cst.Alias) > 0 {
		in.Alias = cst.Alias[0].IdentValue()
	}
	return in, nil
}
