/*
 * Query grammar: SELECT with its time-series clauses, the implicit
 * from-first shorthand, PIVOT, INSERT and UPDATE.
 */

package parser

func (p *grammar) parseSelectWithSetOps() *SelectStmtCst {
	cst := p.parseSelectCore()
	p.parseSetOps(cst)
	return cst
}

// parseSetOps chains UNION/EXCEPT/INTERSECT arms onto the first query.
// The chain stays flat and left-associative.
func (p *grammar) parseSetOps(cst *SelectStmtCst) {
	for {
		op := &SetOpCst{cstBase: cstBase{Start: p.cur().Pos}}
		switch {
		case p.atKw(KwUnion):
			op.UnionTok = append(op.UnionTok, p.next())
		case p.atKw(KwExcept):
			op.ExceptTok = append(op.ExceptTok, p.next())
		case p.atKw(KwIntersect):
			op.IntersectTok = append(op.IntersectTok, p.next())
		default:
			return
		}
		if tok, ok := p.eatKw(KwAll); ok {
			op.AllTok = append(op.AllTok, tok)
		}
		op.Right = p.parseSelectCore()
		cst.SetOps = append(cst.SetOps, op)
	}
}

func (p *grammar) parseSelectCore() *SelectStmtCst {
	cst := &SelectStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	if p.atKw(KwWith) {
		cst.WithTok = append(cst.WithTok, p.next())
		cst.WithItems = append(cst.WithItems, p.parseWithItem())
		for p.at(TokenComma) {
			p.next()
			cst.WithItems = append(cst.WithItems, p.parseWithItem())
		}
	}
	cst.SelectTok = append(cst.SelectTok, p.expectKw(KwSelect))
	if tok, ok := p.eatKw(KwDistinct); ok {
		cst.Distinct = append(cst.Distinct, tok)
	}
	cst.Columns = append(cst.Columns, p.parseSelectColumn())
	for p.at(TokenComma) {
		p.next()
		cst.Columns = append(cst.Columns, p.parseSelectColumn())
	}
	if tok, ok := p.eatKw(KwFrom); ok {
		cst.FromTok = append(cst.FromTok, tok)
		cst.From = p.parseTableExpr()
	}
	p.parseQueryTail(cst)
	return cst
}

func (p *grammar) parseWithItem() *WithItemCst {
	cst := &WithItemCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.Name = p.expectIdentLike("common table expression name")
	cst.AsTok = p.expectKw(KwAs)
	p.expect(TokenLParen)
	cst.Query = p.parseSelectWithSetOps()
	p.expect(TokenRParen)
	return cst
}

func (p *grammar) parseSelectColumn() *SelectColumnCst {
	cst := &SelectColumnCst{cstBase: cstBase{Start: p.cur().Pos}}
	if p.at(TokenStar) {
		cst.StarTok = append(cst.StarTok, p.next())
		return cst
	}
	cst.Expr = p.parseExpression()
	if tok, ok := p.eatKw(KwAs); ok {
		cst.AsTok = append(cst.AsTok, tok)
		cst.Alias = append(cst.Alias, p.expectIdentLike("alias"))
	} else if p.bareAliasOK() {
		cst.Alias = append(cst.Alias, p.next())
	}
	return cst
}

// bareAliasOK reports whether the current token can serve as an alias
// without AS. Identifier-like tokens qualify, except the unreserved
// keywords that open a clause of their own in alias position. LT and
// WINDOW stay aliases unless a JOIN follows.
func (p *grammar) bareAliasOK() bool {
	t := p.cur()
	if !t.IdentLike() {
		return false
	}
	switch t.Kw {
	case KwPivot, KwSet, KwTolerance, KwRange, KwFor:
		return false
	case KwLt, KwWindow:
		return !p.peek(1).IsKw(KwJoin)
	}
	return true
}

func (p *grammar) parseTableExpr() *TableExprCst {
	p.enter()
	defer p.leave()

	cst := &TableExprCst{cstBase: cstBase{Start: p.cur().Pos}}
	switch {
	case p.at(TokenLParen):
		p.next()
		if p.atKw(KwSelect) || p.atKw(KwWith) {
			cst.Subquery = p.parseSelectWithSetOps()
		} else {
			cst.Subquery = p.parseImplicitSelect(p.parseTableExpr())
		}
		p.expect(TokenRParen)
	case p.cur().IdentLike() && p.peek(1).Is(TokenLParen):
		tok := p.cur()
		name := &QualifiedNameCst{cstBase: cstBase{Start: tok.Pos}, Parts: []Token{p.next()}}
		cst.Func = p.parseFunctionCall(name)
	case p.cur().IdentLike() || p.at(TokenString):
		cst.Name = p.parseTableName()
	default:
		p.failExpected("table name or subquery")
	}
	if tok, ok := p.eatKw(KwAs); ok {
		cst.AsTok = append(cst.AsTok, tok)
		cst.Alias = append(cst.Alias, p.expectIdentLike("alias"))
	} else if p.bareAliasOK() {
		cst.Alias = append(cst.Alias, p.next())
	}
	return cst
}

// parseQueryTail consumes the clauses that may follow the FROM chain.
// The loop admits them in any order; the visitor keeps the last one of
// each kind.
func (p *grammar) parseQueryTail(cst *SelectStmtCst) {
	for {
		switch {
		case p.atJoinStart():
			cst.Joins = append(cst.Joins, p.parseJoinClause())
		case p.atKw(KwLatest):
			cst.LatestOn = p.parseLatestOn()
		case p.atKw(KwWhere):
			cst.WhereTok = append(cst.WhereTok, p.next())
			cst.WhereExpr = p.parseExpression()
		case p.atKw(KwSample):
			cst.SampleBy = p.parseSampleBy()
		case p.atKw(KwGroup):
			cst.GroupToks = append(cst.GroupToks, p.next(), p.expectKw(KwBy))
			cst.GroupBy = append(cst.GroupBy, p.parseExpression())
			for p.at(TokenComma) {
				p.next()
				cst.GroupBy = append(cst.GroupBy, p.parseExpression())
			}
		case p.atKw(KwOrder):
			cst.OrderToks = append(cst.OrderToks, p.next(), p.expectKw(KwBy))
			cst.OrderBy = append(cst.OrderBy, p.parseOrderByItem())
			for p.at(TokenComma) {
				p.next()
				cst.OrderBy = append(cst.OrderBy, p.parseOrderByItem())
			}
		case p.atKw(KwLimit):
			cst.Limit = p.parseLimit()
		default:
			return
		}
	}
}

func (p *grammar) atJoinStart() bool {
	switch p.cur().Kw {
	case KwJoin, KwInner, KwLeft, KwCross, KwAsof, KwSplice:
		return true
	case KwLt, KwWindow:
		return p.peek(1).IsKw(KwJoin)
	}
	return false
}

func (p *grammar) parseJoinClause() *JoinClauseCst {
	cst := &JoinClauseCst{cstBase: cstBase{Start: p.cur().Pos}}
	switch {
	case p.atKw(KwInner):
		cst.InnerTok = append(cst.InnerTok, p.next())
	case p.atKw(KwLeft):
		cst.LeftTok = append(cst.LeftTok, p.next())
		if tok, ok := p.eatKw(KwOuter); ok {
			cst.OuterTok = append(cst.OuterTok, tok)
		}
	case p.atKw(KwCross):
		cst.CrossTok = append(cst.CrossTok, p.next())
	case p.atKw(KwAsof):
		cst.AsofTok = append(cst.AsofTok, p.next())
	case p.atKw(KwLt):
		cst.LtTok = append(cst.LtTok, p.next())
	case p.atKw(KwSplice):
		cst.SpliceTok = append(cst.SpliceTok, p.next())
	case p.atKw(KwWindow):
		cst.WindowTok = append(cst.WindowTok, p.next())
	}
	cst.JoinTok = p.expectKw(KwJoin)
	cst.Table = p.parseTableExpr()
	if len(cst.WindowTok) > 0 && p.atKw(KwRange) {
		cst.RangeToks = append(cst.RangeToks, p.next(), p.expectKw(KwBetween))
		cst.RangeLo = wrapBitOr(p.parseBitOrExpr())
		cst.RangeToks = append(cst.RangeToks, p.expectKw(KwAnd))
		cst.RangeHi = wrapBitOr(p.parseBitOrExpr())
	}
	if tok, ok := p.eatKw(KwOn); ok {
		cst.OnTok = append(cst.OnTok, tok)
		cst.OnExpr = p.parseExpression()
	}
	if p.atKw(KwTolerance) {
		cst.TolToks = append(cst.TolToks, p.next())
		cst.Tolerance = p.parseExpression()
	}
	return cst
}

func (p *grammar) parseLatestOn() *LatestOnCst {
	cst := &LatestOnCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.LatestTok = p.expectKw(KwLatest)
	if tok, ok := p.eatKw(KwOn); ok {
		cst.OnTok = append(cst.OnTok, tok)
		cst.Timestamp = p.parseExpression()
		cst.PartToks = append(cst.PartToks, p.expectKw(KwPartition), p.expectKw(KwBy))
	} else {
		cst.ByToks = append(cst.ByToks, p.expectKw(KwBy))
	}
	cst.Columns = append(cst.Columns, p.parseExpression())
	for p.at(TokenComma) {
		p.next()
		cst.Columns = append(cst.Columns, p.parseExpression())
	}
	return cst
}

func (p *grammar) parseSampleBy() *SampleByCst {
	cst := &SampleByCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.SampleTok = p.expectKw(KwSample)
	cst.ByTok = p.expectKw(KwBy)
	cst.Interval = p.parseExpression()
	if tok, ok := p.eatKw(KwFrom); ok {
		cst.FromTok = append(cst.FromTok, tok)
		cst.FromExpr = p.parseExpression()
	}
	if tok, ok := p.eatKw(KwTo); ok {
		cst.ToTok = append(cst.ToTok, tok)
		cst.ToExpr = p.parseExpression()
	}
	if p.atKw(KwFill) {
		cst.FillTok = append(cst.FillTok, p.next())
		p.expect(TokenLParen)
		cst.FillItems = append(cst.FillItems, p.parseExpression())
		for p.at(TokenComma) {
			p.next()
			cst.FillItems = append(cst.FillItems, p.parseExpression())
		}
		p.expect(TokenRParen)
	}
	if p.atKw(KwAlign) {
		cst.AlignTok = append(cst.AlignTok, p.next(), p.expectKw(KwTo))
		switch {
		case p.atKw(KwCalendar):
			cst.CalendarTok = append(cst.CalendarTok, p.next())
			if p.atKw(KwTime) {
				cst.TimeToks = append(cst.TimeToks, p.next(), p.expectKw(KwZone))
				cst.TimeZone = p.parseExpression()
			}
			if p.atKw(KwWith) {
				cst.OffsetToks = append(cst.OffsetToks, p.next(), p.expectKw(KwOffset))
				cst.Offset = p.parseExpression()
			}
		case p.atKw(KwFirst):
			cst.FirstTok = append(cst.FirstTok, p.next(), p.expectKw(KwObservation))
		default:
			p.failExpected("CALENDAR or FIRST OBSERVATION")
		}
	}
	return cst
}

func (p *grammar) parseOrderByItem() *OrderByItemCst {
	cst := &OrderByItemCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.Expr = p.parseExpression()
	switch {
	case p.atKw(KwAsc):
		cst.AscTok = append(cst.AscTok, p.next())
	case p.atKw(KwDesc):
		cst.DescTok = append(cst.DescTok, p.next())
	}
	return cst
}

func (p *grammar) parseLimit() *LimitCst {
	cst := &LimitCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.LimitTok = p.expectKw(KwLimit)
	cst.Low = p.parseExpression()
	if tok, ok := p.eat(TokenComma); ok {
		cst.CommaTok = append(cst.CommaTok, tok)
		cst.High = p.parseExpression()
	}
	return cst
}

// ---------------------------------------------------------------------------
// Implicit select and PIVOT
// ---------------------------------------------------------------------------

// parseImplicitOrPivot handles statements that do not start with a
// keyword: the from-first shorthand where the statement opens with a
// table reference, optionally pivoted.
func (p *grammar) parseImplicitOrPivot() StatementCst {
	src := p.parseTableExpr()
	if p.atKw(KwPivot) {
		cst := &PivotStmtCst{cstBase: cstBase{Start: src.Pos()}, Source: src}
		p.open(cst)
		p.parsePivotTail(cst)
		return cst
	}
	return p.parseImplicitSelect(src)
}

// parseImplicitSelect wraps a table reference in a query with no SELECT
// token and no projection, then takes the usual trailing clauses.
func (p *grammar) parseImplicitSelect(src *TableExprCst) *SelectStmtCst {
	cst := &SelectStmtCst{cstBase: cstBase{Start: src.Pos()}}
	p.open(cst)
	cst.From = src
	p.parseQueryTail(cst)
	p.parseSetOps(cst)
	return cst
}

func (p *grammar) parsePivotTail(cst *PivotStmtCst) {
	cst.PivotTok = p.expectKw(KwPivot)
	p.expect(TokenLParen)
	cst.Aggregations = append(cst.Aggregations, p.parsePivotAgg())
	for p.at(TokenComma) {
		p.next()
		cst.Aggregations = append(cst.Aggregations, p.parsePivotAgg())
	}
	for p.atKw(KwFor) {
		cst.ForClauses = append(cst.ForClauses, p.parsePivotFor())
	}
	if len(cst.ForClauses) == 0 {
		p.failExpected("FOR")
	}
	if p.atKw(KwGroup) {
		cst.GroupToks = append(cst.GroupToks, p.next(), p.expectKw(KwBy))
		cst.GroupBy = append(cst.GroupBy, p.parseExpression())
		for p.at(TokenComma) {
			p.next()
			cst.GroupBy = append(cst.GroupBy, p.parseExpression())
		}
	}
	p.expect(TokenRParen)
	if p.atKw(KwOrder) {
		cst.OrderToks = append(cst.OrderToks, p.next(), p.expectKw(KwBy))
		cst.OrderBy = append(cst.OrderBy, p.parseOrderByItem())
		for p.at(TokenComma) {
			p.next()
			cst.OrderBy = append(cst.OrderBy, p.parseOrderByItem())
		}
	}
	if p.atKw(KwLimit) {
		cst.Limit = p.parseLimit()
	}
}

func (p *grammar) parsePivotAgg() *PivotAggCst {
	cst := &PivotAggCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.Expr = p.parseExpression()
	if tok, ok := p.eatKw(KwAs); ok {
		cst.AsTok = append(cst.AsTok, tok)
		cst.Alias = append(cst.Alias, p.expectIdentLike("alias"))
	} else if p.bareAliasOK() {
		cst.Alias = append(cst.Alias, p.next())
	}
	return cst
}

func (p *grammar) parsePivotFor() *PivotForCst {
	cst := &PivotForCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.ForTok = p.expectKw(KwFor)
	cst.Column = p.parseQualifiedName()
	cst.InTok = p.expectKw(KwIn)
	p.expect(TokenLParen)
	cst.Values = append(cst.Values, p.parsePivotInValue())
	for p.at(TokenComma) {
		p.next()
		cst.Values = append(cst.Values, p.parsePivotInValue())
	}
	p.expect(TokenRParen)
	return cst
}

func (p *grammar) parsePivotInValue() *PivotInValueCst {
	cst := &PivotInValueCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.Value = p.parseExpression()
	if tok, ok := p.eatKw(KwAs); ok {
		cst.AsTok = append(cst.AsTok, tok)
		cst.Alias = append(cst.Alias, p.expectIdentLike("alias"))
	} else if p.bareAliasOK() {
		cst.Alias = append(cst.Alias, p.next())
	}
	return cst
}

// ---------------------------------------------------------------------------
// INSERT / UPDATE
// ---------------------------------------------------------------------------

func (p *grammar) parseInsert() *InsertStmtCst {
	cst := &InsertStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.InsertTok = p.expectKw(KwInsert)
	for {
		switch {
		case p.atKw(KwAtomic):
			cst.AtomicTok = append(cst.AtomicTok, p.next())
			continue
		case p.atKw(KwBatch):
			cst.BatchTok = append(cst.BatchTok, p.next())
			cst.BatchSize = append(cst.BatchSize, p.expect(TokenNumber))
			continue
		case p.atKw(KwO3MaxLag):
			cst.O3Tok = append(cst.O3Tok, p.next())
			cst.O3Value = p.parseExpression()
			continue
		}
		break
	}
	cst.IntoTok = p.expectKw(KwInto)
	cst.Table = p.parseTableName()
	if p.at(TokenLParen) {
		p.next()
		cst.Columns = p.parseIdentList("column name")
		p.expect(TokenRParen)
	}
	switch {
	case p.atKw(KwValues):
		cst.ValuesTok = append(cst.ValuesTok, p.next())
		cst.Rows = append(cst.Rows, p.parseValuesRow())
		for p.at(TokenComma) {
			p.next()
			cst.Rows = append(cst.Rows, p.parseValuesRow())
		}
	case p.atKw(KwSelect), p.atKw(KwWith):
		cst.Query = p.parseSelectWithSetOps()
	default:
		p.failExpected("VALUES or SELECT")
	}
	return cst
}

func (p *grammar) parseValuesRow() *ValuesRowCst {
	cst := &ValuesRowCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.expect(TokenLParen)
	cst.Values = append(cst.Values, p.parseExpression())
	for p.at(TokenComma) {
		p.next()
		cst.Values = append(cst.Values, p.parseExpression())
	}
	p.expect(TokenRParen)
	return cst
}

func (p *grammar) parseUpdate() *UpdateStmtCst {
	cst := &UpdateStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.UpdateTok = p.expectKw(KwUpdate)
	cst.Table = p.parseTableExpr()
	cst.SetTok = p.expectKw(KwSet)
	cst.Assignments = append(cst.Assignments, p.parseUpdateAssign())
	for p.at(TokenComma) {
		p.next()
		cst.Assignments = append(cst.Assignments, p.parseUpdateAssign())
	}
	if tok, ok := p.eatKw(KwFrom); ok {
		cst.FromTok = append(cst.FromTok, tok)
		cst.From = p.parseTableExpr()
		for p.atJoinStart() {
			cst.Joins = append(cst.Joins, p.parseJoinClause())
		}
	}
	if tok, ok := p.eatKw(KwWhere); ok {
		cst.WhereTok = append(cst.WhereTok, tok)
		cst.WhereExpr = p.parseExpression()
	}
	return cst
}

func (p *grammar) parseUpdateAssign() *UpdateAssignCst {
	cst := &UpdateAssignCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.Column = p.parseQualifiedName()
	cst.EqTok = p.expect(TokenEq)
	cst.Value = p.parseExpression()
	return cst
}
