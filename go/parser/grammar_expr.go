/*
 * Expression grammar. One method per precedence level, loosest binding
 * first. Every level collects its operands and operator tokens into
 * flat slices on the level's CST node; reassembling them into a
 * left-leaning tree is the visitor's job, which sorts the operator
 * tokens by offset.
 */

package parser

// The ladder, from loosest to tightest:
//
//	OR
//	AND
//	NOT (prefix)
//	= != <> LIKE ILIKE ~ !~ ~=
//	< <= > >=            (plus IS [NOT] NULL postfix)
//	[NOT] IN / [NOT] BETWEEN / WITHIN
//	|
//	^
//	&
//	||
//	<< <<= >> >>=        (IPv4 containment)
//	+ -
//	* / %
//	- ~ (prefix)
//	:: and [subscripts]  (postfix)
//	primary

func (p *grammar) parseExpression() *ExpressionCst {
	p.enter()
	defer p.leave()

	first := p.parseAndExpr()
	cst := &ExpressionCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for p.atKw(KwOr) {
		cst.OrToks = append(cst.OrToks, p.next())
		cst.Operands = append(cst.Operands, p.parseAndExpr())
	}
	return cst
}

func (p *grammar) parseAndExpr() *AndExprCst {
	first := p.parseNotExpr()
	cst := &AndExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for p.atKw(KwAnd) {
		cst.AndToks = append(cst.AndToks, p.next())
		cst.Operands = append(cst.Operands, p.parseNotExpr())
	}
	return cst
}

func (p *grammar) parseNotExpr() *NotExprCst {
	cst := &NotExprCst{cstBase: cstBase{Start: p.cur().Pos}}
	// NOT here only when it is a prefix operator. "NOT x IN (...)" binds
	// the NOT to the whole membership test, which is what this produces;
	// "x NOT IN (...)" is handled inside the membership level.
	for p.atKw(KwNot) {
		cst.NotToks = append(cst.NotToks, p.next())
	}
	cst.Operand = p.parseEqExpr()
	if len(cst.NotToks) == 0 {
		cst.Start = cst.Operand.Pos()
	}
	return cst
}

func (p *grammar) parseEqExpr() *EqExprCst {
	first := p.parseRelExpr()
	cst := &EqExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for {
		switch {
		case p.at(TokenEq):
			cst.EqToks = append(cst.EqToks, p.next())
		case p.at(TokenNeq):
			cst.NeqToks = append(cst.NeqToks, p.next())
		case p.atKw(KwLike):
			cst.LikeToks = append(cst.LikeToks, p.next())
		case p.atKw(KwIlike):
			cst.IlikeToks = append(cst.IlikeToks, p.next())
		case p.at(TokenTilde):
			cst.TildeToks = append(cst.TildeToks, p.next())
		case p.at(TokenNotTilde):
			cst.NotTildeTks = append(cst.NotTildeTks, p.next())
		case p.at(TokenTildeEq):
			cst.TildeEqToks = append(cst.TildeEqToks, p.next())
		default:
			return cst
		}
		cst.Operands = append(cst.Operands, p.parseRelExpr())
	}
}

func (p *grammar) parseRelExpr() *RelExprCst {
	first := p.parseMembershipExpr()
	cst := &RelExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for {
		switch {
		case p.at(TokenLt):
			cst.LtToks = append(cst.LtToks, p.next())
		case p.at(TokenLe):
			cst.LeToks = append(cst.LeToks, p.next())
		case p.at(TokenGt):
			cst.GtToks = append(cst.GtToks, p.next())
		case p.at(TokenGe):
			cst.GeToks = append(cst.GeToks, p.next())
		case p.atKw(KwIs):
			cst.IsNulls = append(cst.IsNulls, p.parseIsNullSuffix())
			continue
		default:
			return cst
		}
		cst.Operands = append(cst.Operands, p.parseMembershipExpr())
	}
}

func (p *grammar) parseIsNullSuffix() *IsNullSuffixCst {
	cst := &IsNullSuffixCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.IsTok = p.expectKw(KwIs)
	if tok, ok := p.eatKw(KwNot); ok {
		cst.NotToks = append(cst.NotToks, tok)
	}
	cst.NullTok = p.expectKw(KwNull)
	return cst
}

func (p *grammar) parseMembershipExpr() *MembershipExprCst {
	operand := p.parseBitOrExpr()
	cst := &MembershipExprCst{cstBase: cstBase{Start: operand.Pos()}, Operand: operand}
	if p.atKw(KwNot) && (p.peek(1).IsKw(KwIn) || p.peek(1).IsKw(KwBetween)) {
		cst.NotToks = append(cst.NotToks, p.next())
	}
	switch {
	case p.atKw(KwIn):
		cst.In = p.parseInSuffix()
	case p.atKw(KwBetween):
		cst.Between = p.parseBetweenSuffix()
	case p.atKw(KwWithin):
		cst.Within = p.parseWithinSuffix()
	}
	return cst
}

func (p *grammar) parseInSuffix() *InSuffixCst {
	cst := &InSuffixCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.InTok = p.expectKw(KwIn)
	if p.at(TokenLParen) {
		p.next()
		if p.atKw(KwSelect) || p.atKw(KwWith) {
			cst.Subquery = p.parseSelectWithSetOps()
		} else {
			cst.Items = append(cst.Items, p.parseExpression())
			for p.at(TokenComma) {
				p.next()
				cst.Items = append(cst.Items, p.parseExpression())
			}
		}
		p.expect(TokenRParen)
		return cst
	}
	// Parenless form, used for interval tests like ts IN '2024-01'.
	// Bind tightly so a following AND stays outside the IN.
	cst.Items = append(cst.Items, wrapBitOr(p.parseBitOrExpr()))
	return cst
}

func (p *grammar) parseBetweenSuffix() *BetweenSuffixCst {
	cst := &BetweenSuffixCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.BetweenTok = p.expectKw(KwBetween)
	cst.Low = p.parseBitOrExpr()
	cst.AndTok = p.expectKw(KwAnd)
	cst.High = p.parseBitOrExpr()
	return cst
}

func (p *grammar) parseWithinSuffix() *WithinSuffixCst {
	cst := &WithinSuffixCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.WithinTok = p.expectKw(KwWithin)
	p.expect(TokenLParen)
	if !p.at(TokenRParen) {
		cst.Args = append(cst.Args, p.parseExpression())
		for p.at(TokenComma) {
			p.next()
			cst.Args = append(cst.Args, p.parseExpression())
		}
	}
	p.expect(TokenRParen)
	return cst
}

func (p *grammar) parseBitOrExpr() *BitOrExprCst {
	first := p.parseBitXorExpr()
	cst := &BitOrExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for p.at(TokenPipe) {
		cst.Ops = append(cst.Ops, p.next())
		cst.Operands = append(cst.Operands, p.parseBitXorExpr())
	}
	return cst
}

func (p *grammar) parseBitXorExpr() *BitXorExprCst {
	first := p.parseBitAndExpr()
	cst := &BitXorExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for p.at(TokenCaret) {
		cst.Ops = append(cst.Ops, p.next())
		cst.Operands = append(cst.Operands, p.parseBitAndExpr())
	}
	return cst
}

func (p *grammar) parseBitAndExpr() *BitAndExprCst {
	first := p.parseConcatExpr()
	cst := &BitAndExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for p.at(TokenAmp) {
		cst.Ops = append(cst.Ops, p.next())
		cst.Operands = append(cst.Operands, p.parseConcatExpr())
	}
	return cst
}

func (p *grammar) parseConcatExpr() *ConcatExprCst {
	first := p.parseIpv4Expr()
	cst := &ConcatExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for p.at(TokenConcat) {
		cst.Ops = append(cst.Ops, p.next())
		cst.Operands = append(cst.Operands, p.parseIpv4Expr())
	}
	return cst
}

func (p *grammar) parseIpv4Expr() *Ipv4ExprCst {
	first := p.parseAddExpr()
	cst := &Ipv4ExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for {
		switch {
		case p.at(TokenLShift):
			cst.LShiftToks = append(cst.LShiftToks, p.next())
		case p.at(TokenLShiftEq):
			cst.LShiftEqTks = append(cst.LShiftEqTks, p.next())
		case p.at(TokenRShift):
			cst.RShiftToks = append(cst.RShiftToks, p.next())
		case p.at(TokenRShiftEq):
			cst.RShiftEqTks = append(cst.RShiftEqTks, p.next())
		default:
			return cst
		}
		cst.Operands = append(cst.Operands, p.parseAddExpr())
	}
}

func (p *grammar) parseAddExpr() *AddExprCst {
	first := p.parseMulExpr()
	cst := &AddExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for {
		switch {
		case p.at(TokenPlus):
			cst.PlusToks = append(cst.PlusToks, p.next())
		case p.at(TokenMinus):
			cst.MinusToks = append(cst.MinusToks, p.next())
		default:
			return cst
		}
		cst.Operands = append(cst.Operands, p.parseMulExpr())
	}
}

func (p *grammar) parseMulExpr() *MulExprCst {
	first := p.parseUnaryExpr()
	cst := &MulExprCst{cstBase: cstBase{Start: first.Pos()}}
	cst.Operands = append(cst.Operands, first)
	for {
		switch {
		case p.at(TokenStar):
			cst.StarToks = append(cst.StarToks, p.next())
		case p.at(TokenSlash):
			cst.SlashToks = append(cst.SlashToks, p.next())
		case p.at(TokenPercent):
			cst.PercentToks = append(cst.PercentToks, p.next())
		default:
			return cst
		}
		cst.Operands = append(cst.Operands, p.parseUnaryExpr())
	}
}

func (p *grammar) parseUnaryExpr() *UnaryExprCst {
	cst := &UnaryExprCst{cstBase: cstBase{Start: p.cur().Pos}}
	for {
		switch {
		case p.at(TokenMinus):
			cst.MinusToks = append(cst.MinusToks, p.next())
		case p.at(TokenTilde):
			cst.TildeToks = append(cst.TildeToks, p.next())
		default:
			cst.Operand = p.parsePostfixExpr()
			if len(cst.MinusToks) == 0 && len(cst.TildeToks) == 0 {
				cst.Start = cst.Operand.Pos()
			}
			return cst
		}
	}
}

func (p *grammar) parsePostfixExpr() *PostfixExprCst {
	primary := p.parsePrimaryExpr()
	cst := &PostfixExprCst{cstBase: cstBase{Start: primary.Pos()}, Primary: primary}
	for {
		switch {
		case p.at(TokenCastOp):
			cst.CastToks = append(cst.CastToks, p.next())
			cst.CastTypes = append(cst.CastTypes, p.parseTypeName())
		case p.at(TokenLBracket):
			p.parseSubscript(cst)
		default:
			return cst
		}
	}
}

// parseSubscript consumes one [...] group: an index, a comma list of
// indexes, or a slice with either bound optional. Everything lands in the
// flat Subscripts/Colons slices; the visitor pairs them back up by offset.
func (p *grammar) parseSubscript(cst *PostfixExprCst) {
	cst.LBrackets = append(cst.LBrackets, p.expect(TokenLBracket))
	if p.at(TokenColon) {
		cst.Colons = append(cst.Colons, p.next())
		if !p.at(TokenRBracket) {
			cst.Subscripts = append(cst.Subscripts, p.parseExpression())
		}
	} else {
		cst.Subscripts = append(cst.Subscripts, p.parseExpression())
		if p.at(TokenColon) {
			cst.Colons = append(cst.Colons, p.next())
			if !p.at(TokenRBracket) {
				cst.Subscripts = append(cst.Subscripts, p.parseExpression())
			}
		} else {
			for p.at(TokenComma) {
				p.next()
				cst.Subscripts = append(cst.Subscripts, p.parseExpression())
			}
		}
	}
	cst.RBrackets = append(cst.RBrackets, p.expect(TokenRBracket))
}

func (p *grammar) parsePrimaryExpr() *PrimaryExprCst {
	cst := &PrimaryExprCst{cstBase: cstBase{Start: p.cur().Pos}}
	switch {
	case p.at(TokenNumber):
		cst.NumberTok = append(cst.NumberTok, p.next())
	case p.at(TokenString):
		cst.StringTok = append(cst.StringTok, p.next())
	case p.at(TokenDuration):
		cst.DurationTok = append(cst.DurationTok, p.next())
	case p.at(TokenGeohash):
		cst.GeohashTok = append(cst.GeohashTok, p.next())
	case p.at(TokenVariable):
		cst.VariableTok = append(cst.VariableTok, p.next())
	case p.atKw(KwTrue):
		cst.TrueTok = append(cst.TrueTok, p.next())
	case p.atKw(KwFalse):
		cst.FalseTok = append(cst.FalseTok, p.next())
	case p.atKw(KwNull):
		cst.NullTok = append(cst.NullTok, p.next())
	case p.atKw(KwCase):
		cst.Case = p.parseCaseExpr()
	case p.atKw(KwCast):
		cst.CastFn = p.parseCastFunction()
	case p.atKw(KwArray) && p.peek(1).Is(TokenLBracket):
		cst.Array = p.parseArrayLiteral()
	case p.at(TokenLParen):
		cst.LParen = append(cst.LParen, p.next())
		if p.atKw(KwSelect) || p.atKw(KwWith) {
			cst.Subquery = p.parseSelectWithSetOps()
		} else {
			cst.ParenExprs = append(cst.ParenExprs, p.parseExpression())
			for p.at(TokenComma) {
				p.next()
				cst.ParenExprs = append(cst.ParenExprs, p.parseExpression())
			}
		}
		cst.RParen = append(cst.RParen, p.expect(TokenRParen))
	case p.cur().IdentLike():
		p.parseColumnOrCall(cst)
	default:
		p.failExpected("expression")
	}
	return cst
}

// parseColumnOrCall handles everything that starts with an identifier:
// a column reference, a dotted column reference, a qualified wildcard
// like t.*, or a function call when a ( follows the name.
func (p *grammar) parseColumnOrCall(cst *PrimaryExprCst) {
	first := p.next()
	parts := []Token{first}
	var star []Token
	for p.at(TokenDot) {
		p.next()
		if p.at(TokenStar) {
			star = append(star, p.next())
			break
		}
		if !p.cur().IdentLike() {
			p.failExpected("identifier")
		}
		parts = append(parts, p.next())
	}
	if len(star) == 0 && p.at(TokenLParen) {
		name := &QualifiedNameCst{cstBase: cstBase{Start: first.Pos}, Parts: parts}
		cst.Func = p.parseFunctionCall(name)
		return
	}
	cst.Column = &ColumnRefCst{cstBase: cstBase{Start: first.Pos}, Parts: parts, StarTok: star}
}

func (p *grammar) parseCaseExpr() *CaseExprCst {
	cst := &CaseExprCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.CaseTok = p.expectKw(KwCase)
	if !p.atKw(KwWhen) {
		cst.Exprs = append(cst.Exprs, p.parseExpression())
	}
	for p.atKw(KwWhen) {
		when := &CaseWhenCst{cstBase: cstBase{Start: p.cur().Pos}}
		when.WhenTok = p.next()
		when.When = p.parseExpression()
		when.ThenTok = p.expectKw(KwThen)
		when.Then = p.parseExpression()
		cst.Whens = append(cst.Whens, when)
	}
	if len(cst.Whens) == 0 {
		p.failExpected("WHEN")
	}
	if tok, ok := p.eatKw(KwElse); ok {
		cst.ElseTok = append(cst.ElseTok, tok)
		cst.Exprs = append(cst.Exprs, p.parseExpression())
	}
	cst.EndTok = p.expectKw(KwEnd)
	return cst
}

func (p *grammar) parseCastFunction() *CastFnCst {
	cst := &CastFnCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.CastTok = p.expectKw(KwCast)
	p.expect(TokenLParen)
	cst.Value = p.parseExpression()
	cst.AsTok = p.expectKw(KwAs)
	cst.Type = p.parseTypeName()
	p.expect(TokenRParen)
	return cst
}

func (p *grammar) parseArrayLiteral() *ArrayLiteralCst {
	cst := &ArrayLiteralCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.ArrayTok = p.expectKw(KwArray)
	p.expect(TokenLBracket)
	if !p.at(TokenRBracket) {
		cst.Items = append(cst.Items, p.parseExpression())
		for p.at(TokenComma) {
			p.next()
			cst.Items = append(cst.Items, p.parseExpression())
		}
	}
	p.expect(TokenRBracket)
	return cst
}

func (p *grammar) parseFunctionCall(name *QualifiedNameCst) *FunctionCallCst {
	cst := &FunctionCallCst{cstBase: cstBase{Start: name.Pos()}, Name: name}
	cst.LParen = p.expect(TokenLParen)
	if tok, ok := p.eatKw(KwDistinct); ok {
		cst.DistinctTok = append(cst.DistinctTok, tok)
	}
	switch {
	case p.at(TokenRParen):
	case p.at(TokenStar) && p.peek(1).Is(TokenRParen):
		cst.StarTok = append(cst.StarTok, p.next())
	default:
		cst.Args = append(cst.Args, p.parseExpression())
		for {
			if p.at(TokenComma) {
				p.next()
				cst.Args = append(cst.Args, p.parseExpression())
				continue
			}
			// extract(part FROM ts) style separator
			if tok, ok := p.eatKw(KwFrom); ok {
				cst.FromTok = append(cst.FromTok, tok)
				cst.Args = append(cst.Args, p.parseExpression())
				continue
			}
			break
		}
	}
	cst.RParen = append(cst.RParen, p.expect(TokenRParen))
	switch {
	case p.atKw(KwIgnore) && p.peek(1).IsKw(KwNulls):
		cst.IgnoreToks = append(cst.IgnoreToks, p.next())
		cst.NullsToks = append(cst.NullsToks, p.next())
	case p.atKw(KwRespect) && p.peek(1).IsKw(KwNulls):
		cst.RespectToks = append(cst.RespectToks, p.next())
		cst.NullsToks = append(cst.NullsToks, p.next())
	}
	if tok, ok := p.eatKw(KwOver); ok {
		cst.OverTok = append(cst.OverTok, tok)
		cst.Window = p.parseWindowSpec()
	}
	return cst
}

func (p *grammar) parseWindowSpec() *WindowSpecCst {
	cst := &WindowSpecCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.expect(TokenLParen)
	if p.atKw(KwPartition) {
		cst.PartitionToks = append(cst.PartitionToks, p.next(), p.expectKw(KwBy))
		cst.PartitionBy = append(cst.PartitionBy, p.parseExpression())
		for p.at(TokenComma) {
			p.next()
			cst.PartitionBy = append(cst.PartitionBy, p.parseExpression())
		}
	}
	if p.atKw(KwOrder) {
		cst.OrderToks = append(cst.OrderToks, p.next(), p.expectKw(KwBy))
		cst.OrderItems = append(cst.OrderItems, p.parseOrderByItem())
		for p.at(TokenComma) {
			p.next()
			cst.OrderItems = append(cst.OrderItems, p.parseOrderByItem())
		}
	}
	frame := true
	switch {
	case p.atKw(KwRows):
		cst.RowsTok = append(cst.RowsTok, p.next())
	case p.atKw(KwRange):
		cst.RangeTok = append(cst.RangeTok, p.next())
	case p.atKw(KwGroups):
		cst.GroupsTok = append(cst.GroupsTok, p.next())
	default:
		frame = false
	}
	if frame {
		if tok, ok := p.eatKw(KwBetween); ok {
			cst.BetweenTok = append(cst.BetweenTok, tok)
			cst.Bounds = append(cst.Bounds, p.parseFrameBound())
			p.expectKw(KwAnd)
			cst.Bounds = append(cst.Bounds, p.parseFrameBound())
		} else {
			cst.Bounds = append(cst.Bounds, p.parseFrameBound())
		}
	}
	p.expect(TokenRParen)
	return cst
}

func (p *grammar) parseFrameBound() *FrameBoundCst {
	cst := &FrameBoundCst{cstBase: cstBase{Start: p.cur().Pos}}
	switch {
	case p.atKw(KwUnbounded):
		cst.UnboundedTok = append(cst.UnboundedTok, p.next())
		switch {
		case p.atKw(KwPreceding):
			cst.PrecedingTok = append(cst.PrecedingTok, p.next())
		case p.atKw(KwFollowing):
			cst.FollowingTok = append(cst.FollowingTok, p.next())
		default:
			p.failExpected("PRECEDING or FOLLOWING")
		}
	case p.atKw(KwCurrent):
		cst.CurrentTok = append(cst.CurrentTok, p.next())
		cst.RowTok = append(cst.RowTok, p.expectKw(KwRow))
	default:
		cst.Value = p.parseExpression()
		switch {
		case p.atKw(KwPreceding):
			cst.PrecedingTok = append(cst.PrecedingTok, p.next())
		case p.atKw(KwFollowing):
			cst.FollowingTok = append(cst.FollowingTok, p.next())
		default:
			p.failExpected("PRECEDING or FOLLOWING")
		}
	}
	return cst
}

// wrapBitOr lifts a mid-ladder node back up to a full expression without
// touching any operator slots. Used where the grammar parses a tightly
// bound operand (IN without parens, BETWEEN bounds) but the CST field
// wants the top-level expression type.
func wrapBitOr(b *BitOrExprCst) *ExpressionCst {
	start := cstBase{Start: b.Pos()}
	m := &MembershipExprCst{cstBase: start, Operand: b}
	r := &RelExprCst{cstBase: start, Operands: []*MembershipExprCst{m}}
	e := &EqExprCst{cstBase: start, Operands: []*RelExprCst{r}}
	n := &NotExprCst{cstBase: start, Operand: e}
	a := &AndExprCst{cstBase: start, Operands: []*NotExprCst{n}}
	return &ExpressionCst{cstBase: start, Operands: []*AndExprCst{a}}
}
