/*
 * Expression lowering.
 *
 * The grammar collects each precedence level's operators into flat
 * per-symbol token slices. Lowering merges those slices, sorts them by
 * byte offset and folds left, which restores the source operator order
 * without the grammar ever materializing interior chain nodes. Levels
 * with a single operand collapse to the operand's own node, so a bare
 * literal never accumulates wrapper layers.
 */

package parser

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/chronoql/chronoql/go/parser/ast"
)

// maxSafeInteger is the largest integer a float64 represents exactly.
const maxSafeInteger = 1<<53 - 1

type opTok struct {
	pos int
	op  string
}

// collectOps appends one opTok per token. An empty op takes each
// token's source text, which keeps the two spellings of not-equal
// apart.
func collectOps(dst []opTok, toks []Token, op string) []opTok {
	for _, t := range toks {
		text := op
		if text == "" {
			text = t.Text
		}
		dst = append(dst, opTok{pos: t.Pos, op: text})
	}
	return dst
}

// foldBinary rebuilds one precedence level into a left-leaning tree.
// operand visits the i-th operand; ops must hold exactly one operator
// per adjacent pair.
func (v *visitor) foldBinary(operandCount int, ops []opTok, operand func(int) (ast.Expression, error)) (ast.Expression, error) {
	if operandCount != len(ops)+1 {
		return nil, fmt.Errorf("operator chain with %d operands and %d operators", operandCount, len(ops))
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].pos < ops[j].pos })
	left, err := operand(0)
	if err != nil {
		return nil, err
	}
	for i, op := range ops {
		right, err := operand(i + 1)
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(op.op, left, right, op.pos)
	}
	return left, nil
}

func (v *visitor) visitExpr(cst *ExpressionCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	if len(cst.OrToks) == 0 {
		return v.visitAndExpr(cst.Operands[0])
	}
	ops := collectOps(nil, cst.OrToks, "OR")
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitAndExpr(cst.Operands[i])
	})
}

func (v *visitor) visitAndExpr(cst *AndExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	if len(cst.AndToks) == 0 {
		return v.visitNotExpr(cst.Operands[0])
	}
	ops := collectOps(nil, cst.AndToks, "AND")
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitNotExpr(cst.Operands[i])
	})
}

func (v *visitor) visitNotExpr(cst *NotExprCst) (ast.Expression, error) {
	if cst == nil {
		return nil, missing("expression")
	}
	expr, err := v.visitEqExpr(cst.Operand)
	if err != nil {
		return nil, err
	}
	for i := len(cst.NotToks) - 1; i >= 0; i-- {
		expr = ast.NewUnaryExpr("NOT", expr, cst.NotToks[i].Pos)
	}
	return expr, nil
}

func (v *visitor) visitEqExpr(cst *EqExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	var ops []opTok
	ops = collectOps(ops, cst.EqToks, "=")
	ops = collectOps(ops, cst.NeqToks, "")
	ops = collectOps(ops, cst.LikeToks, "LIKE")
	ops = collectOps(ops, cst.IlikeToks, "ILIKE")
	ops = collectOps(ops, cst.TildeToks, "~")
	ops = collectOps(ops, cst.NotTildeTks, "!~")
	ops = collectOps(ops, cst.TildeEqToks, "~=")
	if len(ops) == 0 {
		return v.visitRelExpr(cst.Operands[0])
	}
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitRelExpr(cst.Operands[i])
	})
}

// visitRelExpr folds comparisons and postfix IS [NOT] NULL together.
// Both event kinds sort into one stream by offset, so x < y IS NULL
// applies the null test to the comparison that precedes it in source.
func (v *visitor) visitRelExpr(cst *RelExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	type relEvent struct {
		pos    int
		op     string
		isNull *IsNullSuffixCst
	}
	var events []relEvent
	add := func(toks []Token, op string) {
		for _, t := range toks {
			events = append(events, relEvent{pos: t.Pos, op: op})
		}
	}
	add(cst.LtToks, "<")
	add(cst.LeToks, "<=")
	add(cst.GtToks, ">")
	add(cst.GeToks, ">=")
	for _, n := range cst.IsNulls {
		events = append(events, relEvent{pos: n.Pos(), isNull: n})
	}
	if len(events) == 0 {
		return v.visitMembershipExpr(cst.Operands[0])
	}
	sort.Slice(events, func(i, j int) bool { return events[i].pos < events[j].pos })
	left, err := v.visitMembershipExpr(cst.Operands[0])
	if err != nil {
		return nil, err
	}
	next := 1
	for _, ev := range events {
		if ev.isNull != nil {
			left = &ast.IsNullExpr{
				BaseNode: ast.BaseNode{Tag: ast.T_IsNullExpr, Loc: ev.pos},
				Not:      len(ev.isNull.NotToks) > 0,
				Value:    left,
			}
			continue
		}
		if next >= len(cst.Operands) {
			return nil, fmt.Errorf("comparison chain with %d operands and %d operators", len(cst.Operands), next)
		}
		right, err := v.visitMembershipExpr(cst.Operands[next])
		next++
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(ev.op, left, right, ev.pos)
	}
	return left, nil
}

func (v *visitor) visitMembershipExpr(cst *MembershipExprCst) (ast.Expression, error) {
	if cst == nil {
		return nil, missing("expression")
	}
	operand, err := v.visitBitOrExpr(cst.Operand)
	if err != nil {
		return nil, err
	}
	not := len(cst.NotToks) > 0
	switch {
	case cst.In != nil:
		return v.visitInSuffix(cst.In, operand, not)
	case cst.Between != nil:
		return v.visitBetweenSuffix(cst.Between, operand, not)
	case cst.Within != nil:
		return v.visitWithinSuffix(cst.Within, operand)
	}
	return operand, nil
}

func (v *visitor) visitInSuffix(cst *InSuffixCst, value ast.Expression, not bool) (ast.Expression, error) {
	expr := &ast.InExpr{
		BaseNode: ast.BaseNode{Tag: ast.T_InExpr, Loc: cst.InTok.Pos},
		Not:      not,
		Value:    value,
	}
	if cst.Subquery != nil {
		query, err := v.visitSelect(cst.Subquery)
		if err != nil {
			return nil, err
		}
		sub := &ast.SubqueryExpr{
			BaseNode: ast.BaseNode{Tag: ast.T_SubqueryExpr, Loc: cst.Subquery.Pos()},
			Query:    query,
		}
		expr.List = []ast.Expression{sub}
		return expr, nil
	}
	if len(cst.Items) == 0 {
		return nil, missing("membership list")
	}
	for _, item := range cst.Items {
		e, err := v.visitExpr(item)
		if err != nil {
			return nil, err
		}
		expr.List = append(expr.List, e)
	}
	return expr, nil
}

func (v *visitor) visitBetweenSuffix(cst *BetweenSuffixCst, value ast.Expression, not bool) (ast.Expression, error) {
	low, err := v.visitBitOrExpr(cst.Low)
	if err != nil {
		return nil, err
	}
	high, err := v.visitBitOrExpr(cst.High)
	if err != nil {
		return nil, err
	}
	return &ast.BetweenExpr{
		BaseNode: ast.BaseNode{Tag: ast.T_BetweenExpr, Loc: cst.BetweenTok.Pos},
		Not:      not,
		Value:    value,
		Low:      low,
		High:     high,
	}, nil
}

func (v *visitor) visitWithinSuffix(cst *WithinSuffixCst, value ast.Expression) (ast.Expression, error) {
	expr := &ast.WithinExpr{
		BaseNode: ast.BaseNode{Tag: ast.T_WithinExpr, Loc: cst.WithinTok.Pos},
		Value:    value,
	}
	for _, arg := range cst.Args {
		e, err := v.visitExpr(arg)
		if err != nil {
			return nil, err
		}
		expr.Args = append(expr.Args, e)
	}
	return expr, nil
}

func (v *visitor) visitBitOrExpr(cst *BitOrExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	if len(cst.Ops) == 0 {
		return v.visitBitXorExpr(cst.Operands[0])
	}
	ops := collectOps(nil, cst.Ops, "|")
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitBitXorExpr(cst.Operands[i])
	})
}

func (v *visitor) visitBitXorExpr(cst *BitXorExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	if len(cst.Ops) == 0 {
		return v.visitBitAndExpr(cst.Operands[0])
	}
	ops := collectOps(nil, cst.Ops, "^")
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitBitAndExpr(cst.Operands[i])
	})
}

func (v *visitor) visitBitAndExpr(cst *BitAndExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	if len(cst.Ops) == 0 {
		return v.visitConcatExpr(cst.Operands[0])
	}
	ops := collectOps(nil, cst.Ops, "&")
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitConcatExpr(cst.Operands[i])
	})
}

func (v *visitor) visitConcatExpr(cst *ConcatExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	if len(cst.Ops) == 0 {
		return v.visitIpv4Expr(cst.Operands[0])
	}
	ops := collectOps(nil, cst.Ops, "||")
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitIpv4Expr(cst.Operands[i])
	})
}

func (v *visitor) visitIpv4Expr(cst *Ipv4ExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	var ops []opTok
	ops = collectOps(ops, cst.LShiftToks, "<<")
	ops = collectOps(ops, cst.LShiftEqTks, "<<=")
	ops = collectOps(ops, cst.RShiftToks, ">>")
	ops = collectOps(ops, cst.RShiftEqTks, ">>=")
	if len(ops) == 0 {
		return v.visitAddExpr(cst.Operands[0])
	}
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitAddExpr(cst.Operands[i])
	})
}

func (v *visitor) visitAddExpr(cst *AddExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	var ops []opTok
	ops = collectOps(ops, cst.PlusToks, "+")
	ops = collectOps(ops, cst.MinusToks, "-")
	if len(ops) == 0 {
		return v.visitMulExpr(cst.Operands[0])
	}
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitMulExpr(cst.Operands[i])
	})
}

func (v *visitor) visitMulExpr(cst *MulExprCst) (ast.Expression, error) {
	if cst == nil || len(cst.Operands) == 0 {
		return nil, missing("expression")
	}
	var ops []opTok
	ops = collectOps(ops, cst.StarToks, "*")
	ops = collectOps(ops, cst.SlashToks, "/")
	ops = collectOps(ops, cst.PercentToks, "%")
	if len(ops) == 0 {
		return v.visitUnaryExpr(cst.Operands[0])
	}
	return v.foldBinary(len(cst.Operands), ops, func(i int) (ast.Expression, error) {
		return v.visitUnaryExpr(cst.Operands[i])
	})
}

func (v *visitor) visitUnaryExpr(cst *UnaryExprCst) (ast.Expression, error) {
	if cst == nil {
		return nil, missing("expression")
	}
	expr, err := v.visitPostfixExpr(cst.Operand)
	if err != nil {
		return nil, err
	}
	var prefixes []opTok
	prefixes = collectOps(prefixes, cst.MinusToks, "-")
	prefixes = collectOps(prefixes, cst.TildeToks, "~")
	sort.Slice(prefixes, func(i, j int) bool { return prefixes[i].pos < prefixes[j].pos })
	// Innermost prefix binds first, so apply right to left.
	for i := len(prefixes) - 1; i >= 0; i-- {
		expr = ast.NewUnaryExpr(prefixes[i].op, expr, prefixes[i].pos)
	}
	return expr, nil
}

type subscriptGroup struct {
	subs   []*ExpressionCst
	colons []Token
}

// subscriptGroups splits the flat subscript and colon collections into
// one group per bracket pair. An element belongs to the first group
// whose closing bracket lies beyond it in the source.
func subscriptGroups(cst *PostfixExprCst) ([]subscriptGroup, error) {
	if len(cst.RBrackets) != len(cst.LBrackets) {
		return nil, missing("closing bracket")
	}
	groups := make([]subscriptGroup, len(cst.LBrackets))
	subIdx, colonIdx := 0, 0
	for i := range groups {
		end := cst.RBrackets[i].Pos
		for subIdx < len(cst.Subscripts) && cst.Subscripts[subIdx].Pos() < end {
			groups[i].subs = append(groups[i].subs, cst.Subscripts[subIdx])
			subIdx++
		}
		for colonIdx < len(cst.Colons) && cst.Colons[colonIdx].Pos < end {
			groups[i].colons = append(groups[i].colons, cst.Colons[colonIdx])
			colonIdx++
		}
	}
	return groups, nil
}

// visitPostfixExpr applies ::cast and [subscript] postfixes in source
// order. Casts and bracket groups merge into one offset-sorted event
// stream because the two postfix kinds interleave freely.
func (v *visitor) visitPostfixExpr(cst *PostfixExprCst) (ast.Expression, error) {
	if cst == nil {
		return nil, missing("expression")
	}
	expr, err := v.visitPrimaryExpr(cst.Primary)
	if err != nil {
		return nil, err
	}
	if len(cst.CastToks) == 0 && len(cst.LBrackets) == 0 {
		return expr, nil
	}
	type postfixEvent struct {
		pos   int
		typ   *TypeNameCst
		group int
	}
	events := make([]postfixEvent, 0, len(cst.CastToks)+len(cst.LBrackets))
	for i, tok := range cst.CastToks {
		if i >= len(cst.CastTypes) {
			return nil, missing("cast type")
		}
		events = append(events, postfixEvent{pos: tok.Pos, typ: cst.CastTypes[i]})
	}
	groups, err := subscriptGroups(cst)
	if err != nil {
		return nil, err
	}
	for i := range cst.LBrackets {
		events = append(events, postfixEvent{pos: cst.LBrackets[i].Pos, group: i})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].pos < events[j].pos })
	for _, ev := range events {
		if ev.typ != nil {
			typ, err := v.visitTypeName(ev.typ)
			if err != nil {
				return nil, err
			}
			expr = ast.NewTypeCastExpr(expr, typ, ev.pos)
			continue
		}
		expr, err = v.applySubscript(expr, groups[ev.group], ev.pos)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

// applySubscript turns one bracket group into an access or a slice. A
// colon anywhere in the group makes it a slice; a single-bound slice
// tells front from back bound by offset against the colon.
func (v *visitor) applySubscript(array ast.Expression, g subscriptGroup, pos int) (ast.Expression, error) {
	if len(g.colons) == 0 {
		acc := &ast.ArrayAccess{
			BaseNode: ast.BaseNode{Tag: ast.T_ArrayAccess, Loc: pos},
			Array:    array,
		}
		if len(g.subs) == 0 {
			return nil, missing("subscript")
		}
		for _, s := range g.subs {
			e, err := v.visitExpr(s)
			if err != nil {
				return nil, err
			}
			acc.Subscripts = append(acc.Subscripts, e)
		}
		return acc, nil
	}
	slice := &ast.ArraySlice{
		BaseNode: ast.BaseNode{Tag: ast.T_ArraySlice, Loc: pos},
		Array:    array,
	}
	colonPos := g.colons[0].Pos
	switch len(g.subs) {
	case 0:
	case 1:
		e, err := v.visitExpr(g.subs[0])
		if err != nil {
			return nil, err
		}
		if g.subs[0].Pos() < colonPos {
			slice.From = e
		} else {
			slice.To = e
		}
	case 2:
		from, err := v.visitExpr(g.subs[0])
		if err != nil {
			return nil, err
		}
		to, err := v.visitExpr(g.subs[1])
		if err != nil {
			return nil, err
		}
		slice.From, slice.To = from, to
	default:
		return nil, fmt.Errorf("slice with %d bounds", len(g.subs))
	}
	return slice, nil
}

func (v *visitor) visitPrimaryExpr(cst *PrimaryExprCst) (ast.Expression, error) {
	if cst == nil {
		return nil, missing("expression")
	}
	switch {
	case len(cst.NumberTok) > 0:
		return numberLiteral(cst.NumberTok[0])
	case len(cst.StringTok) > 0:
		tok := cst.StringTok[0]
		return ast.NewStringLiteral(tok.Val, tok.Pos), nil
	case len(cst.DurationTok) > 0:
		return durationLiteral(cst.DurationTok[0])
	case len(cst.GeohashTok) > 0:
		tok := cst.GeohashTok[0]
		return &ast.GeohashLiteral{
			BaseNode: ast.BaseNode{Tag: ast.T_GeohashLiteral, Loc: tok.Pos},
			Raw:      tok.Text,
			Binary:   strings.HasPrefix(tok.Text, "##"),
		}, nil
	case len(cst.VariableTok) > 0:
		tok := cst.VariableTok[0]
		return &ast.VariableRef{
			BaseNode: ast.BaseNode{Tag: ast.T_VariableRef, Loc: tok.Pos},
			Name:     tok.Val,
		}, nil
	case len(cst.TrueTok) > 0:
		return ast.NewBooleanLiteral(true, cst.TrueTok[0].Pos), nil
	case len(cst.FalseTok) > 0:
		return ast.NewBooleanLiteral(false, cst.FalseTok[0].Pos), nil
	case len(cst.NullTok) > 0:
		return ast.NewNullLiteral(cst.NullTok[0].Pos), nil
	case cst.Case != nil:
		return v.visitCaseExpr(cst.Case)
	case cst.CastFn != nil:
		return v.visitCastFn(cst.CastFn)
	case cst.Func != nil:
		return v.visitFunctionCall(cst.Func)
	case cst.Column != nil:
		return v.visitColumnRef(cst.Column)
	case cst.Array != nil:
		return v.visitArrayLiteral(cst.Array)
	case cst.Subquery != nil:
		query, err := v.visitSelect(cst.Subquery)
		if err != nil {
			return nil, err
		}
		return &ast.SubqueryExpr{
			BaseNode: ast.BaseNode{Tag: ast.T_SubqueryExpr, Loc: cst.Pos()},
			Query:    query,
		}, nil
	case len(cst.ParenExprs) == 1:
		inner, err := v.visitExpr(cst.ParenExprs[0])
		if err != nil {
			return nil, err
		}
		return ast.NewParenExpr(inner, cst.Pos()), nil
	case len(cst.ParenExprs) > 1:
		tuple := &ast.TupleExpr{BaseNode: ast.BaseNode{Tag: ast.T_TupleExpr, Loc: cst.Pos()}}
		for _, item := range cst.ParenExprs {
			e, err := v.visitExpr(item)
			if err != nil {
				return nil, err
			}
			tuple.Items = append(tuple.Items, e)
		}
		return tuple, nil
	}
	return nil, missing("expression")
}

// numberLiteral materializes a number token. Underscore separators
// strip before parsing; an L-suffixed value whose magnitude leaves the
// exactly representable integer range keeps its digits in Exact so no
// precision is lost.
func numberLiteral(tok Token) (*ast.NumberLiteral, error) {
	body := strings.ReplaceAll(tok.Text, "_", "")
	lit := ast.NewNumberLiteral(tok.Text, 0, tok.Pos)
	if n := len(body); n > 0 {
		switch body[n-1] {
		case 'L', 'l':
			lit.Long = true
			body = body[:n-1]
		case 'm':
			lit.Decimal = true
			body = body[:n-1]
		}
	}
	val, err := strconv.ParseFloat(body, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed number %q", tok.Text)
	}
	lit.Val = val
	if lit.Long {
		if i, err := strconv.ParseInt(body, 10, 64); err != nil || i > maxSafeInteger || i < -maxSafeInteger {
			lit.Exact = body
		}
	}
	return lit, nil
}

func durationLiteral(tok Token) (*ast.DurationLiteral, error) {
	text := tok.Text
	if len(text) < 2 {
		return nil, fmt.Errorf("malformed duration %q", text)
	}
	unit := text[len(text)-1:]
	magnitude, err := strconv.ParseFloat(text[:len(text)-1], 64)
	if err != nil {
		return nil, fmt.Errorf("malformed duration %q", text)
	}
	return ast.NewDurationLiteral(text, magnitude, unit, tok.Pos), nil
}

func (v *visitor) visitColumnRef(cst *ColumnRefCst) (ast.Expression, error) {
	if cst == nil || len(cst.Parts) == 0 {
		return nil, missing("column reference")
	}
	parts := make([]string, len(cst.Parts))
	for i, tok := range cst.Parts {
		parts[i] = tok.IdentValue()
	}
	name := ast.NewQualifiedName(parts...)
	name.SetLocation(cst.Pos())
	if len(cst.StarTok) > 0 {
		return ast.NewStarRef(name, cst.Pos()), nil
	}
	return ast.NewColumnRef(name, cst.Pos()), nil
}

func (v *visitor) visitArrayLiteral(cst *ArrayLiteralCst) (ast.Expression, error) {
	lit := &ast.ArrayLiteral{BaseNode: ast.BaseNode{Tag: ast.T_ArrayLiteral, Loc: cst.Pos()}}
	for _, item := range cst.Items {
		e, err := v.visitExpr(item)
		if err != nil {
			return nil, err
		}
		lit.Items = append(lit.Items, e)
	}
	return lit, nil
}

// visitCaseExpr tells the simple form from the searched form by
// counting collected expressions against the ELSE keyword: one more
// expression than ELSE accounts for means a leading operand.
func (v *visitor) visitCaseExpr(cst *CaseExprCst) (ast.Expression, error) {
	if cst == nil {
		return nil, missing("case expression")
	}
	expr := &ast.CaseExpr{BaseNode: ast.BaseNode{Tag: ast.T_CaseExpr, Loc: cst.CaseTok.Pos}}
	exprs := cst.Exprs
	if len(exprs) > len(cst.ElseTok) {
		operand, err := v.visitExpr(exprs[0])
		if err != nil {
			return nil, err
		}
		expr.Operand = operand
		exprs = exprs[1:]
	}
	if len(cst.Whens) == 0 {
		return nil, missing("WHEN arm")
	}
	for _, w := range cst.Whens {
		when, err := v.visitCaseWhen(w)
		if err != nil {
			return nil, err
		}
		expr.Whens = append(expr.Whens, when)
	}
	if len(cst.ElseTok) > 0 {
		if len(exprs) == 0 {
			return nil, missing("ELSE expression")
		}
		els, err := v.visitExpr(exprs[len(exprs)-1])
		if err != nil {
			return nil, err
		}
		expr.Else = els
	}
	return expr, nil
}

func (v *visitor) visitCaseWhen(cst *CaseWhenCst) (*ast.CaseWhen, error) {
	if cst == nil {
		return nil, missing("WHEN arm")
	}
	when, err := v.visitExpr(cst.When)
	if err != nil {
		return nil, err
	}
	then, err := v.visitExpr(cst.Then)
	if err != nil {
		return nil, err
	}
	return &ast.CaseWhen{
		BaseNode: ast.BaseNode{Tag: ast.T_CaseWhen, Loc: cst.Pos()},
		When:     when,
		Then:     then,
	}, nil
}

func (v *visitor) visitCastFn(cst *CastFnCst) (ast.Expression, error) {
	value, err := v.visitExpr(cst.Value)
	if err != nil {
		return nil, err
	}
	typ, err := v.visitTypeName(cst.Type)
	if err != nil {
		return nil, err
	}
	return &ast.CastExpr{
		BaseNode: ast.BaseNode{Tag: ast.T_CastExpr, Loc: cst.CastTok.Pos},
		Value:    value,
		Type:     typ,
	}, nil
}

func (v *visitor) visitFunctionCall(cst *FunctionCallCst) (*ast.FunctionCall, error) {
	if cst == nil {
		return nil, missing("function call")
	}
	name, err := v.visitQualifiedName(cst.Name)
	if err != nil {
		return nil, err
	}
	call := ast.NewFunctionCall(name, nil, cst.Pos())
	call.Distinct = len(cst.DistinctTok) > 0
	call.Star = len(cst.StarTok) > 0
	call.FromSeparator = len(cst.FromTok) > 0
	call.IgnoreNulls = len(cst.IgnoreToks) > 0
	for _, arg := range cst.Args {
		e, err := v.visitExpr(arg)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, e)
	}
	if cst.Window != nil {
		spec, err := v.visitWindowSpec(cst.Window)
		if err != nil {
			return nil, err
		}
		call.Over = spec
	} else if len(cst.OverTok) > 0 {
		return nil, missing("window specification")
	}
	return call, nil
}

func (v *visitor) visitWindowSpec(cst *WindowSpecCst) (*ast.WindowSpec, error) {
	spec := &ast.WindowSpec{BaseNode: ast.BaseNode{Tag: ast.T_WindowSpec, Loc: cst.Pos()}}
	for _, e := range cst.PartitionBy {
		item, err := v.visitExpr(e)
		if err != nil {
			return nil, err
		}
		spec.PartitionBy = append(spec.PartitionBy, item)
	}
	if len(cst.PartitionToks) > 0 && len(spec.PartitionBy) == 0 {
		return nil, missing("partition key")
	}
	for _, o := range cst.OrderItems {
		item, err := v.visitOrderByItem(o)
		if err != nil {
			return nil, err
		}
		spec.OrderBy = append(spec.OrderBy, item)
	}
	if len(cst.OrderToks) > 0 && len(spec.OrderBy) == 0 {
		return nil, missing("sort key")
	}
	switch {
	case len(cst.RowsTok) > 0:
		spec.Frame = ast.FrameRows
	case len(cst.RangeTok) > 0:
		spec.Frame = ast.FrameRange
	case len(cst.GroupsTok) > 0:
		spec.Frame = ast.FrameGroups
	}
	if spec.Frame != ast.FrameNone {
		if len(cst.Bounds) == 0 {
			return nil, missing("frame bound")
		}
		start, err := v.visitFrameBound(cst.Bounds[0])
		if err != nil {
			return nil, err
		}
		spec.Start = start
		if len(cst.Bounds) > 1 {
			end, err := v.visitFrameBound(cst.Bounds[1])
			if err != nil {
				return nil, err
			}
			spec.End = end
		}
	}
	return spec, nil
}

func (v *visitor) visitFrameBound(cst *FrameBoundCst) (*ast.FrameBound, error) {
	if cst == nil {
		return nil, missing("frame bound")
	}
	bound := &ast.FrameBound{}
	switch {
	case len(cst.UnboundedTok) > 0 && len(cst.PrecedingTok) > 0:
		bound.Type = ast.BoundUnboundedPreceding
	case len(cst.UnboundedTok) > 0 && len(cst.FollowingTok) > 0:
		bound.Type = ast.BoundUnboundedFollowing
	case len(cst.CurrentTok) > 0:
		bound.Type = ast.BoundCurrentRow
	case cst.Value != nil && len(cst.PrecedingTok) > 0:
		bound.Type = ast.BoundPreceding
	case cst.Value != nil && len(cst.FollowingTok) > 0:
		bound.Type = ast.BoundFollowing
	default:
		return nil, missing("frame bound")
	}
	if cst.Value != nil {
		value, err := v.visitExpr(cst.Value)
		if err != nil {
			return nil, err
		}
		bound.Value = value
	}
	return bound, nil
}

// visitTypeName rebuilds a type from its raw precision tokens. The
// geohash precision form arrives as a number token directly abutting a
// unit identifier, like 8c, and stays text; everything else becomes a
// literal argument.
func (v *visitor) visitTypeName(cst *TypeNameCst) (*ast.TypeName, error) {
	if cst == nil {
		return nil, missing("type name")
	}
	typ := ast.NewTypeName(cst.Name.IdentValue(), cst.Pos())
	typ.ArrayDims = len(cst.BracketToks) / 2
	toks := cst.PrecisionToks
	if len(toks) == 2 && toks[0].Is(TokenNumber) && toks[1].IdentLike() &&
		toks[1].Pos == toks[0].Pos+len(toks[0].Text) {
		typ.Geohash = toks[0].Text + toks[1].Text
		return typ, nil
	}
	for _, tok := range toks {
		arg, err := precisionArg(tok)
		if err != nil {
			return nil, err
		}
		typ.Args = append(typ.Args, arg)
	}
	return typ, nil
}

func precisionArg(tok Token) (ast.Expression, error) {
	switch {
	case tok.Is(TokenNumber):
		return numberLiteral(tok)
	case tok.Is(TokenDuration):
		return durationLiteral(tok)
	case tok.Is(TokenString):
		return ast.NewStringLiteral(tok.Val, tok.Pos), nil
	case tok.IdentLike():
		name := ast.NewQualifiedName(tok.IdentValue())
		name.SetLocation(tok.Pos)
		return ast.NewColumnRef(name, tok.Pos), nil
	}
	return nil, fmt.Errorf("unexpected %s in type precision", tok.Kind)
}
