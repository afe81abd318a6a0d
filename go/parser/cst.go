/*
 * Concrete syntax tree produced by the grammar stage.
 *
 * Each grammar rule materializes as one struct: token fields keep the
 * matched tokens with their offsets, node fields keep sub-rule results.
 * Repeatable parts are flat slices on the rule that matched them, so a
 * rule that loops collects all iterations into the same field and the
 * visitor reassembles grouping from token offsets where needed.
 */

package parser

// CstNode is implemented by every grammar rule result.
type CstNode interface {
	// RuleName returns the grammar rule that produced this node.
	RuleName() string

	// Pos returns the byte offset of the rule's first token.
	Pos() int
}

// StatementCst is the CST of one parsed statement.
type StatementCst interface {
	CstNode
	statementCst()
}

// cstBase carries the start offset shared by all rule structs.
type cstBase struct {
	Start int
}

func (b cstBase) Pos() int {
	return b.Start
}

// ---------------------------------------------------------------------------
// Expression rules, one per precedence level from OR down to primary.
// ---------------------------------------------------------------------------

// ExpressionCst is the top expression rule: OR chains.
type ExpressionCst struct {
	cstBase
	Operands []*AndExprCst
	OrToks   []Token
}

func (*ExpressionCst) RuleName() string { return "expression" }

// AndExprCst is an AND chain.
type AndExprCst struct {
	cstBase
	Operands []*NotExprCst
	AndToks  []Token
}

func (*AndExprCst) RuleName() string { return "andExpression" }

// NotExprCst is a run of prefix NOTs over a comparison.
type NotExprCst struct {
	cstBase
	NotToks []Token
	Operand *EqExprCst
}

func (*NotExprCst) RuleName() string { return "notExpression" }

// EqExprCst is the equality and pattern-match level. The operator
// tokens live in one field per symbol; the visitor merges them back
// into source order by offset.
type EqExprCst struct {
	cstBase
	Operands    []*RelExprCst
	EqToks      []Token
	NeqToks     []Token
	LikeToks    []Token
	IlikeToks   []Token
	TildeToks   []Token
	NotTildeTks []Token
	TildeEqToks []Token
}

func (*EqExprCst) RuleName() string { return "equalityExpression" }

// IsNullSuffixCst is a postfix IS [NOT] NULL.
type IsNullSuffixCst struct {
	cstBase
	IsTok   Token
	NotToks []Token
	NullTok Token
}

func (*IsNullSuffixCst) RuleName() string { return "isNullSuffix" }

// RelExprCst is the relational level, which also owns postfix
// IS [NOT] NULL.
type RelExprCst struct {
	cstBase
	Operands []*MembershipExprCst
	LtToks   []Token
	LeToks   []Token
	GtToks   []Token
	GeToks   []Token
	IsNulls  []*IsNullSuffixCst
}

func (*RelExprCst) RuleName() string { return "relationalExpression" }

// InSuffixCst is the tail of value [NOT] IN (...).
type InSuffixCst struct {
	cstBase
	InTok    Token
	Items    []*ExpressionCst
	Subquery *SelectStmtCst
}

func (*InSuffixCst) RuleName() string { return "inSuffix" }

// BetweenSuffixCst is the tail of value [NOT] BETWEEN low AND high.
// The bounds parse one level down so the AND separator stays
// unambiguous.
type BetweenSuffixCst struct {
	cstBase
	BetweenTok Token
	Low        *BitOrExprCst
	AndTok     Token
	High       *BitOrExprCst
}

func (*BetweenSuffixCst) RuleName() string { return "betweenSuffix" }

// WithinSuffixCst is the tail of value WITHIN(args).
type WithinSuffixCst struct {
	cstBase
	WithinTok Token
	Args      []*ExpressionCst
}

func (*WithinSuffixCst) RuleName() string { return "withinSuffix" }

// MembershipExprCst is the IN/BETWEEN/WITHIN level. At most one suffix
// applies to the operand.
type MembershipExprCst struct {
	cstBase
	Operand *BitOrExprCst
	NotToks []Token
	In      *InSuffixCst
	Between *BetweenSuffixCst
	Within  *WithinSuffixCst
}

func (*MembershipExprCst) RuleName() string { return "membershipExpression" }

// BitOrExprCst is a | chain.
type BitOrExprCst struct {
	cstBase
	Operands []*BitXorExprCst
	Ops      []Token
}

func (*BitOrExprCst) RuleName() string { return "bitOrExpression" }

// BitXorExprCst is a ^ chain.
type BitXorExprCst struct {
	cstBase
	Operands []*BitAndExprCst
	Ops      []Token
}

func (*BitXorExprCst) RuleName() string { return "bitXorExpression" }

// BitAndExprCst is a & chain.
type BitAndExprCst struct {
	cstBase
	Operands []*ConcatExprCst
	Ops      []Token
}

func (*BitAndExprCst) RuleName() string { return "bitAndExpression" }

// ConcatExprCst is a || chain.
type ConcatExprCst struct {
	cstBase
	Operands []*Ipv4ExprCst
	Ops      []Token
}

func (*ConcatExprCst) RuleName() string { return "concatExpression" }

// Ipv4ExprCst is the IPv4 containment level: << <<= >> >>=.
type Ipv4ExprCst struct {
	cstBase
	Operands    []*AddExprCst
	LShiftToks  []Token
	LShiftEqTks []Token
	RShiftToks  []Token
	RShiftEqTks []Token
}

func (*Ipv4ExprCst) RuleName() string { return "ipv4Expression" }

// AddExprCst is the additive level. Plus and minus collect separately;
// source order is restored from offsets when folding.
type AddExprCst struct {
	cstBase
	Operands  []*MulExprCst
	PlusToks  []Token
	MinusToks []Token
}

func (*AddExprCst) RuleName() string { return "additiveExpression" }

// MulExprCst is the multiplicative level.
type MulExprCst struct {
	cstBase
	Operands    []*UnaryExprCst
	StarToks    []Token
	SlashToks   []Token
	PercentToks []Token
}

func (*MulExprCst) RuleName() string { return "multiplicativeExpression" }

// UnaryExprCst is a run of prefix minus or complement operators.
type UnaryExprCst struct {
	cstBase
	MinusToks []Token
	TildeToks []Token
	Operand   *PostfixExprCst
}

func (*UnaryExprCst) RuleName() string { return "unaryExpression" }

// PostfixExprCst owns the ::cast and [subscript] postfix forms. All
// bracket pairs of a chain collect flat into the same fields; the
// visitor pairs each subscript and colon with its brackets by offset.
type PostfixExprCst struct {
	cstBase
	Primary    *PrimaryExprCst
	CastToks   []Token
	CastTypes  []*TypeNameCst
	LBrackets  []Token
	RBrackets  []Token
	Subscripts []*ExpressionCst
	Colons     []Token
}

func (*PostfixExprCst) RuleName() string { return "postfixExpression" }

// PrimaryExprCst is the primary level. Exactly one alternative is
// populated; parenthesized input fills ParenExprs, which reads as a
// grouping for one element and a tuple for several.
type PrimaryExprCst struct {
	cstBase
	NumberTok   []Token
	StringTok   []Token
	DurationTok []Token
	GeohashTok  []Token
	VariableTok []Token
	TrueTok     []Token
	FalseTok    []Token
	NullTok     []Token
	Case        *CaseExprCst
	CastFn      *CastFnCst
	Func        *FunctionCallCst
	Column      *ColumnRefCst
	Array       *ArrayLiteralCst
	LParen      []Token
	ParenExprs  []*ExpressionCst
	RParen      []Token
	Subquery    *SelectStmtCst
}

func (*PrimaryExprCst) RuleName() string { return "primaryExpression" }

// CaseExprCst is a CASE expression. The optional leading operand and
// the optional ELSE expression collect into the shared Exprs field;
// the visitor tells the simple form from the searched form by counting
// them against the ELSE keyword's presence.
type CaseExprCst struct {
	cstBase
	CaseTok Token
	Exprs   []*ExpressionCst
	Whens   []*CaseWhenCst
	ElseTok []Token
	EndTok  Token
}

func (*CaseExprCst) RuleName() string { return "caseExpression" }

// CaseWhenCst is one WHEN/THEN arm.
type CaseWhenCst struct {
	cstBase
	WhenTok Token
	When    *ExpressionCst
	ThenTok Token
	Then    *ExpressionCst
}

func (*CaseWhenCst) RuleName() string { return "whenClause" }

// CastFnCst is the functional cast CAST(value AS type).
type CastFnCst struct {
	cstBase
	CastTok Token
	Value   *ExpressionCst
	AsTok   Token
	Type    *TypeNameCst
}

func (*CastFnCst) RuleName() string { return "castFunction" }

// FunctionCallCst is a function invocation with its aggregate and
// window modifiers.
type FunctionCallCst struct {
	cstBase
	Name        *QualifiedNameCst
	LParen      Token
	DistinctTok []Token
	StarTok     []Token
	Args        []*ExpressionCst
	FromTok     []Token
	RParen      []Token
	IgnoreToks  []Token
	RespectToks []Token
	NullsToks   []Token
	OverTok     []Token
	Window      *WindowSpecCst
}

func (*FunctionCallCst) RuleName() string { return "functionCall" }

// ColumnRefCst is a possibly qualified column reference; StarTok marks
// the t.* form.
type ColumnRefCst struct {
	cstBase
	Parts   []Token
	StarTok []Token
}

func (*ColumnRefCst) RuleName() string { return "columnRef" }

// ArrayLiteralCst is an ARRAY[...] constructor.
type ArrayLiteralCst struct {
	cstBase
	ArrayTok Token
	Items    []*ExpressionCst
}

func (*ArrayLiteralCst) RuleName() string { return "arrayLiteral" }

// FrameBoundCst is one window frame bound.
type FrameBoundCst struct {
	cstBase
	UnboundedTok []Token
	CurrentTok   []Token
	PrecedingTok []Token
	FollowingTok []Token
	RowTok       []Token
	Value        *ExpressionCst
}

func (*FrameBoundCst) RuleName() string { return "frameBound" }

// WindowSpecCst is the parenthesized window definition after OVER.
type WindowSpecCst struct {
	cstBase
	PartitionToks []Token
	PartitionBy   []*ExpressionCst
	OrderToks     []Token
	OrderItems    []*OrderByItemCst
	RowsTok       []Token
	RangeTok      []Token
	GroupsTok     []Token
	BetweenTok    []Token
	Bounds        []*FrameBoundCst
}

func (*WindowSpecCst) RuleName() string { return "windowSpecification" }

// TypeNameCst names a type with optional precision arguments, geohash
// precision (a number token glued to a unit identifier) and [] array
// dimension pairs.
type TypeNameCst struct {
	cstBase
	Name          Token
	PrecisionToks []Token
	BracketToks   []Token
}

func (*TypeNameCst) RuleName() string { return "typeName" }

// QualifiedNameCst is a dot-separated name path. Parts holds the
// identifier-like tokens, including single-quoted strings accepted in
// name position.
type QualifiedNameCst struct {
	cstBase
	Parts []Token
}

func (*QualifiedNameCst) RuleName() string { return "qualifiedName" }
