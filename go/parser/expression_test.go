/*
 * Expression lowering tests. Operator chains are folded by source
 * offset, so these mostly assert tree shape: which operator ends up at
 * the root and how prefixes, postfixes and membership suffixes nest.
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronoql/chronoql/go/parser/ast"
)

// parseExpr parses a single projection expression.
func parseExpr(t *testing.T, expr string) ast.Expression {
	t.Helper()
	asts, errs := ParseToAST("SELECT " + expr)
	require.Empty(t, errs, "parse errors for %q", expr)
	require.Len(t, asts, 1)
	sel, ok := asts[0].(*ast.SelectStmt)
	require.True(t, ok)
	require.Len(t, sel.Columns, 1)
	return sel.Columns[0].Expr
}

func binary(t *testing.T, e ast.Expression) *ast.BinaryExpr {
	t.Helper()
	b, ok := e.(*ast.BinaryExpr)
	require.True(t, ok, "expected BinaryExpr, got %T", e)
	return b
}

func number(t *testing.T, e ast.Expression) *ast.NumberLiteral {
	t.Helper()
	n, ok := e.(*ast.NumberLiteral)
	require.True(t, ok, "expected NumberLiteral, got %T", e)
	return n
}

func TestExprPrecedence(t *testing.T) {
	t.Run("multiplication over addition", func(t *testing.T) {
		root := binary(t, parseExpr(t, "2 + 3 * 4"))
		assert.Equal(t, "+", root.Op)
		assert.Equal(t, "2", number(t, root.Left).Raw)
		assert.Equal(t, "*", binary(t, root.Right).Op)
	})

	t.Run("addition folds in source order", func(t *testing.T) {
		root := binary(t, parseExpr(t, "5 - 3 + 1"))
		assert.Equal(t, "+", root.Op)
		left := binary(t, root.Left)
		assert.Equal(t, "-", left.Op)
		assert.Equal(t, "5", number(t, left.Left).Raw)
		assert.Equal(t, "3", number(t, left.Right).Raw)
		assert.Equal(t, "1", number(t, root.Right).Raw)
	})

	t.Run("AND over OR", func(t *testing.T) {
		root := binary(t, parseExpr(t, "a OR b AND c"))
		assert.Equal(t, "OR", root.Op)
		assert.Equal(t, "AND", binary(t, root.Right).Op)
	})

	t.Run("bitwise and over or", func(t *testing.T) {
		root := binary(t, parseExpr(t, "a | b & c"))
		assert.Equal(t, "|", root.Op)
		assert.Equal(t, "&", binary(t, root.Right).Op)
	})

	t.Run("concat over bitwise and", func(t *testing.T) {
		root := binary(t, parseExpr(t, "a & b || c"))
		assert.Equal(t, "&", root.Op)
		assert.Equal(t, "||", binary(t, root.Right).Op)
	})

	t.Run("addition over shift", func(t *testing.T) {
		root := binary(t, parseExpr(t, "1 + 2 << 3"))
		assert.Equal(t, "<<", root.Op)
		assert.Equal(t, "+", binary(t, root.Left).Op)
	})

	t.Run("comparison over equality", func(t *testing.T) {
		root := binary(t, parseExpr(t, "a = b < c"))
		assert.Equal(t, "=", root.Op)
		assert.Equal(t, "<", binary(t, root.Right).Op)
	})

	t.Run("NOT over equality", func(t *testing.T) {
		root, ok := parseExpr(t, "NOT a = b").(*ast.UnaryExpr)
		require.True(t, ok)
		assert.Equal(t, "NOT", root.Op)
		assert.Equal(t, "=", binary(t, root.Operand).Op)
	})

	t.Run("unary minus over multiplication", func(t *testing.T) {
		root := binary(t, parseExpr(t, "-x * y"))
		assert.Equal(t, "*", root.Op)
		neg, ok := root.Left.(*ast.UnaryExpr)
		require.True(t, ok)
		assert.Equal(t, "-", neg.Op)
	})
}

func TestExprNotStacking(t *testing.T) {
	outer, ok := parseExpr(t, "NOT NOT flag").(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, "NOT", outer.Op)
	inner, ok := outer.Operand.(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, "NOT", inner.Op)
	_, ok = inner.Operand.(*ast.ColumnRef)
	assert.True(t, ok)
}

// Both spellings of not-equal survive to the AST and back out.
func TestExprNotEqualSpelling(t *testing.T) {
	assert.Equal(t, "!=", binary(t, parseExpr(t, "a != b")).Op)
	assert.Equal(t, "<>", binary(t, parseExpr(t, "a <> b")).Op)
	assert.Equal(t, "a <> b", parseExpr(t, "a <> b").SqlString())
}

func TestExprIsNull(t *testing.T) {
	e, ok := parseExpr(t, "price IS NULL").(*ast.IsNullExpr)
	require.True(t, ok)
	assert.False(t, e.Not)

	e, ok = parseExpr(t, "price IS NOT NULL").(*ast.IsNullExpr)
	require.True(t, ok)
	assert.True(t, e.Not)

	// The null test applies to whatever precedes it in source, here the
	// whole comparison.
	e, ok = parseExpr(t, "a < b IS NULL").(*ast.IsNullExpr)
	require.True(t, ok)
	assert.Equal(t, "<", binary(t, e.Value).Op)

	root := binary(t, parseExpr(t, "a IS NULL OR b IS NOT NULL"))
	assert.Equal(t, "OR", root.Op)
	_, ok = root.Left.(*ast.IsNullExpr)
	assert.True(t, ok)
}

func TestExprMembership(t *testing.T) {
	t.Run("in list", func(t *testing.T) {
		e, ok := parseExpr(t, "side IN ('buy', 'sell')").(*ast.InExpr)
		require.True(t, ok)
		assert.False(t, e.Not)
		require.Len(t, e.List, 2)
	})

	t.Run("not in", func(t *testing.T) {
		e, ok := parseExpr(t, "side NOT IN ('buy')").(*ast.InExpr)
		require.True(t, ok)
		assert.True(t, e.Not)
	})

	t.Run("prefix not wraps the whole test", func(t *testing.T) {
		u, ok := parseExpr(t, "NOT side IN ('buy')").(*ast.UnaryExpr)
		require.True(t, ok)
		_, ok = u.Operand.(*ast.InExpr)
		assert.True(t, ok)
	})

	t.Run("parenless interval form", func(t *testing.T) {
		e, ok := parseExpr(t, "ts IN '2024-01'").(*ast.InExpr)
		require.True(t, ok)
		require.Len(t, e.List, 1)
		s, ok := e.List[0].(*ast.StringLiteral)
		require.True(t, ok)
		assert.Equal(t, "2024-01", s.Value)
	})

	t.Run("in subquery", func(t *testing.T) {
		e, ok := parseExpr(t, "sym IN (SELECT sym FROM watchlist)").(*ast.InExpr)
		require.True(t, ok)
		require.Len(t, e.List, 1)
		_, ok = e.List[0].(*ast.SubqueryExpr)
		assert.True(t, ok)
	})

	t.Run("between", func(t *testing.T) {
		e, ok := parseExpr(t, "price BETWEEN 1 AND 10").(*ast.BetweenExpr)
		require.True(t, ok)
		assert.False(t, e.Not)
		assert.Equal(t, "1", number(t, e.Low).Raw)
		assert.Equal(t, "10", number(t, e.High).Raw)

		e, ok = parseExpr(t, "price NOT BETWEEN 1 AND 10").(*ast.BetweenExpr)
		require.True(t, ok)
		assert.True(t, e.Not)
	})

	t.Run("between binds tighter than AND", func(t *testing.T) {
		root := binary(t, parseExpr(t, "x BETWEEN 1 AND 2 AND ok"))
		assert.Equal(t, "AND", root.Op)
		_, ok := root.Left.(*ast.BetweenExpr)
		assert.True(t, ok)
	})

	t.Run("within", func(t *testing.T) {
		e, ok := parseExpr(t, "geo WITHIN(#u33, #u34)").(*ast.WithinExpr)
		require.True(t, ok)
		require.Len(t, e.Args, 2)
	})
}

func TestExprPostfix(t *testing.T) {
	t.Run("cast operator", func(t *testing.T) {
		e, ok := parseExpr(t, "price::long").(*ast.TypeCastExpr)
		require.True(t, ok)
		assert.Equal(t, "long", e.Type.Name)
	})

	t.Run("chained casts", func(t *testing.T) {
		outer, ok := parseExpr(t, "x::symbol::string").(*ast.TypeCastExpr)
		require.True(t, ok)
		assert.Equal(t, "string", outer.Type.Name)
		inner, ok := outer.Value.(*ast.TypeCastExpr)
		require.True(t, ok)
		assert.Equal(t, "symbol", inner.Type.Name)
	})

	t.Run("subscript after cast", func(t *testing.T) {
		// long[1] is a subscript on the cast result, not an array type.
		acc, ok := parseExpr(t, "x::long[1]").(*ast.ArrayAccess)
		require.True(t, ok)
		require.Len(t, acc.Subscripts, 1)
		cast, ok := acc.Array.(*ast.TypeCastExpr)
		require.True(t, ok)
		assert.Equal(t, 0, cast.Type.ArrayDims)
	})

	t.Run("cast to array type", func(t *testing.T) {
		e, ok := parseExpr(t, "x::double[]").(*ast.TypeCastExpr)
		require.True(t, ok)
		assert.Equal(t, 1, e.Type.ArrayDims)
	})

	t.Run("subscript", func(t *testing.T) {
		acc, ok := parseExpr(t, "arr[0]").(*ast.ArrayAccess)
		require.True(t, ok)
		require.Len(t, acc.Subscripts, 1)
	})

	t.Run("multi subscript", func(t *testing.T) {
		acc, ok := parseExpr(t, "m[1, 2]").(*ast.ArrayAccess)
		require.True(t, ok)
		require.Len(t, acc.Subscripts, 2)
	})

	t.Run("nested subscripts", func(t *testing.T) {
		outer, ok := parseExpr(t, "m[1][2]").(*ast.ArrayAccess)
		require.True(t, ok)
		_, ok = outer.Array.(*ast.ArrayAccess)
		assert.True(t, ok)
	})

	t.Run("slices", func(t *testing.T) {
		s, ok := parseExpr(t, "a[1:5]").(*ast.ArraySlice)
		require.True(t, ok)
		assert.NotNil(t, s.From)
		assert.NotNil(t, s.To)

		s, ok = parseExpr(t, "a[:5]").(*ast.ArraySlice)
		require.True(t, ok)
		assert.Nil(t, s.From)
		assert.NotNil(t, s.To)

		s, ok = parseExpr(t, "a[1:]").(*ast.ArraySlice)
		require.True(t, ok)
		assert.NotNil(t, s.From)
		assert.Nil(t, s.To)
	})
}

func TestExprCase(t *testing.T) {
	searched, ok := parseExpr(t, "CASE WHEN a THEN 1 WHEN b THEN 2 ELSE 3 END").(*ast.CaseExpr)
	require.True(t, ok)
	assert.Nil(t, searched.Operand)
	require.Len(t, searched.Whens, 2)
	require.NotNil(t, searched.Else)

	simple, ok := parseExpr(t, "CASE side WHEN 'buy' THEN 1 END").(*ast.CaseExpr)
	require.True(t, ok)
	require.NotNil(t, simple.Operand)
	require.Len(t, simple.Whens, 1)
	assert.Nil(t, simple.Else)
}

func TestExprCastFunction(t *testing.T) {
	e, ok := parseExpr(t, "CAST(price AS long)").(*ast.CastExpr)
	require.True(t, ok)
	assert.Equal(t, "long", e.Type.Name)

	e, ok = parseExpr(t, "CAST(g AS GEOHASH(8c))").(*ast.CastExpr)
	require.True(t, ok)
	assert.Equal(t, "8c", e.Type.Geohash)
	assert.Equal(t, "GEOHASH(8c)", e.Type.SqlString())

	e, ok = parseExpr(t, "CAST(xs AS DOUBLE[][])").(*ast.CastExpr)
	require.True(t, ok)
	assert.Equal(t, 2, e.Type.ArrayDims)
	assert.Equal(t, "DOUBLE[][]", e.Type.SqlString())
}

func TestExprFunctions(t *testing.T) {
	t.Run("star argument", func(t *testing.T) {
		f, ok := parseExpr(t, "count(*)").(*ast.FunctionCall)
		require.True(t, ok)
		assert.True(t, f.Star)
		assert.Empty(t, f.Args)
	})

	t.Run("distinct", func(t *testing.T) {
		f, ok := parseExpr(t, "count(DISTINCT sym)").(*ast.FunctionCall)
		require.True(t, ok)
		assert.True(t, f.Distinct)
		require.Len(t, f.Args, 1)
	})

	t.Run("from separator", func(t *testing.T) {
		f, ok := parseExpr(t, "extract(hour FROM ts)").(*ast.FunctionCall)
		require.True(t, ok)
		assert.True(t, f.FromSeparator)
		require.Len(t, f.Args, 2)
		assert.Equal(t, "extract(hour FROM ts)", f.SqlString())
	})

	t.Run("plain arguments", func(t *testing.T) {
		f, ok := parseExpr(t, "to_timezone(ts, 'Europe/Berlin')").(*ast.FunctionCall)
		require.True(t, ok)
		require.Len(t, f.Args, 2)
		assert.False(t, f.FromSeparator)
	})

	t.Run("window with frame", func(t *testing.T) {
		f, ok := parseExpr(t,
			"avg(price) OVER (PARTITION BY sym ORDER BY ts ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)").(*ast.FunctionCall)
		require.True(t, ok)
		require.NotNil(t, f.Over)
		require.Len(t, f.Over.PartitionBy, 1)
		require.Len(t, f.Over.OrderBy, 1)
		assert.Equal(t, ast.FrameRows, f.Over.Frame)
		require.NotNil(t, f.Over.Start)
		assert.Equal(t, ast.BoundUnboundedPreceding, f.Over.Start.Type)
		require.NotNil(t, f.Over.End)
		assert.Equal(t, ast.BoundCurrentRow, f.Over.End.Type)
	})

	t.Run("range frame with duration bound", func(t *testing.T) {
		f, ok := parseExpr(t,
			"sum(qty) OVER (ORDER BY ts RANGE BETWEEN 5m PRECEDING AND CURRENT ROW)").(*ast.FunctionCall)
		require.True(t, ok)
		assert.Equal(t, ast.FrameRange, f.Over.Frame)
		require.NotNil(t, f.Over.Start)
		assert.Equal(t, ast.BoundPreceding, f.Over.Start.Type)
		d, ok := f.Over.Start.Value.(*ast.DurationLiteral)
		require.True(t, ok)
		assert.Equal(t, "5m", d.Raw)
	})

	t.Run("ignore nulls", func(t *testing.T) {
		f, ok := parseExpr(t,
			"first_value(price) IGNORE NULLS OVER (PARTITION BY sym)").(*ast.FunctionCall)
		require.True(t, ok)
		assert.True(t, f.IgnoreNulls)
		require.NotNil(t, f.Over)
	})
}

func TestExprLiterals(t *testing.T) {
	t.Run("long suffix stays exact only when needed", func(t *testing.T) {
		n := number(t, parseExpr(t, "42L"))
		assert.True(t, n.Long)
		assert.Empty(t, n.Exact, "small longs fit a double exactly")
		assert.Equal(t, float64(42), n.Val)
		assert.Equal(t, float64(42), n.Value())

		n = number(t, parseExpr(t, "9223372036854775807L"))
		assert.True(t, n.Long)
		assert.Equal(t, "9223372036854775807", n.Exact)
		assert.Equal(t, "9223372036854775807", n.Value())
		assert.Equal(t, "9223372036854775807L", n.SqlString())
	})

	t.Run("long overflow keeps digits", func(t *testing.T) {
		n := number(t, parseExpr(t, "9223372036854775808L"))
		assert.Equal(t, "9223372036854775808", n.Exact)
	})

	t.Run("decimal suffix", func(t *testing.T) {
		n := number(t, parseExpr(t, "1_000m"))
		assert.True(t, n.Decimal)
		assert.Equal(t, float64(1000), n.Val)
		assert.Equal(t, "1_000m", n.Raw, "raw keeps separators and suffix")
	})

	t.Run("durations", func(t *testing.T) {
		d, ok := parseExpr(t, "5m").(*ast.DurationLiteral)
		require.True(t, ok)
		assert.Equal(t, float64(5), d.Magnitude)
		assert.Equal(t, "m", d.Unit)

		d, ok = parseExpr(t, "1.5d").(*ast.DurationLiteral)
		require.True(t, ok)
		assert.Equal(t, 1.5, d.Magnitude)
		assert.Equal(t, "d", d.Unit)
	})

	t.Run("booleans and null", func(t *testing.T) {
		b, ok := parseExpr(t, "TRUE").(*ast.BooleanLiteral)
		require.True(t, ok)
		assert.True(t, b.Value)

		b, ok = parseExpr(t, "false").(*ast.BooleanLiteral)
		require.True(t, ok)
		assert.False(t, b.Value)

		_, ok = parseExpr(t, "NULL").(*ast.NullLiteral)
		assert.True(t, ok)
	})

	t.Run("geohash", func(t *testing.T) {
		g, ok := parseExpr(t, "#u33d8b1").(*ast.GeohashLiteral)
		require.True(t, ok)
		assert.False(t, g.Binary)
		assert.Equal(t, "#u33d8b1", g.Raw)

		g, ok = parseExpr(t, "##10110").(*ast.GeohashLiteral)
		require.True(t, ok)
		assert.True(t, g.Binary)
	})

	t.Run("bind variable", func(t *testing.T) {
		v, ok := parseExpr(t, "@from_ts").(*ast.VariableRef)
		require.True(t, ok)
		assert.Equal(t, "from_ts", v.Name)
		assert.Equal(t, "@from_ts", v.SqlString())
	})
}

func TestExprGrouping(t *testing.T) {
	root := binary(t, parseExpr(t, "(1 + 2) * 3"))
	assert.Equal(t, "*", root.Op)
	paren, ok := root.Left.(*ast.ParenExpr)
	require.True(t, ok)
	assert.Equal(t, "+", binary(t, paren.Inner).Op)
	assert.Equal(t, "(1 + 2) * 3", root.SqlString())

	tuple, ok := parseExpr(t, "(1, 2, 3)").(*ast.TupleExpr)
	require.True(t, ok)
	require.Len(t, tuple.Items, 3)

	sub, ok := parseExpr(t, "(SELECT max(ts) FROM trades)").(*ast.SubqueryExpr)
	require.True(t, ok)
	require.NotNil(t, sub.Query)
}

func TestExprArrayLiteral(t *testing.T) {
	arr, ok := parseExpr(t, "ARRAY[1, 2, 3]").(*ast.ArrayLiteral)
	require.True(t, ok)
	require.Len(t, arr.Items, 3)
	assert.Equal(t, "ARRAY[1, 2, 3]", arr.SqlString())

	arr, ok = parseExpr(t, "ARRAY[]").(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Empty(t, arr.Items)
}

func TestExprColumnRefs(t *testing.T) {
	c, ok := parseExpr(t, "price").(*ast.ColumnRef)
	require.True(t, ok)
	assert.False(t, c.Star)
	assert.Equal(t, "price", c.SqlString())

	c, ok = parseExpr(t, "trades.price").(*ast.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, "trades.price", c.SqlString())

	c, ok = parseExpr(t, "t.*").(*ast.ColumnRef)
	require.True(t, ok)
	assert.True(t, c.Star)
	assert.Equal(t, "t.*", c.SqlString())
}

// Quoted identifiers keep their exact content through lowering.
func TestExprQuotedIdentifier(t *testing.T) {
	c, ok := parseExpr(t, `"weird name"`).(*ast.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, `"weird name"`, c.SqlString())

	// A quoted reserved word is an identifier, not a keyword.
	c, ok = parseExpr(t, `"select"`).(*ast.ColumnRef)
	require.True(t, ok)
	assert.Equal(t, `"select"`, c.SqlString())
}
