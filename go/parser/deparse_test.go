/*
 * Round-trip tests: the serialized form of every statement family must
 * reparse cleanly to the same node type and reach a fixpoint after one
 * pass. Grouping survives through ParenExpr nodes only; the serializer
 * itself never synthesizes parentheses.
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronoql/chronoql/go/parser/ast"
)

func TestRoundTripStability(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"from-first latest by", "trades latest by sym"},
		{"sample by full", "SELECT sym, avg(price) FROM trades SAMPLE BY 5m " +
			"FROM '2024-01-01' TO '2024-02-01' FILL(NULL, PREV) " +
			"ALIGN TO CALENDAR TIME ZONE 'Europe/Berlin' WITH OFFSET '00:30'"},
		{"align to first observation", "SELECT avg(price) FROM trades SAMPLE BY 1h ALIGN TO FIRST OBSERVATION"},
		{"latest on", "SELECT * FROM trades LATEST ON ts PARTITION BY sym, venue"},
		{"asof join tolerance", "SELECT * FROM trades ASOF JOIN quotes TOLERANCE 2s"},
		{"lt join", "SELECT * FROM trades LT JOIN quotes ON trades.sym = quotes.sym"},
		{"splice join", "SELECT * FROM trades SPLICE JOIN quotes ON sym"},
		{"window join", "SELECT * FROM trades WINDOW JOIN quotes RANGE BETWEEN -5m AND 5m ON sym"},
		{"pivot", "(SELECT sym, side, price FROM trades) PIVOT (avg(price) FOR side IN ('buy', 'sell'))"},
		{"set operations", "SELECT a FROM t EXCEPT SELECT a FROM u INTERSECT SELECT a FROM v"},
		{"union all", "SELECT 1 UNION SELECT 2 UNION ALL SELECT 3"},
		{"ctes", "WITH recent AS (SELECT * FROM trades LIMIT 100), tops AS (SELECT * FROM recent) SELECT * FROM tops"},
		{"distinct order limit", "SELECT DISTINCT sym FROM trades ORDER BY sym DESC LIMIT 10"},
		{"case expression", "SELECT CASE WHEN price > 100 THEN 'hi' ELSE 'lo' END FROM trades"},
		{"insert values", "INSERT INTO trades (ts, sym, price) VALUES (0, 'A', 1.5), (1, 'B', 2.5)"},
		{"insert tuned", "INSERT ATOMIC BATCH 10000 O3MAXLAG 5m INTO trades VALUES (1)"},
		{"insert select", "INSERT INTO archive SELECT * FROM trades WHERE ts < '2024-01-01'"},
		{"update", "UPDATE trades SET price = 1.5, qty = qty + 1 WHERE sym = 'A'"},
		{"update from join", "UPDATE spreads s SET spread = q.ask - q.bid " +
			"FROM quotes q JOIN instruments i ON q.sym = i.sym WHERE s.sym = q.sym"},
		{"create table", "CREATE TABLE t (ts TIMESTAMP, x DOUBLE) TIMESTAMP(ts) PARTITION BY DAY WAL"},
		{"create table as select", "CREATE TABLE pop AS (SELECT * FROM raw), " +
			"CAST(price AS DOUBLE), INDEX(sym CAPACITY 128) TIMESTAMP(ts)"},
		{"quoted volume", "CREATE TABLE t (x LONG) IN VOLUME 'fast disk'"},
		{"alter table", "ALTER TABLE trades ADD COLUMN vwap DOUBLE"},
		{"mat view", "CREATE MATERIALIZED VIEW v AS (SELECT ts, avg(price) FROM trades SAMPLE BY 1h) PARTITION BY DAY"},
		{"drop", "DROP TABLE IF EXISTS trades"},
		{"reindex", "REINDEX TABLE trades COLUMN sym PARTITION '2024-01' LOCK EXCLUSIVE"},
		{"copy", "COPY weather FROM 'weather.csv' WITH HEADER TRUE"},
		{"grant", "GRANT SELECT ON trades TO alice"},
		{"alter user token", "ALTER USER alice CREATE TOKEN TYPE REST WITH TTL 30d REFRESH"},
		{"show", "SHOW PARTITIONS FROM trades"},
		{"explain", "EXPLAIN (FORMAT JSON) SELECT 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, errs := ParseToAST(tt.sql)
			require.Empty(t, errs)
			require.Len(t, first, 1)

			out := first[0].SqlString()
			second, errs := ParseToAST(out)
			require.Empty(t, errs, "serialized form must reparse: %s", out)
			require.Len(t, second, 1)
			assert.Equal(t, first[0].NodeTag(), second[0].NodeTag())
			assert.Equal(t, out, second[0].SqlString(), "one pass reaches the fixpoint")
		})
	}
}

func TestExplicitGroupingSurvives(t *testing.T) {
	expr := parseExpr(t, "(a + b) * c")
	mul, ok := expr.(*ast.BinaryExpr)
	require.True(t, ok, "expected BinaryExpr, got %T", expr)
	_, ok = mul.Left.(*ast.ParenExpr)
	require.True(t, ok, "source parens become a ParenExpr node")
	assert.Equal(t, "(a + b) * c", mul.SqlString())
}

func TestSerializerAddsNoParens(t *testing.T) {
	a := ast.NewColumnRef(ast.NewQualifiedName("a"), -1)
	b := ast.NewColumnRef(ast.NewQualifiedName("b"), -1)
	c := ast.NewColumnRef(ast.NewQualifiedName("c"), -1)

	sum := ast.NewBinaryExpr("+", a, b, -1)
	mul := ast.NewBinaryExpr("*", sum, c, -1)
	assert.Equal(t, "a + b * c", mul.SqlString(), "no grouping without a ParenExpr")

	grouped := ast.NewBinaryExpr("*", ast.NewParenExpr(sum, -1), c, -1)
	assert.Equal(t, "(a + b) * c", grouped.SqlString())
}
