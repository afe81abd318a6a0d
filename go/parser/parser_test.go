/*
 * Tests for the public parse entry points: statement splitting, error
 * recovery and the partial-result contract. A statement reaches the AST
 * whenever its required slots were filled before the first failure, so
 * callers always get every diagnostic plus every usable statement.
 */

package parser

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronoql/chronoql/go/parser/ast"
)

func TestParseSingleStatement(t *testing.T) {
	stmts, errs := Parse("SELECT 1")
	require.Empty(t, errs)
	require.Len(t, stmts, 1)

	asts, errs := ParseToAST("SELECT 1")
	require.Empty(t, errs)
	require.Len(t, asts, 1)
	assert.Equal(t, ast.T_SelectStmt, asts[0].NodeTag())
}

func TestParseEmptyStatements(t *testing.T) {
	for _, sql := range []string{"", ";", ";;;", "  ;\n;  "} {
		stmts, errs := Parse(sql)
		assert.Empty(t, stmts, "input %q", sql)
		assert.Empty(t, errs, "input %q", sql)
	}
}

func TestParseMultipleStatements(t *testing.T) {
	asts, errs := ParseToAST("SELECT 1; INSERT INTO t VALUES (1); DROP TABLE t")
	require.Empty(t, errs)
	require.Len(t, asts, 3)
	assert.Equal(t, ast.T_SelectStmt, asts[0].NodeTag())
	assert.Equal(t, ast.T_InsertStmt, asts[1].NodeTag())
	assert.Equal(t, ast.T_DropTableStmt, asts[2].NodeTag())
}

// A failure inside one statement must not take down its neighbors.
func TestParseRecoveryIsolatesStatement(t *testing.T) {
	asts, errs := ParseToAST("SELECT 1; ))); SELECT 2")
	require.Len(t, errs, 1)
	assert.Equal(t, ErrorSyntax, errs[0].Class)
	require.Len(t, asts, 2)
	assert.Equal(t, ast.T_SelectStmt, asts[0].NodeTag())
	assert.Equal(t, ast.T_SelectStmt, asts[1].NodeTag())
}

// WHERE with no expression leaves a hole in a required slot, so the
// statement is reported and dropped from the AST while its partial CST
// is still returned.
func TestParseDropsStatementWithUnfilledSlot(t *testing.T) {
	stmts, errs := Parse("SELECT * FROM t WHERE")
	require.Len(t, errs, 1)
	assert.True(t, errs[0].AtEOF)
	require.Len(t, stmts, 1, "partial CST survives the failure")

	asts, errs := ParseToAST("SELECT * FROM t WHERE")
	require.Len(t, errs, 1)
	assert.Empty(t, asts, "statement with a missing filter does not lower")
}

// Trailing junk after a complete statement is a syntax error, but the
// statement itself already parsed and still lowers.
func TestParseTrailingJunkKeepsStatement(t *testing.T) {
	asts, errs := ParseToAST("SELECT 1 2")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "expected ';'")
	require.Len(t, asts, 1)
	sel, ok := asts[0].(*ast.SelectStmt)
	require.True(t, ok)
	require.Len(t, sel.Columns, 1)
}

// The from-first shorthand keeps its table even when a trailing clause
// fails, since the table reference is the whole mandatory part.
func TestParseImplicitSelectLenientTail(t *testing.T) {
	asts, errs := ParseToAST("trades WHERE")
	require.Len(t, errs, 1)
	require.Len(t, asts, 1)
	sel, ok := asts[0].(*ast.SelectStmt)
	require.True(t, ok)
	assert.True(t, sel.Implicit)
	require.NotNil(t, sel.From)
	assert.Nil(t, sel.Where, "failed clause is omitted")
	assert.Equal(t, "trades", sel.From.SqlString())
}

func TestParseLexicalAndSyntaxErrorsAccumulate(t *testing.T) {
	// Three stray characters each report lexically; with them skipped the
	// grammar then trips over the reserved FROM in projection position.
	_, errs := ParseToAST("SELECT ??? FROM")
	var lexical, syntax int
	for _, e := range errs {
		switch e.Class {
		case ErrorLexical:
			lexical++
		case ErrorSyntax:
			syntax++
		}
	}
	assert.Equal(t, 3, lexical)
	assert.Equal(t, 1, syntax)
}

func TestParseErrorPositions(t *testing.T) {
	_, errs := Parse("SELECT *\nFROM")
	require.Len(t, errs, 1)
	e := errs[0]
	assert.Equal(t, ErrorSyntax, e.Class)
	assert.True(t, e.AtEOF)
	assert.Equal(t, 2, e.Line)
	assert.Equal(t, 5, e.Column)
	assert.Equal(t, len("SELECT *\nFROM"), e.Position)
	assert.Contains(t, e.Error(), "at end of input")
}

func TestParseErrorNearText(t *testing.T) {
	_, errs := Parse("SELECT 1 2")
	require.Len(t, errs, 1)
	assert.Equal(t, `syntax error at line 1, column 10: expected ';', found "2" near "2"`, errs[0].Error())
}

func TestParseDepthLimit(t *testing.T) {
	deep := strings.Repeat("(", 30) + "1" + strings.Repeat(")", 30)

	_, errs := Parse("SELECT " + deep)
	assert.Empty(t, errs, "default limit admits moderate nesting")

	_, errs = ParseWithOptions("SELECT "+deep, &Options{MaxDepth: 8})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "nesting deeper than 8 levels")
}

func TestParseWithNilOptions(t *testing.T) {
	asts, errs := ParseToASTWithOptions("SELECT 1", nil)
	require.Empty(t, errs)
	require.Len(t, asts, 1)
}

func TestParseWithLogger(t *testing.T) {
	var sb strings.Builder
	logger := slog.New(slog.NewTextHandler(&sb, &slog.HandlerOptions{Level: slog.LevelDebug}))
	asts, errs := ParseToASTWithOptions("SELECT 1; )))", &Options{Logger: logger})
	require.Len(t, errs, 1)
	require.Len(t, asts, 1)
	assert.Contains(t, sb.String(), "statement resynchronized")
}

// Each statement keyword dispatches to its own rule and lowers to the
// matching node type.
func TestParseStatementDispatch(t *testing.T) {
	tests := []struct {
		sql string
		tag ast.NodeTag
	}{
		{"SELECT 1", ast.T_SelectStmt},
		{"trades", ast.T_SelectStmt},
		{"WITH q AS (SELECT 1) SELECT * FROM q", ast.T_SelectStmt},
		{"INSERT INTO t VALUES (1, 'a')", ast.T_InsertStmt},
		{"UPDATE t SET x = 1", ast.T_UpdateStmt},
		{"trades PIVOT (sum(price) FOR side IN ('buy'))", ast.T_PivotStmt},
		{"CREATE TABLE t (ts TIMESTAMP)", ast.T_CreateTableStmt},
		{"CREATE MATERIALIZED VIEW mv AS (SELECT 1)", ast.T_CreateMatViewStmt},
		{"CREATE VIEW v AS (SELECT 1)", ast.T_CreateViewStmt},
		{"ALTER TABLE t DROP COLUMN x", ast.T_AlterTableStmt},
		{"ALTER TABLE t RESUME WAL", ast.T_ResumeWalStmt},
		{"ALTER TABLE t SET TYPE WAL", ast.T_SetTypeStmt},
		{"ALTER MATERIALIZED VIEW mv SET REFRESH MANUAL", ast.T_AlterMatViewStmt},
		{"DROP TABLE t", ast.T_DropTableStmt},
		{"DROP MATERIALIZED VIEW mv", ast.T_DropMatViewStmt},
		{"DROP VIEW v", ast.T_DropViewStmt},
		{"DROP ALL TABLES", ast.T_DropAllTablesStmt},
		{"RENAME TABLE a TO b", ast.T_RenameTableStmt},
		{"TRUNCATE TABLE t", ast.T_TruncateTableStmt},
		{"VACUUM TABLE t", ast.T_VacuumTableStmt},
		{"REINDEX TABLE t COLUMN sym LOCK EXCLUSIVE", ast.T_ReindexTableStmt},
		{"CHECKPOINT CREATE", ast.T_CheckpointStmt},
		{"SNAPSHOT PREPARE", ast.T_SnapshotStmt},
		{"BACKUP TABLE t", ast.T_BackupStmt},
		{"COPY t FROM 'trades.csv'", ast.T_CopyStmt},
		{"CREATE USER u", ast.T_CreateUserStmt},
		{"CREATE GROUP g", ast.T_CreateGroupStmt},
		{"CREATE SERVICE ACCOUNT svc", ast.T_CreateServiceAccountStmt},
		{"ALTER USER u ENABLE", ast.T_AlterUserStmt},
		{"ADD USER u TO g", ast.T_AddUserStmt},
		{"REMOVE USER u FROM g", ast.T_RemoveUserStmt},
		{"GRANT SELECT ON t TO u", ast.T_GrantStmt},
		{"REVOKE SELECT ON t FROM u", ast.T_RevokeStmt},
		{"ASSUME SERVICE ACCOUNT svc", ast.T_AssumeServiceAccountStmt},
		{"EXIT SERVICE ACCOUNT", ast.T_ExitServiceAccountStmt},
		{"SHOW TABLES", ast.T_ShowStmt},
		{"EXPLAIN SELECT 1", ast.T_ExplainStmt},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			asts, errs := ParseToAST(tt.sql)
			require.Empty(t, errs, "parse errors for %q", tt.sql)
			require.Len(t, asts, 1)
			assert.Equal(t, tt.tag, asts[0].NodeTag())
		})
	}
}

// Statement locations point at the statement's first token.
func TestParseStatementLocations(t *testing.T) {
	asts, errs := ParseToAST("SELECT 1;  DROP TABLE t")
	require.Empty(t, errs)
	require.Len(t, asts, 2)
	assert.Equal(t, 0, asts[0].Location())
	assert.Equal(t, 11, asts[1].Location())
}

func TestParseErrorOrdering(t *testing.T) {
	// Lexical errors precede syntax errors in the combined list, and
	// syntax errors arrive in source order.
	_, errs := Parse("SELECT @; SELECT * FROM t WHERE ; )))")
	require.Len(t, errs, 4)
	assert.Equal(t, ErrorLexical, errs[0].Class)
	for _, e := range errs[1:] {
		assert.Equal(t, ErrorSyntax, e.Class)
	}
	for i := 2; i < len(errs); i++ {
		assert.Greater(t, errs[i].Position, errs[i-1].Position,
			"syntax errors arrive in source order")
	}
}

func ExampleParseToAST() {
	asts, errs := ParseToAST("SELECT price FROM trades LATEST ON ts PARTITION BY sym")
	fmt.Println(len(asts), len(errs))
	fmt.Println(asts[0].SqlString())
	// Output:
	// 1 0
	// SELECT price FROM trades LATEST ON ts PARTITION BY sym
}
