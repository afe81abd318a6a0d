/*
 * DDL statement tests: CREATE TABLE with its storage clauses, views and
 * materialized views, the ALTER subcommand set, DROP, RENAME and
 * TRUNCATE. Deparse assertions pin clause ordering, including the
 * INDEX and CAST clauses that always print after the column list.
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronoql/chronoql/go/parser/ast"
)

func parseCreateTable(t *testing.T, sql string) *ast.CreateTableStmt {
	t.Helper()
	stmt := parseOne(t, sql)
	ct, ok := stmt.(*ast.CreateTableStmt)
	require.True(t, ok, "expected CreateTableStmt, got %T", stmt)
	return ct
}

func parseAlterTable(t *testing.T, sql string) *ast.AlterTableStmt {
	t.Helper()
	stmt := parseOne(t, sql)
	alter, ok := stmt.(*ast.AlterTableStmt)
	require.True(t, ok, "expected AlterTableStmt, got %T", stmt)
	return alter
}

func TestCreateTableColumns(t *testing.T) {
	stmt := parseCreateTable(t, "CREATE TABLE trades (ts TIMESTAMP, sym SYMBOL, price DOUBLE)")
	assert.Equal(t, "trades", stmt.Name.SqlString())
	assert.False(t, stmt.IfNotExists)
	require.Len(t, stmt.Columns, 3)
	assert.Equal(t, "ts", stmt.Columns[0].Name)
	assert.Equal(t, "TIMESTAMP", stmt.Columns[0].Type.Name, "type name keeps source case")
	assert.Equal(t, "price", stmt.Columns[2].Name)

	stmt = parseCreateTable(t, "CREATE TABLE IF NOT EXISTS trades (ts TIMESTAMP)")
	assert.True(t, stmt.IfNotExists)
}

func TestCreateTableSymbolOptions(t *testing.T) {
	t.Run("capacity ahead of INDEX sizes the symbol table", func(t *testing.T) {
		stmt := parseCreateTable(t, "CREATE TABLE t (sym SYMBOL CAPACITY 256 NOCACHE INDEX CAPACITY 512)")
		require.Len(t, stmt.Columns, 1)
		def := stmt.Columns[0]
		require.NotNil(t, def.SymbolCapacity)
		assert.Equal(t, "256", def.SymbolCapacity.Raw)
		require.NotNil(t, def.Cache)
		assert.False(t, *def.Cache)
		assert.True(t, def.Indexed)
		require.NotNil(t, def.IndexCapacity)
		assert.Equal(t, "512", def.IndexCapacity.Raw)
		assert.Equal(t, "sym SYMBOL CAPACITY 256 NOCACHE INDEX CAPACITY 512", def.SqlString())
	})

	t.Run("capacity after INDEX sizes the index", func(t *testing.T) {
		stmt := parseCreateTable(t, "CREATE TABLE t (sym SYMBOL INDEX CAPACITY 512)")
		require.Len(t, stmt.Columns, 1)
		def := stmt.Columns[0]
		assert.Nil(t, def.SymbolCapacity)
		require.NotNil(t, def.IndexCapacity)
		assert.Equal(t, "512", def.IndexCapacity.Raw)
	})

	t.Run("capacity without INDEX", func(t *testing.T) {
		stmt := parseCreateTable(t, "CREATE TABLE t (sym SYMBOL CAPACITY 128 CACHE)")
		require.Len(t, stmt.Columns, 1)
		def := stmt.Columns[0]
		require.NotNil(t, def.SymbolCapacity)
		assert.Equal(t, "128", def.SymbolCapacity.Raw)
		assert.Nil(t, def.IndexCapacity)
		assert.False(t, def.Indexed)
		require.NotNil(t, def.Cache)
		assert.True(t, *def.Cache)
	})
}

func TestCreateTableDeparse(t *testing.T) {
	sql := "CREATE TABLE IF NOT EXISTS trades " +
		"(ts TIMESTAMP, sym SYMBOL CAPACITY 256 CACHE INDEX CAPACITY 512, price DOUBLE) " +
		"TIMESTAMP(ts) PARTITION BY DAY TTL 3 WEEKS WAL " +
		"WITH maxUncommittedRows=500000, o3MaxLag=600 " +
		"DEDUP UPSERT KEYS(ts, sym) IN VOLUME fast_ssd"
	stmt := parseCreateTable(t, sql)
	assert.Equal(t, sql, stmt.SqlString())

	assert.Equal(t, "ts", stmt.Timestamp)
	assert.Equal(t, ast.PartitionDay, stmt.PartitionBy)
	require.NotNil(t, stmt.Ttl)
	assert.Equal(t, ast.TtlWeeks, stmt.Ttl.Unit)
	require.NotNil(t, stmt.Wal)
	assert.True(t, *stmt.Wal)
	require.Len(t, stmt.WithParams, 2)
	assert.Equal(t, "maxUncommittedRows", stmt.WithParams[0].Name)
	assert.Equal(t, "o3MaxLag", stmt.WithParams[1].Name)
	assert.Equal(t, []string{"ts", "sym"}, stmt.DedupKeys)
	assert.Equal(t, "fast_ssd", stmt.Volume)
}

func TestCreateTableLike(t *testing.T) {
	stmt := parseCreateTable(t, "CREATE TABLE trades_copy (LIKE trades)")
	require.NotNil(t, stmt.Like)
	assert.Equal(t, "trades", stmt.Like.SqlString())
	assert.Empty(t, stmt.Columns)
	assert.Equal(t, "CREATE TABLE trades_copy (LIKE trades)", stmt.SqlString())
}

func TestCreateTableAsSelect(t *testing.T) {
	sql := "CREATE TABLE pop AS (SELECT * FROM raw), CAST(price AS DOUBLE), INDEX(sym CAPACITY 128) TIMESTAMP(ts)"
	stmt := parseCreateTable(t, sql)
	require.NotNil(t, stmt.AsSelect)
	require.Len(t, stmt.Casts, 1)
	assert.Equal(t, "CAST(price AS DOUBLE)", stmt.Casts[0].SqlString())
	require.Len(t, stmt.Indexes, 1)
	assert.Equal(t, "INDEX(sym CAPACITY 128)", stmt.Indexes[0].SqlString())
	assert.Equal(t, "ts", stmt.Timestamp)
	assert.Equal(t, sql, stmt.SqlString())
}

func TestCreateTableIndexPlacement(t *testing.T) {
	stmt := parseCreateTable(t, "CREATE TABLE x (ts TIMESTAMP, INDEX(sym), sym SYMBOL)")
	require.Len(t, stmt.Columns, 2)
	require.Len(t, stmt.Indexes, 1)
	assert.Equal(t, "CREATE TABLE x (ts TIMESTAMP, sym SYMBOL), INDEX(sym)", stmt.SqlString(),
		"index clauses print after the closing parenthesis wherever they were written")
}

func TestCreateTableTtl(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		unit ast.TtlUnit
		out  string
	}{
		{"hours keyword", "TTL 12 HOURS", ast.TtlHours, "TTL 12 HOURS"},
		{"singular day", "TTL 1 DAY", ast.TtlDays, "TTL 1 DAYS"},
		{"weeks", "TTL 3 WEEKS", ast.TtlWeeks, "TTL 3 WEEKS"},
		{"months", "TTL 6 MONTHS", ast.TtlMonths, "TTL 6 MONTHS"},
		{"singular year", "TTL 1 YEAR", ast.TtlYears, "TTL 1 YEARS"},
		{"duration hours", "TTL 2h", ast.TtlHours, "TTL 2 HOURS"},
		{"duration days", "TTL 3d", ast.TtlDays, "TTL 3 DAYS"},
		{"duration weeks", "TTL 2w", ast.TtlWeeks, "TTL 2 WEEKS"},
		{"duration months", "TTL 6M", ast.TtlMonths, "TTL 6 MONTHS"},
		{"minutes fall through to days", "TTL 90m", ast.TtlDays, "TTL 90 DAYS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseCreateTable(t, "CREATE TABLE t (x LONG) "+tt.sql)
			require.NotNil(t, stmt.Ttl)
			assert.Equal(t, tt.unit, stmt.Ttl.Unit)
			assert.Equal(t, tt.out, stmt.Ttl.SqlString())
		})
	}

	t.Run("minutes keyword is not a retention unit", func(t *testing.T) {
		asts, errs := ParseToAST("CREATE TABLE t (x LONG) TTL 5 MINUTES")
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "expected retention unit")
		require.Len(t, asts, 1, "the table definition itself is complete")
		assert.Nil(t, asts[0].(*ast.CreateTableStmt).Ttl)
	})
}

func TestCreateTableWal(t *testing.T) {
	stmt := parseCreateTable(t, "CREATE TABLE t (ts TIMESTAMP) WAL")
	require.NotNil(t, stmt.Wal)
	assert.True(t, *stmt.Wal)

	stmt = parseCreateTable(t, "CREATE TABLE t (ts TIMESTAMP) BYPASS WAL")
	require.NotNil(t, stmt.Wal)
	assert.False(t, *stmt.Wal)
	assert.Equal(t, "CREATE TABLE t (ts TIMESTAMP) BYPASS WAL", stmt.SqlString())

	stmt = parseCreateTable(t, "CREATE TABLE t (ts TIMESTAMP)")
	assert.Nil(t, stmt.Wal, "no WAL clause leaves the mode unset")
}

func TestCreateTablePartitionBy(t *testing.T) {
	units := []struct {
		sql  string
		unit ast.PartitionUnit
	}{
		{"HOUR", ast.PartitionHour},
		{"DAY", ast.PartitionDay},
		{"WEEK", ast.PartitionWeek},
		{"MONTH", ast.PartitionMonth},
		{"YEAR", ast.PartitionYear},
	}
	for _, tt := range units {
		t.Run(tt.sql, func(t *testing.T) {
			stmt := parseCreateTable(t, "CREATE TABLE t (ts TIMESTAMP) PARTITION BY "+tt.sql)
			assert.Equal(t, tt.unit, stmt.PartitionBy)
			assert.Contains(t, stmt.SqlString(), "PARTITION BY "+tt.sql)
		})
	}

	t.Run("NONE deparses as absence", func(t *testing.T) {
		stmt := parseCreateTable(t, "CREATE TABLE t (ts TIMESTAMP) PARTITION BY NONE")
		assert.Equal(t, ast.PartitionNone, stmt.PartitionBy)
		assert.NotContains(t, stmt.SqlString(), "PARTITION BY")
	})

	t.Run("bad unit keeps the statement", func(t *testing.T) {
		asts, errs := ParseToAST("CREATE TABLE t (x LONG) PARTITION BY QUARTER")
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "expected NONE, HOUR, DAY, WEEK, MONTH or YEAR")
		require.Len(t, asts, 1)
		assert.Equal(t, ast.PartitionNone, asts[0].(*ast.CreateTableStmt).PartitionBy)
	})
}

func TestCreateTableVolume(t *testing.T) {
	stmt := parseCreateTable(t, "CREATE TABLE t (x LONG) IN VOLUME 'fast disk'")
	assert.Equal(t, "fast disk", stmt.Volume)
	assert.Equal(t, `CREATE TABLE t (x LONG) IN VOLUME "fast disk"`, stmt.SqlString(),
		"string volume requotes as an identifier")
}

func TestCreateMatView(t *testing.T) {
	sql := "CREATE MATERIALIZED VIEW IF NOT EXISTS trades_1h WITH BASE trades REFRESH EVERY 1h " +
		"AS (SELECT sym, avg(price) FROM trades SAMPLE BY 1h) PARTITION BY WEEK TTL 8 WEEKS"
	stmt := parseOne(t, sql)
	mv, ok := stmt.(*ast.CreateMatViewStmt)
	require.True(t, ok, "expected CreateMatViewStmt, got %T", stmt)
	assert.True(t, mv.IfNotExists)
	require.NotNil(t, mv.Base)
	assert.Equal(t, "trades", mv.Base.SqlString())
	assert.Equal(t, ast.RefreshEvery, mv.Refresh)
	require.NotNil(t, mv.Every)
	assert.Equal(t, "1h", mv.Every.SqlString())
	require.NotNil(t, mv.AsSelect)
	assert.Equal(t, ast.PartitionWeek, mv.PartitionBy)
	require.NotNil(t, mv.Ttl)
	assert.Equal(t, sql, mv.SqlString())

	t.Run("refresh modes", func(t *testing.T) {
		tests := []struct {
			sql  string
			mode ast.RefreshMode
		}{
			{"CREATE MATERIALIZED VIEW v REFRESH IMMEDIATE AS (SELECT 1)", ast.RefreshImmediate},
			{"CREATE MATERIALIZED VIEW v REFRESH MANUAL AS (SELECT 1)", ast.RefreshManual},
			{"CREATE MATERIALIZED VIEW v AS (SELECT 1)", ast.RefreshNone},
		}
		for _, tt := range tests {
			stmt := parseOne(t, tt.sql)
			mv, ok := stmt.(*ast.CreateMatViewStmt)
			require.True(t, ok, "expected CreateMatViewStmt, got %T", stmt)
			assert.Equal(t, tt.mode, mv.Refresh)
			assert.Equal(t, tt.sql, mv.SqlString())
		}
	})
}

func TestCreateView(t *testing.T) {
	sql := "CREATE VIEW recent AS (trades WHERE ts > '2024-01-01')"
	stmt := parseOne(t, sql)
	view, ok := stmt.(*ast.CreateViewStmt)
	require.True(t, ok, "expected CreateViewStmt, got %T", stmt)
	assert.Equal(t, "recent", view.Name.SqlString())
	require.NotNil(t, view.AsSelect)
	assert.True(t, view.AsSelect.Implicit, "from-first shorthand inside the view body")
	assert.Equal(t, sql, view.SqlString())
}

func TestAlterTableCommands(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		typ  ast.AlterTableCmdType
		out  string
	}{
		{"add column", "ALTER TABLE trades ADD COLUMN vwap DOUBLE", ast.AtAddColumn, ""},
		{"add without COLUMN keyword", "ALTER TABLE trades ADD vwap DOUBLE", ast.AtAddColumn,
			"ALTER TABLE trades ADD COLUMN vwap DOUBLE"},
		{"add symbol column", "ALTER TABLE trades ADD COLUMN venue SYMBOL CAPACITY 64 INDEX", ast.AtAddColumn, ""},
		{"drop column", "ALTER TABLE trades DROP COLUMN spread", ast.AtDropColumn, ""},
		{"rename column", "ALTER TABLE trades RENAME COLUMN px TO price", ast.AtRenameColumn, ""},
		{"add index", "ALTER TABLE trades ALTER COLUMN sym ADD INDEX", ast.AtColumnAddIndex, ""},
		{"add index with capacity", "ALTER TABLE trades ALTER COLUMN sym ADD INDEX CAPACITY 512", ast.AtColumnAddIndex, ""},
		{"drop index", "ALTER TABLE trades ALTER COLUMN sym DROP INDEX", ast.AtColumnDropIndex, ""},
		{"cache", "ALTER TABLE trades ALTER COLUMN sym CACHE", ast.AtColumnCache, ""},
		{"nocache", "ALTER TABLE trades ALTER COLUMN sym NOCACHE", ast.AtColumnNoCache, ""},
		{"retype", "ALTER TABLE trades ALTER COLUMN price TYPE FLOAT", ast.AtColumnType, ""},
		{"symbol capacity", "ALTER TABLE trades ALTER COLUMN sym SYMBOL CAPACITY 1024", ast.AtColumnSymbolCapacity, ""},
		{"attach partition list", "ALTER TABLE trades ATTACH PARTITION LIST '2024-01-01', '2024-01-02'", ast.AtAttachPartition, ""},
		{"detach partition", "ALTER TABLE trades DETACH PARTITION LIST '2024-01'", ast.AtDetachPartition, ""},
		{"drop partition where", "ALTER TABLE trades DROP PARTITION WHERE ts < '2024-01-01'", ast.AtDropPartition, ""},
		{"squash partitions", "ALTER TABLE trades SQUASH PARTITIONS", ast.AtSquashPartitions, ""},
		{"set param", "ALTER TABLE trades SET PARAM maxUncommittedRows = 10000", ast.AtSetParam, ""},
		{"set ttl", "ALTER TABLE trades SET TTL 4 WEEKS", ast.AtSetTtl, ""},
		{"set ttl minute fallthrough", "ALTER TABLE trades SET TTL 90m", ast.AtSetTtl,
			"ALTER TABLE trades SET TTL 90 DAYS"},
		{"dedup enable", "ALTER TABLE trades DEDUP ENABLE UPSERT KEYS(ts, sym)", ast.AtDedupEnable, ""},
		{"dedup disable", "ALTER TABLE trades DEDUP DISABLE", ast.AtDedupDisable, ""},
		{"suspend wal", "ALTER TABLE trades SUSPEND WAL", ast.AtSuspendWal, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alter := parseAlterTable(t, tt.sql)
			assert.Equal(t, tt.typ, alter.Cmd.Type)
			want := tt.out
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, alter.SqlString())
		})
	}
}

func TestAlterTableResumeWal(t *testing.T) {
	stmt := parseOne(t, "ALTER TABLE trades RESUME WAL")
	resume, ok := stmt.(*ast.ResumeWalStmt)
	require.True(t, ok, "expected ResumeWalStmt, got %T", stmt)
	assert.Equal(t, "trades", resume.Table.SqlString())
	assert.Nil(t, resume.FromTxn)

	stmt = parseOne(t, "ALTER TABLE trades RESUME WAL FROM TXN 1234")
	resume, ok = stmt.(*ast.ResumeWalStmt)
	require.True(t, ok)
	require.NotNil(t, resume.FromTxn)
	assert.Equal(t, "1234", number(t, resume.FromTxn).Raw)
	assert.Equal(t, "ALTER TABLE trades RESUME WAL FROM TXN 1234", resume.SqlString())

	stmt = parseOne(t, "ALTER TABLE trades RESUME WAL FROM TRANSACTION 99")
	assert.Equal(t, "ALTER TABLE trades RESUME WAL FROM TXN 99", stmt.SqlString(),
		"TRANSACTION normalizes to TXN")
}

func TestAlterTableSetType(t *testing.T) {
	stmt := parseOne(t, "ALTER TABLE trades SET TYPE WAL")
	set, ok := stmt.(*ast.SetTypeStmt)
	require.True(t, ok, "expected SetTypeStmt, got %T", stmt)
	assert.False(t, set.Bypass)
	assert.Equal(t, "ALTER TABLE trades SET TYPE WAL", set.SqlString())

	stmt = parseOne(t, "ALTER TABLE trades SET TYPE BYPASS WAL")
	set, ok = stmt.(*ast.SetTypeStmt)
	require.True(t, ok)
	assert.True(t, set.Bypass)
	assert.Equal(t, "ALTER TABLE trades SET TYPE BYPASS WAL", set.SqlString())
}

func TestAlterMatView(t *testing.T) {
	tests := []struct {
		name string
		sql  string
	}{
		{"refresh immediate", "ALTER MATERIALIZED VIEW trades_1h SET REFRESH IMMEDIATE"},
		{"refresh manual", "ALTER MATERIALIZED VIEW trades_1h SET REFRESH MANUAL"},
		{"refresh every", "ALTER MATERIALIZED VIEW trades_1h SET REFRESH EVERY 2h"},
		{"ttl", "ALTER MATERIALIZED VIEW trades_1h SET TTL 2 WEEKS"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseOne(t, tt.sql)
			mv, ok := stmt.(*ast.AlterMatViewStmt)
			require.True(t, ok, "expected AlterMatViewStmt, got %T", stmt)
			assert.Equal(t, "trades_1h", mv.View.SqlString())
			assert.Equal(t, tt.sql, mv.SqlString())
		})
	}
}

func TestDropStatements(t *testing.T) {
	tests := []struct {
		sql string
		tag ast.NodeTag
	}{
		{"DROP TABLE trades", ast.T_DropTableStmt},
		{"DROP TABLE IF EXISTS trades", ast.T_DropTableStmt},
		{"DROP MATERIALIZED VIEW trades_1h", ast.T_DropMatViewStmt},
		{"DROP MATERIALIZED VIEW IF EXISTS trades_1h", ast.T_DropMatViewStmt},
		{"DROP VIEW recent", ast.T_DropViewStmt},
		{"DROP VIEW IF EXISTS recent", ast.T_DropViewStmt},
		{"DROP ALL TABLES", ast.T_DropAllTablesStmt},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stmt := parseOne(t, tt.sql)
			assert.Equal(t, tt.tag, stmt.NodeTag())
			assert.Equal(t, tt.sql, stmt.SqlString())
		})
	}

	drop, ok := parseOne(t, "DROP TABLE IF EXISTS trades").(*ast.DropTableStmt)
	require.True(t, ok)
	assert.True(t, drop.IfExists)
}

func TestRenameTable(t *testing.T) {
	stmt := parseOne(t, "RENAME TABLE trades TO trades_old")
	ren, ok := stmt.(*ast.RenameTableStmt)
	require.True(t, ok, "expected RenameTableStmt, got %T", stmt)
	assert.Equal(t, "trades", ren.From.SqlString())
	assert.Equal(t, "trades_old", ren.To.SqlString())
	assert.Equal(t, "RENAME TABLE trades TO trades_old", ren.SqlString())
}

func TestTruncateTable(t *testing.T) {
	stmt := parseOne(t, "TRUNCATE TABLE trades")
	trunc, ok := stmt.(*ast.TruncateTableStmt)
	require.True(t, ok, "expected TruncateTableStmt, got %T", stmt)
	assert.Equal(t, "trades", trunc.Table.SqlString())
	assert.Equal(t, "TRUNCATE TABLE trades", trunc.SqlString())
}

// Each input fails on a required piece of the statement, so the partial
// tree never reaches the statement list.
func TestDdlErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"create without body", "CREATE TABLE t", "expected '(' or AS"},
		{"bare drop", "ALTER TABLE t DROP", "expected COLUMN or PARTITION"},
		{"bare alter column", "ALTER TABLE t ALTER COLUMN c",
			"expected ADD INDEX, DROP INDEX, CACHE, NOCACHE, TYPE or SYMBOL CAPACITY"},
		{"bare set", "ALTER TABLE t SET", "expected PARAM, TTL or TYPE"},
		{"bare dedup", "ALTER TABLE t DEDUP", "expected ENABLE or DISABLE"},
		{"resume from without txn", "ALTER TABLE t RESUME WAL FROM 5", "expected TRANSACTION or TXN"},
		{"partition without selector", "ALTER TABLE t ATTACH PARTITION 5", "expected LIST or WHERE"},
		{"unknown drop object", "DROP SEQUENCE s",
			"expected TABLE, MATERIALIZED VIEW, VIEW, USER, GROUP, SERVICE ACCOUNT or ALL TABLES"},
		{"bad refresh mode", "ALTER MATERIALIZED VIEW v SET REFRESH HOURLY",
			"expected IMMEDIATE, MANUAL or EVERY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asts, errs := ParseToAST(tt.sql)
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0].Message, tt.want)
			assert.Empty(t, asts)
		})
	}
}
