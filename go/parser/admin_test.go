/*
 * Administrative statement tests: table maintenance, checkpoint and
 * snapshot control, bulk import, backups, the access control surface
 * and SHOW/EXPLAIN.
 */

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronoql/chronoql/go/parser/ast"
)

func TestVacuumTable(t *testing.T) {
	stmt := parseOne(t, "VACUUM TABLE trades")
	vac, ok := stmt.(*ast.VacuumTableStmt)
	require.True(t, ok, "expected VacuumTableStmt, got %T", stmt)
	assert.Equal(t, "trades", vac.Table.SqlString())
	assert.Equal(t, "VACUUM TABLE trades", vac.SqlString())
}

func TestReindexTable(t *testing.T) {
	stmt := parseOne(t, "REINDEX TABLE trades COLUMN sym PARTITION '2024-01' LOCK EXCLUSIVE")
	re, ok := stmt.(*ast.ReindexTableStmt)
	require.True(t, ok, "expected ReindexTableStmt, got %T", stmt)
	assert.Equal(t, "sym", re.Column)
	require.NotNil(t, re.Partition)
	assert.True(t, re.LockExclusive)
	assert.Equal(t, "REINDEX TABLE trades COLUMN sym PARTITION '2024-01' LOCK EXCLUSIVE", re.SqlString())

	re, ok = parseOne(t, "REINDEX TABLE trades").(*ast.ReindexTableStmt)
	require.True(t, ok)
	assert.Empty(t, re.Column)
	assert.Nil(t, re.Partition)
	assert.False(t, re.LockExclusive)
}

func TestCheckpoint(t *testing.T) {
	cp, ok := parseOne(t, "CHECKPOINT CREATE").(*ast.CheckpointStmt)
	require.True(t, ok)
	assert.False(t, cp.Release)
	assert.Equal(t, "CHECKPOINT CREATE", cp.SqlString())

	cp, ok = parseOne(t, "CHECKPOINT RELEASE").(*ast.CheckpointStmt)
	require.True(t, ok)
	assert.True(t, cp.Release)
}

func TestSnapshot(t *testing.T) {
	snap, ok := parseOne(t, "SNAPSHOT PREPARE").(*ast.SnapshotStmt)
	require.True(t, ok)
	assert.False(t, snap.Complete)
	assert.Equal(t, "SNAPSHOT PREPARE", snap.SqlString())

	snap, ok = parseOne(t, "SNAPSHOT COMPLETE").(*ast.SnapshotStmt)
	require.True(t, ok)
	assert.True(t, snap.Complete)
}

func TestBackup(t *testing.T) {
	backup, ok := parseOne(t, "BACKUP TABLE trades, quotes").(*ast.BackupStmt)
	require.True(t, ok)
	require.Len(t, backup.Tables, 2)
	assert.False(t, backup.Database)
	assert.Equal(t, "BACKUP TABLE trades, quotes", backup.SqlString())

	backup, ok = parseOne(t, "BACKUP DATABASE").(*ast.BackupStmt)
	require.True(t, ok)
	assert.True(t, backup.Database)
	assert.Equal(t, "BACKUP DATABASE", backup.SqlString())
}

func TestCopyImport(t *testing.T) {
	sql := "COPY weather FROM 'weather.csv' WITH HEADER TRUE TIMESTAMP 'ts' DELIMITER ';' " +
		"PARTITION BY DAY ON ERROR SKIP_ROW"
	stmt := parseOne(t, sql)
	cp, ok := stmt.(*ast.CopyStmt)
	require.True(t, ok, "expected CopyStmt, got %T", stmt)
	assert.False(t, cp.Cancel)
	assert.Equal(t, "weather", cp.Target.SqlString())
	assert.Equal(t, "'weather.csv'", cp.From.SqlString())
	require.Len(t, cp.Options, 5)
	assert.Equal(t, "HEADER", cp.Options[0].Name)
	assert.Equal(t, "PARTITION BY", cp.Options[3].Name)
	assert.Equal(t, "ON ERROR", cp.Options[4].Name)
	assert.Equal(t, sql, cp.SqlString())
}

func TestCopyCancel(t *testing.T) {
	cp, ok := parseOne(t, "COPY 'a1b2c3' CANCEL").(*ast.CopyStmt)
	require.True(t, ok)
	assert.True(t, cp.Cancel)
	assert.Equal(t, "COPY 'a1b2c3' CANCEL", cp.SqlString())

	cp, ok = parseOne(t, "COPY import_1 CANCEL").(*ast.CopyStmt)
	require.True(t, ok)
	assert.Equal(t, "COPY 'import_1' CANCEL", cp.SqlString(), "bare id requotes as a string")
}

func TestCreateUser(t *testing.T) {
	user, ok := parseOne(t, "CREATE USER alice").(*ast.CreateUserStmt)
	require.True(t, ok)
	assert.Equal(t, "alice", user.Name)
	assert.Nil(t, user.Password)
	assert.False(t, user.NoPassword)
	assert.Equal(t, "CREATE USER alice", user.SqlString())

	user, ok = parseOne(t, "CREATE USER IF NOT EXISTS alice WITH PASSWORD 'secret'").(*ast.CreateUserStmt)
	require.True(t, ok)
	assert.True(t, user.IfNotExists)
	require.NotNil(t, user.Password)
	assert.Equal(t, "CREATE USER IF NOT EXISTS alice WITH PASSWORD 'secret'", user.SqlString())

	user, ok = parseOne(t, "CREATE USER bob WITH NO PASSWORD").(*ast.CreateUserStmt)
	require.True(t, ok)
	assert.True(t, user.NoPassword)
	assert.Equal(t, "CREATE USER bob WITH NO PASSWORD", user.SqlString())
}

func TestCreateGroup(t *testing.T) {
	group, ok := parseOne(t, "CREATE GROUP IF NOT EXISTS admins").(*ast.CreateGroupStmt)
	require.True(t, ok)
	assert.True(t, group.IfNotExists)
	assert.Equal(t, "admins", group.Name)
	assert.Equal(t, "CREATE GROUP IF NOT EXISTS admins", group.SqlString())
}

func TestCreateServiceAccount(t *testing.T) {
	sa, ok := parseOne(t, "CREATE SERVICE ACCOUNT ingest OWNED BY alice").(*ast.CreateServiceAccountStmt)
	require.True(t, ok)
	assert.Equal(t, "ingest", sa.Name)
	assert.Equal(t, "alice", sa.Owner)
	assert.Equal(t, "CREATE SERVICE ACCOUNT ingest OWNED BY alice", sa.SqlString())

	sa, ok = parseOne(t, "CREATE SERVICE ACCOUNT IF NOT EXISTS ingest").(*ast.CreateServiceAccountStmt)
	require.True(t, ok)
	assert.True(t, sa.IfNotExists)
	assert.Empty(t, sa.Owner)
}

func TestAlterUser(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		typ  ast.AlterUserActionType
		svc  bool
		out  string
	}{
		{"enable", "ALTER USER alice ENABLE", ast.UserEnable, false, ""},
		{"disable", "ALTER USER alice DISABLE", ast.UserDisable, false, ""},
		{"set password", "ALTER USER alice WITH PASSWORD 'pw'", ast.UserSetPassword, false, ""},
		{"no password", "ALTER USER alice WITH NO PASSWORD", ast.UserNoPassword, false, ""},
		{"create jwk token", "ALTER USER alice CREATE TOKEN TYPE JWK", ast.UserCreateToken, false, ""},
		{"token type normalizes upper", "ALTER USER alice CREATE TOKEN TYPE jwk", ast.UserCreateToken, false,
			"ALTER USER alice CREATE TOKEN TYPE JWK"},
		{"rest token with ttl", "ALTER USER alice CREATE TOKEN TYPE REST WITH TTL 30d REFRESH",
			ast.UserCreateToken, false, ""},
		{"rest token string ttl", "ALTER SERVICE ACCOUNT ingest CREATE TOKEN TYPE REST WITH TTL '2d'",
			ast.UserCreateToken, true, ""},
		{"drop token", "ALTER USER alice DROP TOKEN TYPE REST 'abc123'", ast.UserDropToken, false, ""},
		{"drop token without id", "ALTER USER alice DROP TOKEN TYPE JWK", ast.UserDropToken, false, ""},
		{"service account disable", "ALTER SERVICE ACCOUNT ingest DISABLE", ast.UserDisable, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt := parseOne(t, tt.sql)
			alter, ok := stmt.(*ast.AlterUserStmt)
			require.True(t, ok, "expected AlterUserStmt, got %T", stmt)
			assert.Equal(t, tt.typ, alter.Action.Type)
			assert.Equal(t, tt.svc, alter.ServiceAccount)
			want := tt.out
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, alter.SqlString())
		})
	}
}

func TestAddRemoveUser(t *testing.T) {
	add, ok := parseOne(t, "ADD USER alice TO admins, ops").(*ast.AddUserStmt)
	require.True(t, ok)
	assert.Equal(t, "alice", add.User)
	assert.Equal(t, []string{"admins", "ops"}, add.Groups)
	assert.Equal(t, "ADD USER alice TO admins, ops", add.SqlString())

	rem, ok := parseOne(t, "REMOVE USER alice FROM admins").(*ast.RemoveUserStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"admins"}, rem.Groups)
	assert.Equal(t, "REMOVE USER alice FROM admins", rem.SqlString())
}

func TestGrant(t *testing.T) {
	t.Run("permissions with column targets", func(t *testing.T) {
		sql := "GRANT SELECT, INSERT ON trades(price, qty), quotes TO alice WITH GRANT OPTION"
		grant, ok := parseOne(t, sql).(*ast.GrantStmt)
		require.True(t, ok)
		assert.Equal(t, []string{"SELECT", "INSERT"}, grant.Permissions)
		require.Len(t, grant.Targets, 2)
		assert.Equal(t, []string{"price", "qty"}, grant.Targets[0].Columns)
		assert.Equal(t, "alice", grant.To)
		assert.True(t, grant.GrantOption)
		assert.Equal(t, sql, grant.SqlString())
	})

	t.Run("all tables", func(t *testing.T) {
		grant, ok := parseOne(t, "GRANT ALL ON ALL TABLES TO admins").(*ast.GrantStmt)
		require.True(t, ok)
		assert.Equal(t, []string{"ALL"}, grant.Permissions)
		assert.True(t, grant.AllTables)
		assert.Equal(t, "GRANT ALL ON ALL TABLES TO admins", grant.SqlString())
	})

	t.Run("assume service account", func(t *testing.T) {
		grant, ok := parseOne(t, "GRANT ASSUME SERVICE ACCOUNT ingest TO alice").(*ast.GrantStmt)
		require.True(t, ok)
		assert.Equal(t, "ingest", grant.Assume)
		assert.Empty(t, grant.Permissions)
		assert.Equal(t, "GRANT ASSUME SERVICE ACCOUNT ingest TO alice", grant.SqlString())
	})

	t.Run("database level permission", func(t *testing.T) {
		grant, ok := parseOne(t, "GRANT HTTP TO alice WITH VERIFICATION").(*ast.GrantStmt)
		require.True(t, ok)
		assert.Equal(t, []string{"HTTP"}, grant.Permissions)
		assert.Empty(t, grant.Targets)
		assert.True(t, grant.Verification)
		assert.Equal(t, "GRANT HTTP TO alice WITH VERIFICATION", grant.SqlString())
	})

	t.Run("permissions normalize upper", func(t *testing.T) {
		grant, ok := parseOne(t, "grant select on t to u").(*ast.GrantStmt)
		require.True(t, ok)
		assert.Equal(t, "GRANT SELECT ON t TO u", grant.SqlString())
	})

	t.Run("dangling WITH keeps the grant", func(t *testing.T) {
		asts, errs := ParseToAST("GRANT SELECT ON t TO alice WITH")
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "expected GRANT OPTION or VERIFICATION")
		require.Len(t, asts, 1, "everything required was already parsed")
		assert.Equal(t, "GRANT SELECT ON t TO alice", asts[0].SqlString())
	})
}

func TestRevoke(t *testing.T) {
	rev, ok := parseOne(t, "REVOKE INSERT ON trades FROM alice").(*ast.RevokeStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"INSERT"}, rev.Permissions)
	assert.Equal(t, "alice", rev.From)
	assert.Equal(t, "REVOKE INSERT ON trades FROM alice", rev.SqlString())

	rev, ok = parseOne(t, "REVOKE ASSUME SERVICE ACCOUNT ingest FROM alice").(*ast.RevokeStmt)
	require.True(t, ok)
	assert.Equal(t, "ingest", rev.Assume)
	assert.Equal(t, "REVOKE ASSUME SERVICE ACCOUNT ingest FROM alice", rev.SqlString())
}

func TestAssumeExit(t *testing.T) {
	asm, ok := parseOne(t, "ASSUME SERVICE ACCOUNT ingest").(*ast.AssumeServiceAccountStmt)
	require.True(t, ok)
	assert.Equal(t, "ingest", asm.Account)
	assert.Equal(t, "ASSUME SERVICE ACCOUNT ingest", asm.SqlString())

	exit, ok := parseOne(t, "EXIT SERVICE ACCOUNT").(*ast.ExitServiceAccountStmt)
	require.True(t, ok)
	assert.Empty(t, exit.Account)
	assert.Equal(t, "EXIT SERVICE ACCOUNT", exit.SqlString())

	exit, ok = parseOne(t, "EXIT SERVICE ACCOUNT ingest").(*ast.ExitServiceAccountStmt)
	require.True(t, ok)
	assert.Equal(t, "ingest", exit.Account)
}

func TestShowStatements(t *testing.T) {
	tests := []struct {
		sql  string
		kind ast.ShowKind
		out  string
	}{
		{"SHOW TABLES", ast.ShowTables, ""},
		{"SHOW COLUMNS FROM trades", ast.ShowColumns, ""},
		{"SHOW PARTITIONS FROM trades", ast.ShowPartitions, ""},
		{"SHOW CREATE TABLE trades", ast.ShowCreateTable, ""},
		{"SHOW CREATE MATERIALIZED VIEW trades_1h", ast.ShowCreateMatView, ""},
		{"SHOW USER", ast.ShowUser, ""},
		{"SHOW USER alice", ast.ShowUser, ""},
		{"SHOW USERS", ast.ShowUsers, ""},
		{"SHOW GROUPS alice", ast.ShowGroups, ""},
		{"SHOW SERVICE ACCOUNT ingest", ast.ShowServiceAccount, ""},
		{"SHOW SERVICE ACCOUNTS", ast.ShowServiceAccounts, ""},
		{"SHOW PERMISSIONS alice", ast.ShowPermissions, ""},
		{"SHOW PARAMETERS", ast.ShowParameters, ""},
		{"SHOW TRANSACTION ISOLATION LEVEL", ast.ShowTransactionIsolation, ""},
		{"SHOW TIME ZONE", ast.ShowTimeZone, ""},
		{"SHOW server_version", ast.ShowServerVersion, "SHOW SERVER_VERSION"},
		{"SHOW search_path", ast.ShowSearchPath, "SHOW SEARCH_PATH"},
		{"SHOW datestyle", ast.ShowDateStyle, "SHOW DATESTYLE"},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			stmt := parseOne(t, tt.sql)
			show, ok := stmt.(*ast.ShowStmt)
			require.True(t, ok, "expected ShowStmt, got %T", stmt)
			assert.Equal(t, tt.kind, show.Kind)
			want := tt.out
			if want == "" {
				want = tt.sql
			}
			assert.Equal(t, want, show.SqlString())
		})
	}

	t.Run("unknown target", func(t *testing.T) {
		asts, errs := ParseToAST("SHOW foo")
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Message, "expected SHOW target")
		assert.Empty(t, asts)
	})
}

func TestExplain(t *testing.T) {
	stmt := parseOne(t, "EXPLAIN SELECT * FROM trades")
	exp, ok := stmt.(*ast.ExplainStmt)
	require.True(t, ok, "expected ExplainStmt, got %T", stmt)
	assert.Equal(t, ast.ExplainFormatDefault, exp.Format)
	_, ok = exp.Statement.(*ast.SelectStmt)
	require.True(t, ok)
	assert.Equal(t, "EXPLAIN SELECT * FROM trades", exp.SqlString())

	exp, ok = parseOne(t, "EXPLAIN (FORMAT JSON) SELECT 1").(*ast.ExplainStmt)
	require.True(t, ok)
	assert.Equal(t, ast.ExplainFormatJSON, exp.Format)
	assert.Equal(t, "EXPLAIN (FORMAT JSON) SELECT 1", exp.SqlString())

	exp, ok = parseOne(t, "EXPLAIN (FORMAT TEXT) trades WHERE x > 0").(*ast.ExplainStmt)
	require.True(t, ok)
	assert.Equal(t, ast.ExplainFormatText, exp.Format)
	inner, ok := exp.Statement.(*ast.SelectStmt)
	require.True(t, ok)
	assert.True(t, inner.Implicit, "from-first shorthand under EXPLAIN")

	exp, ok = parseOne(t, "EXPLAIN EXPLAIN SELECT 1").(*ast.ExplainStmt)
	require.True(t, ok)
	_, ok = exp.Statement.(*ast.ExplainStmt)
	require.True(t, ok, "EXPLAIN nests")
}

// Each input fails on a required piece, so nothing lowers.
func TestAdminErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{"bare checkpoint", "CHECKPOINT", "expected CREATE or RELEASE"},
		{"bare snapshot", "SNAPSHOT", "expected PREPARE or COMPLETE"},
		{"bare backup", "BACKUP", "expected TABLE or DATABASE"},
		{"bare alter user", "ALTER USER alice", "expected ENABLE, DISABLE, WITH, CREATE TOKEN or DROP TOKEN"},
		{"user without password clause", "CREATE USER alice WITH", "expected PASSWORD or NO PASSWORD"},
		{"bad token type", "ALTER USER alice CREATE TOKEN TYPE XML", "expected JWK or REST"},
		{"show create index", "SHOW CREATE INDEX i", "expected TABLE or MATERIALIZED VIEW"},
		{"explain bad format", "EXPLAIN (FORMAT YAML) SELECT 1", "expected TEXT or JSON"},
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
