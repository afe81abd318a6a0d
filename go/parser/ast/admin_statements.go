// Package ast administrative statement node definitions: table
// maintenance, WAL control, bulk import, backups, the access control
// surface and the SHOW/EXPLAIN introspection statements.
package ast

import (
	"fmt"
	"strings"
)

// VacuumTableStmt reclaims disk space left by out-of-order writes.
type VacuumTableStmt struct {
	BaseNode
	Table *QualifiedName
}

func (s *VacuumTableStmt) StatementType() string {
	return "VACUUM TABLE"
}

func (s *VacuumTableStmt) SqlString() string {
	return "VACUUM TABLE " + s.Table.SqlString()
}

// ReindexTableStmt rebuilds symbol indexes, optionally narrowed to one
// column or partition. The dialect requires the LOCK EXCLUSIVE tail.
type ReindexTableStmt struct {
	BaseNode
	Table         *QualifiedName
	Column        string
	Partition     Expression
	LockExclusive bool
}

func (s *ReindexTableStmt) StatementType() string {
	return "REINDEX TABLE"
}

func (s *ReindexTableStmt) SqlString() string {
	parts := []string{"REINDEX TABLE", s.Table.SqlString()}
	if s.Column != "" {
		parts = append(parts, "COLUMN", QuoteIdentifier(s.Column))
	}
	if s.Partition != nil {
		parts = append(parts, "PARTITION", s.Partition.SqlString())
	}
	if s.LockExclusive {
		parts = append(parts, "LOCK EXCLUSIVE")
	}
	return strings.Join(parts, " ")
}

// CheckpointStmt enters or leaves checkpoint mode for filesystem
// snapshots.
type CheckpointStmt struct {
	BaseNode
	Release bool
}

func (s *CheckpointStmt) StatementType() string {
	return "CHECKPOINT"
}

func (s *CheckpointStmt) SqlString() string {
	if s.Release {
		return "CHECKPOINT RELEASE"
	}
	return "CHECKPOINT CREATE"
}

// SnapshotStmt is the legacy spelling of checkpoint control.
type SnapshotStmt struct {
	BaseNode
	Complete bool
}

func (s *SnapshotStmt) StatementType() string {
	return "SNAPSHOT"
}

func (s *SnapshotStmt) SqlString() string {
	if s.Complete {
		return "SNAPSHOT COMPLETE"
	}
	return "SNAPSHOT PREPARE"
}

// BackupStmt backs up named tables or the whole database.
type BackupStmt struct {
	BaseNode
	Tables   []*QualifiedName
	Database bool
}

func (s *BackupStmt) StatementType() string {
	return "BACKUP"
}

func (s *BackupStmt) SqlString() string {
	if s.Database {
		return "BACKUP DATABASE"
	}
	names := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		names[i] = t.SqlString()
	}
	return "BACKUP TABLE " + strings.Join(names, ", ")
}

// CopyOption is one option of a COPY statement, e.g. HEADER true or
// ON ERROR SKIP_ROW. Name is stored upper-cased.
type CopyOption struct {
	BaseNode
	Name  string
	Value Expression
}

func (o *CopyOption) SqlString() string {
	return o.Name + " " + o.Value.SqlString()
}

// CopyStmt bulk-imports a file into a table, or cancels a running
// import by id.
type CopyStmt struct {
	BaseNode
	Target   *QualifiedName
	From     Expression
	Cancel   bool
	CancelID Expression
	Options  []*CopyOption
}

func (s *CopyStmt) StatementType() string {
	return "COPY"
}

func (s *CopyStmt) SqlString() string {
	if s.Cancel {
		return "COPY " + s.CancelID.SqlString() + " CANCEL"
	}
	parts := []string{"COPY", s.Target.SqlString(), "FROM", s.From.SqlString()}
	if len(s.Options) > 0 {
		opts := make([]string, len(s.Options))
		for i, o := range s.Options {
			opts[i] = o.SqlString()
		}
		parts = append(parts, "WITH", strings.Join(opts, " "))
	}
	return strings.Join(parts, " ")
}

// ResumeWalStmt restarts a suspended WAL apply job, optionally from a
// specific transaction.
type ResumeWalStmt struct {
	BaseNode
	Table   *QualifiedName
	FromTxn Expression
}

func (s *ResumeWalStmt) StatementType() string {
	return "RESUME WAL"
}

func (s *ResumeWalStmt) SqlString() string {
	out := "ALTER TABLE " + s.Table.SqlString() + " RESUME WAL"
	if s.FromTxn != nil {
		out += " FROM TXN " + s.FromTxn.SqlString()
	}
	return out
}

// SetTypeStmt converts a table between WAL and non-WAL layouts on next
// restart.
type SetTypeStmt struct {
	BaseNode
	Table  *QualifiedName
	Bypass bool
}

func (s *SetTypeStmt) StatementType() string {
	return "SET TYPE"
}

func (s *SetTypeStmt) SqlString() string {
	if s.Bypass {
		return "ALTER TABLE " + s.Table.SqlString() + " SET TYPE BYPASS WAL"
	}
	return "ALTER TABLE " + s.Table.SqlString() + " SET TYPE WAL"
}

// CreateUserStmt creates a database user.
type CreateUserStmt struct {
	BaseNode
	IfNotExists bool
	Name        string
	Password    Expression
	NoPassword  bool
}

func (s *CreateUserStmt) StatementType() string {
	return "CREATE USER"
}

func (s *CreateUserStmt) SqlString() string {
	parts := []string{"CREATE USER"}
	if s.IfNotExists {
		parts = append(parts, "IF NOT EXISTS")
	}
	parts = append(parts, QuoteIdentifier(s.Name))
	if s.Password != nil {
		parts = append(parts, "WITH PASSWORD", s.Password.SqlString())
	} else if s.NoPassword {
		parts = append(parts, "WITH NO PASSWORD")
	}
	return strings.Join(parts, " ")
}

// CreateGroupStmt creates a permission group.
type CreateGroupStmt struct {
	BaseNode
	IfNotExists bool
	Name        string
}

func (s *CreateGroupStmt) StatementType() string {
	return "CREATE GROUP"
}

func (s *CreateGroupStmt) SqlString() string {
	if s.IfNotExists {
		return "CREATE GROUP IF NOT EXISTS " + QuoteIdentifier(s.Name)
	}
	return "CREATE GROUP " + QuoteIdentifier(s.Name)
}

// CreateServiceAccountStmt creates a service account, optionally owned
// by another entity.
type CreateServiceAccountStmt struct {
	BaseNode
	IfNotExists bool
	Name        string
	Owner       string
}

func (s *CreateServiceAccountStmt) StatementType() string {
	return "CREATE SERVICE ACCOUNT"
}

func (s *CreateServiceAccountStmt) SqlString() string {
	parts := []string{"CREATE SERVICE ACCOUNT"}
	if s.IfNotExists {
		parts = append(parts, "IF NOT EXISTS")
	}
	parts = append(parts, QuoteIdentifier(s.Name))
	if s.Owner != "" {
		parts = append(parts, "OWNED BY", QuoteIdentifier(s.Owner))
	}
	return strings.Join(parts, " ")
}

// AlterUserActionType enumerates ALTER USER subcommands.
type AlterUserActionType int

const (
	UserEnable AlterUserActionType = iota
	UserDisable
	UserSetPassword
	UserNoPassword
	UserCreateToken
	UserDropToken
)

// AlterUserAction is the subcommand of ALTER USER or ALTER SERVICE
// ACCOUNT. TokenType is "JWK" or "REST" for the token commands.
type AlterUserAction struct {
	BaseNode
	Type      AlterUserActionType
	Password  Expression
	TokenType string
	Ttl       Expression
	Refresh   bool
	Token     Expression
}

func (a *AlterUserAction) SqlString() string {
	switch a.Type {
	case UserEnable:
		return "ENABLE"
	case UserDisable:
		return "DISABLE"
	case UserSetPassword:
		return "WITH PASSWORD " + a.Password.SqlString()
	case UserNoPassword:
		return "WITH NO PASSWORD"
	case UserCreateToken:
		out := "CREATE TOKEN TYPE " + a.TokenType
		if a.Ttl != nil {
			out += " WITH TTL " + a.Ttl.SqlString()
		}
		if a.Refresh {
			out += " REFRESH"
		}
		return out
	case UserDropToken:
		out := "DROP TOKEN TYPE " + a.TokenType
		if a.Token != nil {
			out += " " + a.Token.SqlString()
		}
		return out
	}
	return ""
}

// AlterUserStmt applies one action to a user or service account.
type AlterUserStmt struct {
	BaseNode
	ServiceAccount bool
	Name           string
	Action         *AlterUserAction
}

func (s *AlterUserStmt) StatementType() string {
	if s.ServiceAccount {
		return "ALTER SERVICE ACCOUNT"
	}
	return "ALTER USER"
}

func (s *AlterUserStmt) SqlString() string {
	return s.StatementType() + " " + QuoteIdentifier(s.Name) + " " + s.Action.SqlString()
}

// DropUserStmt drops a user.
type DropUserStmt struct {
	BaseNode
	IfExists bool
	Name     string
}

func (s *DropUserStmt) StatementType() string {
	return "DROP USER"
}

func (s *DropUserStmt) SqlString() string {
	if s.IfExists {
		return "DROP USER IF EXISTS " + QuoteIdentifier(s.Name)
	}
	return "DROP USER " + QuoteIdentifier(s.Name)
}

// DropGroupStmt drops a group.
type DropGroupStmt struct {
	BaseNode
	IfExists bool
	Name     string
}

func (s *DropGroupStmt) StatementType() string {
	return "DROP GROUP"
}

func (s *DropGroupStmt) SqlString() string {
	if s.IfExists {
		return "DROP GROUP IF EXISTS " + QuoteIdentifier(s.Name)
	}
	return "DROP GROUP " + QuoteIdentifier(s.Name)
}

// DropServiceAccountStmt drops a service account.
type DropServiceAccountStmt struct {
	BaseNode
	IfExists bool
	Name     string
}

func (s *DropServiceAccountStmt) StatementType() string {
	return "DROP SERVICE ACCOUNT"
}

func (s *DropServiceAccountStmt) SqlString() string {
	if s.IfExists {
		return "DROP SERVICE ACCOUNT IF EXISTS " + QuoteIdentifier(s.Name)
	}
	return "DROP SERVICE ACCOUNT " + QuoteIdentifier(s.Name)
}

// AddUserStmt adds a user to one or more groups.
type AddUserStmt struct {
	BaseNode
	User   string
	Groups []string
}

func (s *AddUserStmt) StatementType() string {
	return "ADD USER"
}

func (s *AddUserStmt) SqlString() string {
	return "ADD USER " + QuoteIdentifier(s.User) + " TO " + FormatColumnList(s.Groups)
}

// RemoveUserStmt removes a user from one or more groups.
type RemoveUserStmt struct {
	BaseNode
	User   string
	Groups []string
}

func (s *RemoveUserStmt) StatementType() string {
	return "REMOVE USER"
}

func (s *RemoveUserStmt) SqlString() string {
	return "REMOVE USER " + QuoteIdentifier(s.User) + " FROM " + FormatColumnList(s.Groups)
}

// PermissionTarget scopes a grant to a table and optionally a column
// list.
type PermissionTarget struct {
	BaseNode
	Table   *QualifiedName
	Columns []string
}

func (t *PermissionTarget) SqlString() string {
	if len(t.Columns) > 0 {
		return t.Table.SqlString() + "(" + FormatColumnList(t.Columns) + ")"
	}
	return t.Table.SqlString()
}

// GrantStmt grants permissions, or the right to assume a service
// account, to an entity.
type GrantStmt struct {
	BaseNode
	Permissions  []string
	AllTables    bool
	Targets      []*PermissionTarget
	Assume       string
	To           string
	GrantOption  bool
	Verification bool
}

func (s *GrantStmt) StatementType() string {
	return "GRANT"
}

func (s *GrantStmt) SqlString() string {
	var parts []string
	if s.Assume != "" {
		parts = append(parts, "GRANT ASSUME SERVICE ACCOUNT", QuoteIdentifier(s.Assume))
	} else {
		parts = append(parts, "GRANT", strings.Join(s.Permissions, ", "))
		if s.AllTables {
			parts = append(parts, "ON ALL TABLES")
		} else if len(s.Targets) > 0 {
			targets := make([]string, len(s.Targets))
			for i, t := range s.Targets {
				targets[i] = t.SqlString()
			}
			parts = append(parts, "ON", strings.Join(targets, ", "))
		}
	}
	parts = append(parts, "TO", QuoteIdentifier(s.To))
	if s.GrantOption {
		parts = append(parts, "WITH GRANT OPTION")
	}
	if s.Verification {
		parts = append(parts, "WITH VERIFICATION")
	}
	return strings.Join(parts, " ")
}

// RevokeStmt withdraws permissions, or an assume right, from an entity.
type RevokeStmt struct {
	BaseNode
	Permissions []string
	AllTables   bool
	Targets     []*PermissionTarget
	Assume      string
	From        string
}

func (s *RevokeStmt) StatementType() string {
	return "REVOKE"
}

func (s *RevokeStmt) SqlString() string {
	var parts []string
	if s.Assume != "" {
		parts = append(parts, "REVOKE ASSUME SERVICE ACCOUNT", QuoteIdentifier(s.Assume))
	} else {
		parts = append(parts, "REVOKE", strings.Join(s.Permissions, ", "))
		if s.AllTables {
			parts = append(parts, "ON ALL TABLES")
		} else if len(s.Targets) > 0 {
			targets := make([]string, len(s.Targets))
			for i, t := range s.Targets {
				targets[i] = t.SqlString()
			}
			parts = append(parts, "ON", strings.Join(targets, ", "))
		}
	}
	parts = append(parts, "FROM", QuoteIdentifier(s.From))
	return strings.Join(parts, " ")
}

// AssumeServiceAccountStmt switches the session onto a service account.
type AssumeServiceAccountStmt struct {
	BaseNode
	Account string
}

func (s *AssumeServiceAccountStmt) StatementType() string {
	return "ASSUME SERVICE ACCOUNT"
}

func (s *AssumeServiceAccountStmt) SqlString() string {
	return "ASSUME SERVICE ACCOUNT " + QuoteIdentifier(s.Account)
}

// ExitServiceAccountStmt returns the session to its own identity.
type ExitServiceAccountStmt struct {
	BaseNode
	Account string
}

func (s *ExitServiceAccountStmt) StatementType() string {
	return "EXIT SERVICE ACCOUNT"
}

func (s *ExitServiceAccountStmt) SqlString() string {
	if s.Account != "" {
		return "EXIT SERVICE ACCOUNT " + QuoteIdentifier(s.Account)
	}
	return "EXIT SERVICE ACCOUNT"
}

// ShowKind enumerates SHOW statement variants.
type ShowKind int

const (
	ShowTables ShowKind = iota
	ShowColumns
	ShowPartitions
	ShowCreateTable
	ShowCreateMatView
	ShowUser
	ShowUsers
	ShowGroups
	ShowServiceAccount
	ShowServiceAccounts
	ShowPermissions
	ShowServerVersion
	ShowServerVersionNum
	ShowParameters
	ShowTransactionIsolation
	ShowMaxIdentifierLength
	ShowStandardConformingStrings
	ShowSearchPath
	ShowDateStyle
	ShowTimeZone
)

// ShowStmt is an introspection query. Target carries the table for the
// FROM variants; Name carries the entity for the account variants.
type ShowStmt struct {
	BaseNode
	Kind   ShowKind
	Target *QualifiedName
	Name   string
}

func (s *ShowStmt) StatementType() string {
	return "SHOW"
}

func (s *ShowStmt) SqlString() string {
	switch s.Kind {
	case ShowTables:
		return "SHOW TABLES"
	case ShowColumns:
		return "SHOW COLUMNS FROM " + s.Target.SqlString()
	case ShowPartitions:
		return "SHOW PARTITIONS FROM " + s.Target.SqlString()
	case ShowCreateTable:
		return "SHOW CREATE TABLE " + s.Target.SqlString()
	case ShowCreateMatView:
		return "SHOW CREATE MATERIALIZED VIEW " + s.Target.SqlString()
	case ShowUser:
		if s.Name != "" {
			return "SHOW USER " + QuoteIdentifier(s.Name)
		}
		return "SHOW USER"
	case ShowUsers:
		return "SHOW USERS"
	case ShowGroups:
		if s.Name != "" {
			return "SHOW GROUPS " + QuoteIdentifier(s.Name)
		}
		return "SHOW GROUPS"
	case ShowServiceAccount:
		if s.Name != "" {
			return "SHOW SERVICE ACCOUNT " + QuoteIdentifier(s.Name)
		}
		return "SHOW SERVICE ACCOUNT"
	case ShowServiceAccounts:
		if s.Name != "" {
			return "SHOW SERVICE ACCOUNTS " + QuoteIdentifier(s.Name)
		}
		return "SHOW SERVICE ACCOUNTS"
	case ShowPermissions:
		if s.Name != "" {
			return "SHOW PERMISSIONS " + QuoteIdentifier(s.Name)
		}
		return "SHOW PERMISSIONS"
	case ShowServerVersion:
		return "SHOW SERVER_VERSION"
	case ShowServerVersionNum:
		return "SHOW SERVER_VERSION_NUM"
	case ShowParameters:
		return "SHOW PARAMETERS"
	case ShowTransactionIsolation:
		return "SHOW TRANSACTION ISOLATION LEVEL"
	case ShowMaxIdentifierLength:
		return "SHOW MAX_IDENTIFIER_LENGTH"
	case ShowStandardConformingStrings:
		return "SHOW STANDARD_CONFORMING_STRINGS"
	case ShowSearchPath:
		return "SHOW SEARCH_PATH"
	case ShowDateStyle:
		return "SHOW DATESTYLE"
	case ShowTimeZone:
		return "SHOW TIME ZONE"
	}
	return "SHOW"
}

// ExplainFormat selects EXPLAIN output rendering.
type ExplainFormat int

const (
	ExplainFormatDefault ExplainFormat = iota
	ExplainFormatText
	ExplainFormatJSON
)

// ExplainStmt wraps a statement and reports its execution plan.
type ExplainStmt struct {
	BaseNode
	Format    ExplainFormat
	Statement Statement
}

func (s *ExplainStmt) StatementType() string {
	return "EXPLAIN"
}

func (s *ExplainStmt) String() string {
	return fmt.Sprintf("ExplainStmt(%s)@%d", s.Statement.StatementType(), s.Location())
}

func (s *ExplainStmt) SqlString() string {
	switch s.Format {
	case ExplainFormatText:
		return "EXPLAIN (FORMAT TEXT) " + s.Statement.SqlString()
	case ExplainFormatJSON:
		return "EXPLAIN (FORMAT JSON) " + s.Statement.SqlString()
	}
	return "EXPLAIN " + s.Statement.SqlString()
}
