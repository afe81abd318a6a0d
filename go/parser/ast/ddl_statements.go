// Package ast DDL statement node definitions: tables, materialized
// views, views and the ALTER subcommand set.
package ast

import (
	"fmt"
	"strings"
)

// PartitionUnit is the partitioning granularity of a table.
type PartitionUnit int

const (
	PartitionNone PartitionUnit = iota
	PartitionHour
	PartitionDay
	PartitionWeek
	PartitionMonth
	PartitionYear
)

func (p PartitionUnit) String() string {
	switch p {
	case PartitionNone:
		return "NONE"
	case PartitionHour:
		return "HOUR"
	case PartitionDay:
		return "DAY"
	case PartitionWeek:
		return "WEEK"
	case PartitionMonth:
		return "MONTH"
	case PartitionYear:
		return "YEAR"
	default:
		return fmt.Sprintf("PartitionUnit(%d)", int(p))
	}
}

// TtlUnit is the unit of a TTL clause. Single-letter duration units map
// onto these; minutes have no TTL unit and fall through to days.
type TtlUnit int

const (
	TtlHours TtlUnit = iota
	TtlDays
	TtlWeeks
	TtlMonths
	TtlYears
)

func (u TtlUnit) String() string {
	switch u {
	case TtlHours:
		return "HOURS"
	case TtlDays:
		return "DAYS"
	case TtlWeeks:
		return "WEEKS"
	case TtlMonths:
		return "MONTHS"
	case TtlYears:
		return "YEARS"
	default:
		return fmt.Sprintf("TtlUnit(%d)", int(u))
	}
}

// TtlClause bounds partition retention: TTL 3 DAYS.
type TtlClause struct {
	BaseNode
	Value *NumberLiteral
	Unit  TtlUnit
}

func (t *TtlClause) SqlString() string {
	return "TTL " + t.Value.SqlString() + " " + t.Unit.String()
}

// ColumnDef is one column definition in CREATE TABLE. The symbol
// options apply only to SYMBOL columns: CAPACITY ahead of INDEX sets
// the symbol table size, CAPACITY after INDEX sets the index block
// size. Cache is nil when neither CACHE nor NOCACHE was written.
type ColumnDef struct {
	BaseNode
	Name           string
	Type           *TypeName
	SymbolCapacity *NumberLiteral
	Cache          *bool
	Indexed        bool
	IndexCapacity  *NumberLiteral
}

func (c *ColumnDef) String() string {
	return fmt.Sprintf("ColumnDef(%s %s)@%d", c.Name, c.Type.SqlString(), c.Location())
}

func (c *ColumnDef) SqlString() string {
	parts := []string{QuoteIdentifier(c.Name), c.Type.SqlString()}
	if c.SymbolCapacity != nil {
		parts = append(parts, "CAPACITY", c.SymbolCapacity.SqlString())
	}
	if c.Cache != nil {
		if *c.Cache {
			parts = append(parts, "CACHE")
		} else {
			parts = append(parts, "NOCACHE")
		}
	}
	if c.Indexed {
		parts = append(parts, "INDEX")
		if c.IndexCapacity != nil {
			parts = append(parts, "CAPACITY", c.IndexCapacity.SqlString())
		}
	}
	return strings.Join(parts, " ")
}

// IndexClause is a standalone INDEX(col [CAPACITY n]) clause of CREATE
// TABLE.
type IndexClause struct {
	BaseNode
	Column   string
	Capacity *NumberLiteral
}

func (ic *IndexClause) SqlString() string {
	s := "INDEX(" + QuoteIdentifier(ic.Column)
	if ic.Capacity != nil {
		s += " CAPACITY " + ic.Capacity.SqlString()
	}
	return s + ")"
}

// CastTypeClause retypes one column of a CREATE TABLE AS select:
// CAST(col AS type).
type CastTypeClause struct {
	BaseNode
	Column *QualifiedName
	Type   *TypeName
}

func (cc *CastTypeClause) SqlString() string {
	return "CAST(" + cc.Column.SqlString() + " AS " + cc.Type.SqlString() + ")"
}

// WithParam is one name=value pair of a CREATE TABLE WITH clause.
type WithParam struct {
	Name  string
	Value Expression
}

// CreateTableStmt creates a table from a column list, a query or
// another table's schema. Index clauses always deparse after the
// column list's closing parenthesis, wherever they were written.
type CreateTableStmt struct {
	BaseNode
	IfNotExists bool
	Name        *QualifiedName
	Columns     []*ColumnDef
	Like        *QualifiedName
	AsSelect    *SelectStmt
	Casts       []*CastTypeClause
	Indexes     []*IndexClause
	Timestamp   string
	PartitionBy PartitionUnit
	Ttl         *TtlClause
	Wal         *bool
	WithParams  []WithParam
	DedupKeys   []string
	Volume      string
}

func (s *CreateTableStmt) StatementType() string {
	return "CREATE TABLE"
}

func (s *CreateTableStmt) String() string {
	return fmt.Sprintf("CreateTableStmt(%s)@%d", s.Name.SqlString(), s.Location())
}

func (s *CreateTableStmt) SqlString() string {
	parts := []string{"CREATE TABLE"}
	if s.IfNotExists {
		parts = append(parts, "IF NOT EXISTS")
	}
	parts = append(parts, s.Name.SqlString())
	switch {
	case s.AsSelect != nil:
		parts = append(parts, "AS ("+s.AsSelect.SqlString()+")")
	case s.Like != nil:
		parts = append(parts, "(LIKE "+s.Like.SqlString()+")")
	default:
		cols := make([]string, len(s.Columns))
		for i, c := range s.Columns {
			cols[i] = c.SqlString()
		}
		parts = append(parts, "("+strings.Join(cols, ", ")+")")
	}
	for _, c := range s.Casts {
		parts[len(parts)-1] += ", " + c.SqlString()
	}
	for _, ix := range s.Indexes {
		parts[len(parts)-1] += ", " + ix.SqlString()
	}
	if s.Timestamp != "" {
		parts = append(parts, "TIMESTAMP("+QuoteIdentifier(s.Timestamp)+")")
	}
	if s.PartitionBy != PartitionNone {
		parts = append(parts, "PARTITION BY", s.PartitionBy.String())
	}
	if s.Ttl != nil {
		parts = append(parts, s.Ttl.SqlString())
	}
	if s.Wal != nil {
		if *s.Wal {
			parts = append(parts, "WAL")
		} else {
			parts = append(parts, "BYPASS WAL")
		}
	}
	if len(s.WithParams) > 0 {
		params := make([]string, len(s.WithParams))
		for i, p := range s.WithParams {
			params[i] = p.Name + "=" + p.Value.SqlString()
		}
		parts = append(parts, "WITH", strings.Join(params, ", "))
	}
	if len(s.DedupKeys) > 0 {
		parts = append(parts, "DEDUP UPSERT KEYS("+FormatColumnList(s.DedupKeys)+")")
	}
	if s.Volume != "" {
		parts = append(parts, "IN VOLUME", QuoteIdentifier(s.Volume))
	}
	return strings.Join(parts, " ")
}

// RefreshMode is the refresh strategy of a materialized view.
type RefreshMode int

const (
	RefreshNone RefreshMode = iota
	RefreshImmediate
	RefreshManual
	RefreshEvery
)

// CreateMatViewStmt creates a materialized view over a base table.
type CreateMatViewStmt struct {
	BaseNode
	IfNotExists bool
	Name        *QualifiedName
	Base        *QualifiedName
	Refresh     RefreshMode
	Every       Expression
	AsSelect    *SelectStmt
	PartitionBy PartitionUnit
	Ttl         *TtlClause
}

func (s *CreateMatViewStmt) StatementType() string {
	return "CREATE MATERIALIZED VIEW"
}

func (s *CreateMatViewStmt) String() string {
	return fmt.Sprintf("CreateMatViewStmt(%s)@%d", s.Name.SqlString(), s.Location())
}

func (s *CreateMatViewStmt) SqlString() string {
	parts := []string{"CREATE MATERIALIZED VIEW"}
	if s.IfNotExists {
		parts = append(parts, "IF NOT EXISTS")
	}
	parts = append(parts, s.Name.SqlString())
	if s.Base != nil {
		parts = append(parts, "WITH BASE", s.Base.SqlString())
	}
	switch s.Refresh {
	case RefreshImmediate:
		parts = append(parts, "REFRESH IMMEDIATE")
	case RefreshManual:
		parts = append(parts, "REFRESH MANUAL")
	case RefreshEvery:
		parts = append(parts, "REFRESH EVERY", s.Every.SqlString())
	}
	parts = append(parts, "AS ("+s.AsSelect.SqlString()+")")
	if s.PartitionBy != PartitionNone {
		parts = append(parts, "PARTITION BY", s.PartitionBy.String())
	}
	if s.Ttl != nil {
		parts = append(parts, s.Ttl.SqlString())
	}
	return strings.Join(parts, " ")
}

// CreateViewStmt creates a plain (non-materialized) view.
type CreateViewStmt struct {
	BaseNode
	IfNotExists bool
	Name        *QualifiedName
	AsSelect    *SelectStmt
}

func (s *CreateViewStmt) StatementType() string {
	return "CREATE VIEW"
}

func (s *CreateViewStmt) SqlString() string {
	parts := []string{"CREATE VIEW"}
	if s.IfNotExists {
		parts = append(parts, "IF NOT EXISTS")
	}
	parts = append(parts, s.Name.SqlString(), "AS ("+s.AsSelect.SqlString()+")")
	return strings.Join(parts, " ")
}

// AlterTableCmdType enumerates ALTER TABLE subcommands.
type AlterTableCmdType int

const (
	AtAddColumn AlterTableCmdType = iota
	AtDropColumn
	AtRenameColumn
	AtColumnAddIndex
	AtColumnDropIndex
	AtColumnCache
	AtColumnNoCache
	AtColumnType
	AtColumnSymbolCapacity
	AtAttachPartition
	AtDetachPartition
	AtDropPartition
	AtSquashPartitions
	AtSetParam
	AtSetTtl
	AtDedupEnable
	AtDedupDisable
	AtSuspendWal
)

// AlterTableCmd is the single subcommand of an ALTER TABLE statement.
// Which fields are populated depends on Type.
type AlterTableCmd struct {
	BaseNode
	Type           AlterTableCmdType
	Column         string
	NewName        string
	ColumnDef      *ColumnDef
	TypeName       *TypeName
	Capacity       *NumberLiteral
	PartitionList  []Expression
	PartitionWhere Expression
	Param          string
	Value          Expression
	Ttl            *TtlClause
	DedupKeys      []string
}

func (c *AlterTableCmd) SqlString() string {
	switch c.Type {
	case AtAddColumn:
		return "ADD COLUMN " + c.ColumnDef.SqlString()
	case AtDropColumn:
		return "DROP COLUMN " + QuoteIdentifier(c.Column)
	case AtRenameColumn:
		return "RENAME COLUMN " + QuoteIdentifier(c.Column) + " TO " + QuoteIdentifier(c.NewName)
	case AtColumnAddIndex:
		s := "ALTER COLUMN " + QuoteIdentifier(c.Column) + " ADD INDEX"
		if c.Capacity != nil {
			s += " CAPACITY " + c.Capacity.SqlString()
		}
		return s
	case AtColumnDropIndex:
		return "ALTER COLUMN " + QuoteIdentifier(c.Column) + " DROP INDEX"
	case AtColumnCache:
		return "ALTER COLUMN " + QuoteIdentifier(c.Column) + " CACHE"
	case AtColumnNoCache:
		return "ALTER COLUMN " + QuoteIdentifier(c.Column) + " NOCACHE"
	case AtColumnType:
		return "ALTER COLUMN " + QuoteIdentifier(c.Column) + " TYPE " + c.TypeName.SqlString()
	case AtColumnSymbolCapacity:
		return "ALTER COLUMN " + QuoteIdentifier(c.Column) + " SYMBOL CAPACITY " + c.Capacity.SqlString()
	case AtAttachPartition:
		return "ATTACH PARTITION " + c.partitionSelector()
	case AtDetachPartition:
		return "DETACH PARTITION " + c.partitionSelector()
	case AtDropPartition:
		return "DROP PARTITION " + c.partitionSelector()
	case AtSquashPartitions:
		return "SQUASH PARTITIONS"
	case AtSetParam:
		return "SET PARAM " + c.Param + " = " + c.Value.SqlString()
	case AtSetTtl:
		return "SET " + c.Ttl.SqlString()
	case AtDedupEnable:
		return "DEDUP ENABLE UPSERT KEYS(" + FormatColumnList(c.DedupKeys) + ")"
	case AtDedupDisable:
		return "DEDUP DISABLE"
	case AtSuspendWal:
		return "SUSPEND WAL"
	}
	return ""
}

func (c *AlterTableCmd) partitionSelector() string {
	if c.PartitionWhere != nil {
		return "WHERE " + c.PartitionWhere.SqlString()
	}
	items := make([]string, len(c.PartitionList))
	for i, p := range c.PartitionList {
		items[i] = p.SqlString()
	}
	return "LIST " + strings.Join(items, ", ")
}

// AlterTableStmt applies one subcommand to a table.
type AlterTableStmt struct {
	BaseNode
	Table *QualifiedName
	Cmd   *AlterTableCmd
}

func (s *AlterTableStmt) StatementType() string {
	return "ALTER TABLE"
}

func (s *AlterTableStmt) String() string {
	return fmt.Sprintf("AlterTableStmt(%s)@%d", s.Table.SqlString(), s.Location())
}

func (s *AlterTableStmt) SqlString() string {
	return "ALTER TABLE " + s.Table.SqlString() + " " + s.Cmd.SqlString()
}

// AlterMatViewStmt changes a materialized view's refresh strategy or
// retention.
type AlterMatViewStmt struct {
	BaseNode
	View    *QualifiedName
	Refresh RefreshMode
	Every   Expression
	Ttl     *TtlClause
}

func (s *AlterMatViewStmt) StatementType() string {
	return "ALTER MATERIALIZED VIEW"
}

func (s *AlterMatViewStmt) SqlString() string {
	parts := []string{"ALTER MATERIALIZED VIEW", s.View.SqlString()}
	switch s.Refresh {
	case RefreshImmediate:
		parts = append(parts, "SET REFRESH IMMEDIATE")
	case RefreshManual:
		parts = append(parts, "SET REFRESH MANUAL")
	case RefreshEvery:
		parts = append(parts, "SET REFRESH EVERY", s.Every.SqlString())
	}
	if s.Ttl != nil {
		parts = append(parts, "SET", s.Ttl.SqlString())
	}
	return strings.Join(parts, " ")
}

// DropTableStmt drops a table.
type DropTableStmt struct {
	BaseNode
	IfExists bool
	Table    *QualifiedName
}

func (s *DropTableStmt) StatementType() string {
	return "DROP TABLE"
}

func (s *DropTableStmt) SqlString() string {
	if s.IfExists {
		return "DROP TABLE IF EXISTS " + s.Table.SqlString()
	}
	return "DROP TABLE " + s.Table.SqlString()
}

// DropMatViewStmt drops a materialized view.
type DropMatViewStmt struct {
	BaseNode
	IfExists bool
	View     *QualifiedName
}

func (s *DropMatViewStmt) StatementType() string {
	return "DROP MATERIALIZED VIEW"
}

func (s *DropMatViewStmt) SqlString() string {
	if s.IfExists {
		return "DROP MATERIALIZED VIEW IF EXISTS " + s.View.SqlString()
	}
	return "DROP MATERIALIZED VIEW " + s.View.SqlString()
}

// DropViewStmt drops a view.
type DropViewStmt struct {
	BaseNode
	IfExists bool
	View     *QualifiedName
}

func (s *DropViewStmt) StatementType() string {
	return "DROP VIEW"
}

func (s *DropViewStmt) SqlString() string {
	if s.IfExists {
		return "DROP VIEW IF EXISTS " + s.View.SqlString()
	}
	return "DROP VIEW " + s.View.SqlString()
}

// DropAllTablesStmt drops every table in the database.
type DropAllTablesStmt struct {
	BaseNode
}

func (s *DropAllTablesStmt) StatementType() string {
	return "DROP ALL TABLES"
}

func (s *DropAllTablesStmt) SqlString() string {
	return "DROP ALL TABLES"
}

// RenameTableStmt renames a table.
type RenameTableStmt struct {
	BaseNode
	From *QualifiedName
	To   *QualifiedName
}

func (s *RenameTableStmt) StatementType() string {
	return "RENAME TABLE"
}

func (s *RenameTableStmt) SqlString() string {
	return "RENAME TABLE " + s.From.SqlString() + " TO " + s.To.SqlString()
}

// TruncateTableStmt removes all rows from a table.
type TruncateTableStmt struct {
	BaseNode
	Table *QualifiedName
}

func (s *TruncateTableStmt) StatementType() string {
	return "TRUNCATE TABLE"
}

func (s *TruncateTableStmt) SqlString() string {
	return "TRUNCATE TABLE " + s.Table.SqlString()
}
