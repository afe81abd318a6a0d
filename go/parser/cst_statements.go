/*
 * Statement-level CST rules.
 *
 * One struct per statement rule plus the clause sub-rules they share.
 * Statement rules implement StatementCst. Optional single tokens are
 * []Token fields so presence is len()>0, matching how repeated parts
 * collect.
 */

package parser

// ---------------------------------------------------------------------------
// SELECT and shared query clauses
// ---------------------------------------------------------------------------

// WithItemCst is one common table expression.
type WithItemCst struct {
	cstBase
	Name  Token
	AsTok Token
	Query *SelectStmtCst
}

func (*WithItemCst) RuleName() string { return "withItem" }

// SelectColumnCst is one projection entry; StarTok marks a bare *.
type SelectColumnCst struct {
	cstBase
	StarTok []Token
	Expr    *ExpressionCst
	AsTok   []Token
	Alias   []Token
}

func (*SelectColumnCst) RuleName() string { return "selectColumn" }

// TableExprCst is a FROM item: exactly one of Name, Subquery or Func is
// set.
type TableExprCst struct {
	cstBase
	Name     *QualifiedNameCst
	Subquery *SelectStmtCst
	Func     *FunctionCallCst
	AsTok    []Token
	Alias    []Token
}

func (*TableExprCst) RuleName() string { return "tableExpression" }

// JoinClauseCst is one join step. The flavor tokens preceding JOIN
// collect into their own fields.
type JoinClauseCst struct {
	cstBase
	InnerTok   []Token
	LeftTok    []Token
	OuterTok   []Token
	CrossTok   []Token
	AsofTok    []Token
	LtTok      []Token
	SpliceTok  []Token
	WindowTok  []Token
	JoinTok    Token
	Table      *TableExprCst
	RangeToks  []Token
	RangeLo    *ExpressionCst
	RangeHi    *ExpressionCst
	OnTok      []Token
	OnExpr     *ExpressionCst
	TolToks    []Token
	Tolerance  *ExpressionCst
}

func (*JoinClauseCst) RuleName() string { return "joinClause" }

// LatestOnCst covers LATEST ON ts PARTITION BY cols and the legacy
// LATEST BY cols form.
type LatestOnCst struct {
	cstBase
	LatestTok  Token
	OnTok      []Token
	Timestamp  *ExpressionCst
	PartToks   []Token
	ByToks     []Token
	Columns    []*ExpressionCst
}

func (*LatestOnCst) RuleName() string { return "latestOnClause" }

// SampleByCst is the SAMPLE BY clause with its FROM/TO, FILL and ALIGN
// tails.
type SampleByCst struct {
	cstBase
	SampleTok   Token
	ByTok       Token
	Interval    *ExpressionCst
	FromTok     []Token
	FromExpr    *ExpressionCst
	ToTok       []Token
	ToExpr      *ExpressionCst
	FillTok     []Token
	FillItems   []*ExpressionCst
	AlignTok    []Token
	CalendarTok []Token
	FirstTok    []Token
	TimeToks    []Token
	TimeZone    *ExpressionCst
	OffsetToks  []Token
	Offset      *ExpressionCst
}

func (*SampleByCst) RuleName() string { return "sampleByClause" }

// OrderByItemCst is one sort key.
type OrderByItemCst struct {
	cstBase
	Expr    *ExpressionCst
	AscTok  []Token
	DescTok []Token
}

func (*OrderByItemCst) RuleName() string { return "orderByItem" }

// LimitCst is the LIMIT clause, range form included.
type LimitCst struct {
	cstBase
	LimitTok Token
	Low      *ExpressionCst
	CommaTok []Token
	High     *ExpressionCst
}

func (*LimitCst) RuleName() string { return "limitClause" }

// SetOpCst chains one UNION/EXCEPT/INTERSECT arm.
type SetOpCst struct {
	cstBase
	UnionTok     []Token
	ExceptTok    []Token
	IntersectTok []Token
	AllTok       []Token
	Right        *SelectStmtCst
}

func (*SetOpCst) RuleName() string { return "setOperation" }

// SelectStmtCst is a query. The implicit from-first shorthand has no
// SELECT token and no columns, only the From chain and trailing
// clauses.
type SelectStmtCst struct {
	cstBase
	WithTok   []Token
	WithItems []*WithItemCst
	SelectTok []Token
	Distinct  []Token
	Columns   []*SelectColumnCst
	FromTok   []Token
	From      *TableExprCst
	Joins     []*JoinClauseCst
	LatestOn  *LatestOnCst
	WhereTok  []Token
	WhereExpr *ExpressionCst
	SampleBy  *SampleByCst
	GroupToks []Token
	GroupBy   []*ExpressionCst
	OrderToks []Token
	OrderBy   []*OrderByItemCst
	Limit     *LimitCst
	SetOps    []*SetOpCst
}

func (*SelectStmtCst) RuleName() string { return "selectStatement" }
func (*SelectStmtCst) statementCst()    {}

// ---------------------------------------------------------------------------
// INSERT / UPDATE / PIVOT
// ---------------------------------------------------------------------------

// ValuesRowCst is one parenthesized VALUES tuple.
type ValuesRowCst struct {
	cstBase
	Values []*ExpressionCst
}

func (*ValuesRowCst) RuleName() string { return "valuesRow" }

// InsertStmtCst is an INSERT statement.
type InsertStmtCst struct {
	cstBase
	InsertTok Token
	AtomicTok []Token
	BatchTok  []Token
	BatchSize []Token
	O3Tok     []Token
	O3Value   *ExpressionCst
	IntoTok   Token
	Table     *QualifiedNameCst
	Columns   []Token
	ValuesTok []Token
	Rows      []*ValuesRowCst
	Query     *SelectStmtCst
}

func (*InsertStmtCst) RuleName() string { return "insertStatement" }
func (*InsertStmtCst) statementCst()    {}

// UpdateAssignCst is one SET pair.
type UpdateAssignCst struct {
	cstBase
	Column *QualifiedNameCst
	EqTok  Token
	Value  *ExpressionCst
}

func (*UpdateAssignCst) RuleName() string { return "updateAssignment" }

// UpdateStmtCst is an UPDATE statement.
type UpdateStmtCst struct {
	cstBase
	UpdateTok   Token
	Table       *TableExprCst
	SetTok      Token
	Assignments []*UpdateAssignCst
	FromTok     []Token
	From        *TableExprCst
	Joins       []*JoinClauseCst
	WhereTok    []Token
	WhereExpr   *ExpressionCst
}

func (*UpdateStmtCst) RuleName() string { return "updateStatement" }
func (*UpdateStmtCst) statementCst()    {}

// PivotAggCst is one aggregation of a PIVOT projection.
type PivotAggCst struct {
	cstBase
	Expr  *ExpressionCst
	AsTok []Token
	Alias []Token
}

func (*PivotAggCst) RuleName() string { return "pivotAggregation" }

// PivotInValueCst is one IN list entry of a pivot FOR clause.
type PivotInValueCst struct {
	cstBase
	Value *ExpressionCst
	AsTok []Token
	Alias []Token
}

func (*PivotInValueCst) RuleName() string { return "pivotInValue" }

// PivotForCst is one FOR column IN (...) clause.
type PivotForCst struct {
	cstBase
	ForTok Token
	Column *QualifiedNameCst
	InTok  Token
	Values []*PivotInValueCst
}

func (*PivotForCst) RuleName() string { return "pivotForClause" }

// PivotStmtCst is a PIVOT statement over a table or subquery.
type PivotStmtCst struct {
	cstBase
	Source       *TableExprCst
	PivotTok     Token
	Aggregations []*PivotAggCst
	ForClauses   []*PivotForCst
	GroupToks    []Token
	GroupBy      []*ExpressionCst
	OrderToks    []Token
	OrderBy      []*OrderByItemCst
	Limit        *LimitCst
}

func (*PivotStmtCst) RuleName() string { return "pivotStatement" }
func (*PivotStmtCst) statementCst()    {}

// ---------------------------------------------------------------------------
// CREATE TABLE and friends
// ---------------------------------------------------------------------------

// ColumnDefCst is one column definition. Symbol options collect flat:
// every CAPACITY keyword lands in CapacityToks and its number in
// Capacities, and the visitor attributes each pair to the symbol table
// or the index by comparing offsets against IndexTok.
type ColumnDefCst struct {
	cstBase
	Name         Token
	Type         *TypeNameCst
	CapacityToks []Token
	Capacities   []Token
	CacheTok     []Token
	NocacheTok   []Token
	IndexTok     []Token
}

func (*ColumnDefCst) RuleName() string { return "columnDefinition" }

// IndexClauseCst is a standalone INDEX(col [CAPACITY n]) clause.
type IndexClauseCst struct {
	cstBase
	IndexTok    Token
	Column      Token
	CapacityTok []Token
	Capacity    []Token
}

func (*IndexClauseCst) RuleName() string { return "indexClause" }

// CastTypeCst is a CAST(col AS type) clause of CREATE TABLE AS.
type CastTypeCst struct {
	cstBase
	CastTok Token
	Column  *QualifiedNameCst
	AsTok   Token
	Type    *TypeNameCst
}

func (*CastTypeCst) RuleName() string { return "castTypeClause" }

// TtlCst is a TTL clause; Value is a number with a unit keyword, or a
// duration literal carrying its own unit.
type TtlCst struct {
	cstBase
	TtlTok   Token
	Value    Token
	UnitToks []Token
}

func (*TtlCst) RuleName() string { return "ttlClause" }

// WithParamCst is one name=value table parameter.
type WithParamCst struct {
	cstBase
	Name  Token
	EqTok Token
	Value *ExpressionCst
}

func (*WithParamCst) RuleName() string { return "withParameter" }

// CreateTableStmtCst is a CREATE TABLE statement. Index clauses from
// inside the column list and after it collect into the same field.
type CreateTableStmtCst struct {
	cstBase
	CreateTok    Token
	TableTok     Token
	IfToks       []Token
	Name         *QualifiedNameCst
	Columns      []*ColumnDefCst
	Indexes      []*IndexClauseCst
	LikeTok      []Token
	LikeName     *QualifiedNameCst
	AsTok        []Token
	AsSelect     *SelectStmtCst
	Casts        []*CastTypeCst
	TimestampTok []Token
	TimestampCol []Token
	PartToks     []Token
	PartUnit     []Token
	Ttl          *TtlCst
	BypassTok    []Token
	WalTok       []Token
	WithTok      []Token
	Params       []*WithParamCst
	DedupToks    []Token
	DedupKeys    []Token
	VolumeToks   []Token
	Volume       []Token
}

func (*CreateTableStmtCst) RuleName() string { return "createTableStatement" }
func (*CreateTableStmtCst) statementCst()    {}

// CreateMatViewStmtCst is a CREATE MATERIALIZED VIEW statement.
type CreateMatViewStmtCst struct {
	cstBase
	CreateTok    Token
	MatTok       Token
	ViewTok      Token
	IfToks       []Token
	Name         *QualifiedNameCst
	BaseToks     []Token
	Base         *QualifiedNameCst
	RefreshTok   []Token
	ImmediateTok []Token
	ManualTok    []Token
	EveryTok     []Token
	Every        *ExpressionCst
	AsTok        Token
	AsSelect     *SelectStmtCst
	PartToks     []Token
	PartUnit     []Token
	Ttl          *TtlCst
}

func (*CreateMatViewStmtCst) RuleName() string { return "createMatViewStatement" }
func (*CreateMatViewStmtCst) statementCst()    {}

// CreateViewStmtCst is a CREATE VIEW statement.
type CreateViewStmtCst struct {
	cstBase
	CreateTok Token
	ViewTok   Token
	IfToks    []Token
	Name      *QualifiedNameCst
	AsTok     Token
	AsSelect  *SelectStmtCst
}

func (*CreateViewStmtCst) RuleName() string { return "createViewStatement" }
func (*CreateViewStmtCst) statementCst()    {}

// ---------------------------------------------------------------------------
// ALTER statements
// ---------------------------------------------------------------------------

// AlterTableCmdCst is the subcommand of ALTER TABLE. Alternatives
// populate disjoint field groups; the visitor keys off which verbs are
// present. RESUME WAL and SET TYPE live here too even though they
// surface as their own statement kinds.
type AlterTableCmdCst struct {
	cstBase
	AddTok       []Token
	AddColumnDef *ColumnDefCst

	DropTok    []Token
	ColumnTok  []Token
	DropColumn []Token

	RenameTok  []Token
	RenameFrom []Token
	ToTok      []Token
	RenameTo   []Token

	AlterTok     []Token
	AlterColumn  []Token
	AddIndexTok  []Token
	DropIndexTok []Token
	CacheTok     []Token
	NocacheTok   []Token
	TypeTok      []Token
	Type         *TypeNameCst
	SymbolTok    []Token
	CapacityTok  []Token
	Capacity     []Token

	AttachTok  []Token
	DetachTok  []Token
	PartTok    []Token
	ListTok    []Token
	PartItems  []*ExpressionCst
	WhereTok   []Token
	PartWhere  *ExpressionCst
	SquashTok  []Token
	PartsTok   []Token

	SetTok    []Token
	ParamTok  []Token
	ParamName []Token
	EqTok     []Token
	ParamVal  *ExpressionCst
	Ttl       *TtlCst

	DedupTok   []Token
	EnableTok  []Token
	DisableTok []Token
	UpsertTok  []Token
	KeysTok    []Token
	DedupKeys  []Token

	SuspendTok []Token
	ResumeTok  []Token
	WalTok     []Token
	FromTok    []Token
	TxnTok     []Token
	TxnValue   []Token
	BypassTok  []Token
}

func (*AlterTableCmdCst) RuleName() string { return "alterTableCommand" }

// AlterTableStmtCst is an ALTER TABLE statement.
type AlterTableStmtCst struct {
	cstBase
	AlterTok Token
	TableTok Token
	Table    *QualifiedNameCst
	Cmd      *AlterTableCmdCst
}

func (*AlterTableStmtCst) RuleName() string { return "alterTableStatement" }
func (*AlterTableStmtCst) statementCst()    {}

// AlterMatViewStmtCst is an ALTER MATERIALIZED VIEW statement.
type AlterMatViewStmtCst struct {
	cstBase
	AlterTok     Token
	MatTok       Token
	ViewTok      Token
	View         *QualifiedNameCst
	SetTok       []Token
	RefreshTok   []Token
	ImmediateTok []Token
	ManualTok    []Token
	EveryTok     []Token
	Every        *ExpressionCst
	Ttl          *TtlCst
}

func (*AlterMatViewStmtCst) RuleName() string { return "alterMatViewStatement" }
func (*AlterMatViewStmtCst) statementCst()    {}

// AlterUserStmtCst is ALTER USER or ALTER SERVICE ACCOUNT with one
// action.
type AlterUserStmtCst struct {
	cstBase
	AlterTok   Token
	UserTok    []Token
	ServiceTok []Token
	AccountTok []Token
	Name       Token

	EnableTok   []Token
	DisableTok  []Token
	WithTok     []Token
	PasswordTok []Token
	Password    []Token
	NoTok       []Token
	CreateTok   []Token
	DropTok     []Token
	TokenTok    []Token
	TypeTok     []Token
	TokenType   []Token
	TtlTok      []Token
	TtlValue    []Token
	RefreshTok  []Token
	DropToken   []Token
}

func (*AlterUserStmtCst) RuleName() string { return "alterUserStatement" }
func (*AlterUserStmtCst) statementCst()    {}

// ---------------------------------------------------------------------------
// DROP / RENAME / TRUNCATE and table maintenance
// ---------------------------------------------------------------------------

// DropStmtCst covers every DROP variant; the object keyword tokens
// select the statement kind.
type DropStmtCst struct {
	cstBase
	DropTok    Token
	TableTok   []Token
	MatTok     []Token
	ViewTok    []Token
	UserTok    []Token
	GroupTok   []Token
	ServiceTok []Token
	AccountTok []Token
	AllTok     []Token
	TablesTok  []Token
	IfToks     []Token
	Name       *QualifiedNameCst
	EntityName []Token
}

func (*DropStmtCst) RuleName() string { return "dropStatement" }
func (*DropStmtCst) statementCst()    {}

// RenameTableStmtCst is RENAME TABLE a TO b.
type RenameTableStmtCst struct {
	cstBase
	RenameTok Token
	TableTok  Token
	From      *QualifiedNameCst
	ToTok     Token
	To        *QualifiedNameCst
}

func (*RenameTableStmtCst) RuleName() string { return "renameTableStatement" }
func (*RenameTableStmtCst) statementCst()    {}

// TruncateStmtCst is TRUNCATE TABLE t.
type TruncateStmtCst struct {
	cstBase
	TruncateTok Token
	TableTok    Token
	Table       *QualifiedNameCst
}

func (*TruncateStmtCst) RuleName() string { return "truncateTableStatement" }
func (*TruncateStmtCst) statementCst()    {}

// VacuumStmtCst is VACUUM TABLE t.
type VacuumStmtCst struct {
	cstBase
	VacuumTok Token
	TableTok  Token
	Table     *QualifiedNameCst
}

func (*VacuumStmtCst) RuleName() string { return "vacuumTableStatement" }
func (*VacuumStmtCst) statementCst()    {}

// ReindexStmtCst is REINDEX TABLE with its narrowing options.
type ReindexStmtCst struct {
	cstBase
	ReindexTok Token
	TableTok   Token
	Table      *QualifiedNameCst
	ColumnTok  []Token
	Column     []Token
	PartTok    []Token
	Partition  []Token
	LockToks   []Token
}

func (*ReindexStmtCst) RuleName() string { return "reindexTableStatement" }
func (*ReindexStmtCst) statementCst()    {}

// CheckpointStmtCst is CHECKPOINT CREATE or CHECKPOINT RELEASE.
type CheckpointStmtCst struct {
	cstBase
	CheckpointTok Token
	CreateTok     []Token
	ReleaseTok    []Token
}

func (*CheckpointStmtCst) RuleName() string { return "checkpointStatement" }
func (*CheckpointStmtCst) statementCst()    {}

// SnapshotStmtCst is SNAPSHOT PREPARE or SNAPSHOT COMPLETE.
type SnapshotStmtCst struct {
	cstBase
	SnapshotTok Token
	PrepareTok  []Token
	CompleteTok []Token
}

func (*SnapshotStmtCst) RuleName() string { return "snapshotStatement" }
func (*SnapshotStmtCst) statementCst()    {}

// BackupStmtCst is BACKUP TABLE list or BACKUP DATABASE.
type BackupStmtCst struct {
	cstBase
	BackupTok   Token
	TableTok    []Token
	Tables      []*QualifiedNameCst
	DatabaseTok []Token
}

func (*BackupStmtCst) RuleName() string { return "backupStatement" }
func (*BackupStmtCst) statementCst()    {}

// CopyOptionCst is one COPY option; the multi-word option names keep
// all their keyword tokens.
type CopyOptionCst struct {
	cstBase
	NameToks []Token
	Value    *ExpressionCst
}

func (*CopyOptionCst) RuleName() string { return "copyOption" }

// CopyStmtCst is a COPY import or cancellation.
type CopyStmtCst struct {
	cstBase
	CopyTok   Token
	Target    *QualifiedNameCst
	FromTok   []Token
	FromFile  []Token
	CancelTok []Token
	WithTok   []Token
	Options   []*CopyOptionCst
}

func (*CopyStmtCst) RuleName() string { return "copyStatement" }
func (*CopyStmtCst) statementCst()    {}

// ---------------------------------------------------------------------------
// Users, groups, service accounts, permissions
// ---------------------------------------------------------------------------

// CreateUserStmtCst is CREATE USER.
type CreateUserStmtCst struct {
	cstBase
	CreateTok   Token
	UserTok     Token
	IfToks      []Token
	Name        Token
	WithTok     []Token
	PasswordTok []Token
	Password    []Token
	NoTok       []Token
}

func (*CreateUserStmtCst) RuleName() string { return "createUserStatement" }
func (*CreateUserStmtCst) statementCst()    {}

// CreateGroupStmtCst is CREATE GROUP.
type CreateGroupStmtCst struct {
	cstBase
	CreateTok Token
	GroupTok  Token
	IfToks    []Token
	Name      Token
}

func (*CreateGroupStmtCst) RuleName() string { return "createGroupStatement" }
func (*CreateGroupStmtCst) statementCst()    {}

// CreateServiceAccountStmtCst is CREATE SERVICE ACCOUNT.
type CreateServiceAccountStmtCst struct {
	cstBase
	CreateTok  Token
	ServiceTok Token
	AccountTok Token
	IfToks     []Token
	Name       Token
	OwnedToks  []Token
	Owner      []Token
}

func (*CreateServiceAccountStmtCst) RuleName() string { return "createServiceAccountStatement" }
func (*CreateServiceAccountStmtCst) statementCst()    {}

// AddUserStmtCst is ADD USER u TO groups.
type AddUserStmtCst struct {
	cstBase
	AddTok  Token
	UserTok Token
	User    Token
	ToTok   Token
	Groups  []Token
}

func (*AddUserStmtCst) RuleName() string { return "addUserStatement" }
func (*AddUserStmtCst) statementCst()    {}

// RemoveUserStmtCst is REMOVE USER u FROM groups.
type RemoveUserStmtCst struct {
	cstBase
	RemoveTok Token
	UserTok   Token
	User      Token
	FromTok   Token
	Groups    []Token
}

func (*RemoveUserStmtCst) RuleName() string { return "removeUserStatement" }
func (*RemoveUserStmtCst) statementCst()    {}

// PermissionTargetCst is one grant target, optionally with a column
// list.
type PermissionTargetCst struct {
	cstBase
	Table   *QualifiedNameCst
	Columns []Token
}

func (*PermissionTargetCst) RuleName() string { return "permissionTarget" }

// GrantStmtCst is GRANT permissions or GRANT ASSUME SERVICE ACCOUNT.
type GrantStmtCst struct {
	cstBase
	GrantTok      Token
	AssumeToks    []Token
	AssumeAccount []Token
	Permissions   []Token
	OnTok         []Token
	AllTok        []Token
	TablesTok     []Token
	Targets       []*PermissionTargetCst
	ToTok         Token
	Entity        Token
	WithToks      []Token
	OptionTok     []Token
	VerifyTok     []Token
}

func (*GrantStmtCst) RuleName() string { return "grantStatement" }
func (*GrantStmtCst) statementCst()    {}

// RevokeStmtCst is REVOKE permissions or REVOKE ASSUME SERVICE ACCOUNT.
type RevokeStmtCst struct {
	cstBase
	RevokeTok     Token
	AssumeToks    []Token
	AssumeAccount []Token
	Permissions   []Token
	OnTok         []Token
	AllTok        []Token
	TablesTok     []Token
	Targets       []*PermissionTargetCst
	FromTok       Token
	Entity        Token
}

func (*RevokeStmtCst) RuleName() string { return "revokeStatement" }
func (*RevokeStmtCst) statementCst()    {}

// AssumeStmtCst is ASSUME SERVICE ACCOUNT s.
type AssumeStmtCst struct {
	cstBase
	AssumeTok  Token
	ServiceTok Token
	AccountTok Token
	Account    Token
}

func (*AssumeStmtCst) RuleName() string { return "assumeServiceAccountStatement" }
func (*AssumeStmtCst) statementCst()    {}

// ExitStmtCst is EXIT SERVICE ACCOUNT [s].
type ExitStmtCst struct {
	cstBase
	ExitTok    Token
	ServiceTok Token
	AccountTok Token
	Account    []Token
}

func (*ExitStmtCst) RuleName() string { return "exitServiceAccountStatement" }
func (*ExitStmtCst) statementCst()    {}

// ---------------------------------------------------------------------------
// SHOW / EXPLAIN
// ---------------------------------------------------------------------------

// ShowStmtCst keeps everything after SHOW as raw tokens plus the
// optional FROM target; the visitor pattern-matches the variant.
type ShowStmtCst struct {
	cstBase
	ShowTok  Token
	KindToks []Token
	FromTok  []Token
	Target   *QualifiedNameCst
	Entity   []Token
}

func (*ShowStmtCst) RuleName() string { return "showStatement" }
func (*ShowStmtCst) statementCst()    {}

// ExplainStmtCst wraps any statement, with an optional (FORMAT x)
// option list.
type ExplainStmtCst struct {
	cstBase
	ExplainTok Token
	FormatTok  []Token
	FormatVal  []Token
	Statement  StatementCst
}

func (*ExplainStmtCst) RuleName() string { return "explainStatement" }
func (*ExplainStmtCst) statementCst()    {}

// allRuleNames lists every CST rule in the grammar. The visitor checks
// its handler table against this at init time so a new rule cannot be
// added without a matching handler.
var allRuleNames = []string{
	"expression",
	"andExpression",
	"notExpression",
	"equalityExpression",
	"isNullSuffix",
	"relationalExpression",
	"inSuffix",
	"betweenSuffix",
	"withinSuffix",
	"membershipExpression",
	"bitOrExpression",
	"bitXorExpression",
	"bitAndExpression",
	"concatExpression",
	"ipv4Expression",
	"additiveExpression",
	"multiplicativeExpression",
	"unaryExpression",
	"postfixExpression",
	"primaryExpression",
	"caseExpression",
	"whenClause",
	"castFunction",
	"functionCall",
	"columnRef",
	"arrayLiteral",
	"frameBound",
	"windowSpecification",
	"typeName",
	"qualifiedName",

	"withItem",
	"selectColumn",
	"tableExpression",
	"joinClause",
	"latestOnClause",
	"sampleByClause",
	"orderByItem",
	"limitClause",
	"setOperation",
	"selectStatement",
	"valuesRow",
	"insertStatement",
	"updateAssignment",
	"updateStatement",
	"pivotAggregation",
	"pivotInValue",
	"pivotForClause",
	"pivotStatement",
	"columnDefinition",
	"indexClause",
	"castTypeClause",
	"ttlClause",
	"withParameter",
	"createTableStatement",
	"createMatViewStatement",
	"createViewStatement",
	"alterTableCommand",
	"alterTableStatement",
	"alterMatViewStatement",
	"alterUserStatement",
	"dropStatement",
	"renameTableStatement",
	"truncateTableStatement",
	"vacuumTableStatement",
	"reindexTableStatement",
	"checkpointStatement",
	"snapshotStatement",
	"backupStatement",
	"copyOption",
	"copyStatement",
	"createUserStatement",
	"createGroupStatement",
	"createServiceAccountStatement",
	"addUserStatement",
	"removeUserStatement",
	"permissionTarget",
	"grantStatement",
	"revokeStatement",
	"assumeServiceAccountStatement",
	"exitServiceAccountStatement",
	"showStatement",
	"explainStatement",
}
