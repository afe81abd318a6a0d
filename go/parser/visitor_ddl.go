/*
 * DDL lowering: CREATE TABLE and views, the ALTER subcommand set,
 * DROP, RENAME and TRUNCATE.
 *
 * ALTER TABLE t RESUME WAL and ALTER TABLE t SET TYPE surface as their
 * own statement kinds even though the grammar parses them as ALTER
 * subcommands, so visitAlterTable fans out before the generic command
 * lowering.
 */

package parser

import "github.com/chronoql/chronoql/go/parser/ast"

func partitionUnit(tok Token) ast.PartitionUnit {
	switch tok.Kw {
	case KwHour:
		return ast.PartitionHour
	case KwDay:
		return ast.PartitionDay
	case KwWeek:
		return ast.PartitionWeek
	case KwMonth:
		return ast.PartitionMonth
	case KwYear:
		return ast.PartitionYear
	}
	return ast.PartitionNone
}

// ttlUnits maps duration unit letters onto retention units. There is
// no entry for minutes, so a TTL written as 90m falls through to days.
var ttlUnits = map[string]ast.TtlUnit{
	"h": ast.TtlHours,
	"d": ast.TtlDays,
	"w": ast.TtlWeeks,
	"M": ast.TtlMonths,
	"y": ast.TtlYears,
}

func (v *visitor) visitTtl(cst *TtlCst) (*ast.TtlClause, error) {
	if cst == nil {
		return nil, missing("retention clause")
	}
	ttl := &ast.TtlClause{BaseNode: ast.BaseNode{Tag: ast.T_TtlClause, Loc: cst.Pos()}}
	switch cst.Value.Kind {
	case TokenDuration:
		dur, err := durationLiteral(cst.Value)
		if err != nil {
			return nil, err
		}
		raw := cst.Value.Text[:len(cst.Value.Text)-1]
		ttl.Value = ast.NewNumberLiteral(raw, dur.Magnitude, cst.Value.Pos)
		unit, ok := ttlUnits[dur.Unit]
		if !ok {
			unit = ast.TtlDays
		}
		ttl.Unit = unit
	case TokenNumber:
		value, err := numberLiteral(cst.Value)
		if err != nil {
			return nil, err
		}
		ttl.Value = value
		if len(cst.UnitToks) == 0 {
			return nil, missing("retention unit")
		}
		switch cst.UnitToks[0].Kw {
		case KwHour, KwHours:
			ttl.Unit = ast.TtlHours
		case KwDay, KwDays:
			ttl.Unit = ast.TtlDays
		case KwWeek, KwWeeks:
			ttl.Unit = ast.TtlWeeks
		case KwMonth, KwMonths:
			ttl.Unit = ast.TtlMonths
		case KwYear, KwYears:
			ttl.Unit = ast.TtlYears
		}
	default:
		return nil, missing("retention period")
	}
	return ttl, nil
}

// visitColumnDef attributes each CAPACITY pair by position: one ahead
// of the INDEX keyword sizes the symbol table, one after it sizes the
// index blocks. Without INDEX every capacity is a symbol capacity.
func (v *visitor) visitColumnDef(cst *ColumnDefCst) (*ast.ColumnDef, error) {
	if cst == nil {
		return nil, missing("column definition")
	}
	def := &ast.ColumnDef{
		BaseNode: ast.BaseNode{Tag: ast.T_ColumnDef, Loc: cst.Pos()},
		Name:     cst.Name.IdentValue(),
	}
	typ, err := v.visitTypeName(cst.Type)
	if err != nil {
		return nil, err
	}
	def.Type = typ
	switch {
	case len(cst.CacheTok) > 0:
		val := true
		def.Cache = &val
	case len(cst.NocacheTok) > 0:
		val := false
		def.Cache = &val
	}
	def.Indexed = len(cst.IndexTok) > 0
	indexPos := -1
	if def.Indexed {
		indexPos = cst.IndexTok[0].Pos
	}
	for i, capTok := range cst.CapacityToks {
		if i >= len(cst.Capacities) {
			return nil, missing("capacity value")
		}
		value, err := numberLiteral(cst.Capacities[i])
		if err != nil {
			return nil, err
		}
		if indexPos >= 0 && capTok.Pos > indexPos {
			def.IndexCapacity = value
		} else {
			def.SymbolCapacity = value
		}
	}
	return def, nil
}

func (v *visitor) visitIndexClause(cst *IndexClauseCst) (*ast.IndexClause, error) {
	if cst == nil {
		return nil, missing("index clause")
	}
	ic := &ast.IndexClause{
		BaseNode: ast.BaseNode{Tag: ast.T_IndexClause, Loc: cst.Pos()},
		Column:   cst.Column.IdentValue(),
	}
	if len(cst.Capacity) > 0 {
		capacity, err := numberLiteral(cst.Capacity[0])
		if err != nil {
			return nil, err
		}
		ic.Capacity = capacity
	}
	return ic, nil
}

func (v *visitor) visitCastType(cst *CastTypeCst) (*ast.CastTypeClause, error) {
	if cst == nil {
		return nil, missing("cast clause")
	}
	column, err := v.visitQualifiedName(cst.Column)
	if err != nil {
		return nil, err
	}
	typ, err := v.visitTypeName(cst.Type)
	if err != nil {
		return nil, err
	}
	return &ast.CastTypeClause{
		BaseNode: ast.BaseNode{Tag: ast.T_CastTypeClause, Loc: cst.Pos()},
		Column:   column,
		Type:     typ,
	}, nil
}

func (v *visitor) visitWithParam(cst *WithParamCst) (ast.WithParam, error) {
	if cst == nil {
		return ast.WithParam{}, missing("table parameter")
	}
	value, err := v.visitExpr(cst.Value)
	if err != nil {
		return ast.WithParam{}, err
	}
	return ast.WithParam{Name: cst.Name.IdentValue(), Value: value}, nil
}

func (v *visitor) visitCreateTable(cst *CreateTableStmtCst) (*ast.CreateTableStmt, error) {
	if cst == nil {
		return nil, missing("create statement")
	}
	stmt := &ast.CreateTableStmt{
		BaseNode:    ast.BaseNode{Tag: ast.T_CreateTableStmt, Loc: cst.Pos()},
		IfNotExists: len(cst.IfToks) > 0,
	}
	name, err := v.visitQualifiedName(cst.Name)
	if err != nil {
		return nil, err
	}
	stmt.Name = name
	switch {
	case cst.AsSelect != nil:
		query, err := v.visitSelect(cst.AsSelect)
		if err != nil {
			return nil, err
		}
		stmt.AsSelect = query
	case cst.LikeName != nil:
		like, err := v.visitQualifiedName(cst.LikeName)
		if err != nil {
			return nil, err
		}
		stmt.Like = like
	case len(cst.Columns) > 0:
		for _, c := range cst.Columns {
			def, err := v.visitColumnDef(c)
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, def)
		}
	default:
		return nil, missing("column list or query")
	}
	for _, ix := range cst.Indexes {
		clause, err := v.visitIndexClause(ix)
		if err != nil {
			return nil, err
		}
		stmt.Indexes = append(stmt.Indexes, clause)
	}
	for _, c := range cst.Casts {
		clause, err := v.visitCastType(c)
		if err != nil {
			return nil, err
		}
		stmt.Casts = append(stmt.Casts, clause)
	}
	if len(cst.TimestampCol) > 0 {
		stmt.Timestamp = cst.TimestampCol[0].IdentValue()
	}
	if len(cst.PartUnit) > 0 {
		stmt.PartitionBy = partitionUnit(cst.PartUnit[0])
	}
	if cst.Ttl != nil {
		ttl, err := v.visitTtl(cst.Ttl)
		if err != nil {
			return nil, err
		}
		stmt.Ttl = ttl
	}
	if len(cst.WalTok) > 0 {
		wal := len(cst.BypassTok) == 0
		stmt.Wal = &wal
	}
	for _, p := range cst.Params {
		param, err := v.visitWithParam(p)
		if err != nil {
			return nil, err
		}
		stmt.WithParams = append(stmt.WithParams, param)
	}
	stmt.DedupKeys = identList(cst.DedupKeys)
	if len(cst.Volume) > 0 {
		stmt.Volume = identValue(cst.Volume[0])
	}
	return stmt, nil
}

func (v *visitor) visitCreateMatView(cst *CreateMatViewStmtCst) (*ast.CreateMatViewStmt, error) {
	if cst == nil {
		return nil, missing("create statement")
	}
	stmt := &ast.CreateMatViewStmt{
		BaseNode:    ast.BaseNode{Tag: ast.T_CreateMatViewStmt, Loc: cst.Pos()},
		IfNotExists: len(cst.IfToks) > 0,
	}
	name, err := v.visitQualifiedName(cst.Name)
	if err != nil {
		return nil, err
	}
	stmt.Name = name
	if cst.Base != nil {
		base, err := v.visitQualifiedName(cst.Base)
		if err != nil {
			return nil, err
		}
		stmt.Base = base
	}
	switch {
	case len(cst.ImmediateTok) > 0:
		stmt.Refresh = ast.RefreshImmediate
	case len(cst.ManualTok) > 0:
		stmt.Refresh = ast.RefreshManual
	case len(cst.EveryTok) > 0:
		stmt.Refresh = ast.RefreshEvery
		every, err := v.visitExpr(cst.Every)
		if err != nil {
			return nil, err
		}
		stmt.Every = every
	}
	if cst.AsSelect == nil {
		return nil, missing("view query")
	}
	query, err := v.visitSelect(cst.AsSelect)
	if err != nil {
		return nil, err
	}
	stmt.AsSelect = query
	if len(cst.PartUnit) > 0 {
		stmt.PartitionBy = partitionUnit(cst.PartUnit[0])
	}
	if cst.Ttl != nil {
		ttl, err := v.visitTtl(cst.Ttl)
		if err != nil {
			return nil, err
		}
		stmt.Ttl = ttl
	}
	return stmt, nil
}

func (v *visitor) visitCreateView(cst *CreateViewStmtCst) (*ast.CreateViewStmt, error) {
	if cst == nil {
		return nil, missing("create statement")
	}
	stmt := &ast.CreateViewStmt{
		BaseNode:    ast.BaseNode{Tag: ast.T_CreateViewStmt, Loc: cst.Pos()},
		IfNotExists: len(cst.IfToks) > 0,
	}
	name, err := v.visitQualifiedName(cst.Name)
	if err != nil {
		return nil, err
	}
	stmt.Name = name
	if cst.AsSelect == nil {
		return nil, missing("view query")
	}
	query, err := v.visitSelect(cst.AsSelect)
	if err != nil {
		return nil, err
	}
	stmt.AsSelect = query
	return stmt, nil
}

func (v *visitor) visitAlterTable(cst *AlterTableStmtCst) (ast.Statement, error) {
	if cst == nil {
		return nil, missing("alter statement")
	}
	table, err := v.visitQualifiedName(cst.Table)
	if err != nil {
		return nil, err
	}
	cmd := cst.Cmd
	if cmd == nil {
		return nil, missing("table action")
	}
	switch {
	case len(cmd.ResumeTok) > 0:
		stmt := &ast.ResumeWalStmt{
			BaseNode: ast.BaseNode{Tag: ast.T_ResumeWalStmt, Loc: cst.Pos()},
			Table:    table,
		}
		if len(cmd.TxnValue) > 0 {
			txn, err := numberLiteral(cmd.TxnValue[0])
			if err != nil {
				return nil, err
			}
			stmt.FromTxn = txn
		} else if len(cmd.FromTok) > 0 {
			return nil, missing("transaction number")
		}
		return stmt, nil
	case len(cmd.SetTok) > 0 && len(cmd.TypeTok) > 0:
		return &ast.SetTypeStmt{
			BaseNode: ast.BaseNode{Tag: ast.T_SetTypeStmt, Loc: cst.Pos()},
			Table:    table,
			Bypass:   len(cmd.BypassTok) > 0,
		}, nil
	}
	action, err := v.visitAlterTableCmd(cmd)
	if err != nil {
		return nil, err
	}
	return &ast.AlterTableStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_AlterTableStmt, Loc: cst.Pos()},
		Table:    table,
		Cmd:      action,
	}, nil
}

func (v *visitor) visitAlterTableCmd(cmd *AlterTableCmdCst) (*ast.AlterTableCmd, error) {
	out := &ast.AlterTableCmd{BaseNode: ast.BaseNode{Tag: ast.T_AlterTableCmd, Loc: cmd.Pos()}}
	switch {
	case len(cmd.AddTok) > 0:
		out.Type = ast.AtAddColumn
		def, err := v.visitColumnDef(cmd.AddColumnDef)
		if err != nil {
			return nil, err
		}
		out.ColumnDef = def

	case len(cmd.DropTok) > 0 && len(cmd.DropColumn) > 0:
		out.Type = ast.AtDropColumn
		out.Column = cmd.DropColumn[0].IdentValue()

	case len(cmd.DropTok) > 0 && len(cmd.PartTok) > 0:
		out.Type = ast.AtDropPartition
		if err := v.visitPartitionSelector(cmd, out); err != nil {
			return nil, err
		}

	case len(cmd.RenameTok) > 0:
		out.Type = ast.AtRenameColumn
		if len(cmd.RenameFrom) == 0 || len(cmd.RenameTo) == 0 {
			return nil, missing("column name")
		}
		out.Column = cmd.RenameFrom[0].IdentValue()
		out.NewName = cmd.RenameTo[0].IdentValue()

	case len(cmd.AlterTok) > 0:
		if len(cmd.AlterColumn) == 0 {
			return nil, missing("column name")
		}
		out.Column = cmd.AlterColumn[0].IdentValue()
		switch {
		case len(cmd.AddIndexTok) > 0:
			out.Type = ast.AtColumnAddIndex
			if len(cmd.Capacity) > 0 {
				capacity, err := numberLiteral(cmd.Capacity[0])
				if err != nil {
					return nil, err
				}
				out.Capacity = capacity
			}
		case len(cmd.DropIndexTok) > 0:
			out.Type = ast.AtColumnDropIndex
		case len(cmd.CacheTok) > 0:
			out.Type = ast.AtColumnCache
		case len(cmd.NocacheTok) > 0:
			out.Type = ast.AtColumnNoCache
		case cmd.Type != nil:
			out.Type = ast.AtColumnType
			typ, err := v.visitTypeName(cmd.Type)
			if err != nil {
				return nil, err
			}
			out.TypeName = typ
		case len(cmd.SymbolTok) > 0:
			out.Type = ast.AtColumnSymbolCapacity
			if len(cmd.Capacity) == 0 {
				return nil, missing("capacity value")
			}
			capacity, err := numberLiteral(cmd.Capacity[0])
			if err != nil {
				return nil, err
			}
			out.Capacity = capacity
		default:
			return nil, missing("column action")
		}

	case len(cmd.AttachTok) > 0:
		out.Type = ast.AtAttachPartition
		if err := v.visitPartitionSelector(cmd, out); err != nil {
			return nil, err
		}

	case len(cmd.DetachTok) > 0:
		out.Type = ast.AtDetachPartition
		if err := v.visitPartitionSelector(cmd, out); err != nil {
			return nil, err
		}

	case len(cmd.SquashTok) > 0:
		out.Type = ast.AtSquashPartitions

	case len(cmd.ParamTok) > 0:
		out.Type = ast.AtSetParam
		if len(cmd.ParamName) == 0 {
			return nil, missing("parameter name")
		}
		out.Param = cmd.ParamName[0].IdentValue()
		value, err := v.visitExpr(cmd.ParamVal)
		if err != nil {
			return nil, err
		}
		out.Value = value

	case cmd.Ttl != nil && len(cmd.SetTok) > 0:
		out.Type = ast.AtSetTtl
		ttl, err := v.visitTtl(cmd.Ttl)
		if err != nil {
			return nil, err
		}
		out.Ttl = ttl

	case len(cmd.EnableTok) > 0:
		out.Type = ast.AtDedupEnable
		if len(cmd.DedupKeys) == 0 {
			return nil, missing("upsert key")
		}
		out.DedupKeys = identList(cmd.DedupKeys)

	case len(cmd.DisableTok) > 0:
		out.Type = ast.AtDedupDisable

	case len(cmd.SuspendTok) > 0:
		out.Type = ast.AtSuspendWal

	default:
		return nil, missing("table action")
	}
	return out, nil
}

func (v *visitor) visitPartitionSelector(cmd *AlterTableCmdCst, out *ast.AlterTableCmd) error {
	if cmd.PartWhere != nil {
		where, err := v.visitExpr(cmd.PartWhere)
		if err != nil {
			return err
		}
		out.PartitionWhere = where
		return nil
	}
	if len(cmd.PartItems) == 0 {
		return missing("partition list")
	}
	for _, item := range cmd.PartItems {
		e, err := v.visitExpr(item)
		if err != nil {
			return err
		}
		out.PartitionList = append(out.PartitionList, e)
	}
	return nil
}

func (v *visitor) visitAlterMatView(cst *AlterMatViewStmtCst) (*ast.AlterMatViewStmt, error) {
	if cst == nil {
		return nil, missing("alter statement")
	}
	stmt := &ast.AlterMatViewStmt{BaseNode: ast.BaseNode{Tag: ast.T_AlterMatViewStmt, Loc: cst.Pos()}}
	view, err := v.visitQualifiedName(cst.View)
	if err != nil {
		return nil, err
	}
	stmt.View = view
	switch {
	case len(cst.ImmediateTok) > 0:
		stmt.Refresh = ast.RefreshImmediate
	case len(cst.ManualTok) > 0:
		stmt.Refresh = ast.RefreshManual
	case len(cst.EveryTok) > 0:
		stmt.Refresh = ast.RefreshEvery
		every, err := v.visitExpr(cst.Every)
		if err != nil {
			return nil, err
		}
		stmt.Every = every
	case cst.Ttl != nil:
		ttl, err := v.visitTtl(cst.Ttl)
		if err != nil {
			return nil, err
		}
		stmt.Ttl = ttl
	default:
		return nil, missing("view action")
	}
	return stmt, nil
}

func (v *visitor) visitDrop(cst *DropStmtCst) (ast.Statement, error) {
	if cst == nil {
		return nil, missing("drop statement")
	}
	ifExists := len(cst.IfToks) > 0
	base := func(tag ast.NodeTag) ast.BaseNode {
		return ast.BaseNode{Tag: tag, Loc: cst.Pos()}
	}
	entity := func() (string, error) {
		if len(cst.EntityName) == 0 {
			return "", missing("name")
		}
		return cst.EntityName[0].IdentValue(), nil
	}
	switch {
	case len(cst.TableTok) > 0:
		name, err := v.visitQualifiedName(cst.Name)
		if err != nil {
			return nil, err
		}
		return &ast.DropTableStmt{BaseNode: base(ast.T_DropTableStmt), IfExists: ifExists, Table: name}, nil
	case len(cst.MatTok) > 0:
		name, err := v.visitQualifiedName(cst.Name)
		if err != nil {
			return nil, err
		}
		return &ast.DropMatViewStmt{BaseNode: base(ast.T_DropMatViewStmt), IfExists: ifExists, View: name}, nil
	case len(cst.ViewTok) > 0:
		name, err := v.visitQualifiedName(cst.Name)
		if err != nil {
			return nil, err
		}
		return &ast.DropViewStmt{BaseNode: base(ast.T_DropViewStmt), IfExists: ifExists, View: name}, nil
	case len(cst.UserTok) > 0:
		name, err := entity()
		if err != nil {
			return nil, err
		}
		return &ast.DropUserStmt{BaseNode: base(ast.T_DropUserStmt), IfExists: ifExists, Name: name}, nil
	case len(cst.GroupTok) > 0:
		name, err := entity()
		if err != nil {
			return nil, err
		}
		return &ast.DropGroupStmt{BaseNode: base(ast.T_DropGroupStmt), IfExists: ifExists, Name: name}, nil
	case len(cst.ServiceTok) > 0:
		name, err := entity()
		if err != nil {
			return nil, err
		}
		return &ast.DropServiceAccountStmt{BaseNode: base(ast.T_DropServiceAccountStmt), IfExists: ifExists, Name: name}, nil
	case len(cst.AllTok) > 0:
		return &ast.DropAllTablesStmt{BaseNode: base(ast.T_DropAllTablesStmt)}, nil
	}
	return nil, missing("drop object")
}

func (v *visitor) visitRenameTable(cst *RenameTableStmtCst) (*ast.RenameTableStmt, error) {
	if cst == nil {
		return nil, missing("rename statement")
	}
	from, err := v.visitQualifiedName(cst.From)
	if err != nil {
		return nil, err
	}
	to, err := v.visitQualifiedName(cst.To)
	if err != nil {
		return nil, err
	}
	return &ast.RenameTableStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_RenameTableStmt, Loc: cst.Pos()},
		From:     from,
		To:       to,
	}, nil
}

func (v *visitor) visitTruncate(cst *TruncateStmtCst) (*ast.TruncateTableStmt, error) {
	if cst == nil {
		return nil, missing("truncate statement")
	}
	table, err := v.visitQualifiedName(cst.Table)
	if err != nil {
		return nil, err
	}
	return &ast.TruncateTableStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_TruncateTableStmt, Loc: cst.Pos()},
		Table:    table,
	}, nil
}
