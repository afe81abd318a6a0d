/*
 * DDL grammar: CREATE TABLE with its symbol and WAL options, views and
 * materialized views, the ALTER subcommand set, DROP, RENAME and
 * TRUNCATE.
 */

package parser

func (p *grammar) parseCreateTable() *CreateTableStmtCst {
	cst := &CreateTableStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.CreateTok = p.expectKw(KwCreate)
	cst.TableTok = p.expectKw(KwTable)
	if p.atKw(KwIf) {
		cst.IfToks = append(cst.IfToks, p.next(), p.expectKw(KwNot), p.expectKw(KwExists))
	}
	cst.Name = p.parseTableName()
	switch {
	case p.at(TokenLParen):
		p.next()
		if p.atKw(KwLike) {
			cst.LikeTok = append(cst.LikeTok, p.next())
			cst.LikeName = p.parseTableName()
		} else {
			p.parseColumnList(cst)
		}
		p.expect(TokenRParen)
	case p.atKw(KwAs):
		cst.AsTok = append(cst.AsTok, p.next())
		p.expect(TokenLParen)
		cst.AsSelect = p.parseParenQuery()
		p.expect(TokenRParen)
	default:
		p.failExpected("'(' or AS")
	}
	p.parseCreateTableTail(cst)
	return cst
}

// parseParenQuery parses the body of an already-opened parenthesized
// query, keyworded or from-first.
func (p *grammar) parseParenQuery() *SelectStmtCst {
	if p.atKw(KwSelect) || p.atKw(KwWith) {
		return p.parseSelectWithSetOps()
	}
	return p.parseImplicitSelect(p.parseTableExpr())
}

// parseColumnList fills the column definitions of the plain CREATE
// TABLE form. INDEX and CAST clauses interleave with the columns.
func (p *grammar) parseColumnList(cst *CreateTableStmtCst) {
	for {
		switch {
		case p.atKw(KwIndex) && p.peek(1).Is(TokenLParen):
			cst.Indexes = append(cst.Indexes, p.parseIndexClause())
		case p.atKw(KwCast) && p.peek(1).Is(TokenLParen):
			cst.Casts = append(cst.Casts, p.parseCastType())
		default:
			cst.Columns = append(cst.Columns, p.parseColumnDef())
		}
		if p.at(TokenComma) {
			p.next()
			continue
		}
		return
	}
}

// parseCreateTableTail consumes the clauses after the column list or
// the AS query. Leading-comma INDEX and CAST clauses also land here:
// the serializer prints them after the closing parenthesis, so the
// grammar admits that shape back.
func (p *grammar) parseCreateTableTail(cst *CreateTableStmtCst) {
	for {
		switch {
		case p.at(TokenComma) && p.peek(1).IsKw(KwIndex):
			p.next()
			cst.Indexes = append(cst.Indexes, p.parseIndexClause())
		case p.at(TokenComma) && p.peek(1).IsKw(KwCast):
			p.next()
			cst.Casts = append(cst.Casts, p.parseCastType())
		case p.atKw(KwTimestamp):
			cst.TimestampTok = append(cst.TimestampTok, p.next())
			p.expect(TokenLParen)
			cst.TimestampCol = append(cst.TimestampCol, p.expectIdentLike("column name"))
			p.expect(TokenRParen)
		case p.atKw(KwPartition):
			cst.PartToks = append(cst.PartToks, p.next(), p.expectKw(KwBy))
			cst.PartUnit = append(cst.PartUnit, p.parsePartitionUnit())
		case p.atKw(KwTtl):
			cst.Ttl = p.parseTtl()
		case p.atKw(KwBypass):
			cst.BypassTok = append(cst.BypassTok, p.next())
			cst.WalTok = append(cst.WalTok, p.expectKw(KwWal))
		case p.atKw(KwWal):
			cst.WalTok = append(cst.WalTok, p.next())
		case p.atKw(KwWith):
			cst.WithTok = append(cst.WithTok, p.next())
			cst.Params = append(cst.Params, p.parseWithParam())
			for p.at(TokenComma) && p.peek(1).IdentLike() && p.peek(2).Is(TokenEq) {
				p.next()
				cst.Params = append(cst.Params, p.parseWithParam())
			}
		case p.atKw(KwDedup):
			cst.DedupToks = append(cst.DedupToks, p.next(),
				p.expectKw(KwUpsert), p.expectKw(KwKeys))
			p.expect(TokenLParen)
			cst.DedupKeys = p.parseIdentList("column name")
			p.expect(TokenRParen)
		case p.atKw(KwIn):
			cst.VolumeToks = append(cst.VolumeToks, p.next(), p.expectKw(KwVolume))
			if p.at(TokenString) {
				cst.Volume = append(cst.Volume, p.next())
			} else {
				cst.Volume = append(cst.Volume, p.expectIdentLike("volume name"))
			}
		default:
			return
		}
	}
}

// parseColumnDef matches name, type, then the symbol column options in
// any order. CAPACITY pairs stack up flat; whether one belongs to the
// symbol table or its index depends on where it sits relative to the
// INDEX keyword, which the visitor decides from offsets.
func (p *grammar) parseColumnDef() *ColumnDefCst {
	cst := &ColumnDefCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.Name = p.expectIdentLike("column name")
	cst.Type = p.parseTypeName()
	for {
		switch {
		case p.atKw(KwCapacity):
			cst.CapacityToks = append(cst.CapacityToks, p.next())
			cst.Capacities = append(cst.Capacities, p.expect(TokenNumber))
		case p.atKw(KwCache):
			cst.CacheTok = append(cst.CacheTok, p.next())
		case p.atKw(KwNocache):
			cst.NocacheTok = append(cst.NocacheTok, p.next())
		case p.atKw(KwIndex):
			cst.IndexTok = append(cst.IndexTok, p.next())
		default:
			return cst
		}
	}
}

func (p *grammar) parseIndexClause() *IndexClauseCst {
	cst := &IndexClauseCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.IndexTok = p.expectKw(KwIndex)
	p.expect(TokenLParen)
	cst.Column = p.expectIdentLike("column name")
	if p.atKw(KwCapacity) {
		cst.CapacityTok = append(cst.CapacityTok, p.next())
		cst.Capacity = append(cst.Capacity, p.expect(TokenNumber))
	}
	p.expect(TokenRParen)
	return cst
}

func (p *grammar) parseCastType() *CastTypeCst {
	cst := &CastTypeCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.CastTok = p.expectKw(KwCast)
	p.expect(TokenLParen)
	cst.Column = p.parseQualifiedName()
	cst.AsTok = p.expectKw(KwAs)
	cst.Type = p.parseTypeName()
	p.expect(TokenRParen)
	return cst
}

func (p *grammar) parseWithParam() *WithParamCst {
	cst := &WithParamCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.Name = p.expectIdentLike("parameter name")
	cst.EqTok = p.expect(TokenEq)
	cst.Value = p.parseExpression()
	return cst
}

// ---------------------------------------------------------------------------
// Materialized views and views
// ---------------------------------------------------------------------------

func (p *grammar) parseCreateMatView() *CreateMatViewStmtCst {
	cst := &CreateMatViewStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.CreateTok = p.expectKw(KwCreate)
	cst.MatTok = p.expectKw(KwMaterialized)
	cst.ViewTok = p.expectKw(KwView)
	if p.atKw(KwIf) {
		cst.IfToks = append(cst.IfToks, p.next(), p.expectKw(KwNot), p.expectKw(KwExists))
	}
	cst.Name = p.parseTableName()
	if p.atKw(KwWith) && p.peek(1).IsKw(KwBase) {
		cst.BaseToks = append(cst.BaseToks, p.next(), p.next())
		cst.Base = p.parseTableName()
	}
	if p.atKw(KwRefresh) {
		cst.RefreshTok = append(cst.RefreshTok, p.next())
		switch {
		case p.atKw(KwImmediate):
			cst.ImmediateTok = append(cst.ImmediateTok, p.next())
		case p.atKw(KwManual):
			cst.ManualTok = append(cst.ManualTok, p.next())
		case p.atKw(KwEvery):
			cst.EveryTok = append(cst.EveryTok, p.next())
			cst.Every = p.parseExpression()
		}
	}
	cst.AsTok = p.expectKw(KwAs)
	p.expect(TokenLParen)
	cst.AsSelect = p.parseParenQuery()
	p.expect(TokenRParen)
	if p.atKw(KwPartition) {
		cst.PartToks = append(cst.PartToks, p.next(), p.expectKw(KwBy))
		cst.PartUnit = append(cst.PartUnit, p.parsePartitionUnit())
	}
	if p.atKw(KwTtl) {
		cst.Ttl = p.parseTtl()
	}
	return cst
}

func (p *grammar) parseCreateView() *CreateViewStmtCst {
	cst := &CreateViewStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.CreateTok = p.expectKw(KwCreate)
	cst.ViewTok = p.expectKw(KwView)
	if p.atKw(KwIf) {
		cst.IfToks = append(cst.IfToks, p.next(), p.expectKw(KwNot), p.expectKw(KwExists))
	}
	cst.Name = p.parseTableName()
	cst.AsTok = p.expectKw(KwAs)
	p.expect(TokenLParen)
	cst.AsSelect = p.parseParenQuery()
	p.expect(TokenRParen)
	return cst
}

// ---------------------------------------------------------------------------
// ALTER TABLE / ALTER MATERIALIZED VIEW
// ---------------------------------------------------------------------------

func (p *grammar) parseAlterTable() *AlterTableStmtCst {
	cst := &AlterTableStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.AlterTok = p.expectKw(KwAlter)
	cst.TableTok = p.expectKw(KwTable)
	cst.Table = p.parseTableName()
	cst.Cmd = p.parseAlterTableCmd()
	return cst
}

func (p *grammar) parseAlterTableCmd() *AlterTableCmdCst {
	cmd := &AlterTableCmdCst{cstBase: cstBase{Start: p.cur().Pos}}
	switch {
	case p.atKw(KwAdd):
		cmd.AddTok = append(cmd.AddTok, p.next())
		if tok, ok := p.eatKw(KwColumn); ok {
			cmd.ColumnTok = append(cmd.ColumnTok, tok)
		}
		cmd.AddColumnDef = p.parseColumnDef()

	case p.atKw(KwDrop):
		cmd.DropTok = append(cmd.DropTok, p.next())
		switch {
		case p.atKw(KwColumn):
			cmd.ColumnTok = append(cmd.ColumnTok, p.next())
			cmd.DropColumn = append(cmd.DropColumn, p.expectIdentLike("column name"))
		case p.atKw(KwPartition):
			cmd.PartTok = append(cmd.PartTok, p.next())
			p.parsePartitionSelector(cmd)
		default:
			p.failExpected("COLUMN or PARTITION")
		}

	case p.atKw(KwRename):
		cmd.RenameTok = append(cmd.RenameTok, p.next())
		cmd.ColumnTok = append(cmd.ColumnTok, p.expectKw(KwColumn))
		cmd.RenameFrom = append(cmd.RenameFrom, p.expectIdentLike("column name"))
		cmd.ToTok = append(cmd.ToTok, p.expectKw(KwTo))
		cmd.RenameTo = append(cmd.RenameTo, p.expectIdentLike("column name"))

	case p.atKw(KwAlter):
		cmd.AlterTok = append(cmd.AlterTok, p.next())
		cmd.ColumnTok = append(cmd.ColumnTok, p.expectKw(KwColumn))
		cmd.AlterColumn = append(cmd.AlterColumn, p.expectIdentLike("column name"))
		switch {
		case p.atKw(KwAdd):
			cmd.AddIndexTok = append(cmd.AddIndexTok, p.next(), p.expectKw(KwIndex))
			if p.atKw(KwCapacity) {
				cmd.CapacityTok = append(cmd.CapacityTok, p.next())
				cmd.Capacity = append(cmd.Capacity, p.expect(TokenNumber))
			}
		case p.atKw(KwDrop):
			cmd.DropIndexTok = append(cmd.DropIndexTok, p.next(), p.expectKw(KwIndex))
		case p.atKw(KwCache):
			cmd.CacheTok = append(cmd.CacheTok, p.next())
		case p.atKw(KwNocache):
			cmd.NocacheTok = append(cmd.NocacheTok, p.next())
		case p.atKw(KwType):
			cmd.TypeTok = append(cmd.TypeTok, p.next())
			cmd.Type = p.parseTypeName()
		case p.atKw(KwSymbol):
			cmd.SymbolTok = append(cmd.SymbolTok, p.next())
			cmd.CapacityTok = append(cmd.CapacityTok, p.expectKw(KwCapacity))
			cmd.Capacity = append(cmd.Capacity, p.expect(TokenNumber))
		default:
			p.failExpected("ADD INDEX, DROP INDEX, CACHE, NOCACHE, TYPE or SYMBOL CAPACITY")
		}

	case p.atKw(KwAttach):
		cmd.AttachTok = append(cmd.AttachTok, p.next())
		cmd.PartTok = append(cmd.PartTok, p.expectKw(KwPartition))
		p.parsePartitionSelector(cmd)

	case p.atKw(KwDetach):
		cmd.DetachTok = append(cmd.DetachTok, p.next())
		cmd.PartTok = append(cmd.PartTok, p.expectKw(KwPartition))
		p.parsePartitionSelector(cmd)

	case p.atKw(KwSquash):
		cmd.SquashTok = append(cmd.SquashTok, p.next())
		cmd.PartsTok = append(cmd.PartsTok, p.expectKw(KwPartitions))

	case p.atKw(KwSet):
		cmd.SetTok = append(cmd.SetTok, p.next())
		switch {
		case p.atKw(KwParam):
			cmd.ParamTok = append(cmd.ParamTok, p.next())
			cmd.ParamName = append(cmd.ParamName, p.expectIdentLike("parameter name"))
			cmd.EqTok = append(cmd.EqTok, p.expect(TokenEq))
			cmd.ParamVal = p.parseExpression()
		case p.atKw(KwTtl):
			cmd.Ttl = p.parseTtl()
		case p.atKw(KwType):
			cmd.TypeTok = append(cmd.TypeTok, p.next())
			if tok, ok := p.eatKw(KwBypass); ok {
				cmd.BypassTok = append(cmd.BypassTok, tok)
			}
			cmd.WalTok = append(cmd.WalTok, p.expectKw(KwWal))
		default:
			p.failExpected("PARAM, TTL or TYPE")
		}

	case p.atKw(KwDedup):
		cmd.DedupTok = append(cmd.DedupTok, p.next())
		switch {
		case p.atKw(KwEnable):
			cmd.EnableTok = append(cmd.EnableTok, p.next())
			cmd.UpsertTok = append(cmd.UpsertTok, p.expectKw(KwUpsert))
			cmd.KeysTok = append(cmd.KeysTok, p.expectKw(KwKeys))
			p.expect(TokenLParen)
			cmd.DedupKeys = p.parseIdentList("column name")
			p.expect(TokenRParen)
		case p.atKw(KwDisable):
			cmd.DisableTok = append(cmd.DisableTok, p.next())
		default:
			p.failExpected("ENABLE or DISABLE")
		}

	case p.atKw(KwSuspend):
		cmd.SuspendTok = append(cmd.SuspendTok, p.next())
		cmd.WalTok = append(cmd.WalTok, p.expectKw(KwWal))

	case p.atKw(KwResume):
		cmd.ResumeTok = append(cmd.ResumeTok, p.next())
		cmd.WalTok = append(cmd.WalTok, p.expectKw(KwWal))
		if p.atKw(KwFrom) {
			cmd.FromTok = append(cmd.FromTok, p.next())
			switch {
			case p.atKw(KwTransaction), p.atKw(KwTxn):
				cmd.TxnTok = append(cmd.TxnTok, p.next())
			default:
				p.failExpected("TRANSACTION or TXN")
			}
			cmd.TxnValue = append(cmd.TxnValue, p.expect(TokenNumber))
		}

	default:
		p.failExpected("ALTER TABLE action")
	}
	return cmd
}

// parsePartitionSelector matches LIST expr [, ...] or WHERE expr after
// ATTACH/DETACH/DROP PARTITION.
func (p *grammar) parsePartitionSelector(cmd *AlterTableCmdCst) {
	switch {
	case p.atKw(KwList):
		cmd.ListTok = append(cmd.ListTok, p.next())
		cmd.PartItems = append(cmd.PartItems, p.parseExpression())
		for p.at(TokenComma) {
			p.next()
			cmd.PartItems = append(cmd.PartItems, p.parseExpression())
		}
	case p.atKw(KwWhere):
		cmd.WhereTok = append(cmd.WhereTok, p.next())
		cmd.PartWhere = p.parseExpression()
	default:
		p.failExpected("LIST or WHERE")
	}
}

func (p *grammar) parseAlterMatView() *AlterMatViewStmtCst {
	cst := &AlterMatViewStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.AlterTok = p.expectKw(KwAlter)
	cst.MatTok = p.expectKw(KwMaterialized)
	cst.ViewTok = p.expectKw(KwView)
	cst.View = p.parseTableName()
	cst.SetTok = append(cst.SetTok, p.expectKw(KwSet))
	switch {
	case p.atKw(KwRefresh):
		cst.RefreshTok = append(cst.RefreshTok, p.next())
		switch {
		case p.atKw(KwImmediate):
			cst.ImmediateTok = append(cst.ImmediateTok, p.next())
		case p.atKw(KwManual):
			cst.ManualTok = append(cst.ManualTok, p.next())
		case p.atKw(KwEvery):
			cst.EveryTok = append(cst.EveryTok, p.next())
			cst.Every = p.parseExpression()
		default:
			p.failExpected("IMMEDIATE, MANUAL or EVERY")
		}
	case p.atKw(KwTtl):
		cst.Ttl = p.parseTtl()
	default:
		p.failExpected("REFRESH or TTL")
	}
	return cst
}

// ---------------------------------------------------------------------------
// DROP / RENAME / TRUNCATE
// ---------------------------------------------------------------------------

func (p *grammar) parseDrop() *DropStmtCst {
	cst := &DropStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.DropTok = p.expectKw(KwDrop)
	switch {
	case p.atKw(KwTable):
		cst.TableTok = append(cst.TableTok, p.next())
		p.parseIfExists(&cst.IfToks)
		cst.Name = p.parseTableName()
	case p.atKw(KwMaterialized):
		cst.MatTok = append(cst.MatTok, p.next())
		cst.ViewTok = append(cst.ViewTok, p.expectKw(KwView))
		p.parseIfExists(&cst.IfToks)
		cst.Name = p.parseTableName()
	case p.atKw(KwView):
		cst.ViewTok = append(cst.ViewTok, p.next())
		p.parseIfExists(&cst.IfToks)
		cst.Name = p.parseTableName()
	case p.atKw(KwUser):
		cst.UserTok = append(cst.UserTok, p.next())
		p.parseIfExists(&cst.IfToks)
		cst.EntityName = append(cst.EntityName, p.expectIdentLike("user name"))
	case p.atKw(KwGroup):
		cst.GroupTok = append(cst.GroupTok, p.next())
		p.parseIfExists(&cst.IfToks)
		cst.EntityName = append(cst.EntityName, p.expectIdentLike("group name"))
	case p.atKw(KwService):
		cst.ServiceTok = append(cst.ServiceTok, p.next())
		cst.AccountTok = append(cst.AccountTok, p.expectKw(KwAccount))
		p.parseIfExists(&cst.IfToks)
		cst.EntityName = append(cst.EntityName, p.expectIdentLike("service account name"))
	case p.atKw(KwAll):
		cst.AllTok = append(cst.AllTok, p.next())
		cst.TablesTok = append(cst.TablesTok, p.expectKw(KwTables))
	default:
		p.failExpected("TABLE, MATERIALIZED VIEW, VIEW, USER, GROUP, SERVICE ACCOUNT or ALL TABLES")
	}
	return cst
}

func (p *grammar) parseIfExists(toks *[]Token) {
	if p.atKw(KwIf) {
		*toks = append(*toks, p.next(), p.expectKw(KwExists))
	}
}

func (p *grammar) parseRenameTable() *RenameTableStmtCst {
	cst := &RenameTableStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.RenameTok = p.expectKw(KwRename)
	cst.TableTok = p.expectKw(KwTable)
	cst.From = p.parseTableName()
	cst.ToTok = p.expectKw(KwTo)
	cst.To = p.parseTableName()
	return cst
}

func (p *grammar) parseTruncateTable() *TruncateStmtCst {
	cst := &TruncateStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.TruncateTok = p.expectKw(KwTruncate)
	cst.TableTok = p.expectKw(KwTable)
	cst.Table = p.parseTableName()
	return cst
}
