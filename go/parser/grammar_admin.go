/*
 * Administrative grammar: table maintenance, checkpoints, bulk import,
 * backups, the access control statements and SHOW/EXPLAIN.
 */

package parser

import "strings"

func (p *grammar) parseVacuum() *VacuumStmtCst {
	cst := &VacuumStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.VacuumTok = p.expectKw(KwVacuum)
	cst.TableTok = p.expectKw(KwTable)
	cst.Table = p.parseTableName()
	return cst
}

func (p *grammar) parseReindex() *ReindexStmtCst {
	cst := &ReindexStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.ReindexTok = p.expectKw(KwReindex)
	cst.TableTok = p.expectKw(KwTable)
	cst.Table = p.parseTableName()
	if p.atKw(KwColumn) {
		cst.ColumnTok = append(cst.ColumnTok, p.next())
		cst.Column = append(cst.Column, p.expectIdentLike("column name"))
	}
	if p.atKw(KwPartition) {
		cst.PartTok = append(cst.PartTok, p.next())
		cst.Partition = append(cst.Partition, p.expect(TokenString))
	}
	if p.atKw(KwLock) {
		cst.LockToks = append(cst.LockToks, p.next(), p.expectKw(KwExclusive))
	}
	return cst
}

func (p *grammar) parseCheckpoint() *CheckpointStmtCst {
	cst := &CheckpointStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.CheckpointTok = p.expectKw(KwCheckpoint)
	switch {
	case p.atKw(KwCreate):
		cst.CreateTok = append(cst.CreateTok, p.next())
	case p.atKw(KwRelease):
		cst.ReleaseTok = append(cst.ReleaseTok, p.next())
	default:
		p.failExpected("CREATE or RELEASE")
	}
	return cst
}

func (p *grammar) parseSnapshot() *SnapshotStmtCst {
	cst := &SnapshotStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.SnapshotTok = p.expectKw(KwSnapshot)
	switch {
	case p.atKw(KwPrepare):
		cst.PrepareTok = append(cst.PrepareTok, p.next())
	case p.atKw(KwComplete):
		cst.CompleteTok = append(cst.CompleteTok, p.next())
	default:
		p.failExpected("PREPARE or COMPLETE")
	}
	return cst
}

func (p *grammar) parseBackup() *BackupStmtCst {
	cst := &BackupStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.BackupTok = p.expectKw(KwBackup)
	switch {
	case p.atKw(KwTable):
		cst.TableTok = append(cst.TableTok, p.next())
		cst.Tables = append(cst.Tables, p.parseTableName())
		for p.at(TokenComma) {
			p.next()
			cst.Tables = append(cst.Tables, p.parseTableName())
		}
	case p.atKw(KwDatabase):
		cst.DatabaseTok = append(cst.DatabaseTok, p.next())
	default:
		p.failExpected("TABLE or DATABASE")
	}
	return cst
}

// parseCopy handles both the import form COPY t FROM 'file' [WITH]
// options and the cancellation form COPY 'id' CANCEL.
func (p *grammar) parseCopy() *CopyStmtCst {
	cst := &CopyStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.CopyTok = p.expectKw(KwCopy)
	cst.Target = p.parseTableName()
	if p.atKw(KwCancel) {
		cst.CancelTok = append(cst.CancelTok, p.next())
		return cst
	}
	cst.FromTok = append(cst.FromTok, p.expectKw(KwFrom))
	cst.FromFile = append(cst.FromFile, p.expect(TokenString))
	if tok, ok := p.eatKw(KwWith); ok {
		cst.WithTok = append(cst.WithTok, tok)
	}
	for {
		opt := &CopyOptionCst{cstBase: cstBase{Start: p.cur().Pos}}
		switch {
		case p.atKw(KwHeader), p.atKw(KwTimestamp), p.atKw(KwDelimiter), p.atKw(KwFormat):
			opt.NameToks = append(opt.NameToks, p.next())
		case p.atKw(KwPartition):
			opt.NameToks = append(opt.NameToks, p.next(), p.expectKw(KwBy))
		case p.atKw(KwOn):
			opt.NameToks = append(opt.NameToks, p.next(), p.expectKw(KwError))
		default:
			return cst
		}
		opt.Value = p.parseExpression()
		cst.Options = append(cst.Options, opt)
	}
}

// ---------------------------------------------------------------------------
// Users, groups, service accounts
// ---------------------------------------------------------------------------

func (p *grammar) parseCreateUser() *CreateUserStmtCst {
	cst := &CreateUserStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.CreateTok = p.expectKw(KwCreate)
	cst.UserTok = p.expectKw(KwUser)
	if p.atKw(KwIf) {
		cst.IfToks = append(cst.IfToks, p.next(), p.expectKw(KwNot), p.expectKw(KwExists))
	}
	cst.Name = p.expectIdentLike("user name")
	if p.atKw(KwWith) {
		cst.WithTok = append(cst.WithTok, p.next())
		switch {
		case p.atKw(KwPassword):
			cst.PasswordTok = append(cst.PasswordTok, p.next())
			cst.Password = append(cst.Password, p.expect(TokenString))
		case p.atKw(KwNo):
			cst.NoTok = append(cst.NoTok, p.next())
			cst.PasswordTok = append(cst.PasswordTok, p.expectKw(KwPassword))
		default:
			p.failExpected("PASSWORD or NO PASSWORD")
		}
	}
	return cst
}

func (p *grammar) parseCreateGroup() *CreateGroupStmtCst {
	cst := &CreateGroupStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.CreateTok = p.expectKw(KwCreate)
	cst.GroupTok = p.expectKw(KwGroup)
	if p.atKw(KwIf) {
		cst.IfToks = append(cst.IfToks, p.next(), p.expectKw(KwNot), p.expectKw(KwExists))
	}
	cst.Name = p.expectIdentLike("group name")
	return cst
}

func (p *grammar) parseCreateServiceAccount() *CreateServiceAccountStmtCst {
	cst := &CreateServiceAccountStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.CreateTok = p.expectKw(KwCreate)
	cst.ServiceTok = p.expectKw(KwService)
	cst.AccountTok = p.expectKw(KwAccount)
	if p.atKw(KwIf) {
		cst.IfToks = append(cst.IfToks, p.next(), p.expectKw(KwNot), p.expectKw(KwExists))
	}
	cst.Name = p.expectIdentLike("service account name")
	if p.atKw(KwOwned) {
		cst.OwnedToks = append(cst.OwnedToks, p.next(), p.expectKw(KwBy))
		cst.Owner = append(cst.Owner, p.expectIdentLike("owner name"))
	}
	return cst
}

func (p *grammar) parseAlterUser() *AlterUserStmtCst {
	cst := &AlterUserStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.AlterTok = p.expectKw(KwAlter)
	switch {
	case p.atKw(KwUser):
		cst.UserTok = append(cst.UserTok, p.next())
	case p.atKw(KwService):
		cst.ServiceTok = append(cst.ServiceTok, p.next())
		cst.AccountTok = append(cst.AccountTok, p.expectKw(KwAccount))
	}
	cst.Name = p.expectIdentLike("name")
	switch {
	case p.atKw(KwEnable):
		cst.EnableTok = append(cst.EnableTok, p.next())
	case p.atKw(KwDisable):
		cst.DisableTok = append(cst.DisableTok, p.next())
	case p.atKw(KwWith):
		cst.WithTok = append(cst.WithTok, p.next())
		switch {
		case p.atKw(KwPassword):
			cst.PasswordTok = append(cst.PasswordTok, p.next())
			cst.Password = append(cst.Password, p.expect(TokenString))
		case p.atKw(KwNo):
			cst.NoTok = append(cst.NoTok, p.next())
			cst.PasswordTok = append(cst.PasswordTok, p.expectKw(KwPassword))
		default:
			p.failExpected("PASSWORD or NO PASSWORD")
		}
	case p.atKw(KwCreate):
		cst.CreateTok = append(cst.CreateTok, p.next())
		cst.TokenTok = append(cst.TokenTok, p.expectKw(KwToken))
		cst.TypeTok = append(cst.TypeTok, p.expectKw(KwType))
		switch {
		case p.atKw(KwJwk):
			cst.TokenType = append(cst.TokenType, p.next())
		case p.atKw(KwRest):
			cst.TokenType = append(cst.TokenType, p.next())
			if p.atKw(KwWith) {
				cst.WithTok = append(cst.WithTok, p.next())
				cst.TtlTok = append(cst.TtlTok, p.expectKw(KwTtl))
				switch {
				case p.at(TokenDuration), p.at(TokenNumber), p.at(TokenString):
					cst.TtlValue = append(cst.TtlValue, p.next())
				default:
					p.failExpected("token lifetime")
				}
				if tok, ok := p.eatKw(KwRefresh); ok {
					cst.RefreshTok = append(cst.RefreshTok, tok)
				}
			}
		default:
			p.failExpected("JWK or REST")
		}
	case p.atKw(KwDrop):
		cst.DropTok = append(cst.DropTok, p.next())
		cst.TokenTok = append(cst.TokenTok, p.expectKw(KwToken))
		cst.TypeTok = append(cst.TypeTok, p.expectKw(KwType))
		if !p.cur().IdentLike() && p.cur().Kind != TokenKeyword {
			p.failExpected("token type")
		}
		cst.TokenType = append(cst.TokenType, p.next())
		if p.at(TokenString) {
			cst.DropToken = append(cst.DropToken, p.next())
		}
	default:
		p.failExpected("ENABLE, DISABLE, WITH, CREATE TOKEN or DROP TOKEN")
	}
	return cst
}

func (p *grammar) parseAddUser() *AddUserStmtCst {
	cst := &AddUserStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.AddTok = p.expectKw(KwAdd)
	cst.UserTok = p.expectKw(KwUser)
	cst.User = p.expectIdentLike("user name")
	cst.ToTok = p.expectKw(KwTo)
	cst.Groups = p.parseIdentList("group name")
	return cst
}

func (p *grammar) parseRemoveUser() *RemoveUserStmtCst {
	cst := &RemoveUserStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.RemoveTok = p.expectKw(KwRemove)
	cst.UserTok = p.expectKw(KwUser)
	cst.User = p.expectIdentLike("user name")
	cst.FromTok = p.expectKw(KwFrom)
	cst.Groups = p.parseIdentList("group name")
	return cst
}

// ---------------------------------------------------------------------------
// GRANT / REVOKE and service account switching
// ---------------------------------------------------------------------------

// permissionToken admits reserved keywords in permission position, so
// GRANT SELECT, INSERT works.
func (p *grammar) permissionToken() Token {
	if p.cur().Kind != TokenKeyword && !p.cur().IdentLike() {
		p.failExpected("permission")
	}
	return p.next()
}

func (p *grammar) parseGrant() *GrantStmtCst {
	cst := &GrantStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.GrantTok = p.expectKw(KwGrant)
	if p.atKw(KwAssume) {
		cst.AssumeToks = append(cst.AssumeToks, p.next(),
			p.expectKw(KwService), p.expectKw(KwAccount))
		cst.AssumeAccount = append(cst.AssumeAccount, p.expectIdentLike("service account name"))
		cst.ToTok = p.expectKw(KwTo)
		cst.Entity = p.expectIdentLike("entity name")
		return cst
	}
	cst.Permissions = append(cst.Permissions, p.permissionToken())
	for p.at(TokenComma) {
		p.next()
		cst.Permissions = append(cst.Permissions, p.permissionToken())
	}
	if p.atKw(KwOn) {
		cst.OnTok = append(cst.OnTok, p.next())
		if p.atKw(KwAll) {
			cst.AllTok = append(cst.AllTok, p.next())
			cst.TablesTok = append(cst.TablesTok, p.expectKw(KwTables))
		} else {
			cst.Targets = append(cst.Targets, p.parsePermissionTarget())
			for p.at(TokenComma) {
				p.next()
				cst.Targets = append(cst.Targets, p.parsePermissionTarget())
			}
		}
	}
	cst.ToTok = p.expectKw(KwTo)
	cst.Entity = p.expectIdentLike("entity name")
	if p.atKw(KwWith) {
		cst.WithToks = append(cst.WithToks, p.next())
		switch {
		case p.atKw(KwGrant):
			cst.WithToks = append(cst.WithToks, p.next())
			cst.OptionTok = append(cst.OptionTok, p.expectKw(KwOption))
		case p.atKw(KwVerification):
			cst.VerifyTok = append(cst.VerifyTok, p.next())
		default:
			p.failExpected("GRANT OPTION or VERIFICATION")
		}
	}
	return cst
}

func (p *grammar) parseRevoke() *RevokeStmtCst {
	cst := &RevokeStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.RevokeTok = p.expectKw(KwRevoke)
	if p.atKw(KwAssume) {
		cst.AssumeToks = append(cst.AssumeToks, p.next(),
			p.expectKw(KwService), p.expectKw(KwAccount))
		cst.AssumeAccount = append(cst.AssumeAccount, p.expectIdentLike("service account name"))
		cst.FromTok = p.expectKw(KwFrom)
		cst.Entity = p.expectIdentLike("entity name")
		return cst
	}
	cst.Permissions = append(cst.Permissions, p.permissionToken())
	for p.at(TokenComma) {
		p.next()
		cst.Permissions = append(cst.Permissions, p.permissionToken())
	}
	if p.atKw(KwOn) {
		cst.OnTok = append(cst.OnTok, p.next())
		if p.atKw(KwAll) {
			cst.AllTok = append(cst.AllTok, p.next())
			cst.TablesTok = append(cst.TablesTok, p.expectKw(KwTables))
		} else {
			cst.Targets = append(cst.Targets, p.parsePermissionTarget())
			for p.at(TokenComma) {
				p.next()
				cst.Targets = append(cst.Targets, p.parsePermissionTarget())
			}
		}
	}
	cst.FromTok = p.expectKw(KwFrom)
	cst.Entity = p.expectIdentLike("entity name")
	return cst
}

func (p *grammar) parsePermissionTarget() *PermissionTargetCst {
	cst := &PermissionTargetCst{cstBase: cstBase{Start: p.cur().Pos}}
	cst.Table = p.parseTableName()
	if p.at(TokenLParen) {
		p.next()
		cst.Columns = p.parseIdentList("column name")
		p.expect(TokenRParen)
	}
	return cst
}

func (p *grammar) parseAssume() *AssumeStmtCst {
	cst := &AssumeStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.AssumeTok = p.expectKw(KwAssume)
	cst.ServiceTok = p.expectKw(KwService)
	cst.AccountTok = p.expectKw(KwAccount)
	cst.Account = p.expectIdentLike("service account name")
	return cst
}

func (p *grammar) parseExit() *ExitStmtCst {
	cst := &ExitStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.ExitTok = p.expectKw(KwExit)
	cst.ServiceTok = p.expectKw(KwService)
	cst.AccountTok = p.expectKw(KwAccount)
	if p.cur().IdentLike() {
		cst.Account = append(cst.Account, p.next())
	}
	return cst
}

// ---------------------------------------------------------------------------
// SHOW / EXPLAIN
// ---------------------------------------------------------------------------

// showParameters are the flat session parameter names SHOW accepts
// besides the keyword-introduced forms. Anything else after SHOW is a
// syntax error rather than a parameter lookup.
var showParameters = map[string]bool{
	"server_version":              true,
	"server_version_num":          true,
	"transaction_isolation":       true,
	"max_identifier_length":       true,
	"standard_conforming_strings": true,
	"search_path":                 true,
	"datestyle":                   true,
	"permissions":                 true,
}

func (p *grammar) parseShow() *ShowStmtCst {
	cst := &ShowStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.ShowTok = p.expectKw(KwShow)
	switch {
	case p.atKw(KwTables), p.atKw(KwUsers), p.atKw(KwParameters):
		cst.KindToks = append(cst.KindToks, p.next())
	case p.atKw(KwColumns), p.atKw(KwPartitions):
		cst.KindToks = append(cst.KindToks, p.next())
		cst.FromTok = append(cst.FromTok, p.expectKw(KwFrom))
		cst.Target = p.parseTableName()
	case p.atKw(KwCreate):
		cst.KindToks = append(cst.KindToks, p.next())
		switch {
		case p.atKw(KwTable):
			cst.KindToks = append(cst.KindToks, p.next())
		case p.atKw(KwMaterialized):
			cst.KindToks = append(cst.KindToks, p.next(), p.expectKw(KwView))
		default:
			p.failExpected("TABLE or MATERIALIZED VIEW")
		}
		cst.Target = p.parseTableName()
	case p.atKw(KwUser), p.atKw(KwGroups):
		cst.KindToks = append(cst.KindToks, p.next())
		if p.cur().IdentLike() {
			cst.Entity = append(cst.Entity, p.next())
		}
	case p.atKw(KwService):
		cst.KindToks = append(cst.KindToks, p.next())
		switch {
		case p.atKw(KwAccount), p.atKw(KwAccounts):
			cst.KindToks = append(cst.KindToks, p.next())
		default:
			p.failExpected("ACCOUNT or ACCOUNTS")
		}
		if p.cur().IdentLike() {
			cst.Entity = append(cst.Entity, p.next())
		}
	case p.atKw(KwTransaction):
		cst.KindToks = append(cst.KindToks, p.next(),
			p.expectKw(KwIsolation), p.expectKw(KwLevel))
	case p.atKw(KwTime):
		cst.KindToks = append(cst.KindToks, p.next(), p.expectKw(KwZone))
	case p.cur().IdentLike() && showParameters[strings.ToLower(p.cur().Text)]:
		// server_version, search_path, permissions and the other
		// flat parameter names
		tok := p.next()
		cst.KindToks = append(cst.KindToks, tok)
		if strings.EqualFold(tok.Text, "permissions") && p.cur().IdentLike() {
			cst.Entity = append(cst.Entity, p.next())
		}
	default:
		p.failExpected("SHOW target")
	}
	return cst
}

func (p *grammar) parseExplain() *ExplainStmtCst {
	cst := &ExplainStmtCst{cstBase: cstBase{Start: p.cur().Pos}}
	p.open(cst)
	cst.ExplainTok = p.expectKw(KwExplain)
	if p.at(TokenLParen) && p.peek(1).IsKw(KwFormat) {
		p.next()
		cst.FormatTok = append(cst.FormatTok, p.next())
		if !strings.EqualFold(p.cur().Text, "text") && !strings.EqualFold(p.cur().Text, "json") {
			p.failExpected("TEXT or JSON")
		}
		cst.FormatVal = append(cst.FormatVal, p.next())
		p.expect(TokenRParen)
	}
	cst.Statement = p.parseStatement()
	return cst
}
