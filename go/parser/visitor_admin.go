/*
 * CST to AST lowering for the administrative surface: table
 * maintenance, checkpoint control, bulk import, backups, access
 * control and the SHOW/EXPLAIN introspection statements.
 */

package parser

import (
	"fmt"
	"strings"

	"github.com/chronoql/chronoql/go/parser/ast"
)

func (v *visitor) visitVacuum(cst *VacuumStmtCst) (*ast.VacuumTableStmt, error) {
	table, err := v.visitQualifiedName(cst.Table)
	if err != nil {
		return nil, err
	}
	return &ast.VacuumTableStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_VacuumTableStmt, Loc: cst.Pos()},
		Table:    table,
	}, nil
}

func (v *visitor) visitReindex(cst *ReindexStmtCst) (*ast.ReindexTableStmt, error) {
	table, err := v.visitQualifiedName(cst.Table)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ReindexTableStmt{
		BaseNode:      ast.BaseNode{Tag: ast.T_ReindexTableStmt, Loc: cst.Pos()},
		Table:         table,
		LockExclusive: len(cst.LockToks) > 0,
	}
	if len(cst.ColumnTok) > 0 {
		if len(cst.Column) == 0 {
			return nil, missing("column name")
		}
		stmt.Column = cst.Column[0].IdentValue()
	}
	if len(cst.PartTok) > 0 {
		if len(cst.Partition) == 0 {
			return nil, missing("partition name")
		}
		stmt.Partition = ast.NewStringLiteral(cst.Partition[0].Val, cst.Partition[0].Pos)
	}
	return stmt, nil
}

func (v *visitor) visitCheckpoint(cst *CheckpointStmtCst) (*ast.CheckpointStmt, error) {
	stmt := &ast.CheckpointStmt{BaseNode: ast.BaseNode{Tag: ast.T_CheckpointStmt, Loc: cst.Pos()}}
	switch {
	case len(cst.ReleaseTok) > 0:
		stmt.Release = true
	case len(cst.CreateTok) > 0:
	default:
		return nil, missing("CREATE or RELEASE")
	}
	return stmt, nil
}

func (v *visitor) visitSnapshot(cst *SnapshotStmtCst) (*ast.SnapshotStmt, error) {
	stmt := &ast.SnapshotStmt{BaseNode: ast.BaseNode{Tag: ast.T_SnapshotStmt, Loc: cst.Pos()}}
	switch {
	case len(cst.CompleteTok) > 0:
		stmt.Complete = true
	case len(cst.PrepareTok) > 0:
	default:
		return nil, missing("PREPARE or COMPLETE")
	}
	return stmt, nil
}

func (v *visitor) visitBackup(cst *BackupStmtCst) (*ast.BackupStmt, error) {
	stmt := &ast.BackupStmt{BaseNode: ast.BaseNode{Tag: ast.T_BackupStmt, Loc: cst.Pos()}}
	if len(cst.DatabaseTok) > 0 {
		stmt.Database = true
		return stmt, nil
	}
	if len(cst.Tables) == 0 {
		return nil, missing("table list")
	}
	for _, t := range cst.Tables {
		name, err := v.visitQualifiedName(t)
		if err != nil {
			return nil, err
		}
		stmt.Tables = append(stmt.Tables, name)
	}
	return stmt, nil
}

// visitCopy handles both directions of COPY: the cancel form reuses the
// table name slot for the import id, so the first name part becomes the
// id literal.
func (v *visitor) visitCopy(cst *CopyStmtCst) (*ast.CopyStmt, error) {
	stmt := &ast.CopyStmt{BaseNode: ast.BaseNode{Tag: ast.T_CopyStmt, Loc: cst.Pos()}}
	if len(cst.CancelTok) > 0 {
		if cst.Target == nil || len(cst.Target.Parts) == 0 {
			return nil, missing("import id")
		}
		id := cst.Target.Parts[0]
		stmt.Cancel = true
		stmt.CancelID = ast.NewStringLiteral(identValue(id), id.Pos)
		return stmt, nil
	}
	target, err := v.visitQualifiedName(cst.Target)
	if err != nil {
		return nil, err
	}
	stmt.Target = target
	if len(cst.FromFile) == 0 {
		return nil, missing("source file")
	}
	stmt.From = ast.NewStringLiteral(cst.FromFile[0].Val, cst.FromFile[0].Pos)
	for _, o := range cst.Options {
		opt, err := v.visitCopyOption(o)
		if err != nil {
			return nil, err
		}
		stmt.Options = append(stmt.Options, opt)
	}
	return stmt, nil
}

func (v *visitor) visitCopyOption(cst *CopyOptionCst) (*ast.CopyOption, error) {
	if len(cst.NameToks) == 0 {
		return nil, missing("option name")
	}
	words := make([]string, len(cst.NameToks))
	for i, tok := range cst.NameToks {
		words[i] = strings.ToUpper(tok.Text)
	}
	value, err := v.visitExpr(cst.Value)
	if err != nil {
		return nil, err
	}
	return &ast.CopyOption{
		BaseNode: ast.BaseNode{Tag: ast.T_CopyOption, Loc: cst.Pos()},
		Name:     strings.Join(words, " "),
		Value:    value,
	}, nil
}

// ---------------------------------------------------------------------------
// Users, groups, service accounts
// ---------------------------------------------------------------------------

func (v *visitor) visitCreateUser(cst *CreateUserStmtCst) (*ast.CreateUserStmt, error) {
	if cst.Name.Is(TokenInvalid) {
		return nil, missing("user name")
	}
	stmt := &ast.CreateUserStmt{
		BaseNode:    ast.BaseNode{Tag: ast.T_CreateUserStmt, Loc: cst.Pos()},
		IfNotExists: len(cst.IfToks) > 0,
		Name:        cst.Name.IdentValue(),
	}
	switch {
	case len(cst.NoTok) > 0:
		stmt.NoPassword = true
	case len(cst.Password) > 0:
		stmt.Password = ast.NewStringLiteral(cst.Password[0].Val, cst.Password[0].Pos)
	case len(cst.WithTok) > 0:
		return nil, missing("password clause")
	}
	return stmt, nil
}

func (v *visitor) visitCreateGroup(cst *CreateGroupStmtCst) (*ast.CreateGroupStmt, error) {
	if cst.Name.Is(TokenInvalid) {
		return nil, missing("group name")
	}
	return &ast.CreateGroupStmt{
		BaseNode:    ast.BaseNode{Tag: ast.T_CreateGroupStmt, Loc: cst.Pos()},
		IfNotExists: len(cst.IfToks) > 0,
		Name:        cst.Name.IdentValue(),
	}, nil
}

func (v *visitor) visitCreateServiceAccount(cst *CreateServiceAccountStmtCst) (*ast.CreateServiceAccountStmt, error) {
	if cst.Name.Is(TokenInvalid) {
		return nil, missing("service account name")
	}
	stmt := &ast.CreateServiceAccountStmt{
		BaseNode:    ast.BaseNode{Tag: ast.T_CreateServiceAccountStmt, Loc: cst.Pos()},
		IfNotExists: len(cst.IfToks) > 0,
		Name:        cst.Name.IdentValue(),
	}
	if len(cst.OwnedToks) > 0 {
		if len(cst.Owner) == 0 {
			return nil, missing("owner name")
		}
		stmt.Owner = cst.Owner[0].IdentValue()
	}
	return stmt, nil
}

// tokenLiteral lowers a single literal token in value position.
func tokenLiteral(tok Token) (ast.Expression, error) {
	switch {
	case tok.Is(TokenDuration):
		return durationLiteral(tok)
	case tok.Is(TokenNumber):
		return numberLiteral(tok)
	case tok.Is(TokenString):
		return ast.NewStringLiteral(tok.Val, tok.Pos), nil
	}
	return nil, fmt.Errorf("unexpected %s in value position", tok.Kind)
}

func (v *visitor) visitAlterUser(cst *AlterUserStmtCst) (*ast.AlterUserStmt, error) {
	if cst.Name.Is(TokenInvalid) {
		return nil, missing("name")
	}
	stmt := &ast.AlterUserStmt{
		BaseNode:       ast.BaseNode{Tag: ast.T_AlterUserStmt, Loc: cst.Pos()},
		ServiceAccount: len(cst.ServiceTok) > 0,
		Name:           cst.Name.IdentValue(),
	}
	action := &ast.AlterUserAction{BaseNode: ast.BaseNode{Tag: ast.T_AlterUserAction, Loc: cst.Pos()}}
	switch {
	case len(cst.EnableTok) > 0:
		action.Type = ast.UserEnable
	case len(cst.DisableTok) > 0:
		action.Type = ast.UserDisable
	case len(cst.CreateTok) > 0:
		action.Type = ast.UserCreateToken
		if len(cst.TokenType) == 0 {
			return nil, missing("token type")
		}
		action.TokenType = strings.ToUpper(cst.TokenType[0].Text)
		if len(cst.TtlTok) > 0 {
			if len(cst.TtlValue) == 0 {
				return nil, missing("token lifetime")
			}
			ttl, err := tokenLiteral(cst.TtlValue[0])
			if err != nil {
				return nil, err
			}
			action.Ttl = ttl
		}
		action.Refresh = len(cst.RefreshTok) > 0
	case len(cst.DropTok) > 0:
		action.Type = ast.UserDropToken
		if len(cst.TokenType) == 0 {
			return nil, missing("token type")
		}
		action.TokenType = strings.ToUpper(cst.TokenType[0].Text)
		if len(cst.DropToken) > 0 {
			action.Token = ast.NewStringLiteral(cst.DropToken[0].Val, cst.DropToken[0].Pos)
		}
	case len(cst.NoTok) > 0:
		action.Type = ast.UserNoPassword
	case len(cst.Password) > 0:
		action.Type = ast.UserSetPassword
		action.Password = ast.NewStringLiteral(cst.Password[0].Val, cst.Password[0].Pos)
	default:
		return nil, missing("user action")
	}
	stmt.Action = action
	return stmt, nil
}

func (v *visitor) visitAddUser(cst *AddUserStmtCst) (*ast.AddUserStmt, error) {
	if cst.User.Is(TokenInvalid) {
		return nil, missing("user name")
	}
	if len(cst.Groups) == 0 {
		return nil, missing("group list")
	}
	return &ast.AddUserStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_AddUserStmt, Loc: cst.Pos()},
		User:     cst.User.IdentValue(),
		Groups:   identList(cst.Groups),
	}, nil
}

func (v *visitor) visitRemoveUser(cst *RemoveUserStmtCst) (*ast.RemoveUserStmt, error) {
	if cst.User.Is(TokenInvalid) {
		return nil, missing("user name")
	}
	if len(cst.Groups) == 0 {
		return nil, missing("group list")
	}
	return &ast.RemoveUserStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_RemoveUserStmt, Loc: cst.Pos()},
		User:     cst.User.IdentValue(),
		Groups:   identList(cst.Groups),
	}, nil
}

// ---------------------------------------------------------------------------
// GRANT / REVOKE and service account switching
// ---------------------------------------------------------------------------

func (v *visitor) visitPermissionTarget(cst *PermissionTargetCst) (*ast.PermissionTarget, error) {
	table, err := v.visitQualifiedName(cst.Table)
	if err != nil {
		return nil, err
	}
	return &ast.PermissionTarget{
		BaseNode: ast.BaseNode{Tag: ast.T_PermissionTarget, Loc: cst.Pos()},
		Table:    table,
		Columns:  identList(cst.Columns),
	}, nil
}

func (v *visitor) visitGrant(cst *GrantStmtCst) (*ast.GrantStmt, error) {
	stmt := &ast.GrantStmt{BaseNode: ast.BaseNode{Tag: ast.T_GrantStmt, Loc: cst.Pos()}}
	if len(cst.AssumeToks) > 0 {
		if len(cst.AssumeAccount) == 0 {
			return nil, missing("service account name")
		}
		stmt.Assume = cst.AssumeAccount[0].IdentValue()
	} else {
		if len(cst.Permissions) == 0 {
			return nil, missing("permission list")
		}
		for _, tok := range cst.Permissions {
			stmt.Permissions = append(stmt.Permissions, strings.ToUpper(tok.Text))
		}
		stmt.AllTables = len(cst.AllTok) > 0
		for _, t := range cst.Targets {
			target, err := v.visitPermissionTarget(t)
			if err != nil {
				return nil, err
			}
			stmt.Targets = append(stmt.Targets, target)
		}
	}
	if cst.Entity.Is(TokenInvalid) {
		return nil, missing("entity name")
	}
	stmt.To = cst.Entity.IdentValue()
	stmt.GrantOption = len(cst.OptionTok) > 0
	stmt.Verification = len(cst.VerifyTok) > 0
	return stmt, nil
}

func (v *visitor) visitRevoke(cst *RevokeStmtCst) (*ast.RevokeStmt, error) {
	stmt := &ast.RevokeStmt{BaseNode: ast.BaseNode{Tag: ast.T_RevokeStmt, Loc: cst.Pos()}}
	if len(cst.AssumeToks) > 0 {
		if len(cst.AssumeAccount) == 0 {
			return nil, missing("service account name")
		}
		stmt.Assume = cst.AssumeAccount[0].IdentValue()
	} else {
		if len(cst.Permissions) == 0 {
			return nil, missing("permission list")
		}
		for _, tok := range cst.Permissions {
			stmt.Permissions = append(stmt.Permissions, strings.ToUpper(tok.Text))
		}
		stmt.AllTables = len(cst.AllTok) > 0
		for _, t := range cst.Targets {
			target, err := v.visitPermissionTarget(t)
			if err != nil {
				return nil, err
			}
			stmt.Targets = append(stmt.Targets, target)
		}
	}
	if cst.Entity.Is(TokenInvalid) {
		return nil, missing("entity name")
	}
	stmt.From = cst.Entity.IdentValue()
	return stmt, nil
}

func (v *visitor) visitAssume(cst *AssumeStmtCst) (*ast.AssumeServiceAccountStmt, error) {
	if cst.Account.Is(TokenInvalid) {
		return nil, missing("service account name")
	}
	return &ast.AssumeServiceAccountStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_AssumeServiceAccountStmt, Loc: cst.Pos()},
		Account:  cst.Account.IdentValue(),
	}, nil
}

func (v *visitor) visitExit(cst *ExitStmtCst) (*ast.ExitServiceAccountStmt, error) {
	stmt := &ast.ExitServiceAccountStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_ExitServiceAccountStmt, Loc: cst.Pos()},
	}
	if len(cst.Account) > 0 {
		stmt.Account = cst.Account[0].IdentValue()
	}
	return stmt, nil
}

// ---------------------------------------------------------------------------
// SHOW / EXPLAIN
// ---------------------------------------------------------------------------

// showKind maps the raw keyword tokens after SHOW onto the statement
// variant. The grammar validated the spelling, so unknown names can
// only appear on a partial CST.
func showKind(toks []Token) (ast.ShowKind, error) {
	switch strings.ToLower(toks[0].Text) {
	case "tables":
		return ast.ShowTables, nil
	case "columns":
		return ast.ShowColumns, nil
	case "partitions":
		return ast.ShowPartitions, nil
	case "create":
		if len(toks) < 2 {
			return 0, missing("TABLE or MATERIALIZED VIEW")
		}
		if strings.EqualFold(toks[1].Text, "table") {
			return ast.ShowCreateTable, nil
		}
		return ast.ShowCreateMatView, nil
	case "user":
		return ast.ShowUser, nil
	case "users":
		return ast.ShowUsers, nil
	case "groups":
		return ast.ShowGroups, nil
	case "service":
		if len(toks) < 2 {
			return 0, missing("ACCOUNT or ACCOUNTS")
		}
		if strings.EqualFold(toks[1].Text, "accounts") {
			return ast.ShowServiceAccounts, nil
		}
		return ast.ShowServiceAccount, nil
	case "permissions":
		return ast.ShowPermissions, nil
	case "server_version":
		return ast.ShowServerVersion, nil
	case "server_version_num":
		return ast.ShowServerVersionNum, nil
	case "parameters":
		return ast.ShowParameters, nil
	case "transaction", "transaction_isolation":
		return ast.ShowTransactionIsolation, nil
	case "max_identifier_length":
		return ast.ShowMaxIdentifierLength, nil
	case "standard_conforming_strings":
		return ast.ShowStandardConformingStrings, nil
	case "search_path":
		return ast.ShowSearchPath, nil
	case "datestyle":
		return ast.ShowDateStyle, nil
	case "time":
		return ast.ShowTimeZone, nil
	}
	return 0, fmt.Errorf("unknown SHOW target %q", toks[0].Text)
}

func (v *visitor) visitShow(cst *ShowStmtCst) (*ast.ShowStmt, error) {
	if len(cst.KindToks) == 0 {
		return nil, missing("SHOW target")
	}
	kind, err := showKind(cst.KindToks)
	if err != nil {
		return nil, err
	}
	stmt := &ast.ShowStmt{
		BaseNode: ast.BaseNode{Tag: ast.T_ShowStmt, Loc: cst.Pos()},
		Kind:     kind,
	}
	switch kind {
	case ast.ShowColumns, ast.ShowPartitions, ast.ShowCreateTable, ast.ShowCreateMatView:
		target, err := v.visitQualifiedName(cst.Target)
		if err != nil {
			return nil, err
		}
		stmt.Target = target
	}
	if len(cst.Entity) > 0 {
		stmt.Name = cst.Entity[0].IdentValue()
	}
	return stmt, nil
}

func (v *visitor) visitExplain(cst *ExplainStmtCst) (*ast.ExplainStmt, error) {
	stmt := &ast.ExplainStmt{BaseNode: ast.BaseNode{Tag: ast.T_ExplainStmt, Loc: cst.Pos()}}
	if len(cst.FormatVal) > 0 {
		switch {
		case strings.EqualFold(cst.FormatVal[0].Text, "text"):
			stmt.Format = ast.ExplainFormatText
		case strings.EqualFold(cst.FormatVal[0].Text, "json"):
			stmt.Format = ast.ExplainFormatJSON
		default:
			return nil, fmt.Errorf("unsupported EXPLAIN format %q", cst.FormatVal[0].Text)
		}
	}
	if cst.Statement == nil {
		return nil, missing("statement")
	}
	inner, err := v.visitStatement(cst.Statement)
	if err != nil {
		return nil, err
	}
	stmt.Statement = inner
	return stmt, nil
}
