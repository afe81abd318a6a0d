/*
 * CST to AST lowering: dispatch, rule registry and shared helpers.
 *
 * The visitor walks the statement CSTs the grammar produced and builds
 * the typed AST. Because the grammar keeps partial CSTs for statements
 * that failed midway, every visit method treats its input as possibly
 * incomplete: a nil sub-node or an empty token collection in a required
 * position aborts the statement, which is then dropped from the AST
 * output. The syntax error for that statement was already recorded by
 * the grammar, so dropping is silent apart from a debug record.
 */

package parser

import (
	"fmt"
	"log/slog"

	"github.com/chronoql/chronoql/go/parser/ast"
)

// handledRules names every grammar rule the visitor can lower. The init
// check below walks this against allRuleNames in both directions, so a
// new grammar rule without a handler, or a stale handler entry, stops
// the package from loading at all instead of surfacing as a silently
// dropped statement at some later parse.
var handledRules = map[string]struct{}{
	"expression":                    {},
	"andExpression":                 {},
	"notExpression":                 {},
	"equalityExpression":            {},
	"isNullSuffix":                  {},
	"relationalExpression":          {},
	"inSuffix":                      {},
	"betweenSuffix":                 {},
	"withinSuffix":                  {},
	"membershipExpression":          {},
	"bitOrExpression":               {},
	"bitXorExpression":              {},
	"bitAndExpression":              {},
	"concatExpression":              {},
	"ipv4Expression":                {},
	"additiveExpression":            {},
	"multiplicativeExpression":      {},
	"unaryExpression":               {},
	"postfixExpression":             {},
	"primaryExpression":             {},
	"caseExpression":                {},
	"whenClause":                    {},
	"castFunction":                  {},
	"functionCall":                  {},
	"columnRef":                     {},
	"arrayLiteral":                  {},
	"frameBound":                    {},
	"windowSpecification":           {},
	"typeName":                      {},
	"qualifiedName":                 {},
	"withItem":                      {},
	"selectColumn":                  {},
	"tableExpression":               {},
	"joinClause":                    {},
	"latestOnClause":                {},
	"sampleByClause":                {},
	"orderByItem":                   {},
	"limitClause":                   {},
	"setOperation":                  {},
	"selectStatement":               {},
	"valuesRow":                     {},
	"insertStatement":               {},
	"updateAssignment":              {},
	"updateStatement":               {},
	"pivotAggregation":              {},
	"pivotInValue":                  {},
	"pivotForClause":                {},
	"pivotStatement":                {},
	"columnDefinition":              {},
	"indexClause":                   {},
	"castTypeClause":                {},
	"ttlClause":                     {},
	"withParameter":                 {},
	"createTableStatement":          {},
	"createMatViewStatement":        {},
	"createViewStatement":           {},
	"alterTableCommand":             {},
	"alterTableStatement":           {},
	"alterMatViewStatement":         {},
	"alterUserStatement":            {},
	"dropStatement":                 {},
	"renameTableStatement":          {},
	"truncateTableStatement":        {},
	"vacuumTableStatement":          {},
	"reindexTableStatement":         {},
	"checkpointStatement":           {},
	"snapshotStatement":             {},
	"backupStatement":               {},
	"copyOption":                    {},
	"copyStatement":                 {},
	"createUserStatement":           {},
	"createGroupStatement":          {},
	"createServiceAccountStatement": {},
	"addUserStatement":              {},
	"removeUserStatement":           {},
	"permissionTarget":              {},
	"grantStatement":                {},
	"revokeStatement":               {},
	"assumeServiceAccountStatement": {},
	"exitServiceAccountStatement":   {},
	"showStatement":                 {},
	"explainStatement":              {},
}

func init() {
	for _, name := range allRuleNames {
		if _, ok := handledRules[name]; !ok {
			panic("parser: no visitor handler for grammar rule " + name)
		}
	}
	if len(handledRules) != len(allRuleNames) {
		panic("parser: visitor handler table lists rules the grammar does not produce")
	}
}

type visitor struct {
	logger *slog.Logger
}

// visitStatements lowers every statement CST that converts cleanly.
// A statement whose visit fails, which happens when the grammar kept a
// partial CST after a syntax error, contributes no AST entry.
func (v *visitor) visitStatements(csts []StatementCst) []ast.Statement {
	stmts := make([]ast.Statement, 0, len(csts))
	for _, cst := range csts {
		stmt, err := v.visitStatement(cst)
		if err != nil {
			if v.logger != nil {
				v.logger.Debug("statement dropped",
					"rule", cst.RuleName(),
					"position", cst.Pos(),
					"error", err.Error())
			}
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

func (v *visitor) visitStatement(cst StatementCst) (ast.Statement, error) {
	switch c := cst.(type) {
	case *SelectStmtCst:
		return v.visitSelect(c)
	case *InsertStmtCst:
		return v.visitInsert(c)
	case *UpdateStmtCst:
		return v.visitUpdate(c)
	case *PivotStmtCst:
		return v.visitPivot(c)
	case *CreateTableStmtCst:
		return v.visitCreateTable(c)
	case *CreateMatViewStmtCst:
		return v.visitCreateMatView(c)
	case *CreateViewStmtCst:
		return v.visitCreateView(c)
	case *AlterTableStmtCst:
		return v.visitAlterTable(c)
	case *AlterMatViewStmtCst:
		return v.visitAlterMatView(c)
	case *AlterUserStmtCst:
		return v.visitAlterUser(c)
	case *DropStmtCst:
		return v.visitDrop(c)
	case *RenameTableStmtCst:
		return v.visitRenameTable(c)
	case *TruncateStmtCst:
		return v.visitTruncate(c)
	case *VacuumStmtCst:
		return v.visitVacuum(c)
	case *ReindexStmtCst:
		return v.visitReindex(c)
	case *CheckpointStmtCst:
		return v.visitCheckpoint(c)
	case *SnapshotStmtCst:
		return v.visitSnapshot(c)
	case *BackupStmtCst:
		return v.visitBackup(c)
	case *CopyStmtCst:
		return v.visitCopy(c)
	case *CreateUserStmtCst:
		return v.visitCreateUser(c)
	case *CreateGroupStmtCst:
		return v.visitCreateGroup(c)
	case *CreateServiceAccountStmtCst:
		return v.visitCreateServiceAccount(c)
	case *AddUserStmtCst:
		return v.visitAddUser(c)
	case *RemoveUserStmtCst:
		return v.visitRemoveUser(c)
	case *GrantStmtCst:
		return v.visitGrant(c)
	case *RevokeStmtCst:
		return v.visitRevoke(c)
	case *AssumeStmtCst:
		return v.visitAssume(c)
	case *ExitStmtCst:
		return v.visitExit(c)
	case *ShowStmtCst:
		return v.visitShow(c)
	case *ExplainStmtCst:
		return v.visitExplain(c)
	}
	return nil, fmt.Errorf("no handler for rule %s", cst.RuleName())
}

// missing reports a hole in a partial CST: the grammar recorded a
// syntax error for this statement and left a required piece unfilled.
func missing(what string) error {
	return fmt.Errorf("missing %s", what)
}

// identValue extracts the name a token contributes in identifier
// position. String tokens are admitted in table name position and
// carry their unescaped value.
func identValue(tok Token) string {
	if tok.Is(TokenString) {
		return tok.Val
	}
	return tok.IdentValue()
}

func identList(toks []Token) []string {
	if len(toks) == 0 {
		return nil
	}
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = identValue(tok)
	}
	return out
}

func (v *visitor) visitQualifiedName(cst *QualifiedNameCst) (*ast.QualifiedName, error) {
	if cst == nil || len(cst.Parts) == 0 {
		return nil, missing("name")
	}
	parts := make([]string, len(cst.Parts))
	for i, tok := range cst.Parts {
		parts[i] = identValue(tok)
	}
	name := ast.NewQualifiedName(parts...)
	name.SetLocation(cst.Pos())
	return name, nil
}
