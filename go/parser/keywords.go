/*
 * Keyword recognition for the chronoql lexer.
 *
 * Keywords are matched case-insensitively. Reserved keywords can never
 * appear in identifier position; everything else doubles as an
 * identifier wherever the grammar expects one.
 */

package parser

import "strings"

// Keyword identifies a dialect keyword.
type Keyword int

const (
	KwInvalid Keyword = iota
	KwAccount
	KwAccounts
	KwAdd
	KwAlign
	KwAll
	KwAlter
	KwAnd
	KwArray
	KwAs
	KwAsc
	KwAsof
	KwAssume
	KwAtomic
	KwAttach
	KwBackup
	KwBase
	KwBatch
	KwBetween
	KwBy
	KwBypass
	KwCache
	KwCalendar
	KwCancel
	KwCapacity
	KwCase
	KwCast
	KwCheckpoint
	KwColumn
	KwColumns
	KwComplete
	KwCopy
	KwCreate
	KwCross
	KwCurrent
	KwDatabase
	KwDay
	KwDays
	KwDedup
	KwDelimiter
	KwDesc
	KwDetach
	KwDisable
	KwDistinct
	KwDrop
	KwElse
	KwEnable
	KwEnd
	KwError
	KwEvery
	KwExcept
	KwExclusive
	KwExists
	KwExit
	KwExplain
	KwFalse
	KwFill
	KwFirst
	KwFollowing
	KwFor
	KwFormat
	KwFrom
	KwGrant
	KwGroup
	KwGroups
	KwHeader
	KwHour
	KwHours
	KwIf
	KwIgnore
	KwIlike
	KwImmediate
	KwIn
	KwIndex
	KwInner
	KwInsert
	KwIntersect
	KwInto
	KwIs
	KwIsolation
	KwJoin
	KwJwk
	KwKeys
	KwLatest
	KwLeft
	KwLevel
	KwLike
	KwLimit
	KwList
	KwLock
	KwLt
	KwManual
	KwMaterialized
	KwMonth
	KwMonths
	KwNo
	KwNocache
	KwNone
	KwNot
	KwNull
	KwNulls
	KwO3MaxLag
	KwObservation
	KwOffset
	KwOn
	KwOption
	KwOr
	KwOrder
	KwOuter
	KwOver
	KwOwned
	KwParam
	KwParameters
	KwPartition
	KwPartitions
	KwPassword
	KwPivot
	KwPreceding
	KwPrepare
	KwRange
	KwRefresh
	KwReindex
	KwRelease
	KwRemove
	KwRename
	KwRespect
	KwRest
	KwResume
	KwRevoke
	KwRow
	KwRows
	KwSample
	KwSelect
	KwService
	KwSet
	KwShow
	KwSnapshot
	KwSplice
	KwSquash
	KwSuspend
	KwSymbol
	KwTable
	KwTables
	KwThen
	KwTime
	KwTimestamp
	KwTo
	KwToken
	KwTolerance
	KwTransaction
	KwTrue
	KwTruncate
	KwTtl
	KwTxn
	KwType
	KwUnbounded
	KwUnion
	KwUpdate
	KwUpsert
	KwUser
	KwUsers
	KwVacuum
	KwValues
	KwVerification
	KwView
	KwVolume
	KwWal
	KwWeek
	KwWeeks
	KwWhen
	KwWhere
	KwWindow
	KwWith
	KwWithin
	KwYear
	KwYears
	KwZone
)

// KeywordInfo describes one keyword: its canonical spelling and whether
// it is reserved.
type KeywordInfo struct {
	Name     string
	Kw       Keyword
	Reserved bool
}

// keywords lists every dialect keyword in alphabetical order.
var keywords = []KeywordInfo{
	{"account", KwAccount, false},
	{"accounts", KwAccounts, false},
	{"add", KwAdd, false},
	{"align", KwAlign, false},
	{"all", KwAll, false},
	{"alter", KwAlter, false},
	{"and", KwAnd, true},
	{"array", KwArray, false},
	{"as", KwAs, true},
	{"asc", KwAsc, false},
	{"asof", KwAsof, true},
	{"assume", KwAssume, false},
	{"atomic", KwAtomic, false},
	{"attach", KwAttach, false},
	{"backup", KwBackup, false},
	{"base", KwBase, false},
	{"batch", KwBatch, false},
	{"between", KwBetween, true},
	{"by", KwBy, true},
	{"bypass", KwBypass, false},
	{"cache", KwCache, false},
	{"calendar", KwCalendar, false},
	{"cancel", KwCancel, false},
	{"capacity", KwCapacity, false},
	{"case", KwCase, true},
	{"cast", KwCast, true},
	{"checkpoint", KwCheckpoint, false},
	{"column", KwColumn, false},
	{"columns", KwColumns, false},
	{"complete", KwComplete, false},
	{"copy", KwCopy, false},
	{"create", KwCreate, true},
	{"cross", KwCross, true},
	{"current", KwCurrent, false},
	{"database", KwDatabase, false},
	{"day", KwDay, false},
	{"days", KwDays, false},
	{"dedup", KwDedup, false},
	{"delimiter", KwDelimiter, false},
	{"desc", KwDesc, false},
	{"detach", KwDetach, false},
	{"disable", KwDisable, false},
	{"distinct", KwDistinct, true},
	{"drop", KwDrop, false},
	{"else", KwElse, true},
	{"enable", KwEnable, false},
	{"end", KwEnd, true},
	{"error", KwError, false},
	{"every", KwEvery, false},
	{"except", KwExcept, true},
	{"exclusive", KwExclusive, false},
	{"exists", KwExists, false},
	{"exit", KwExit, false},
	{"explain", KwExplain, false},
	{"false", KwFalse, true},
	{"fill", KwFill, false},
	{"first", KwFirst, false},
	{"following", KwFollowing, false},
	{"for", KwFor, false},
	{"format", KwFormat, false},
	{"from", KwFrom, true},
	{"grant", KwGrant, false},
	{"group", KwGroup, true},
	{"groups", KwGroups, false},
	{"header", KwHeader, false},
	{"hour", KwHour, false},
	{"hours", KwHours, false},
	{"if", KwIf, false},
	{"ignore", KwIgnore, false},
	{"ilike", KwIlike, true},
	{"immediate", KwImmediate, false},
	{"in", KwIn, true},
	{"index", KwIndex, false},
	{"inner", KwInner, true},
	{"insert", KwInsert, true},
	{"intersect", KwIntersect, true},
	{"into", KwInto, true},
	{"is", KwIs, true},
	{"isolation", KwIsolation, false},
	{"join", KwJoin, true},
	{"jwk", KwJwk, false},
	{"keys", KwKeys, false},
	{"latest", KwLatest, true},
	{"left", KwLeft, true},
	{"level", KwLevel, false},
	{"like", KwLike, true},
	{"limit", KwLimit, true},
	{"list", KwList, false},
	{"lock", KwLock, false},
	{"lt", KwLt, false},
	{"manual", KwManual, false},
	{"materialized", KwMaterialized, false},
	{"month", KwMonth, false},
	{"months", KwMonths, false},
	{"no", KwNo, false},
	{"nocache", KwNocache, false},
	{"none", KwNone, false},
	{"not", KwNot, true},
	{"null", KwNull, true},
	{"nulls", KwNulls, false},
	{"o3maxlag", KwO3MaxLag, false},
	{"observation", KwObservation, false},
	{"offset", KwOffset, false},
	{"on", KwOn, true},
	{"option", KwOption, false},
	{"or", KwOr, true},
	{"order", KwOrder, true},
	{"outer", KwOuter, true},
	{"over", KwOver, true},
	{"owned", KwOwned, false},
	{"param", KwParam, false},
	{"parameters", KwParameters, false},
	{"partition", KwPartition, false},
	{"partitions", KwPartitions, false},
	{"password", KwPassword, false},
	{"pivot", KwPivot, false},
	{"preceding", KwPreceding, false},
	{"prepare", KwPrepare, false},
	{"range", KwRange, false},
	{"refresh", KwRefresh, false},
	{"reindex", KwReindex, false},
	{"release", KwRelease, false},
	{"remove", KwRemove, false},
	{"rename", KwRename, false},
	{"respect", KwRespect, false},
	{"rest", KwRest, false},
	{"resume", KwResume, false},
	{"revoke", KwRevoke, false},
	{"row", KwRow, false},
	{"rows", KwRows, false},
	{"sample", KwSample, true},
	{"select", KwSelect, true},
	{"service", KwService, false},
	{"set", KwSet, false},
	{"show", KwShow, false},
	{"snapshot", KwSnapshot, false},
	{"splice", KwSplice, true},
	{"squash", KwSquash, false},
	{"suspend", KwSuspend, false},
	{"symbol", KwSymbol, false},
	{"table", KwTable, true},
	{"tables", KwTables, false},
	{"then", KwThen, true},
	{"time", KwTime, false},
	{"timestamp", KwTimestamp, false},
	{"to", KwTo, false},
	{"token", KwToken, false},
	{"tolerance", KwTolerance, false},
	{"transaction", KwTransaction, false},
	{"true", KwTrue, true},
	{"truncate", KwTruncate, false},
	{"ttl", KwTtl, false},
	{"txn", KwTxn, false},
	{"type", KwType, false},
	{"unbounded", KwUnbounded, false},
	{"union", KwUnion, true},
	{"update", KwUpdate, true},
	{"upsert", KwUpsert, false},
	{"user", KwUser, false},
	{"users", KwUsers, false},
	{"vacuum", KwVacuum, false},
	{"values", KwValues, true},
	{"verification", KwVerification, false},
	{"view", KwView, false},
	{"volume", KwVolume, false},
	{"wal", KwWal, false},
	{"week", KwWeek, false},
	{"weeks", KwWeeks, false},
	{"when", KwWhen, true},
	{"where", KwWhere, true},
	{"window", KwWindow, false},
	{"with", KwWith, true},
	{"within", KwWithin, true},
	{"year", KwYear, false},
	{"years", KwYears, false},
	{"zone", KwZone, false},
}

var (
	keywordIndex = make(map[string]Keyword, len(keywords))
	keywordInfos = make(map[Keyword]KeywordInfo, len(keywords))
)

func init() {
	for _, info := range keywords {
		keywordIndex[info.Name] = info.Kw
		keywordInfos[info.Kw] = info
	}
}

// LookupKeyword resolves a word to its keyword, matching
// case-insensitively. The second result is false for non-keywords.
func LookupKeyword(name string) (Keyword, bool) {
	kw, ok := keywordIndex[strings.ToLower(name)]
	return kw, ok
}

// IsReservedKeyword reports whether name is a reserved keyword.
func IsReservedKeyword(name string) bool {
	kw, ok := LookupKeyword(name)
	return ok && keywordInfos[kw].Reserved
}

// KeywordName returns the canonical lower-case spelling of a keyword.
func KeywordName(kw Keyword) string {
	return keywordInfos[kw].Name
}
