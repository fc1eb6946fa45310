package ddl

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Prefixes of generated constraint and index names.
const (
	IndexPrefix      = "idx"
	UniquePrefix     = "uid"
	ForeignKeyPrefix = "fk"
)

// Hash returns the first length hex characters of the sha256 of the
// ";"-joined parts.
func Hash(length int, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ";")))
	h := hex.EncodeToString(sum[:])
	if length > len(h) {
		return h
	}
	return h[:length]
}

// IndexName returns the deterministic name of an index or unique constraint:
// <prefix>_<table[:11]>_<first column[:7]>_<6 hex hash of table and columns>.
func IndexName(prefix, table string, columns []string) string {
	first := ""
	if len(columns) > 0 {
		first = columns[0]
	}
	return prefix + "_" + truncate(table, 11) + "_" + truncate(first, 7) + "_" +
		Hash(6, append([]string{table}, columns...)...)
}

// ForeignKeyName returns the deterministic name of a foreign key constraint:
// fk_<from table[:8]>_<to table[:8]>_<8 hex hash of both ends>.
func ForeignKeyName(fromTable, fromColumn, toTable, toColumn string) string {
	return ForeignKeyPrefix + "_" + truncate(fromTable, 8) + "_" + truncate(toTable, 8) + "_" +
		Hash(8, fromTable, fromColumn, toTable, toColumn)
}

// truncate cuts s to at most n characters.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
