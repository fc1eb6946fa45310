// Package dialect renders abstract table definitions as SQL for one of the
// supported database engines.
//
// The set of dialects is closed: SQLite (the generic dialect), MySQL and
// Postgres. Each is a value implementing Dialect, selected by Name through
// New. Render assembles statements from a Dialect's capabilities and never
// fails on a derived schema.
package dialect

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/ddlgen/ddl"
)

// Name identifies a dialect.
type Name string

// Supported dialects.
const (
	SQLite   Name = "sqlite"
	MySQL    Name = "mysql"
	Postgres Name = "postgres"
)

// Names lists the supported dialects in a stable order.
var Names = []Name{SQLite, MySQL, Postgres}

// Parse maps a dialect name or common alias to a Name.
func Parse(s string) (Name, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sqlite", "sqlite3", "generic", "sql":
		return SQLite, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "postgres", "postgresql", "pg", "pgx":
		return Postgres, nil
	}
	return "", fmt.Errorf("unsupported dialect %q (want sqlite, mysql or postgres)", s)
}

// DefaultCharset is the MySQL table character set when none is configured.
const DefaultCharset = "utf8mb4"

// Config selects and tunes a dialect.
type Config struct {
	Name Name
	// Charset is the MySQL table character set.
	Charset string
}

// CommentStyle is how a dialect attaches comments to tables and columns.
type CommentStyle int

const (
	// CommentInline embeds /* ... */ blocks in the CREATE TABLE statement.
	CommentInline CommentStyle = iota + 1
	// CommentAttribute uses COMMENT '...' on columns and COMMENT='...' on tables.
	CommentAttribute
	// CommentStatement emits COMMENT ON statements after the table.
	CommentStatement
)

// Dialect is the capability set Render builds statements from.
type Dialect interface {
	Name() Name
	// Quote returns a quoted identifier.
	Quote(ident string) string
	// ColumnType returns the column type of t.
	ColumnType(t ddl.Type) string
	// GeneratedKey returns everything after the column name of an
	// autoincrement primary key of type t.
	GeneratedKey(t ddl.Type) string
	// DefaultClause returns the " DEFAULT ..." fragment for d on a column of
	// type t, or "".
	DefaultClause(d *ddl.Default, t ddl.Type) string
	// Comment returns comment text encoded for the dialect's CommentStyle:
	// the body of a /* */ block or a quoted string literal.
	Comment(text string) string
	CommentStyle() CommentStyle
	// InlineReferences reports whether foreign keys are written as column
	// REFERENCES clauses instead of table constraints.
	InlineReferences() bool
	// InlineIndexes reports whether indexes are KEY clauses of the CREATE
	// TABLE statement instead of CREATE INDEX statements.
	InlineIndexes() bool
	// DeferReferences reports whether foreign keys to tables created later
	// must be added by trailing ALTER TABLE statements.
	DeferReferences() bool
	// TableOptions returns the suffix after the closing parenthesis.
	TableOptions() string
	// MaxIdentifierLen is the engine's identifier length limit.
	MaxIdentifierLen() int
}

// New returns the dialect selected by cfg.Name.
func New(cfg Config) (Dialect, error) {
	switch cfg.Name {
	case SQLite:
		return sqlite{}, nil
	case MySQL:
		charset := cfg.Charset
		if charset == "" {
			charset = DefaultCharset
		}
		return mysql{charset: charset}, nil
	case Postgres:
		return postgres{}, nil
	}
	return nil, fmt.Errorf("unsupported dialect %q", cfg.Name)
}

// quoteWith wraps ident in q, doubling any q inside it.
func quoteWith(q, ident string) string {
	return q + strings.ReplaceAll(ident, q, q+q) + q
}
