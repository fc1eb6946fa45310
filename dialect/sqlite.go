package dialect

import (
	"fmt"

	"github.com/ridoystarlord/ddlgen/ddl"
	"github.com/ridoystarlord/ddlgen/schema"
)

// sqlite is the generic dialect. It does not check references at create
// time, so every foreign key stays inline.
type sqlite struct{}

var sqliteTypes = map[schema.FieldType]string{
	schema.TypeInt:       "INT",
	schema.TypeSmallInt:  "SMALLINT",
	schema.TypeBigInt:    "BIGINT",
	schema.TypeText:      "TEXT",
	schema.TypeUUID:      "CHAR(36)",
	schema.TypeFloat:     "REAL",
	schema.TypeDecimal:   "VARCHAR(40)",
	schema.TypeBool:      "INT",
	schema.TypeDatetime:  "TIMESTAMP",
	schema.TypeDate:      "DATE",
	schema.TypeTime:      "TIME",
	schema.TypeTimeDelta: "BIGINT",
	schema.TypeJSON:      "TEXT",
	schema.TypeBinary:    "BLOB",
}

func (sqlite) Name() Name { return SQLite }

func (sqlite) Quote(ident string) string { return quoteWith(`"`, ident) }

func (sqlite) ColumnType(t ddl.Type) string {
	switch t.Kind {
	case schema.TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", t.Size)
	case schema.TypeChar:
		return fmt.Sprintf("CHAR(%d)", t.Size)
	}
	return sqliteTypes[t.Kind]
}

// GeneratedKey is always INTEGER: only an INTEGER PRIMARY KEY aliases the rowid.
func (sqlite) GeneratedKey(ddl.Type) string {
	return "INTEGER PRIMARY KEY AUTOINCREMENT NOT NULL"
}

func (sqlite) DefaultClause(d *ddl.Default, _ ddl.Type) string {
	if d == nil {
		return ""
	}
	switch d.Kind {
	case ddl.DefaultNow, ddl.DefaultNowOnUpdate:
		return " DEFAULT CURRENT_TIMESTAMP"
	case ddl.DefaultExpr:
		return " DEFAULT " + d.Expr
	}
	return " DEFAULT " + literal(d.Value, sqliteQuote, "1", "0")
}

func (sqlite) Comment(text string) string { return blockCommentEscaper.Replace(text) }

func (sqlite) CommentStyle() CommentStyle { return CommentInline }
func (sqlite) InlineReferences() bool     { return true }
func (sqlite) InlineIndexes() bool        { return false }
func (sqlite) DeferReferences() bool      { return false }
func (sqlite) TableOptions() string       { return "" }
func (sqlite) MaxIdentifierLen() int      { return 63 }
