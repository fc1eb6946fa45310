package dialect

import (
	"fmt"

	"github.com/ridoystarlord/ddlgen/ddl"
	"github.com/ridoystarlord/ddlgen/schema"
)

type mysql struct {
	charset string
}

var mysqlTypes = map[schema.FieldType]string{
	schema.TypeInt:       "INT",
	schema.TypeSmallInt:  "SMALLINT",
	schema.TypeBigInt:    "BIGINT",
	schema.TypeText:      "LONGTEXT",
	schema.TypeUUID:      "CHAR(36)",
	schema.TypeFloat:     "DOUBLE",
	schema.TypeBool:      "BOOL",
	schema.TypeDatetime:  "DATETIME(6)",
	schema.TypeDate:      "DATE",
	schema.TypeTime:      "TIME(6)",
	schema.TypeTimeDelta: "BIGINT",
	schema.TypeJSON:      "JSON",
	schema.TypeBinary:    "LONGBLOB",
}

func (mysql) Name() Name { return MySQL }

func (mysql) Quote(ident string) string { return quoteWith("`", ident) }

func (mysql) ColumnType(t ddl.Type) string {
	switch t.Kind {
	case schema.TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", t.Size)
	case schema.TypeChar:
		return fmt.Sprintf("CHAR(%d)", t.Size)
	case schema.TypeDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale)
	}
	return mysqlTypes[t.Kind]
}

func (m mysql) GeneratedKey(t ddl.Type) string {
	return m.ColumnType(t) + " NOT NULL PRIMARY KEY AUTO_INCREMENT"
}

func (mysql) DefaultClause(d *ddl.Default, _ ddl.Type) string {
	if d == nil {
		return ""
	}
	switch d.Kind {
	case ddl.DefaultNow:
		return " DEFAULT CURRENT_TIMESTAMP(6)"
	case ddl.DefaultNowOnUpdate:
		return " DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6)"
	case ddl.DefaultExpr:
		return " DEFAULT " + d.Expr
	}
	return " DEFAULT " + literal(d.Value, mysqlQuote, "1", "0")
}

func (mysql) Comment(text string) string { return mysqlQuote(text) }

func (mysql) CommentStyle() CommentStyle { return CommentAttribute }
func (mysql) InlineReferences() bool     { return false }
func (mysql) InlineIndexes() bool        { return true }
func (mysql) DeferReferences() bool      { return true }
func (m mysql) TableOptions() string     { return " CHARACTER SET " + m.charset }
func (mysql) MaxIdentifierLen() int      { return 64 }

// mysqlQuote returns a backslash-escaped MySQL string literal.
func mysqlQuote(s string) string {
	return "'" + mysqlStringEscaper.Replace(s) + "'"
}
