package dialect

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/ridoystarlord/ddlgen/ddl"
	"github.com/ridoystarlord/ddlgen/schema"
)

type postgres struct{}

var postgresTypes = map[schema.FieldType]string{
	schema.TypeInt:       "INT",
	schema.TypeSmallInt:  "SMALLINT",
	schema.TypeBigInt:    "BIGINT",
	schema.TypeText:      "TEXT",
	schema.TypeUUID:      "UUID",
	schema.TypeFloat:     "DOUBLE PRECISION",
	schema.TypeBool:      "BOOL",
	schema.TypeDatetime:  "TIMESTAMP",
	schema.TypeDate:      "DATE",
	schema.TypeTime:      "TIME",
	schema.TypeTimeDelta: "BIGINT",
	schema.TypeJSON:      "JSONB",
	schema.TypeBinary:    "BYTEA",
}

var postgresSerials = map[schema.FieldType]string{
	schema.TypeInt:      "SERIAL",
	schema.TypeSmallInt: "SMALLSERIAL",
	schema.TypeBigInt:   "BIGSERIAL",
}

func (postgres) Name() Name { return Postgres }

func (postgres) Quote(ident string) string { return pgx.Identifier{ident}.Sanitize() }

func (postgres) ColumnType(t ddl.Type) string {
	switch t.Kind {
	case schema.TypeVarchar:
		return fmt.Sprintf("VARCHAR(%d)", t.Size)
	case schema.TypeChar:
		return fmt.Sprintf("CHAR(%d)", t.Size)
	case schema.TypeDecimal:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Precision, t.Scale)
	}
	return postgresTypes[t.Kind]
}

func (postgres) GeneratedKey(t ddl.Type) string {
	return postgresSerials[t.Kind] + " NOT NULL PRIMARY KEY"
}

func (postgres) DefaultClause(d *ddl.Default, _ ddl.Type) string {
	if d == nil {
		return ""
	}
	switch d.Kind {
	case ddl.DefaultNow, ddl.DefaultNowOnUpdate:
		return " DEFAULT CURRENT_TIMESTAMP"
	case ddl.DefaultExpr:
		return " DEFAULT " + d.Expr
	}
	return " DEFAULT " + literal(d.Value, postgresQuote, "TRUE", "FALSE")
}

func (postgres) Comment(text string) string { return postgresQuote(text) }

func (postgres) CommentStyle() CommentStyle { return CommentStatement }
func (postgres) InlineReferences() bool     { return true }
func (postgres) InlineIndexes() bool        { return false }
func (postgres) DeferReferences() bool      { return true }
func (postgres) TableOptions() string       { return "" }
func (postgres) MaxIdentifierLen() int      { return 63 }

// postgresQuote returns a string literal. Text with backslashes or line
// breaks uses the E'' form so the literal stays on one line.
func postgresQuote(s string) string {
	if strings.ContainsAny(s, "\\\n\r") {
		return "E'" + postgresEscaper.Replace(s) + "'"
	}
	return pq.QuoteLiteral(s)
}
