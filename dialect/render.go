package dialect

import (
	"fmt"
	"strings"

	"github.com/ridoystarlord/ddlgen/ddl"
)

// Render returns the statements creating tables, in order, each terminated
// by ";". For every table it emits the CREATE TABLE statement, then its
// CREATE INDEX statements, then its COMMENT ON statements. Deferred foreign
// keys follow all tables. With safe set, CREATE TABLE and CREATE INDEX gain
// IF NOT EXISTS.
func Render(tables []*ddl.Table, d Dialect, safe bool) []string {
	var stmts, deferred []string
	for _, t := range tables {
		stmts = append(stmts, createTable(d, t, safe))
		if !d.InlineIndexes() {
			for _, idx := range t.Indexes {
				stmts = append(stmts, createIndex(d, t, idx, safe))
			}
		}
		if d.CommentStyle() == CommentStatement {
			stmts = append(stmts, commentStatements(d, t)...)
		}
		for _, fk := range t.ForeignKeys {
			if isDeferred(d, fk) {
				deferred = append(deferred, addForeignKey(d, t, fk))
			}
		}
	}
	return append(stmts, deferred...)
}

func createTable(d Dialect, t *ddl.Table, safe bool) string {
	defs := make([]string, 0, len(t.Columns)+len(t.Uniques)+len(t.ForeignKeys)+len(t.Indexes))
	for _, c := range t.Columns {
		defs = append(defs, columnDef(d, t, c))
	}
	for _, u := range t.Uniques {
		// Dialects with KEY clauses spell uniques as UNIQUE KEY too.
		if d.InlineIndexes() {
			defs = append(defs, fmt.Sprintf("UNIQUE KEY %s (%s)", d.Quote(u.Name), columnList(d, u.Columns)))
		} else {
			defs = append(defs, fmt.Sprintf("CONSTRAINT %s UNIQUE (%s)", d.Quote(u.Name), columnList(d, u.Columns)))
		}
	}
	if !d.InlineReferences() {
		for _, fk := range t.ForeignKeys {
			if !isDeferred(d, fk) {
				defs = append(defs, constraintDef(d, fk))
			}
		}
	}
	if d.InlineIndexes() {
		for _, idx := range t.Indexes {
			defs = append(defs, fmt.Sprintf("KEY %s (%s)", d.Quote(idx.Name), columnList(d, idx.Columns)))
		}
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if safe {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(d.Quote(t.Name))
	b.WriteString(" (\n    ")
	b.WriteString(strings.Join(defs, ",\n    "))
	b.WriteString("\n)")
	b.WriteString(d.TableOptions())
	if t.Comment != "" {
		switch d.CommentStyle() {
		case CommentInline:
			b.WriteString(" /* " + d.Comment(t.Comment) + " */")
		case CommentAttribute:
			b.WriteString(" COMMENT=" + d.Comment(t.Comment))
		}
	}
	b.WriteString(";")
	return b.String()
}

// columnDef renders one column. Reference columns never carry a default and
// put their comment after the REFERENCES clause.
func columnDef(d Dialect, t *ddl.Table, c *ddl.Column) string {
	name := d.Quote(c.Name)
	comment := columnComment(d, c.Comment)
	if c.Increment {
		return name + " " + d.GeneratedKey(c.Type) + comment
	}

	var nullable, unique, primary string
	if !c.Nullable {
		nullable = "NOT NULL"
	}
	if c.Unique {
		unique = "UNIQUE"
	}
	if c.Primary {
		primary = " PRIMARY KEY"
	}
	head := fmt.Sprintf("%s %s %s %s%s", name, d.ColumnType(c.Type), nullable, unique, primary)

	if fk := t.ForeignKey(c.Name); fk != nil {
		s := strings.TrimSpace(head)
		if d.InlineReferences() && !isDeferred(d, fk) {
			s += fmt.Sprintf(" REFERENCES %s (%s) ON DELETE %s", d.Quote(fk.RefTable), d.Quote(fk.RefColumn), fk.OnDelete)
		}
		return s + comment
	}

	def := d.DefaultClause(c.Default, c.Type)
	if d.CommentStyle() == CommentAttribute {
		return strings.TrimSpace(head + comment + def)
	}
	return strings.TrimSpace(head + def + comment)
}

func columnComment(d Dialect, text string) string {
	if text == "" {
		return ""
	}
	switch d.CommentStyle() {
	case CommentInline:
		return " /* " + d.Comment(text) + " */"
	case CommentAttribute:
		return " COMMENT " + d.Comment(text)
	}
	return ""
}

func constraintDef(d Dialect, fk *ddl.ForeignKey) string {
	s := fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s",
		d.Quote(fk.Column), d.Quote(fk.RefTable), d.Quote(fk.RefColumn), fk.OnDelete)
	if fk.Name == "" {
		return s
	}
	return "CONSTRAINT " + d.Quote(fk.Name) + " " + s
}

func createIndex(d Dialect, t *ddl.Table, idx *ddl.Index, safe bool) string {
	exists := ""
	if safe {
		exists = "IF NOT EXISTS "
	}
	return fmt.Sprintf("CREATE INDEX %s%s ON %s (%s);", exists, d.Quote(idx.Name), d.Quote(t.Name), columnList(d, idx.Columns))
}

// commentStatements are never guarded in safe mode: COMMENT ON can be rerun.
func commentStatements(d Dialect, t *ddl.Table) []string {
	var stmts []string
	for _, c := range t.Columns {
		if c.Comment != "" {
			stmts = append(stmts, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s;", d.Quote(t.Name), d.Quote(c.Name), d.Comment(c.Comment)))
		}
	}
	if t.Comment != "" {
		stmts = append(stmts, fmt.Sprintf("COMMENT ON TABLE %s IS %s;", d.Quote(t.Name), d.Comment(t.Comment)))
	}
	return stmts
}

func addForeignKey(d Dialect, t *ddl.Table, fk *ddl.ForeignKey) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s;", d.Quote(t.Name), constraintDef(d, fk))
}

func isDeferred(d Dialect, fk *ddl.ForeignKey) bool {
	return fk.Deferred && d.DeferReferences()
}

func columnList(d Dialect, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.Quote(c)
	}
	return strings.Join(quoted, ", ")
}
