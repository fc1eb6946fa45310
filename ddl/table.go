// Package ddl holds the dialect-neutral description of the tables a schema
// creates. Renderers in package dialect turn it into SQL text.
package ddl

import "github.com/ridoystarlord/ddlgen/schema"

// Table is the abstract definition of one CREATE TABLE and everything that
// belongs to it.
type Table struct {
	Name        string
	Columns     []*Column
	PrimaryKey  []string
	ForeignKeys []*ForeignKey
	Uniques     []*Unique
	Indexes     []*Index
	Comment     string

	// Join marks a synthetic many-to-many table.
	Join bool
}

// Column returns the named column, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ForeignKey returns the foreign key on the named local column, or nil.
func (t *Table) ForeignKey(column string) *ForeignKey {
	for _, fk := range t.ForeignKeys {
		if fk.Column == column {
			return fk
		}
	}
	return nil
}

// Type is a neutral column type.
type Type struct {
	Kind      schema.FieldType
	Size      int // varchar and char length
	Precision int // decimal max digits
	Scale     int // decimal places
}

// Column is one column definition.
type Column struct {
	Name      string
	Type      Type
	Nullable  bool
	Unique    bool
	Primary   bool
	Increment bool
	Default   *Default
	Comment   string
}

// DefaultKind selects how a default is rendered.
type DefaultKind int

const (
	// DefaultLiteral is a literal value quoted per dialect.
	DefaultLiteral DefaultKind = iota + 1
	// DefaultExpr is raw SQL.
	DefaultExpr
	// DefaultNow is the insert timestamp.
	DefaultNow
	// DefaultNowOnUpdate is the insert timestamp refreshed on every update
	// where the dialect supports it.
	DefaultNowOnUpdate
)

// Default is a neutral default token.
type Default struct {
	Kind  DefaultKind
	Value any    // DefaultLiteral
	Expr  string // DefaultExpr
}

// ForeignKey is a reference from a local column to a column of another table.
type ForeignKey struct {
	// Name is the constraint name. Empty for join table keys, which
	// dialects with named constraints render unnamed.
	Name      string
	Column    string
	RefTable  string
	RefColumn string
	OnDelete  string // SQL form, e.g. "SET NULL"

	// Deferred keys reference a table created later. Dialects that check
	// references at create time add them after all tables.
	Deferred bool
}

// Unique is a composite unique constraint.
type Unique struct {
	Name    string
	Columns []string
}

// Index is a non-unique index.
type Index struct {
	Name    string
	Columns []string
}
