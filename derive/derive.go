// Package derive turns a resolved model graph into abstract table
// definitions.
package derive

import (
	"github.com/ridoystarlord/ddlgen/ddl"
	"github.com/ridoystarlord/ddlgen/schema"
	"github.com/ridoystarlord/ddlgen/validator"
)

// Tables derives one table per model in emission order, followed by the
// join tables of many-to-many relations in the order their declaring models
// were emitted. It never fails on a resolved graph.
func Tables(g *validator.Graph) []*ddl.Table {
	pos := make(map[*validator.Node]int, len(g.Models))
	for i, n := range g.Models {
		pos[n] = i
	}

	tables := make([]*ddl.Table, 0, len(g.Models))
	var joins []*ddl.Table
	for _, n := range g.Models {
		tables = append(tables, modelTable(n, pos))
		for _, ref := range n.M2M {
			joins = append(joins, joinTable(n, ref))
		}
	}
	return append(tables, joins...)
}

func modelTable(n *validator.Node, pos map[*validator.Node]int) *ddl.Table {
	t := &ddl.Table{
		Name:       n.Table,
		PrimaryKey: []string{n.PK.Column},
		Comment:    n.Model.Comment,
	}
	var indexed [][]string

	for _, f := range n.Fields {
		t.Columns = append(t.Columns, &ddl.Column{
			Name:      f.ColumnName(),
			Type:      typeOf(&f),
			Nullable:  f.Null && !f.PK,
			Unique:    f.Unique && !f.PK,
			Primary:   f.PK,
			Increment: f.Generated,
			Default:   defaultOf(&f),
			Comment:   f.Comment,
		})
		if f.Index && !f.PK {
			indexed = append(indexed, []string{f.ColumnName()})
		}
	}

	for _, ref := range n.Refs {
		rel := ref.Relation
		col := rel.ColumnName()
		t.Columns = append(t.Columns, &ddl.Column{
			Name:     col,
			Type:     typeOf(ref.TargetField),
			Nullable: rel.Null && !rel.PK,
			Unique:   rel.Kind == schema.OneToOne && !rel.PK,
			Primary:  rel.PK,
			Comment:  rel.Comment,
		})
		t.ForeignKeys = append(t.ForeignKeys, &ddl.ForeignKey{
			Name:      ddl.ForeignKeyName(n.Table, col, ref.Target.Table, ref.TargetColumn),
			Column:    col,
			RefTable:  ref.Target.Table,
			RefColumn: ref.TargetColumn,
			OnDelete:  rel.Action().SQL(),
			Deferred:  !ref.Self && pos[ref.Target] > pos[n],
		})
		if rel.Index && !rel.PK {
			indexed = append(indexed, []string{col})
		}
	}

	for _, cols := range n.UniqueTogether {
		t.Uniques = append(t.Uniques, &ddl.Unique{
			Name:    ddl.IndexName(ddl.UniquePrefix, n.Table, cols),
			Columns: cols,
		})
	}

	seen := make(map[string]bool)
	for _, cols := range append(indexed, n.Indexes...) {
		name := ddl.IndexName(ddl.IndexPrefix, n.Table, cols)
		if seen[name] {
			continue
		}
		seen[name] = true
		t.Indexes = append(t.Indexes, &ddl.Index{Name: name, Columns: cols})
	}
	return t
}

// joinTable synthesizes the table of a many-to-many relation: two required
// cascading keys and no primary key.
func joinTable(n *validator.Node, ref *validator.Ref) *ddl.Table {
	backward, forward := validator.JoinKeys(n, ref)
	name := validator.JoinTableName(n, ref)
	t := &ddl.Table{
		Name: name,
		Columns: []*ddl.Column{
			{Name: backward, Type: typeOf(n.PK.Field)},
			{Name: forward, Type: typeOf(ref.Target.PK.Field)},
		},
		ForeignKeys: []*ddl.ForeignKey{
			{Column: backward, RefTable: n.Table, RefColumn: n.PK.Column, OnDelete: schema.Cascade.SQL()},
			{Column: forward, RefTable: ref.Target.Table, RefColumn: ref.Target.PK.Column, OnDelete: schema.Cascade.SQL()},
		},
		Comment: ref.Relation.Comment,
		Join:    true,
	}
	if ref.Relation.Unique {
		cols := []string{backward, forward}
		t.Uniques = append(t.Uniques, &ddl.Unique{Name: ddl.IndexName(ddl.UniquePrefix, name, cols), Columns: cols})
	}
	return t
}

func typeOf(f *schema.Field) ddl.Type {
	return ddl.Type{
		Kind:      f.Type,
		Size:      f.MaxLength,
		Precision: f.MaxDigits,
		Scale:     f.DecimalPlaces,
	}
}

// defaultOf converts field defaults to neutral tokens. Literal defaults on
// text, json and uuid columns are dropped since not every dialect accepts them.
func defaultOf(f *schema.Field) *ddl.Default {
	switch {
	case f.AutoNow:
		return &ddl.Default{Kind: ddl.DefaultNowOnUpdate}
	case f.AutoNowAdd:
		return &ddl.Default{Kind: ddl.DefaultNow}
	case f.Default == nil:
		return nil
	case f.Default.Expr != "":
		return &ddl.Default{Kind: ddl.DefaultExpr, Expr: f.Default.Expr}
	case f.Default.Value == nil:
		return nil
	}
	switch f.Type {
	case schema.TypeText, schema.TypeJSON, schema.TypeUUID:
		return nil
	}
	return &ddl.Default{Kind: ddl.DefaultLiteral, Value: f.Default.Value}
}
