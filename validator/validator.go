package validator

import (
	"strings"

	"github.com/ridoystarlord/ddlgen/schema"
)

// Graph is the resolved model graph. Models are in emission order: for every
// required foreign key A -> B, B comes before A.
type Graph struct {
	Naming schema.Naming
	Models []*Node
}

// Node is one resolved model.
type Node struct {
	Model *schema.Model
	Table string

	// Fields holds the plain fields in column order, including the synthetic
	// primary key when the model declares none.
	Fields []schema.Field
	PK     PrimaryKey

	Refs []*Ref // foreign-key and one-to-one relations, declaration order
	M2M  []*Ref

	UniqueTogether [][]string // column names
	Indexes        [][]string // column names

	pkResolved bool
}

// PrimaryKey is the resolved primary key of a node.
type PrimaryKey struct {
	Column string
	// Field carries the key type. For a one-to-one primary key it is the
	// field referenced on the target.
	Field *schema.Field
	// Relation is set when a one-to-one relation is the primary key.
	Relation *schema.Relation
}

// Ref is a resolved relation.
type Ref struct {
	Relation *schema.Relation
	Target   *Node
	// TargetColumn is the referenced column on the target table.
	TargetColumn string
	// TargetField gives the type of the local column.
	TargetField *schema.Field
	Self        bool
	// Required refs constrain emission order.
	Required bool
}

// Option configures Resolve.
type Option func(*resolveConfig)

type resolveConfig struct {
	naming schema.Naming
}

// WithNaming sets the table naming strategy for models without a table name.
func WithNaming(n schema.Naming) Option {
	return func(c *resolveConfig) {
		c.naming = n
	}
}

// Resolve validates the declared models, resolves every relation target and
// returns the models in an order that satisfies required foreign keys. It
// fails with a *schema.ConfigError on the first invalid declaration.
func Resolve(models []*schema.Model, opts ...Option) (*Graph, error) {
	cfg := &resolveConfig{naming: schema.NamingLower}
	for _, opt := range opts {
		opt(cfg)
	}

	r := &resolver{
		byKey: make(map[string]*Node, len(models)),
		apps:  make(map[string]bool),
	}
	nodes := make([]*Node, 0, len(models))
	for _, m := range models {
		if _, ok := r.byKey[m.Key()]; ok {
			return nil, schema.NewConfigError(schema.DuplicateModel, m.Key(), "", "model %q is declared more than once", m.Key())
		}
		n := &Node{Model: m, Table: m.TableName(cfg.naming)}
		r.byKey[m.Key()] = n
		r.apps[m.App] = true
		nodes = append(nodes, n)
	}

	for _, n := range nodes {
		if err := r.checkFields(n); err != nil {
			return nil, err
		}
	}
	for _, n := range nodes {
		if err := r.resolveRelations(n); err != nil {
			return nil, err
		}
	}
	if err := checkTables(nodes); err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := r.resolvePK(n, map[*Node]bool{}); err != nil {
			return nil, err
		}
	}
	for _, n := range nodes {
		if err := r.resolveTargetFields(n); err != nil {
			return nil, err
		}
		if err := r.resolveTuples(n); err != nil {
			return nil, err
		}
	}

	ordered, err := emissionOrder(nodes)
	if err != nil {
		return nil, err
	}
	return &Graph{Naming: cfg.naming, Models: ordered}, nil
}

type resolver struct {
	byKey map[string]*Node
	apps  map[string]bool
}

// checkFields validates primary key declarations and collects plain fields.
func (r *resolver) checkFields(n *Node) error {
	m := n.Model
	pks := 0
	for i := range m.Fields {
		f := &m.Fields[i]
		if err := checkField(m, f); err != nil {
			return err
		}
		if f.Generated && !f.PK {
			return schema.NewConfigError(schema.InvalidPrimaryKey, m.Key(), f.Name, "generated requires pk")
		}
		if f.Generated && !f.Type.Integer() {
			return schema.NewConfigError(schema.InvalidPrimaryKey, m.Key(), f.Name, "only integer fields can be generated, got %s", f.Type)
		}
		if f.PK {
			pks++
		}
	}
	for i := range m.Relations {
		rel := &m.Relations[i]
		if !rel.PK {
			continue
		}
		if rel.Kind != schema.OneToOne {
			return schema.NewConfigError(schema.InvalidPrimaryKey, m.Key(), rel.Name, "only one-to-one relations can be primary keys")
		}
		pks++
	}
	if pks > 1 {
		return schema.NewConfigError(schema.InvalidPrimaryKey, m.Key(), "", "model declares %d primary keys, expected one", pks)
	}

	if pks == 0 {
		for _, f := range m.Fields {
			if f.ColumnName() == "id" {
				return schema.NewConfigError(schema.InvalidPrimaryKey, m.Key(), f.Name, `field "id" must be the primary key when no other primary key is declared`)
			}
		}
		n.Fields = append(n.Fields, schema.Field{Name: "id", Type: schema.TypeInt, PK: true, Generated: true})
	}
	n.Fields = append(n.Fields, m.Fields...)
	for i := range n.Fields {
		if n.Fields[i].PK {
			n.PK = PrimaryKey{Column: n.Fields[i].ColumnName(), Field: &n.Fields[i]}
			n.pkResolved = true
		}
	}
	return nil
}

func checkField(m *schema.Model, f *schema.Field) error {
	switch {
	case !f.Type.Valid():
		return schema.NewConfigError(schema.InvalidField, m.Key(), f.Name, "unknown field type %q", f.Type)
	case (f.Type == schema.TypeVarchar || f.Type == schema.TypeChar) && f.MaxLength <= 0:
		return schema.NewConfigError(schema.InvalidField, m.Key(), f.Name, "%s requires a positive max_length", f.Type)
	case f.Type == schema.TypeDecimal && (f.MaxDigits <= 0 || f.DecimalPlaces < 0 || f.DecimalPlaces > f.MaxDigits):
		return schema.NewConfigError(schema.InvalidField, m.Key(), f.Name, "decimal requires max_digits > 0 and 0 <= decimal_places <= max_digits")
	case (f.AutoNow || f.AutoNowAdd) && f.Type != schema.TypeDatetime:
		return schema.NewConfigError(schema.InvalidField, m.Key(), f.Name, "auto_now and auto_now_add apply to datetime fields only")
	case f.Default != nil && f.Default.Expr != "" && f.Default.Value != nil:
		return schema.NewConfigError(schema.InvalidField, m.Key(), f.Name, "default and default_expr are mutually exclusive")
	}
	return nil
}

func (r *resolver) resolveRelations(n *Node) error {
	m := n.Model
	for i := range m.Relations {
		rel := &m.Relations[i]
		target, err := r.lookup(m, rel)
		if err != nil {
			return err
		}
		if rel.OnDelete != "" && !rel.OnDelete.Valid() {
			return schema.NewConfigError(schema.InvalidOnDelete, m.Key(), rel.Name, "on_delete can only be CASCADE, RESTRICT, SET_NULL or NO_ACTION")
		}

		ref := &Ref{Relation: rel, Target: target, Self: target == n}
		switch rel.Kind {
		case schema.ForeignKey, schema.OneToOne:
			if rel.Action() == schema.SetNull && !rel.Null {
				return schema.NewConfigError(schema.SetNullNotNullable, m.Key(), rel.Name, "If on_delete is SET_NULL, then field must be nullable")
			}
			ref.Required = !rel.Null || rel.PK
			if rel.PK {
				if ref.Self {
					return schema.NewConfigError(schema.InvalidPrimaryKey, m.Key(), rel.Name, "primary key relation cannot reference its own model")
				}
				n.PK = PrimaryKey{Column: rel.ColumnName(), Relation: rel}
			}
			n.Refs = append(n.Refs, ref)
		case schema.ManyToMany:
			n.M2M = append(n.M2M, ref)
		default:
			return schema.NewConfigError(schema.InvalidField, m.Key(), rel.Name, "unknown relation kind %q", rel.Kind)
		}
	}

	seen := make(map[string]bool, len(n.Fields)+len(n.Refs))
	for _, f := range n.Fields {
		if seen[f.ColumnName()] {
			return schema.NewConfigError(schema.InvalidField, m.Key(), f.Name, "duplicate column %q", f.ColumnName())
		}
		seen[f.ColumnName()] = true
	}
	for _, ref := range n.Refs {
		col := ref.Relation.ColumnName()
		if seen[col] {
			return schema.NewConfigError(schema.InvalidField, m.Key(), ref.Relation.Name, "duplicate column %q", col)
		}
		seen[col] = true
	}
	return nil
}

// checkTables rejects models and join tables that would create the same
// table. Model tables are claimed first so a join table is always the one
// reported.
func checkTables(nodes []*Node) error {
	owner := make(map[string]string, len(nodes))
	for _, n := range nodes {
		if prev, ok := owner[n.Table]; ok {
			return schema.NewConfigError(schema.DuplicateTable, n.Model.Key(), "", "table %q is already used by %s", n.Table, prev)
		}
		owner[n.Table] = n.Model.Key()
	}
	for _, n := range nodes {
		for _, ref := range n.M2M {
			name := JoinTableName(n, ref)
			if prev, ok := owner[name]; ok {
				return schema.NewConfigError(schema.DuplicateTable, n.Model.Key(), ref.Relation.Name, "join table %q is already used by %s", name, prev)
			}
			owner[name] = n.Model.Key() + "." + ref.Relation.Name
		}
	}
	return nil
}

// lookup parses an "app.Model" reference and finds the target node.
func (r *resolver) lookup(m *schema.Model, rel *schema.Relation) (*Node, error) {
	parts := strings.Split(rel.To, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, schema.NewConfigError(schema.MalformedReference, m.Key(), rel.Name, `Foreign key accepts model name in format "app.Model"`)
	}
	if !r.apps[parts[0]] {
		return nil, schema.NewConfigError(schema.UnresolvedReference, m.Key(), rel.Name, "No app with name %q registered", parts[0])
	}
	target, ok := r.byKey[rel.To]
	if !ok {
		return nil, schema.NewConfigError(schema.UnresolvedReference, m.Key(), rel.Name, "No model with name %q registered in app %q", parts[1], parts[0])
	}
	return target, nil
}

// resolvePK fills in the key type of nodes whose primary key is a one-to-one
// relation, following chains of such keys.
func (r *resolver) resolvePK(n *Node, visiting map[*Node]bool) error {
	if n.pkResolved {
		return nil
	}
	if visiting[n] {
		return schema.NewConfigError(schema.CyclicReference, "", "", "Can't create schema due to cyclic fk references")
	}
	visiting[n] = true
	for _, ref := range n.Refs {
		if ref.Relation != n.PK.Relation {
			continue
		}
		f, col, err := r.targetField(n, ref, visiting)
		if err != nil {
			return err
		}
		ref.TargetField, ref.TargetColumn = f, col
		n.PK.Field = f
	}
	n.pkResolved = true
	return nil
}

func (r *resolver) resolveTargetFields(n *Node) error {
	for _, ref := range append(append([]*Ref{}, n.Refs...), n.M2M...) {
		if ref.TargetField != nil {
			continue
		}
		var err error
		if ref.TargetField, ref.TargetColumn, err = r.targetField(n, ref, map[*Node]bool{}); err != nil {
			return err
		}
	}
	return nil
}

// targetField returns the referenced field and column of a relation. It is
// the target primary key unless to_field names another field.
func (r *resolver) targetField(n *Node, ref *Ref, visiting map[*Node]bool) (*schema.Field, string, error) {
	target := ref.Target
	if ref.Relation.ToField == "" || ref.Relation.Kind == schema.ManyToMany {
		if err := r.resolvePK(target, visiting); err != nil {
			return nil, "", err
		}
		return target.PK.Field, target.PK.Column, nil
	}
	for i := range target.Fields {
		f := &target.Fields[i]
		if f.Name == ref.Relation.ToField || f.ColumnName() == ref.Relation.ToField {
			return f, f.ColumnName(), nil
		}
	}
	return nil, "", schema.NewConfigError(schema.UnknownField, n.Model.Key(), ref.Relation.Name, "to_field %q is not a field of %s", ref.Relation.ToField, target.Model.Key())
}

// resolveTuples maps unique_together and indexes entries to column names.
func (r *resolver) resolveTuples(n *Node) error {
	for _, tuple := range n.Model.UniqueTogether {
		cols, err := r.columns(n, tuple)
		if err != nil {
			return err
		}
		n.UniqueTogether = append(n.UniqueTogether, cols)
	}
	for _, tuple := range n.Model.Indexes {
		cols, err := r.columns(n, tuple)
		if err != nil {
			return err
		}
		n.Indexes = append(n.Indexes, cols)
	}
	return nil
}

func (r *resolver) columns(n *Node, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, schema.NewConfigError(schema.UnknownField, n.Model.Key(), "", "empty field tuple")
	}
	cols := make([]string, 0, len(names))
	for _, name := range names {
		col, ok := n.column(name)
		if !ok {
			return nil, schema.NewConfigError(schema.UnknownField, n.Model.Key(), name, "no field %q on model", name)
		}
		cols = append(cols, col)
	}
	return cols, nil
}

// column finds the column of a field or foreign-key relation by field name
// or column name.
func (n *Node) column(name string) (string, bool) {
	for _, f := range n.Fields {
		if f.Name == name || f.ColumnName() == name {
			return f.ColumnName(), true
		}
	}
	for _, ref := range n.Refs {
		if ref.Relation.Name == name || ref.Relation.ColumnName() == name {
			return ref.Relation.ColumnName(), true
		}
	}
	return "", false
}

// emissionOrder picks, in declaration order, the first model whose
// references are all emitted. When none qualifies it settles for the first
// model whose required references are emitted.
func emissionOrder(nodes []*Node) ([]*Node, error) {
	emitted := make(map[*Node]bool, len(nodes))
	remaining := append([]*Node(nil), nodes...)
	ordered := make([]*Node, 0, len(nodes))
	for len(remaining) > 0 {
		i := nextReady(remaining, emitted, false)
		if i < 0 {
			i = nextReady(remaining, emitted, true)
		}
		if i < 0 {
			return nil, schema.NewConfigError(schema.CyclicReference, "", "", "Can't create schema due to cyclic fk references")
		}
		n := remaining[i]
		remaining = append(remaining[:i:i], remaining[i+1:]...)
		emitted[n] = true
		ordered = append(ordered, n)
	}
	return ordered, nil
}

func nextReady(nodes []*Node, emitted map[*Node]bool, requiredOnly bool) int {
	for i, n := range nodes {
		if n.ready(emitted, requiredOnly) {
			return i
		}
	}
	return -1
}

func (n *Node) ready(emitted map[*Node]bool, requiredOnly bool) bool {
	for _, ref := range n.Refs {
		if ref.Self || (requiredOnly && !ref.Required) {
			continue
		}
		if !emitted[ref.Target] {
			return false
		}
	}
	return true
}
