package schema

import "strings"

// Model is a declared entity. Field order is column order.
type Model struct {
	App       string
	Name      string
	Table     string // explicit table name, derived from Name when empty
	Comment   string
	Fields    []Field
	Relations []Relation

	// UniqueTogether and Indexes hold tuples of field, relation or column names.
	UniqueTogether [][]string
	Indexes        [][]string
}

// Key returns the "app.Model" reference of the model.
func (m *Model) Key() string {
	return m.App + "." + m.Name
}

// TableName returns the explicit table name or the one derived by naming.
func (m *Model) TableName(naming Naming) string {
	if m.Table != "" {
		return m.Table
	}
	return naming.TableName(m.Name)
}

// FieldType is the logical type of a field.
type FieldType string

const (
	TypeInt       FieldType = "int"
	TypeSmallInt  FieldType = "smallint"
	TypeBigInt    FieldType = "bigint"
	TypeVarchar   FieldType = "varchar"
	TypeChar      FieldType = "char"
	TypeText      FieldType = "text"
	TypeDecimal   FieldType = "decimal"
	TypeFloat     FieldType = "float"
	TypeBool      FieldType = "bool"
	TypeDatetime  FieldType = "datetime"
	TypeDate      FieldType = "date"
	TypeTime      FieldType = "time"
	TypeTimeDelta FieldType = "timedelta"
	TypeUUID      FieldType = "uuid"
	TypeJSON      FieldType = "json"
	TypeBinary    FieldType = "binary"
)

var fieldTypes = map[FieldType]bool{
	TypeInt: true, TypeSmallInt: true, TypeBigInt: true,
	TypeVarchar: true, TypeChar: true, TypeText: true,
	TypeDecimal: true, TypeFloat: true, TypeBool: true,
	TypeDatetime: true, TypeDate: true, TypeTime: true, TypeTimeDelta: true,
	TypeUUID: true, TypeJSON: true, TypeBinary: true,
}

// ParseFieldType maps a declared type name to a FieldType. A few common
// aliases are accepted.
func ParseFieldType(s string) (FieldType, bool) {
	t := FieldType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case "integer":
		t = TypeInt
	case "string":
		t = TypeVarchar
	case "boolean":
		t = TypeBool
	case "timestamp":
		t = TypeDatetime
	case "double":
		t = TypeFloat
	}
	return t, fieldTypes[t]
}

// Valid reports whether t is a known type.
func (t FieldType) Valid() bool {
	return fieldTypes[t]
}

// Integer reports whether the type is one of the integer types.
func (t FieldType) Integer() bool {
	return t == TypeInt || t == TypeSmallInt || t == TypeBigInt
}

// Field is a typed attribute of a model.
type Field struct {
	Name   string
	Column string // explicit column name, Name when empty
	Type   FieldType

	MaxLength     int // varchar and char
	MaxDigits     int // decimal
	DecimalPlaces int // decimal

	Null      bool
	Unique    bool
	Index     bool
	PK        bool
	Generated bool // autoincrement, integer primary keys only

	Default    *Default
	AutoNow    bool // datetime: set on every update
	AutoNowAdd bool // datetime: set on insert

	Comment string
}

// ColumnName returns the column the field is stored in.
func (f *Field) ColumnName() string {
	if f.Column != "" {
		return f.Column
	}
	return f.Name
}

// Default is a column default. Exactly one of Value or Expr is set.
type Default struct {
	// Value is a literal: string, bool, or a number.
	Value any
	// Expr is raw SQL rendered verbatim.
	Expr string
}

// DefaultValue returns a literal default.
func DefaultValue(v any) *Default {
	return &Default{Value: v}
}

// DefaultExpr returns a raw SQL default expression.
func DefaultExpr(expr string) *Default {
	return &Default{Expr: expr}
}

// RelationKind is the kind of link a relation declares.
type RelationKind string

const (
	ForeignKey RelationKind = "fk"
	OneToOne   RelationKind = "o2o"
	ManyToMany RelationKind = "m2m"
)

// OnDelete is the referential action applied when the target row is deleted.
type OnDelete string

const (
	Cascade  OnDelete = "CASCADE"
	Restrict OnDelete = "RESTRICT"
	SetNull  OnDelete = "SET_NULL"
	NoAction OnDelete = "NO_ACTION"
)

// Valid reports whether the action is one of the recognized ones.
func (a OnDelete) Valid() bool {
	switch a {
	case Cascade, Restrict, SetNull, NoAction:
		return true
	}
	return false
}

// SQL returns the action as it appears in an ON DELETE clause.
func (a OnDelete) SQL() string {
	return strings.ReplaceAll(string(a), "_", " ")
}

// Relation is a directional link from the declaring model to another one.
type Relation struct {
	Name     string
	Kind     RelationKind
	To       string // "app.Model"
	OnDelete OnDelete

	Null  bool
	PK    bool // one-to-one used as primary key
	Index bool

	Column  string // local column, "<name>_id" when empty
	ToField string // referenced field, target primary key when empty
	Comment string

	// Many-to-many only.
	Through     string
	BackwardKey string
	ForwardKey  string
	Unique      bool // one join row per pair
}

// ColumnName returns the local column of a foreign-key or one-to-one relation.
func (r *Relation) ColumnName() string {
	if r.Column != "" {
		return r.Column
	}
	return r.Name + "_id"
}

// Action returns the declared on-delete action, CASCADE when unset.
func (r *Relation) Action() OnDelete {
	if r.OnDelete == "" {
		return Cascade
	}
	return r.OnDelete
}
