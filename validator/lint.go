package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ridoystarlord/ddlgen/schema"
)

// ValidationError is one finding of Validate.
type ValidationError struct {
	Type     string `json:"type"`
	Table    string `json:"table,omitempty"`
	Column   string `json:"column,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
}

// ValidationResult contains all findings of Validate.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []ValidationError `json:"warnings"`
	Info     []ValidationError `json:"info"`
}

var reservedKeywords = map[string]bool{
	"user": true, "order": true, "group": true, "table": true, "index": true,
	"view": true, "schema": true, "select": true, "key": true, "references": true,
}

// Validate resolves the models and lints the resulting identifiers against
// the given identifier length limit. Resolution failures are reported as
// errors; lint findings never make the result invalid.
func Validate(models []*schema.Model, maxIdentifierLen int, opts ...Option) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
		Info:     []ValidationError{},
	}

	g, err := Resolve(models, opts...)
	if err != nil {
		ve := ValidationError{Type: "resolve", Message: err.Error(), Severity: "error"}
		var cerr *schema.ConfigError
		if errors.As(err, &cerr) {
			ve.Type = cerr.Kind.String()
			ve.Table = cerr.Model
			ve.Column = cerr.Field
		}
		result.Errors = append(result.Errors, ve)
		result.Valid = false
		return result
	}

	Lint(g, maxIdentifierLen, result)
	return result
}

// Lint appends identifier warnings for the resolved graph to result.
func Lint(g *Graph, maxIdentifierLen int, result *ValidationResult) {
	for _, n := range g.Models {
		lintIdentifier(result, "table_name", n.Table, "", n.Table, maxIdentifierLen)
		for _, f := range n.Fields {
			lintIdentifier(result, "column_name", n.Table, f.ColumnName(), f.ColumnName(), maxIdentifierLen)
		}
		for _, ref := range n.Refs {
			col := ref.Relation.ColumnName()
			lintIdentifier(result, "column_name", n.Table, col, col, maxIdentifierLen)
			if !ref.Required && !ref.Self {
				result.Info = append(result.Info, ValidationError{
					Type:     "nullable_reference",
					Table:    n.Table,
					Column:   col,
					Message:  fmt.Sprintf("Nullable reference to '%s' does not constrain table order", ref.Target.Table),
					Severity: "info",
				})
			}
		}
		for _, ref := range n.M2M {
			lintIdentifier(result, "table_name", JoinTableName(n, ref), "", JoinTableName(n, ref), maxIdentifierLen)
		}
	}
}

func lintIdentifier(result *ValidationResult, typ, table, column, name string, maxLen int) {
	if maxLen > 0 && len(name) > maxLen {
		result.Warnings = append(result.Warnings, ValidationError{
			Type:     typ,
			Table:    table,
			Column:   column,
			Message:  fmt.Sprintf("Identifier '%s' is too long (max %d characters)", name, maxLen),
			Severity: "warning",
		})
	}
	for _, char := range name {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '_') {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:     typ,
				Table:    table,
				Column:   column,
				Message:  fmt.Sprintf("Identifier '%s' contains character '%c' and must always be quoted", name, char),
				Severity: "warning",
			})
			break
		}
	}
	if reservedKeywords[strings.ToLower(name)] {
		result.Info = append(result.Info, ValidationError{
			Type:     "reserved_keyword",
			Table:    table,
			Column:   column,
			Message:  fmt.Sprintf("Identifier '%s' is a reserved keyword", name),
			Severity: "info",
		})
	}
}

// JoinTableName returns the join table of a many-to-many ref declared on n.
func JoinTableName(n *Node, ref *Ref) string {
	if ref.Relation.Through != "" {
		return ref.Relation.Through
	}
	return n.Table + "_" + ref.Target.Table
}

// JoinKeys returns the backward (declaring side) and forward (target side)
// columns of a many-to-many ref declared on n.
func JoinKeys(n *Node, ref *Ref) (backward, forward string) {
	forward = ref.Relation.ForwardKey
	if forward == "" {
		forward = ref.Target.Table + "_id"
	}
	backward = ref.Relation.BackwardKey
	if backward == "" {
		backward = n.Table + "_id"
		if backward == forward {
			backward = n.Table + "_rel_id"
		}
	}
	return backward, forward
}
