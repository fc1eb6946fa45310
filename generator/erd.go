package generator

import (
	"fmt"
	"io"
	"strings"

	"github.com/ridoystarlord/ddlgen/ddl"
	"github.com/ridoystarlord/ddlgen/derive"
	"github.com/ridoystarlord/ddlgen/schema"
	"github.com/ridoystarlord/ddlgen/validator"
)

// GenerateERD resolves the models and writes a Mermaid entity relationship
// diagram of the derived tables to w.
func GenerateERD(w io.Writer, models []*schema.Model, opts ...validator.Option) error {
	g, err := validator.Resolve(models, opts...)
	if err != nil {
		return err
	}
	return WriteMermaid(w, derive.Tables(g))
}

// WriteMermaid writes tables as a Mermaid erDiagram. Types are the neutral
// field types so the diagram does not depend on a dialect. Join tables
// become many-to-many edges labeled with the table name.
func WriteMermaid(w io.Writer, tables []*ddl.Table) error {
	var b strings.Builder
	b.WriteString("erDiagram\n")
	for _, t := range tables {
		if isLink(t) {
			continue
		}
		fmt.Fprintf(&b, "    %s {\n", mermaidID(t.Name))
		for _, c := range t.Columns {
			var keys []string
			if c.Primary {
				keys = append(keys, "PK")
			}
			if t.ForeignKey(c.Name) != nil {
				keys = append(keys, "FK")
			}
			if c.Unique {
				keys = append(keys, "UK")
			}
			line := fmt.Sprintf("        %s %s", c.Type.Kind, mermaidID(c.Name))
			if len(keys) > 0 {
				line += " " + strings.Join(keys, ",")
			}
			if c.Comment != "" {
				line += fmt.Sprintf(" \"%s\"", mermaidLabel(c.Comment))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("    }\n")
	}

	for _, t := range tables {
		if isLink(t) {
			from, to := t.ForeignKeys[0], t.ForeignKeys[1]
			fmt.Fprintf(&b, "    %s }o--o{ %s : \"%s\"\n",
				mermaidID(from.RefTable), mermaidID(to.RefTable), mermaidLabel(t.Name))
			continue
		}
		for _, fk := range t.ForeignKeys {
			c := t.Column(fk.Column)
			left := "}o"
			if c != nil && (c.Unique || c.Primary) {
				left = "|o"
			}
			right := "||"
			if c != nil && c.Nullable {
				right = "o|"
			}
			fmt.Fprintf(&b, "    %s %s--%s %s : \"%s\"\n",
				mermaidID(t.Name), left, right, mermaidID(fk.RefTable), mermaidLabel(fk.Column))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// isLink reports whether t is a join table drawn as a many-to-many edge
// between the tables it links instead of as an entity.
func isLink(t *ddl.Table) bool {
	return t.Join && len(t.ForeignKeys) == 2
}

// mermaidID makes a table or column name safe as a Mermaid identifier.
func mermaidID(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return '_'
	}, name)
}

func mermaidLabel(s string) string {
	return strings.NewReplacer(`"`, "'", "\n", " ", "\r", " ").Replace(s)
}
