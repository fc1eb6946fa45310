package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ridoystarlord/ddlgen/schema"
)

// Document is a parsed schema file.
type Document struct {
	Naming schema.Naming
	Models []*schema.Model
}

type yamlFile struct {
	App    string      `yaml:"app"`
	Naming string      `yaml:"naming"`
	Models []yamlModel `yaml:"models"`
}

type yamlModel struct {
	Name           string         `yaml:"name"`
	App            string         `yaml:"app"`
	Table          string         `yaml:"table"`
	Comment        string         `yaml:"comment"`
	Fields         []yamlField    `yaml:"fields"`
	Relations      []yamlRelation `yaml:"relations"`
	UniqueTogether [][]string     `yaml:"unique_together"`
	Indexes        [][]string     `yaml:"indexes"`
}

type yamlField struct {
	Name          string `yaml:"name"`
	Column        string `yaml:"column"`
	Type          string `yaml:"type"`
	MaxLength     int    `yaml:"max_length"`
	MaxDigits     int    `yaml:"max_digits"`
	DecimalPlaces int    `yaml:"decimal_places"`
	Null          bool   `yaml:"nullable"`
	Unique        bool   `yaml:"unique"`
	Index         bool   `yaml:"index"`
	PK            bool   `yaml:"pk"`
	Generated     *bool  `yaml:"generated"`
	Default       any    `yaml:"default"`
	DefaultExpr   string `yaml:"default_expr"`
	AutoNow       bool   `yaml:"auto_now"`
	AutoNowAdd    bool   `yaml:"auto_now_add"`
	Comment       string `yaml:"comment"`
}

type yamlRelation struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	To          string `yaml:"to"`
	OnDelete    string `yaml:"on_delete"`
	Null        bool   `yaml:"nullable"`
	PK          bool   `yaml:"pk"`
	Index       bool   `yaml:"index"`
	Column      string `yaml:"column"`
	ToField     string `yaml:"to_field"`
	Comment     string `yaml:"comment"`
	Through     string `yaml:"through"`
	BackwardKey string `yaml:"backward_key"`
	ForwardKey  string `yaml:"forward_key"`
	Unique      bool   `yaml:"unique"`
}

// LoadModelsFromYAML reads a schema file.
func LoadModelsFromYAML(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return doc, nil
}

// Parse decodes a schema document. Unknown keys are rejected. Relation
// targets are kept verbatim so the resolver can report malformed ones.
func Parse(data []byte) (*Document, error) {
	var yf yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshalling YAML: %w", err)
	}

	naming, err := schema.ParseNaming(yf.Naming)
	if err != nil {
		return nil, err
	}
	doc := &Document{Naming: naming}
	for i, ym := range yf.Models {
		if ym.Name == "" {
			return nil, fmt.Errorf("model #%d has no name", i+1)
		}
		app := ym.App
		if app == "" {
			app = yf.App
		}
		if app == "" {
			app = "models"
		}
		m := &schema.Model{
			App:            app,
			Name:           ym.Name,
			Table:          ym.Table,
			Comment:        ym.Comment,
			UniqueTogether: ym.UniqueTogether,
			Indexes:        ym.Indexes,
		}
		for _, f := range ym.Fields {
			m.Fields = append(m.Fields, convertField(f))
		}
		for _, yr := range ym.Relations {
			m.Relations = append(m.Relations, convertRelation(yr))
		}
		doc.Models = append(doc.Models, m)
	}
	return doc, nil
}

func convertField(yf yamlField) schema.Field {
	typ, _ := schema.ParseFieldType(yf.Type)
	f := schema.Field{
		Name:          yf.Name,
		Column:        yf.Column,
		Type:          typ,
		MaxLength:     yf.MaxLength,
		MaxDigits:     yf.MaxDigits,
		DecimalPlaces: yf.DecimalPlaces,
		Null:          yf.Null,
		Unique:        yf.Unique,
		Index:         yf.Index,
		PK:            yf.PK,
		AutoNow:       yf.AutoNow,
		AutoNowAdd:    yf.AutoNowAdd,
		Comment:       yf.Comment,
	}
	// Integer primary keys autoincrement unless told otherwise.
	if yf.Generated != nil {
		f.Generated = *yf.Generated
	} else {
		f.Generated = yf.PK && typ.Integer()
	}
	switch {
	case yf.DefaultExpr != "" && yf.Default != nil:
		f.Default = &schema.Default{Value: yf.Default, Expr: yf.DefaultExpr}
	case yf.DefaultExpr != "":
		f.Default = schema.DefaultExpr(yf.DefaultExpr)
	case yf.Default != nil:
		f.Default = schema.DefaultValue(yf.Default)
	}
	return f
}

func convertRelation(yr yamlRelation) schema.Relation {
	return schema.Relation{
		Name:        yr.Name,
		Kind:        parseKind(yr.Kind),
		To:          yr.To,
		OnDelete:    schema.OnDelete(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(yr.OnDelete)), " ", "_")),
		Null:        yr.Null,
		PK:          yr.PK,
		Index:       yr.Index,
		Column:      yr.Column,
		ToField:     yr.ToField,
		Comment:     yr.Comment,
		Through:     yr.Through,
		BackwardKey: yr.BackwardKey,
		ForwardKey:  yr.ForwardKey,
		Unique:      yr.Unique,
	}
}

func parseKind(s string) schema.RelationKind {
	switch k := strings.ToLower(strings.TrimSpace(s)); k {
	case "", "fk", "foreign_key", "foreignkey":
		return schema.ForeignKey
	case "o2o", "one_to_one", "onetoone":
		return schema.OneToOne
	case "m2m", "many_to_many", "manytomany":
		return schema.ManyToMany
	default:
		return schema.RelationKind(k)
	}
}
