package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ridoystarlord/ddlgen/derive"
	"github.com/ridoystarlord/ddlgen/dialect"
	"github.com/ridoystarlord/ddlgen/schema"
	"github.com/ridoystarlord/ddlgen/validator"
)

// GenerateSchemaSQL resolves the models, derives their tables and renders
// them for the configured dialect. Statements are joined by newlines. A
// resolution failure is returned untouched and no SQL is produced.
func GenerateSchemaSQL(models []*schema.Model, cfg dialect.Config, safe bool, opts ...validator.Option) (string, error) {
	stmts, err := GenerateStatements(models, cfg, safe, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(stmts, "\n"), nil
}

// GenerateStatements is GenerateSchemaSQL returning individual statements.
func GenerateStatements(models []*schema.Model, cfg dialect.Config, safe bool, opts ...validator.Option) ([]string, error) {
	d, err := dialect.New(cfg)
	if err != nil {
		return nil, err
	}
	g, err := validator.Resolve(models, opts...)
	if err != nil {
		return nil, err
	}
	return dialect.Render(derive.Tables(g), d, safe), nil
}

// Output is the SQL document of one dialect.
type Output struct {
	Dialect dialect.Name
	SQL     string
}

// GenerateAll resolves and derives once, then renders every configured
// dialect concurrently. Outputs are in the order of cfgs.
func GenerateAll(ctx context.Context, models []*schema.Model, cfgs []dialect.Config, safe bool, opts ...validator.Option) ([]Output, error) {
	dialects := make([]dialect.Dialect, len(cfgs))
	for i, cfg := range cfgs {
		d, err := dialect.New(cfg)
		if err != nil {
			return nil, err
		}
		dialects[i] = d
	}

	g, err := validator.Resolve(models, opts...)
	if err != nil {
		return nil, err
	}
	tables := derive.Tables(g)

	out := make([]Output, len(dialects))
	eg, ctx := errgroup.WithContext(ctx)
	for i, d := range dialects {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Output{
				Dialect: d.Name(),
				SQL:     strings.Join(dialect.Render(tables, d, safe), "\n"),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Document joins outputs into one file body with a section per dialect.
func Document(outputs []Output) string {
	var b strings.Builder
	b.WriteString("-- Generated by ddlgen\n")
	for _, o := range outputs {
		b.WriteString("\n-- Dialect: " + string(o.Dialect) + "\n")
		b.WriteString("-- ============\n")
		b.WriteString(o.SQL)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteSchemaFile saves the outputs to path. A single output is written as
// bare SQL, several as a Document. An empty path writes a timestamped file
// into the schemas folder.
func WriteSchemaFile(path string, outputs []Output) (string, error) {
	if path == "" {
		path = filepath.Join("schemas", time.Now().Format("20060102150405")+"_schema.sql")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output folder: %w", err)
		}
	}
	content := Document(outputs)
	if len(outputs) == 1 {
		content = outputs[0].SQL + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing schema file: %w", err)
	}
	return path, nil
}
