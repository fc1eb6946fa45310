package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ddlgen/loader"
	"github.com/ridoystarlord/ddlgen/schema"
	"github.com/ridoystarlord/ddlgen/utils"
	"github.com/ridoystarlord/ddlgen/validator"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ddlgen",
	Short: "Generate CREATE TABLE DDL for SQLite, MySQL and PostgreSQL from model declarations",
	Long: `ddlgen compiles a YAML model declaration into ordered, deterministic DDL.

Examples:

  ddlgen init
  ddlgen validate
  ddlgen generate --dialect postgres
  ddlgen generate --dialect all --safe -o schema.sql
  ddlgen docs -o erd.md
`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

// Register subcommands
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace pipeline steps")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(docsCmd)
}

func tracef(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// schemaPath returns the flag value, or SCHEMA_FILE, or schema.yaml.
func schemaPath(flag string) string {
	if flag != "" {
		return flag
	}
	return utils.Getenv("SCHEMA_FILE", "schema.yaml")
}

// loadSchema reads the schema file and returns the models with the resolver
// options it selects. A non-empty naming overrides the file's strategy.
func loadSchema(path, naming string) ([]*schema.Model, []validator.Option, error) {
	path = schemaPath(path)
	tracef("loading %s", path)
	doc, err := loader.LoadModelsFromYAML(path)
	if err != nil {
		return nil, nil, err
	}
	if len(doc.Models) == 0 {
		return nil, nil, fmt.Errorf("no models found in %s", path)
	}
	n := doc.Naming
	if naming != "" {
		if n, err = schema.ParseNaming(naming); err != nil {
			return nil, nil, err
		}
	}
	tracef("loaded %d models, naming %s", len(doc.Models), n)
	return doc.Models, []validator.Option{validator.WithNaming(n)}, nil
}

// fail prints err and exits. Configuration errors show their kind.
func fail(prefix string, err error) {
	var cerr *schema.ConfigError
	if errors.As(err, &cerr) {
		color.Red("❌ %s [%s]: %v", prefix, cerr.Kind, err)
	} else {
		color.Red("❌ %s: %v", prefix, err)
	}
	os.Exit(1)
}
