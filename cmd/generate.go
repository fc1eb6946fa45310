package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ddlgen/database"
	"github.com/ridoystarlord/ddlgen/dialect"
	"github.com/ridoystarlord/ddlgen/generator"
	"github.com/ridoystarlord/ddlgen/utils"
)

var (
	schemaFile      string
	generateDialect string
	generateSafe    bool
	generateOutput  string
	generateNaming  string
)

func init() {
	generateCmd.Flags().StringVarP(&schemaFile, "file", "f", "", "Schema YAML file to load (default $SCHEMA_FILE or schema.yaml)")
	generateCmd.Flags().StringVarP(&generateDialect, "dialect", "d", "", "sqlite, mysql, postgres or all (default from DATABASE_URL, else sqlite)")
	generateCmd.Flags().BoolVar(&generateSafe, "safe", false, "Add IF NOT EXISTS to CREATE TABLE and CREATE INDEX (trailing ALTER TABLE foreign keys stay unguarded)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Write SQL to this file instead of stdout")
	generateCmd.Flags().StringVar(&generateNaming, "naming", "", "Table naming for models without a table: lower, snake or plural")
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate CREATE TABLE statements from the schema",
	Long: `Generate the DDL that creates every table of the schema, in foreign key order.

The dialect comes from --dialect, else from DATABASE_URL, else sqlite.
No database connection is opened.

--safe guards CREATE TABLE and CREATE INDEX only. On mysql and postgres,
foreign keys to tables created later are added by trailing ALTER TABLE
statements, which fail when re-run against an existing schema.

Examples:
  ddlgen generate                         # SQLite DDL from schema.yaml
  ddlgen generate -d postgres --safe      # PostgreSQL with IF NOT EXISTS
  ddlgen generate -d all -o schema.sql    # One section per dialect
  DATABASE_URL=mysql://root@tcp(localhost)/app ddlgen generate
`,
	Run: func(cmd *cobra.Command, args []string) {
		models, opts, err := loadSchema(schemaFile, generateNaming)
		if err != nil {
			fail("Loading schema", err)
		}

		var cfgs []dialect.Config
		if generateDialect == "all" {
			for _, n := range dialect.Names {
				cfgs = append(cfgs, dialect.Config{Name: n, Charset: utils.Getenv("MYSQL_CHARSET", "")})
			}
		} else {
			cfg, err := database.ConfigFromEnv(generateDialect)
			if err != nil {
				fail("Selecting dialect", err)
			}
			cfgs = append(cfgs, cfg)
		}
		for _, cfg := range cfgs {
			tracef("rendering %s (safe=%t)", cfg.Name, generateSafe)
		}

		outputs, err := generator.GenerateAll(cmd.Context(), models, cfgs, generateSafe, opts...)
		if err != nil {
			fail("Generating schema", err)
		}

		if generateOutput == "" {
			if len(outputs) == 1 {
				fmt.Println(outputs[0].SQL)
			} else {
				fmt.Print(generator.Document(outputs))
			}
			return
		}

		filename, err := generator.WriteSchemaFile(generateOutput, outputs)
		if err != nil {
			fail("Writing schema file", err)
		}
		color.Green("✅ Schema generated: %s", filename)
	},
}
