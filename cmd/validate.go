package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ddlgen/database"
	"github.com/ridoystarlord/ddlgen/dialect"
	"github.com/ridoystarlord/ddlgen/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the schema without generating SQL",
	Long: `Validate your YAML schema file.

This command performs:
- Relation checks (target format, known models, on_delete rules)
- Primary key and field type checks
- Foreign key ordering (cyclic required references)
- Identifier checks against the dialect's length limit and reserved words

Examples:
  ddlgen validate                     # Validate schema.yaml
  ddlgen validate -f custom.yaml      # Validate custom schema file
  ddlgen validate --format json       # Output validation results as JSON
  ddlgen validate -d mysql            # Use MySQL identifier limits
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := validateSchema(); err != nil {
			fail("Schema validation failed", err)
		}
	},
}

var (
	validateSchemaFile string
	validateFormat     string
	validateDialect    string
	validateNaming     string
)

func init() {
	validateCmd.Flags().StringVarP(&validateSchemaFile, "file", "f", "", "Schema file to validate (default $SCHEMA_FILE or schema.yaml)")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
	validateCmd.Flags().StringVarP(&validateDialect, "dialect", "d", "", "Dialect whose identifier limits apply")
	validateCmd.Flags().StringVar(&validateNaming, "naming", "", "Table naming for models without a table: lower, snake or plural")
}

func validateSchema() error {
	models, opts, err := loadSchema(validateSchemaFile, validateNaming)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	cfg, err := database.ConfigFromEnv(validateDialect)
	if err != nil {
		return err
	}
	d, err := dialect.New(cfg)
	if err != nil {
		return err
	}
	tracef("validating %d models for %s", len(models), d.Name())

	result := validator.Validate(models, d.MaxIdentifierLen(), opts...)
	if validateFormat == "json" {
		err = outputJSON(result)
	} else {
		err = outputText(result)
	}
	if err != nil {
		return err
	}
	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

func outputJSON(result *validator.ValidationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *validator.ValidationResult) error {
	if result.Valid {
		color.Green("✅ Schema validation passed!")
	} else {
		color.Red("❌ Schema validation failed!")
	}

	printFindings("🔴 Errors", result.Errors)
	printFindings("🟡 Warnings", result.Warnings)
	printFindings("🔵 Info", result.Info)

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Errors: %d\n", len(result.Errors))
	fmt.Printf("  • Warnings: %d\n", len(result.Warnings))
	fmt.Printf("  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Printf("\n🎉 Your schema is valid and ready for generation!\n")
	} else {
		fmt.Printf("\n💡 Fix the errors above before generating SQL.\n")
	}
	return nil
}

func printFindings(title string, findings []validator.ValidationError) {
	if len(findings) == 0 {
		return
	}
	fmt.Printf("\n%s (%d):\n", title, len(findings))
	for i, f := range findings {
		fmt.Printf("  %d. ", i+1)
		if f.Table != "" {
			fmt.Printf("[%s]", f.Table)
		}
		if f.Column != "" {
			fmt.Printf(".%s", f.Column)
		}
		fmt.Printf(": %s\n", f.Message)
	}
}
