package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ddlgen/loader"
)

var initFile string

func init() {
	initCmd.Flags().StringVarP(&initFile, "file", "f", "", "Schema file to create (default $SCHEMA_FILE or schema.yaml)")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample schema.yaml",
	Long: `Create a sample schema file with models, relations and a many-to-many table.

Examples:
  ddlgen init                  # Create schema.yaml
  ddlgen init -f models.yaml   # Create a custom file`,
	Run: func(cmd *cobra.Command, args []string) {
		path := schemaPath(initFile)
		if _, err := os.Stat(path); err == nil {
			color.Red("❌ %s already exists!", path)
			os.Exit(1)
		}
		if err := os.WriteFile(path, []byte(loader.SampleSchema), 0o644); err != nil {
			fail("Creating "+path, err)
		}
		color.Green("✅ Created %s example file.", path)
		fmt.Printf("📝 Edit %s to define your models\n", path)
		fmt.Println("🚀 Run 'ddlgen generate' to print the DDL")
	},
}
