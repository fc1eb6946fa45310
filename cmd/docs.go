package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ridoystarlord/ddlgen/generator"
)

var (
	docsOutput string
	docsFile   string
	docsNaming string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate a Mermaid ERD from the schema",
	Long: `Generate a Mermaid entity relationship diagram of the tables the schema creates,
including many-to-many join tables.

Output to a .md file is wrapped in a mermaid code fence.

Examples:
  ddlgen docs                   # Print the diagram
  ddlgen docs -o erd.md         # Markdown file
  ddlgen docs -o erd.mmd        # Raw Mermaid file
`,
	Run: func(cmd *cobra.Command, args []string) {
		models, opts, err := loadSchema(docsFile, docsNaming)
		if err != nil {
			fail("Loading schema", err)
		}

		var buf bytes.Buffer
		if err := generator.GenerateERD(&buf, models, opts...); err != nil {
			fail("Generating diagram", err)
		}

		if docsOutput == "" {
			fmt.Print(buf.String())
			return
		}
		content := buf.String()
		if strings.EqualFold(filepath.Ext(docsOutput), ".md") {
			content = "```mermaid\n" + content + "```\n"
		}
		if dir := filepath.Dir(docsOutput); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fail("Creating output directory", err)
			}
		}
		if err := os.WriteFile(docsOutput, []byte(content), 0o644); err != nil {
			fail("Writing diagram", err)
		}
		color.Green("✅ ERD written: %s", docsOutput)
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsFile, "file", "f", "", "Schema file (default $SCHEMA_FILE or schema.yaml)")
	docsCmd.Flags().StringVarP(&docsOutput, "output", "o", "", "Output file (default stdout)")
	docsCmd.Flags().StringVar(&docsNaming, "naming", "", "Table naming for models without a table: lower, snake or plural")
}
