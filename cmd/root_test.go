package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridoystarlord/ddlgen/loader"
	"github.com/ridoystarlord/ddlgen/validator"
)

func TestSchemaPath(t *testing.T) {
	t.Setenv("SCHEMA_FILE", "")
	assert.Equal(t, "schema.yaml", schemaPath(""))
	assert.Equal(t, "x.yaml", schemaPath("x.yaml"))

	t.Setenv("SCHEMA_FILE", "env.yaml")
	assert.Equal(t, "env.yaml", schemaPath(""))
	assert.Equal(t, "x.yaml", schemaPath("x.yaml"))
}

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(loader.SampleSchema), 0o644))

	models, opts, err := loadSchema(path, "")
	require.NoError(t, err)
	assert.Len(t, models, 3)

	g, err := validator.Resolve(models, opts...)
	require.NoError(t, err)
	assert.Equal(t, "tournament", g.Models[0].Table)

	_, opts, err = loadSchema(path, "plural")
	require.NoError(t, err)
	g, err = validator.Resolve(models, opts...)
	require.NoError(t, err)
	assert.Equal(t, "tournaments", g.Models[0].Table)

	_, _, err = loadSchema(path, "camel")
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("models: []\n"), 0o644))
	_, _, err = loadSchema(empty, "")
	assert.ErrorContains(t, err, "no models found")
}

func TestGenerateSafeHelp(t *testing.T) {
	flag := generateCmd.Flags().Lookup("safe")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "ALTER TABLE")
	assert.Contains(t, generateCmd.Long, "trailing ALTER TABLE")
}
