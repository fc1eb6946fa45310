package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	t.Setenv("DDLGEN_TEST_VALUE", "set")
	assert.Equal(t, "set", Getenv("DDLGEN_TEST_VALUE", "fallback"))

	t.Setenv("DDLGEN_TEST_VALUE", "")
	assert.Equal(t, "fallback", Getenv("DDLGEN_TEST_VALUE", "fallback"))
}

func TestGetDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	assert.Empty(t, GetDatabaseURL())

	t.Setenv("DATABASE_URL", "sqlite:app.db")
	assert.Equal(t, "sqlite:app.db", GetDatabaseURL())
}
