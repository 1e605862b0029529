package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("STARLOG_JWT_SECRET", "from-env")
	t.Setenv("STARLOG_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "#ec4899", cfg.Defaults.ThemeColor)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "sqlite", DSN: ":memory:"},
		JWT:      JWTConfig{Secret: "s"},
	}
	require.NoError(t, cfg.Validate())

	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	cfg.JWT.Secret = ""
	assert.Error(t, cfg.Validate())
}
