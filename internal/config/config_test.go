package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
openai:
  apiKey: file-key
  model: gpt-4o-mini
  maxTokens: 4096
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: propsight
  password: secret
  name: propsight
minio:
  endpoint: minio.internal:9000
  bucketName: model-replies
rateLimit:
  enabled: true
  capacity: 10
  refillRate: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 4096, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.ArchiveEnabled())
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
openai:
  apiKey: k
database:
  host: localhost
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.False(t, cfg.ArchiveEnabled())
}

func TestLoadEnvOverridesAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	path := writeConfig(t, `
openai:
  apiKey: file-key
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.OpenAI.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDSNHelpers(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: mysql
  host: db
  port: 3306
  user: u
  password: p
  name: propsight
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "u:p@tcp(db:3306)/propsight?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())

	cfg.Database.Port = 5432
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=propsight sslmode=disable", cfg.PostgresDSN())
}
