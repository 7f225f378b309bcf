package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644))
	viper.Reset()
	t.Cleanup(viper.Reset)
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: debug
jwt:
  secret: unit-test-secret
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.JWT.ExpireTime, "未配置时默认1小时")
	assert.Equal(t, "catalog", cfg.Catalog.Path)
}

// JWT secret 缺失必须启动失败，不允许默认值兜底
func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: debug
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret is required")
}

func TestLoadConfigReleaseModeSecretLength(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: release
jwt:
  secret: short
`)

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoadConfigExpireHours(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "8080"
  mode: debug
jwt:
  secret: unit-test-secret
  expire_hours: 24
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpireTime)
}
