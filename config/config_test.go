package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/relgraph/config"
	"github.com/katalvlaran/relgraph/snapshot"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, snapshot.BackendFile, cfg.StoreBackend)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.BadgerSyncWrites)
	assert.Equal(t, 30*time.Second, cfg.SaveTimeout())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "STORE_BACKEND: sqlite\nSQLITE_PATH: /tmp/x.db\nHTTP_ADDR: \":9000\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "relgraph.yaml"), []byte(yaml), 0o600))
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("SAVE_TIMEOUT_SECONDS", "5")

	cfg, err := config.Load("", zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, snapshot.BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
	assert.Equal(t, ":9100", cfg.HTTPAddr, "environment wins over the file")
	assert.Equal(t, 5*time.Second, cfg.SaveTimeout())

	sc := cfg.Snapshot(nil)
	assert.Equal(t, snapshot.BackendSQLite, sc.Backend)
	assert.Equal(t, "/tmp/x.db", sc.SQLitePath)
}

func TestLoad_Errors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	t.Setenv("STORE_BACKEND", "etcd")
	_, err = config.Load("", nil)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, config.ParseLevel("DEBUG"))
	assert.Equal(t, zap.WarnLevel, config.ParseLevel("warning"))
	assert.Equal(t, zap.ErrorLevel, config.ParseLevel("error"))
	assert.Equal(t, zap.InfoLevel, config.ParseLevel("chatty"))
}

func TestInitLogger(t *testing.T) {
	logger, err := config.InitLogger("debug")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
	config.Cleanup()
}
