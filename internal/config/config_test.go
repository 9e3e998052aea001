package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClient_Defaults(t *testing.T) {
	cfg, err := LoadClient(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.ServerURL)
	assert.Equal(t, "focuskeeper.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.SyncInterval)
	assert.Equal(t, 5*time.Minute, cfg.PullInterval)
	assert.True(t, cfg.AutoSync)
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
	assert.True(t, cfg.Retry.JitterEnabled)
	assert.Equal(t, 5, cfg.Breaker.FailureThreshold)
	assert.Equal(t, 60*time.Second, cfg.Breaker.ResetTimeout)
	assert.Equal(t, "info", cfg.Log.Level)

	// user_id обязателен
	assert.Error(t, cfg.Validate())
}

func TestLoadClient_FileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	content := `
server_url: https://sync.example.com
user_id: alice
sync_interval: 10s
retry:
  max_attempts: 7
  base_delay: 500ms
breaker:
  failure_threshold: 2
log:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("FOCUSKEEPER_API_KEY", "secret-key")
	t.Setenv("FOCUSKEEPER_RETRY_MAX_ATTEMPTS", "9")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db_path", "", "")
	require.NoError(t, flags.Parse([]string{"--db_path=/tmp/fk.db"}))

	v := viper.New()
	require.NoError(t, v.BindPFlag("db_path", flags.Lookup("db_path")))

	cfg, err := LoadClient(v, path)
	require.NoError(t, err)

	assert.Equal(t, "https://sync.example.com", cfg.ServerURL)
	assert.Equal(t, "alice", cfg.UserID)
	assert.Equal(t, "secret-key", cfg.APIKey)
	assert.Equal(t, "/tmp/fk.db", cfg.DBPath)
	assert.Equal(t, 10*time.Second, cfg.SyncInterval)
	assert.Equal(t, 9, cfg.Retry.MaxAttempts, "env wins over file")
	assert.Equal(t, 500*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, 2, cfg.Breaker.FailureThreshold)
	assert.Equal(t, 3, cfg.Breaker.HalfOpenRequests, "unset keys keep defaults")
	assert.Equal(t, "json", cfg.Log.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadClient_MissingFile(t *testing.T) {
	_, err := LoadClient(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestClientConfig_Validate(t *testing.T) {
	cfg, err := LoadClient(viper.New(), "")
	require.NoError(t, err)
	cfg.UserID = "alice"
	require.NoError(t, cfg.Validate())

	bad := *cfg
	bad.SyncInterval = 0
	assert.ErrorContains(t, bad.Validate(), "intervals")

	bad = *cfg
	bad.Retry.MaxDelay = time.Millisecond
	assert.ErrorContains(t, bad.Validate(), "max_delay")

	bad = *cfg
	bad.DBPath = ""
	bad.ServerURL = ""
	err = bad.Validate()
	assert.ErrorContains(t, err, "db_path")
	assert.ErrorContains(t, err, "server_url")
}

func TestLoadServer(t *testing.T) {
	t.Setenv("FOCUSKEEPER_API_KEY_SECRET", "s3cret")
	t.Setenv("FOCUSKEEPER_RATE_LIMIT", "5")

	cfg, err := LoadServer(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "s3cret", cfg.APIKeySecret)
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())

	cfg.APIKeySecret = ""
	assert.ErrorContains(t, cfg.Validate(), "api_key_secret")
}
