package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, ":4567", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/alerts.db", cfg.DBPath)
	assert.Equal(t, 5*time.Second, cfg.DBBusyTimeout)
	assert.Equal(t, "https://eonet.gsfc.nasa.gov/api/v3/events?status=open", cfg.EONETURL)
	assert.Equal(t, "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson", cfg.USGSURL)
	assert.Equal(t, 10*time.Second, cfg.FetchConnectTimeout)
	assert.Equal(t, 15*time.Second, cfg.FetchResponseTimeout)
	assert.False(t, cfg.EmailEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "disaster-alerts", cfg.KafkaAlertTopic)
	assert.False(t, cfg.DesktopNotify)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "2m")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("DB_BUSY_TIMEOUT", "2s")
	t.Setenv("EONET_URL", "http://localhost:8081/eonet")
	t.Setenv("USGS_URL", "http://localhost:8081/usgs")
	t.Setenv("FETCH_CONNECT_TIMEOUT", "3s")
	t.Setenv("FETCH_RESPONSE_TIMEOUT", "6s")
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("EMAIL_FROM", "alerts@example.com")
	t.Setenv("EMAIL_TO", "ops@example.com, oncall@example.com")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ALERT_TOPIC", "custom-alerts")
	t.Setenv("DESKTOP_NOTIFY", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.PollInterval)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, 2*time.Second, cfg.DBBusyTimeout)
	assert.Equal(t, "http://localhost:8081/eonet", cfg.EONETURL)
	assert.Equal(t, "http://localhost:8081/usgs", cfg.USGSURL)
	assert.Equal(t, 3*time.Second, cfg.FetchConnectTimeout)
	assert.Equal(t, 6*time.Second, cfg.FetchResponseTimeout)
	assert.True(t, cfg.EmailEnabled)
	assert.Equal(t, "alerts@example.com", cfg.EmailFrom)
	assert.Equal(t, []string{"ops@example.com", "oncall@example.com"}, cfg.EmailTo)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-alerts", cfg.KafkaAlertTopic)
	assert.True(t, cfg.DesktopNotify)
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLL_INTERVAL")
}

func TestLoad_NegativePollInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "-10s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLL_INTERVAL")
}

func TestLoad_InvalidBusyTimeout(t *testing.T) {
	t.Setenv("DB_BUSY_TIMEOUT", "0s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_BUSY_TIMEOUT")
}

func TestLoad_EmailRequiresFrom(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("EMAIL_TO", "ops@example.com")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_FROM")
}

func TestLoad_EmailRequiresRecipients(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "re_test_key")
	t.Setenv("EMAIL_FROM", "alerts@example.com")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EMAIL_TO")
}
