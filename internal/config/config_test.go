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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090
read_timeout = 5

[database]
host = "db.internal"
port = 5433
user = "svc"
password = "secret"
dbname = "appointments"
sslmode = "require"

[logs]
file = "logs/app.log"
level = "debug"

[metrics]
enabled = true
service_name = "appointment-service"
path = "/metrics"

[schedule]
timezone = "Europe/Moscow"
business_start_hour = 10
business_end_hour = 18
slot_duration_minutes = 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5, cfg.Server.ReadTimeout)
	// Незаданные поля берутся из дефолтов
	assert.Equal(t, 10, cfg.Server.WriteTimeout)

	assert.Equal(t, "Europe/Moscow", cfg.Schedule.Timezone)
	assert.Equal(t, 10, cfg.Schedule.BusinessStartHour)
	assert.Equal(t, 18, cfg.Schedule.BusinessEndHour)

	assert.Equal(t,
		"host=db.internal port=5433 user=svc password=secret dbname=appointments sslmode=require",
		cfg.Database.DSN())
}

func TestLoad_ScheduleDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "svc"
dbname = "appointments"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "UTC", cfg.Schedule.Timezone)
	assert.Equal(t, 9, cfg.Schedule.BusinessStartHour)
	assert.Equal(t, 17, cfg.Schedule.BusinessEndHour)
	assert.Equal(t, 30, cfg.Schedule.SlotDurationMinutes)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"missing database credentials",
			`[server]
http_port = 8080`,
		},
		{
			"bad port",
			`[server]
http_port = 99999

[database]
host = "localhost"
user = "svc"
dbname = "appointments"`,
		},
		{
			"start hour after end hour",
			`[database]
host = "localhost"
user = "svc"
dbname = "appointments"

[schedule]
business_start_hour = 18
business_end_hour = 9`,
		},
		{
			"metrics enabled without path",
			`[database]
host = "localhost"
user = "svc"
dbname = "appointments"

[metrics]
enabled = true
path = ""`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
