package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
env = "local"
log_level = "debug"

[database]
host = "localhost"
port = "3306"
database = "jobquest"
user = "root"
password = "secret"

[api_server]
host = "0.0.0.0"
port = "8080"

[kafka]
addr = "localhost:9092"
enabled = true

[gamification]
event_topic = "gamification-events"
streak_milestones = [7, 30, 100]

[gamification.points]
daily_login = 5
weekly_login = 25

[gamification.points.job_application]
first_application = 50
application = 10

[gamification.counters]
job_application = "job_applications"

[gamification.streaks]
daily_login = "login"

[[gamification.badge_rules]]
action = "job_application"
badge = "first_application"
counter = "job_applications"
equals = 1

[[gamification.badge_rules]]
action = "profile_completion"
badge = "complete_profile"
metric = "completion_pct"
at_least = 100
`

func Test_PointRule_UnmarshalTOML(t *testing.T) {
	var cfg Configs
	_, err := toml.Decode(sampleConfig, &cfg)
	require.NoError(t, err)

	// Flat form.
	require.Equal(t, 5, cfg.Gamification.Points["daily_login"].Flat)
	require.Nil(t, cfg.Gamification.Points["daily_login"].Sub)

	// Sub-mapping form.
	require.Equal(t, map[string]int{
		"first_application": 50,
		"application":       10,
	}, cfg.Gamification.Points["job_application"].Sub)

	// Anything else is rejected.
	var bad Configs
	_, err = toml.Decode(`[gamification.points]`+"\n"+`daily_login = "five"`, &bad)
	require.Error(t, err)
}

func Test_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "hunter2")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "gamification-events", cfg.Gamification.EventTopic)
	require.Equal(t, []int{7, 30, 100}, cfg.Gamification.StreakMilestones)
	require.Len(t, cfg.Gamification.BadgeRules, 2)
	require.Equal(t, "first_application", cfg.Gamification.BadgeRules[0].Badge)

	// Environment credentials override the file.
	require.Equal(t, "app", cfg.Database.User)
	require.Equal(t, "hunter2", cfg.Database.Password)
	require.Equal(t,
		"app:hunter2@tcp(localhost:3306)/jobquest?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.ConnectionString())

	// Unset retry budget falls back to the default.
	require.Equal(t, 3, cfg.Gamification.MaxActionRetries)
}
