package config

import (
	"fmt"
)

type Configs struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`

	Database     DatabaseConfigs     `toml:"database"`
	ApiServer    ServerConfigs       `toml:"api_server"`
	Kafka        KafkaConfigs        `toml:"kafka"`
	Gamification GamificationConfigs `toml:"gamification"`
}

type DatabaseConfigs struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

type KafkaConfigs struct {
	Addr    string `toml:"addr"`
	Enabled bool   `toml:"enabled"`
}

// GamificationConfigs is the externally administered rules catalog. It is
// loaded once at startup and read-only afterwards, so catalogs can evolve
// without a redeploy of the engine code.
type GamificationConfigs struct {
	EventTopic       string `toml:"event_topic"`
	MaxActionRetries int    `toml:"max_action_retries"`

	// Points maps an action type to its reward rule. Unknown action types
	// are worth zero points.
	Points map[string]PointRule `toml:"points"`

	// Counters maps an action type to the user counter it increments.
	Counters map[string]string `toml:"counters"`

	// Streaks maps an action type to the streak category it maintains.
	// Actions absent from this map do not touch streaks.
	Streaks map[string]string `toml:"streaks"`

	// StreakMilestones lists streak lengths which emit a milestone event.
	StreakMilestones []int `toml:"streak_milestones"`

	BadgeRules []BadgeRule `toml:"badge_rules"`
}

// PointRule is either a flat amount or a sub-mapping keyed by payload fields.
// In the sub-mapping form every payload key with a configured sub-reward
// contributes to the total.
type PointRule struct {
	Flat int
	Sub  map[string]int
}

func (r *PointRule) UnmarshalTOML(value any) error {
	switch t := value.(type) {
	case int64:
		r.Flat = int(t)
	case map[string]any:
		r.Sub = make(map[string]int, len(t))
		for k, v := range t {
			amount, ok := v.(int64)
			if !ok {
				return fmt.Errorf("point sub-reward %s must be an integer, but got %T", k, v)
			}
			r.Sub[k] = int(amount)
		}
	default:
		return fmt.Errorf("point rule must be an integer or a table, but got %T", value)
	}

	return nil
}

// BadgeRule binds an action type to a badge unlock predicate. Exactly one of
// Equals or AtLeast applies: Equals fires when the named counter lands
// exactly on the value, AtLeast fires when the named payload metric reaches
// the value.
type BadgeRule struct {
	Action  string `toml:"action"`
	Badge   string `toml:"badge"`
	Counter string `toml:"counter"`
	Metric  string `toml:"metric"`
	Equals  int    `toml:"equals"`
	AtLeast int    `toml:"at_least"`
}
