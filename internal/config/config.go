package config

import (
	"os"
	"strings"
)

// Config is the process configuration read from the environment
type Config struct {
	Environment string
	Port        string

	DBDriver    string
	SQLiteFile  string
	DatabaseURL string
	RedisURL    string

	NATSURL     string
	NATSSubject string

	LeagueID       string
	RankingsSource string

	ClickHouseAddr     string
	ClickHouseDB       string
	ClickHouseUser     string
	ClickHousePassword string
	ClickHouseTable    string

	RulesFile string

	// LockPasswordStorage is bcrypt (default) or plaintext
	LockPasswordStorage string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// FromEnv reads the configuration, filling defaults for unset variables
func FromEnv() Config {
	return Config{
		Environment: getenv("ENVIRONMENT", "development"),
		Port:        getenv("PORT", "3000"),

		DBDriver:    getenv("DB_DRIVER", "memory"),
		SQLiteFile:  getenv("SQLITE_FILE", "dev.sqlite"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getenv("REDIS_URL", "redis://localhost:6379/0"),

		NATSURL:     getenv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: getenv("NATS_SUBJECT", "draft.events"),

		LeagueID:       os.Getenv("LEAGUE_ID"),
		RankingsSource: strings.ToLower(getenv("RANKINGS_SOURCE", "fantasycalc")),

		ClickHouseAddr:     getenv("CLICKHOUSE_ADDR", "localhost:9000"),
		ClickHouseDB:       getenv("CLICKHOUSE_DB", "default"),
		ClickHouseUser:     getenv("CLICKHOUSE_USER", "default"),
		ClickHousePassword: os.Getenv("CLICKHOUSE_PASSWORD"),
		ClickHouseTable:    os.Getenv("CLICKHOUSE_TABLE"),

		RulesFile: os.Getenv("RULES_FILE"),

		LockPasswordStorage: strings.ToLower(getenv("LOCK_PASSWORD_STORAGE", "bcrypt")),
	}
}

// IsDevelopment reports whether in-process stand-ins should replace external services
func (c Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

// PlaintextLocks reports whether lock passwords are stored unhashed for older clients
func (c Config) PlaintextLocks() bool {
	return c.LockPasswordStorage == "plaintext"
}

// UseMockLeague reports whether the dev league replaces Sleeper
func (c Config) UseMockLeague() bool {
	return c.LeagueID == "" && c.IsDevelopment()
}
