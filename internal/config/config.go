// Package config loads the two-sided connection configuration from a TOML
// file. Credentials and hosts are the only thing configured here; everything
// the tool decides per run (selections, output paths) comes from flags or the
// interactive prompt.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-sql-driver/mysql"

	"adjustdb/internal/core"
)

// DefaultPath is where the CLI looks when --config is not given.
const DefaultPath = "databases.toml"

const defaultPort = 3306

// Endpoint describes one database connection.
type Endpoint struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

// Config holds both sides of a sync run. Source is the reference schema,
// target is the database the generated script moves toward the source.
type Config struct {
	Dialect string   `toml:"dialect"`
	Source  Endpoint `toml:"source"`
	Target  Endpoint `toml:"target"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Dialect != "" && !core.IsValidDialect(c.Dialect) {
		return fmt.Errorf("unknown dialect %q", c.Dialect)
	}
	if err := c.Source.validate("source"); err != nil {
		return err
	}
	return c.Target.validate("target")
}

func (c *Config) applyDefaults() {
	if c.Dialect == "" {
		c.Dialect = string(core.DialectMySQL)
	}
	// Validation is case-insensitive; the introspect and dialect registries
	// key on the lowercase constants.
	c.Dialect = strings.ToLower(c.Dialect)
	if c.Source.Port == 0 {
		c.Source.Port = defaultPort
	}
	if c.Target.Port == 0 {
		c.Target.Port = defaultPort
	}
}

func (e *Endpoint) validate(side string) error {
	var missing []string
	if e.Host == "" {
		missing = append(missing, "host")
	}
	if e.User == "" {
		missing = append(missing, "user")
	}
	if e.Database == "" {
		missing = append(missing, "database")
	}
	if len(missing) > 0 {
		return fmt.Errorf("[%s] missing %s", side, strings.Join(missing, ", "))
	}
	return nil
}

// DSN builds the driver connection string for the endpoint. The database is
// selected in the DSN so extraction always has a schema context.
func (e *Endpoint) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = e.User
	cfg.Passwd = e.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", e.Host, e.Port)
	cfg.DBName = e.Database
	cfg.ParseTime = true
	return cfg.FormatDSN()
}
