// Package config resolves connection and rendering settings from defaults,
// a YAML config file, the environment and finally command line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ridoystarlord/pguml/utils"
)

// DefaultFile is read when no --config flag is given. It may be absent.
const DefaultFile = "pguml.yaml"

type Connection struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	DBName   string `mapstructure:"dbname"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
	// URL, when set, is used as-is and the fields above are ignored.
	URL string `mapstructure:"url"`
}

type Render struct {
	Format         string `mapstructure:"format"`
	RankDir        string `mapstructure:"rankdir"`
	OnlyKeyColumns bool   `mapstructure:"only_key_columns"`
	OnlyRelated    bool   `mapstructure:"only_related"`
	ShowConstraint bool   `mapstructure:"show_constraint"`
	Output         string `mapstructure:"output"`
}

type Config struct {
	Connection Connection `mapstructure:"connection"`
	Render     Render     `mapstructure:"render"`
	// Snapshot renders from a YAML catalog dump instead of a live database.
	Snapshot string `mapstructure:"snapshot"`
}

func Default() Config {
	return Config{
		Connection: Connection{
			Host:    "127.0.0.1",
			Port:    "5432",
			DBName:  "postgres",
			User:    "user",
			SSLMode: "prefer",
		},
		Render: Render{
			Format:  "dot",
			RankDir: "LR",
		},
	}
}

// LoadFile merges the YAML file at path over cfg. Keys missing from the file
// keep their current values. When optional is set a missing file is ignored.
func LoadFile(path string, cfg *Config, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshalling config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides connection settings from PGUML_* variables and
// DATABASE_URL. Call utils.LoadEnv first to pick up a .env file.
func (c *Config) ApplyEnv() {
	conn := &c.Connection
	conn.Host = utils.Getenv("PGUML_HOST", conn.Host)
	conn.Port = utils.Getenv("PGUML_PORT", conn.Port)
	conn.DBName = utils.Getenv("PGUML_DBNAME", conn.DBName)
	conn.User = utils.Getenv("PGUML_USER", conn.User)
	conn.Password = utils.Getenv("PGUML_PASSWORD", conn.Password)
	conn.SSLMode = utils.Getenv("PGUML_SSLMODE", conn.SSLMode)
	conn.URL = utils.Getenv("DATABASE_URL", conn.URL)
	c.Snapshot = utils.Getenv("PGUML_SNAPSHOT", c.Snapshot)
}

var (
	rankDirs = []string{"TB", "LR", "BT", "RL"}
	formats  = map[string]string{
		"dot":      "dot",
		"graph":    "dot",
		"graphviz": "dot",
		"html":     "html",
		"document": "html",
	}
)

// NormalizeFormat maps a user supplied format name onto "dot" or "html".
func NormalizeFormat(name string) (string, error) {
	f, ok := formats[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unsupported format %q (expected dot or html)", name)
	}
	return f, nil
}

func (c *Config) Validate() error {
	f, err := NormalizeFormat(c.Render.Format)
	if err != nil {
		return err
	}
	c.Render.Format = f

	dir := strings.ToUpper(strings.TrimSpace(c.Render.RankDir))
	valid := false
	for _, d := range rankDirs {
		if d == dir {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unsupported rank direction %q (expected one of %s)", c.Render.RankDir, strings.Join(rankDirs, ", "))
	}
	c.Render.RankDir = dir
	return nil
}

// ConnString returns a postgres:// URL for the connection.
func (c Connection) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host,
		Path:   "/" + c.DBName,
	}
	if c.Port != "" {
		u.Host = c.Host + ":" + c.Port
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else if c.User != "" {
		u.User = url.User(c.User)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// Redacted is ConnString with the password hidden, for messages.
func (c Connection) Redacted() string {
	u, err := url.Parse(c.ConnString())
	if err != nil {
		return "<invalid connection string>"
	}
	return u.Redacted()
}
