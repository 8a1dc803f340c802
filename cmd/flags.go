package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ridoystarlord/pguml/catalog"
	"github.com/ridoystarlord/pguml/config"
	"github.com/ridoystarlord/pguml/database"
	"github.com/ridoystarlord/pguml/logger"
	"github.com/ridoystarlord/pguml/utils"
)

var (
	cfgFile string
	verbose bool

	// flagValues receives raw flag values. Only flags the user actually set
	// are copied onto the resolved config.
	flagValues = config.Default()
)

func registerConnectionFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	conn := &flagValues.Connection
	pf.StringVar(&conn.Host, "host", conn.Host, "Database hostname")
	pf.StringVar(&conn.Port, "port", conn.Port, "Database port")
	pf.StringVar(&conn.DBName, "dbname", conn.DBName, "Database name")
	pf.StringVar(&conn.User, "user", conn.User, "Database user")
	pf.StringVar(&conn.Password, "password", conn.Password, "Database password")
	pf.StringVar(&conn.SSLMode, "sslmode", conn.SSLMode, "SSL mode (disable, prefer, require, ...)")
	pf.StringVar(&conn.URL, "url", "", "Full connection URL, overrides the individual connection flags (env DATABASE_URL)")
	pf.StringVar(&flagValues.Snapshot, "snapshot", "", "Read the catalog from a YAML snapshot instead of a database")
	pf.StringVar(&cfgFile, "config", "", "Config file (default: "+config.DefaultFile+" if present)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Output more info")
}

func registerRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	r := &flagValues.Render
	f.BoolVar(&r.OnlyKeyColumns, "only-key-columns", false, "Only show primary, unique and foreign key columns")
	f.BoolVar(&r.OnlyRelated, "only-related", false, "Only show tables with foreign key or inheritance relations")
	f.BoolVar(&r.ShowConstraint, "show-constraint", false, "Show check constraints")
	f.StringVar(&r.RankDir, "dot-rankdir", r.RankDir, "Rank direction for dot output (TB, LR, BT, RL)")
	f.StringVarP(&r.Format, "format", "f", r.Format, "Output format (dot, html)")
	f.StringVarP(&r.Output, "output", "o", "", "Output file (default: stdout)")
}

// flagSetters copies a changed flag from flagValues onto cfg.
var flagSetters = map[string]func(cfg *config.Config){
	"host":             func(c *config.Config) { c.Connection.Host = flagValues.Connection.Host },
	"port":             func(c *config.Config) { c.Connection.Port = flagValues.Connection.Port },
	"dbname":           func(c *config.Config) { c.Connection.DBName = flagValues.Connection.DBName },
	"user":             func(c *config.Config) { c.Connection.User = flagValues.Connection.User },
	"password":         func(c *config.Config) { c.Connection.Password = flagValues.Connection.Password },
	"sslmode":          func(c *config.Config) { c.Connection.SSLMode = flagValues.Connection.SSLMode },
	"url":              func(c *config.Config) { c.Connection.URL = flagValues.Connection.URL },
	"snapshot":         func(c *config.Config) { c.Snapshot = flagValues.Snapshot },
	"only-key-columns": func(c *config.Config) { c.Render.OnlyKeyColumns = flagValues.Render.OnlyKeyColumns },
	"only-related":     func(c *config.Config) { c.Render.OnlyRelated = flagValues.Render.OnlyRelated },
	"show-constraint":  func(c *config.Config) { c.Render.ShowConstraint = flagValues.Render.ShowConstraint },
	"dot-rankdir":      func(c *config.Config) { c.Render.RankDir = flagValues.Render.RankDir },
	"format":           func(c *config.Config) { c.Render.Format = flagValues.Render.Format },
	"output":           func(c *config.Config) { c.Render.Output = flagValues.Render.Output },
}

// connectionFields are the flags that describe a connection piece by piece.
var connectionFields = map[string]bool{
	"host": true, "port": true, "dbname": true,
	"user": true, "password": true, "sslmode": true,
}

// applyFlags copies changed flags onto cfg. Setting any individual
// connection flag without --url drops a URL that came from the config file
// or DATABASE_URL, since ConnString would otherwise ignore those flags.
func applyFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fields, url := false, false
	fs.Visit(func(f *pflag.Flag) {
		if set, ok := flagSetters[f.Name]; ok {
			set(cfg)
		}
		fields = fields || connectionFields[f.Name]
		url = url || f.Name == "url"
	})
	if fields && !url {
		cfg.Connection.URL = ""
	}
}

// resolveConfig layers defaults, the config file, the environment and the
// command line, in that order.
func resolveConfig(cmd *cobra.Command, log *logger.Logger) (config.Config, error) {
	cfg := config.Default()

	loaded, err := utils.LoadEnv()
	if err != nil {
		return cfg, fmt.Errorf("loading .env: %w", err)
	}
	if loaded {
		log.Debugf("loaded environment from .env")
	}

	path, optional := cfgFile, false
	if path == "" {
		path, optional = config.DefaultFile, true
	}
	if err := config.LoadFile(path, &cfg, optional); err != nil {
		return cfg, err
	}

	cfg.ApplyEnv()
	applyFlags(cmd.Flags(), &cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger() *logger.Logger {
	return logger.New(os.Stderr, verbose)
}

// openSource returns the catalog source selected by cfg and a release
// function that must be called on every exit path.
func openSource(ctx context.Context, cfg config.Config, log *logger.Logger) (catalog.Source, func(), error) {
	if cfg.Snapshot != "" {
		log.Debugf("reading catalog snapshot %s", cfg.Snapshot)
		snap, err := catalog.LoadSnapshot(cfg.Snapshot)
		if err != nil {
			return nil, nil, err
		}
		return snap, func() {}, nil
	}

	log.Debugf("connecting to %s", cfg.Connection.Redacted())
	conn, err := database.Connect(ctx, cfg.Connection)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := conn.Close(context.Background()); err != nil {
			log.Warnf("closing connection: %v", err)
		}
	}
	return catalog.NewPGSource(conn), release, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte, log *logger.Logger) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Successf("saved to: %s (%d bytes)", path, len(data))
	return nil
}
