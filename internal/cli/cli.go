package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tilegrid/pkg/buildinfo"
	"github.com/matzehuels/tilegrid/pkg/config"
	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/session"
	"github.com/matzehuels/tilegrid/pkg/session/mongo"
	"github.com/matzehuels/tilegrid/pkg/session/redis"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "tilegrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Defaults(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tilegrid lays out long lists as a scrolling two-small-one-big tile grid",
		Long: `tilegrid lays out long lists as a tile grid that alternates one big tile
with two stacked small tiles, realizing only the items that intersect the
viewport and recycling the rest while scrolling.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/tilegrid/config.toml if present)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.scrollCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the --config file, or the default file when it exists.
func (c *CLI) loadConfig() error {
	path := c.configPath
	if path == "" {
		if dir, err := configDir(); err == nil {
			candidate := filepath.Join(dir, "config.toml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Snapshot Stores
// =============================================================================

// openStore connects the snapshot backend selected in the configuration.
func (c *CLI) openStore(ctx context.Context) (session.Store, error) {
	st := c.cfg.Store
	switch st.Backend {
	case config.BackendMemory:
		return session.NewMemoryStore(), nil
	case config.BackendFile:
		dir := st.Dir
		if dir == "" {
			d, err := sessionDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return session.NewFileStore(dir)
	case config.BackendRedis:
		return redis.NewStore(ctx, redis.Config{
			Addr:     st.RedisAddr,
			Password: st.RedisPassword,
			DB:       st.RedisDB,
		})
	case config.BackendMongo:
		return mongo.NewStore(ctx, mongo.Config{
			URI:      st.MongoURI,
			Database: st.MongoDatabase,
		})
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", st.Backend)
	}
}

// openCLIStore opens the store the CLI persists snapshots in between runs.
// The memory backend cannot outlive the process, so the file store is used
// in its place.
func (c *CLI) openCLIStore(ctx context.Context) (session.Store, error) {
	if c.cfg.Store.Backend == config.BackendMemory {
		dir := c.cfg.Store.Dir
		if dir == "" {
			d, err := sessionDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return session.NewFileStore(dir)
	}
	return c.openStore(ctx)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/tilegrid/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// sessionDir returns the directory the CLI keeps snapshots in.
func sessionDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions"), nil
}
