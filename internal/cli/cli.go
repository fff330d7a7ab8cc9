// Package cli implements the hitset command-line interface.
//
// The commands read hitting set instances from JSON or TOML files, solve them
// through a caching [runner.Runner], and print the sets and the cover. The CLI
// is built on cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - demo: solve the built-in example {a, b}, {b, c}
//   - solve: solve an instance file
//   - cache: manage the solution cache
//   - completion: generate shell completions
//
// # Configuration
//
// An optional TOML file (default ~/.config/hitset/config.toml, or --config)
// supplies defaults for solver flags and selects the cache backend.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hitset/pkg/buildinfo"
	"github.com/matzehuels/hitset/pkg/cache"
	"github.com/matzehuels/hitset/pkg/runner"
)

// appName is the application name used for directories and display.
const appName = "hitset"

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
	Out    io.Writer // command output; logs go to Logger

	// spinnerOut receives the progress spinner; nil disables it.
	spinnerOut io.Writer

	configFile string
	config     Config
}

// New creates a CLI that logs to w and prints results to stdout.
// A spinner is shown on stderr while solving when stderr is a terminal.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
	if fd := os.Stderr.Fd(); isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		c.spinnerOut = os.Stderr
	}
	return c
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "hitset finds minimum hitting sets",
		Long:         `hitset finds a smallest set of elements that intersects every set of a collection, using an exact branch-and-bound search.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig(cmd.Flags().Changed("config"))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default ~/.config/hitset/config.toml)")

	root.AddCommand(c.demoCommand())
	root.AddCommand(c.solveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig(explicit bool) error {
	path := c.configFile
	if path == "" {
		p, err := configPath()
		if err != nil {
			return nil
		}
		path = p
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", path, "cache", c.config.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a runner backed by the configured cache. The returned
// function closes the cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*runner.Runner, func()) {
	ch := c.newCache(ctx, noCache)
	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), appName+":")
	closeFn := func() {
		if err := ch.Close(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
	}
	return runner.New(ch, keyer, c.Logger), closeFn
}

// newCache opens the configured backend. A backend that cannot be opened,
// whether an unwritable cache directory or an unreachable server, disables
// caching with a warning rather than failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	cfg := c.config.Cache
	if noCache || cfg.Backend == cache.BackendNone {
		return cache.NewNullCache()
	}

	backend := cfg.Backend
	if backend == "" {
		backend = cache.BackendFile
	}
	dir, err := cacheDir()
	if err != nil && backend == cache.BackendFile {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", backend, "err", err)
		return cache.NewNullCache()
	}
	ch, err := cache.Open(ctx, cache.Config{
		Backend:         backend,
		Dir:             dir,
		RedisAddr:       cfg.RedisAddr,
		MongoURI:        cfg.MongoURI,
		MongoDatabase:   cfg.MongoDatabase,
		MongoCollection: cfg.MongoCollection,
	})
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", backend, "err", err)
		return cache.NewNullCache()
	}
	c.Logger.Debug("opened cache", "backend", backend)
	return ch
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/hitset/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
