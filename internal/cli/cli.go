// Package cli implements the flowstep command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowstep/pkg/buildinfo"
	"github.com/matzehuels/flowstep/pkg/cache"
	"github.com/matzehuels/flowstep/pkg/config"
	"github.com/matzehuels/flowstep/pkg/errors"
	"github.com/matzehuels/flowstep/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flowstep"

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

	cfg        config.Config
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and default config.
// The config file is loaded later, in the root command's PersistentPreRunE,
// so that the --config flag can point somewhere else.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		cfg: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "flowstep",
		Short:        "Flowstep explains Edmonds-Karp max-flow steps visually",
		Long:         `Flowstep turns single steps of the Edmonds-Karp maximum-flow algorithm into annotated network drawings with a plain-language explanation of what the step did.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/flowstep/config.toml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
		c.SetLogLevel(resolveLogLevel(cfg.Log.Level, c.verbose))
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.sceneCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.examplesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// resolveLogLevel maps the configured level name to a log level.
// The --verbose flag always wins.
func resolveLogLevel(level string, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner wired to the configured cache backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if prefix := c.cfg.Cache.KeyPrefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache builds the cache backend selected in the config file. The file
// backend degrades to a null cache when no cache directory can be resolved.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache(), nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, redisCacheConfig(c.cfg))
	case config.BackendMongo:
		return cache.NewMongoCache(ctx, mongoCacheConfig(c.cfg))
	case config.BackendTiered:
		hot, err := cache.NewRedisCache(ctx, redisCacheConfig(c.cfg))
		if err != nil {
			return nil, err
		}
		durable, err := cache.NewMongoCache(ctx, mongoCacheConfig(c.cfg))
		if err != nil {
			hot.Close()
			return nil, err
		}
		return cache.NewTieredCache(hot, durable), nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

func redisCacheConfig(cfg config.Config) cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	}
}

func mongoCacheConfig(cfg config.Config) cache.MongoConfig {
	return cache.MongoConfig{
		URI:        cfg.Cache.Mongo.URI,
		Database:   cfg.Cache.Mongo.Database,
		Collection: cfg.Cache.Mongo.Collection,
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the effective cache directory: the configured override,
// or the XDG default (~/.cache/flowstep/).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions builds pipeline options from the configured render defaults.
func (c *CLI) baseOptions() pipeline.Options {
	return pipeline.Options{
		VizType: c.cfg.Render.VizType,
		Style:   c.cfg.Render.Style,
		Scale:   c.cfg.Render.Scale,
		Legend:  c.cfg.Render.Legend,
		Details: c.cfg.Render.Details,
	}
}

// inputOptions resolves the step payload source from the positional args and
// the --example flag. "-" reads the payload from stdin.
func inputOptions(opts *pipeline.Options, args []string, example string) error {
	if example != "" {
		opts.Example = example
		return nil
	}
	if len(args) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "provide a step file, - for stdin, or --example")
	}
	if args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		opts.Payload = string(data)
		return nil
	}
	opts.Path = args[0]
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
