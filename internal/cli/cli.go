package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umlgraph/pkg/buildinfo"
	"github.com/matzehuels/umlgraph/pkg/cache"
	"github.com/matzehuels/umlgraph/pkg/config"
	uerrors "github.com/matzehuels/umlgraph/pkg/errors"
	uio "github.com/matzehuels/umlgraph/pkg/io"
	"github.com/matzehuels/umlgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "umlgraph"

	// stdio is the file argument that selects stdin or stdout.
	stdio = "-"
)

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

	// Stdin and Stdout default to the process streams; tests replace them.
	Stdin  io.Reader
	Stdout io.Writer

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// Config returns the settings loaded for the running command.
func (c *CLI) Config() config.Config { return c.cfg }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "umlgraph lays out Mermaid-style class diagrams",
		Long: `umlgraph parses Mermaid-style class diagram text into classes and
relationships and computes a layered layout for them. The result can be written
as JSON, YAML, Graphviz DOT or SVG, browsed in the terminal or served over HTTP.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.preRun,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/umlgraph/config.toml)")

	root.AddCommand(c.parseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// preRun loads the configuration and applies the log level. --verbose wins
// over log_level.
func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = loaded.Config

	level, err := log.ParseLevel(c.cfg.LogLevel)
	if err != nil {
		level = LogInfo
	}
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)

	if loaded.Path != "" {
		c.Logger.Debug("loaded config", "path", loaded.Path)
	}
	for _, k := range loaded.Unknown {
		printWarning("unknown config key %q in %s", k, loaded.Path)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the backend named by the config. A file cache that cannot
// be created degrades to no caching; an unreachable redis is an error.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	backend := c.cfg.Cache.Backend
	if noCache {
		backend = "none"
	}
	switch backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   c.cfg.Cache.RedisAddr,
			Prefix: appName + ":",
		})
		if err != nil {
			return nil, uerrors.Wrap(uerrors.ErrCodeCache, err, "connect to redis at %s", c.cfg.Cache.RedisAddr)
		}
		return cache.Instrument(rc, "redis"), nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.Instrument(fc, "file"), nil
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the platform default
// (~/.cache/umlgraph on Linux).
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// renderOptions builds pipeline options from a format flag, falling back to
// the configured default.
func (c *CLI) renderOptions(format string, compact, refresh bool) pipeline.Options {
	if format == "" {
		format = c.cfg.Render.Format
	}
	return pipeline.Options{
		Format:  strings.ToLower(format),
		Compact: compact,
		Refresh: refresh,
		TTL:     c.cfg.Cache.TTL.Duration,
		Logger:  c.Logger,
	}
}

// inputArg returns the file argument, "-" when none was given.
func inputArg(args []string) string {
	if len(args) == 0 {
		return stdio
	}
	return args[0]
}

// readInput reads the diagram at path ("-" for stdin) and checks it is
// usable text.
func (c *CLI) readInput(path string) (string, error) {
	if path != stdio {
		if err := uerrors.ValidatePath(path); err != nil {
			return "", err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return "", uerrors.New(uerrors.ErrCodeFileNotFound, "input file %s does not exist", path)
		}
	}
	text, err := uio.ReadSource(path, c.Stdin)
	if err != nil {
		return "", err
	}
	if err := uerrors.ValidateSource(text, uerrors.DefaultMaxSourceBytes); err != nil {
		return "", err
	}
	return text, nil
}

// writeOutput writes data to path, or to stdout for "" and "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" || path == stdio {
		_, err := c.Stdout.Write(data)
		return err
	}
	if err := uerrors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// toStdout reports whether output goes to the terminal stream, in which case
// status lines are suppressed so they do not mix with the artifact.
func toStdout(path string) bool { return path == "" || path == stdio }
