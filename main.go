package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/mcncl/jsonkit/internal/config"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/logger"
	"github.com/mcncl/jsonkit/internal/tools"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Version information
const (
	Version = "0.1.0"
)

// Globals are the flags shared by every command.
type Globals struct {
	Config  string           `help:"Path to a config file. Defaults to the nearest .jsonkit.yml." short:"c" type:"path" env:"JSONKIT_CONFIG"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Run   RunCmd   `cmd:"" help:"Run a tool over a JSON document."`
	List  ListCmd  `cmd:"" help:"List the available tools."`
	Serve ServeCmd `cmd:"" help:"Serve the tools over HTTP."`
	MCP   MCPCmd   `cmd:"" name:"mcp" help:"Serve the tools over MCP on stdin and stdout."`
}

// Context holds the runtime context handed to every command.
type Context struct {
	Config *config.Config
	Logger *zap.Logger
	Fs     afero.Fs

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("jsonkit"),
		kong.Description("A toolkit of JSON utilities: formatting, transformation, code generation, querying and masking."),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	ctx, err := newContext(&cli.Globals, afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = kctx.Run(ctx)
	_ = ctx.Logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// newContext loads the configuration and builds the logger. Without an
// explicit path the config file is searched for from the working directory up.
func newContext(g *Globals, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) (*Context, error) {
	cfg, path, err := loadConfig(fs, g.Config)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if g.Debug {
		level = "debug"
	}
	log, err := logger.New(stderr, level, cfg.Log.Format)
	if err != nil {
		return nil, errors.NewConfigError("failed to set up logging", err)
	}
	if path != "" {
		log.Debug("configuration loaded", zap.String("path", path))
	}

	return &Context{
		Config: cfg,
		Logger: log,
		Fs:     fs,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}, nil
}

func loadConfig(fs afero.Fs, path string) (*config.Config, string, error) {
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(fs, wd)
		}
	}
	if path == "" {
		return config.NewConfig(), "", nil
	}

	cfg, err := config.LoadConfig(fs, path)
	if err != nil {
		return nil, path, errors.NewConfigError(fmt.Sprintf("failed to load config file '%s'", path), err)
	}
	return cfg, path, nil
}

// registry builds the default registry for the loaded configuration.
func (c *Context) registry(opts ...tools.RegistryOption) *tools.Registry {
	opts = append([]tools.RegistryOption{tools.WithLogger(c.Logger)}, opts...)
	return tools.NewDefaultRegistry(c.Config, opts...)
}
