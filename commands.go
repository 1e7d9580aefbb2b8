package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/mcncl/jsonkit/internal/mcpserver"
	"github.com/mcncl/jsonkit/internal/metrics"
	"github.com/mcncl/jsonkit/internal/parser"
	"github.com/mcncl/jsonkit/internal/server"
	"github.com/mcncl/jsonkit/internal/tools"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// RunCmd runs one tool.
type RunCmd struct {
	Tool    string            `arg:"" help:"Tool to run. See 'jsonkit list'."`
	Input   string            `help:"Path to input JSON file. If not specified, reads from stdin." short:"i" type:"path"`
	Output  string            `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Options map[string]string `help:"Tool option as key=value. May be repeated." short:"O" mapsep:"none"`
}

func (cmd *RunCmd) Run(ctx *Context) error {
	text, err := cmd.readInput(ctx)
	if err != nil {
		return err
	}

	opts := make(map[string]any, len(cmd.Options))
	for k, v := range cmd.Options {
		opts[k] = v
	}

	res := ctx.registry().ExecuteMap(tools.ToolType(cmd.Tool), tools.FromText(text), opts)
	if !res.Success {
		return &errors.AppError{Type: res.Code, Message: res.Error}
	}
	return cmd.writeOutput(ctx, res.Result)
}

// readInput reads the document from a file, from piped stdin, or
// interactively from a terminal until EOF.
func (cmd *RunCmd) readInput(ctx *Context) (string, error) {
	if cmd.Input != "" {
		data, err := parser.ReadFile(ctx.Fs, cmd.Input)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	if isTerminal(ctx.Stdin) {
		return readInteractiveInput(ctx)
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// readInteractiveInput lets users paste JSON and finish with Ctrl+D (EOF).
func readInteractiveInput(ctx *Context) (string, error) {
	fmt.Fprintln(ctx.Stderr, "jsonkit interactive mode")
	fmt.Fprintln(ctx.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(ctx.Stdin)
	var b strings.Builder
	for {
		line, err := reader.ReadString('\n')
		b.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.NewInputError("error reading input", err)
		}
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}
	fmt.Fprintln(ctx.Stderr)
	return b.String(), nil
}

func (cmd *RunCmd) writeOutput(ctx *Context, result string) error {
	if cmd.Output != "" {
		if err := afero.WriteFile(ctx.Fs, cmd.Output, []byte(result+"\n"), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", cmd.Output), err)
		}
		fmt.Fprintf(ctx.Stderr, "Result written to %s\n", cmd.Output)
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, result); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// ListCmd prints the tools grouped by category.
type ListCmd struct{}

func (cmd *ListCmd) Run(ctx *Context) error {
	r := ctx.registry()
	w := bufio.NewWriter(ctx.Stdout)

	for i, category := range tools.Categories {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", category)
		for _, t := range r.ByCategory(category) {
			fmt.Fprintf(w, "  %-22s %s\n", t.Type, t.Description)
			for _, p := range t.Parameters {
				req := ""
				if p.Required {
					req = ", required"
				}
				fmt.Fprintf(w, "  %-22s   -O %s=<%s%s>  %s\n", "", p.Name, p.Type, req, p.Description)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// ServeCmd serves the HTTP API until interrupted.
type ServeCmd struct {
	Addr string `help:"Address to listen on. Defaults to server.addr from the config." env:"JSONKIT_ADDR"`
}

func (cmd *ServeCmd) Run(ctx *Context) error {
	addr := cmd.Addr
	if addr == "" {
		addr = ctx.Config.Server.Addr
	}

	m := metrics.New()
	r := ctx.registry(tools.WithObserver(m))
	mcpServer := mcpserver.New(mcpserver.Options{
		Version:  Version,
		Registry: r,
		Logger:   ctx.Logger,
	})

	srv, err := server.NewServer(&server.ServerOptions{
		Addr:      addr,
		Registry:  r,
		Metrics:   m,
		MCPServer: mcpServer,
		Logger:    ctx.Logger,
	})
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(sigCtx)
}

// MCPCmd serves the tools to an MCP client over stdio.
type MCPCmd struct{}

func (cmd *MCPCmd) Run(ctx *Context) error {
	r := ctx.registry()
	s := mcpserver.New(mcpserver.Options{
		Version:  Version,
		Registry: r,
		Logger:   ctx.Logger,
	})
	ctx.Logger.Info("serving MCP on stdio", zap.Int("tools", len(r.GetAll())))
	return mcpserver.ServeStdio(s)
}
