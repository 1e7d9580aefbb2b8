// Package mcpserver exposes the tool registry as MCP tools.
package mcpserver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mcncl/jsonkit/internal/tools"
	"go.uber.org/zap"
)

// Argument names every MCP tool takes.
const (
	ArgInput   = "input"
	ArgOptions = "options"
)

// Options configures New.
type Options struct {
	Name     string
	Version  string
	Registry *tools.Registry
	Logger   *zap.Logger
}

// New builds an MCP server with one tool per registered tool.
func New(opts Options) *server.MCPServer {
	if opts.Name == "" {
		opts.Name = "jsonkit"
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := server.NewMCPServer(
		opts.Name,
		opts.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	for _, tool := range opts.Registry.GetAll() {
		s.AddTool(Tool(tool), Handler(opts.Registry, tool.Type, logger))
	}
	return s
}

// Tool describes a registry tool as an MCP tool.
func Tool(t tools.Tool) mcp.Tool {
	desc := t.Description
	if len(t.Parameters) > 0 {
		desc += ". Options: " + describeParameters(t.Parameters)
	}

	return mcp.NewTool(string(t.Type),
		mcp.WithDescription(desc),
		mcp.WithString(ArgInput,
			mcp.Required(),
			mcp.Description("JSON document to process"),
		),
		mcp.WithObject(ArgOptions,
			mcp.Description("Tool options"),
			mcp.Properties(optionProperties(t.Parameters)),
		),
	)
}

func describeParameters(params []tools.ParameterDef) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		part := fmt.Sprintf("%s (%s", p.Name, p.Type)
		if p.Required {
			part += ", required"
		}
		parts = append(parts, part+")")
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

func optionProperties(params []tools.ParameterDef) map[string]any {
	props := make(map[string]any, len(params))
	for _, p := range params {
		prop := map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Type == "array" {
			prop["items"] = map[string]any{"type": "string"}
		}
		props[p.Name] = prop
	}
	return props
}

// Handler runs tool t for MCP calls. Tool failures are reported as error
// results rather than protocol errors.
func Handler(r *tools.Registry, t tools.ToolType, logger *zap.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := req.RequireString(ArgInput)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var opts map[string]any
		if raw, ok := req.GetArguments()[ArgOptions]; ok && raw != nil {
			opts, ok = raw.(map[string]any)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("argument %q must be an object", ArgOptions)), nil
			}
		}

		res := r.ExecuteMap(t, tools.FromText(input), opts)
		if !res.Success {
			logger.Debug("mcp tool call failed",
				zap.String("tool", string(t)),
				zap.String("code", string(res.Code)),
			)
			return mcp.NewToolResultError(res.Error), nil
		}
		return mcp.NewToolResultText(res.Result), nil
	}
}

// ServeStdio serves s over standard input and output until the input closes.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
