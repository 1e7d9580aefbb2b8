package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mcncl/jsonkit/internal/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, r *tools.Registry, tool tools.ToolType, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	callToolReq := mcp.CallToolRequest{}
	callToolReq.Params.Name = string(tool)
	callToolReq.Params.Arguments = args

	res, err := Handler(r, tool, nil)(context.Background(), callToolReq)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestHandler(t *testing.T) {
	r := tools.NewDefaultRegistry(nil)

	res := callTool(t, r, tools.Format, map[string]any{
		"input":   `{"a":1}`,
		"options": map[string]any{"indent": float64(0)},
	})
	assert.False(t, res.IsError)
	assert.Equal(t, `{"a":1}`, resultText(t, res))

	res = callTool(t, r, tools.JSONPath, map[string]any{
		"input":   `{"items":[1,2,3]}`,
		"options": map[string]any{"path": "items[-1]"},
	})
	assert.False(t, res.IsError)
	assert.Equal(t, "3", resultText(t, res))
}

func TestHandler_Failures(t *testing.T) {
	r := tools.NewDefaultRegistry(nil)

	res := callTool(t, r, tools.Format, map[string]any{})
	assert.True(t, res.IsError, "input is required")

	res = callTool(t, r, tools.Diff, map[string]any{"input": `{}`})
	assert.True(t, res.IsError)
	assert.Equal(t, `missing required parameter "compareWith"`, resultText(t, res))

	res = callTool(t, r, tools.Minify, map[string]any{"input": `{"a":`})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "line 1, column 6")

	res = callTool(t, r, tools.Format, map[string]any{"input": `{}`, "options": "indent=4"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "must be an object")

	res = callTool(t, r, tools.Minify, map[string]any{"input": `{}`, "options": nil})
	assert.False(t, res.IsError)
}

func TestTool(t *testing.T) {
	r := tools.NewDefaultRegistry(nil)
	diff, ok := r.Get(tools.Diff)
	require.True(t, ok)

	tool := Tool(diff)
	assert.Equal(t, "diff", tool.Name)
	assert.Contains(t, tool.Description, "compareWith (string, required)")
	assert.Equal(t, []string{ArgInput}, tool.InputSchema.Required)
	assert.Contains(t, tool.InputSchema.Properties, ArgInput)

	options, ok := tool.InputSchema.Properties[ArgOptions].(map[string]any)
	require.True(t, ok)
	props, ok := options["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "compareWith")
}

func rpc(t *testing.T, payload string, handle func(json.RawMessage) any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(handle(json.RawMessage(payload)))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestNew(t *testing.T) {
	s := New(Options{Version: "test", Registry: tools.NewDefaultRegistry(nil)})
	handle := func(msg json.RawMessage) any { return s.HandleMessage(context.Background(), msg) }

	listed := rpc(t, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`, handle)
	result, ok := listed["result"].(map[string]any)
	require.True(t, ok, "unexpected response %v", listed)
	list, ok := result["tools"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 22)

	called := rpc(t, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"maskFields","arguments":{"input":"{\"phone\":\"13800138000\"}"}}}`, handle)
	result, ok = called["result"].(map[string]any)
	require.True(t, ok, "unexpected response %v", called)
	content := result["content"].([]any)
	require.Len(t, content, 1)
	assert.Equal(t, "{\n  \"phone\": \"138****8000\"\n}", content[0].(map[string]any)["text"])
}
