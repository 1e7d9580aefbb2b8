package main

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonkit/internal/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testIO struct {
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestContext(t *testing.T, fs afero.Fs, g *Globals, stdin string) (*Context, testIO) {
	t.Helper()
	if g == nil {
		g = &Globals{}
	}
	out := testIO{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ctx, err := newContext(g, fs, strings.NewReader(stdin), out.stdout, out.stderr)
	require.NoError(t, err)
	return ctx, out
}

// runCLI parses args the way main does and runs the selected command.
func runCLI(t *testing.T, ctx *Context, args ...string) error {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("jsonkit"), kong.Vars{"version": Version})
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(ctx)
}

func TestNewContext_Defaults(t *testing.T) {
	ctx, _ := newTestContext(t, afero.NewMemMapFs(), nil, "")

	assert.Equal(t, 2, ctx.Config.Defaults.Indent)
	assert.Equal(t, ":8080", ctx.Config.Server.Addr)
	assert.NotNil(t, ctx.Logger)
}

func TestNewContext_ConfigFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/jsonkit.yml", []byte(`
defaults:
  indent: 4
names:
  go: Payload
log:
  level: debug
  format: json
`), 0o644))

	ctx, out := newTestContext(t, fs, &Globals{Config: "/etc/jsonkit.yml"}, "")
	assert.Equal(t, 4, ctx.Config.Defaults.Indent)
	assert.Equal(t, "Payload", ctx.Config.Names.Go)
	assert.Contains(t, out.stderr.String(), `"msg":"configuration loaded"`)
}

func TestNewContext_InvalidConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.yml", []byte("defaults:\n  indent: 40\n"), 0o644))

	_, err := newContext(&Globals{Config: "/bad.yml"}, fs, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeConfig, errors.TypeOf(err))

	_, err = newContext(&Globals{Config: "/missing.yml"}, fs, nil, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeConfig, errors.TypeOf(err))
}

func TestRunCmd_Stdin(t *testing.T) {
	ctx, out := newTestContext(t, afero.NewMemMapFs(), nil, `{"b": 1, "a": [1, 2]}`)

	err := runCLI(t, ctx, "run", "minify")
	require.NoError(t, err)
	assert.Equal(t, "{\"b\":1,\"a\":[1,2]}\n", out.stdout.String())
}

func TestRunCmd_Options(t *testing.T) {
	ctx, out := newTestContext(t, afero.NewMemMapFs(), nil, `{"user":{"name":"x"}}`)

	err := runCLI(t, ctx, "run", "flatten", "-O", "separator=/")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"user/name\": \"x\"\n}\n", out.stdout.String())

	out.stdout.Reset()
	ctx.Stdin = strings.NewReader(`{"a":1}`)
	err = runCLI(t, ctx, "run", "format", "-O", "indent=0")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n", out.stdout.String())
}

func TestRunCmd_Files(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/in.json", []byte(`{"id": 1, "email": "test@example.com"}`), 0o644))
	ctx, out := newTestContext(t, fs, nil, "")

	err := runCLI(t, ctx, "run", "toGo", "-i", "/data/in.json", "-o", "/data/out.go", "-O", "structName=User")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/data/out.go")
	require.NoError(t, err)
	assert.Contains(t, string(data), "type User struct")
	assert.Contains(t, string(data), "Email")
	assert.Contains(t, out.stderr.String(), "Result written to /data/out.go")
	assert.Empty(t, out.stdout.String())
}

func TestRunCmd_InputErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/empty.json", nil, 0o644))

	tests := []struct {
		name     string
		args     []string
		stdin    string
		sentinel error
	}{
		{name: "missing file", args: []string{"run", "format", "-i", "/nope.json"}, sentinel: errors.ErrFileNotFound},
		{name: "empty file", args: []string{"run", "format", "-i", "/empty.json"}, sentinel: errors.ErrFileEmpty},
		{name: "empty stdin", args: []string{"run", "format"}, sentinel: errors.ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := newTestContext(t, fs, nil, tt.stdin)
			err := runCLI(t, ctx, tt.args...)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.sentinel), "got %v", err)
			assert.Equal(t, errors.ErrorTypeInput, errors.TypeOf(err))
		})
	}
}

func TestRunCmd_ToolFailures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		typ      errors.ErrorType
		friendly string
	}{
		{
			name:     "unknown tool",
			args:     []string{"run", "nope"},
			stdin:    `{}`,
			typ:      errors.ErrorTypeToolNotFound,
			friendly: "Unknown tool",
		},
		{
			name:     "invalid json",
			args:     []string{"run", "validate"},
			stdin:    `{"a":}`,
			typ:      errors.ErrorTypeInvalidJSON,
			friendly: "JSON parsing error: JSON syntax error at line 1, column 6",
		},
		{
			name:     "multiple values",
			args:     []string{"run", "format"},
			stdin:    `{} {}`,
			typ:      errors.ErrorTypeInvalidJSON,
			friendly: "JSON parsing error: JSON text has trailing data",
		},
		{
			name:     "missing option",
			args:     []string{"run", "jsonPath"},
			stdin:    `{}`,
			typ:      errors.ErrorTypeMissingParameter,
			friendly: `Option error: missing required parameter "path"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := newTestContext(t, afero.NewMemMapFs(), nil, tt.stdin)
			err := runCLI(t, ctx, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.typ, errors.TypeOf(err))
			assert.Contains(t, errors.UserFriendlyError(err), tt.friendly)
			assert.Empty(t, out.stdout.String())
		})
	}
}

func TestListCmd(t *testing.T) {
	ctx, out := newTestContext(t, afero.NewMemMapFs(), nil, "")

	require.NoError(t, runCLI(t, ctx, "list"))
	listing := out.stdout.String()

	for _, header := range []string{"basic:", "data_structure:", "conversion:", "query:", "security:"} {
		assert.Contains(t, listing, header)
	}
	assert.Less(t, strings.Index(listing, "basic:"), strings.Index(listing, "security:"))
	assert.Contains(t, listing, "  format ")
	assert.Contains(t, listing, "-O indent=<integer>")
	assert.Contains(t, listing, "-O compareWith=<string, required>")
}
