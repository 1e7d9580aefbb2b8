package cli_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mainPkg    = "../.."
	userSample = "../../testdata/samples/user.json"
)

func jsonkit(stdin string, args ...string) (string, string, error) {
	cmd := exec.Command("go", append([]string{"run", mainPkg}, args...)...)
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// TestCLI_FileInputOutput tests the CLI with file input and output
func TestCLI_FileInputOutput(t *testing.T) {
	tempDir := t.TempDir()
	outputFile := filepath.Join(tempDir, "masked.json")

	_, stderr, err := jsonkit("", "run", "maskFields", "-i", userSample, "-o", outputFile)
	require.NoError(t, err, "CLI command failed: %s", stderr)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `"phone": "138****5678"`)
	assert.Contains(t, out, `"email": "ja***@example.com"`)
	assert.Contains(t, out, `"password": "hu***r2"`)
	assert.Contains(t, out, `"location": "Melbourne"`)
	assert.Contains(t, stderr, "Result written to")
}

// TestCLI_StdinStdout tests the CLI with stdin input and stdout output
func TestCLI_StdinStdout(t *testing.T) {
	stdout, stderr, err := jsonkit(`{"name": "Jane Smith", "age": 25, "active": true}`, "run", "minify")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, `{"name":"Jane Smith","age":25,"active":true}`+"\n", stdout)
}

func TestCLI_Options(t *testing.T) {
	stdout, stderr, err := jsonkit("", "run", "toGo", "-i", userSample, "-O", "structName=Account", "-O", "gofmt=true")
	require.NoError(t, err, "CLI command failed: %s", stderr)

	assert.Contains(t, stdout, "type Account struct")
	assert.Regexp(t, `User\s+any\s+\x60json:"user"\x60`, stdout)

	stdout, stderr, err = jsonkit("", "run", "jsonPath", "-i", userSample, "-O", "path=user.roles[-1]")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Equal(t, "\"admin\"\n", stdout)
}

// TestCLI_InvalidJSON tests the CLI with invalid JSON input
func TestCLI_InvalidJSON(t *testing.T) {
	_, stderr, err := jsonkit(`{"name": "Invalid JSON, "age": 30}`, "run", "format")
	assert.Error(t, err, "CLI should fail with invalid JSON")
	assert.Contains(t, stderr, "JSON parsing error: JSON syntax error at line 1")
}

// TestCLI_EmptyInput tests the CLI with empty input
func TestCLI_EmptyInput(t *testing.T) {
	_, stderr, err := jsonkit("", "run", "format")
	assert.Error(t, err, "CLI should fail with empty input")
	assert.Contains(t, stderr, "empty input")
}

func TestCLI_UnknownTool(t *testing.T) {
	_, stderr, err := jsonkit(`{}`, "run", "toRust")
	assert.Error(t, err)
	assert.Contains(t, stderr, "Unknown tool")
	assert.Contains(t, stderr, "jsonkit list")
}

func TestCLI_List(t *testing.T) {
	stdout, stderr, err := jsonkit("", "list")
	require.NoError(t, err, "CLI command failed: %s", stderr)
	assert.Contains(t, stdout, "conversion:")
	assert.Contains(t, stdout, "deepArrayDeduplicate")
}

// TestCLI_Version tests the version flag
func TestCLI_Version(t *testing.T) {
	cmd := exec.Command("go", "run", mainPkg, "-v")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)
	assert.Contains(t, string(output), "0.1.0")
}

// TestCLI_Help tests the help output
func TestCLI_Help(t *testing.T) {
	cmd := exec.Command("go", "run", mainPkg, "run", "--help")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err)

	helpOutput := string(output)
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "-i, --input")
	assert.Contains(t, helpOutput, "-o, --output")
	assert.Contains(t, helpOutput, "-O, --options")
	assert.Contains(t, helpOutput, "--config")
}
