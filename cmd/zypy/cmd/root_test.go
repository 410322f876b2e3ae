package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const basicDir = "../../../test/basic"

func execute(args ...string) (string, error) {
	cfgFile, format, verbose = "", "text", false
	indexDSN, reportOutput = "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommandText(t *testing.T) {
	out, err := execute("parse", "--format", "text", "while x: import a, b")
	require.NoError(t, err)
	require.Equal(t, "while x:\n\timport a, b\n", out)
}

func TestParseCommandYAML(t *testing.T) {
	out, err := execute("parse", "--format", "yaml", "import a")
	require.NoError(t, err)
	require.Contains(t, out, "type: Program")
	require.Contains(t, out, "module: a")
}

func TestLexCommandJSON(t *testing.T) {
	out, err := execute("lex", "--format", "json", "import a")
	require.NoError(t, err)

	var tokens []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &tokens))
	require.Len(t, tokens, 3)
	require.Equal(t, "keyword", tokens[0]["kind"])
	require.Equal(t, "a", tokens[1]["text"])
	require.Equal(t, "eof", tokens[2]["kind"])
}

func TestLexCommandReportsErrors(t *testing.T) {
	_, err := execute("lex", "--format", "text", "'abc")
	require.Error(t, err)
	require.Contains(t, err.Error(), "EOF within string literal")
}

func TestParseFileCommand(t *testing.T) {
	out, err := execute("parsefile", "--format", "text", filepath.Join(basicDir, "app", "__init__.zy"))
	require.NoError(t, err)
	require.Equal(t, "from .core import run\n", out)
}

func TestFmtCommand(t *testing.T) {
	out, err := execute("fmt", "--format", "text", filepath.Join(basicDir, "app", "util.zy"))
	require.NoError(t, err)
	require.Equal(t, "x, y = 1, 2\nfor item in (x, y):\n\tpass\nelse:\n\tpass\n", out)
}

func TestImportsCommand(t *testing.T) {
	out, err := execute("imports", "--format", "text", basicDir)
	require.NoError(t, err)
	require.Contains(t, out, "main: app, app.core\n")
	require.Contains(t, out, "app.util: \n")
}

func TestReportCommand(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "report.md")
	_, err := execute("report", "--format", "text", "--output", dest, basicDir)
	require.NoError(t, err)

	bytes, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Contains(t, string(bytes), "# Import report")
}

func TestIndexCommandNeedsDatabase(t *testing.T) {
	_, err := execute("index", "--format", "text", basicDir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no database configured")
}

func TestImportersCommandRejectsBadRunID(t *testing.T) {
	_, err := execute("importers", "--format", "text", "--dsn", "postgres://localhost/zypy", "not-a-uuid", "app.core")
	require.Error(t, err)
	require.Contains(t, err.Error(), `invalid run id "not-a-uuid"`)
}

func TestImportersCommandNeedsDatabase(t *testing.T) {
	_, err := execute("importers", "--format", "text", "3f2b8e9c-1d4a-4c6e-9b7f-0a1b2c3d4e5f", "app.core")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no database configured")
}

func TestFormatLines(t *testing.T) {
	require.Equal(t, "", formatLines([]string{}))
	require.Equal(t, "app\nmain\n", formatLines([]string{"app", "main"}))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.toml")
	require.NoError(t, os.WriteFile(good, []byte("[output]\nformat = \"json\"\n[log]\nlevel = \"debug\"\n"), 0o644))
	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[output]\nformat = \"xml\"\n"), 0o644))

	out, err := execute("parse", "--config", good, "--format", "text", "pass")
	require.NoError(t, err)
	require.Equal(t, "pass\n", out)

	_, err = execute("parse", "--config", bad, "--format", "text", "pass")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid output format")
}
