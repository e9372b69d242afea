package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neurondemo/internal/catalog"
	"neurondemo/internal/log"
)

// execute runs the root command with an explicit, empty config file so the
// user's own config never leaks into a test
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("config_version: 1\n"), 0o644))
	return executeWithConfig(t, cfgPath, args...)
}

func executeWithConfig(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(log.Discard)

	buf := &bytes.Buffer{}
	cmd := NewRootCommand(BuildInfo{Version: "test", Commit: "none", Date: "unknown"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append(args, "--config", cfgPath, "--log-level", "error"))
	err := cmd.Execute()
	return buf.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(BuildInfo{})
	for _, name := range []string{"play", "list", "import", "convert"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand(BuildInfo{})

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("log-level"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("theme"))
}

func TestInvalidThemeIsCommandError(t *testing.T) {
	_, err := execute(t, "list", "--theme", "neon")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMissingConfigIsCommandError(t *testing.T) {
	_, err := executeWithConfig(t, filepath.Join(t.TempDir(), "missing.yaml"), "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestListKeys(t *testing.T) {
	out, err := execute(t, "list", "--keys")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 30)
	assert.Equal(t, "build", lines[0])
	assert.Contains(t, lines, "vectors/operations")
}

func TestListTable(t *testing.T) {
	out, err := execute(t, "list", "--long")
	require.NoError(t, err)
	assert.Contains(t, out, "KEY")
	assert.Contains(t, out, "vectors/operations *")
	assert.Contains(t, out, "Vectors: Operations")
	assert.Contains(t, out, "  Vector operations: creation")
}

func TestPlayUnknownDemo(t *testing.T) {
	_, err := execute(t, "play", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, errors.Is(err, catalog.ErrNotFound))
}

func TestPlayInvalidSpeed(t *testing.T) {
	_, err := execute(t, "play", "build", "--speed", "5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPlayWritesTranscript(t *testing.T) {
	dir := t.TempDir()
	scripts := filepath.Join(dir, "scripts")
	require.NoError(t, os.MkdirAll(scripts, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scripts, "smoke.yaml"), []byte(`name: smoke
order: 1
description: smoke test
badges: ["fast"]
steps:
  - command: "echo hi"
    output: ["\x1b[32mhi\x1b[0m"]
  - command: "echo bye"
    output: ["bye"]
`), 0o644))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`config_version: 1
playback:
  type_interval: 1ms
  command_delay: 1ms
  output_interval: 1ms
  between_steps: 1ms
catalog:
  dir: `+scripts+`
ui:
  transcript_dir: `+dir+`
`), 0o644))

	out, err := executeWithConfig(t, cfgPath, "play", "smoke", "--plain", "--transcript", "smoke.txt", "--speed", "3")
	require.NoError(t, err)
	assert.Equal(t, "$ echo hi\nhi\n\n$ echo bye\nbye\n", out)

	data, err := os.ReadFile(filepath.Join(dir, "smoke.txt"))
	require.NoError(t, err)
	assert.Equal(t, out, string(data))
}

func TestImportAndPlayFromStore(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "demos.db")

	out, err := execute(t, "import", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 8 categories, 30 demos from builtin")

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("catalog:\n  store: "+dbPath+"\n"), 0o644))
	out, err = executeWithConfig(t, cfgPath, "list", "--keys")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 30)
}

func TestImportRequiresDatabase(t *testing.T) {
	_, err := execute(t, "import")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	transcript := filepath.Join(dir, "session.txt")
	require.NoError(t, os.WriteFile(transcript, []byte("$ psql\npsql (18.3)\n\nneurondb=# SELECT 1;\n\x1b[1m1\x1b[0m\n"), 0o644))
	output := filepath.Join(dir, "scripts", "09_session.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o755))

	_, err := execute(t, "convert", transcript, "--name", "session", "--order", "9", "--badge", "SQL", "-o", output)
	require.NoError(t, err)

	cat, err := catalog.LoadDir(filepath.Dir(output))
	require.NoError(t, err)
	demo, err := cat.Lookup(catalog.Key{Category: "session"})
	require.NoError(t, err)
	require.Len(t, demo.Script.Steps, 2)
	assert.Equal(t, "psql", demo.Script.Steps[0].Command)
	assert.True(t, demo.Script.Steps[0].EntersInteractive)
	assert.Equal(t, []string{"1"}, demo.Script.Steps[1].Output)
	assert.Equal(t, []string{"SQL"}, demo.Badges)
}

func TestConvertStdout(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewRootCommand(BuildInfo{})
	cmd.SetOut(buf)
	cmd.SetIn(strings.NewReader("$ ls\nREADME.md\n"))
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o644))
	cmd.SetArgs([]string{"convert", "-", "--name", "files", "--config", cfgPath})
	t.Cleanup(log.Discard)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "name: files")
	assert.Contains(t, buf.String(), "command: ls")
}

func TestConvertRequiresName(t *testing.T) {
	_, err := execute(t, "convert", "x.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	wrapped := WrapExitError(ExitCommandError, "bad", catalog.ErrInvalid)
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
	assert.ErrorIs(t, wrapped, catalog.ErrInvalid)
	assert.Equal(t, "bad: invalid catalog", wrapped.Error())
}

func TestTerminalNeedsTTY(t *testing.T) {
	if isTerminal(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	_, err := execute(t)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "needs a TTY")
}
