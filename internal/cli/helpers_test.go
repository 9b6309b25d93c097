package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoshare/internal/cli"
	"github.com/rshade/ecoshare/internal/config"
)

// setupCLITest isolates the ecoshare home, working directory and global
// config for one test and returns the home directory.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvOutputFormat, "")
	t.Setenv("NO_COLOR", "1")
	t.Chdir(t.TempDir())
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// executeCmd runs the root command with args and returns stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content to name inside a fresh temp dir and returns the
// path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// pendingTransactions holds two donations from alice and one from bob.
//
//	t1: 2 kg meat      -> 2 kg waste, 14 kg CO2
//	t2: 2 furniture    -> 4 kg waste, 100 kg CO2
//	t3: 4 x 1 kg dairy -> 4 kg waste, 10 kg CO2
const pendingTransactions = `[
  {"id": "t1", "donor": "alice", "kind": "food", "category": "meat", "weightKg": 2},
  {"id": "t2", "donor": "bob", "kind": "non-food", "category": "furniture", "quantity": 2},
  {"id": "t3", "donor": "alice", "kind": "food", "category": "dairy", "weightKg": 1, "quantity": 4}
]`

// completedFile runs impact complete over pendingTransactions and returns the
// path of the completed output.
func completedFile(t *testing.T) string {
	t.Helper()
	in := writeFile(t, "pending.json", pendingTransactions)
	out := filepath.Join(t.TempDir(), "completed.json")
	_, _, err := executeCmd(t, "impact", "complete", "--input", in, "--out", out)
	require.NoError(t, err)
	return out
}
