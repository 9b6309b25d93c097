package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ecoshare/internal/cli"
	"github.com/rshade/ecoshare/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "ecoshare", root.Use)

		names := make([]string, 0, len(root.Commands()))
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		assert.Subset(t, names, []string{"impact", "summary", "milestones", "serve", "config"})
	})
}

func TestRun_Help(t *testing.T) {
	t.Setenv("ECOSHARE_HOME", t.TempDir())
	t.Setenv("ECOSHARE_LOG_LEVEL", "error")
	t.Chdir(t.TempDir())

	old := os.Args
	t.Cleanup(func() { os.Args = old })
	os.Args = []string{"ecoshare", "--help"}

	require.NoError(t, run())
}
