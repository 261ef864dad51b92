package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// locatorsDir holds six valid definitions shared with the locator package.
var locatorsDir = filepath.Join("..", "locator", "testdata", "locators")

// writeDefinitions writes a single CUE file into a fresh directory.
func writeDefinitions(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	writeDefinitionsTo(t, dir, body)
	return dir
}

func writeDefinitionsTo(t *testing.T, dir, body string) {
	t.Helper()
	content := "package locators\n\n" + body
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locators.cue"), []byte(content), 0644))
}

// execute runs cmd with args and returns stdout and stderr.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
