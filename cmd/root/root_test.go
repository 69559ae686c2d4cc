package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/paycheck-planner/cmd/root"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "paycheck-planner", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "budget plan")
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"user", "u"},
		{"log-level", ""},
		{"store", ""},
	}
	for _, tt := range tests {
		flag := root.Cmd.PersistentFlags().Lookup(tt.name)
		require.NotNil(t, flag, tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand, tt.name)
	}
}

func TestGetContainer_NotInitialized(t *testing.T) {
	root.SetContainer(nil)
	_, err := root.GetContainer()
	assert.Error(t, err)
}

func TestReadText(t *testing.T) {
	defer func() { root.SharedFlags.Input = "" }()
	cmd := &cobra.Command{}

	text, err := root.ReadText(cmd, []string{"rent", "$1500"})
	require.NoError(t, err)
	assert.Equal(t, "rent $1500", text)

	root.SharedFlags.Input = ""
	_, err = root.ReadText(cmd, nil)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "instruction.txt")
	require.NoError(t, os.WriteFile(file, []byte("  car $600\n"), 0600))
	root.SharedFlags.Input = file
	text, err = root.ReadText(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "car $600", text)

	root.SharedFlags.Input = "-"
	cmd.SetIn(strings.NewReader("groceries $400"))
	text, err = root.ReadText(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "groceries $400", text)
}

func TestOpenOutput(t *testing.T) {
	defer func() { root.SharedFlags.Output = "" }()

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	w, closeFn, err := root.OpenOutput(cmd)
	require.NoError(t, err)
	_, _ = w.Write([]byte("hello"))
	require.NoError(t, closeFn())
	assert.Equal(t, "hello", buf.String())

	root.SharedFlags.Output = filepath.Join(t.TempDir(), "out", "plan.txt")
	w, closeFn, err = root.OpenOutput(cmd)
	require.NoError(t, err)
	_, _ = w.Write([]byte("saved"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(root.SharedFlags.Output)
	require.NoError(t, err)
	assert.Equal(t, "saved", string(data))
}

func TestExecute_MemoryBackend(t *testing.T) {
	t.Setenv("PLANNER_DATA_DIRECTORY", t.TempDir())
	chdirForTest(t, t.TempDir())

	var buf bytes.Buffer
	root.Cmd.SetOut(&buf)
	root.Cmd.SetArgs([]string{"--store", "memory"})
	defer func() {
		root.Cmd.SetArgs(nil)
		root.SharedFlags.Store = ""
	}()

	require.NoError(t, root.Cmd.Execute())
	assert.Contains(t, buf.String(), "paycheck-planner")
}
