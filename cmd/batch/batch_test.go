package batch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/paycheck-planner/cmd/root"
	"fjacquet/paycheck-planner/internal/config"
	"fjacquet/paycheck-planner/internal/container"
	"fjacquet/paycheck-planner/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const instructions = `id,text
a,I got $6000 for my paycheck. Allocate $1500 to rent and the rest to savings.
b,nothing useful here

c,$600 for car payment
`

func setupContainer(t *testing.T, env map[string]string) *container.Container {
	t.Helper()
	chdirForTest(t, t.TempDir())
	t.Setenv("PLANNER_DATA_DIRECTORY", t.TempDir())
	t.Setenv("PLANNER_STORE_BACKEND", "memory")
	for k, v := range env {
		t.Setenv(k, v)
	}

	cfg, err := config.InitializeConfig()
	require.NoError(t, err)
	c, err := container.NewContainerWithLogger(cfg, logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(func() {
		root.SetContainer(nil)
		_ = c.Close()
	})
	return c
}

func run(t *testing.T, input string) (string, string, error) {
	t.Helper()
	defer func() { personalize = true }()

	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := batchFunc(cmd, nil)
	return out.String(), errOut.String(), err
}

func TestBatchFunc(t *testing.T) {
	setupContainer(t, nil)

	out, stats, err := run(t, instructions)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "id,text,income,allocations,total,confidence,needs_review,suggestions", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "a,"))
	assert.Contains(t, lines[1], "6000.00,housing=1500;savings=4500,6000.00,")
	assert.True(t, strings.HasPrefix(lines[2], "b,"))
	assert.Contains(t, lines[2], ",true,")
	assert.True(t, strings.HasPrefix(lines[3], "c,"))
	assert.Contains(t, lines[3], "car=600")

	assert.Contains(t, stats, "Parsed 3 instructions")
	assert.Contains(t, stats, "1 empty")
}

func TestBatchFunc_NeverLearns(t *testing.T) {
	c := setupContainer(t, nil)

	_, _, err := run(t, instructions)
	require.NoError(t, err)

	e := c.OpenEngine(context.Background(), "")
	assert.Empty(t, e.Pattern().InputHistory)
}

func TestBatchFunc_FileOutput(t *testing.T) {
	setupContainer(t, map[string]string{"PLANNER_LEARNING_ENABLED": "false"})

	dir := t.TempDir()
	input := filepath.Join(dir, "in.csv")
	output := filepath.Join(dir, "out", "results.csv")
	require.NoError(t, os.WriteFile(input, []byte(instructions), 0600))

	root.SharedFlags.Input, root.SharedFlags.Output = input, output
	defer func() { root.SharedFlags.Input, root.SharedFlags.Output = "", "" }()

	out, _, err := run(t, "")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "car=600")
}

func TestBatchFunc_MissingTextColumn(t *testing.T) {
	setupContainer(t, nil)

	_, _, err := run(t, "id,instruction\na,rent $1500\n")
	assert.ErrorContains(t, err, "text")
}
