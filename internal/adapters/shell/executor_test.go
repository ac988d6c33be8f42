package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flexgen/internal/adapters/shell"
	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/flexgen/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func run(t *testing.T, logger ports.Logger, command []string, configuration map[string]string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	exec := &domain.Execution{ID: "exec-1", Command: command}
	exec.Configure(configuration)
	return dir, shell.NewExecutor(logger).Execute(context.Background(), &domain.Project{Dir: dir}, exec)
}

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	gomock.InOrder(
		mockLogger.EXPECT().Info("line1"),
		mockLogger.EXPECT().Info("line2"),
	)

	_, err := run(t, mockLogger, []string{"sh", "-c", "echo line1; echo line2"}, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	// The writer buffers until a newline.
	mockLogger.EXPECT().Info("part1part2").Times(1)

	_, err := run(t, mockLogger, []string{"sh", "-c", "printf part1; sleep 0.1; echo part2"}, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_TrailingPartialLineIsFlushed(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("no newline").Times(1)

	_, err := run(t, mockLogger, []string{"sh", "-c", "printf 'no newline'"}, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_StderrIsLoggedAsWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("oops").Times(1)

	_, err := run(t, mockLogger, []string{"sh", "-c", "echo oops >&2"}, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_ConfigurationEnvironment(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	mockLogger.EXPECT().Info("gen").Times(1)
	mockLogger.EXPECT().Info("java").Times(1)
	mockLogger.EXPECT().Info("exec-1").Times(1)

	_, err := run(t, mockLogger,
		[]string{"sh", "-c", "echo $FLEXGEN_OUTPUT_DIR; echo $FLEXGEN_TARGET_LANG; echo $FLEXGEN_EXECUTION_ID"},
		map[string]string{"output-dir": "gen", "target.lang": "java"},
	)
	require.NoError(t, err)
}

func TestExecutor_Execute_RunsInProjectDir(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	dir, err := run(t, mockLogger, []string{"sh", "-c", "echo generated > out.txt"}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "generated\n", string(data))
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	_, err := run(t, mockLogger, []string{"nonexistent-command-xyz123"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStepExecutionFailed)
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	_, err := run(t, mockLogger, []string{"sh", "-c", "exit 42"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStepExecutionFailed)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 42, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	_, err := run(t, mockLogger, nil, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_AbsolutePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("test").Times(1)

	_, err := run(t, mockLogger, []string{"/bin/sh", "-c", "echo test"}, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_WithVertex(t *testing.T) {
	ctrl := gomock.NewController(t)

	// The logger is not used when a vertex is present.
	mockLogger := mocks.NewMockLogger(ctrl)
	mockVertex := mocks.NewMockVertex(ctrl)

	var stdoutBuf, stderrBuf bytes.Buffer
	mockVertex.EXPECT().Stdout().Return(&stdoutBuf).AnyTimes()
	mockVertex.EXPECT().Stderr().Return(&stderrBuf).AnyTimes()

	// ANSI sequences pass through untouched.
	ansiRed := "\033[31m"
	exec := &domain.Execution{
		ID:      "exec-1",
		Command: []string{"sh", "-c", "printf '" + ansiRed + "hello to stdout\n'; echo hello to stderr >&2"},
	}

	ctx := ports.ContextWithVertex(context.Background(), mockVertex)
	err := shell.NewExecutor(mockLogger).Execute(ctx, &domain.Project{Dir: t.TempDir()}, exec)
	require.NoError(t, err)

	assert.True(t, strings.Contains(stdoutBuf.String(), ansiRed+"hello to stdout"))
	assert.Contains(t, stderrBuf.String(), "hello to stderr")
}

func TestEnvName(t *testing.T) {
	tests := map[string]string{
		"output":        "FLEXGEN_OUTPUT",
		"output-dir":    "FLEXGEN_OUTPUT_DIR",
		"target.lang":   "FLEXGEN_TARGET_LANG",
		"Mixed-Case.v2": "FLEXGEN_MIXED_CASE_V2",
	}
	for key, want := range tests {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, want, shell.EnvName(key))
		})
	}
}
