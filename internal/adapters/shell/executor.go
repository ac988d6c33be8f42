// Package shell provides the shell executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/flexgen/internal/core/domain"
	"go.trai.ch/flexgen/internal/core/ports"
	"go.trai.ch/zerr"
)

// EnvPrefix prefixes every configuration key exported to a goal command.
const EnvPrefix = "FLEXGEN_"

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs the execution's command in the project directory.
//
// The command sees the system environment plus one FLEXGEN_<KEY> variable per
// configuration entry and FLEXGEN_EXECUTION_ID. Output goes to the vertex carried
// by ctx, or to the logger when there is none.
func (e *Executor) Execute(ctx context.Context, project *domain.Project, execution *domain.Execution) error {
	if len(execution.Command) == 0 {
		return nil
	}

	name := execution.Command[0]
	args := execution.Command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), execution)

	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // plugin provided command

	// exec.CommandContext sets Args[0] to the resolved path; keep the name as invoked.
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	if project != nil && project.Dir != "" {
		cmd.Dir = project.Dir
	}
	cmd.Env = cmdEnv

	var flush func()
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		cmd.Stdout = vertex.Stdout()
		cmd.Stderr = vertex.Stderr()
		flush = func() {}
	} else {
		stdout := &logWriter{emit: e.logger.Info}
		stderr := &logWriter{emit: e.logger.Warn}
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		flush = func() {
			stdout.Flush()
			stderr.Flush()
		}
	}

	err := cmd.Run()
	flush()
	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(errors.Join(domain.ErrStepExecutionFailed, err), "exit_code", exitCode)
		return zerr.With(err, "command", strings.Join(execution.Command, " "))
	}

	return nil
}

// logWriter forwards complete lines to emit. A trailing partial line is held
// until the next newline or Flush.
type logWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

var _ io.Writer = (*logWriter)(nil)

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// No newline yet; put the fragment back.
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

// resolveEnvironment layers the execution's configuration over the system environment.
func resolveEnvironment(sysEnv []string, execution *domain.Execution) []string {
	envMap := make(map[string]string, len(sysEnv)+len(execution.Configuration)+1)
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for k, v := range execution.Configuration {
		envMap[EnvName(k)] = v
	}
	envMap[EnvPrefix+"EXECUTION_ID"] = execution.ID

	result := make([]string, 0, len(envMap))
	for _, k := range slices.Sorted(maps.Keys(envMap)) {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// EnvName returns the environment variable a configuration key is exported as.
func EnvName(key string) string {
	r := strings.NewReplacer("-", "_", ".", "_")
	return EnvPrefix + strings.ToUpper(r.Replace(key))
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
