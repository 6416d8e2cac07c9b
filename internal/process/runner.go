// Package process runs external programs synchronously and captures their output.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Command describes a single program invocation.
type Command struct {
	Path string   // program name or absolute path
	Args []string // arguments, without the program itself
	Dir  string   // working directory; empty means the current one
	Env  []string // extra KEY=value pairs appended to the inherited environment
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Result is the captured outcome of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Failed reports whether the process exited non-zero.
func (r Result) Failed() bool {
	return r.ExitCode != 0
}

// Runner abstracts process execution so callers can substitute fakes in tests.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner executes commands on the local host through os/exec.
type ExecRunner struct {
	// Output, when set, receives stdout and stderr lines while the process runs,
	// each line prefixed with Prefix.
	Output io.Writer
	Prefix string
}

// Run starts the command and blocks until it exits. A non-zero exit is not an
// error: it is reported through Result.ExitCode. The returned error is only set
// when the program could not be started or waited on; in that case ExitCode is
// 127 for a missing binary and 1 otherwise.
func (r ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(cmd.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	var mu sync.Mutex
	cmd.Stdout = r.tee(&stdout, &mu)
	cmd.Stderr = r.tee(&stderr, &mu)

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = 1
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		res.ExitCode = 127
	}
	if res.Stderr == "" {
		res.Stderr = err.Error()
	}
	return res, fmt.Errorf("failed to run %s: %w", c.Path, err)
}

func (r ExecRunner) tee(buf *bytes.Buffer, mu *sync.Mutex) io.Writer {
	if r.Output == nil {
		return buf
	}
	return io.MultiWriter(buf, &prefixWriter{w: r.Output, prefix: r.Prefix, mu: mu})
}

// prefixWriter writes complete lines to w, each starting with prefix.
type prefixWriter struct {
	w       io.Writer
	prefix  string
	mu      *sync.Mutex
	pending []byte
}

func (p *prefixWriter) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pending = append(p.pending, b...)
	for {
		i := bytes.IndexByte(p.pending, '\n')
		if i < 0 {
			break // incomplete line, keep it for the next write
		}
		if err := p.writeLine(p.pending[:i]); err != nil {
			return 0, err
		}
		p.pending = p.pending[i+1:]
	}
	return len(b), nil
}

func (p *prefixWriter) writeLine(line []byte) error {
	if p.prefix != "" {
		_, err := fmt.Fprintf(p.w, "%s: %s\n", p.prefix, line)
		return err
	}
	_, err := fmt.Fprintf(p.w, "%s\n", line)
	return err
}
