// Package processtest provides a scripted process.Runner for tests.
package processtest

import (
	"context"
	"strings"
	"sync"

	"xchelper/internal/process"
)

// Handler produces the outcome of a recorded command.
type Handler func(cmd process.Command) (process.Result, error)

// Runner records every command and answers with the first matching rule,
// falling back to a successful empty Result.
type Runner struct {
	mu       sync.Mutex
	Commands []process.Command
	rules    []rule
}

type rule struct {
	match   string
	handler Handler
}

// On registers handler for commands whose rendered command line contains match.
// Rules are checked in registration order.
func (r *Runner) On(match string, handler Handler) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{match: match, handler: handler})
	return r
}

// Respond is a shortcut for On with a fixed Result.
func (r *Runner) Respond(match string, res process.Result) *Runner {
	return r.On(match, func(process.Command) (process.Result, error) { return res, nil })
}

// Run implements process.Runner.
func (r *Runner) Run(_ context.Context, cmd process.Command) (process.Result, error) {
	r.mu.Lock()
	r.Commands = append(r.Commands, cmd)
	rules := append([]rule(nil), r.rules...)
	r.mu.Unlock()

	line := cmd.String()
	for _, rl := range rules {
		if strings.Contains(line, rl.match) {
			return rl.handler(cmd)
		}
	}
	return process.Result{}, nil
}

// Last returns the most recently recorded command.
func (r *Runner) Last() process.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Commands) == 0 {
		return process.Command{}
	}
	return r.Commands[len(r.Commands)-1]
}

// Lines returns every recorded command line.
func (r *Runner) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		out = append(out, c.String())
	}
	return out
}
