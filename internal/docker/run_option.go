// Package docker drives the Docker CLI for one-shot `docker run` builds.
package docker

import (
	"fmt"
	"strings"
)

// RunOption is a single `docker run` option rendered to CLI arguments.
type RunOption interface {
	Args() []string
}

// Volume bind-mounts Source on the host to Destination in the container.
type Volume struct {
	Source      string
	Destination string
}

func (v Volume) Args() []string {
	return []string{"-v", fmt.Sprintf("%s:%s", v.Source, v.Destination)}
}

// WorkingDirectory sets the directory the container command starts in.
type WorkingDirectory string

func (w WorkingDirectory) Args() []string {
	return []string{"--workdir", string(w)}
}

// ContainerName names the container.
type ContainerName string

func (n ContainerName) Args() []string {
	return []string{"--name", string(n)}
}

// RemoveWhenDone removes the container after the command exits.
type RemoveWhenDone struct{}

func (RemoveWhenDone) Args() []string {
	return []string{"--rm"}
}

// Raw passes arguments through unchanged for options xchelper does not model.
type Raw []string

func (r Raw) Args() []string {
	return []string(r)
}

// Flatten renders options in order.
func Flatten(opts []RunOption) []string {
	var out []string
	for _, o := range opts {
		out = append(out, o.Args()...)
	}
	return out
}

// ContainerToRemove returns the container name that must be removed before a
// run, which is the case when opts ask for --rm and also name the container.
// A container left behind by an interrupted run would otherwise block the name.
func ContainerToRemove(opts []RunOption) (string, bool) {
	var remove bool
	var name string
	for _, o := range opts {
		switch v := o.(type) {
		case RemoveWhenDone:
			remove = true
		case ContainerName:
			name = string(v)
		}
	}
	if !remove || name == "" {
		return "", false
	}
	return name, true
}

// ParseRunOptions parses a whitespace separated options string such as
// "--rm --name build -v /a:/b". Unknown options are kept as Raw.
func ParseRunOptions(s string) ([]RunOption, error) {
	fields := strings.Fields(s)
	var opts []RunOption
	for i := 0; i < len(fields); i++ {
		f := fields[i]
		key, inline, hasInline := strings.Cut(f, "=")
		value := func() (string, error) {
			if hasInline {
				return inline, nil
			}
			if i+1 >= len(fields) {
				return "", fmt.Errorf("docker option %s requires a value", key)
			}
			i++
			return fields[i], nil
		}

		switch key {
		case "--rm":
			opts = append(opts, RemoveWhenDone{})
		case "--name":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts = append(opts, ContainerName(v))
		case "-w", "--workdir":
			v, err := value()
			if err != nil {
				return nil, err
			}
			opts = append(opts, WorkingDirectory(v))
		case "-v", "--volume":
			v, err := value()
			if err != nil {
				return nil, err
			}
			src, dst, ok := strings.Cut(v, ":")
			if !ok {
				return nil, fmt.Errorf("invalid volume %q: want source:destination", v)
			}
			opts = append(opts, Volume{Source: src, Destination: dst})
		default:
			opts = append(opts, Raw{f})
		}
	}
	return opts, nil
}
