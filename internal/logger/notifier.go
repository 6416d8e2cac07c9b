package logger

import (
	"context"
	"fmt"
	"strings"

	"xchelper/internal/process"
)

// OSAScriptNotifier posts macOS notifications with `osascript`.
type OSAScriptNotifier struct {
	Runner process.Runner
	Path   string // defaults to osascript
}

// Notify displays message in Notification Center under title.
func (n OSAScriptNotifier) Notify(ctx context.Context, title, message string) error {
	path := n.Path
	if path == "" {
		path = "osascript"
	}
	script := fmt.Sprintf("display notification %s with title %s", appleScriptString(message), appleScriptString(title))
	res, err := n.Runner.Run(ctx, process.Command{Path: path, Args: []string{"-e", script}})
	if err != nil {
		return err
	}
	if res.Failed() {
		return fmt.Errorf("osascript exited %d: %s", res.ExitCode, strings.TrimSpace(res.Stderr))
	}
	return nil
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
