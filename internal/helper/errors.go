package helper

import (
	"fmt"
	"strings"

	"xchelper/internal/process"
)

// Kind tags an Error with the operation that failed. A Kind is itself an
// error so callers can match with errors.Is(err, helper.KindGitTag).
type Kind int

const (
	KindClean Kind = iota + 1
	KindUpdatePackages
	KindDockerBuild
	KindSymlinkDependencies
	KindCreateArchive
	KindUploadArchive
	KindGitTagParse
	KindGitTag
	KindCreateXcarchive
	KindXcarchivePlist
	KindUnknownOption
)

var kindNames = map[Kind]string{
	KindClean:               "clean",
	KindUpdatePackages:      "updatePackages",
	KindDockerBuild:         "dockerBuild",
	KindSymlinkDependencies: "symlinkDependencies",
	KindCreateArchive:       "createArchive",
	KindUploadArchive:       "uploadArchive",
	KindGitTagParse:         "gitTagParse",
	KindGitTag:              "gitTag",
	KindCreateXcarchive:     "createXcarchive",
	KindXcarchivePlist:      "xcarchivePlist",
	KindUnknownOption:       "unknownOption",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) Error() string { return k.String() }

// Error is the failure of one helper operation. Message is what the user sees;
// ExitCode is set for dockerBuild errors; Err holds the underlying cause when
// there is one.
type Error struct {
	Kind     Kind
	Message  string
	ExitCode int
	Err      error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Is matches the error's Kind.
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func newError(kind Kind, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

func wrapError(kind Kind, err error, format string, a ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...), Err: err}
}

// UnknownOption reports an unrecognized command line value.
func UnknownOption(format string, a ...any) error {
	return newError(KindUnknownOption, format, a...)
}

// failure returns the diagnostic text of a failed process: its stderr, or
// the launch error when the program never ran.
func failure(res process.Result, err error) string {
	if s := strings.TrimSpace(res.Stderr); s != "" {
		return s
	}
	if err != nil {
		return err.Error()
	}
	if s := strings.TrimSpace(res.Stdout); s != "" {
		return s
	}
	return fmt.Sprintf("exit code %d", res.ExitCode)
}

func failed(res process.Result, err error) bool {
	return err != nil || res.Failed()
}
