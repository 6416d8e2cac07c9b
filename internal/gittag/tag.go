// Package gittag parses, orders and increments major.minor.patch release tags.
package gittag

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrTagNotFound is returned when no valid tag exists in a tag list.
var ErrTagNotFound = errors.New("git tag not found")

// Tag is a release version made of three non-negative integers.
type Tag struct {
	Major, Minor, Patch uint64
}

// String joins the components with dots, e.g. "1.2.3".
func (t Tag) String() string {
	return fmt.Sprintf("%d.%d.%d", t.Major, t.Minor, t.Patch)
}

func (t Tag) version() *semver.Version {
	return semver.New(t.Major, t.Minor, t.Patch, "", "")
}

func fromVersion(v semver.Version) Tag {
	return Tag{Major: v.Major(), Minor: v.Minor(), Patch: v.Patch()}
}

// Parse accepts exactly three dot separated integers. Prefixes such as "v",
// pre-release suffixes and short forms like "1.0" are rejected.
func Parse(s string) (Tag, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Tag{}, fmt.Errorf("invalid tag %q: want major.minor.patch", s)
	}
	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Tag{}, fmt.Errorf("invalid tag %q: %w", s, err)
		}
		nums[i] = n
	}
	return Tag{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Compare returns -1, 0 or 1 ordering a and b by major, then minor, then patch.
func Compare(a, b Tag) int {
	return a.version().Compare(b.version())
}

// Less reports whether a orders before b.
func Less(a, b Tag) bool {
	return a.version().LessThan(b.version())
}

// Valid parses every entry of tags, silently dropping malformed ones, and
// returns the result in ascending order.
func Valid(tags []string) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, s := range tags {
		t, err := Parse(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return Less(out[i], out[j]) })
	return out
}

// Largest returns the greatest valid tag in tags.
func Largest(tags []string) (Tag, error) {
	valid := Valid(tags)
	if len(valid) == 0 {
		return Tag{}, fmt.Errorf("%w: %v", ErrTagNotFound, tags)
	}
	return valid[len(valid)-1], nil
}

// SplitLines turns `git tag` output into individual tag names.
func SplitLines(output string) []string {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}
	lines := strings.Split(output, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return lines
}
