package gittag

import "fmt"

// Component selects which part of a Tag to increment.
type Component int

const (
	Major Component = iota
	Minor
	Patch
)

// ParseComponent maps "major", "minor" and "patch" to a Component.
func ParseComponent(s string) (Component, error) {
	switch s {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	}
	return 0, fmt.Errorf("unknown tag component %q: want major, minor or patch", s)
}

func (c Component) String() string {
	switch c {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	}
	return fmt.Sprintf("Component(%d)", int(c))
}

// Set implements pflag.Value.
func (c *Component) Set(s string) error {
	v, err := ParseComponent(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Type implements pflag.Value.
func (c *Component) Type() string {
	return "component"
}

// Increment bumps component by one and resets every less significant
// component to zero: 1.0.3 major -> 2.0.0, minor -> 1.1.0, patch -> 1.0.4.
func Increment(t Tag, c Component) Tag {
	v := t.version()
	switch c {
	case Major:
		return fromVersion(v.IncMajor())
	case Minor:
		return fromVersion(v.IncMinor())
	default:
		return fromVersion(v.IncPatch())
	}
}
