package helper

import (
	"fmt"
	"strings"
)

// BuildConfiguration is the SwiftPM build configuration.
type BuildConfiguration int

const (
	Debug BuildConfiguration = iota
	Release
)

// AllBuildConfigurations lists every configuration, debug first.
var AllBuildConfigurations = []BuildConfiguration{Debug, Release}

// ParseBuildConfiguration maps "release" to Release and anything else to Debug.
func ParseBuildConfiguration(s string) BuildConfiguration {
	if s == "release" {
		return Release
	}
	return Debug
}

func (c BuildConfiguration) String() string {
	if c == Release {
		return "release"
	}
	return "debug"
}

// Set implements pflag.Value. Unlike ParseBuildConfiguration it rejects
// values other than debug and release.
func (c *BuildConfiguration) Set(s string) error {
	switch s {
	case "debug":
		*c = Debug
	case "release":
		*c = Release
	default:
		return UnknownOption("unknown build configuration %q: want debug or release", s)
	}
	return nil
}

// Type implements pflag.Value.
func (c *BuildConfiguration) Type() string {
	return "configuration"
}

// BuildDirectory returns "<sourcePath>/.build/" whether or not sourcePath
// ends with a slash.
func (c BuildConfiguration) BuildDirectory(sourcePath string) string {
	if strings.HasSuffix(sourcePath, "/") {
		return sourcePath + ".build/"
	}
	return sourcePath + "/.build/"
}

// YAMLPath returns the SwiftPM build description for this configuration,
// e.g. "<sourcePath>/.build/debug.yaml".
func (c BuildConfiguration) YAMLPath(sourcePath string) string {
	return fmt.Sprintf("%s%s.yaml", c.BuildDirectory(sourcePath), c)
}
