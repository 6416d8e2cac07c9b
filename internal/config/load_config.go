package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the source path when --config is not given.
const FileName = ".xchelper.yaml"

// LoadConfig reads the YAML file at configFile on top of Defaults().
// A missing file is not an error when optional is true; a malformed file always is.
func LoadConfig(configFile string, optional bool) (Config, error) {
	cfg := Defaults()

	raw, err := os.ReadFile(configFile)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	// Decode into the defaulted struct so that keys missing from the file keep their default.
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal %s: %w", configFile, err)
	}

	// Empty strings in the file mean "use the default", not "use nothing".
	def := Defaults()
	fill(&cfg.Docker.Image, def.Docker.Image)
	fill(&cfg.Docker.Swift, def.Docker.Swift)
	fill(&cfg.Build.Configuration, def.Build.Configuration)
	fill(&cfg.Tools.Swift, def.Tools.Swift)
	fill(&cfg.Tools.Git, def.Tools.Git)
	fill(&cfg.Tools.Tar, def.Tools.Tar)
	fill(&cfg.Tools.Docker, def.Tools.Docker)
	return cfg, nil
}

func fill(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}
