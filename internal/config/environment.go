package config

import "os"

// Environment variables Xcode build phases and schemes pass to xchelper.
const (
	EnvProjectName          = "PROJECT"
	EnvProjectDirectory     = "PROJECT_DIR"
	EnvDockerCommandOptions = "DOCKER_COMMAND_OPTIONS"
	EnvDockerImageName      = "DOCKER_IMAGE_NAME"
	EnvDockerContainerName  = "DOCKER_CONTAINER_NAME"
	EnvS3Key                = "XCHELPER_S3_KEY"
	EnvS3Secret             = "XCHELPER_S3_SECRET"
)

// LookupFunc matches os.LookupEnv so tests can supply a fixed environment.
type LookupFunc func(key string) (string, bool)

// ApplyEnvironment overlays the Xcode/Docker environment variables on cfg.
// Variables that are unset or empty leave cfg unchanged.
func ApplyEnvironment(cfg Config, lookup LookupFunc) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&cfg.Docker.Image, EnvDockerImageName)
	set(&cfg.Docker.RunOptions, EnvDockerCommandOptions)
	set(&cfg.Docker.ContainerName, EnvDockerContainerName)
	set(&cfg.S3.Key, EnvS3Key)
	set(&cfg.S3.Secret, EnvS3Secret)
	return cfg
}

// ProjectDirectory returns $PROJECT_DIR, or "." when Xcode did not set it.
func ProjectDirectory(lookup LookupFunc) string {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvProjectDirectory); ok && v != "" {
		return v
	}
	return "."
}
