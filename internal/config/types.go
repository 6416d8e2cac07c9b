package config

// Config is the top-level structure loaded from the optional .xchelper.yaml file.
// Every field has a default so a missing file is equivalent to an empty one.
type Config struct {
	Docker        Docker `yaml:"docker"`
	Build         Build  `yaml:"build"`
	S3            S3     `yaml:"s3"`
	Tools         Tools  `yaml:"tools"`
	Notifications bool   `yaml:"notifications"`
}

// Docker holds defaults for commands that run inside a container.
// - Image: image the Swift toolchain runs in (e.g., swift:5.10).
// - Volume: persistent build directory name under .build/ (e.g., linux).
// - RunOptions: extra `docker run` options such as "--rm --name build".
// - ContainerName: appended as --name when RunOptions does not name the container.
// - Swift: swift executable inside the image; tools.swift only applies to the host.
type Docker struct {
	Image         string `yaml:"image"`
	Volume        string `yaml:"volume"`
	RunOptions    string `yaml:"run_options"`
	ContainerName string `yaml:"container_name"`
	Swift         string `yaml:"swift"`
}

// Build holds the default build configuration ("debug" or "release").
type Build struct {
	Configuration string `yaml:"configuration"`
}

// S3 describes where archives are uploaded.
// - CredentialsFile: either an AWS console credentials .csv or a shared credentials file.
// - Key/Secret: static credentials; prefer the XCHELPER_S3_KEY/XCHELPER_S3_SECRET variables.
type S3 struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	CredentialsFile string `yaml:"credentials_file"`
	Key             string `yaml:"key"`
	Secret          string `yaml:"secret"`
}

// Tools holds the paths of the external programs xchelper shells out to.
type Tools struct {
	Swift  string `yaml:"swift"`
	Git    string `yaml:"git"`
	Tar    string `yaml:"tar"`
	Docker string `yaml:"docker"`
}

// Defaults returns the configuration used when nothing else is provided.
func Defaults() Config {
	return Config{
		Docker: Docker{Image: "swift", Swift: "swift"},
		Build:  Build{Configuration: "debug"},
		Tools: Tools{
			Swift:  "swift",
			Git:    "git",
			Tar:    "/usr/bin/tar",
			Docker: "docker",
		},
	}
}
