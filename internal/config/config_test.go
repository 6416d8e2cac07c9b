package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadConfigMissingOptional(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), FileName), true)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false)
	assert.Error(t, err)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(`
docker:
  image: swift:5.10
  volume: linux
  run_options: --rm --name build
  swift: ""
build:
  configuration: release
s3:
  bucket: artifacts
  region: us-east-1
  credentials_file: ~/creds.csv
tools:
  tar: ""
notifications: true
`), 0o644))

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, "swift:5.10", cfg.Docker.Image)
	assert.Equal(t, "linux", cfg.Docker.Volume)
	assert.Equal(t, "--rm --name build", cfg.Docker.RunOptions)
	assert.Equal(t, "swift", cfg.Docker.Swift, "empty value keeps the default")
	assert.Equal(t, "release", cfg.Build.Configuration)
	assert.Equal(t, "artifacts", cfg.S3.Bucket)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "~/creds.csv", cfg.S3.CredentialsFile)
	assert.Equal(t, "/usr/bin/tar", cfg.Tools.Tar, "empty value keeps the default")
	assert.Equal(t, "git", cfg.Tools.Git)
	assert.True(t, cfg.Notifications)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("docker: [unclosed"), 0o644))

	_, err := LoadConfig(path, true)
	assert.Error(t, err)
}

func TestApplyEnvironment(t *testing.T) {
	cfg := ApplyEnvironment(Defaults(), env(map[string]string{
		EnvDockerImageName:      "saltzmanjoelh/swiftubuntu",
		EnvDockerCommandOptions: "--rm",
		EnvDockerContainerName:  "",
		EnvS3Key:                "AKID",
	}))

	assert.Equal(t, "saltzmanjoelh/swiftubuntu", cfg.Docker.Image)
	assert.Equal(t, "--rm", cfg.Docker.RunOptions)
	assert.Empty(t, cfg.Docker.ContainerName)
	assert.Equal(t, "AKID", cfg.S3.Key)
}

func TestProjectDirectory(t *testing.T) {
	assert.Equal(t, "/Users/me/Hello", ProjectDirectory(env(map[string]string{EnvProjectDirectory: "/Users/me/Hello"})))
	assert.Equal(t, ".", ProjectDirectory(env(nil)))
}
