package cmd

import (
	"github.com/spf13/cobra"
)

func newUpdateMacOSPackagesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "update-macos-packages",
		Short:       "Run swift package update on the host",
		Annotations: titled("Update macOS Packages"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.helper(cmd).UpdateMacOSPackages(o.context(cmd), o.sourcePath)
		},
	}
}

func newUpdateDockerPackagesCmd(o *options) *cobra.Command {
	var image, volume string

	cmd := &cobra.Command{
		Use:         "update-docker-packages",
		Short:       "Run swift package update inside a Docker container",
		Annotations: titled("Update Docker Packages"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.helper(cmd).UpdateDockerPackages(o.context(cmd), o.sourcePath,
				orDefault(image, o.cfg.Docker.Image), orDefault(volume, o.cfg.Docker.Volume))
		},
	}
	cmd.Flags().StringVarP(&image, "image", "i", "", "Docker image (default $DOCKER_IMAGE_NAME or docker.image)")
	cmd.Flags().StringVar(&volume, "volume", "", "Persistent .build volume name (default docker.volume)")
	return cmd
}

func newGenerateXcodeProjectCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "generate-xcodeproj",
		Short:       "Run swift package generate-xcodeproj",
		Annotations: titled("Generate Xcode Project"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.helper(cmd).GenerateXcodeProject(o.context(cmd), o.sourcePath)
		},
	}
}

func newSymlinkDependenciesCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "symlink-dependencies",
		Short:       "Give checked out dependencies stable names and fix the Xcode project",
		Annotations: titled("Symlink Dependencies"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.helper(cmd).SymlinkDependencies(o.context(cmd), o.sourcePath)
		},
	}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
