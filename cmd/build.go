package cmd

import (
	"github.com/spf13/cobra"

	"xchelper/internal/docker"
	"xchelper/internal/helper"
)

func newDockerBuildCmd(o *options) *cobra.Command {
	var (
		image, volume, runOptions, containerName string
		clean                                    bool
	)
	configuration := helper.Debug

	cmd := &cobra.Command{
		Use:         "docker-build",
		Short:       "Build the package inside a Docker container",
		Annotations: titled("Docker Build"),
		Args:        cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("build-configuration") {
				configuration = helper.ParseBuildConfiguration(o.cfg.Build.Configuration)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := docker.ParseRunOptions(orDefault(runOptions, o.cfg.Docker.RunOptions))
			if err != nil {
				return helper.UnknownOption("%v", err)
			}
			if name := orDefault(containerName, o.cfg.Docker.ContainerName); name != "" && !named(opts) {
				opts = append(opts, docker.ContainerName(name))
			}

			h := o.helper(cmd)
			ctx := o.context(cmd)
			if clean {
				if err := h.CleanIfNeeded(ctx, o.sourcePath, configuration); err != nil {
					return err
				}
			}
			return h.DockerBuild(ctx, helper.BuildRequest{
				SourcePath:    o.sourcePath,
				Image:         orDefault(image, o.cfg.Docker.Image),
				Configuration: configuration,
				VolumeName:    orDefault(volume, o.cfg.Docker.Volume),
				RunOptions:    opts,
			})
		},
	}
	cmd.Flags().VarP(&configuration, "build-configuration", "b", "debug or release (default build.configuration)")
	cmd.Flags().StringVarP(&image, "image", "i", "", "Docker image (default $DOCKER_IMAGE_NAME or docker.image)")
	cmd.Flags().StringVar(&volume, "volume", "", "Persistent .build volume name (default docker.volume)")
	cmd.Flags().StringVar(&runOptions, "run-options", "", "Extra docker run options (default $DOCKER_COMMAND_OPTIONS)")
	cmd.Flags().StringVar(&containerName, "container-name", "", "Container name (default $DOCKER_CONTAINER_NAME)")
	cmd.Flags().BoolVar(&clean, "clean", false, "Clean first when the build directory holds macOS artifacts")
	return cmd
}

func named(opts []docker.RunOption) bool {
	for _, o := range opts {
		if _, ok := o.(docker.ContainerName); ok {
			return true
		}
	}
	return false
}

func newCleanCmd(o *options) *cobra.Command {
	var ifNeeded bool
	configuration := helper.Debug

	cmd := &cobra.Command{
		Use:         "clean",
		Short:       "Run swift package clean",
		Annotations: titled("Clean"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := o.helper(cmd)
			if ifNeeded {
				if !cmd.Flags().Changed("build-configuration") {
					configuration = helper.ParseBuildConfiguration(o.cfg.Build.Configuration)
				}
				return h.CleanIfNeeded(o.context(cmd), o.sourcePath, configuration)
			}
			return h.Clean(o.context(cmd), o.sourcePath)
		},
	}
	cmd.Flags().BoolVar(&ifNeeded, "if-needed", false, "Only clean when the build directory holds macOS artifacts")
	cmd.Flags().VarP(&configuration, "build-configuration", "b", "Configuration checked by --if-needed")
	return cmd
}
