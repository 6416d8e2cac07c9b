package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"xchelper/internal/config"
	"xchelper/internal/docker"
	"xchelper/internal/helper"
	"xchelper/internal/logger"
	"xchelper/internal/process"
	"xchelper/internal/upload"
)

// options carries the global flags and everything a command needs once
// PersistentPreRunE has resolved them. One value is created per invocation.
type options struct {
	debug      bool   // --debug
	notify     bool   // --notify
	configPath string // --config/-c
	sourcePath string // --source-path/-s

	lookup config.LookupFunc
	cfg    config.Config
	log    *logger.Logger

	// runner executes subprocesses; nil means the real process.ExecRunner.
	runner   process.Runner
	uploader upload.Uploader
}

func newOptions() *options {
	return &options{lookup: os.LookupEnv}
}

// titled labels a command; the title becomes the logger category.
func titled(title string) map[string]string {
	return map[string]string{"title": title}
}

// newRootCmd builds the xchelper command tree around o.
func newRootCmd(o *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xchelper",
		Short: "Build, package and release Swift packages from Xcode",

		SilenceErrors: true,
		SilenceUsage:  true,

		// Resolve the source path and config, then create the logger for this command.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&o.notify, "notify", false, "Post macOS notifications for progress messages")
	rootCmd.PersistentFlags().StringVarP(&o.configPath, "config", "c", "", "Path to configuration file (default <source-path>/"+config.FileName+")")
	rootCmd.PersistentFlags().StringVarP(&o.sourcePath, "source-path", "s", "", "Swift package directory (default $PROJECT_DIR or .)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return helper.UnknownOption("%v", err)
	})

	rootCmd.AddCommand(
		newUpdateMacOSPackagesCmd(o),
		newUpdateDockerPackagesCmd(o),
		newGenerateXcodeProjectCmd(o),
		newDockerBuildCmd(o),
		newCleanCmd(o),
		newSymlinkDependenciesCmd(o),
		newCreateArchiveCmd(o),
		newUploadArchiveCmd(o),
		newGitTagCmd(o),
		newCreateXcarchiveCmd(o),
		newInspectArchiveCmd(o),
	)
	return rootCmd
}

func (o *options) setup(cmd *cobra.Command) error {
	if o.sourcePath == "" {
		o.sourcePath = config.ProjectDirectory(o.lookup)
	}
	abs, err := filepath.Abs(o.sourcePath)
	if err != nil {
		return err
	}
	o.sourcePath = abs

	configFile, optional := o.configPath, false
	if configFile == "" {
		configFile, optional = filepath.Join(o.sourcePath, config.FileName), true
	}
	cfg, err := config.LoadConfig(configFile, optional)
	if err != nil {
		return err
	}
	o.cfg = config.ApplyEnvironment(cfg, o.lookup)

	title := cmd.Annotations["title"]
	if title == "" {
		title = cmd.Name()
	}
	logOpts := []logger.Option{logger.WithOutput(cmd.ErrOrStderr()), logger.WithDebug(o.debug)}
	if o.notify || o.cfg.Notifications {
		logOpts = append(logOpts, logger.WithNotifier(logger.OSAScriptNotifier{Runner: o.quietRunner()}))
	}
	o.log = logger.New(title, logOpts...)
	o.log.Debug("Source path: %s", o.sourcePath)
	return nil
}

func (o *options) quietRunner() process.Runner {
	if o.runner != nil {
		return o.runner
	}
	return process.ExecRunner{}
}

// helper wires a Helper for cmd. Container output streams to the command's
// stdout so Xcode can pick up compiler diagnostics.
func (o *options) helper(cmd *cobra.Command) *helper.Helper {
	stream := o.runner
	if stream == nil {
		stream = process.ExecRunner{Output: cmd.OutOrStdout()}
	}

	h := helper.New(o.quietRunner(), o.log)
	h.Docker = docker.CLI{Runner: stream, Path: o.cfg.Tools.Docker}
	h.Tools = helper.Tools{
		Swift:          o.cfg.Tools.Swift,
		Git:            o.cfg.Tools.Git,
		Tar:            o.cfg.Tools.Tar,
		ContainerSwift: o.cfg.Docker.Swift,
	}
	if o.uploader != nil {
		h.Uploader = o.uploader
	}
	return h
}

func (o *options) context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute runs the command line and exits with status 1 on failure, printing
// the error in red.
func Execute() {
	if err := newRootCmd(newOptions()).Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
