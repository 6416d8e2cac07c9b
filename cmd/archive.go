package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"xchelper/internal/archive"
	"xchelper/internal/config"
	"xchelper/internal/upload"
)

func newCreateArchiveCmd(o *options) *cobra.Command {
	var flat bool

	cmd := &cobra.Command{
		Use:         "create-archive <archive> <path>...",
		Short:       "Create a gzipped tarball",
		Annotations: titled("Create Archive"),
		Args:        cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.helper(cmd).CreateArchive(o.context(cmd), args[0], args[1:], flat)
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "Store every path at the archive root under its base name")
	return cmd
}

func newUploadArchiveCmd(o *options) *cobra.Command {
	var req upload.Request

	cmd := &cobra.Command{
		Use:         "upload-archive <archive>",
		Short:       "Upload an archive to S3",
		Annotations: titled("Upload Archive"),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Archive = args[0]
			req.Bucket = orDefault(req.Bucket, o.cfg.S3.Bucket)
			req.Region = orDefault(req.Region, o.cfg.S3.Region)
			req.Credentials.File = orDefault(req.Credentials.File, o.cfg.S3.CredentialsFile)
			req.Credentials.Key = orDefault(req.Credentials.Key, o.cfg.S3.Key)
			req.Credentials.Secret = orDefault(req.Credentials.Secret, o.cfg.S3.Secret)

			s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(cmd.ErrOrStderr()))
			s.Color("yellow") //nolint:errcheck
			s.Suffix = " Uploading " + filepath.Base(req.Archive)
			s.Start()
			res, err := o.helper(cmd).UploadArchive(o.context(cmd), req)
			s.Stop()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Location)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Bucket, "bucket", "", "S3 bucket (default s3.bucket)")
	cmd.Flags().StringVar(&req.Region, "region", "", "S3 region (default s3.region)")
	cmd.Flags().StringVar(&req.Key, "object-key", "", "Object key (default the archive file name)")
	cmd.Flags().StringVar(&req.Credentials.File, "credentials", "", "Credentials .csv or shared credentials file")
	cmd.Flags().StringVar(&req.Credentials.Key, "access-key", "", "Access key ID (default $"+config.EnvS3Key+")")
	cmd.Flags().StringVar(&req.Credentials.Secret, "secret-key", "", "Secret access key (default $"+config.EnvS3Secret+")")
	return cmd
}

func newCreateXcarchiveCmd(o *options) *cobra.Command {
	var dir, scheme string

	cmd := &cobra.Command{
		Use:         "create-xcarchive <binary>",
		Short:       "Package a built binary as an .xcarchive for the Xcode organizer",
		Annotations: titled("Create Xcarchive"),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				dir = filepath.Join(home, "Library", "Developer", "Xcode", "Archives")
			}
			if scheme == "" {
				if project, ok := o.lookup(config.EnvProjectName); ok && project != "" {
					scheme = project
				} else {
					scheme = filepath.Base(args[0])
				}
			}

			path, err := o.helper(cmd).CreateXcarchive(o.context(cmd), dir, args[0], scheme)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "archive-dir", "", "Archives directory (default ~/Library/Developer/Xcode/Archives)")
	cmd.Flags().StringVar(&scheme, "scheme", "", "Scheme name (default $PROJECT or the binary name)")
	return cmd
}

func newInspectArchiveCmd(o *options) *cobra.Command {
	var extractTo string

	cmd := &cobra.Command{
		Use:         "inspect-archive <archive>",
		Short:       "List the entries of an archive",
		Annotations: titled("Inspect Archive"),
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := archive.Detect(args[0])
			if err != nil {
				return err
			}
			entries, err := archive.List(args[0])
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Name", "Type", "Mode", "Size"})
			for _, e := range entries {
				kind := "file"
				if e.IsDir {
					kind = "dir"
				}
				t.AppendRow(table.Row{e.Name, kind, e.Mode.String(), e.Size})
			}
			top := archive.TopLevel(entries)
			t.AppendFooter(table.Row{fmt.Sprintf("%d entries, %d top level", len(entries), len(top)), format.String(), "", ""})
			t.SetStyle(table.StyleRounded)
			t.Render()

			if extractTo != "" {
				dest, err := archive.Extract(args[0], extractTo)
				if err != nil {
					return err
				}
				o.log.Info("Extracted to %s", dest)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&extractTo, "extract-to", "", "Also extract the archive into this directory")
	return cmd
}
