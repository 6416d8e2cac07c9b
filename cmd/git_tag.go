package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"xchelper/internal/gittag"
	"xchelper/internal/helper"
)

func newGitTagCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "git-tag",
		Short: "Read, increment and push major.minor.patch tags",
	}
	cmd.AddCommand(
		newGitTagGetCmd(o),
		newGitTagListCmd(o),
		newGitTagIncrementCmd(o),
		newGitTagPushCmd(o),
	)
	return cmd
}

func newGitTagGetCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "get",
		Short:       "Print the largest tag",
		Annotations: titled("Git Tag"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := o.helper(cmd).GitTag(o.context(cmd), o.sourcePath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	}
}

func newGitTagListCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "list",
		Short:       "List every valid tag in ascending order",
		Annotations: titled("Git Tag"),
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := o.helper(cmd).GitTags(o.context(cmd), o.sourcePath)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Tag", "Major", "Minor", "Patch"})
			for _, tag := range tags {
				t.AppendRow(table.Row{tag.String(), tag.Major, tag.Minor, tag.Patch})
			}
			t.SetStyle(table.StyleRounded)
			t.Render()
			return nil
		},
	}
}

func newGitTagIncrementCmd(o *options) *cobra.Command {
	var push bool
	component := gittag.Patch

	cmd := &cobra.Command{
		Use:         "increment <major|minor|patch>",
		Short:       "Tag HEAD with the next version",
		Annotations: titled("Increment Git Tag"),
		Args:        cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			given := cmd.Flags().Changed("component")
			switch {
			case len(args) == 1 && given:
				return helper.UnknownOption("component given both as argument %q and --component", args[0])
			case len(args) == 1:
				if err := component.Set(args[0]); err != nil {
					return helper.UnknownOption("%v", err)
				}
			case !given:
				return helper.UnknownOption("missing component: want major, minor or patch")
			}

			h := o.helper(cmd)
			ctx := o.context(cmd)
			tag, err := h.IncrementGitTag(ctx, component, o.sourcePath)
			if err != nil {
				return err
			}
			if push {
				if err := h.PushGitTag(ctx, tag, o.sourcePath); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	}
	cmd.Flags().Var(&component, "component", "major, minor or patch (instead of the argument)")
	cmd.Flags().BoolVar(&push, "push", false, "Push the new tag to origin")
	return cmd
}

func newGitTagPushCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:         "push [tag]",
		Short:       "Push a tag (default the largest) to origin",
		Annotations: titled("Push Git Tag"),
		Args:        cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := o.helper(cmd)
			ctx := o.context(cmd)

			var tag string
			if len(args) == 1 {
				tag = args[0]
			} else {
				var err error
				if tag, err = h.GitTag(ctx, o.sourcePath); err != nil {
					return err
				}
			}
			return h.PushGitTag(ctx, tag, o.sourcePath)
		},
	}
}
