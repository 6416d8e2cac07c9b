package helper

import (
	"context"
	"errors"
	"strings"

	"xchelper/internal/gittag"
)

// listTags returns the valid tags of the repository at sourcePath, ascending.
func (h *Helper) listTags(ctx context.Context, sourcePath string) ([]string, error) {
	res, err := h.run(ctx, sourcePath, h.Tools.Git, "tag")
	if failed(res, err) {
		return nil, wrapError(KindGitTag, err, "Error reading git tags: %s", failure(res, err))
	}
	return gittag.SplitLines(res.Stdout), nil
}

func (h *Helper) readTag(ctx context.Context, sourcePath string) (gittag.Tag, error) {
	tags, err := h.listTags(ctx, sourcePath)
	if err != nil {
		return gittag.Tag{}, err
	}
	tag, err := gittag.Largest(tags)
	if err != nil {
		return gittag.Tag{}, wrapError(KindGitTag, err, "%v", err)
	}
	return tag, nil
}

// GitTags returns every valid tag of the repository, ascending.
func (h *Helper) GitTags(ctx context.Context, sourcePath string) ([]gittag.Tag, error) {
	tags, err := h.listTags(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	return gittag.Valid(tags), nil
}

// GitTag returns the largest valid tag of the repository. A repository
// without one yields an error matching gittag.ErrTagNotFound.
func (h *Helper) GitTag(ctx context.Context, sourcePath string) (string, error) {
	tag, err := h.readTag(ctx, sourcePath)
	if err != nil {
		return "", err
	}
	h.Log.Info("Largest tag %s in %s", tag, sourcePath)
	return tag.String(), nil
}

// IncrementGitTag tags the repository with the next version and returns the
// tag read back from git.
func (h *Helper) IncrementGitTag(ctx context.Context, component gittag.Component, sourcePath string) (string, error) {
	current, err := h.readTag(ctx, sourcePath)
	if err != nil {
		return "", err
	}
	next := gittag.Increment(current, component)
	h.Log.Info("Incrementing %s: %s -> %s", component, current, next)

	if err := h.TagRepository(ctx, next.String(), sourcePath); err != nil {
		return "", err
	}
	return h.GitTag(ctx, sourcePath)
}

// TagRepository creates tag at HEAD.
func (h *Helper) TagRepository(ctx context.Context, tag, sourcePath string) error {
	if _, err := gittag.Parse(tag); err != nil {
		return wrapError(KindGitTagParse, err, "%v", err)
	}
	res, err := h.run(ctx, sourcePath, h.Tools.Git, "tag", tag)
	if failed(res, err) {
		return wrapError(KindGitTag, err, "Error tagging git repo: %s", failure(res, err))
	}
	return nil
}

// PushGitTag pushes the current branch and then tag to origin.
func (h *Helper) PushGitTag(ctx context.Context, tag, sourcePath string) error {
	h.Log.LogWithNotification(ctx, "Pushing tag: %s", tag)

	res, err := h.run(ctx, sourcePath, h.Tools.Git, "push", "origin")
	if failed(res, err) {
		return wrapError(KindGitTag, err, "Error pushing git tag: %s", failure(res, err))
	}

	res, err = h.run(ctx, sourcePath, h.Tools.Git, "push", "origin", tag)
	if failed(res, err) {
		return wrapError(KindGitTag, err, "Error pushing git tag: %s", failure(res, err))
	}
	if !strings.Contains(res.Stderr, "new tag") {
		return wrapError(KindGitTag, errors.New(strings.TrimSpace(res.Stderr)), "Error pushing git tag: %s", failure(res, nil))
	}

	h.Log.LogWithNotification(ctx, "Pushed tag: %s", tag)
	return nil
}
