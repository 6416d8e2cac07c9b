package helper

import (
	"context"
	"path/filepath"

	"xchelper/internal/upload"
)

// UploadArchive puts a local archive into an S3 bucket.
func (h *Helper) UploadArchive(ctx context.Context, req upload.Request) (upload.Result, error) {
	h.Log.LogWithNotification(ctx, "Uploading archive: %s", filepath.Base(req.Archive))

	res, err := h.Uploader.Upload(ctx, req)
	if err != nil {
		return upload.Result{}, wrapError(KindUploadArchive, err, "Error uploading archive: %v", err)
	}

	h.Log.LogWithNotification(ctx, "Archive uploaded to %s", res.Location)
	return res, nil
}
