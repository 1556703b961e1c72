package queries

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"shopx-support-console/internal/gqlclient"
)

// AttachImagePayload converts a local image referenced by the
// "imagePath" variable into the transportable upload payload the
// backend expects: {filename, mimeType, base64Data} with a data-URL
// encoded body. Variables without imagePath pass through untouched.
//
// This is the one file-read suspension point of the pipeline; it runs
// as a client-side pre-process hook so server-side callers never pay
// for it.
func AttachImagePayload(ctx context.Context, vars gqlclient.Variables) (gqlclient.Variables, error) {
	path, _ := vars["imagePath"].(string)
	if path == "" {
		return vars, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", filepath.Base(path), err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(b)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	out := make(gqlclient.Variables, len(vars))
	for k, v := range vars {
		if k == "imagePath" {
			continue
		}
		out[k] = v
	}
	out["image"] = map[string]any{
		"filename":   filepath.Base(path),
		"mimeType":   mimeType,
		"base64Data": "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(b),
	}
	return out, nil
}
