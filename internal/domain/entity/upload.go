package entity

import "strings"

// FallbackPathPrefix marks an upload that was encoded locally instead of stored remotely.
// Handles under this prefix are never deleted remotely.
const FallbackPathPrefix = "base64/"

// Upload folders accepted by the pipeline.
const (
	UploadFolderProducts = "products"
	UploadFolderStore    = "store"
)

// UploadResult is the handle returned by the upload pipeline.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// IsLocalOnly reports whether the handle was produced by the fallback encoding.
func (r UploadResult) IsLocalOnly() bool {
	return IsFallbackPath(r.Path)
}

// IsFallbackPath reports whether path carries the fallback marker.
func IsFallbackPath(path string) bool {
	return strings.HasPrefix(path, FallbackPathPrefix)
}

// UploadFile is an image submitted for upload.
type UploadFile struct {
	Name        string // Original file name.
	ContentType string // Declared MIME type.
	Data        []byte
}

// Size returns the file size in bytes.
func (f UploadFile) Size() int64 {
	return int64(len(f.Data))
}
