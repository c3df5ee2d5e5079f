// Package imaging converts, resizes, and rotates stored images via libvips,
// and defines the filename conventions linking an image to its derived files.
package imaging

import (
	"path/filepath"
	"strings"
)

// ThumbPrefix marks thumbnail files in the image directory. An image's
// thumbnail is always ThumbPrefix + its own filename.
const ThumbPrefix = "thumb_"

// imageExtensions is every extension the gallery recognizes as an image.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".avif": true, ".tiff": true, ".tif": true, ".bmp": true, ".ico": true,
	".heic": true, ".heif": true,
}

// ThumbName returns the thumbnail filename for a stored image.
func ThumbName(filename string) string {
	return ThumbPrefix + filename
}

// IsThumb reports whether filename names a thumbnail.
func IsThumb(filename string) bool {
	return strings.HasPrefix(filename, ThumbPrefix)
}

// JPEGName returns filename with its extension replaced by .jpg.
func JPEGName(filename string) string {
	ext := filepath.Ext(filename)
	return strings.TrimSuffix(filename, ext) + ".jpg"
}

// IsHEIC reports whether filename has a HEIC/HEIF extension.
func IsHEIC(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".heic", ".heif":
		return true
	}
	return false
}

// IsImageFilename reports whether filename has a recognized image extension.
func IsImageFilename(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}
