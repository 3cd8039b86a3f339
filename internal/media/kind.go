// Package media classifies hosted media references. Byte handling lives with
// the external media host; this package only inspects names and URLs.
package media

import (
	"net/url"
	"path"
	"strings"
)

// videoExtensions is the allow-list of file extensions treated as video.
// Everything else is served as an image.
var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mov":  {},
	".avi":  {},
	".mkv":  {},
	".webm": {},
}

// Kind returns "video" or "image" for the given file name based on its
// extension.
func Kind(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if _, ok := videoExtensions[ext]; ok {
		return "video"
	}
	return "image"
}

// KindFromURL classifies a hosted media URL, ignoring query and fragment.
// An unparseable URL falls back to inspecting the raw string.
func KindFromURL(rawURL string) string {
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Path != "" {
		return Kind(parsed.Path)
	}
	return Kind(rawURL)
}
