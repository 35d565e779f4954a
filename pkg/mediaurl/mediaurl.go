// Package mediaurl parses the media references stored in portfolio rows:
// Cloudinary delivery URLs, YouTube links and media host paths.
package mediaurl

import (
	"net/url"
	"path"
	"strings"
)

const uploadMarker = "/upload/"

// ExtractPublicID returns the Cloudinary public id of a delivery URL, e.g.
// https://res.cloudinary.com/demo/image/upload/c_scale,w_800/v1712/portfolio/a/b.webp
// gives "portfolio/a/b". Non-Cloudinary URLs give "".
func ExtractPublicID(rawURL string) string {
	idx := strings.Index(rawURL, uploadMarker)
	if idx < 0 {
		return ""
	}
	rest := rawURL[idx+len(uploadMarker):]
	if q := strings.IndexAny(rest, "?#"); q >= 0 {
		rest = rest[:q]
	}

	// Transformations come first, then an optional version. A v<digits>
	// segment anywhere later belongs to the public id.
	segments := strings.Split(rest, "/")
	start := 0
	for start < len(segments)-1 && isTransformation(segments[start]) {
		start++
	}
	if start < len(segments)-1 && isVersion(segments[start]) {
		start++
	}

	id := strings.Join(segments[start:], "/")
	return strings.TrimSuffix(id, path.Ext(id))
}

// ResourceType is the Cloudinary resource type of a delivery URL.
func ResourceType(rawURL string) string {
	if strings.Contains(rawURL, "/video/upload/") {
		return "video"
	}
	return "image"
}

// YoutubeID extracts the video id from youtu.be, watch and embed links.
func YoutubeID(rawURL string) string {
	switch {
	case rawURL == "":
		return ""
	case strings.Contains(rawURL, "youtu.be/"):
		return beforeQuery(strings.SplitN(rawURL, "youtu.be/", 2)[1])
	case strings.Contains(rawURL, "youtube.com/watch"):
		u, err := url.Parse(rawURL)
		if err != nil {
			return ""
		}
		return u.Query().Get("v")
	case strings.Contains(rawURL, "youtube.com/embed/"):
		return beforeQuery(strings.SplitN(rawURL, "youtube.com/embed/", 2)[1])
	}
	return ""
}

// IsHostedUpload reports whether p is a media host path under one of prefixes.
func IsHostedUpload(p string, prefixes ...string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// IsRemote reports whether p is an absolute http(s) URL.
func IsRemote(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

func beforeQuery(s string) string {
	if i := strings.IndexAny(s, "?&#"); i >= 0 {
		return s[:i]
	}
	return s
}

func isVersion(seg string) bool {
	if len(seg) < 2 || seg[0] != 'v' {
		return false
	}
	for _, c := range seg[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// isTransformation matches segments such as "c_scale,w_800" or "q_auto:good".
func isTransformation(seg string) bool {
	if len(seg) < 3 || seg[1] != '_' {
		return false
	}
	return !strings.Contains(seg, ".")
}
