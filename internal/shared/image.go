package shared

import "strings"

// ImageURL resolves an image reference returned by the API.
//
// Absolute http(s) URLs pass through; relative paths are joined to baseURL with exactly one slash.
// An empty reference yields "".
func ImageURL(baseURL, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(ref, "/")
}
