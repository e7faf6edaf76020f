package api

import "strings"

// ImageURL resolves an image reference against the server. Absolute URLs
// pass through untouched; server-relative paths resolve against the API
// base with its /api suffix stripped, which is where the backend serves
// uploads from.
func ImageURL(baseURL, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	host := strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return host + ref
}
