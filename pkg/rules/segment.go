package rules

import (
	"path/filepath"
	"strings"
)

// HasPathSegment reports whether the loader identifier names the given
// loader, matching only on whole path segments of the host separator.
//
// Both bare identifiers ("css-loader") and resolved paths
// ("/app/node_modules/css-loader/index.js") are accepted. A scoped name
// ("@scope/less-loader") must appear as two consecutive segments. Anything
// after a `?` (inline loader options) is ignored.
//
// "/app/node_modules/foo-css-loader-x/index.js" does not name "css-loader".
func HasPathSegment(loader, name string) bool {
	if name == "" {
		return false
	}

	loader, _, _ = strings.Cut(loader, "?")

	segs := splitSegments(loader)
	want := strings.Split(name, "/")

	for i := 0; i+len(want) <= len(segs); i++ {
		if equalSegments(segs[i:i+len(want)], want) {
			return true
		}
	}

	return false
}

func splitSegments(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == filepath.Separator
	})
}

func equalSegments(a, b []string) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
