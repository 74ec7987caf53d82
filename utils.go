package netstorage

import "strings"

// AbsolutePath joins a cpcode prefix and a target path into a
// normalized absolute path: a single leading slash, single separators,
// no trailing slash.
func AbsolutePath(cpcode, path string) string {
	return normalizePath(cpcode + "/" + path)
}

// normalizePath collapses duplicate slashes and strips the trailing
// one, keeping exactly one leading slash.
func normalizePath(p string) string {
	segments := splitPath(p)
	return "/" + strings.Join(segments, "/")
}

// splitPath returns the non-empty segments of a slash-separated path.
func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// AncestorChain returns every directory prefix of an absolute path,
// shortest first, excluding the final segment. The order matters: the
// remote store requires a parent to exist before its child can be
// created. A path with no directory component yields an empty chain.
func AncestorChain(absPath string) []string {
	segments := splitPath(absPath)
	if len(segments) < 2 {
		return nil
	}

	chain := make([]string, 0, len(segments)-1)
	prefix := ""
	for _, s := range segments[:len(segments)-1] {
		prefix += "/" + s
		chain = append(chain, prefix)
	}
	return chain
}
