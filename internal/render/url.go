package render

import "strings"

// URLRewriter maps a node URL to the href written into rendered output.
type URLRewriter interface {
	Rewrite(url string) string
}

// URLFunc adapts a plain function to URLRewriter.
type URLFunc func(url string) string

// Rewrite calls f(url).
func (f URLFunc) Rewrite(url string) string { return f(url) }

// Identity leaves URLs untouched.
var Identity URLRewriter = URLFunc(func(url string) string { return url })

// PathPrefix returns a rewriter that mounts root-relative URLs under prefix,
// so "/docs/" with prefix "/site" becomes "/site/docs/". Absolute URLs
// (anything with a scheme or starting with "//") and relative paths pass
// through unchanged. An empty or "/" prefix behaves like Identity.
func PathPrefix(prefix string) URLRewriter {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return Identity
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return URLFunc(func(url string) string {
		if !strings.HasPrefix(url, "/") || strings.HasPrefix(url, "//") {
			return url
		}
		return prefix + url
	})
}

// lazyRewriter hands out the caller's rewriter on first use so input without
// URLs never needs one.
type lazyRewriter struct {
	rw URLRewriter
}

func (l lazyRewriter) rewrite(url string) (string, error) {
	if l.rw == nil {
		return "", ErrMissingURLHook
	}
	return l.rw.Rewrite(url), nil
}
