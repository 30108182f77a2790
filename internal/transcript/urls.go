package transcript

import (
	"net/url"
	"regexp"
	"strings"
)

// URLMode selects how embedded URLs are rewritten.
type URLMode string

const (
	URLPreserve URLMode = "preserve" // leave URLs intact
	URLReplace  URLMode = "replace"  // substitute a fixed placeholder
	URLDomain   URLMode = "domain"   // substitute [host], lower-cased
)

// urlPlaceholder replaces URLs in replace mode and unparsable URLs in
// domain mode.
const urlPlaceholder = "[URL]"

var urlRe = regexp.MustCompile(`https?://\S+`)

// ValidURLMode reports whether s names a supported mode.
func ValidURLMode(s string) bool {
	switch URLMode(s) {
	case URLPreserve, URLReplace, URLDomain:
		return true
	}
	return false
}

// TransformURLs rewrites every URL in text according to mode, preserving the
// surrounding text and URL order. Returns the text and whether anything
// changed.
func TransformURLs(text string, mode URLMode) (string, bool) {
	if mode == URLPreserve {
		return text, false
	}

	out := urlRe.ReplaceAllStringFunc(text, func(match string) string {
		if mode == URLReplace {
			return urlPlaceholder
		}
		return domainToken(match)
	})
	return out, out != text
}

// domainToken reduces a URL to "[host]". The host is lower-cased and a
// leading www. label stripped. Unparsable URLs fall back to the placeholder.
func domainToken(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return urlPlaceholder
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	return "[" + host + "]"
}
