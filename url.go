package relcards

import (
	"net/url"
	"strings"
)

// Origin returns the scheme://host portion of rawURL, without a trailing
// slash. Returns an empty string when rawURL has no scheme or host.
func Origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// ResolveURL converts an href to an absolute URL against a fixed base
// origin (scheme plus host, no trailing slash).
//
// Already-absolute hrefs are returned unchanged, protocol-relative hrefs
// get an https scheme, and root-relative hrefs are prefixed with the
// origin. Any other non-empty value is returned unchanged rather than
// rejected: the input markup is not under our control, so an unresolvable
// href is passed through as-is instead of raising an error. Empty input
// yields an empty string.
func ResolveURL(origin, href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	case strings.HasPrefix(href, "/"):
		return origin + href
	default:
		return href
	}
}
