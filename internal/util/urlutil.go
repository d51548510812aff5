package util

import (
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL parses a user-supplied URL for the CLI. A missing scheme is
// treated as https so "youtu.be/abc" works from a shell. The HTTP API does
// not call this; it only requires the parameter to be present.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty URL")
	}
	u, err := url.Parse(raw)
	if err == nil && (u.Scheme == "" || u.Host == "") {
		if u2, e2 := url.Parse("https://" + raw); e2 == nil {
			u = u2
		}
	}
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid URL %q", raw)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return "", fmt.Errorf("unsupported URL scheme %q in %q", u.Scheme, raw)
	}
	return u.String(), nil
}
