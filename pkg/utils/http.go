// Package utils provides common utility functions.
package utils

import "net/url"

// UserAgent identifies the headless browser to the station's servers.
// A desktop agent string keeps the site from serving the mobile layout,
// which lays the schedule out differently.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// IsValidURL checks whether a string parses as an absolute http or
// https URL.
func IsValidURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}

	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
