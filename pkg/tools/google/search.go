package google

import "net/url"

// SearchURL builds a results-page link; nothing is fetched.
func SearchURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}
