package extract

import (
	"net/url"
	"regexp"
	"strings"
)

var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term",
	"fbclid", "gclid", "ref", "source", "mc_cid", "mc_eid",
}

var (
	mobileSubdomainPattern = regexp.MustCompile(`^(https?://)m\.`)
	printSuffixPattern     = regexp.MustCompile(`/(print|skriv-ut|skrivut)/?(\?.*)?$`)
	ampSegmentPattern      = regexp.MustCompile(`/amp/`)
	trailingSlashPattern   = regexp.MustCompile(`/(\?|$)`)
)

// NormalizeURL cleans a recipe URL before fetching: tracking parameters,
// mobile subdomains, print views and AMP paths all reduce extraction
// success.
func NormalizeURL(raw string) string {
	normalized := strings.TrimSpace(raw)

	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" {
		return normalized
	}
	query := parsed.Query()
	for _, param := range trackingParams {
		query.Del(param)
	}
	parsed.RawQuery = query.Encode()
	normalized = parsed.String()

	normalized = mobileSubdomainPattern.ReplaceAllString(normalized, "${1}www.")
	normalized = printSuffixPattern.ReplaceAllString(normalized, "$2")
	normalized = ampSegmentPattern.ReplaceAllString(normalized, "/")
	normalized = trailingSlashPattern.ReplaceAllString(normalized, "$1")

	return normalized
}

// SourceName derives the display name for a URL: the hostname with a
// leading www. (or m.) stripped.
func SourceName(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Hostname() == "" {
		return "okänd källa"
	}
	host := parsed.Hostname()
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "m.")
	return host
}
