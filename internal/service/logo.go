package service

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// DeriveLogoURL guesses a company logo location. Preference order: the host
// of the posting URL (stripped of job-board hosts), then a domain guessed
// from the company name. Returns empty when no sensible guess exists.
func DeriveLogoURL(company string, jobURL *string) string {
	if jobURL != nil {
		if host := usableHost(*jobURL); host != "" {
			return fmt.Sprintf("https://logo.clearbit.com/%s", host)
		}
	}

	slug := nonAlphanumeric.ReplaceAllString(strings.ToLower(strings.TrimSpace(company)), "")
	if slug == "" {
		return ""
	}
	return fmt.Sprintf("https://logo.clearbit.com/%s.com", slug)
}

// Job boards host postings for many companies; their domains say nothing
// about the employer.
var jobBoardHosts = map[string]struct{}{
	"linkedin.com":      {},
	"indeed.com":        {},
	"glassdoor.com":     {},
	"lever.co":          {},
	"greenhouse.io":     {},
	"workday.com":       {},
	"myworkdayjobs.com": {},
}

func usableHost(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")

	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		root := strings.Join(parts[len(parts)-2:], ".")
		if _, boarded := jobBoardHosts[root]; boarded {
			return ""
		}
	}
	return host
}
