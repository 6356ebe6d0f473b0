package handlers

import (
	"net/http"
	"strings"
)

// regionHeaders are set by the edge in front of the API, most specific first
var regionHeaders = []string{"X-Vercel-IP-Country", "CF-IPCountry"}

// userRegion returns the explicit region parameter, else the edge country header
func userRegion(r *http.Request) string {
	if region := strings.TrimSpace(r.URL.Query().Get("region")); region != "" {
		return region
	}
	for _, header := range regionHeaders {
		// Cloudflare reports unknown and Tor traffic as XX and T1
		if value := strings.ToUpper(strings.TrimSpace(r.Header.Get(header))); value != "" && value != "XX" && value != "T1" {
			return value
		}
	}
	return ""
}
