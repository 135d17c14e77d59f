package analytics

import (
	"strings"

	"github.com/mssola/useragent"
)

// DetectPlatform infers the visitor's platform bucket from the raw
// User-Agent. Anything that is not clearly iOS or Android counts as web.
func DetectPlatform(rawUA string) string {
	ua := useragent.New(rawUA)
	os := strings.ToLower(ua.OSInfo().FullName + " " + ua.Platform())
	switch {
	case strings.Contains(os, "iphone"), strings.Contains(os, "ipad"),
		strings.Contains(os, "ipod"), strings.Contains(os, "ios"):
		return "ios"
	case strings.Contains(os, "android"):
		return "android"
	default:
		return "web"
	}
}

// Substrings matched case-insensitively against the User-Agent.
var botSignatures = []string{
	// Generic patterns
	"bot",
	"spider",
	"crawl",

	// Link-preview / unfurler bots
	"facebookexternalhit",
	"facebot",
	"whatsapp",
	"slackbot",
	"telegrambot",
	"applebot",
	"twitterbot",
	"linkedinbot",
	"preview",

	// HTTP client libraries (not real browsers)
	"go-http-client/",
	"curl/",
	"wget/",
	"python-requests/",
	"python-urllib/",
	"okhttp/",
	"java/",

	// Headless / renderers
	"headlesschrome/",
	"phantomjs",
	"chrome-lighthouse",
}

// IsBot returns true if the user-agent looks like a bot or link-preview
// fetcher. Bot visits are still redirected but never recorded.
func IsBot(rawUA string) bool {
	ua := useragent.New(rawUA)
	if ua.Bot() {
		return true
	}
	lower := strings.ToLower(rawUA)
	for _, sig := range botSignatures {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}
