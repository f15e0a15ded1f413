package adapter

import (
	"strings"

	"github.com/corpix/uarand"
)

// fallbackUserAgent is sent when the generator offers no Chrome agent
const fallbackUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

const userAgentDraws = 32

// chromeUserAgent draws random browser agents until it finds a Chrome one
func chromeUserAgent() string {
	for i := 0; i < userAgentDraws; i++ {
		if ua := uarand.GetRandom(); isChrome(ua) {
			return ua
		}
	}
	return fallbackUserAgent
}

func isChrome(ua string) bool {
	return strings.Contains(ua, "Chrome/") && !strings.Contains(ua, "Edg/") && !strings.Contains(ua, "OPR/")
}

// DefaultHeaders returns the headers the DeBank web app sends
func DefaultHeaders() map[string]string {
	return map[string]string{
		"accept":          "*/*",
		"accept-language": "en-US,en;q=0.9",
		"origin":          "https://debank.com",
		"referer":         "https://debank.com/",
		"source":          "web",
		"user-agent":      chromeUserAgent(),
	}
}
