package respond

import (
	"regexp"
)

var (
	// Provider credentials passed as query parameters (GNews token,
	// NewsAPI apiKey, NYT api-key) can surface in wrapped URL errors.
	urlKeyPattern = regexp.MustCompile(`(?i)(token|apikey|api-key|api_key)=[^&\s"]+`)

	// Bing's subscription key travels in a header and can leak through
	// dumped requests.
	subscriptionKeyPattern = regexp.MustCompile(`(?i)(ocp-apim-subscription-key:?\s*)[a-zA-Z0-9]+`)
)

// SanitizeError masks provider credentials in an error message before it
// is written to logs.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = urlKeyPattern.ReplaceAllString(msg, "$1=****")
	msg = subscriptionKeyPattern.ReplaceAllString(msg, "${1}****")
	return msg
}
