package mail

import (
	"regexp"
	"strings"
)

// Message is a transient outbound email. It is never persisted; it exists
// only for the duration of a dispatch.
type Message struct {
	Recipient string
	Subject   string
	HTMLBody  string
	TextBody  string
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Text returns the plain-text body. If none was supplied it is derived by
// stripping markup tags from the HTML body. This is a best-effort,
// non-semantic strip, not a full HTML-to-text conversion.
func (m Message) Text() string {
	if m.TextBody != "" {
		return m.TextBody
	}

	return strings.TrimSpace(tagPattern.ReplaceAllString(m.HTMLBody, ""))
}
