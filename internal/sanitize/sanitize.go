package sanitize

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/submitin/api/internal/plan"
)

var (
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	jsURLPattern        = regexp.MustCompile(`(?i)javascript:`)
	dataURLPattern      = regexp.MustCompile(`(?i)data:`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
	controlCharPattern  = regexp.MustCompile("[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]")
	fieldKeyPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// String strips HTML tags, script-capable URL prefixes, inline event handlers
// and control characters (newline and tab survive), truncates to the field
// value limit and trims surrounding whitespace. It never fails; garbage in,
// empty string out.
func String(input string) string {
	s := htmlTagPattern.ReplaceAllString(input, "")
	s = jsURLPattern.ReplaceAllString(s, "")
	s = dataURLPattern.ReplaceAllString(s, "")
	s = eventHandlerPattern.ReplaceAllString(s, "")

	if len(s) > plan.MaxFieldValueLength {
		cut := plan.MaxFieldValueLength
		// Back up to a rune boundary so truncation never emits invalid UTF-8.
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}

	s = controlCharPattern.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// FormValues sanitizes a raw submission value map. At most
// plan.MaxFieldsPerSubmission entries are processed; keys that are not plain
// identifiers are dropped so they can never reach storage.
func FormValues(values map[string]string) map[string]string {
	sanitized := make(map[string]string, len(values))

	count := 0
	for key, value := range values {
		if count >= plan.MaxFieldsPerSubmission {
			break
		}
		if !fieldKeyPattern.MatchString(key) {
			continue
		}
		sanitized[key] = String(value)
		count++
	}

	return sanitized
}

// ValidEmail checks the basic local@domain.tld shape. The domain must contain
// a dot and the whole address stays within the RFC length cap.
func ValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return strings.Contains(email[at+1:], ".")
}

// ValidURL accepts absolute http/https URLs only.
func ValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
