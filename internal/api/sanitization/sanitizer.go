package sanitization

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict     = bluemonday.StrictPolicy()
	spaces     = regexp.MustCompile(`\s+`)
	blankLines = regexp.MustCompile(`[ \t]*\n[ \t\n]*\n`)
)

// SanitizeString strips markup and collapses whitespace
func SanitizeString(input string) string {
	safe := strict.Sanitize(input)
	safe = spaces.ReplaceAllString(safe, " ")
	return strings.TrimSpace(safe)
}

// SanitizeEmail lowercases and trims an email address
func SanitizeEmail(input string) string {
	email := strings.ToLower(strings.TrimSpace(input))
	return strict.Sanitize(email)
}

// SanitizeName strips markup from a person or channel name
func SanitizeName(input string) string {
	return SanitizeString(input)
}

// SanitizeText strips markup from chat text. Line breaks are kept, runs of blank lines are not.
func SanitizeText(input string) string {
	safe := strict.Sanitize(input)
	safe = blankLines.ReplaceAllString(safe, "\n\n")
	return strings.TrimSpace(safe)
}

// SanitizeRecord applies SanitizeText to every string in a free-form record, recursively
func SanitizeRecord(record map[string]interface{}) map[string]interface{} {
	if record == nil {
		return nil
	}
	out := make(map[string]interface{}, len(record))
	for k, v := range record {
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return SanitizeText(val)
	case map[string]interface{}:
		return SanitizeRecord(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = sanitizeValue(item)
		}
		return out
	}
	return v
}
