package errors

import (
	"strings"
	"unicode"
)

// maxURLLength bounds node URLs and URL templates.
const maxURLLength = 2048

// ValidateNodeURL validates a link attached to a workflow node.
// An empty URL is valid (the node is not clickable). Relative paths,
// fragments and http(s) URLs are accepted; any other scheme is rejected
// so that rendered diagrams cannot carry script links.
func ValidateNodeURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	if len(rawURL) > maxURLLength {
		return New(ErrCodeInvalidInput, "URL too long (max %d characters)", maxURLLength)
	}
	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "URL contains invalid control characters")
		}
	}

	switch {
	case strings.HasPrefix(rawURL, "/"), strings.HasPrefix(rawURL, "#"), strings.HasPrefix(rawURL, "?"):
		return nil
	case strings.HasPrefix(rawURL, "http://"), strings.HasPrefix(rawURL, "https://"):
		return nil
	}

	// Scheme-less relative references ("queues/3") are fine; anything with a
	// scheme before the first path separator is not.
	if i := strings.IndexByte(rawURL, ':'); i >= 0 {
		if j := strings.IndexAny(rawURL, "/?#"); j < 0 || i < j {
			return New(ErrCodeInvalidInput, "URL must be relative or use http or https scheme")
		}
	}
	return nil
}

// ValidateURLTemplate validates a URL template used to derive node links.
// The template must contain the {id} placeholder and, once expanded, be a
// valid node URL.
func ValidateURLTemplate(tmpl string) error {
	if tmpl == "" {
		return nil
	}
	if !strings.Contains(tmpl, "{id}") {
		return New(ErrCodeInvalidInput, "URL template %q must contain {id}", tmpl)
	}
	return ValidateNodeURL(strings.ReplaceAll(tmpl, "{id}", "0"))
}
