package domdiff

import (
	"regexp"
	"strings"

	"github.com/aleister1102/webdiff/internal/models"
)

var (
	numberRegex = regexp.MustCompile(`^[+-]?[$€£¥₫]?\s?\d{1,3}([.,]\d{3})*([.,]\d+)?\s?%?$`)
	dateRegex   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}([T ].*)?|\d{1,2}[/.-]\d{1,2}[/.-]\d{2,4})$`)
	timeRegex   = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?(\s?(AM|PM|am|pm))?$`)
)

// labelMaxLength caps what still counts as a label rather than prose.
const labelMaxLength = 40

// ClassifyContent classifies an element's normalized text as number, date,
// time, label or text. Empty text yields the empty string.
func ClassifyContent(normalizedText string) string {
	text := strings.TrimSpace(normalizedText)
	if text == "" {
		return ""
	}

	switch {
	case numberRegex.MatchString(text):
		return models.ContentTypeNumber
	case dateRegex.MatchString(text):
		return models.ContentTypeDate
	case timeRegex.MatchString(text):
		return models.ContentTypeTime
	case !strings.ContainsAny(text, " \t\n") && len(text) <= labelMaxLength:
		return models.ContentTypeLabel
	default:
		return models.ContentTypeText
	}
}

// NormalizeText collapses runs of whitespace and trims the result.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
