package domdiff

import (
	"sort"
	"strings"
)

// maxSignatureClasses is how many sorted class names feed the signature.
const maxSignatureClasses = 3

// BuildSignature composes the element signature:
// tag [#id] [[data-testid=...]] [.firstThreeSortedClasses]
func BuildSignature(tag, id, dataTestID, className string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(tag))

	if id != "" {
		sb.WriteString("#")
		sb.WriteString(id)
	}

	if dataTestID != "" {
		sb.WriteString("[data-testid=")
		sb.WriteString(dataTestID)
		sb.WriteString("]")
	}

	if className != "" {
		classes := strings.Fields(className)
		sort.Strings(classes)
		if len(classes) > maxSignatureClasses {
			classes = classes[:maxSignatureClasses]
		}
		for _, class := range classes {
			sb.WriteString(".")
			sb.WriteString(class)
		}
	}

	return sb.String()
}
