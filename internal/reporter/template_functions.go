package reporter

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// reportTemplateFunctions returns the helper functions the report templates
// rely on.
func reportTemplateFunctions() template.FuncMap {
	return template.FuncMap{
		"jsonMarshal": func(v interface{}) template.JS {
			data, err := json.Marshal(v)
			if err != nil {
				return template.JS("null")
			}
			return template.JS(data)
		},
		"ToLower": strings.ToLower,
		"title": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"formatTime": func(t time.Time, layout string) string {
			if t.IsZero() {
				return "N/A"
			}
			return t.Format(layout)
		},
		"formatPercent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"formatBytes": formatBytes,
		"inc": func(i int) int {
			return i + 1
		},
	}
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
