package textdiff

import "strings"

// Options control input normalization before diffing. All off by default.
type Options struct {
	TrimLines          bool
	CollapseWhitespace bool
	IgnoreCase         bool
}

// DefaultOptions returns options with all normalization disabled.
func DefaultOptions() Options {
	return Options{}
}

// Normalize applies the configured normalization to one line.
func (o Options) Normalize(line string) string {
	if o.TrimLines {
		line = strings.TrimSpace(line)
	}
	if o.CollapseWhitespace {
		line = strings.Join(strings.Fields(line), " ")
	}
	if o.IgnoreCase {
		line = strings.ToLower(line)
	}
	return line
}

// NormalizeAll applies normalization to every line, returning a new slice
// when any option is enabled.
func (o Options) NormalizeAll(lines []string) []string {
	if !o.TrimLines && !o.CollapseWhitespace && !o.IgnoreCase {
		return lines
	}
	normalized := make([]string, len(lines))
	for i, line := range lines {
		normalized[i] = o.Normalize(line)
	}
	return normalized
}
