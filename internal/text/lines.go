package text

import "strings"

// SplitLines splits content into lines, each keeping its terminator. A final
// line without a trailing newline is kept as-is, so Join(SplitLines(s)) == s
// for every s. Empty content yields no lines.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	var lines []string
	for len(content) > 0 {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:i+1])
		content = content[i+1:]
	}
	return lines
}

// Join reassembles lines produced by SplitLines.
func Join(lines []string) string {
	return strings.Join(lines, "")
}

// SelectRange returns the content of the 1-based inclusive range start..end.
// A nil end means through the last line. end is clamped to the line count.
// A start beyond the last line returns empty content, not an error.
func SelectRange(lines []string, start int, end *int) string {
	total := len(lines)
	startIdx := start
	if startIdx < 1 {
		startIdx = 1
	}
	startIdx--
	endIdx := total
	if end != nil && *end < total {
		endIdx = *end
	}
	if startIdx >= total || endIdx < startIdx {
		return ""
	}
	return Join(lines[startIdx:endIdx])
}
