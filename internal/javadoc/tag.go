package javadoc

import (
	"fmt"
	"strings"
)

// TagPrefix is the exact prefix a line declaring tag must start with.
func TagPrefix(tag string) string {
	return fmt.Sprintf(" * @%s ", tag)
}

// FindTagLine scans lines start..end (inclusive) for the first line
// mentioning "@tag ". That line must start with TagPrefix(tag); if it does
// not, a MalformedTag diagnostic is returned and the tag counts as absent.
// Later occurrences are never considered.
func FindTagLine(lines []string, start, end int, tag string) (int, []Diagnostic) {
	needle := fmt.Sprintf("@%s ", tag)
	prefix := TagPrefix(tag)
	for pos := start; pos <= end; pos++ {
		line := lines[pos]
		if !strings.Contains(line, needle) {
			continue
		}
		if !strings.HasPrefix(line, prefix) {
			return NotFound, []Diagnostic{{
				Line:     start + 1,
				Kind:     MalformedTag,
				Template: msgMalformedTag,
				Args:     []string{tag, prefix},
			}}
		}
		return pos, nil
	}
	return NotFound, nil
}

// TagText returns what follows the first space after the first '@' of line.
func TagText(line string) string {
	at := strings.IndexByte(line, '@')
	if at < 0 {
		return ""
	}
	sp := strings.IndexByte(line[at:], ' ')
	if sp < 0 {
		return ""
	}
	return line[at+sp+1:]
}
