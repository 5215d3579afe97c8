package javadoc

import "strings"

// NotFound is returned by the locators when no matching line exists.
const NotFound = -1

const (
	openMarker  = "/**"
	closeMarker = "*/"
)

// CommentRange delimits a located comment, both ends inclusive.
type CommentRange struct {
	Start int
	End   int
}

// Valid reports whether both markers were found and the close marker comes
// after the open marker.
func (r CommentRange) Valid() bool {
	return r.Start != NotFound && r.End != NotFound && r.End > r.Start
}

// Empty reports whether the comment has no line between its markers.
func (r CommentRange) Empty() bool {
	return r.End-r.Start < 2
}

// lastLineMatching walks backward from index from and returns the first
// index whose line satisfies match.
func lastLineMatching(lines []string, from int, match func(string) bool) int {
	if from >= len(lines) {
		from = len(lines) - 1
	}
	for pos := from; pos >= 0; pos-- {
		if match(lines[pos]) {
			return pos
		}
	}
	return NotFound
}

func trimmedEquals(token string) func(string) bool {
	return func(line string) bool {
		return strings.TrimSpace(line) == token
	}
}

// CommentStart returns the index of the closest "/**" line above the
// 0-indexed declaration line decl.
func CommentStart(lines []string, decl int) int {
	return lastLineMatching(lines, decl-1, trimmedEquals(openMarker))
}

// CommentEnd returns the index of the closest "*/" line above the
// 0-indexed declaration line decl.
func CommentEnd(lines []string, decl int) int {
	return lastLineMatching(lines, decl-1, trimmedEquals(closeMarker))
}

// Locate runs both scans. The two are independent, so a malformed comment can
// produce a range that is not Valid.
func Locate(lines []string, decl int) CommentRange {
	return CommentRange{
		Start: CommentStart(lines, decl),
		End:   CommentEnd(lines, decl),
	}
}
