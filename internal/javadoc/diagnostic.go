package javadoc

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a Diagnostic.
type Kind int

const (
	CommentNotFound Kind = iota
	MalformedTag
	MissingTag
	PatternMismatch
)

func (k Kind) String() string {
	switch k {
	case CommentNotFound:
		return "comment-not-found"
	case MalformedTag:
		return "malformed-tag"
	case MissingTag:
		return "missing-tag"
	case PatternMismatch:
		return "pattern-mismatch"
	default:
		return "unknown"
	}
}

// Message templates. Placeholders are positional ({0}, {1}) and a doubled
// single quote stands for one literal quote.
const (
	msgCommentNotFound = "Problem finding class/interface comment"
	msgMissingTag      = "Missing ''@{0}'' tag in class/interface comment"
	msgPatternMismatch = "Tag text ''{0}'' does not match the pattern ''{1}''"
	msgMalformedTag    = "Line with ''@{0}'' does not start with a ''{1}''"
)

// Diagnostic is a single violation found by Check.
type Diagnostic struct {
	// Line is 1-indexed.
	Line     int
	Kind     Kind
	Template string
	Args     []string
}

// Message renders Template with Args substituted.
func (d Diagnostic) Message() string {
	return render(d.Template, d.Args)
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d: %s", d.Line, d.Message())
}

func render(template string, args []string) string {
	var sb strings.Builder
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '\'' && i+1 < len(template) && template[i+1] == '\'':
			sb.WriteByte('\'')
			i++
		case c == '{':
			end := strings.IndexByte(template[i:], '}')
			if end < 0 {
				sb.WriteString(template[i:])
				return sb.String()
			}
			n, err := strconv.Atoi(template[i+1 : i+end])
			if err != nil || n < 0 || n >= len(args) {
				sb.WriteString(template[i : i+end+1])
			} else {
				sb.WriteString(args[n])
			}
			i += end
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
