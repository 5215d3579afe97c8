// Package decl finds type declarations in Java source without parsing it.
//
// The scanner only understands enough of the lexical structure to skip
// comments, string, text block and character literals, and to count braces.
// That is sufficient to tell top-level declarations from nested ones and to
// report the line where each declaration (including its modifiers and
// annotations) begins.
package decl

// Kind is the declaration keyword.
type Kind string

const (
	Class      Kind = "class"
	Interface  Kind = "interface"
	Enum       Kind = "enum"
	Record     Kind = "record"
	Annotation Kind = "@interface"
)

// Declaration is a type declaration found by Scan.
type Declaration struct {
	Kind Kind
	Name string
	// Line is the 1-indexed line of the first modifier or annotation, or of
	// the keyword when there is none.
	Line int
	// KeywordLine is the 1-indexed line of the declaration keyword.
	KeywordLine int
	Nested      bool
}

// TopLevel reports whether d is a class or interface with no enclosing
// declaration.
func (d Declaration) TopLevel() bool {
	return !d.Nested && (d.Kind == Class || d.Kind == Interface)
}

type scanner struct {
	lines []string
	row   int
	col   int

	depth      int
	parenDepth int

	// line of the first significant token of the current member, 0 if none
	stmtLine int
	// last significant byte outside literals and comments
	prev byte

	pending *Declaration
	decls   []Declaration
}

// Scan returns every type declaration in lines, in source order.
func Scan(lines []string) []Declaration {
	s := &scanner{lines: lines}
	s.run()
	return s.decls
}

// TopLevel returns the declarations of lines that TopLevel reports true for.
func TopLevel(lines []string) []Declaration {
	var out []Declaration
	for _, d := range Scan(lines) {
		if d.TopLevel() {
			out = append(out, d)
		}
	}
	return out
}

func (s *scanner) eof() bool {
	return s.row >= len(s.lines)
}

func (s *scanner) peek(off int) byte {
	line := s.lines[s.row]
	if s.col+off < len(line) {
		return line[s.col+off]
	}
	if s.col+off == len(line) {
		return '\n'
	}
	return 0
}

func (s *scanner) advance(n int) {
	for i := 0; i < n && !s.eof(); i++ {
		if s.col >= len(s.lines[s.row]) {
			s.row++
			s.col = 0
			continue
		}
		s.col++
	}
}

func (s *scanner) run() {
	for !s.eof() {
		c := s.peek(0)
		switch {
		case c == '\n':
			s.advance(1)
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			s.advance(1)
		case c == '/' && s.peek(1) == '/':
			s.row++
			s.col = 0
		case c == '/' && s.peek(1) == '*':
			s.skipBlockComment()
		case c == '"' && s.peek(1) == '"' && s.peek(2) == '"':
			s.mark()
			s.skipTextBlock()
			s.prev = '"'
		case c == '"' || c == '\'':
			s.mark()
			s.skipQuoted(c)
			s.prev = c
		case isIdentStart(c):
			s.ident()
		default:
			s.punct(c)
			s.advance(1)
		}
	}
}

// mark records the start line of the current member.
func (s *scanner) mark() {
	if s.stmtLine == 0 {
		s.stmtLine = s.row + 1
	}
}

func (s *scanner) skipBlockComment() {
	s.advance(2)
	for !s.eof() {
		if s.peek(0) == '*' && s.peek(1) == '/' {
			s.advance(2)
			return
		}
		s.advance(1)
	}
}

func (s *scanner) skipTextBlock() {
	s.advance(3)
	for !s.eof() {
		switch {
		case s.peek(0) == '\\':
			s.advance(2)
		case s.peek(0) == '"' && s.peek(1) == '"' && s.peek(2) == '"':
			s.advance(3)
			return
		default:
			s.advance(1)
		}
	}
}

// skipQuoted skips a string or char literal. Literals never span lines, so
// an unterminated one ends at the line break.
func (s *scanner) skipQuoted(quote byte) {
	s.advance(1)
	for !s.eof() {
		switch s.peek(0) {
		case '\\':
			if s.peek(1) == '\n' {
				s.advance(1)
				return
			}
			s.advance(2)
		case quote:
			s.advance(1)
			return
		case '\n':
			s.advance(1)
			return
		default:
			s.advance(1)
		}
	}
}

func (s *scanner) ident() {
	row := s.row
	line := s.lines[row]
	start := s.col
	end := start
	for end < len(line) && isIdentPart(line[end]) {
		end++
	}
	word := line[start:end]
	s.mark()
	s.advance(end - start)

	if s.pending != nil {
		s.pending.Name = word
		s.decls = append(s.decls, *s.pending)
		s.pending = nil
		s.prev = 'a'
		return
	}

	if kind, ok := keyword(word, s.prev); ok && s.parenDepth == 0 {
		s.pending = &Declaration{
			Kind:        kind,
			Line:        s.stmtLine,
			KeywordLine: row + 1,
			Nested:      s.depth > 0,
		}
	}
	s.prev = 'a'
}

func keyword(word string, prev byte) (Kind, bool) {
	if prev == '.' {
		return "", false
	}
	switch word {
	case "class":
		return Class, true
	case "interface":
		if prev == '@' {
			return Annotation, true
		}
		return Interface, true
	case "enum":
		return Enum, true
	case "record":
		// record is a contextual keyword; treat it as one only where a
		// declaration can start
		return Record, prev == 0 || prev == ';' || prev == '{' || prev == '}' || prev == 'a' || prev == ')'
	}
	return "", false
}

// punct handles a single non-identifier byte. A declaration keyword must be
// followed directly by its name, so any punctuation drops a pending one.
func (s *scanner) punct(c byte) {
	s.pending = nil
	switch c {
	case '{':
		// braces inside parentheses belong to annotation arguments or lambdas
		// and do not open a member body
		if s.parenDepth == 0 {
			s.depth++
			s.stmtLine = 0
		}
	case '}':
		if s.parenDepth == 0 {
			if s.depth > 0 {
				s.depth--
			}
			s.stmtLine = 0
		}
	case ';':
		if s.parenDepth == 0 {
			s.stmtLine = 0
		}
	case '(':
		s.mark()
		s.parenDepth++
	case ')':
		if s.parenDepth > 0 {
			s.parenDepth--
		}
	default:
		s.mark()
	}
	s.prev = c
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
