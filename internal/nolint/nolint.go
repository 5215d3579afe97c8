package nolint

import (
	"fmt"
	"go/token"
	"strings"
)

const nolintPrefix = "//nolint"

// Manager manages nolint scopes and checks if a position is nolinted.
type Manager struct {
	// scopes maps filename to a slice of nolint scopes.
	scopes map[string][]nolintScope
}

// nolintScope represents a range of lines where nolint applies.
type nolintScope struct {
	rules map[string]struct{}
	start token.Position
	end   token.Position
}

// ParseLines collects the nolint comments of a Java source file.
//
// A comment placed before the package statement covers the whole file. A
// comment trailing code covers its own line. A comment on a line of its own
// covers itself through the next line of code, skipping blank lines and
// comments, so a nolint above a Javadoc block reaches the declaration it
// documents.
func ParseLines(filename string, lines []string) *Manager {
	manager := Manager{
		scopes: make(map[string][]nolintScope),
	}
	packageLine := findPackageLine(lines)

	for i, line := range lines {
		idx := strings.Index(line, nolintPrefix)
		if idx < 0 {
			continue
		}
		ns, err := parseComment(filename, lines, i, idx, packageLine)
		if err != nil {
			// ignore invalid nolint comments
			continue
		}
		manager.scopes[filename] = append(manager.scopes[filename], ns)
	}
	return &manager
}

// parseComment parses the nolint comment found at byte idx of line i.
func parseComment(filename string, lines []string, i, idx, packageLine int) (nolintScope, error) {
	var ns nolintScope
	line := lines[i]
	rest := line[idx+len(nolintPrefix):]

	// A nolint comment can either have a list of rules after a colon (:)
	// or if no rules are specified, it applies to all rules
	if len(rest) > 0 && rest[0] != ':' && rest[0] != ' ' && rest[0] != '\t' && rest[0] != '\r' {
		return ns, fmt.Errorf("invalid nolint comment format")
	}

	if len(rest) > 0 && rest[0] == ':' {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
		if rest == "" {
			return ns, fmt.Errorf("invalid nolint comment: no rules specified after colon")
		}
		rest = strings.Fields(rest)[0]
	} else {
		rest = ""
	}
	ns.rules = parseIgnoreRuleNames(rest)

	lineNo := i + 1
	pos := token.Position{Filename: filename, Line: lineNo, Column: idx + 1}

	if packageLine > 0 && isBeforePackageDecl(lineNo, packageLine) {
		ns.start = token.Position{Filename: filename, Line: 1, Column: 1}
		ns.end = token.Position{Filename: filename, Line: len(lines)}
		return ns, nil
	}

	if isInlineComment(line, idx) {
		ns.start = pos
		ns.end = pos
		return ns, nil
	}

	ns.start = pos
	ns.end = pos
	if next := nextCodeLine(lines, i+1); next >= 0 {
		ns.end = token.Position{Filename: filename, Line: next + 1}
	}
	return ns, nil
}

// parseIgnoreRuleNames parses the rule list from the nolint comment.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	if text == "" {
		return rulesMap
	}
	rules := strings.Split(text, ",")
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// findPackageLine returns the 1-indexed line of the package statement, or 0.
func findPackageLine(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "package ") {
			return i + 1
		}
	}
	return 0
}

// isBeforePackageDecl checks if a given line is before the package declaration.
func isBeforePackageDecl(line, packageLine int) bool {
	return line < packageLine
}

// isInlineComment reports whether code precedes the comment on its line.
func isInlineComment(line string, idx int) bool {
	return strings.TrimSpace(line[:idx]) != ""
}

// nextCodeLine returns the index of the first line at or after from that is
// neither blank nor part of a comment.
func nextCodeLine(lines []string, from int) int {
	inBlock := false
	for i := from; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		switch {
		case inBlock:
			if strings.Contains(trimmed, "*/") {
				inBlock = false
			}
		case trimmed == "", strings.HasPrefix(trimmed, "//"):
		case strings.HasPrefix(trimmed, "/*"):
			inBlock = !strings.Contains(trimmed[2:], "*/")
		default:
			return i
		}
	}
	return -1
}

// IsNolint checks if a given position and rule are nolinted.
func (m *Manager) IsNolint(pos token.Position, ruleName string) bool {
	scopes, exists := m.scopes[pos.Filename]
	if !exists {
		return false
	}
	for _, ns := range scopes {
		if pos.Line < ns.start.Line || pos.Line > ns.end.Line {
			continue
		}
		// If the rules list is empty, nolint applies to all rules
		if len(ns.rules) == 0 {
			return true
		}
		if _, exists := ns.rules[ruleName]; exists {
			return true
		}
	}
	return false
}
