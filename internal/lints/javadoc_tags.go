package lints

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"github.com/gnolang/jdlint/internal/decl"
	"github.com/gnolang/jdlint/internal/javadoc"
	tt "github.com/gnolang/jdlint/internal/types"
)

const JavadocTagsRuleName = "javadoc-tags"

// DetectJavadocTags checks the Javadoc comment of each top-level class and
// interface in decls. Nested declarations are skipped.
func DetectJavadocTags(
	filename string,
	lines []string,
	decls []decl.Declaration,
	tags *javadoc.TagRules,
	severity tt.Severity,
) ([]tt.Issue, error) {
	var issues []tt.Issue
	for _, d := range decls {
		if !d.TopLevel() {
			continue
		}
		if d.Line < 1 || d.Line > len(lines) {
			return nil, fmt.Errorf("declaration %s at line %d is outside the file", d.Name, d.Line)
		}

		for _, diag := range javadoc.Check(lines, d.Line, tags) {
			issues = append(issues, newJavadocIssue(filename, lines, d, diag, severity))
		}
	}
	return issues, nil
}

func newJavadocIssue(filename string, lines []string, d decl.Declaration, diag javadoc.Diagnostic, severity tt.Severity) tt.Issue {
	line := ""
	if diag.Line >= 1 && diag.Line <= len(lines) {
		line = lines[diag.Line-1]
	}
	startCol := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace)) + 1
	endCol := len(strings.TrimRightFunc(line, unicode.IsSpace))
	if endCol < startCol {
		endCol = startCol
	}

	issue := tt.Issue{
		Rule:     JavadocTagsRuleName,
		Category: "style",
		Filename: filename,
		Message:  diag.Message(),
		Start:    token.Position{Filename: filename, Line: diag.Line, Column: startCol},
		End:      token.Position{Filename: filename, Line: diag.Line, Column: endCol},
		Severity: severity,
	}

	switch diag.Kind {
	case javadoc.CommentNotFound:
		issue.Note = fmt.Sprintf("%s %s needs a /** ... */ comment directly above it", d.Kind, d.Name)
	case javadoc.MalformedTag, javadoc.MissingTag:
		tag := diag.Args[0]
		issue.Suggestion = javadoc.TagPrefix(tag) + "..."
		issue.Note = fmt.Sprintf("add the @%s tag to the comment of %s %s", tag, d.Kind, d.Name)
	case javadoc.PatternMismatch:
		issue.Note = fmt.Sprintf("the text must match %s", diag.Args[1])
	}
	return issue
}
