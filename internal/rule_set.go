package internal

import (
	"github.com/gnolang/jdlint/internal/decl"
	"github.com/gnolang/jdlint/internal/javadoc"
	"github.com/gnolang/jdlint/internal/lints"
	tt "github.com/gnolang/jdlint/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check runs the lint rule on the given file and returns a slice of Issues.
	Check(filename string, source *SourceCode, decls []decl.Declaration) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	// Severity returns the severity issues of the rule are reported with.
	Severity() tt.Severity

	// SetSeverity changes the severity of the rule.
	SetSeverity(tt.Severity)
}

type JavadocTagsRule struct {
	tags     *javadoc.TagRules
	severity tt.Severity
}

func NewJavadocTagsRule(tags *javadoc.TagRules) LintRule {
	return &JavadocTagsRule{
		tags:     tags,
		severity: tt.SeverityError,
	}
}

func (r *JavadocTagsRule) Check(filename string, source *SourceCode, decls []decl.Declaration) ([]tt.Issue, error) {
	return lints.DetectJavadocTags(filename, source.Lines, decls, r.tags, r.severity)
}

func (r *JavadocTagsRule) Name() string {
	return lints.JavadocTagsRuleName
}

func (r *JavadocTagsRule) Severity() tt.Severity {
	return r.severity
}

func (r *JavadocTagsRule) SetSeverity(severity tt.Severity) {
	r.severity = severity
}
