package lints

import (
	"strings"
	"testing"

	"github.com/gnolang/jdlint/internal/decl"
	"github.com/gnolang/jdlint/internal/javadoc"
	tt "github.com/gnolang/jdlint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectJavadocTags(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		code     string
		expected []string
	}{
		{
			name: "documented class",
			code: `package foo;

/**
 * Foo.
 * @author John Q. Public (jqp@example.com)
 * @version $Id$
 */
public class Foo {
    /** Nested types are not checked. */
    static class Bar {}
}`,
			expected: nil,
		},
		{
			name: "undocumented interface",
			code: `package foo;

public interface Foo {
}`,
			expected: []string{"Problem finding class/interface comment"},
		},
		{
			name: "bad author and no version",
			code: `package foo;

/**
 * @author Jane Doe jane@example.com
 */
@Deprecated
final class Foo {
}`,
			expected: []string{
				"Tag text 'Jane Doe jane@example.com' does not match the pattern '" + javadoc.AuthorPattern + "'",
				"Missing '@version' tag in class/interface comment",
			},
		},
		{
			name: "enums are skipped",
			code: `package foo;

enum Foo { A }`,
			expected: nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			lines := strings.Split(tc.code, "\n")
			issues, err := DetectJavadocTags("Foo.java", lines, decl.Scan(lines), javadoc.DefaultTagRules(), tt.SeverityWarning)
			require.NoError(t, err)

			var messages []string
			for _, issue := range issues {
				assert.Equal(t, JavadocTagsRuleName, issue.Rule)
				assert.Equal(t, "Foo.java", issue.Filename)
				assert.Equal(t, tt.SeverityWarning, issue.Severity)
				messages = append(messages, issue.Message)
			}
			assert.Equal(t, tc.expected, messages)
		})
	}
}

func TestDetectJavadocTagsPositions(t *testing.T) {
	t.Parallel()
	code := `/**
 * @author nobody
 */
  public class Foo {}`
	lines := strings.Split(code, "\n")

	issues, err := DetectJavadocTags("Foo.java", lines, decl.Scan(lines), javadoc.DefaultTagRules(), tt.SeverityError)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, 2, issues[0].Start.Line)
	assert.Equal(t, 2, issues[0].Start.Column)
	assert.Equal(t, len(lines[1]), issues[0].End.Column)
	assert.Contains(t, issues[0].Note, javadoc.AuthorPattern)

	assert.Equal(t, 1, issues[1].Start.Line)
	assert.Equal(t, " * @version ...", issues[1].Suggestion)
	assert.Equal(t, "add the @version tag to the comment of class Foo", issues[1].Note)
}

func TestDetectJavadocTagsOutOfRange(t *testing.T) {
	t.Parallel()
	decls := []decl.Declaration{{Kind: decl.Class, Name: "Ghost", Line: 10, KeywordLine: 10}}
	_, err := DetectJavadocTags("Foo.java", []string{"class A {}"}, decls, nil, tt.SeverityError)
	assert.Error(t, err)
}
