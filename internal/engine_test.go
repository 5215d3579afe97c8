package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnolang/jdlint/internal/javadoc"
	"github.com/gnolang/jdlint/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTempDir creates a temporary directory and returns its path.
// It also registers a cleanup function to remove the directory after the test.
func createTempDir(t testing.TB, prefix string) string {
	tempDir, err := os.MkdirTemp("", prefix)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	return tempDir
}

func writeFile(t testing.TB, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const documented = `package foo;

/**
 * Foo.
 *
 * @author John Q. Public (jqp@example.com)
 * @version $Id$
 */
public class Foo {
}
`

const undocumented = `package foo;

/**
 * Foo.
 * @author nobody
 */
public class Foo {
}

class Bar {
}
`

func TestNewEngine(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", nil, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, engine.rules)
	assert.Equal(t, javadoc.DefaultTagRules(), engine.Tags())
	assert.Equal(t, []string{"javadoc-tags"}, RuleNames())
}

func TestEngine_ApplyRules(t *testing.T) {
	t.Parallel()

	engine, err := NewEngine(".", map[string]types.ConfigRule{
		"javadoc-tags": {Severity: types.SeverityWarning},
		"unknown-rule": {Severity: types.SeverityError},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, types.SeverityWarning, engine.findRule("javadoc-tags").Severity())
	assert.Nil(t, engine.findRule("unknown-rule"))

	off, err := NewEngine(".", map[string]types.ConfigRule{
		"javadoc-tags": {Severity: types.SeverityOff},
	}, nil)
	require.NoError(t, err)
	issues, err := off.RunSource([]byte(undocumented))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngine_IgnoreRule(t *testing.T) {
	t.Parallel()
	engine := &Engine{}
	engine.IgnoreRule("test_rule")

	assert.True(t, engine.ignoredRules["test_rule"])
}

func TestEngine_Run(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "engine_test")

	engine, err := NewEngine(tempDir, nil, nil)
	require.NoError(t, err)

	t.Run("clean file", func(t *testing.T) {
		path := writeFile(t, tempDir, "Foo.java", documented)
		issues, err := engine.Run(path)
		require.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("violations sorted by line", func(t *testing.T) {
		path := writeFile(t, tempDir, "Bad.java", undocumented)
		issues, err := engine.Run(path)
		require.NoError(t, err)
		require.Len(t, issues, 4)

		assert.Equal(t, 3, issues[0].Start.Line)
		assert.Equal(t, "Missing '@version' tag in class/interface comment", issues[0].Message)
		assert.Equal(t, 5, issues[2].Start.Line)
		assert.Contains(t, issues[2].Message, "Tag text 'nobody'")
		for _, issue := range issues {
			assert.Equal(t, path, issue.Filename)
			assert.Equal(t, types.SeverityError, issue.Severity)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := engine.Run(filepath.Join(tempDir, "Nope.java"))
		assert.Error(t, err)
	})
}

func TestEngine_RunSecondClassSharesComment(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(".", nil, nil)
	require.NoError(t, err)

	// Bar has no comment of its own; the backward scan reaches Foo's.
	issues, err := engine.RunSource([]byte(undocumented))
	require.NoError(t, err)

	lines := make([]int, 0, len(issues))
	for _, issue := range issues {
		lines = append(lines, issue.Start.Line)
	}
	assert.Equal(t, []int{3, 3, 5, 5}, lines)
}

func TestEngine_RunCRLF(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(".", nil, nil)
	require.NoError(t, err)

	src := []byte("/**\r\n * @author A. B. (ab@x.com)\r\n * @version $Id$\r\n */\r\npublic class X {\r\n}\r\n")
	issues, err := engine.RunSource(src)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestEngine_Nolint(t *testing.T) {
	t.Parallel()
	engine, err := NewEngine(".", nil, nil)
	require.NoError(t, err)

	src := `package foo;

//nolint:javadoc-tags
public class Foo {
}

public class Bar {
}
`
	issues, err := engine.RunSource([]byte(src))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 7, issues[0].Start.Line)
}

func TestEngine_CustomTags(t *testing.T) {
	t.Parallel()
	tags, err := javadoc.NewTagRules(map[string]string{"since": `\d+\.\d+`})
	require.NoError(t, err)

	engine, err := NewEngine(".", nil, tags)
	require.NoError(t, err)

	issues, err := engine.RunSource([]byte(documented))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "Missing '@since' tag in class/interface comment", issues[0].Message)
}

func TestEngine_IgnorePath(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "ignore_test")
	path := writeFile(t, tempDir, "Generated.java", undocumented)

	engine, err := NewEngine(tempDir, nil, nil)
	require.NoError(t, err)
	engine.IgnorePath("Generated*.java")

	issues, err := engine.Run(path)
	require.NoError(t, err)
	assert.Empty(t, issues)

	assert.False(t, engine.isIgnoredPath(filepath.Join(tempDir, "Other.java")))
}

func TestNewSourceCode(t *testing.T) {
	t.Parallel()
	src := NewSourceCode([]byte("a\r\nb\nc"))
	assert.Equal(t, []string{"a", "b", "c"}, src.Lines)
}

func TestEngine_IgnorePathGlobs(t *testing.T) {
	t.Parallel()
	root := filepath.Join("project")
	engine, err := NewEngine(root, nil, nil)
	require.NoError(t, err)
	engine.IgnorePath("src/gen/**")
	engine.IgnorePath("*Test.java")

	tests := []struct {
		path     string
		expected bool
	}{
		{filepath.Join(root, "src", "gen", "a", "Foo.java"), true},
		{filepath.Join(root, "src", "main", "Foo.java"), false},
		{filepath.Join(root, "src", "main", "FooTest.java"), true},
		{filepath.Join(root, "Gen.java"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, engine.isIgnoredPath(tt.path), tt.path)
	}
}
