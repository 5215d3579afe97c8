package javadoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAuthorPattern(t *testing.T) {
	t.Parallel()
	rule, ok := DefaultTagRules().Lookup("author")
	require.True(t, ok)

	valid := []string{
		"John Q. Public (jqp@example.com)",
		"A. B. (ab@x.com)",
		"Yegor Bugayenko (yegor@qulice.com)",
		"Krzysztof Krason (Krzysztof.Krason@gmail.com)",
	}
	for _, text := range valid {
		assert.True(t, rule.Matches(text), text)
	}

	invalid := []string{
		"Jane Doe jane@example.com",
		"Jane (jane@example.com)",
		"jane doe (jane@example.com)",
		"Jane Doe (jane@example.c)",
		"Jane Doe (jane@example.com) ",
		"",
	}
	for _, text := range invalid {
		assert.False(t, rule.Matches(text), text)
	}
}

func TestDefaultVersionPattern(t *testing.T) {
	t.Parallel()
	rule, ok := DefaultTagRules().Lookup("version")
	require.True(t, ok)

	assert.True(t, rule.Matches("$Id$"))
	assert.True(t, rule.Matches("$Id: foo.java 123 2020-01-01$"))
	assert.False(t, rule.Matches("1.0"))
	assert.False(t, rule.Matches("$Id"))
	assert.False(t, rule.Matches("x $Id$"))
}

func TestNewTagRulesAnchorsPatterns(t *testing.T) {
	t.Parallel()
	rules, err := NewTagRules(map[string]string{"since": `\d+`})
	require.NoError(t, err)

	rule, ok := rules.Lookup("since")
	require.True(t, ok)
	assert.True(t, rule.Matches("12"))
	assert.False(t, rule.Matches("v12"))
	assert.False(t, rule.Matches("12a"))
	assert.Equal(t, `\d+`, rule.Pattern())
}

func TestNewTagRulesOrder(t *testing.T) {
	t.Parallel()
	rules, err := NewTagRules(map[string]string{"version": ".*", "author": ".*", "since": ".*"})
	require.NoError(t, err)

	var names []string
	for _, r := range rules.Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"author", "since", "version"}, names)
	assert.Equal(t, 3, rules.Len())

	_, ok := rules.Lookup("missing")
	assert.False(t, ok)
}

func TestNewTagRulesErrors(t *testing.T) {
	t.Parallel()
	_, err := NewTagRules(map[string]string{"author": "("})
	assert.Error(t, err)

	_, err = NewTagRules(map[string]string{"": ".*"})
	assert.Error(t, err)
}

func TestDefaultPatterns(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultPatterns(), DefaultTagRules().Patterns())
}

func TestRender(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a 'x' b", render("a ''{0}'' b", []string{"x"}))
	assert.Equal(t, "{1} x", render("{1} {0}", []string{"x"}))
	assert.Equal(t, "open {", render("open {", nil))
	assert.Equal(t, "{y}", render("{y}", nil))
}
