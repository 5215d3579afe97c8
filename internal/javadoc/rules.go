package javadoc

import (
	"fmt"
	"regexp"
	"sort"
)

// Default patterns for the author and version tags.
const (
	AuthorPattern  = `^([A-Z](\.|[a-z]+) ){2,}\([A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,4}\)$`
	VersionPattern = `^\$Id.*\$$`
)

// TagRule binds a tag name to the pattern its text must fully match.
type TagRule struct {
	Name   string
	source string
	re     *regexp.Regexp
}

// NewTagRule compiles pattern for tag name. The pattern is anchored on both
// ends whether or not it carries its own anchors.
func NewTagRule(name, pattern string) (TagRule, error) {
	if name == "" {
		return TagRule{}, fmt.Errorf("empty tag name")
	}
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return TagRule{}, fmt.Errorf("invalid pattern for tag %q: %w", name, err)
	}
	return TagRule{Name: name, source: pattern, re: re}, nil
}

// Pattern returns the pattern as it was configured.
func (r TagRule) Pattern() string {
	return r.source
}

// Matches reports whether the whole of text matches the pattern.
func (r TagRule) Matches(text string) bool {
	return r.re.MatchString(text)
}

// TagRules is an immutable set of TagRule values ordered by tag name.
type TagRules struct {
	rules []TagRule
}

// NewTagRules compiles the tag to pattern mapping.
func NewTagRules(patterns map[string]string) (*TagRules, error) {
	rules := make([]TagRule, 0, len(patterns))
	for name, pattern := range patterns {
		rule, err := NewTagRule(name, pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name < rules[j].Name })
	return &TagRules{rules: rules}, nil
}

// DefaultPatterns returns a fresh copy of the default tag to pattern mapping.
func DefaultPatterns() map[string]string {
	return map[string]string{
		"author":  AuthorPattern,
		"version": VersionPattern,
	}
}

var defaultRules = mustTagRules(DefaultPatterns())

// DefaultTagRules returns the author and version rules.
func DefaultTagRules() *TagRules {
	return defaultRules
}

func mustTagRules(patterns map[string]string) *TagRules {
	rules, err := NewTagRules(patterns)
	if err != nil {
		panic(err)
	}
	return rules
}

// Rules returns a copy of the rules in name order.
func (t *TagRules) Rules() []TagRule {
	out := make([]TagRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of configured tags.
func (t *TagRules) Len() int {
	return len(t.rules)
}

// Lookup returns the rule for tag name.
func (t *TagRules) Lookup(name string) (TagRule, bool) {
	i := sort.Search(len(t.rules), func(i int) bool { return t.rules[i].Name >= name })
	if i < len(t.rules) && t.rules[i].Name == name {
		return t.rules[i], true
	}
	return TagRule{}, false
}

// Patterns returns the tag to pattern mapping.
func (t *TagRules) Patterns() map[string]string {
	out := make(map[string]string, len(t.rules))
	for _, r := range t.rules {
		out[r.Name] = r.source
	}
	return out
}
