package internal

import (
	"crypto/md5"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gobwas/glob"

	"github.com/gnolang/jdlint/internal/decl"
	"github.com/gnolang/jdlint/internal/javadoc"
	"github.com/gnolang/jdlint/internal/nolint"
	tt "github.com/gnolang/jdlint/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	rootDir      string
	ignoredRules map[string]bool
	ignoredPaths []glob.Glob
	rules        map[string]LintRule
	tags         *javadoc.TagRules
	cache        *Cache
}

// NewEngine creates a new lint engine. A nil tags value selects the default
// author and version rules.
func NewEngine(rootDir string, rules map[string]tt.ConfigRule, tags *javadoc.TagRules) (*Engine, error) {
	if tags == nil {
		tags = javadoc.DefaultTagRules()
	}
	engine := &Engine{
		rootDir: rootDir,
		tags:    tags,
	}
	engine.applyRules(rules)

	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func(tags *javadoc.TagRules) LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"javadoc-tags": NewJavadocTagsRule,
}

// RuleNames returns the names of all known rules, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			// Unknown rule, continue to the next one
			continue
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		r.SetSeverity(rule.Severity)
	}
}

func (e *Engine) registerDefaultRules() {
	for key, newRuleCstr := range allRuleConstructors {
		e.rules[key] = newRuleCstr(e.tags)
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// Tags returns the tag rules the engine validates.
func (e *Engine) Tags() *javadoc.TagRules {
	return e.tags
}

// UseCache makes Run consult and fill c. The cache must have been created
// with this engine's Fingerprint.
func (e *Engine) UseCache(c *Cache) {
	e.cache = c
}

// Fingerprint summarizes the settings that affect the issues of a file: the
// enabled rules with their severities and the tag patterns.
func (e *Engine) Fingerprint() string {
	h := md5.New()
	for _, name := range RuleNames() {
		rule := e.rules[name]
		fmt.Fprintf(h, "rule %s %s %t\n", name, rule.Severity(), e.ignoredRules[name])
	}
	for _, tag := range e.tags.Rules() {
		fmt.Fprintf(h, "tag %s %s\n", tag.Name, tag.Pattern())
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.isIgnoredPath(filename) {
		return nil, nil
	}

	if e.cache != nil {
		if issues, ok := e.cache.Get(filename); ok {
			return issues, nil
		}
	}

	source, err := ReadSourceCode(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	issues, err := e.check(filename, source)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.Set(filename, issues); err != nil {
			return nil, fmt.Errorf("error caching issues: %w", err)
		}
	}
	return issues, nil
}

// RunSource applies all lint rules to the given source and returns a slice of Issues.
func (e *Engine) RunSource(source []byte) ([]tt.Issue, error) {
	return e.check("", NewSourceCode(source))
}

func (e *Engine) check(filename string, source *SourceCode) ([]tt.Issue, error) {
	decls := decl.TopLevel(source.Lines)
	nolintMgr := nolint.ParseLines(filename, source.Lines)

	var wg sync.WaitGroup
	var mu sync.Mutex

	var allIssues []tt.Issue
	var firstErr error
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			issues, err := r.Check(filename, source, decls)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("rule %s: %w", r.Name(), err)
				}
				return
			}
			allIssues = append(allIssues, filterNolintIssues(nolintMgr, issues)...)
		}(rule)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.SliceStable(allIssues, func(i, j int) bool {
		if allIssues[i].Start.Line != allIssues[j].Start.Line {
			return allIssues[i].Start.Line < allIssues[j].Start.Line
		}
		return allIssues[i].Rule < allIssues[j].Rule
	})

	return allIssues, nil
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// IgnorePath skips files matching pattern. The glob is matched against the
// slash-separated path, its base name and its path relative to the engine
// root; "*" stays within a directory and "**" crosses directories. A pattern
// that does not compile is matched literally.
func (e *Engine) IgnorePath(pattern string) {
	if pattern == "" {
		return
	}
	pattern = filepath.ToSlash(filepath.Clean(pattern))
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		g = glob.MustCompile(glob.QuoteMeta(pattern), '/')
	}
	e.ignoredPaths = append(e.ignoredPaths, g)
}

func (e *Engine) isIgnoredPath(filename string) bool {
	if len(e.ignoredPaths) == 0 {
		return false
	}
	candidates := []string{
		filepath.ToSlash(filepath.Clean(filename)),
		filepath.Base(filename),
	}
	if e.rootDir != "" {
		if rel, err := filepath.Rel(e.rootDir, filename); err == nil {
			candidates = append(candidates, filepath.ToSlash(rel))
		}
	}
	for _, g := range e.ignoredPaths {
		for _, candidate := range candidates {
			if g.Match(candidate) {
				return true
			}
		}
	}
	return false
}

// filterNolintIssues filters issues based on nolint comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr == nil {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.IsNolint(issue.Start, issue.Rule) {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
