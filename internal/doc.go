// Package internal holds the jdlint engine.
//
// Engine reads a Java file, finds its type declarations with package decl,
// runs every enabled LintRule over them and drops the issues suppressed by
// //nolint comments. The only rule today is javadoc-tags, which checks that
// the Javadoc comment of each top-level class and interface carries the
// configured tags and that their text matches the configured patterns.
//
// Usage:
//
//	engine, err := internal.NewEngine(".", nil, nil)
//	if err != nil {
//	    // handle error
//	}
//
//	issues, err := engine.Run("src/main/java/Foo.java")
//	if err != nil {
//	    // handle error
//	}
//
//	for _, issue := range issues {
//	    fmt.Printf("%s:%d: %s\n", issue.Filename, issue.Start.Line, issue.Message)
//	}
//
// Watcher re-runs an Engine as files change, and Cache lets Run skip files
// whose content has not changed since the last run.
package internal
