// Package javadoc validates the tags of the Javadoc comment that precedes a
// top-level class or interface declaration.
//
// The check is purely line oriented. It does not parse Java; given the lines
// of a file and the line of a declaration it walks upward to find the
// enclosing "/**" and "*/" markers, looks for each configured tag inside that
// range and matches the tag text against a pattern:
//
//	/**
//	 * Does something.
//	 *
//	 * @author John Q. Public (jqp@example.com)
//	 * @version $Id$
//	 */
//	public class Foo {
//
// Violations are returned as Diagnostic values. Nothing is printed and no
// state is kept between calls, so Check may run concurrently on independent
// inputs sharing one TagRules value.
package javadoc
