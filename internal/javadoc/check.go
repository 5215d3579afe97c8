package javadoc

// ValidateTag checks a single tag inside the comment spanning start..end.
func ValidateTag(lines []string, start, end int, rule TagRule) []Diagnostic {
	line, diags := FindTagLine(lines, start, end, rule.Name)
	if line == NotFound {
		return append(diags, Diagnostic{
			Line:     start + 1,
			Kind:     MissingTag,
			Template: msgMissingTag,
			Args:     []string{rule.Name},
		})
	}

	text := TagText(lines[line])
	if !rule.Matches(text) {
		diags = append(diags, Diagnostic{
			Line:     line + 1,
			Kind:     PatternMismatch,
			Template: msgPatternMismatch,
			Args:     []string{text, rule.Pattern()},
		})
	}
	return diags
}

// Check validates the Javadoc comment of the declaration starting at the
// 1-indexed line declLine. A nil rules value means DefaultTagRules.
func Check(lines []string, declLine int, rules *TagRules) []Diagnostic {
	if rules == nil {
		rules = DefaultTagRules()
	}

	r := Locate(lines, declLine-1)
	if !r.Valid() || r.Empty() {
		return []Diagnostic{{
			Line:     declLine,
			Kind:     CommentNotFound,
			Template: msgCommentNotFound,
		}}
	}

	var diags []Diagnostic
	for _, rule := range rules.rules {
		diags = append(diags, ValidateTag(lines, r.Start, r.End, rule)...)
	}
	return diags
}
