package utils

import (
	"regexp"
	"strings"
)

var (
	fencedCodeRegex  = regexp.MustCompile("```[a-zA-Z]*\\n?([\\s\\S]*?)```")
	inlineCodeRegex  = regexp.MustCompile("`([^`]+)`")
	headersRegex     = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.+)$`)
	boldRegex        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	boldAltRegex     = regexp.MustCompile(`__(.+?)__`)
	italicRegex      = regexp.MustCompile(`\*([^*\n]+)\*`)
	strikeRegex      = regexp.MustCompile(`~~(.+?)~~`)
	linksRegex       = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	blockquotesRegex = regexp.MustCompile(`(?m)^>[ \t]?`)
	bulletRegex      = regexp.MustCompile(`(?m)^[ \t]*[\*\-\+][ \t]+`)
	horizontalRule   = regexp.MustCompile(`(?m)^[ \t]*[\*\-_]{3,}[ \t]*$`)
	tableRuleRegex   = regexp.MustCompile(`(?m)^[ \t]*\|?[ \t:\-|]*-[ \t:\-|]*\|[ \t:\-|]*$\n?`)
	htmlTagsRegex    = regexp.MustCompile(`<[^>]*>`)
	trailingSpaces   = regexp.MustCompile(`(?m)[ \t]+$`)
	multipleNewlines = regexp.MustCompile(`\n{3,}`)
)

// PlainText strips markdown formatting and leaves plain paragraphs separated by blank lines.
// Numbered list markers are kept since they carry meaning in plain text.
func PlainText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	s = fencedCodeRegex.ReplaceAllString(s, "$1")
	s = inlineCodeRegex.ReplaceAllString(s, "$1")
	s = horizontalRule.ReplaceAllString(s, "")
	s = tableRuleRegex.ReplaceAllString(s, "")
	s = headersRegex.ReplaceAllString(s, "$1")
	s = boldRegex.ReplaceAllString(s, "$1")
	s = boldAltRegex.ReplaceAllString(s, "$1")
	s = bulletRegex.ReplaceAllString(s, "")
	s = italicRegex.ReplaceAllString(s, "$1")
	s = strikeRegex.ReplaceAllString(s, "$1")
	s = linksRegex.ReplaceAllString(s, "$1 ($2)")
	s = blockquotesRegex.ReplaceAllString(s, "")
	s = htmlTagsRegex.ReplaceAllString(s, "")

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "|") {
			l = strings.Trim(strings.TrimSpace(l), "|")
			cells := strings.Split(l, "|")
			for j := range cells {
				cells[j] = strings.TrimSpace(cells[j])
			}
			l = strings.Join(cells, " ")
		}
		lines[i] = l
	}
	s = strings.Join(lines, "\n")

	s = trailingSpaces.ReplaceAllString(s, "")
	s = multipleNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
