package resolver

import "strings"

// Render joins expanded lines into the final shader text. When minify is set
// the first line is kept as written, as it usually carries the #version
// directive; every later line break is dropped and tabs become single spaces.
func Render(lines []string, minify bool) string {
	content := strings.Join(lines, "")
	if !minify {
		return content
	}

	head, body, _ := strings.Cut(content, "\n")
	body = strings.ReplaceAll(body, "\n", "")
	body = strings.ReplaceAll(body, "\t", " ")
	return head + "\n" + body
}
